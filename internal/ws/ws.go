package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
)

// subscribeHandler accepts a websocket and pumps it until either side
// hangs up. Handshake identity comes from the query string; an invalid
// session token (when auth is on) rejects the upgrade.
func (gw *Gateway) subscribeHandler(w http.ResponseWriter, r *http.Request) {
	err := gw.subscribe(w, r)

	if errors.Is(err, context.Canceled) {
		return
	}
	if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
		websocket.CloseStatus(err) == websocket.StatusGoingAway {
		return
	}
	if err != nil {
		gw.logf("[WS] connection ended: %v", err)
	}
}

func (gw *Gateway) subscribe(w http.ResponseWriter, r *http.Request) error {
	memberName := r.URL.Query().Get("memberName")
	guildName := r.URL.Query().Get("guildName")
	if memberName == "" || guildName == "" {
		http.Error(w, "memberName and guildName are required", http.StatusBadRequest)
		return errors.New("handshake missing identity")
	}

	if gw.validator != nil {
		token := r.URL.Query().Get("token")
		if _, err := gw.validator.ValidateToken(token); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return err
		}
	}

	opts := websocket.AcceptOptions{}
	if gw.allowedOrigin != "" {
		opts.OriginPatterns = []string{gw.allowedOrigin}
	} else {
		opts.InsecureSkipVerify = true
	}

	conn, err := websocket.Accept(w, r, &opts)
	if err != nil {
		return err
	}
	defer conn.CloseNow()

	c := NewClient(
		Identity{GuildName: guildName, MemberName: memberName},
		make(chan []byte, gw.subscriberMessageBuffer),
		func() {
			conn.Close(websocket.StatusPolicyViolation, "connection too slow to keep up with messages")
		},
	)

	gw.Connect(c)
	defer gw.Disconnect(c)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Writer pump: queued frames go out with a bounded write window so
	// one stuck client never blocks the gateway.
	go func() {
		for {
			select {
			case frame := <-c.messc:
				if err := writeTimeout(ctx, time.Second*5, conn, frame); err != nil {
					cancel()
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		_, frame, err := conn.Read(ctx)
		if err != nil {
			return err
		}
		gw.Dispatch(c, frame)
	}
}

func writeTimeout(ctx context.Context, timeout time.Duration, conn *websocket.Conn, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return conn.Write(ctx, websocket.MessageText, msg)
}
