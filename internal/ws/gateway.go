package ws

import (
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/guildfight/guildfight-engine/internal/models"
)

// TokenValidator checks a handshake session token. Satisfied by the
// auth client; nil disables the check.
type TokenValidator interface {
	ValidateToken(token string) (models.User, error)
}

// Gateway is the single owner of all matchmaking state. Every inbound
// event runs to completion under mu, one at a time in arrival order, so
// the plain in-memory stores need no further locking. No handler does
// blocking I/O while holding mu: outbound frames are queued on the
// clients' channels with a non-blocking send.
type Gateway struct {
	mu       sync.Mutex
	registry *Registry
	waiting  *WaitingRoomStore
	fighting *FightingRoomStore
	router   *Router

	// Controls the outbound queue's window size per client.
	// Frames exceeding the window get the client closed slow.
	subscriberMessageBuffer int

	// Rate limits for guild chat relays, one bucket per guild so a
	// noisy guild cannot throttle the others. Each bucket allows 1
	// every 100ms with a burst capacity of 8.
	chatLimiters map[string]*rate.Limiter

	// Picks among eligible open rooms; seeded per process, injectable
	// in tests.
	rng *rand.Rand

	logf func(format string, v ...any)

	validator     TokenValidator
	allowedOrigin string
}

type Options struct {
	Logf          func(format string, v ...any)
	Validator     TokenValidator
	AllowedOrigin string
}

// NewGateway wires the gateway and, when mux is non-nil, registers the
// websocket endpoint on it.
func NewGateway(mux *http.ServeMux, opts Options) *Gateway {
	logf := opts.Logf
	if logf == nil {
		logf = log.Printf
	}

	gw := &Gateway{
		registry:                NewRegistry(),
		waiting:                 NewWaitingRoomStore(),
		fighting:                NewFightingRoomStore(),
		router:                  NewRouter(logf),
		subscriberMessageBuffer: 16,
		chatLimiters:            make(map[string]*rate.Limiter),
		rng:                     rand.New(rand.NewSource(time.Now().UnixNano())),
		logf:                    logf,
		validator:               opts.Validator,
		allowedOrigin:           opts.AllowedOrigin,
	}

	if mux != nil {
		mux.HandleFunc("/ws", gw.subscribeHandler)
	}
	return gw
}

// chatLimiter returns the guild's chat bucket, creating it on first
// use. Called with mu held.
func (gw *Gateway) chatLimiter(guildName string) *rate.Limiter {
	limiter, ok := gw.chatLimiters[guildName]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(time.Millisecond*100), 8)
		gw.chatLimiters[guildName] = limiter
	}
	return limiter
}

// Connect registers a socket under its declared identity.
func (gw *Gateway) Connect(c *Client) {
	gw.mu.Lock()
	defer gw.mu.Unlock()

	gw.registry.Register(c)
	gw.logf("[CONNECT] %s-%s", c.identity.GuildName, c.identity.MemberName)
}

// Disconnect runs the full cleanup for a dropped socket: registry
// removal, and when the last socket of the identity is gone, tearing
// down the lobby that member created and notifying its room.
func (gw *Gateway) Disconnect(c *Client) {
	gw.mu.Lock()
	defer gw.mu.Unlock()

	id, last := gw.registry.Unregister(c)
	if last {
		roomName := id.GuildName + "-" + id.MemberName
		if _, ok := gw.waiting.Get(roomName); ok {
			gw.waiting.Delete(roomName)
			gw.router.Broadcast(roomName, "leaveRoom", nil, c)
		}
	}
	gw.router.LeaveAll(c)
	gw.logf("[DISCONNECT] %s-%s", id.GuildName, id.MemberName)
}
