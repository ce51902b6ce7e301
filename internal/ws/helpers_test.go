package ws

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/guildfight/guildfight-engine/internal/models"
)

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	gw := NewGateway(nil, Options{Logf: t.Logf})
	gw.rng = rand.New(rand.NewSource(1))
	return gw
}

func newTestClient(guildName, memberName string) *Client {
	return NewClient(
		Identity{GuildName: guildName, MemberName: memberName},
		make(chan []byte, 64),
		func() {},
	)
}

func matchMember(guildName, memberName string) models.MatchMember {
	return models.MatchMember{
		Member: models.Member{
			MemberName:  memberName,
			MemberGuild: models.Guild{GuildName: guildName},
		},
	}
}

// makeLobby creates a lobby via the real handlers: the creator opens it
// and every extra member joins on their own socket. Returns the lobby
// and the creator's client.
func makeLobby(t *testing.T, gw *Gateway, guildName, creator string, extra ...string) (*models.WaitingRoom, *Client) {
	t.Helper()

	c := newTestClient(guildName, creator)
	gw.Connect(c)
	gw.handleCreateRoom(c, createRoomPayload{
		Members:     matchMember(guildName, creator),
		RoomName:    creator,
		MemberCount: 1,
		Status:      models.StatusWaiting,
	})

	roomName := guildName + "-" + creator
	for _, name := range extra {
		joiner := newTestClient(guildName, name)
		gw.Connect(joiner)
		gw.handleJoinRoom(joiner, roomMemberPayload{
			RoomName:    roomName,
			MatchMember: matchMember(guildName, name),
		})
	}

	room, ok := gw.waiting.Get(roomName)
	require.True(t, ok, "lobby %s should exist", roomName)
	return room, c
}

// drainFrames empties a client's outbound queue.
func drainFrames(t *testing.T, c *Client) []Envelope {
	t.Helper()
	var frames []Envelope
	for {
		select {
		case b := <-c.messc:
			var env Envelope
			require.NoError(t, json.Unmarshal(b, &env))
			frames = append(frames, env)
		default:
			return frames
		}
	}
}

// lastFrame returns the payload of the most recent frame with the
// given event name, or ok=false if none was queued.
func lastFrame(t *testing.T, c *Client, event string) (json.RawMessage, bool) {
	t.Helper()
	var data json.RawMessage
	ok := false
	for _, env := range drainFrames(t, c) {
		if env.Event == event {
			data = env.Data
			ok = true
		}
	}
	return data, ok
}

// snapshot renders a fight room as JSON for unchanged-state checks.
func snapshot(t *testing.T, fight *models.FightingRoom) string {
	t.Helper()
	b, err := json.Marshal(fight)
	require.NoError(t, err)
	return string(b)
}

// dispatchJSON runs a raw wire frame through the dispatcher.
func dispatchJSON(gw *Gateway, c *Client, event string, payload string) {
	gw.Dispatch(c, []byte(fmt.Sprintf(`{"event":%q,"data":%s}`, event, payload)))
}
