package ws

import "encoding/json"

// Dispatch decodes one inbound frame and runs its handler to
// completion under the gateway mutex. Frames from all connections
// funnel through here, so handlers observe events strictly in arrival
// order with no interleaving.
func (gw *Gateway) Dispatch(c *Client, frame []byte) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		gw.logf("[DISPATCH] bad frame from %s-%s: %v",
			c.identity.GuildName, c.identity.MemberName, err)
		return
	}

	gw.mu.Lock()
	defer gw.mu.Unlock()

	switch env.Event {
	case "message":
		dispatch(gw, c, env, gw.handleMessage)
	case "fightMessage":
		dispatch(gw, c, env, gw.handleFightMessage)
	case "online":
		dispatch(gw, c, env, gw.handleOnline)
	case "waitingRoom":
		gw.handleWaitingRoom(c)
	case "createRoom":
		dispatch(gw, c, env, gw.handleCreateRoom)
	case "joinRoom":
		dispatch(gw, c, env, gw.handleJoinRoom)
	case "leaveRoom":
		dispatch(gw, c, env, gw.handleLeaveRoom)
	case "searchFight":
		dispatch(gw, c, env, gw.handleSearchFight)
	case "searchCancel":
		dispatch(gw, c, env, gw.handleSearchCancel)
	case "readyFight":
		dispatch(gw, c, env, gw.handleReadyFight)
	case "cancelReady":
		dispatch(gw, c, env, gw.handleCancelReady)
	case "startFight":
		dispatch(gw, c, env, gw.handleStartFight)
	case "roomList":
		dispatch(gw, c, env, gw.handleRoomList)
	case "changeTeam":
		dispatch(gw, c, env, gw.handleChangeTeam)
	case "endOfGame":
		dispatch(gw, c, env, gw.handleEndOfGame)
	default:
		gw.logf("[DISPATCH] unknown event %q", env.Event)
	}
}

// dispatch unmarshals the payload for one handler. A malformed payload
// is dropped with a log line; no error goes back over the wire.
func dispatch[P any](gw *Gateway, c *Client, env Envelope, handler func(*Client, P)) {
	var p P
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &p); err != nil {
			gw.logf("[DISPATCH] bad %s payload: %v", env.Event, err)
			return
		}
	}
	handler(c, p)
}
