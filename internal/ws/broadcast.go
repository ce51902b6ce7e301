package ws

import "encoding/json"

// Envelope is the wire frame for both directions: an event name plus
// its payload, mirroring the socket event channel the clients speak.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type outEnvelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Router owns the technical socket rooms: string keys clients join at
// createRoom/joinRoom time, distinct resources from the domain rooms
// even though they share names. Delivery is fire-and-forget: a frame is
// queued per client, and a client that cannot keep up is closed slow.
//
// Not goroutine-safe on its own; the gateway mutex serializes access.
type Router struct {
	rooms  map[string]map[*Client]struct{}
	joined map[*Client]map[string]struct{}
	logf   func(format string, v ...any)
}

func NewRouter(logf func(format string, v ...any)) *Router {
	return &Router{
		rooms:  make(map[string]map[*Client]struct{}),
		joined: make(map[*Client]map[string]struct{}),
		logf:   logf,
	}
}

func (rt *Router) Join(roomName string, c *Client) {
	if _, ok := rt.rooms[roomName]; !ok {
		rt.rooms[roomName] = make(map[*Client]struct{})
	}
	rt.rooms[roomName][c] = struct{}{}

	if _, ok := rt.joined[c]; !ok {
		rt.joined[c] = make(map[string]struct{})
	}
	rt.joined[c][roomName] = struct{}{}
}

func (rt *Router) Leave(roomName string, c *Client) {
	if members, ok := rt.rooms[roomName]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(rt.rooms, roomName)
		}
	}
	if joined, ok := rt.joined[c]; ok {
		delete(joined, roomName)
	}
}

// LeaveAll detaches a disconnecting client from every socket room.
func (rt *Router) LeaveAll(c *Client) {
	for roomName := range rt.joined[c] {
		if members, ok := rt.rooms[roomName]; ok {
			delete(members, c)
			if len(members) == 0 {
				delete(rt.rooms, roomName)
			}
		}
	}
	delete(rt.joined, c)
}

// Emit sends one frame straight back to the invoking socket.
func (rt *Router) Emit(c *Client, event string, data any) {
	frame, err := json.Marshal(outEnvelope{Event: event, Data: data})
	if err != nil {
		rt.logf("[ERROR] marshal %s frame: %v", event, err)
		return
	}
	rt.send(c, frame)
}

// Broadcast fans a frame out to every socket in the room except the
// sender, matching the emit-to-self/emit-to-room split of the handlers.
// A nil except sends to the whole room.
func (rt *Router) Broadcast(roomName string, event string, data any, except *Client) {
	members, ok := rt.rooms[roomName]
	if !ok {
		return
	}
	frame, err := json.Marshal(outEnvelope{Event: event, Data: data})
	if err != nil {
		rt.logf("[ERROR] marshal %s frame: %v", event, err)
		return
	}
	for c := range members {
		if c == except {
			continue
		}
		rt.send(c, frame)
	}
}

// SendAll delivers one frame to an explicit client set (guild chat).
func (rt *Router) SendAll(clients []*Client, event string, data any) {
	frame, err := json.Marshal(outEnvelope{Event: event, Data: data})
	if err != nil {
		rt.logf("[ERROR] marshal %s frame: %v", event, err)
		return
	}
	for _, c := range clients {
		rt.send(c, frame)
	}
}

func (rt *Router) send(c *Client, frame []byte) {
	select {
	case c.messc <- frame:
	default:
		rt.logf("[WARN] client %s-%s channel full, closing slow",
			c.identity.GuildName, c.identity.MemberName)
		c.closeSlow()
	}
}
