package ws

import "github.com/guildfight/guildfight-engine/internal/models"

type createRoomPayload struct {
	Members     models.MatchMember `json:"members"`
	RoomName    string             `json:"roomName"`
	MemberCount int                `json:"memberCount"`
	Status      string             `json:"status"`
}

type roomMemberPayload struct {
	RoomName    string             `json:"roomName"`
	MatchMember models.MatchMember `json:"matchMember"`
}

// handleCreateRoom opens a lobby named "<guild>-<roomName>" with the
// creator as its only member. A duplicate name is a silent no-op.
func (gw *Gateway) handleCreateRoom(c *Client, p createRoomPayload) {
	roomName := p.Members.Member.MemberGuild.GuildName + "-" + p.RoomName

	if _, exists := gw.waiting.Get(roomName); exists {
		gw.logf("[ROOM] duplicate waiting room %q ignored", roomName)
		return
	}

	room := &models.WaitingRoom{
		Members:     []models.MatchMember{p.Members},
		RoomName:    roomName,
		MemberCount: p.MemberCount,
		IsReady:     false,
		Status:      p.Status,
	}

	gw.waiting.Put(room)
	gw.router.Join(roomName, c)
	gw.router.Emit(c, "createRoom", room)
}

// handleJoinRoom appends a member to a lobby. A full lobby answers the
// joiner with the literal sentinel "full"; that is the only
// user-visible error in the protocol.
func (gw *Gateway) handleJoinRoom(c *Client, p roomMemberPayload) {
	room, ok := gw.waiting.Get(p.RoomName)
	if !ok {
		gw.logf("[ROOM] joinRoom: unknown room %q", p.RoomName)
		return
	}

	if room.MemberCount >= 5 {
		gw.router.Emit(c, "joinRoom", "full")
		return
	}

	room.Members = append(room.Members, p.MatchMember)
	room.MemberCount++
	gw.router.Join(room.RoomName, c)

	gw.router.Emit(c, "joinRoom", room)
	gw.router.Broadcast(room.RoomName, "joinRoom", room, c)
}

// handleLeaveRoom removes a member. The lobby dissolves outright when
// the last member leaves or when the leaver is the room's creator;
// both cases emit leaveRoom(null) so clients drop their lobby view.
func (gw *Gateway) handleLeaveRoom(c *Client, p roomMemberPayload) {
	room, ok := gw.waiting.Get(p.RoomName)
	if !ok {
		gw.logf("[ROOM] leaveRoom: unknown room %q", p.RoomName)
		return
	}

	leaver := p.MatchMember.Member.MemberName

	if room.MemberCount == 1 || room.CreatorName() == leaver {
		gw.waiting.Delete(room.RoomName)
		gw.router.Emit(c, "leaveRoom", nil)
		gw.router.Broadcast(room.RoomName, "leaveRoom", nil, c)
		gw.router.Leave(room.RoomName, c)
		return
	}

	members := room.Members[:0]
	for _, m := range room.Members {
		if m.Member.MemberName != leaver {
			members = append(members, m)
		}
	}
	room.Members = members
	room.MemberCount--

	gw.router.Leave(room.RoomName, c)
	gw.router.Emit(c, "leaveRoom", room)
	gw.router.Broadcast(room.RoomName, "leaveRoom", room, c)
}

type roomListPayload struct {
	GuildName string `json:"guildName"`
}

// handleRoomList answers with the lobbies of one guild.
func (gw *Gateway) handleRoomList(c *Client, p roomListPayload) {
	gw.router.Emit(c, "roomList", gw.waiting.ListByGuild(p.GuildName))
}

// handleWaitingRoom answers with the total lobby count.
func (gw *Gateway) handleWaitingRoom(c *Client) {
	gw.router.Emit(c, "waitingRoom", gw.waiting.Count())
}

type onlinePayload struct {
	GuildName string `json:"guildName"`
}

// handleOnline answers with the presence set. Presence is tracked
// globally, so the reply is not filtered down to the asking guild; the
// query only requires that the guild has at least one live socket.
func (gw *Gateway) handleOnline(c *Client, p onlinePayload) {
	if !gw.registry.GuildConnected(p.GuildName) {
		return
	}
	gw.router.Emit(c, "online", gw.registry.OnlineMembers())
}

type messagePayload struct {
	MemberName string `json:"memberName"`
	GuildName  string `json:"guildName"`
	Message    string `json:"message"`
}

// handleMessage relays guild chat to every socket of the guild,
// including the sender's own. An over-limit message is dropped without
// telling the sender; delivery is at-most-once everywhere.
func (gw *Gateway) handleMessage(c *Client, p messagePayload) {
	if !gw.chatLimiter(p.GuildName).Allow() {
		gw.logf("[CHAT] rate limit hit, dropping message from %s", p.MemberName)
		return
	}
	text := "[" + p.MemberName + "]-" + p.Message
	gw.router.SendAll(gw.registry.GuildClients(p.GuildName), "message", text)
}

type fightMessagePayload struct {
	FightRoom  string `json:"fightRoom"`
	MemberName string `json:"memberName"`
	Message    string `json:"message"`
}

// handleFightMessage relays match chat. A paired room fans out to both
// team socket rooms; an unpaired or unknown room falls back to the
// fight room key itself.
func (gw *Gateway) handleFightMessage(c *Client, p fightMessagePayload) {
	text := "[" + p.MemberName + "]-" + p.Message

	room, ok := gw.fighting.Get(p.FightRoom)
	if ok && room.TeamB != nil {
		gw.router.Emit(c, "fightMessage", text)
		gw.router.Broadcast(room.TeamA.RoomName, "fightMessage", text, c)
		gw.router.Broadcast(room.TeamB.RoomName, "fightMessage", text, c)
		return
	}

	gw.router.Emit(c, "fightMessage", text)
	gw.router.Broadcast(p.FightRoom, "fightMessage", text, c)
}
