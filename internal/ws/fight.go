package ws

import "github.com/guildfight/guildfight-engine/internal/models"

type readyPayload struct {
	FightRoom  string `json:"fightRoom"`
	MemberName string `json:"memberName"`
}

// teamOf finds which side of the fight room the member sits on.
func teamOf(fight *models.FightingRoom, memberName string) *models.WaitingRoom {
	if fight.TeamA != nil && fight.TeamA.HasMember(memberName) {
		return fight.TeamA
	}
	if fight.TeamB != nil && fight.TeamB.HasMember(memberName) {
		return fight.TeamB
	}
	return nil
}

// handleReadyFight marks the member's team ready and bumps readyCount.
// The ready check only exists once both teams are in, and a team counts
// at most once, so readyCount always equals the number of ready teams.
func (gw *Gateway) handleReadyFight(c *Client, p readyPayload) {
	fight, ok := gw.fighting.Get(p.FightRoom)
	if !ok {
		gw.logf("[FIGHT] readyFight: unknown fight room %q", p.FightRoom)
		return
	}
	if fight.TeamB == nil {
		gw.logf("[FIGHT] readyFight: fight room %q has no opponent yet", p.FightRoom)
		return
	}

	team := teamOf(fight, p.MemberName)
	if team == nil {
		gw.logf("[FIGHT] readyFight: member %q not on either team of %q", p.MemberName, p.FightRoom)
		return
	}
	if team.IsReady {
		gw.logf("[FIGHT] readyFight: team %q already ready in %q", team.RoomName, p.FightRoom)
		return
	}

	fight.ReadyCount++
	team.IsReady = true

	gw.emitToTeams(c, "readyFight", fight)
}

// handleCancelReady is the exact inverse of handleReadyFight.
func (gw *Gateway) handleCancelReady(c *Client, p readyPayload) {
	fight, ok := gw.fighting.Get(p.FightRoom)
	if !ok {
		gw.logf("[FIGHT] cancelReady: unknown fight room %q", p.FightRoom)
		return
	}
	if fight.TeamB == nil {
		gw.logf("[FIGHT] cancelReady: fight room %q has no opponent yet", p.FightRoom)
		return
	}

	team := teamOf(fight, p.MemberName)
	if team == nil {
		gw.logf("[FIGHT] cancelReady: member %q not on either team of %q", p.MemberName, p.FightRoom)
		return
	}
	if !team.IsReady {
		gw.logf("[FIGHT] cancelReady: team %q was not ready in %q", team.RoomName, p.FightRoom)
		return
	}

	fight.ReadyCount--
	team.IsReady = false

	gw.emitToTeams(c, "cancelReady", fight)
}

type startFightPayload struct {
	FightRoom string `json:"fightRoom"`
}

// handleStartFight moves the match into the fighting state, but only
// from a double-ready room. Anything else is a logged no-op.
func (gw *Gateway) handleStartFight(c *Client, p startFightPayload) {
	fight, ok := gw.fighting.Get(p.FightRoom)
	if !ok {
		gw.logf("[FIGHT] startFight: unknown fight room %q", p.FightRoom)
		return
	}
	if fight.TeamB == nil {
		gw.logf("[FIGHT] startFight: fight room %q has no opponent yet", p.FightRoom)
		return
	}

	if fight.ReadyCount != 2 {
		gw.logf("[FIGHT] startFight: readyCount is %d, want 2", fight.ReadyCount)
		return
	}

	fight.Status = models.StatusFighting
	fight.TeamA.Status = models.StatusFighting
	fight.TeamB.Status = models.StatusFighting

	gw.router.Emit(c, "startFight", fight)
	gw.router.Broadcast(fight.FightRoomName, "startFight", fight, c)
	gw.router.Broadcast(fight.TeamA.RoomName, "startFight", fight, c)
	gw.router.Broadcast(fight.TeamB.RoomName, "startFight", fight, c)
}

type changeTeamPayload struct {
	FightRoomName string `json:"fightRoomName"`
}

// handleChangeTeam swaps the two sides. The new TeamB is fully demoted
// and the new TeamA's first member becomes leader, so applying it twice
// restores the original sides modulo leader flags.
func (gw *Gateway) handleChangeTeam(c *Client, p changeTeamPayload) {
	fight, ok := gw.fighting.Get(p.FightRoomName)
	if !ok {
		gw.logf("[FIGHT] changeTeam: unknown fight room %q", p.FightRoomName)
		return
	}
	if fight.TeamB == nil {
		gw.logf("[FIGHT] changeTeam: fight room %q has no opponent yet", p.FightRoomName)
		return
	}

	fight.TeamA, fight.TeamB = fight.TeamB, fight.TeamA

	for i := range fight.TeamB.Members {
		fight.TeamB.Members[i].IsLeader = false
	}
	fight.TeamA.Members[0].IsLeader = true

	gw.emitToTeams(c, "changeTeam", fight)
}

type endOfGamePayload struct {
	FightRoomName string `json:"fightRoomName"`
}

// handleEndOfGame resets a finished match back into the matching state
// so the same pairing can go again; the room is never torn down here.
func (gw *Gateway) handleEndOfGame(c *Client, p endOfGamePayload) {
	fight, ok := gw.fighting.Get(p.FightRoomName)
	if !ok {
		gw.logf("[FIGHT] endOfGame: unknown fight room %q", p.FightRoomName)
		return
	}

	fight.Status = models.StatusMatching
	if fight.TeamA != nil {
		fight.TeamA.IsReady = false
	}
	if fight.TeamB != nil {
		fight.TeamB.IsReady = false
	}
	fight.ReadyCount = 0

	gw.emitToTeams(c, "endOfGame", fight)
}

// emitToTeams re-fetches the canonical room from the store and sends it
// back to the invoker plus both team socket rooms. Emitting the stored
// object rather than a captured copy keeps the payload current when
// handlers stack up on the same room.
func (gw *Gateway) emitToTeams(c *Client, event string, fight *models.FightingRoom) {
	current, ok := gw.fighting.Get(fight.FightRoomName)
	if !ok {
		gw.logf("[FIGHT] %s: fight room %q vanished before emit", event, fight.FightRoomName)
		return
	}

	gw.router.Emit(c, event, current)
	if current.TeamA != nil {
		gw.router.Broadcast(current.TeamA.RoomName, event, current, c)
	}
	if current.TeamB != nil {
		gw.router.Broadcast(current.TeamB.RoomName, event, current, c)
	}
}
