package ws

import (
	"github.com/google/uuid"

	"github.com/guildfight/guildfight-engine/internal/models"
)

type searchFightPayload struct {
	RoomName string `json:"roomName"`
}

// handleSearchFight puts a lobby into matchmaking. The lobby is reset
// (leader flags and readiness cleared), detached from any match it is
// currently paired into, then paired against an open room or left
// waiting in a fresh one.
func (gw *Gateway) handleSearchFight(c *Client, p searchFightPayload) {
	me, ok := gw.waiting.Get(p.RoomName)
	if !ok {
		gw.logf("[MATCH] searchFight: unknown room %q", p.RoomName)
		return
	}

	for i := range me.Members {
		me.Members[i].IsLeader = false
	}
	me.IsReady = false
	gw.waiting.Put(me)

	// Re-queueing while paired: detach so the opponent goes back into
	// the open pool. The fight room survives with the opponent as
	// TeamA and an empty TeamB.
	if fight, paired := gw.fighting.FindPaired(me.RoomName); paired {
		if fight.TeamA.RoomName == me.RoomName {
			fight.TeamA = fight.TeamB
		}
		fight.TeamB = nil
		fight.ReadyCount = 0
		fight.TeamA.IsReady = false

		gw.router.Broadcast(fight.FightRoomName, "searchFight", fight, c)
		gw.router.Broadcast(me.RoomName, "searchFight", fight, c)
		gw.router.Leave(fight.FightRoomName, c)
	}

	gw.matchMaking(c, me)
}

// matchMaking pairs the searching lobby into an open fight room chosen
// uniformly at random among rooms of other guilds, or opens a fresh one
// when no opponent is searching.
func (gw *Gateway) matchMaking(c *Client, me *models.WaitingRoom) {
	me.Status = models.StatusMatching

	open := gw.fighting.Open(me.GuildName())
	if len(open) > 0 {
		fight := open[gw.rng.Intn(len(open))]
		fight.TeamB = me
		fight.TeamA.Members[0].IsLeader = true

		gw.router.Emit(c, "searchFight", fight)
		gw.router.Join(fight.FightRoomName, c)
		gw.router.Broadcast(fight.TeamA.RoomName, "searchFight", fight, c)
		gw.router.Broadcast(fight.TeamB.RoomName, "searchFight", fight, c)
		return
	}

	fight := &models.FightingRoom{
		FightRoomName: uuid.NewString(),
		TeamA:         me,
		TeamB:         nil,
		ReadyCount:    0,
		Status:        models.StatusMatching,
	}
	gw.fighting.Put(fight)

	gw.router.Join(fight.FightRoomName, c)
	gw.router.Emit(c, "searchFight", fight)
	gw.router.Broadcast(me.RoomName, "searchFight", fight, c)
}

type searchCancelPayload struct {
	RoomName string `json:"roomName"`
}

// handleSearchCancel tears a fight room down. The lobby on TeamA is put
// back to waiting with its leader flag cleared before the room goes.
func (gw *Gateway) handleSearchCancel(c *Client, p searchCancelPayload) {
	fight, ok := gw.fighting.Get(p.RoomName)
	if !ok {
		gw.logf("[MATCH] searchCancel: unknown fight room %q", p.RoomName)
		return
	}

	if fight.TeamA != nil {
		if lobby, found := gw.waiting.Get(fight.TeamA.RoomName); found {
			lobby.Status = models.StatusWaiting
			if len(lobby.Members) > 0 {
				lobby.Members[0].IsLeader = false
			}
			gw.router.Emit(c, "searchCancel", lobby)
			gw.router.Broadcast(fight.TeamA.RoomName, "searchCancel", lobby, c)
		}
	}

	gw.router.Broadcast(fight.FightRoomName, "searchCancel", nil, c)
	gw.fighting.Delete(fight.FightRoomName)
}
