package ws

import (
	"sort"
	"strings"

	"github.com/guildfight/guildfight-engine/internal/models"
)

// WaitingRoomStore owns every pre-match lobby, keyed by room name.
// Not goroutine-safe on its own; the gateway mutex serializes access.
type WaitingRoomStore struct {
	rooms map[string]*models.WaitingRoom
}

func NewWaitingRoomStore() *WaitingRoomStore {
	return &WaitingRoomStore{rooms: make(map[string]*models.WaitingRoom)}
}

func (s *WaitingRoomStore) Get(roomName string) (*models.WaitingRoom, bool) {
	room, ok := s.rooms[roomName]
	return room, ok
}

func (s *WaitingRoomStore) Put(room *models.WaitingRoom) {
	s.rooms[room.RoomName] = room
}

func (s *WaitingRoomStore) Delete(roomName string) {
	delete(s.rooms, roomName)
}

func (s *WaitingRoomStore) Count() int {
	return len(s.rooms)
}

// ListByGuild returns the lobbies whose name carries the guild prefix,
// sorted by room name.
func (s *WaitingRoomStore) ListByGuild(guildName string) []*models.WaitingRoom {
	prefix := guildName + "-"
	list := make([]*models.WaitingRoom, 0)
	for name, room := range s.rooms {
		if strings.HasPrefix(name, prefix) {
			list = append(list, room)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].RoomName < list[j].RoomName })
	return list
}

// FightingRoomStore owns every match, keyed by fight room token.
// Not goroutine-safe on its own; the gateway mutex serializes access.
type FightingRoomStore struct {
	rooms map[string]*models.FightingRoom
}

func NewFightingRoomStore() *FightingRoomStore {
	return &FightingRoomStore{rooms: make(map[string]*models.FightingRoom)}
}

func (s *FightingRoomStore) Get(fightRoomName string) (*models.FightingRoom, bool) {
	room, ok := s.rooms[fightRoomName]
	return room, ok
}

func (s *FightingRoomStore) Put(room *models.FightingRoom) {
	s.rooms[room.FightRoomName] = room
}

func (s *FightingRoomStore) Delete(fightRoomName string) {
	delete(s.rooms, fightRoomName)
}

func (s *FightingRoomStore) Count() int {
	return len(s.rooms)
}

// Open returns the rooms still searching for an opponent (TeamB unset)
// whose TeamA guild differs from guildName. Sorted by token so a seeded
// picker is deterministic.
func (s *FightingRoomStore) Open(guildName string) []*models.FightingRoom {
	open := make([]*models.FightingRoom, 0)
	for _, room := range s.rooms {
		if room.TeamB == nil && room.TeamA != nil && room.TeamA.GuildName() != guildName {
			open = append(open, room)
		}
	}
	sort.Slice(open, func(i, j int) bool { return open[i].FightRoomName < open[j].FightRoomName })
	return open
}

// FindPaired returns the fully paired room one of whose teams is the
// given lobby. Rooms still missing TeamB do not count: a lobby that owns
// an open room keeps it while it searches again.
func (s *FightingRoomStore) FindPaired(roomName string) (*models.FightingRoom, bool) {
	for _, room := range s.rooms {
		if room.TeamA == nil || room.TeamB == nil {
			continue
		}
		if room.TeamA.RoomName == roomName || room.TeamB.RoomName == roomName {
			return room, true
		}
	}
	return nil, false
}
