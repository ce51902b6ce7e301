package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWaitingRoom_NameParts(t *testing.T) {
	room := &WaitingRoom{RoomName: "GuildOne-Alice"}

	assert.Equal(t, "GuildOne", room.GuildName())
	assert.Equal(t, "Alice", room.CreatorName())
}

func TestWaitingRoom_HasMember(t *testing.T) {
	room := &WaitingRoom{
		Members: []MatchMember{
			{Member: Member{MemberName: "Alice"}},
			{Member: Member{MemberName: "Bob"}},
		},
	}

	assert.True(t, room.HasMember("Bob"))
	assert.False(t, room.HasMember("Carol"))
}
