package models

import "strings"

// Room status values. The client UI renders these strings directly,
// so they stay in Korean like the rest of the product.
const (
	StatusWaiting  = "대기중"
	StatusMatching = "매칭중"
	StatusFighting = "게임중"
)

// Guild is the guild identity carried by a member record.
type Guild struct {
	GuildName string `json:"guildName"`
}

// Member is the read-only identity supplied by the member CRUD service.
// The gateway copies these fields around but never writes them back.
type Member struct {
	MemberName  string `json:"memberName"`
	MemberGuild Guild  `json:"memberGuild"`
	GameName    string `json:"gameName,omitempty"`
	Tier        string `json:"tier,omitempty"`
}

// MatchMember is a member inside a waiting room.
type MatchMember struct {
	Member   Member `json:"member"`
	IsLeader bool   `json:"isLeader"`
}

// WaitingRoom is a pre-match lobby of 1..5 members from one guild.
// RoomName is "<guildName>-<creatorName>" and doubles as the socket
// room key the lobby's clients are joined to.
type WaitingRoom struct {
	Members     []MatchMember `json:"members"`
	RoomName    string        `json:"roomName"`
	MemberCount int           `json:"memberCount"`
	IsReady     bool          `json:"isReady"`
	Status      string        `json:"status"`
}

// GuildName returns the guild prefix of the room name.
func (r *WaitingRoom) GuildName() string {
	guild, _, _ := strings.Cut(r.RoomName, "-")
	return guild
}

// CreatorName returns the creator fragment of the room name.
func (r *WaitingRoom) CreatorName() string {
	_, creator, _ := strings.Cut(r.RoomName, "-")
	return creator
}

// HasMember reports whether memberName is in the lobby.
func (r *WaitingRoom) HasMember(memberName string) bool {
	for _, m := range r.Members {
		if m.Member.MemberName == memberName {
			return true
		}
	}
	return false
}

// FightingRoom pairs two lobbies from different guilds into one match.
// TeamB is nil while the room is still waiting for an opponent.
type FightingRoom struct {
	FightRoomName string       `json:"fightRoomName"`
	TeamA         *WaitingRoom `json:"team_A"`
	TeamB         *WaitingRoom `json:"team_B"`
	ReadyCount    int          `json:"readyCount"`
	Status        string       `json:"status"`
}

// Auth structs
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Session SessionResponse `json:"session"`
	Message string          `json:"message"`
}

type SessionResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
	User         User   `json:"user"`
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
