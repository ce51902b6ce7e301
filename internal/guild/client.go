package guild

import (
	"encoding/json"
	"errors"

	"github.com/supabase-community/postgrest-go"

	"github.com/guildfight/guildfight-engine/internal/config"
	"github.com/guildfight/guildfight-engine/internal/models"
)

// ErrNotFound is returned when a member lookup matches no row.
var ErrNotFound = errors.New("guild: member not found")

// Client reads member and guild identity from the CRUD service's
// PostgREST surface. The gateway only ever reads here; all writes
// belong to the CRUD service itself.
type Client struct {
	baseURL   string
	anonKey   string
	secretKey string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:   cfg.SupabaseURL,
		anonKey:   cfg.SupabaseAnonKey,
		secretKey: cfg.SupabaseSecretKey,
	}
}

// rest returns a per-call PostgREST client so no auth state is shared
// between requests. An empty token falls back to the anon key.
func (c *Client) rest(token string) *postgrest.Client {
	restURL := c.baseURL + "/rest/v1"

	headers := map[string]string{
		"apikey": c.anonKey,
	}

	client := postgrest.NewClient(restURL, "", headers)

	if token != "" {
		client.SetAuthToken(token)
	} else {
		client.SetAuthToken(c.anonKey)
	}

	return client
}

// memberRow mirrors the member table's column names.
type memberRow struct {
	MemberName string `json:"member_name"`
	GuildName  string `json:"guild_name"`
	GameName   string `json:"game_name"`
	Tier       string `json:"tier"`
}

func (row memberRow) toMember() models.Member {
	return models.Member{
		MemberName:  row.MemberName,
		MemberGuild: models.Guild{GuildName: row.GuildName},
		GameName:    row.GameName,
		Tier:        row.Tier,
	}
}

// Member fetches one member identity by name.
func (c *Client) Member(token, memberName string) (models.Member, error) {
	resp, _, err := c.rest(token).
		From("member").
		Select("*", "", false).
		Eq("member_name", memberName).
		Execute()
	if err != nil {
		return models.Member{}, err
	}

	var rows []memberRow
	if err := json.Unmarshal(resp, &rows); err != nil {
		return models.Member{}, err
	}
	if len(rows) == 0 {
		return models.Member{}, ErrNotFound
	}

	return rows[0].toMember(), nil
}

// Roster fetches every member of a guild.
func (c *Client) Roster(token, guildName string) ([]models.Member, error) {
	resp, _, err := c.rest(token).
		From("member").
		Select("*", "", false).
		Eq("guild_name", guildName).
		Execute()
	if err != nil {
		return nil, err
	}

	var rows []memberRow
	if err := json.Unmarshal(resp, &rows); err != nil {
		return nil, err
	}

	members := make([]models.Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, row.toMember())
	}
	return members, nil
}
