package auth

import (
	"github.com/supabase-community/gotrue-go"

	"github.com/guildfight/guildfight-engine/internal/config"
	"github.com/guildfight/guildfight-engine/internal/models"
)

type Client struct {
	AuthClient gotrue.Client
}

func NewClient(cfg *config.Config) *Client {
	client := gotrue.New(
		cfg.SupabaseProjectRef,
		cfg.SupabaseAnonKey,
	)
	return &Client{
		AuthClient: client,
	}
}

// ValidateToken resolves a session token to its user. The websocket
// handshake uses this when AUTH_REQUIRED is set.
func (c *Client) ValidateToken(token string) (models.User, error) {
	user, err := c.AuthClient.WithToken(token).GetUser()
	if err != nil {
		return models.User{}, err
	}
	return models.User{
		ID:    user.ID.String(),
		Email: user.Email,
	}, nil
}
