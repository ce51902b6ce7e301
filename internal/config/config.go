package config

import (
	"os"
	"strconv"
	"strings"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Port               string
	AllowedOrigin      string
	SupabaseURL        string
	SupabaseProjectRef string
	SupabaseAnonKey    string
	SupabaseSecretKey  string

	// AuthRequired gates the websocket handshake on a valid session token.
	AuthRequired bool
}

func LoadConfig() (*Config, error) {
	key := os.Getenv("SUPABASE_ANON_KEY")
	if key == "" {
		key = os.Getenv("SUPABASE_KEY")
	}

	supabaseURL := os.Getenv("SUPABASE_URL")

	// Extract project ref key
	projectRef := supabaseURL
	if idx := strings.Index(supabaseURL, ".supabase.co"); idx != -1 {
		projectRef = supabaseURL[:idx]
	}

	authRequired, _ := strconv.ParseBool(os.Getenv("AUTH_REQUIRED"))

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	cfg := &Config{
		Port:               port,
		AllowedOrigin:      os.Getenv("ALLOWED_ORIGIN"),
		SupabaseURL:        supabaseURL,
		SupabaseProjectRef: projectRef,
		SupabaseAnonKey:    key,
		SupabaseSecretKey:  os.Getenv("SUPABASE_SECRET_KEY"),
		AuthRequired:       authRequired,
	}

	return cfg, nil
}
