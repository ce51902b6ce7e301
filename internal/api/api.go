package api

import (
	"net/http"

	"github.com/guildfight/guildfight-engine/internal/auth"
	"github.com/guildfight/guildfight-engine/internal/config"
	"github.com/guildfight/guildfight-engine/internal/guild"
)

// CORS middleware
func corsMiddleware(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin == "" {
			origin = "*"
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func RegisterRoutes(mux *http.ServeMux, cfg *config.Config, authClient *auth.Client, guildClient *guild.Client) {
	cors := func(h http.Handler) http.Handler { return corsMiddleware(cfg.AllowedOrigin, h) }
	memberHandler := NewMemberHandler(guildClient)

	// Health Check
	mux.HandleFunc("/health/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "pong"}`))
	})

	mux.Handle("/auth/signup", cors(http.HandlerFunc(authClient.Signup)))
	mux.Handle("/auth/signin", cors(http.HandlerFunc(authClient.Signin)))

	mux.Handle("/guild/members/{guild}", cors(authClient.AuthMiddleware(http.HandlerFunc(memberHandler.Roster))))
	mux.Handle("/guild/member/{name}", cors(authClient.AuthMiddleware(http.HandlerFunc(memberHandler.Member))))
}
