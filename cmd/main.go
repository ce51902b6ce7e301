package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/guildfight/guildfight-engine/internal/api"
	"github.com/guildfight/guildfight-engine/internal/auth"
	"github.com/guildfight/guildfight-engine/internal/config"
	"github.com/guildfight/guildfight-engine/internal/guild"
	"github.com/guildfight/guildfight-engine/internal/ws"
)

func main() {
	log.Printf("Starting guildfight-engine server...")

	cfg, cfgErr := config.LoadConfig()
	if cfgErr != nil {
		log.Fatalf("Could not load config: %v", cfgErr)
	}

	err := run(cfg)
	if err != nil {
		log.Fatalf("Could not start server: %v", err)
	}
}

// Runs the HTTP server
// Returns any errors
func run(cfg *config.Config) error {
	mux := http.NewServeMux()

	authClient := auth.NewClient(cfg)
	guildClient := guild.NewClient(cfg)

	opts := ws.Options{AllowedOrigin: cfg.AllowedOrigin}
	if cfg.AuthRequired {
		opts.Validator = authClient
	}
	ws.NewGateway(mux, opts)

	api.RegisterRoutes(mux, cfg, authClient, guildClient)

	addr := fmt.Sprintf(":%s", cfg.Port)
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Printf("Server listening on http://localhost%s", addr)
	s := &http.Server{
		Handler:     mux,
		ReadTimeout: time.Second * 10,
		// No WriteTimeout: websocket connections stay open indefinitely.
	}
	log.Printf("Now listening on ws://%v", l.Addr())

	errc := make(chan error, 1)

	go func() {
		errc <- s.Serve(l)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)

	select {
	case err := <-errc:
		log.Printf("Server error. Failed to serve: %v", err)
	case sig := <-sigs:
		log.Printf("Received signal %v. Shutting down server...", sig)
	}

	// Stop accepting new connections and give in-flight requests ten
	// seconds to finish.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	return s.Shutdown(ctx)
}
