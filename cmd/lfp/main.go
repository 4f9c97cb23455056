package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/zanta/lfp-client/internal/api"
	"github.com/zanta/lfp-client/internal/cli"
	"github.com/zanta/lfp-client/internal/infrastructure/config"
	"github.com/zanta/lfp-client/internal/session"
	"github.com/zanta/lfp-client/pkg/logger"
)

func main() {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})

	store, err := newStore(cfg)
	if err != nil {
		log.Error().Err(err).Msg("session store init failed")
		os.Exit(1)
	}

	client, err := api.New(api.Config{
		BaseURL:    cfg.APIBaseURL,
		Session:    store,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
		RateLimit:  cfg.RateLimit,
		Logger:     log,
	})
	if err != nil {
		log.Error().Err(err).Msg("api client init failed")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.New(client, store, cfg, log)
	if err := app.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newStore(cfg *config.Config) (session.Store, error) {
	switch cfg.Session.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		return session.NewRedisStore(client), nil
	case "file", "":
		return session.NewFileStore(cfg.Session.Path)
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}
