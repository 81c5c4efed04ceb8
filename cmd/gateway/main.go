package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/trainhub/session-gateway/internal/api"
	"github.com/trainhub/session-gateway/internal/api/handler"
	"github.com/trainhub/session-gateway/internal/authapi"
	"github.com/trainhub/session-gateway/internal/core/ports"
	"github.com/trainhub/session-gateway/internal/core/service"
	"github.com/trainhub/session-gateway/internal/infrastructure/config"
	mongodb "github.com/trainhub/session-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/trainhub/session-gateway/internal/infrastructure/db/redis"
	"github.com/trainhub/session-gateway/internal/store"
	"github.com/trainhub/session-gateway/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, pingers, err := openKV(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open session store")
	}

	sessionStore := store.NewSessionStore(kv, log)

	client := authapi.NewClient(authapi.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	})

	sessions := service.NewSessionService(client, sessionStore, log)
	client.SetTokenSource(func() string { return sessions.Snapshot().Token })

	// Restore must finish before the server accepts traffic: consumers may
	// not treat an absent session as "logged out" while it is in flight.
	sessions.Restore(ctx)

	e := api.NewRouter(sessions, pingers, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("gateway starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
		os.Exit(1)
	}
	log.Info().Msg("stopped")
}

// openKV builds the persistence medium selected by config, together with the
// pingers the readiness probe should check.
func openKV(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.KV, map[string]handler.Pinger, error) {
	switch cfg.Store.Driver {
	case "redis":
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, nil, err
		}
		kv := redisdb.NewKV(client)
		return kv, map[string]handler.Pinger{"redis": kv}, nil

	case "mongo":
		_, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, err
		}
		kv := mongodb.NewKV(db)
		return kv, map[string]handler.Pinger{"mongodb": kv}, nil

	case "memory":
		log.Warn().Msg("memory session store selected; sessions will not survive a restart")
		return store.NewMemoryKV(), nil, nil

	default:
		kv, err := store.NewFileKV(cfg.Store.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return kv, nil, nil
	}
}
