package main

import (
	"context"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ppk205/comicreader/internal/api"
	"github.com/ppk205/comicreader/internal/core/ports"
	"github.com/ppk205/comicreader/internal/core/service"
	"github.com/ppk205/comicreader/internal/infrastructure/config"
	mongodb "github.com/ppk205/comicreader/internal/infrastructure/db/mongo"
	redisdb "github.com/ppk205/comicreader/internal/infrastructure/db/redis"
	"github.com/ppk205/comicreader/internal/infrastructure/queue"
	"github.com/ppk205/comicreader/internal/infrastructure/storage"
	"github.com/ppk205/comicreader/pkg/comicapi"
	"github.com/ppk205/comicreader/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Backend client + session ---
	var candidates []string
	for _, c := range strings.Split(cfg.API.Candidates, ",") {
		if c = strings.TrimSpace(c); c != "" {
			candidates = append(candidates, c)
		}
	}
	var tokens ports.TokenStore
	if cfg.API.TokenBackend == "redis" {
		tokens = storage.NewRedisTokenStore(rdb)
	} else {
		tokens = storage.NewFileTokenStore(cfg.API.TokenFile)
	}
	backend := comicapi.New(comicapi.Config{
		BaseURL:    cfg.API.Base,
		Candidates: candidates,
		TokenStore: tokens,
		Logger:     log,
	})

	sessions := service.NewSessionManager(backend, tokens, service.SessionConfig{
		AutoLogin:       cfg.Auth.AutoLogin && cfg.Env == "development",
		DefaultUsername: cfg.Auth.DefaultUsername,
		DefaultPassword: cfg.Auth.DefaultPassword,
	}, log)
	if err := sessions.Bootstrap(ctx); err != nil {
		log.Warn().Err(err).Msg("session bootstrap failed, continuing unauthenticated")
	}

	// --- Services ---
	accounts := service.NewAccountService(mongodb.NewAccountRepository(db))
	reading := service.NewReadingService(mongodb.NewReadingRepository(db))

	dispatcher := queue.NewDispatcher(0, reading, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		Accounts:   accounts,
		Reading:    dispatcher,
		History:    reading,
		Backend:    backend,
		Mongo:      db,
		Redis:      rdb,
		JWTSecret:  cfg.JWTSecret,
		SessionTTL: time.Duration(cfg.Auth.SessionTTLHours) * time.Hour,
		CacheTTL:   time.Duration(cfg.Cache.TTLSeconds) * time.Second,
		CacheOn:    cfg.Cache.Enabled,
		Secure:     cfg.Env != "development",
		Log:        log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("backend", backend.BaseURL()).Msg("gateway started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
