// Package redis connects the gateway to the Redis instance backing the
// response cache and, optionally, the shared token store.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const pingTimeout = 5 * time.Second

// Config captures the settings for the gateway's Redis connection.
type Config struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
}

// Connect builds a client for the gateway's cache/token database and verifies
// connectivity with a ping before handing it out.
func Connect(ctx context.Context, cfg Config, log zerolog.Logger) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = pingTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	log.Info().Str("addr", cfg.Addr).Int("db", cfg.DB).Msg("redis connected")
	return client, nil
}
