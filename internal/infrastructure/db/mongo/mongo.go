// Package mongo persists the gateway's own state: account records and
// per-user reading history.
package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout  = 10 * time.Second
	defaultPoolSize = 20
)

// Config captures the settings for the gateway's MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
	PoolSize uint64
}

// Connect establishes the gateway's MongoDB client, verifies connectivity
// against the primary, and returns the client together with the configured
// database handle.
func Connect(ctx context.Context, cfg Config, log zerolog.Logger) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}
	pool := cfg.PoolSize
	if pool == 0 {
		pool = defaultPoolSize
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(pool)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	log.Info().Str("database", cfg.Database).Msg("mongodb connected")
	return client, client.Database(cfg.Database), nil
}
