package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T) *RedisTokenStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisTokenStore(client)
}

func TestRedisTokenStore_RoundTrip(t *testing.T) {
	s := newRedisStore(t)
	ctx := context.Background()

	if tok, err := s.Token(ctx); err != nil || tok != "" {
		t.Fatalf("missing key must read as empty, got %q err=%v", tok, err)
	}

	if err := s.Save(ctx, "tok-1"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if tok, err := s.Token(ctx); err != nil || tok != "tok-1" {
		t.Fatalf("expected tok-1, got %q err=%v", tok, err)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if tok, _ := s.Token(ctx); tok != "" {
		t.Fatalf("expected empty after clear, got %q", tok)
	}

	// Clearing an already-absent token must stay idempotent.
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("second clear failed: %v", err)
	}
}

func TestRedisTokenStore_SaveOverwrites(t *testing.T) {
	s := newRedisStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "tok-1"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := s.Save(ctx, "tok-2"); err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if tok, _ := s.Token(ctx); tok != "tok-2" {
		t.Fatalf("expected overwrite, got %q", tok)
	}
}
