package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const tokenKey = "comicreader:auth_token"

// RedisTokenStore keeps the token in Redis so multiple gateway instances see
// the same session. At most one token is live at a time: Save overwrites.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Token(ctx context.Context) (string, error) {
	val, err := s.client.Get(ctx, tokenKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("token get: %w", err)
	}
	return val, nil
}

func (s *RedisTokenStore) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, tokenKey, token, 0).Err(); err != nil {
		return fmt.Errorf("token set: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, tokenKey).Err(); err != nil {
		return fmt.Errorf("token del: %w", err)
	}
	return nil
}
