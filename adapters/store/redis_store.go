package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/layer-3/tidbit/core"
	"github.com/layer-3/tidbit/ports"
)

// RedisStore keeps the session token in Redis so several client processes share it
type RedisStore struct {
	client *redis.Client
	key    string
	logger zerolog.Logger
}

// NewRedisStore creates a Redis store; the token is kept without expiry
func NewRedisStore(client *redis.Client, logger zerolog.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		key:    "tidbit:" + core.SessionKey,
		logger: logger,
	}
}

var _ ports.SessionStore = (*RedisStore)(nil)

// Save sets the token
func (s *RedisStore) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreOperation, err)
	}
	return nil
}

// Read gets the token
func (s *RedisStore) Read(ctx context.Context) (string, bool) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().
				Err(err).
				Msg("failed to read session from redis")
		}
		return "", false
	}
	return token, token != ""
}

// Clear deletes the token
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreOperation, err)
	}
	return nil
}
