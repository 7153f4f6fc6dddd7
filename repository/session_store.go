package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const refreshKeyPrefix = "session:refresh:"

// RedisSessionStore keeps one key per live refresh token, expiring with it.
type RedisSessionStore struct {
	client redis.Cmdable
}

func NewRedisSessionStore(client redis.Cmdable) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func refreshKey(jti string) string {
	return refreshKeyPrefix + jti
}

func (s *RedisSessionStore) Save(ctx context.Context, jti, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, refreshKey(jti), userID, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh session: %w", err)
	}
	return nil
}
