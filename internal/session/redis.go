package session

import (
	"context"

	"github.com/noteduco342/readgroup-backend/internal/cache"
)

const DefaultRedisKey = "session:refresh_tokens"

// RedisStore keeps refresh tokens in a single Redis set so every server
// instance sees the same registry.
type RedisStore struct {
	redis *cache.RedisCache
	key   string
}

func NewRedisStore(redis *cache.RedisCache, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{redis: redis, key: key}
}

func (s *RedisStore) Add(ctx context.Context, token string) error {
	return s.redis.SetAdd(ctx, s.key, token)
}

func (s *RedisStore) Remove(ctx context.Context, token string) error {
	return s.redis.SetRemove(ctx, s.key, token)
}

func (s *RedisStore) Contains(ctx context.Context, token string) (bool, error) {
	return s.redis.SetIsMember(ctx, s.key, token)
}

// Close is a no-op: the Redis client is shared with the read cache and closed
// by its owner.
func (s *RedisStore) Close() error { return nil }
