package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/suguru-ai/smartclass/internal/platform/cache"
)

// RedisStore stores values in Redis/Dragonfly under the cache namespace.
type RedisStore struct {
	cache *cache.Cache
}

// NewRedisStore wraps a connected cache.
func NewRedisStore(c *cache.Cache) *RedisStore {
	return &RedisStore{cache: c}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.cache.Client.Get(ctx, s.cache.Key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

// Set stores the value without expiry; progress is never expired.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.cache.Client.Set(ctx, s.cache.Key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.cache.Client.Del(ctx, s.cache.Key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Clear deletes every key under the namespace using SCAN, never KEYS.
func (s *RedisStore) Clear(ctx context.Context) error {
	var keys []string
	iter := s.cache.Client.Scan(ctx, 0, s.cache.Key("*"), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	pipe := s.cache.Client.Pipeline()
	for _, k := range keys {
		pipe.Del(ctx, k)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis clear: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.cache.Close()
}
