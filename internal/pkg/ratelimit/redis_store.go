// FILE: internal/pkg/ratelimit/redis_store.go
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore counts in redis with one key per aligned window. The key
// expires a full window after the bucket closes, so redis reaps old buckets
// on its own.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func NewRedisStoreFromURL(rawURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("ratelimit: invalid redis url: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	now := time.Now()
	windowStart := now.Truncate(window)
	resetAt := windowStart.Add(window)
	bucketKey := fmt.Sprintf("%s:%d", key, windowStart.Unix())

	count, err := s.client.Incr(ctx, bucketKey).Result()
	if err != nil {
		return 0, time.Time{}, err
	}
	if count == 1 {
		if err := s.client.Expire(ctx, bucketKey, 2*window).Err(); err != nil {
			return 0, time.Time{}, err
		}
	}
	return count, resetAt, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
