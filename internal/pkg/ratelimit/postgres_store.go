// FILE: internal/pkg/ratelimit/postgres_store.go
package ratelimit

import (
	"context"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"gulfcv-be/internal/pkg/logger"
)

// PostgresStore shares one counter table across all API instances. Buckets
// use aligned windows (window start truncated to the window size) so every
// instance lands on the same row for the same client.
type PostgresStore struct {
	db     *gorm.DB
	logger logger.ILogger
}

func NewPostgresStore(db *gorm.DB, log logger.ILogger) *PostgresStore {
	return &PostgresStore{db: db, logger: log}
}

func (s *PostgresStore) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	now := time.Now()
	windowStart := now.Truncate(window)
	resetAt := windowStart.Add(window)

	var row struct {
		RequestCount int64
	}
	err := s.db.WithContext(ctx).Raw(
		`INSERT INTO api_rate_limits (bucket_key, window_start, request_count, expires_at)
		 VALUES (?, ?, 1, ?)
		 ON CONFLICT (bucket_key, window_start)
		 DO UPDATE SET request_count = api_rate_limits.request_count + 1, expires_at = EXCLUDED.expires_at
		 RETURNING request_count`,
		key, windowStart, resetAt,
	).Scan(&row).Error
	if err != nil {
		return 0, time.Time{}, err
	}

	// Expired rows are reaped opportunistically off the request path.
	if rand.Float64() < 0.005 {
		go s.cleanup()
	}

	return row.RequestCount, resetAt, nil
}

func (s *PostgresStore) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.db.WithContext(ctx).Exec("DELETE FROM api_rate_limits WHERE expires_at < NOW()").Error; err != nil {
		s.logger.Warn("ratelimit", "rate limit cleanup failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
