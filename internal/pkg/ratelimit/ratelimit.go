// FILE: internal/pkg/ratelimit/ratelimit.go
package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"gulfcv-be/internal/pkg/logger"
)

// Store counts one hit against a fixed-window bucket and reports the running
// count plus when the window resets. Implementations must make the
// create-or-increment atomic for concurrent callers of the same key.
type Store interface {
	Increment(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
}

// Config describes one limiter instance. The same Store can back several
// limiters as long as their KeyPrefix values differ.
type Config struct {
	KeyPrefix string
	Window    time.Duration
	Max       int64
	Store     Store
	Logger    logger.ILogger
}

// New builds the Fiber middleware for one limit tier. A store failure lets
// the request through: an unavailable counter backend must not take the API
// down with it.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := cfg.KeyPrefix + ":" + clientKey(c)
		count, resetAt, err := cfg.Store.Increment(c.UserContext(), key, cfg.Window)
		if err != nil {
			cfg.Logger.Warn("ratelimit", "rate limit store failure", map[string]interface{}{
				"key_prefix": cfg.KeyPrefix,
				"error":      err.Error(),
			})
			return c.Next()
		}

		remaining := cfg.Max - count
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Limit", strconv.FormatInt(cfg.Max, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if count > cfg.Max {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again shortly.",
			})
		}
		return c.Next()
	}
}

func clientKey(c *fiber.Ctx) string {
	if ip := c.IP(); ip != "" {
		return ip
	}
	return "unknown"
}
