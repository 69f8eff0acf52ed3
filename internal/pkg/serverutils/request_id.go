// FILE: internal/pkg/serverutils/request_id.go
package serverutils

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"gulfcv-be/internal/pkg/credentials"
	"gulfcv-be/internal/pkg/logger"
)

const requestIdKey = "request_id"

// RequestIdMiddleware assigns every request an id (echoing a well-formed
// caller-supplied X-Request-Id, otherwise generating one) and logs a
// completion line with method, path, status and duration.
func RequestIdMiddleware(log logger.ILogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestId := credentials.SafeRequestId(c.Get("X-Request-Id"))
		c.Locals(requestIdKey, requestId)
		c.Set("X-Request-Id", requestId)

		start := time.Now()
		err := c.Next()

		log.Info("http", "request completed", map[string]interface{}{
			"request_id":  requestId,
			"method":      c.Method(),
			"path":        c.Path(),
			"status":      c.Response().StatusCode(),
			"duration_ms": time.Since(start).Milliseconds(),
			"ip":          c.IP(),
		})
		return err
	}
}

// RequestId returns the id assigned by RequestIdMiddleware.
func RequestId(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIdKey).(string); ok {
		return id
	}
	return ""
}
