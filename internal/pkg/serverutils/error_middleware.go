// FILE: internal/pkg/serverutils/error_middleware.go
package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"gulfcv-be/internal/apperrors"
	"gulfcv-be/internal/pkg/logger"
)

// ErrorHandlerMiddleware turns errors returned by handlers into the uniform
// {"error": message} body and recovers panics as a 500. Controllers return
// service errors as-is; the status code lives on the AppError.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("http", "panic recovered", map[string]interface{}{
					"request_id": RequestId(c),
					"panic":      r,
					"path":       c.Path(),
				})
				err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
			}
		}()

		if err := c.Next(); err != nil {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
			}
			appErr := apperrors.From(err)
			if appErr.HTTPCode >= fiber.StatusInternalServerError {
				log.Error("http", "unhandled error", map[string]interface{}{
					"request_id": RequestId(c),
					"path":       c.Path(),
					"error":      err.Error(),
				})
			}
			return c.Status(appErr.HTTPCode).JSON(fiber.Map{"error": appErr.PublicMessage()})
		}
		return nil
	}
}
