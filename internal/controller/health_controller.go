// FILE: internal/controller/health_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gulfcv-be/internal/dto"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	db        *gorm.DB
	env       string
	startedAt time.Time
}

func NewHealthController(db *gorm.DB, env string) IHealthController {
	return &healthController{
		db:        db,
		env:       env,
		startedAt: time.Now(),
	}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	res := dto.HealthResponse{
		Ok:            true,
		Env:           c.env,
		Timestamp:     time.Now().UTC(),
		UptimeSeconds: int64(time.Since(c.startedAt).Seconds()),
	}

	start := time.Now()
	err := c.db.WithContext(ctx.UserContext()).Exec("SELECT 1").Error
	if err != nil {
		res.Ok = false
		res.Db = dto.HealthDatabase{Ok: false, Error: err.Error()}
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(res)
	}

	res.Db = dto.HealthDatabase{Ok: true, LatencyMs: time.Since(start).Milliseconds()}
	return ctx.JSON(res)
}
