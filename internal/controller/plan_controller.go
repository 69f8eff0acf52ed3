// FILE: internal/controller/plan_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"gulfcv-be/internal/service"
)

type IPlanController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

type planController struct {
	service service.IPlanService
}

func NewPlanController(planService service.IPlanService) IPlanController {
	return &planController{service: planService}
}

func (c *planController) RegisterRoutes(r fiber.Router) {
	r.Get("/plans", c.List)
}

func (c *planController) List(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.Catalog())
}
