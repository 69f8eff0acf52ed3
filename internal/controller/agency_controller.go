// FILE: internal/controller/agency_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"gulfcv-be/internal/dto"
	"gulfcv-be/internal/pkg/serverutils"
	"gulfcv-be/internal/service"
)

type IAgencyController interface {
	RegisterRoutes(r fiber.Router, requireAgency fiber.Handler)
	UpdateProfile(ctx *fiber.Ctx) error
	SubmitPaymentRequest(ctx *fiber.Ctx) error
}

type agencyController struct {
	service service.IAgencyService
}

func NewAgencyController(agencyService service.IAgencyService) IAgencyController {
	return &agencyController{service: agencyService}
}

func (c *agencyController) RegisterRoutes(r fiber.Router, requireAgency fiber.Handler) {
	r.Put("/agency/profile", requireAgency, c.UpdateProfile)
	r.Post("/subscription/payment-request", requireAgency, c.SubmitPaymentRequest)
}

func (c *agencyController) UpdateProfile(ctx *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Agency name is required"})
	}

	agency, err := c.service.UpdateProfile(ctx.UserContext(), serverutils.AgencyId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"ok": true, "agency": agency})
}

func (c *agencyController) SubmitPaymentRequest(ctx *fiber.Ctx) error {
	var req dto.PaymentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payment method and reference are required"})
	}

	agency, err := c.service.SubmitPaymentRequest(ctx.UserContext(), serverutils.AgencyId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"ok": true, "agency": agency})
}
