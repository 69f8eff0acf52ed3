// FILE: internal/controller/admin_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gulfcv-be/internal/dto"
	"gulfcv-be/internal/pkg/serverutils"
	"gulfcv-be/internal/pkg/session"
	"gulfcv-be/internal/pkg/validation"
	"gulfcv-be/internal/service"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router, adminLimiter, requireAdmin fiber.Handler)
	Login(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	ListAgencies(ctx *fiber.Ctx) error
	ActivateAgency(ctx *fiber.Ctx) error
}

type adminController struct {
	service  service.IAdminService
	sessions *session.Manager
}

func NewAdminController(adminService service.IAdminService, sessions *session.Manager) IAdminController {
	return &adminController{
		service:  adminService,
		sessions: sessions,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router, adminLimiter, requireAdmin fiber.Handler) {
	h := r.Group("/admin", adminLimiter)
	auth := h.Group("/auth")
	auth.Post("/login", c.Login)
	auth.Post("/logout", c.Logout)
	auth.Get("/me", requireAdmin, c.Me)
	h.Get("/agencies", requireAdmin, c.ListAgencies)
	h.Post("/agencies/:id/activate", requireAdmin, c.ActivateAgency)
}

func (c *adminController) Login(ctx *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing credentials"})
	}
	if v := validation.Check(&req); v != nil {
		if v.Tag == "email" {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing credentials"})
	}

	admin, err := c.service.Login(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	token, err := c.sessions.IssueAdminToken(admin.Id, admin.Role)
	if err != nil {
		return err
	}
	ctx.Cookie(c.sessions.AdminCookie(token))
	return ctx.JSON(fiber.Map{"admin": admin})
}

func (c *adminController) Me(ctx *fiber.Ctx) error {
	admin, err := c.service.GetAccount(ctx.UserContext(), serverutils.AdminId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"admin": admin})
}

func (c *adminController) Logout(ctx *fiber.Ctx) error {
	ctx.Cookie(c.sessions.ClearAdminCookie())
	return ctx.JSON(fiber.Map{"ok": true})
}

func (c *adminController) ListAgencies(ctx *fiber.Ctx) error {
	agencies, err := c.service.ListAgencies(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"agencies": agencies})
}

func (c *adminController) ActivateAgency(ctx *fiber.Ctx) error {
	agencyId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Agency not found"})
	}

	agency, err := c.service.ActivateAgency(ctx.UserContext(), agencyId)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"ok": true, "agency": agency})
}
