// FILE: internal/controller/auth_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"gulfcv-be/internal/dto"
	"gulfcv-be/internal/pkg/serverutils"
	"gulfcv-be/internal/pkg/session"
	"gulfcv-be/internal/pkg/validation"
	"gulfcv-be/internal/service"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router, authLimiter, loginLimiter, requireAgency fiber.Handler)
	Signup(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
	ForgotPassword(ctx *fiber.Ctx) error
	ResetPassword(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type authController struct {
	service  service.IAuthService
	agencies service.IAgencyService
	sessions *session.Manager
}

func NewAuthController(authService service.IAuthService, agencyService service.IAgencyService, sessions *session.Manager) IAuthController {
	return &authController{
		service:  authService,
		agencies: agencyService,
		sessions: sessions,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router, authLimiter, loginLimiter, requireAgency fiber.Handler) {
	h := r.Group("/auth", authLimiter)
	h.Post("/signup", c.Signup)
	h.Post("/login", loginLimiter, c.Login)
	h.Post("/forgot-password", c.ForgotPassword)
	h.Post("/reset-password", c.ResetPassword)
	h.Post("/logout", c.Logout)
	h.Get("/me", requireAgency, c.Me)
}

func (c *authController) Signup(ctx *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}
	if v := validation.Check(&req); v != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": signupViolationMessage(v)})
	}

	agency, err := c.service.Signup(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	token, err := c.sessions.IssueAgencyToken(agency.Id)
	if err != nil {
		return err
	}
	ctx.Cookie(c.sessions.AgencyCookie(token))
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"agency": agency})
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing credentials"})
	}
	if v := validation.Check(&req); v != nil {
		if v.Tag == "email" {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing credentials"})
	}

	agency, err := c.service.Login(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	token, err := c.sessions.IssueAgencyToken(agency.Id)
	if err != nil {
		return err
	}
	ctx.Cookie(c.sessions.AgencyCookie(token))
	return ctx.JSON(fiber.Map{"agency": agency})
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	agency, err := c.agencies.GetAccount(ctx.UserContext(), serverutils.AgencyId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"agency": agency})
}

func (c *authController) ForgotPassword(ctx *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	// A malformed body still gets the generic response below.
	_ = ctx.BodyParser(&req)

	res, err := c.service.ForgotPassword(ctx.UserContext(), &req, serverutils.RequestId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *authController) ResetPassword(ctx *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Token and password are required."})
	}
	if v := validation.Check(&req); v != nil {
		if v.Field == "password" && v.Tag == "min" {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Password must be at least 8 characters."})
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Token and password are required."})
	}

	if err := c.service.ResetPassword(ctx.UserContext(), &req); err != nil {
		return err
	}

	// Other sessions keep their tokens; force this browser to sign in again.
	ctx.Cookie(c.sessions.ClearAgencyCookie())
	return ctx.JSON(fiber.Map{
		"ok":      true,
		"message": "Password updated. Please sign in with your new password.",
	})
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	ctx.Cookie(c.sessions.ClearAgencyCookie())
	return ctx.JSON(fiber.Map{"ok": true})
}

func signupViolationMessage(v *validation.Violation) string {
	switch {
	case v.Field == "email" && v.Tag == "email":
		return "Invalid email format"
	case v.Field == "password" && v.Tag == "min":
		return "Password must be at least 8 characters"
	default:
		return "Missing required fields"
	}
}
