// FILE: internal/pkg/serverutils/session_middleware.go
package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gulfcv-be/internal/config"
	"gulfcv-be/internal/pkg/logger"
	"gulfcv-be/internal/pkg/session"
	"gulfcv-be/internal/repository/unitofwork"
)

const (
	agencyIdKey  = "agency_id"
	adminIdKey   = "admin_id"
	adminRoleKey = "admin_role"
)

// AgencySessionMiddleware authenticates agency requests from the bearer
// token or session cookie. Verification is purely cryptographic; no
// database hit.
func AgencySessionMiddleware(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := session.TokenFromRequest(c, sessions.CookieName())
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing session"})
		}
		agencyId, err := sessions.VerifyAgencyToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
		}
		c.Locals(agencyIdKey, agencyId)
		return c.Next()
	}
}

// AdminSessionMiddleware verifies the admin token and then re-checks the
// admin row on every request: a deactivated account or one dropped from the
// allow list loses access immediately, not at token expiry.
func AdminSessionMiddleware(
	sessions *session.Manager,
	factory unitofwork.RepositoryFactory,
	adminCfg config.AdminConfig,
	log logger.ILogger,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := session.TokenFromRequest(c, sessions.AdminCookieName())
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing admin session"})
		}
		adminId, _, err := sessions.VerifyAdminToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid admin session"})
		}

		uow := factory.NewUnitOfWork(c.UserContext())
		admin, err := uow.AdminUserRepository().FindById(c.UserContext(), adminId)
		if err != nil {
			log.Error("admin_session", "admin session validation failed", map[string]interface{}{
				"request_id": RequestId(c),
				"error":      err.Error(),
			})
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to validate admin session"})
		}
		if admin == nil || !admin.IsActive {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Admin account is inactive"})
		}
		if !adminCfg.IsEmailAllowed(admin.Email) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Admin access is restricted."})
		}

		c.Locals(adminIdKey, admin.Id)
		c.Locals(adminRoleKey, admin.Role)
		return c.Next()
	}
}

// AgencyId returns the authenticated agency id set by the session middleware.
func AgencyId(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals(agencyIdKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// AdminId returns the authenticated admin id set by the session middleware.
func AdminId(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals(adminIdKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
