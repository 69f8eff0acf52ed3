// FILE: internal/pkg/serverutils/middleware_test.go
package serverutils

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gulfcv-be/internal/apperrors"
	"gulfcv-be/internal/config"
	"gulfcv-be/internal/entity"
	"gulfcv-be/internal/pkg/logger"
	"gulfcv-be/internal/pkg/session"
	"gulfcv-be/internal/repository/memory"
)

func TestRequestIdMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(RequestIdMiddleware(logger.NewNopLogger()))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(RequestId(c))
	})

	// A clean caller-supplied id is echoed.
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-Id", "req-abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "req-abc-123", resp.Header.Get("X-Request-Id"))

	// A hostile one is replaced.
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-Id", "bad value\nwith newline")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.NotEqual(t, "bad value\nwith newline", resp.Header.Get("X-Request-Id"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	app.Get("/app-error", func(c *fiber.Ctx) error {
		return apperrors.Forbidden("Monthly CV limit reached")
	})
	app.Get("/plain-error", func(c *fiber.Ctx) error {
		return errors.New("pq: connection refused")
	})
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/app-error", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Internal causes never leak to the client.
	resp, err = app.Test(httptest.NewRequest("GET", "/plain-error", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestSecurityHeaders(t *testing.T) {
	app := fiber.New()
	app.Use(SecurityHeadersMiddleware(false))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Empty(t, resp.Header.Get("Strict-Transport-Security"), "HSTS is production only")

	prod := fiber.New()
	prod.Use(SecurityHeadersMiddleware(true))
	prod.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })
	resp, err = prod.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get("Strict-Transport-Security"))
}

func TestOriginGuard(t *testing.T) {
	app := fiber.New()
	app.Use(OriginGuardMiddleware(true, []string{"https://app.gulfcv.example"}))
	app.Post("/", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	// Allowed origin passes.
	req := httptest.NewRequest("POST", "/", nil)
	req.Header.Set("Origin", "https://app.gulfcv.example")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Foreign origin is rejected on mutating methods only.
	req = httptest.NewRequest("POST", "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// No Origin header means a non-browser client; let it through.
	resp, err = app.Test(httptest.NewRequest("POST", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminSessionAllowListEnforcedPerRequest(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewFactory()
	admin := &entity.AdminUser{
		Email:        "ops@gulfcv.example",
		PasswordHash: "x",
		Role:         entity.AdminRoleSuper,
		IsActive:     true,
	}
	require.NoError(t, factory.NewUnitOfWork(ctx).AdminUserRepository().Create(ctx, admin))

	sessions := session.NewManager(session.Config{
		AgencySecret:    "agency-secret-agency-secret-agency",
		AdminSecret:     "admin-secret-admin-secret-admin-1",
		AdminTTL:        time.Hour,
		CookieName:      "gcc_session",
		AdminCookieName: "gcc_admin_session",
	})
	token, err := sessions.IssueAdminToken(admin.Id, admin.Role)
	require.NoError(t, err)

	newApp := func(cfg config.AdminConfig) *fiber.App {
		app := fiber.New()
		app.Get("/admin", AdminSessionMiddleware(sessions, factory, cfg, logger.NewNopLogger()), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})
		return app
	}
	get := func(app *fiber.App) *http.Response {
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	// Allow-listed email passes.
	resp := get(newApp(config.AdminConfig{AllowedEmails: []string{"ops@gulfcv.example"}}))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// A still-valid token is rejected once the list no longer carries the
	// email; the re-check happens on every request, not at token expiry.
	resp = get(newApp(config.AdminConfig{AllowedEmails: []string{"other@gulfcv.example"}}))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Deactivation is caught the same way.
	require.NoError(t, factory.NewUnitOfWork(ctx).AdminUserRepository().SetActive(ctx, admin.Id, false))
	resp = get(newApp(config.AdminConfig{}))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
