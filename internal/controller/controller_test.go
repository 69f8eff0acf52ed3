// FILE: internal/controller/controller_test.go
package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gulfcv-be/internal/config"
	"gulfcv-be/internal/entity"
	"gulfcv-be/internal/pkg/credentials"
	"gulfcv-be/internal/pkg/logger"
	"gulfcv-be/internal/pkg/mailer"
	"gulfcv-be/internal/pkg/serverutils"
	"gulfcv-be/internal/pkg/session"
	"gulfcv-be/internal/repository/memory"
	"gulfcv-be/internal/service"
)

type testEnv struct {
	app      *fiber.App
	factory  *memory.Factory
	sessions *session.Manager
}

func passthrough(c *fiber.Ctx) error { return c.Next() }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{Environment: "development"},
		Session: config.SessionConfig{
			Secret:          "test-agency-secret-test-agency-secret",
			AdminSecret:     "test-admin-secret-test-admin-secret-1",
			AgencyTTL:       7 * 24 * time.Hour,
			AdminTTL:        12 * time.Hour,
			CookieName:      "gcc_session",
			AdminCookieName: "gcc_admin_session",
			CookieSameSite:  "lax",
		},
		PasswordReset: config.PasswordResetConfig{
			TokenTTL: 30 * time.Minute,
			Delivery: "log",
			URLBase:  "http://localhost:5173",
		},
	}

	factory := memory.NewFactory()
	log := logger.NewNopLogger()
	sessions := session.NewManager(session.Config{
		AgencySecret:    cfg.Session.Secret,
		AdminSecret:     cfg.Session.AdminSecret,
		AgencyTTL:       cfg.Session.AgencyTTL,
		AdminTTL:        cfg.Session.AdminTTL,
		CookieName:      cfg.Session.CookieName,
		AdminCookieName: cfg.Session.AdminCookieName,
		CookieSameSite:  cfg.Session.CookieSameSite,
	})

	authService := service.NewAuthService(factory, mailer.NewLogEmailService(log), cfg, log)
	agencyService := service.NewAgencyService(factory, cfg, log)
	cvRecordService := service.NewCvRecordService(factory, log)
	adminService := service.NewAdminService(factory, cfg, log)
	planService := service.NewPlanService()

	app := fiber.New()
	app.Use(serverutils.RequestIdMiddleware(log))
	app.Use(serverutils.ErrorHandlerMiddleware(log))

	requireAgency := serverutils.AgencySessionMiddleware(sessions)
	requireAdmin := serverutils.AdminSessionMiddleware(sessions, factory, cfg.Admin, log)

	api := app.Group("/api")
	NewPlanController(planService).RegisterRoutes(api)
	NewAuthController(authService, agencyService, sessions).RegisterRoutes(api, passthrough, passthrough, requireAgency)
	NewAgencyController(agencyService).RegisterRoutes(api, requireAgency)
	NewCvRecordController(cvRecordService).RegisterRoutes(api, requireAgency)
	NewAdminController(adminService, sessions).RegisterRoutes(api, passthrough, requireAdmin)
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	})

	return &testEnv{app: app, factory: factory, sessions: sessions}
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}, headers map[string]string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed), "body: %s", string(raw))
	}
	return resp, parsed
}

func signupBody(email string) map[string]string {
	return map[string]string{
		"agencyName": "Gulf Manpower",
		"email":      email,
		"password":   "hunter2hunter2",
		"plan":       "starter",
	}
}

func sessionCookie(t *testing.T, resp *http.Response, name string) string {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	t.Fatalf("cookie %s not set", name)
	return ""
}

func TestSignupFlow(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, "POST", "/api/auth/signup", signupBody("owner@agency.example"), nil)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	agency := body["agency"].(map[string]interface{})
	assert.Equal(t, "owner@agency.example", agency["email"])
	assert.Equal(t, "Starter", agency["planName"])
	assert.NotContains(t, agency, "passwordHash")

	token := sessionCookie(t, resp, "gcc_session")
	assert.NotEmpty(t, token)

	// Cookie alone authenticates /auth/me.
	resp, body = env.request(t, "GET", "/api/auth/me", nil, map[string]string{
		"Cookie": "gcc_session=" + token,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "owner@agency.example", body["agency"].(map[string]interface{})["email"])
}

func TestSignupValidationMessages(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		body    map[string]string
		message string
	}{
		{name: "missing fields", body: map[string]string{"email": "a@b.co"}, message: "Missing required fields"},
		{name: "bad email", body: map[string]string{"agencyName": "A", "email": "nope", "password": "longenough", "plan": "free"}, message: "Invalid email format"},
		{name: "short password", body: map[string]string{"agencyName": "A", "email": "a@b.co", "password": "short", "plan": "free"}, message: "Password must be at least 8 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := env.request(t, "POST", "/api/auth/signup", tt.body, nil)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.message, body["error"])
		})
	}
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.request(t, "POST", "/api/auth/signup", signupBody("owner@agency.example"), nil)

	resp, _ := env.request(t, "POST", "/api/auth/login", map[string]string{
		"email":    "owner@agency.example",
		"password": "hunter2hunter2",
	}, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, sessionCookie(t, resp, "gcc_session"))

	resp, body := env.request(t, "POST", "/api/auth/login", map[string]string{
		"email":    "owner@agency.example",
		"password": "wrong-password",
	}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid email or password", body["error"])
}

func TestSessionRequired(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, "GET", "/api/auth/me", nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Missing session", body["error"])

	resp, body = env.request(t, "GET", "/api/auth/me", nil, map[string]string{
		"Authorization": "Bearer garbage",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid session", body["error"])
}

func TestCvRecordEndpoints(t *testing.T) {
	env := newTestEnv(t)
	resp, _ := env.request(t, "POST", "/api/auth/signup", signupBody("owner@agency.example"), nil)
	cookie := map[string]string{"Cookie": "gcc_session=" + sessionCookie(t, resp, "gcc_session")}

	create := map[string]interface{}{
		"idempotencyKey": "key-1",
		"candidateName":  "Maria Santos",
		"snapshot":       map[string]interface{}{"meta": map[string]string{"layout": "modern"}},
	}
	resp, body := env.request(t, "POST", "/api/cv-records/", create, cookie)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, false, body["alreadyCounted"])

	// Same idempotency key replays as 200 without consuming quota.
	resp, body = env.request(t, "POST", "/api/cv-records/", create, cookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["alreadyCounted"])
	assert.Equal(t, float64(1), body["agency"].(map[string]interface{})["cvsCreated"])

	resp, body = env.request(t, "GET", "/api/cv-records/?limit=10&offset=0", nil, cookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	records := body["records"].([]interface{})
	require.Len(t, records, 1)
	recordId := records[0].(map[string]interface{})["id"].(string)

	resp, body = env.request(t, "GET", "/api/cv-records/"+recordId, nil, cookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Maria Santos", body["record"].(map[string]interface{})["candidateName"])

	resp, body = env.request(t, "GET", "/api/cv-records/not-a-uuid", nil, cookie)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Record not found", body["error"])
}

func TestAdminEndpoints(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	hash, err := credentials.HashPassword("operator-pass-1")
	require.NoError(t, err)
	admin := &entity.AdminUser{
		Email:        "ops@gulfcv.example",
		PasswordHash: hash,
		Role:         entity.AdminRoleSuper,
		IsActive:     true,
	}
	require.NoError(t, env.factory.NewUnitOfWork(ctx).AdminUserRepository().Create(ctx, admin))

	resp, body := env.request(t, "POST", "/api/admin/auth/login", map[string]string{
		"email":    "ops@gulfcv.example",
		"password": "operator-pass-1",
	}, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ops@gulfcv.example", body["admin"].(map[string]interface{})["email"])
	adminCookie := map[string]string{"Cookie": "gcc_admin_session=" + sessionCookie(t, resp, "gcc_admin_session")}

	// Agency list is visible behind the admin session.
	env.request(t, "POST", "/api/auth/signup", signupBody("owner@agency.example"), nil)
	resp, body = env.request(t, "GET", "/api/admin/agencies", nil, adminCookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["agencies"].([]interface{}), 1)

	// An agency session never opens admin routes.
	resp, _ = env.request(t, "POST", "/api/auth/signup", signupBody("second@agency.example"), nil)
	agencyCookie := map[string]string{"Cookie": "gcc_admin_session=" + sessionCookie(t, resp, "gcc_session")}
	resp, body = env.request(t, "GET", "/api/admin/auth/me", nil, agencyCookie)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid admin session", body["error"])

	resp, body = env.request(t, "GET", "/api/admin/auth/me", nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Missing admin session", body["error"])
}

func TestAdminSessionRevokedOnDeactivation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	hash, err := credentials.HashPassword("operator-pass-1")
	require.NoError(t, err)
	admin := &entity.AdminUser{
		Email:        "ops@gulfcv.example",
		PasswordHash: hash,
		Role:         entity.AdminRoleSuper,
		IsActive:     true,
	}
	require.NoError(t, env.factory.NewUnitOfWork(ctx).AdminUserRepository().Create(ctx, admin))

	resp, _ := env.request(t, "POST", "/api/admin/auth/login", map[string]string{
		"email":    "ops@gulfcv.example",
		"password": "operator-pass-1",
	}, nil)
	adminCookie := map[string]string{"Cookie": "gcc_admin_session=" + sessionCookie(t, resp, "gcc_admin_session")}

	resp, _ = env.request(t, "GET", "/api/admin/auth/me", nil, adminCookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Deactivation cuts off the still-valid token on the very next request.
	require.NoError(t, env.factory.NewUnitOfWork(ctx).AdminUserRepository().SetActive(ctx, admin.Id, false))
	resp, body := env.request(t, "GET", "/api/admin/auth/me", nil, adminCookie)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Admin account is inactive", body["error"])

	resp, body = env.request(t, "GET", "/api/admin/agencies", nil, adminCookie)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Admin account is inactive", body["error"])
}

func TestAdminActivateAgency(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	hash, err := credentials.HashPassword("operator-pass-1")
	require.NoError(t, err)
	require.NoError(t, env.factory.NewUnitOfWork(ctx).AdminUserRepository().Create(ctx, &entity.AdminUser{
		Email:        "ops@gulfcv.example",
		PasswordHash: hash,
		Role:         entity.AdminRoleSuper,
		IsActive:     true,
	}))
	resp, _ := env.request(t, "POST", "/api/admin/auth/login", map[string]string{
		"email":    "ops@gulfcv.example",
		"password": "operator-pass-1",
	}, nil)
	adminCookie := map[string]string{"Cookie": "gcc_admin_session=" + sessionCookie(t, resp, "gcc_admin_session")}

	resp, body := env.request(t, "POST", "/api/auth/signup", signupBody("owner@agency.example"), nil)
	agencyId := body["agency"].(map[string]interface{})["id"].(string)
	agencyCookie := map[string]string{"Cookie": "gcc_session=" + sessionCookie(t, resp, "gcc_session")}

	// Move the agency off active via a payment request, then approve it.
	resp, body = env.request(t, "POST", "/api/subscription/payment-request", map[string]string{
		"paymentMethod":    "bank_transfer",
		"paymentReference": "TRX-1",
	}, agencyCookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "pending_approval", body["agency"].(map[string]interface{})["subscriptionStatus"])

	resp, body = env.request(t, "POST", "/api/admin/agencies/"+agencyId+"/activate", nil, adminCookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "active", body["agency"].(map[string]interface{})["subscriptionStatus"])
}

func TestPlansEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, "GET", "/api/plans", nil, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	plans := body["plans"].(map[string]interface{})
	free := plans["free"].(map[string]interface{})
	assert.Equal(t, "Free", free["name"])
	assert.Equal(t, float64(3), free["cvLimit"])
}

func TestNotFoundFallback(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, "GET", "/api/nope", nil, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not found", body["error"])
}
