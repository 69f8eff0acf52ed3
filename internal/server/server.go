// FILE: internal/server/server.go
package server

import (
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"gulfcv-be/internal/bootstrap"
	"gulfcv-be/internal/config"
	"gulfcv-be/internal/pkg/serverutils"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:               2 * 1024 * 1024, // CV snapshots cap at 2MB
		EnableTrustedProxyCheck: cfg.App.TrustProxy,
		ProxyHeader:             proxyHeader(cfg),
	})

	app.Use(serverutils.RequestIdMiddleware(container.Logger))
	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger))
	app.Use(serverutils.SecurityHeadersMiddleware(cfg.App.IsProduction()))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(cors.New(corsConfig(cfg)))
	app.Use(serverutils.OriginGuardMiddleware(cfg.App.IsProduction(), cfg.App.CorsAllowedOrigins))
	app.Use(container.GlobalLimiter)

	registerRoutes(app, cfg, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}

func registerRoutes(app *fiber.App, cfg *config.Config, c *bootstrap.Container) {
	requireAgency := serverutils.AgencySessionMiddleware(c.Sessions)
	requireAdmin := serverutils.AdminSessionMiddleware(c.Sessions, c.UowFactory, cfg.Admin, c.Logger)

	api := app.Group("/api")

	c.HealthController.RegisterRoutes(api)
	c.PlanController.RegisterRoutes(api)
	c.AuthController.RegisterRoutes(api, c.AuthLimiter, c.LoginLimiter, requireAgency)
	c.AgencyController.RegisterRoutes(api, requireAgency)
	c.CvRecordController.RegisterRoutes(api, requireAgency)
	c.AdminController.RegisterRoutes(api, c.AdminLimiter, requireAdmin)

	app.Use(func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	})
}

func corsConfig(cfg *config.Config) cors.Config {
	cc := cors.Config{
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-Id",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset",
	}
	if cfg.App.IsProduction() {
		allowed := cfg.App.CorsAllowedOrigins
		cc.AllowOriginsFunc = func(origin string) bool {
			for _, a := range allowed {
				if a == origin {
					return true
				}
			}
			return false
		}
	} else {
		// Local frontends run on arbitrary ports; reflect whatever asks.
		cc.AllowOriginsFunc = func(origin string) bool { return true }
	}
	return cc
}

func proxyHeader(cfg *config.Config) string {
	if cfg.App.TrustProxy {
		return fiber.HeaderXForwardedFor
	}
	return ""
}
