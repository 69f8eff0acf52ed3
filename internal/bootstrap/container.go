// FILE: internal/bootstrap/container.go
package bootstrap

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gulfcv-be/internal/config"
	"gulfcv-be/internal/controller"
	"gulfcv-be/internal/pkg/logger"
	"gulfcv-be/internal/pkg/mailer"
	"gulfcv-be/internal/pkg/ratelimit"
	"gulfcv-be/internal/pkg/session"
	"gulfcv-be/internal/repository/unitofwork"
	"gulfcv-be/internal/service"
)

// Limit tiers, widest to narrowest. The global tier guards the whole API;
// auth endpoints get a tighter budget and login tighter still, since those
// are the ones worth brute-forcing.
const (
	globalLimitMax    = 800
	globalLimitWindow = 15 * time.Minute
	authLimitMax      = 90
	authLimitWindow   = 10 * time.Minute
	loginLimitMax     = 25
	loginLimitWindow  = 10 * time.Minute
	adminLimitMax     = 100
	adminLimitWindow  = 10 * time.Minute
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	AgencyController   controller.IAgencyController
	CvRecordController controller.ICvRecordController
	AdminController    controller.IAdminController
	PlanController     controller.IPlanController
	HealthController   controller.IHealthController

	// Shared facades the server wires into middleware
	Logger     logger.ILogger
	Sessions   *session.Manager
	UowFactory unitofwork.RepositoryFactory

	// Rate limit middleware, one handler per tier
	GlobalLimiter fiber.Handler
	AuthLimiter   fiber.Handler
	LoginLimiter  fiber.Handler
	AdminLimiter  fiber.Handler
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())

	sessions := session.NewManager(session.Config{
		AgencySecret:    cfg.Session.Secret,
		AdminSecret:     cfg.Session.AdminSecret,
		AgencyTTL:       cfg.Session.AgencyTTL,
		AdminTTL:        cfg.Session.AdminTTL,
		CookieName:      cfg.Session.CookieName,
		AdminCookieName: cfg.Session.AdminCookieName,
		CookieDomain:    cfg.Session.CookieDomain,
		CookieSameSite:  cfg.Session.CookieSameSite,
		CookieSecure:    cfg.Session.CookieSecure,
	})

	emailService := mailer.New(cfg, sysLogger)

	// 2. Rate limiting
	limitStore := newLimitStore(db, cfg, sysLogger)

	// 3. Services
	authService := service.NewAuthService(uowFactory, emailService, cfg, sysLogger)
	agencyService := service.NewAgencyService(uowFactory, cfg, sysLogger)
	cvRecordService := service.NewCvRecordService(uowFactory, sysLogger)
	adminService := service.NewAdminService(uowFactory, cfg, sysLogger)
	planService := service.NewPlanService()

	// 4. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService, agencyService, sessions),
		AgencyController:   controller.NewAgencyController(agencyService),
		CvRecordController: controller.NewCvRecordController(cvRecordService),
		AdminController:    controller.NewAdminController(adminService, sessions),
		PlanController:     controller.NewPlanController(planService),
		HealthController:   controller.NewHealthController(db, cfg.App.Environment),

		Logger:     sysLogger,
		Sessions:   sessions,
		UowFactory: uowFactory,

		GlobalLimiter: limiter("global", globalLimitMax, globalLimitWindow, limitStore, sysLogger),
		AuthLimiter:   limiter("auth", authLimitMax, authLimitWindow, limitStore, sysLogger),
		LoginLimiter:  limiter("login", loginLimitMax, loginLimitWindow, limitStore, sysLogger),
		AdminLimiter:  limiter("admin", adminLimitMax, adminLimitWindow, limitStore, sysLogger),
	}
}

func newLimitStore(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) ratelimit.Store {
	switch cfg.RateLimit.Store {
	case "postgres":
		return ratelimit.NewPostgresStore(db, sysLogger)
	case "redis":
		store, err := ratelimit.NewRedisStoreFromURL(cfg.RateLimit.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect rate limit Redis: %v. Falling back to memory store", err)
			return ratelimit.NewMemoryStore()
		}
		return store
	default:
		return ratelimit.NewMemoryStore()
	}
}

func limiter(prefix string, max int64, window time.Duration, store ratelimit.Store, sysLogger logger.ILogger) fiber.Handler {
	return ratelimit.New(ratelimit.Config{
		KeyPrefix: prefix,
		Window:    window,
		Max:       max,
		Store:     store,
		Logger:    sysLogger,
	})
}
