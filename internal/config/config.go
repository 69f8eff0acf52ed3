// FILE: internal/config/config.go
package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App           AppConfig
	Database      DatabaseConfig
	Session       SessionConfig
	RateLimit     RateLimitConfig
	Admin         AdminConfig
	PasswordReset PasswordResetConfig
	SMTP          SMTPConfig
}

type AppConfig struct {
	Port                string
	Environment         string
	LogFilePath         string
	CorsAllowedOrigins  []string
	TrustProxy          bool
	AutoApprovePayments bool
}

type DatabaseConfig struct {
	URL                   string
	SSL                   bool
	SSLRejectUnauthorized bool
	PoolSize              int
	ConnectTimeout        time.Duration
	IdleTimeout           time.Duration
	ConnMaxLifetime       time.Duration
}

type SessionConfig struct {
	Secret          string
	AdminSecret     string
	AgencyTTL       time.Duration
	AdminTTL        time.Duration
	CookieName      string
	AdminCookieName string
	CookieDomain    string
	CookieSameSite  string
	CookieSecure    bool
}

type RateLimitConfig struct {
	Store    string // "memory", "postgres" or "redis"
	RedisURL string
}

type AdminConfig struct {
	BootstrapEmail    string
	BootstrapPassword string
	AllowedEmails     []string
}

type PasswordResetConfig struct {
	TokenTTL        time.Duration
	Delivery        string // "log", "resend" or "smtp"
	URLBase         string
	ResendAPIKey    string
	ResendFromEmail string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

// IsEmailAllowed applies the admin allow list. An empty list allows every
// admin row; a non-empty list restricts logins and sessions to its members.
func (a AdminConfig) IsEmailAllowed(email string) bool {
	if len(a.AllowedEmails) == 0 {
		return true
	}
	normalized := strings.ToLower(strings.TrimSpace(email))
	for _, allowed := range a.AllowedEmails {
		if allowed == normalized {
			return true
		}
	}
	return false
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	environment := getEnv("APP_ENV", "development")
	isProd := environment == "production"

	corsOrigins := parseList(getEnv("CORS_ORIGINS", getEnv("FRONTEND_ORIGIN", "")))
	defaultStore := "memory"
	if isProd {
		defaultStore = "postgres"
	}

	cfg := &Config{
		App: AppConfig{
			Port:                getEnv("PORT", "3000"),
			Environment:         environment,
			LogFilePath:         getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins:  corsOrigins,
			TrustProxy:          getEnvAsBool("TRUST_PROXY", isProd),
			AutoApprovePayments: getEnvAsBool("AUTO_APPROVE_PAYMENTS", false),
		},
		Database: DatabaseConfig{
			URL:                   getEnv("DATABASE_URL", ""),
			SSL:                   getEnvAsBool("DATABASE_SSL", isProd),
			SSLRejectUnauthorized: getEnvAsBool("DATABASE_SSL_REJECT_UNAUTHORIZED", false),
			PoolSize:              maxInt(1, getEnvAsInt("DB_POOL_SIZE", 10)),
			ConnectTimeout:        time.Duration(maxInt(1000, getEnvAsInt("DB_CONNECT_TIMEOUT_MS", 10000))) * time.Millisecond,
			IdleTimeout:           time.Duration(maxInt(1000, getEnvAsInt("DB_IDLE_TIMEOUT_MS", 30000))) * time.Millisecond,
			ConnMaxLifetime:       time.Duration(maxInt(1, getEnvAsInt("DB_CONN_MAX_LIFETIME_MIN", 60))) * time.Minute,
		},
		Session: SessionConfig{
			Secret:          getEnv("JWT_SECRET", ""),
			AdminSecret:     getEnv("ADMIN_JWT_SECRET", ""),
			AgencyTTL:       time.Duration(maxInt(1, getEnvAsInt("AGENCY_SESSION_DAYS", 7))) * 24 * time.Hour,
			AdminTTL:        time.Duration(maxInt(1, getEnvAsInt("ADMIN_SESSION_HOURS", 12))) * time.Hour,
			CookieName:      sanitizeText(getEnv("SESSION_COOKIE_NAME", "gcc_session"), 80),
			AdminCookieName: sanitizeText(getEnv("ADMIN_SESSION_COOKIE_NAME", "gcc_admin_session"), 80),
			CookieDomain:    sanitizeText(getEnv("COOKIE_DOMAIN", ""), 160),
			CookieSameSite:  sanitizeSameSite(getEnv("COOKIE_SAME_SITE", "lax")),
			CookieSecure:    getEnvAsBool("COOKIE_SECURE", isProd),
		},
		RateLimit: RateLimitConfig{
			Store:    strings.ToLower(strings.TrimSpace(getEnv("RATE_LIMIT_STORE", defaultStore))),
			RedisURL: getEnv("REDIS_URL", ""),
		},
		Admin: AdminConfig{
			BootstrapEmail:    strings.ToLower(strings.TrimSpace(getEnv("ADMIN_BOOTSTRAP_EMAIL", ""))),
			BootstrapPassword: getEnv("ADMIN_BOOTSTRAP_PASSWORD", ""),
			AllowedEmails: parseEmailList(getEnv("ADMIN_ALLOWED_EMAILS",
				getEnv("ADMIN_OWNER_EMAIL", getEnv("ADMIN_BOOTSTRAP_EMAIL", "")))),
		},
		PasswordReset: PasswordResetConfig{
			TokenTTL:        time.Duration(clampInt(getEnvAsInt("PASSWORD_RESET_TOKEN_TTL_MINUTES", 30), 5, 180)) * time.Minute,
			Delivery:        strings.ToLower(getEnv("PASSWORD_RESET_DELIVERY", "log")),
			URLBase:         normalizeURLBase(getEnv("PASSWORD_RESET_URL_BASE", "")),
			ResendAPIKey:    strings.TrimSpace(getEnv("RESEND_API_KEY", "")),
			ResendFromEmail: sanitizeText(getEnv("RESEND_FROM_EMAIL", ""), 160),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "GulfCV"),
		},
	}

	if cfg.Session.AdminSecret == "" {
		cfg.Session.AdminSecret = cfg.Session.Secret
	}
	if cfg.PasswordReset.URLBase == "" && len(corsOrigins) > 0 {
		cfg.PasswordReset.URLBase = normalizeURLBase(corsOrigins[0])
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations that would only fail later at runtime:
// a missing database URL or signing secret, weak secrets or an open CORS
// list in production, or cookie settings browsers will silently drop.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.URL) == "" {
		return fmt.Errorf("config: DATABASE_URL is required")
	}
	if _, err := url.Parse(c.Database.URL); err != nil {
		return fmt.Errorf("config: DATABASE_URL is not a valid URL: %w", err)
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if c.App.IsProduction() {
		if len(c.Session.Secret) < 32 {
			return fmt.Errorf("config: JWT_SECRET must be at least 32 characters in production")
		}
		if len(c.Session.AdminSecret) < 32 {
			return fmt.Errorf("config: ADMIN_JWT_SECRET must be at least 32 characters in production")
		}
		if len(c.App.CorsAllowedOrigins) == 0 {
			return fmt.Errorf("config: CORS_ORIGINS is required in production")
		}
	}
	if c.Session.CookieSameSite == "none" && !c.Session.CookieSecure {
		return fmt.Errorf("config: COOKIE_SAME_SITE=none requires COOKIE_SECURE=true")
	}
	switch c.RateLimit.Store {
	case "memory", "postgres":
	case "redis":
		if c.RateLimit.RedisURL == "" {
			return fmt.Errorf("config: RATE_LIMIT_STORE=redis requires REDIS_URL")
		}
	default:
		return fmt.Errorf("config: unknown RATE_LIMIT_STORE %q", c.RateLimit.Store)
	}
	switch c.PasswordReset.Delivery {
	case "log", "resend", "smtp":
	default:
		return fmt.Errorf("config: unknown PASSWORD_RESET_DELIVERY %q", c.PasswordReset.Delivery)
	}
	if (c.Admin.BootstrapEmail == "") != (c.Admin.BootstrapPassword == "") {
		return fmt.Errorf("config: ADMIN_BOOTSTRAP_EMAIL and ADMIN_BOOTSTRAP_PASSWORD must be set together")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	switch strings.ToLower(getEnv(key, "")) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return fallback
}

func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// parseEmailList lowercases entries and drops anything that is not shaped
// like an email, so a typo in the allow list cannot open it up.
func parseEmailList(raw string) []string {
	parts := parseList(raw)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		email := strings.ToLower(p)
		if emailPattern.MatchString(email) {
			out = append(out, email)
		}
	}
	return out
}

func sanitizeText(raw string, maxLen int) string {
	s := strings.TrimSpace(raw)
	if len(s) > maxLen {
		return s[:maxLen]
	}
	return s
}

func maxInt(floor, v int) int {
	if v < floor {
		return floor
	}
	return v
}

func clampInt(v, floor, ceil int) int {
	if v < floor {
		return floor
	}
	if v > ceil {
		return ceil
	}
	return v
}

func sanitizeSameSite(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "strict":
		return "strict"
	case "none":
		return "none"
	default:
		return "lax"
	}
}

func normalizeURLBase(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}
