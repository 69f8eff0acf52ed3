// FILE: pkg/database/gorm.go
package database

import (
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gulfcv-be/internal/config"
)

func getLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second,   // Slow SQL threshold
			LogLevel:                  logger.Warn,   // Log level
			IgnoreRecordNotFoundError: true,          // Ignore ErrRecordNotFound error for logger
			ParameterizedQueries:      true,          // Don't include params in the SQL log
			Colorful:                  true,
		},
	)
}

// NewGormDB opens the pool described by the database config. The DSN is the
// DATABASE_URL as-is, with sslmode appended when the URL does not pin one.
func NewGormDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(buildDSN(cfg)), &gorm.Config{
		Logger: getLogger(),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.PoolSize)
	sqlDB.SetMaxIdleConns(cfg.PoolSize)
	sqlDB.SetConnMaxIdleTime(cfg.IdleTimeout)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

func buildDSN(cfg config.DatabaseConfig) string {
	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return cfg.URL
	}
	query := parsed.Query()
	if query.Get("sslmode") == "" {
		switch {
		case cfg.SSL && cfg.SSLRejectUnauthorized:
			query.Set("sslmode", "verify-full")
		case cfg.SSL:
			query.Set("sslmode", "require")
		default:
			query.Set("sslmode", "disable")
		}
		parsed.RawQuery = query.Encode()
	}
	if cfg.ConnectTimeout > 0 && query.Get("connect_timeout") == "" {
		seconds := int(cfg.ConnectTimeout.Seconds())
		if seconds < 1 {
			seconds = 1
		}
		query.Set("connect_timeout", strconv.Itoa(seconds))
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}
