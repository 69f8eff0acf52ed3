// FILE: cmd/migrate/main.go
package main

import (
	"log"

	"github.com/fatih/color"

	"gulfcv-be/internal/config"
	"gulfcv-be/internal/model"
	"gulfcv-be/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := database.NewGormDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	color.Cyan("Starting GORM migration...")

	// 1. Extensions GORM will not create on its own. gen_random_uuid() needs
	// pgcrypto on Postgres < 13.
	color.Yellow("Step 1: Extensions")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: failed to create pgcrypto extension: %v. Continuing...", err)
	}

	// 2. AutoMigrate all tables
	color.Yellow("Step 2: AutoMigrate")
	models := []interface{}{
		&model.Agency{},
		&model.CvRecord{},
		&model.AdminUser{},
		&model.PasswordReset{},
		&model.ApiRateLimit{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		color.Red("AutoMigrate failed: %v", err)
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	color.Green("✅ Migration complete (%d tables)", len(models))
}
