// FILE: internal/bootstrap/ensure_admin.go
package bootstrap

import (
	"context"
	"fmt"

	"gulfcv-be/internal/config"
	"gulfcv-be/internal/entity"
	"gulfcv-be/internal/pkg/credentials"
	"gulfcv-be/internal/pkg/logger"
	"gulfcv-be/internal/pkg/validation"
	"gulfcv-be/internal/repository/unitofwork"
)

// EnsureBootstrapAdmin creates the initial operator account from
// ADMIN_BOOTSTRAP_EMAIL / ADMIN_BOOTSTRAP_PASSWORD on startup. It is a no-op
// when the pair is unset or the account already exists, so restarts are safe.
func EnsureBootstrapAdmin(ctx context.Context, factory unitofwork.RepositoryFactory, cfg *config.Config, log logger.ILogger) error {
	email := cfg.Admin.BootstrapEmail
	password := cfg.Admin.BootstrapPassword
	if email == "" || password == "" {
		return nil
	}

	if err := validation.Validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("bootstrap admin: ADMIN_BOOTSTRAP_EMAIL is not a valid email")
	}
	if !cfg.Admin.IsEmailAllowed(email) {
		return fmt.Errorf("bootstrap admin: ADMIN_BOOTSTRAP_EMAIL is not in ADMIN_ALLOWED_EMAILS")
	}
	if len(password) < 12 {
		return fmt.Errorf("bootstrap admin: ADMIN_BOOTSTRAP_PASSWORD must be at least 12 characters")
	}

	uow := factory.NewUnitOfWork(ctx)
	existing, err := uow.AdminUserRepository().FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("bootstrap admin: lookup failed: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := credentials.HashPassword(password)
	if err != nil {
		return fmt.Errorf("bootstrap admin: hash password: %w", err)
	}
	admin := &entity.AdminUser{
		Email:        email,
		PasswordHash: hash,
		Role:         entity.AdminRoleSuper,
		IsActive:     true,
	}
	if err := uow.AdminUserRepository().Create(ctx, admin); err != nil {
		return fmt.Errorf("bootstrap admin: create failed: %w", err)
	}

	log.Info("bootstrap", "bootstrap admin created", map[string]interface{}{
		"email": email,
	})
	return nil
}
