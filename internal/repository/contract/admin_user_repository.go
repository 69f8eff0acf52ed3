// FILE: internal/repository/contract/admin_user_repository.go
package contract

import (
	"context"
	"time"

	"gulfcv-be/internal/entity"

	"github.com/google/uuid"
)

type AdminUserRepository interface {
	Create(ctx context.Context, admin *entity.AdminUser) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.AdminUser, error)
	FindByEmail(ctx context.Context, email string) (*entity.AdminUser, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	// SetActive enables or disables the account. The session middleware
	// re-reads the row per request, so disabling takes effect immediately.
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}
