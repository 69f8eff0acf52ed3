// FILE: internal/repository/contract/password_reset_repository.go
package contract

import (
	"context"
	"time"

	"gulfcv-be/internal/entity"

	"github.com/google/uuid"
)

type PasswordResetRepository interface {
	Create(ctx context.Context, token *entity.PasswordResetToken) error
	// FindByTokenHashForUpdate locks the token row so two concurrent resets
	// with the same token serialize; only meaningful inside a transaction.
	FindByTokenHashForUpdate(ctx context.Context, tokenHash string) (*entity.PasswordResetToken, error)
	MarkUsed(ctx context.Context, id uuid.UUID, at time.Time) error
	// MarkAllUsedForAgency invalidates every outstanding token for the
	// agency, used both when issuing a fresh token and after a reset.
	MarkAllUsedForAgency(ctx context.Context, agencyId uuid.UUID, at time.Time) error
	// PurgeStale removes expired and consumed tokens.
	PurgeStale(ctx context.Context) error
}
