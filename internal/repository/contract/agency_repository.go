// FILE: internal/repository/contract/agency_repository.go
package contract

import (
	"context"

	"gulfcv-be/internal/entity"

	"github.com/google/uuid"
)

// AgencyRepository mutates agencies through column-scoped updates only.
// A read-modify-write of the whole row would silently erase concurrent
// counter bumps and status changes, so there is no whole-row update here.
type AgencyRepository interface {
	Create(ctx context.Context, agency *entity.Agency) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Agency, error)
	// FindByIdForUpdate takes a row lock; only meaningful inside a unit of
	// work transaction.
	FindByIdForUpdate(ctx context.Context, id uuid.UUID) (*entity.Agency, error)
	FindByEmail(ctx context.Context, email string) (*entity.Agency, error)
	// FindAll returns agencies newest first.
	FindAll(ctx context.Context) ([]*entity.Agency, error)
	// IncrementCvsCreated bumps the usage counter atomically and returns the
	// updated row.
	IncrementCvsCreated(ctx context.Context, id uuid.UUID) (*entity.Agency, error)
	// ResetMonthlyUsage zeroes the counter and stamps the new usage window.
	ResetMonthlyUsage(ctx context.Context, id uuid.UUID, monthKey string) (*entity.Agency, error)
	UpdateNameAndProfile(ctx context.Context, id uuid.UUID, agencyName string, profile entity.AgencyProfile) (*entity.Agency, error)
	UpdatePaymentRequest(ctx context.Context, id uuid.UUID, method, reference, note string, status entity.SubscriptionStatus) (*entity.Agency, error)
	UpdateSubscriptionStatus(ctx context.Context, id uuid.UUID, status entity.SubscriptionStatus) (*entity.Agency, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}
