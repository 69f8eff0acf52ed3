// FILE: internal/repository/contract/cv_record_repository.go
package contract

import (
	"context"

	"gulfcv-be/internal/entity"

	"github.com/google/uuid"
)

type CvRecordRepository interface {
	// CreateIfAbsent inserts the record unless the (agency, idempotency key)
	// pair already exists. It returns false without error when the insert
	// was skipped, which is how retries are detected.
	CreateIfAbsent(ctx context.Context, record *entity.CvRecord) (bool, error)
	FindById(ctx context.Context, agencyId, id uuid.UUID) (*entity.CvRecord, error)
	// FindPage returns records newest first.
	FindPage(ctx context.Context, agencyId uuid.UUID, limit, offset int) ([]*entity.CvRecord, error)
	CountByAgency(ctx context.Context, agencyId uuid.UUID) (int64, error)
}
