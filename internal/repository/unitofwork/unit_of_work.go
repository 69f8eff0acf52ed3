// FILE: internal/repository/unitofwork/unit_of_work.go
package unitofwork

import (
	"context"

	"gulfcv-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	AgencyRepository() contract.AgencyRepository
	CvRecordRepository() contract.CvRecordRepository
	AdminUserRepository() contract.AdminUserRepository
	PasswordResetRepository() contract.PasswordResetRepository
}
