// FILE: internal/repository/implementation/password_reset_repository_impl.go
package implementation

import (
	"context"
	"errors"
	"time"

	"gulfcv-be/internal/entity"
	"gulfcv-be/internal/mapper"
	"gulfcv-be/internal/model"
	"gulfcv-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PasswordResetRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AgencyMapper
}

func NewPasswordResetRepository(db *gorm.DB) contract.PasswordResetRepository {
	return &PasswordResetRepositoryImpl{
		db:     db,
		mapper: mapper.NewAgencyMapper(),
	}
}

func (r *PasswordResetRepositoryImpl) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	modelToken := r.mapper.PasswordResetToModel(token)
	if err := r.db.WithContext(ctx).Create(modelToken).Error; err != nil {
		return err
	}
	*token = *r.mapper.PasswordResetToEntity(modelToken)
	return nil
}

func (r *PasswordResetRepositoryImpl) FindByTokenHashForUpdate(ctx context.Context, tokenHash string) (*entity.PasswordResetToken, error) {
	var modelToken model.PasswordReset
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("token_hash = ?", tokenHash).
		First(&modelToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PasswordResetToEntity(&modelToken), nil
}

func (r *PasswordResetRepositoryImpl) MarkUsed(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.PasswordReset{}).
		Where("id = ?", id).
		Update("used_at", at).Error
}

func (r *PasswordResetRepositoryImpl) MarkAllUsedForAgency(ctx context.Context, agencyId uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.PasswordReset{}).
		Where("agency_id = ? AND used_at IS NULL", agencyId).
		Update("used_at", at).Error
}

func (r *PasswordResetRepositoryImpl) PurgeStale(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ? OR used_at IS NOT NULL", time.Now()).
		Delete(&model.PasswordReset{}).Error
}
