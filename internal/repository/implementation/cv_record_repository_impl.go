// FILE: internal/repository/implementation/cv_record_repository_impl.go
package implementation

import (
	"context"
	"errors"

	"gulfcv-be/internal/entity"
	"gulfcv-be/internal/mapper"
	"gulfcv-be/internal/model"
	"gulfcv-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CvRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CvRecordMapper
}

func NewCvRecordRepository(db *gorm.DB) contract.CvRecordRepository {
	return &CvRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewCvRecordMapper(),
	}
}

func (r *CvRecordRepositoryImpl) CreateIfAbsent(ctx context.Context, record *entity.CvRecord) (bool, error) {
	modelRecord := r.mapper.ToModel(record)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "agency_id"}, {Name: "idempotency_key"}},
			DoNothing: true,
		}).
		Create(modelRecord)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	*record = *r.mapper.ToEntity(modelRecord)
	return true, nil
}

func (r *CvRecordRepositoryImpl) FindById(ctx context.Context, agencyId, id uuid.UUID) (*entity.CvRecord, error) {
	var modelRecord model.CvRecord
	err := r.db.WithContext(ctx).
		Where("id = ? AND agency_id = ?", id, agencyId).
		First(&modelRecord).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&modelRecord), nil
}

func (r *CvRecordRepositoryImpl) FindPage(ctx context.Context, agencyId uuid.UUID, limit, offset int) ([]*entity.CvRecord, error) {
	var modelRecords []*model.CvRecord
	err := r.db.WithContext(ctx).
		Where("agency_id = ?", agencyId).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&modelRecords).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(modelRecords), nil
}

func (r *CvRecordRepositoryImpl) CountByAgency(ctx context.Context, agencyId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.CvRecord{}).
		Where("agency_id = ?", agencyId).
		Count(&count).Error
	return count, err
}
