// FILE: internal/repository/implementation/agency_repository_impl.go
package implementation

import (
	"context"
	"encoding/json"
	"errors"

	"gulfcv-be/internal/entity"
	"gulfcv-be/internal/mapper"
	"gulfcv-be/internal/model"
	"gulfcv-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AgencyRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AgencyMapper
}

func NewAgencyRepository(db *gorm.DB) contract.AgencyRepository {
	return &AgencyRepositoryImpl{
		db:     db,
		mapper: mapper.NewAgencyMapper(),
	}
}

func (r *AgencyRepositoryImpl) Create(ctx context.Context, agency *entity.Agency) error {
	modelAgency := r.mapper.ToModel(agency)
	if err := r.db.WithContext(ctx).Create(modelAgency).Error; err != nil {
		return err
	}
	*agency = *r.mapper.ToEntity(modelAgency)
	return nil
}

func (r *AgencyRepositoryImpl) ResetMonthlyUsage(ctx context.Context, id uuid.UUID, monthKey string) (*entity.Agency, error) {
	err := r.db.WithContext(ctx).
		Model(&model.Agency{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"cvs_created":      0,
			"last_reset_month": monthKey,
		}).Error
	if err != nil {
		return nil, err
	}
	return r.FindById(ctx, id)
}

func (r *AgencyRepositoryImpl) UpdateNameAndProfile(ctx context.Context, id uuid.UUID, agencyName string, profile entity.AgencyProfile) (*entity.Agency, error) {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).
		Model(&model.Agency{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"agency_name": agencyName,
			"profile":     datatypes.JSON(profileJSON),
		}).Error
	if err != nil {
		return nil, err
	}
	return r.FindById(ctx, id)
}

func (r *AgencyRepositoryImpl) UpdatePaymentRequest(ctx context.Context, id uuid.UUID, method, reference, note string, status entity.SubscriptionStatus) (*entity.Agency, error) {
	err := r.db.WithContext(ctx).
		Model(&model.Agency{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_method":      method,
			"payment_reference":   reference,
			"payment_note":        note,
			"subscription_status": string(status),
		}).Error
	if err != nil {
		return nil, err
	}
	return r.FindById(ctx, id)
}

func (r *AgencyRepositoryImpl) UpdateSubscriptionStatus(ctx context.Context, id uuid.UUID, status entity.SubscriptionStatus) (*entity.Agency, error) {
	err := r.db.WithContext(ctx).
		Model(&model.Agency{}).
		Where("id = ?", id).
		Update("subscription_status", string(status)).Error
	if err != nil {
		return nil, err
	}
	return r.FindById(ctx, id)
}

func (r *AgencyRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Agency, error) {
	var modelAgency model.Agency
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&modelAgency).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&modelAgency), nil
}

func (r *AgencyRepositoryImpl) FindByIdForUpdate(ctx context.Context, id uuid.UUID) (*entity.Agency, error) {
	var modelAgency model.Agency
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&modelAgency).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&modelAgency), nil
}

func (r *AgencyRepositoryImpl) FindByEmail(ctx context.Context, email string) (*entity.Agency, error) {
	var modelAgency model.Agency
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&modelAgency).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&modelAgency), nil
}

func (r *AgencyRepositoryImpl) FindAll(ctx context.Context) ([]*entity.Agency, error) {
	var modelAgencies []*model.Agency
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&modelAgencies).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(modelAgencies), nil
}

func (r *AgencyRepositoryImpl) IncrementCvsCreated(ctx context.Context, id uuid.UUID) (*entity.Agency, error) {
	err := r.db.WithContext(ctx).
		Model(&model.Agency{}).
		Where("id = ?", id).
		UpdateColumn("cvs_created", gorm.Expr("cvs_created + 1")).Error
	if err != nil {
		return nil, err
	}
	return r.FindById(ctx, id)
}

func (r *AgencyRepositoryImpl) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&model.Agency{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}
