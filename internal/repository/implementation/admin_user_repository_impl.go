// FILE: internal/repository/implementation/admin_user_repository_impl.go
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
)

type AdminUserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AdminUserMapper
}

func NewAdminUserRepository(db *gorm.DB) contract.AdminUserRepository {
	return &AdminUserRepositoryImpl{
		db:     db,
		mapper: mapper.NewAdminUserMapper(),
	}
}

func (r *AdminUserRepositoryImpl) Create(ctx context.Context, admin *entity.AdminUser) error {
	modelAdmin := r.mapper.ToModel(admin)
	if err := r.db.WithContext(ctx).Create(modelAdmin).Error; err != nil {
		return err
	}
	*admin = *r.mapper.ToEntity(modelAdmin)
	return nil
}

func (r *AdminUserRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.AdminUser, error) {
	var modelAdmin model.AdminUser
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&modelAdmin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&modelAdmin), nil
}

func (r *AdminUserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	var modelAdmin model.AdminUser
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&modelAdmin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&modelAdmin), nil
}

func (r *AdminUserRepositoryImpl) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.AdminUser{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}

func (r *AdminUserRepositoryImpl) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.db.WithContext(ctx).
		Model(&model.AdminUser{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}
