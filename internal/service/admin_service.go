// FILE: internal/service/admin_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gulfcv-be/internal/apperrors"
	"gulfcv-be/internal/config"
	"gulfcv-be/internal/dto"
	"gulfcv-be/internal/entity"
	"gulfcv-be/internal/mapper"
	"gulfcv-be/internal/pkg/credentials"
	"gulfcv-be/internal/pkg/logger"
	"gulfcv-be/internal/repository/unitofwork"
)

type IAdminService interface {
	Login(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminResponse, error)
	GetAccount(ctx context.Context, adminId uuid.UUID) (*dto.AdminResponse, error)
	ListAgencies(ctx context.Context) ([]*dto.AgencyResponse, error)
	// ActivateAgency flips the subscription to active after an operator
	// verified the payment reference out of band.
	ActivateAgency(ctx context.Context, agencyId uuid.UUID) (*dto.AgencyResponse, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	cfg        *config.Config
	logger     logger.ILogger
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, cfg *config.Config, log logger.ILogger) IAdminService {
	return &adminService{
		uowFactory: uowFactory,
		cfg:        cfg,
		logger:     log,
	}
}

func (s *adminService) Login(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperrors.Validation("Missing credentials")
	}
	if !isValidEmail(email) {
		return nil, apperrors.Validation("Invalid email format")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	admin, err := uow.AdminUserRepository().FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	// Missing account and deactivated account read the same to the caller.
	if admin == nil || !admin.IsActive {
		return nil, apperrors.Auth("Invalid admin credentials")
	}
	if !s.cfg.Admin.IsEmailAllowed(admin.Email) {
		return nil, apperrors.Forbidden("Admin access is restricted.")
	}
	if !credentials.VerifyPassword(admin.PasswordHash, req.Password) {
		return nil, apperrors.Auth("Invalid admin credentials")
	}

	if err := uow.AdminUserRepository().UpdateLastLogin(ctx, admin.Id, time.Now()); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.logger.Info("admin", "admin logged in", map[string]interface{}{
		"admin_id": admin.Id.String(),
	})
	return mapper.ToAdminResponse(admin), nil
}

func (s *adminService) GetAccount(ctx context.Context, adminId uuid.UUID) (*dto.AdminResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	admin, err := uow.AdminUserRepository().FindById(ctx, adminId)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if admin == nil || !admin.IsActive {
		return nil, apperrors.Auth("Admin account is inactive")
	}
	return mapper.ToAdminResponse(admin), nil
}

func (s *adminService) ListAgencies(ctx context.Context) ([]*dto.AgencyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	agencies, err := uow.AgencyRepository().FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return mapper.ToAgencyResponses(agencies), nil
}

func (s *adminService) ActivateAgency(ctx context.Context, agencyId uuid.UUID) (*dto.AgencyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	agency, err := uow.AgencyRepository().FindById(ctx, agencyId)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if agency == nil {
		return nil, apperrors.NotFound("Agency not found")
	}

	updated, err := uow.AgencyRepository().UpdateSubscriptionStatus(ctx, agencyId, entity.SubscriptionActive)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.logger.Info("admin", "agency activated", map[string]interface{}{
		"agency_id": agencyId.String(),
	})
	return mapper.ToAgencyResponse(updated), nil
}
