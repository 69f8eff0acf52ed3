// FILE: internal/service/agency_service.go
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
	"gulfcv-be/internal/pkg/logger"
	"gulfcv-be/internal/repository/unitofwork"
)

type IAgencyService interface {
	// GetAccount loads the authenticated agency and lazily reconciles the
	// monthly usage window.
	GetAccount(ctx context.Context, agencyId uuid.UUID) (*dto.AgencyResponse, error)
	UpdateProfile(ctx context.Context, agencyId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.AgencyResponse, error)
	SubmitPaymentRequest(ctx context.Context, agencyId uuid.UUID, req *dto.PaymentRequest) (*dto.AgencyResponse, error)
}

type agencyService struct {
	uowFactory unitofwork.RepositoryFactory
	cfg        *config.Config
	logger     logger.ILogger
}

func NewAgencyService(uowFactory unitofwork.RepositoryFactory, cfg *config.Config, log logger.ILogger) IAgencyService {
	return &agencyService{
		uowFactory: uowFactory,
		cfg:        cfg,
		logger:     log,
	}
}

func (s *agencyService) GetAccount(ctx context.Context, agencyId uuid.UUID) (*dto.AgencyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	agency, err := uow.AgencyRepository().FindById(ctx, agencyId)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if agency == nil {
		return nil, apperrors.NotFound("Agency not found")
	}

	if agency.ReconcileMonthlyUsage(time.Now()) {
		agency, err = uow.AgencyRepository().ResetMonthlyUsage(ctx, agencyId, agency.LastResetMonth)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
	}
	return mapper.ToAgencyResponse(agency), nil
}

func (s *agencyService) UpdateProfile(ctx context.Context, agencyId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.AgencyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	agency, err := uow.AgencyRepository().FindById(ctx, agencyId)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if agency == nil {
		return nil, apperrors.NotFound("Agency not found")
	}

	// Absent fields keep the stored value; present fields are sanitized,
	// so an explicit empty string clears the field.
	prev := agency.Profile
	profile := entity.AgencyProfile{
		AgencyNameAr:  mergeField(req.AgencyNameAr, prev.AgencyNameAr, 160),
		AgencyTagline: mergeField(req.AgencyTagline, prev.AgencyTagline, 180),
		AgencyPhone:   mergeField(req.AgencyPhone, prev.AgencyPhone, 80),
		AgencyEmail:   mergeField(req.AgencyEmail, prev.AgencyEmail, 160),
		AgencyWebsite: mergeField(req.AgencyWebsite, prev.AgencyWebsite, 180),
		AgencyAddress: mergeField(req.AgencyAddress, prev.AgencyAddress, 220),
		AgencySocial1: mergeField(req.AgencySocial1, prev.AgencySocial1, 180),
		AgencySocial2: mergeField(req.AgencySocial2, prev.AgencySocial2, 180),
		AgencyLogo:    mergeField(req.AgencyLogo, prev.AgencyLogo, 400000),
		FraLogo:       mergeField(req.FraLogo, prev.FraLogo, 400000),
	}

	agencyName := agency.AgencyName
	if req.AgencyName != nil {
		agencyName = sanitizeText(*req.AgencyName, 120)
	}
	if agencyName == "" {
		return nil, apperrors.Validation("Agency name is required")
	}

	// Write only the columns this endpoint owns; a concurrent counter bump
	// must not be overwritten by this stale read.
	updated, err := uow.AgencyRepository().UpdateNameAndProfile(ctx, agencyId, agencyName, profile)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return mapper.ToAgencyResponse(updated), nil
}

func (s *agencyService) SubmitPaymentRequest(ctx context.Context, agencyId uuid.UUID, req *dto.PaymentRequest) (*dto.AgencyResponse, error) {
	method := sanitizeText(req.PaymentMethod, 80)
	reference := sanitizeText(req.PaymentReference, 120)
	note := sanitizeText(req.PaymentNote, 240)

	if method == "" || reference == "" {
		return nil, apperrors.Validation("Payment method and reference are required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	agency, err := uow.AgencyRepository().FindById(ctx, agencyId)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if agency == nil {
		return nil, apperrors.NotFound("Agency not found")
	}

	status := entity.SubscriptionPendingApproval
	if s.cfg.App.AutoApprovePayments {
		status = entity.SubscriptionActive
	}

	updated, err := uow.AgencyRepository().UpdatePaymentRequest(ctx, agencyId, method, reference, note, status)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.logger.Info("agency", "payment request submitted", map[string]interface{}{
		"agency_id": updated.Id.String(),
		"status":    string(updated.SubscriptionStatus),
	})
	return mapper.ToAgencyResponse(updated), nil
}

func mergeField(next *string, prev string, maxLen int) string {
	if next == nil {
		return sanitizeText(prev, maxLen)
	}
	return sanitizeText(*next, maxLen)
}
