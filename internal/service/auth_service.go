// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"

	"gulfcv-be/internal/apperrors"
	"gulfcv-be/internal/config"
	"gulfcv-be/internal/constant"
	"gulfcv-be/internal/dto"
	"gulfcv-be/internal/entity"
	"gulfcv-be/internal/mapper"
	"gulfcv-be/internal/pkg/credentials"
	"gulfcv-be/internal/pkg/logger"
	"gulfcv-be/internal/pkg/mailer"
	"gulfcv-be/internal/repository/unitofwork"
)

type IAuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AgencyResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AgencyResponse, error)
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest, requestId string) (*dto.ForgotPasswordResponse, error)
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
}

type authService struct {
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	cfg          *config.Config
	logger       logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	cfg *config.Config,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:   uowFactory,
		emailService: emailService,
		cfg:          cfg,
		logger:       log,
	}
}

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AgencyResponse, error) {
	agencyName := sanitizeText(req.AgencyName, 120)
	email := normalizeEmail(req.Email)
	selectedPlan := sanitizeText(req.Plan, 40)

	if agencyName == "" || email == "" || req.Password == "" || selectedPlan == "" {
		return nil, apperrors.Validation("Missing required fields")
	}
	if !isValidEmail(email) {
		return nil, apperrors.Validation("Invalid email format")
	}
	if len(req.Password) < 8 {
		return nil, apperrors.Validation("Password must be at least 8 characters")
	}
	plan, ok := constant.PlanByKey(selectedPlan)
	if !ok {
		return nil, apperrors.Validation("Invalid plan")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// 1. Reject duplicate email up front for a clean 409.
	existing, err := uow.AgencyRepository().FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("Email already exists")
	}

	// 2. Hash credentials and seed plan defaults.
	passwordHash, err := credentials.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	agency := &entity.Agency{
		Id:                 uuid.New(),
		AgencyName:         agencyName,
		Email:              email,
		PasswordHash:       passwordHash,
		Plan:               plan.Key,
		PlanName:           plan.Name,
		CvLimit:            plan.CvLimit,
		CvsCreated:         0,
		Templates:          append([]string{}, plan.Templates...),
		SubscriptionStatus: entity.SubscriptionActive,
		LastResetMonth:     entity.MonthKey(time.Now()),
	}

	// 3. Persist. A concurrent signup with the same email loses the race on
	// the unique index and still comes back as 409.
	if err := uow.AgencyRepository().Create(ctx, agency); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("Email already exists")
		}
		return nil, apperrors.Internal(err)
	}

	s.logger.Info("auth", "agency signed up", map[string]interface{}{
		"agency_id": agency.Id.String(),
		"plan":      agency.Plan,
	})
	return mapper.ToAgencyResponse(agency), nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AgencyResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperrors.Validation("Missing credentials")
	}
	if !isValidEmail(email) {
		return nil, apperrors.Validation("Invalid email format")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	agency, err := uow.AgencyRepository().FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	// Unknown email and wrong password produce the same answer.
	if agency == nil || !credentials.VerifyPassword(agency.PasswordHash, req.Password) {
		return nil, apperrors.Auth("Invalid email or password")
	}

	if agency.ReconcileMonthlyUsage(time.Now()) {
		agency, err = uow.AgencyRepository().ResetMonthlyUsage(ctx, agency.Id, agency.LastResetMonth)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
	}
	return mapper.ToAgencyResponse(agency), nil
}

func (s *authService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest, requestId string) (*dto.ForgotPasswordResponse, error) {
	const genericMessage = "If an account exists for this email, a reset link has been sent."

	if s.cfg.PasswordReset.Delivery == "resend" &&
		(s.cfg.PasswordReset.ResendAPIKey == "" || s.cfg.PasswordReset.ResendFromEmail == "") {
		return nil, apperrors.Upstream("Password reset email is not configured.", nil)
	}

	response := &dto.ForgotPasswordResponse{Ok: true, Message: genericMessage}

	// A malformed or unknown email returns the generic response untouched;
	// the endpoint must not reveal which addresses exist.
	email := normalizeEmail(req.Email)
	if email == "" || !isValidEmail(email) {
		return response, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	agency, err := uow.AgencyRepository().FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if agency == nil {
		return response, nil
	}

	rawToken, tokenHash, err := credentials.NewResetToken()
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	resetURL := s.buildResetURL(rawToken)
	now := time.Now()

	if err := uow.Begin(ctx); err != nil {
		return nil, apperrors.Internal(err)
	}
	defer uow.Rollback()

	resets := uow.PasswordResetRepository()
	if err := resets.PurgeStale(ctx); err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := resets.MarkAllUsedForAgency(ctx, agency.Id, now); err != nil {
		return nil, apperrors.Internal(err)
	}
	token := &entity.PasswordResetToken{
		Id:        uuid.New(),
		AgencyId:  agency.Id,
		TokenHash: tokenHash,
		ExpiresAt: now.Add(s.cfg.PasswordReset.TokenTTL),
	}
	if err := resets.Create(ctx, token); err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := s.emailService.SendPasswordResetLink(ctx, email, resetURL, requestId); err != nil {
		s.logger.Error("auth", "password reset delivery failed", map[string]interface{}{
			"request_id": requestId,
			"error":      err.Error(),
		})
		return nil, apperrors.Upstream("Unable to process password reset request.", err)
	}

	if !s.cfg.App.IsProduction() && s.cfg.PasswordReset.Delivery == "log" {
		response.DebugResetURL = resetURL
		response.DebugResetToken = rawToken
	}
	return response, nil
}

func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	rawToken := sanitizeText(req.Token, 300)
	if rawToken == "" || req.Password == "" {
		return apperrors.Validation("Token and password are required.")
	}
	if len(req.Password) < 8 {
		return apperrors.Validation("Password must be at least 8 characters.")
	}

	tokenHash := credentials.HashToken(rawToken)
	now := time.Now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperrors.Internal(err)
	}
	defer uow.Rollback()

	token, err := uow.PasswordResetRepository().FindByTokenHashForUpdate(ctx, tokenHash)
	if err != nil {
		return apperrors.Internal(err)
	}
	if token == nil || !token.Usable(now) {
		return apperrors.Validation("Reset token is invalid or expired.")
	}

	passwordHash, err := credentials.HashPassword(req.Password)
	if err != nil {
		return apperrors.Internal(err)
	}

	if err := uow.AgencyRepository().UpdatePassword(ctx, token.AgencyId, passwordHash); err != nil {
		return apperrors.Internal(err)
	}
	if err := uow.PasswordResetRepository().MarkUsed(ctx, token.Id, now); err != nil {
		return apperrors.Internal(err)
	}
	if err := uow.PasswordResetRepository().MarkAllUsedForAgency(ctx, token.AgencyId, now); err != nil {
		return apperrors.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return apperrors.Internal(err)
	}

	s.logger.Info("auth", "password reset completed", map[string]interface{}{
		"agency_id": token.AgencyId.String(),
	})
	return nil
}

func (s *authService) buildResetURL(rawToken string) string {
	token := url.QueryEscape(rawToken)
	if s.cfg.PasswordReset.URLBase == "" {
		return "auth?mode=reset&token=" + token
	}
	return s.cfg.PasswordReset.URLBase + "/auth?mode=reset&token=" + token
}
