// FILE: internal/service/admin_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gulfcv-be/internal/apperrors"
	"gulfcv-be/internal/config"
	"gulfcv-be/internal/dto"
	"gulfcv-be/internal/entity"
	"gulfcv-be/internal/pkg/credentials"
	"gulfcv-be/internal/pkg/logger"
	"gulfcv-be/internal/repository/memory"
)

func seedAdmin(t *testing.T, factory *memory.Factory, mutate func(*entity.AdminUser)) uuid.UUID {
	t.Helper()
	hash, err := credentials.HashPassword("operator-pass-1")
	require.NoError(t, err)
	admin := &entity.AdminUser{
		Email:        "ops@gulfcv.example",
		PasswordHash: hash,
		Role:         entity.AdminRoleSuper,
		IsActive:     true,
	}
	if mutate != nil {
		mutate(admin)
	}
	require.NoError(t, factory.NewUnitOfWork(context.Background()).AdminUserRepository().Create(context.Background(), admin))
	return admin.Id
}

func newAdminService(t *testing.T, cfg *config.Config) (IAdminService, *memory.Factory) {
	t.Helper()
	factory := memory.NewFactory()
	if cfg == nil {
		cfg = testConfig()
	}
	return NewAdminService(factory, cfg, logger.NewNopLogger()), factory
}

func TestAdminLogin(t *testing.T) {
	svc, factory := newAdminService(t, nil)
	adminId := seedAdmin(t, factory, nil)
	ctx := context.Background()

	res, err := svc.Login(ctx, &dto.AdminLoginRequest{Email: "ops@gulfcv.example", Password: "operator-pass-1"})
	require.NoError(t, err)
	assert.Equal(t, adminId, res.Id)
	assert.Equal(t, entity.AdminRoleSuper, res.Role)

	stored, err := factory.NewUnitOfWork(ctx).AdminUserRepository().FindById(ctx, adminId)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestAdminLoginUniformFailures(t *testing.T) {
	svc, factory := newAdminService(t, nil)
	seedAdmin(t, factory, nil)
	seedAdmin(t, factory, func(a *entity.AdminUser) {
		a.Email = "retired@gulfcv.example"
		a.IsActive = false
	})
	ctx := context.Background()

	// Unknown account, deactivated account, and wrong password all answer
	// with the same 401.
	for _, req := range []dto.AdminLoginRequest{
		{Email: "ghost@gulfcv.example", Password: "operator-pass-1"},
		{Email: "retired@gulfcv.example", Password: "operator-pass-1"},
		{Email: "ops@gulfcv.example", Password: "wrong"},
	} {
		_, err := svc.Login(ctx, &req)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.HTTPCode)
		assert.Equal(t, "Invalid admin credentials", appErr.PublicMessage())
	}
}

func TestAdminLoginAllowList(t *testing.T) {
	cfg := testConfig()
	cfg.Admin.AllowedEmails = []string{"someone-else@gulfcv.example"}
	svc, factory := newAdminService(t, cfg)
	seedAdmin(t, factory, nil)

	_, err := svc.Login(context.Background(), &dto.AdminLoginRequest{
		Email:    "ops@gulfcv.example",
		Password: "operator-pass-1",
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.HTTPCode)
	assert.Equal(t, "Admin access is restricted.", appErr.PublicMessage())
}

func TestAdminGetAccount(t *testing.T) {
	svc, factory := newAdminService(t, nil)
	adminId := seedAdmin(t, factory, nil)
	inactiveId := seedAdmin(t, factory, func(a *entity.AdminUser) {
		a.Email = "retired@gulfcv.example"
		a.IsActive = false
	})
	ctx := context.Background()

	res, err := svc.GetAccount(ctx, adminId)
	require.NoError(t, err)
	assert.Equal(t, "ops@gulfcv.example", res.Email)

	_, err = svc.GetAccount(ctx, inactiveId)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Admin account is inactive", appErr.PublicMessage())
}

func TestActivateAgency(t *testing.T) {
	svc, factory := newAdminService(t, nil)
	agencyId := seedAgency(t, factory, func(a *entity.Agency) {
		a.SubscriptionStatus = entity.SubscriptionPendingApproval
	})
	ctx := context.Background()

	res, err := svc.ActivateAgency(ctx, agencyId)
	require.NoError(t, err)
	assert.Equal(t, "active", res.SubscriptionStatus)

	_, err = svc.ActivateAgency(ctx, uuid.New())
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode)
	assert.Equal(t, "Agency not found", appErr.PublicMessage())
}

func TestListAgenciesNewestFirst(t *testing.T) {
	svc, factory := newAdminService(t, nil)
	seedAgency(t, factory, func(a *entity.Agency) { a.Email = "first@agency.example" })
	seedAgency(t, factory, func(a *entity.Agency) { a.Email = "second@agency.example" })

	agencies, err := svc.ListAgencies(context.Background())
	require.NoError(t, err)
	require.Len(t, agencies, 2)
}
