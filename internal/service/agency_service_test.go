// FILE: internal/service/agency_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gulfcv-be/internal/apperrors"
	"gulfcv-be/internal/config"
	"gulfcv-be/internal/dto"
	"gulfcv-be/internal/entity"
	"gulfcv-be/internal/pkg/logger"
	"gulfcv-be/internal/repository/memory"
)

func newAgencyService(t *testing.T, cfg *config.Config) (IAgencyService, *memory.Factory) {
	t.Helper()
	factory := memory.NewFactory()
	if cfg == nil {
		cfg = testConfig()
	}
	return NewAgencyService(factory, cfg, logger.NewNopLogger()), factory
}

func strPtr(s string) *string { return &s }

func TestGetAccountReconcilesMonth(t *testing.T) {
	svc, factory := newAgencyService(t, nil)
	agencyId := seedAgency(t, factory, func(a *entity.Agency) {
		a.CvsCreated = 3
		a.LastResetMonth = "2020-01"
	})

	res, err := svc.GetAccount(context.Background(), agencyId)
	require.NoError(t, err)
	assert.Equal(t, 0, res.CvsCreated)

	// The reset was persisted, not just reflected in the response.
	stored, err := factory.NewUnitOfWork(context.Background()).AgencyRepository().FindById(context.Background(), agencyId)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.CvsCreated)
}

func TestUpdateProfileMergesFields(t *testing.T) {
	svc, factory := newAgencyService(t, nil)
	agencyId := seedAgency(t, factory, func(a *entity.Agency) {
		a.Profile = entity.AgencyProfile{
			AgencyPhone:   "+971-50-0000000",
			AgencyTagline: "CVs done right",
		}
	})
	ctx := context.Background()

	res, err := svc.UpdateProfile(ctx, agencyId, &dto.UpdateProfileRequest{
		AgencyPhone:   strPtr("  +971-50-1111111  "),
		AgencyTagline: strPtr(""), // explicit empty clears
	})
	require.NoError(t, err)
	assert.Equal(t, "+971-50-1111111", res.Profile.AgencyPhone)
	assert.Equal(t, "", res.Profile.AgencyTagline)
	// Untouched fields keep their stored values.
	assert.Equal(t, "Gulf Manpower", res.AgencyName)
}

func TestUpdateProfileRequiresAgencyName(t *testing.T) {
	svc, factory := newAgencyService(t, nil)
	agencyId := seedAgency(t, factory, nil)

	_, err := svc.UpdateProfile(context.Background(), agencyId, &dto.UpdateProfileRequest{
		AgencyName: strPtr("   "),
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)
	assert.Equal(t, "Agency name is required", appErr.PublicMessage())
}

func TestSubmitPaymentRequest(t *testing.T) {
	svc, factory := newAgencyService(t, nil)
	agencyId := seedAgency(t, factory, func(a *entity.Agency) {
		a.SubscriptionStatus = entity.SubscriptionPendingPayment
	})

	res, err := svc.SubmitPaymentRequest(context.Background(), agencyId, &dto.PaymentRequest{
		PaymentMethod:    "bank_transfer",
		PaymentReference: "TRX-991",
		PaymentNote:      "sent from corporate account",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending_approval", res.SubscriptionStatus)
	assert.Equal(t, "bank_transfer", res.PaymentMethod)
	assert.Equal(t, "TRX-991", res.PaymentReference)
}

func TestSubmitPaymentRequestAutoApprove(t *testing.T) {
	cfg := testConfig()
	cfg.App.AutoApprovePayments = true
	svc, factory := newAgencyService(t, cfg)
	agencyId := seedAgency(t, factory, func(a *entity.Agency) {
		a.SubscriptionStatus = entity.SubscriptionPendingPayment
	})

	res, err := svc.SubmitPaymentRequest(context.Background(), agencyId, &dto.PaymentRequest{
		PaymentMethod:    "card",
		PaymentReference: "TRX-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "active", res.SubscriptionStatus)
}

func TestSubmitPaymentRequestValidation(t *testing.T) {
	svc, factory := newAgencyService(t, nil)
	agencyId := seedAgency(t, factory, nil)

	_, err := svc.SubmitPaymentRequest(context.Background(), agencyId, &dto.PaymentRequest{
		PaymentMethod: "bank_transfer",
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Payment method and reference are required", appErr.PublicMessage())
}
