// FILE: test/integration/postgres_integration_test.go
package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gulfcv-be/internal/config"
	"gulfcv-be/internal/entity"
	"gulfcv-be/internal/model"
	"gulfcv-be/internal/pkg/logger"
	"gulfcv-be/internal/pkg/ratelimit"
	"gulfcv-be/internal/repository/unitofwork"
	"gulfcv-be/pkg/database"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	db, err := database.NewGormDB(config.DatabaseConfig{
		URL:             dsn,
		PoolSize:        5,
		ConnectTimeout:  5 * time.Second,
		IdleTimeout:     time.Minute,
		ConnMaxLifetime: time.Hour,
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error)
	require.NoError(t, db.AutoMigrate(
		&model.Agency{},
		&model.CvRecord{},
		&model.AdminUser{},
		&model.PasswordReset{},
		&model.ApiRateLimit{},
	))
	return db
}

func TestAgencyRepositoryRoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	email := "it-" + uuid.NewString() + "@agency.example"
	agency := &entity.Agency{
		AgencyName:         "Integration Agency",
		Email:              email,
		PasswordHash:       "hash",
		Plan:               "free",
		PlanName:           "Free",
		CvLimit:            3,
		Templates:          []string{"classic"},
		SubscriptionStatus: entity.SubscriptionActive,
		LastResetMonth:     entity.MonthKey(time.Now()),
		Profile:            entity.AgencyProfile{AgencyPhone: "+971-50-0000000"},
	}
	require.NoError(t, uow.AgencyRepository().Create(ctx, agency))

	found, err := uow.AgencyRepository().FindByEmail(ctx, email)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, []string{"classic"}, found.Templates)
	assert.Equal(t, "+971-50-0000000", found.Profile.AgencyPhone)

	updated, err := uow.AgencyRepository().IncrementCvsCreated(ctx, found.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.CvsCreated)
}

func TestCvRecordIdempotencyIndex(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	agency := &entity.Agency{
		AgencyName:         "Integration Agency",
		Email:              "it-" + uuid.NewString() + "@agency.example",
		PasswordHash:       "hash",
		Plan:               "free",
		CvLimit:            3,
		SubscriptionStatus: entity.SubscriptionActive,
		LastResetMonth:     entity.MonthKey(time.Now()),
	}
	require.NoError(t, uow.AgencyRepository().Create(ctx, agency))

	record := &entity.CvRecord{
		Id:             uuid.New(),
		AgencyId:       agency.Id,
		IdempotencyKey: uuid.NewString(),
		Source:         "manual",
		Snapshot:       []byte(`{}`),
	}
	inserted, err := uow.CvRecordRepository().CreateIfAbsent(ctx, record)
	require.NoError(t, err)
	assert.True(t, inserted)

	// The database-level unique index, not application logic, swallows the
	// duplicate.
	dup := *record
	dup.Id = uuid.New()
	inserted, err = uow.CvRecordRepository().CreateIfAbsent(ctx, &dup)
	require.NoError(t, err)
	assert.False(t, inserted)

	count, err := uow.CvRecordRepository().CountByAgency(ctx, agency.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPostgresRateLimitStore(t *testing.T) {
	db := testDB(t)
	store := ratelimit.NewPostgresStore(db, logger.NewNopLogger())
	ctx := context.Background()

	key := "it:" + uuid.NewString()
	count, resetAt, err := store.Increment(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.True(t, resetAt.After(time.Now()))

	count, _, err = store.Increment(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
