// FILE: internal/service/cv_record_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"gulfcv-be/internal/apperrors"
	"gulfcv-be/internal/dto"
	"gulfcv-be/internal/entity"
	"gulfcv-be/internal/mapper"
	"gulfcv-be/internal/pkg/logger"
	"gulfcv-be/internal/repository/unitofwork"
)

// maxSnapshotBytes bounds the stored CV payload. Oversize snapshots are
// replaced with an empty object rather than rejected: the creation still
// counts, the payload just is not kept.
const maxSnapshotBytes = 250000

type ICvRecordService interface {
	Create(ctx context.Context, agencyId uuid.UUID, req *dto.CreateCvRecordRequest) (*dto.CreateCvRecordResponse, error)
	List(ctx context.Context, agencyId uuid.UUID, limit, offset int) (*dto.CvRecordListResponse, error)
	Get(ctx context.Context, agencyId, recordId uuid.UUID) (*dto.CvRecordDetail, error)
}

type cvRecordService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewCvRecordService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) ICvRecordService {
	return &cvRecordService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

// Create runs the whole quota check inside one transaction with the agency
// row locked. The unique (agency, idempotency key) index is the source of
// truth for retries: when the insert is skipped the counter is not bumped
// and the response reports AlreadyCounted=true.
func (s *cvRecordService) Create(ctx context.Context, agencyId uuid.UUID, req *dto.CreateCvRecordRequest) (*dto.CreateCvRecordResponse, error) {
	now := time.Now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperrors.Internal(err)
	}
	defer uow.Rollback()

	// 1. Lock the agency row for the duration of the check-and-increment.
	agency, err := uow.AgencyRepository().FindByIdForUpdate(ctx, agencyId)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if agency == nil {
		return nil, apperrors.NotFound("Agency not found")
	}

	// 2. Roll the usage window over if the month changed since last write.
	if agency.ReconcileMonthlyUsage(now) {
		agency, err = uow.AgencyRepository().ResetMonthlyUsage(ctx, agencyId, agency.LastResetMonth)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
	}

	// 3. Enforce subscription state and quota against the reconciled counter.
	if agency.SubscriptionStatus != entity.SubscriptionActive {
		return nil, apperrors.Forbidden("Subscription is not active.")
	}
	if !agency.HasQuotaRemaining() {
		return nil, apperrors.Forbidden("Monthly CV limit reached")
	}

	// 4. Build the record from sanitized input.
	idempotencyKey := sanitizeText(req.IdempotencyKey, 120)
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}
	source := sanitizeText(req.Source, 32)
	if source == "" {
		source = "manual"
	}
	record := &entity.CvRecord{
		Id:             uuid.New(),
		AgencyId:       agency.Id,
		IdempotencyKey: idempotencyKey,
		Source:         source,
		CandidateName:  sanitizeText(req.CandidateName, 200),
		ReferenceNo:    sanitizeText(req.ReferenceNo, 120),
		Snapshot:       boundSnapshot(req.Snapshot),
	}

	// 5. Insert; a retried key skips the insert and the counter stays put.
	inserted, err := uow.CvRecordRepository().CreateIfAbsent(ctx, record)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !inserted {
		if err := uow.Commit(); err != nil {
			return nil, apperrors.Internal(err)
		}
		return &dto.CreateCvRecordResponse{
			Ok:             true,
			AlreadyCounted: true,
			Agency:         mapper.ToAgencyResponse(agency),
		}, nil
	}

	// 6. Count the creation and commit both writes together.
	updated, err := uow.AgencyRepository().IncrementCvsCreated(ctx, agency.Id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.logger.Info("cv_record", "cv record created", map[string]interface{}{
		"agency_id":   agency.Id.String(),
		"record_id":   record.Id.String(),
		"cvs_created": updated.CvsCreated,
	})
	return &dto.CreateCvRecordResponse{
		Ok:             true,
		AlreadyCounted: false,
		Agency:         mapper.ToAgencyResponse(updated),
	}, nil
}

func (s *cvRecordService) List(ctx context.Context, agencyId uuid.UUID, limit, offset int) (*dto.CvRecordListResponse, error) {
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	agency, err := uow.AgencyRepository().FindById(ctx, agencyId)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if agency == nil {
		return nil, apperrors.NotFound("Agency not found")
	}

	total, err := uow.CvRecordRepository().CountByAgency(ctx, agencyId)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	records, err := uow.CvRecordRepository().FindPage(ctx, agencyId, limit, offset)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	items := make([]dto.CvRecordListItem, len(records))
	for i, r := range records {
		items[i] = mapper.ToCvRecordListItem(r)
	}
	return &dto.CvRecordListResponse{
		Records: items,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}, nil
}

func (s *cvRecordService) Get(ctx context.Context, agencyId, recordId uuid.UUID) (*dto.CvRecordDetail, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	record, err := uow.CvRecordRepository().FindById(ctx, agencyId, recordId)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if record == nil {
		return nil, apperrors.NotFound("Record not found")
	}
	return mapper.ToCvRecordDetail(record), nil
}

func boundSnapshot(snapshot json.RawMessage) json.RawMessage {
	if len(snapshot) == 0 || !json.Valid(snapshot) {
		return json.RawMessage("{}")
	}
	if len(snapshot) > maxSnapshotBytes {
		return json.RawMessage("{}")
	}
	return snapshot
}
