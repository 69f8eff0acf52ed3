// FILE: internal/repository/memory/memory.go

// Package memory provides map-backed implementations of the repository
// contracts. Services are tested against these instead of a live Postgres;
// behavior mirrors the GORM implementations, including duplicate-key errors
// that satisfy apperrors.IsUniqueViolation.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"gulfcv-be/internal/entity"
	"gulfcv-be/internal/repository/contract"
	"gulfcv-be/internal/repository/unitofwork"
)

type Factory struct {
	mu       sync.Mutex
	agencies map[uuid.UUID]*entity.Agency
	records  map[uuid.UUID]*entity.CvRecord
	admins   map[uuid.UUID]*entity.AdminUser
	resets   map[uuid.UUID]*entity.PasswordResetToken
}

func NewFactory() *Factory {
	return &Factory{
		agencies: make(map[uuid.UUID]*entity.Agency),
		records:  make(map[uuid.UUID]*entity.CvRecord),
		admins:   make(map[uuid.UUID]*entity.AdminUser),
		resets:   make(map[uuid.UUID]*entity.PasswordResetToken),
	}
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{f: f}
}

// unitOfWork over the in-memory store. Begin/Commit/Rollback are accepted
// and ignored: every operation applies immediately under the factory mutex.
type unitOfWork struct {
	f *Factory
}

func (u *unitOfWork) Begin(ctx context.Context) error { return nil }
func (u *unitOfWork) Commit() error                   { return nil }
func (u *unitOfWork) Rollback() error                 { return nil }

func (u *unitOfWork) AgencyRepository() contract.AgencyRepository {
	return &agencyRepository{f: u.f}
}

func (u *unitOfWork) CvRecordRepository() contract.CvRecordRepository {
	return &cvRecordRepository{f: u.f}
}

func (u *unitOfWork) AdminUserRepository() contract.AdminUserRepository {
	return &adminUserRepository{f: u.f}
}

func (u *unitOfWork) PasswordResetRepository() contract.PasswordResetRepository {
	return &passwordResetRepository{f: u.f}
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// --- agencies ---

type agencyRepository struct {
	f *Factory
}

func (r *agencyRepository) Create(ctx context.Context, agency *entity.Agency) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, existing := range r.f.agencies {
		if existing.Email == agency.Email {
			return uniqueViolation("idx_agencies_email")
		}
	}
	if agency.Id == uuid.Nil {
		agency.Id = uuid.New()
	}
	now := time.Now()
	agency.CreatedAt = now
	agency.UpdatedAt = now
	r.f.agencies[agency.Id] = cloneAgency(agency)
	return nil
}

func (r *agencyRepository) ResetMonthlyUsage(ctx context.Context, id uuid.UUID, monthKey string) (*entity.Agency, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	a, ok := r.f.agencies[id]
	if !ok {
		return nil, nil
	}
	a.CvsCreated = 0
	a.LastResetMonth = monthKey
	a.UpdatedAt = time.Now()
	return cloneAgency(a), nil
}

func (r *agencyRepository) UpdateNameAndProfile(ctx context.Context, id uuid.UUID, agencyName string, profile entity.AgencyProfile) (*entity.Agency, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	a, ok := r.f.agencies[id]
	if !ok {
		return nil, nil
	}
	a.AgencyName = agencyName
	a.Profile = profile
	a.UpdatedAt = time.Now()
	return cloneAgency(a), nil
}

func (r *agencyRepository) UpdatePaymentRequest(ctx context.Context, id uuid.UUID, method, reference, note string, status entity.SubscriptionStatus) (*entity.Agency, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	a, ok := r.f.agencies[id]
	if !ok {
		return nil, nil
	}
	a.PaymentMethod = method
	a.PaymentReference = reference
	a.PaymentNote = note
	a.SubscriptionStatus = status
	a.UpdatedAt = time.Now()
	return cloneAgency(a), nil
}

func (r *agencyRepository) UpdateSubscriptionStatus(ctx context.Context, id uuid.UUID, status entity.SubscriptionStatus) (*entity.Agency, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	a, ok := r.f.agencies[id]
	if !ok {
		return nil, nil
	}
	a.SubscriptionStatus = status
	a.UpdatedAt = time.Now()
	return cloneAgency(a), nil
}

func (r *agencyRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.Agency, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if a, ok := r.f.agencies[id]; ok {
		return cloneAgency(a), nil
	}
	return nil, nil
}

func (r *agencyRepository) FindByIdForUpdate(ctx context.Context, id uuid.UUID) (*entity.Agency, error) {
	return r.FindById(ctx, id)
}

func (r *agencyRepository) FindByEmail(ctx context.Context, email string) (*entity.Agency, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, a := range r.f.agencies {
		if a.Email == email {
			return cloneAgency(a), nil
		}
	}
	return nil, nil
}

func (r *agencyRepository) FindAll(ctx context.Context) ([]*entity.Agency, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	out := make([]*entity.Agency, 0, len(r.f.agencies))
	for _, a := range r.f.agencies {
		out = append(out, cloneAgency(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *agencyRepository) IncrementCvsCreated(ctx context.Context, id uuid.UUID) (*entity.Agency, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	a, ok := r.f.agencies[id]
	if !ok {
		return nil, nil
	}
	a.CvsCreated++
	a.UpdatedAt = time.Now()
	return cloneAgency(a), nil
}

func (r *agencyRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if a, ok := r.f.agencies[id]; ok {
		a.PasswordHash = passwordHash
		a.UpdatedAt = time.Now()
	}
	return nil
}

func cloneAgency(a *entity.Agency) *entity.Agency {
	cp := *a
	cp.Templates = append([]string(nil), a.Templates...)
	return &cp
}

// --- cv records ---

type cvRecordRepository struct {
	f *Factory
}

func (r *cvRecordRepository) CreateIfAbsent(ctx context.Context, record *entity.CvRecord) (bool, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, existing := range r.f.records {
		if existing.AgencyId == record.AgencyId && existing.IdempotencyKey == record.IdempotencyKey {
			return false, nil
		}
	}
	if record.Id == uuid.Nil {
		record.Id = uuid.New()
	}
	record.CreatedAt = time.Now()
	r.f.records[record.Id] = cloneCvRecord(record)
	return true, nil
}

func (r *cvRecordRepository) FindById(ctx context.Context, agencyId, id uuid.UUID) (*entity.CvRecord, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if rec, ok := r.f.records[id]; ok && rec.AgencyId == agencyId {
		return cloneCvRecord(rec), nil
	}
	return nil, nil
}

func (r *cvRecordRepository) FindPage(ctx context.Context, agencyId uuid.UUID, limit, offset int) ([]*entity.CvRecord, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	all := make([]*entity.CvRecord, 0)
	for _, rec := range r.f.records {
		if rec.AgencyId == agencyId {
			all = append(all, cloneCvRecord(rec))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return []*entity.CvRecord{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *cvRecordRepository) CountByAgency(ctx context.Context, agencyId uuid.UUID) (int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var n int64
	for _, rec := range r.f.records {
		if rec.AgencyId == agencyId {
			n++
		}
	}
	return n, nil
}

func cloneCvRecord(rec *entity.CvRecord) *entity.CvRecord {
	cp := *rec
	cp.Snapshot = append([]byte(nil), rec.Snapshot...)
	return &cp
}

// --- admin users ---

type adminUserRepository struct {
	f *Factory
}

func (r *adminUserRepository) Create(ctx context.Context, admin *entity.AdminUser) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, existing := range r.f.admins {
		if existing.Email == admin.Email {
			return uniqueViolation("idx_admin_users_email")
		}
	}
	if admin.Id == uuid.Nil {
		admin.Id = uuid.New()
	}
	now := time.Now()
	admin.CreatedAt = now
	admin.UpdatedAt = now
	cp := *admin
	r.f.admins[admin.Id] = &cp
	return nil
}

func (r *adminUserRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.AdminUser, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if a, ok := r.f.admins[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *adminUserRepository) FindByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, a := range r.f.admins {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *adminUserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if a, ok := r.f.admins[id]; ok {
		a.IsActive = active
		a.UpdatedAt = time.Now()
	}
	return nil
}

func (r *adminUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if a, ok := r.f.admins[id]; ok {
		t := at
		a.LastLoginAt = &t
		a.UpdatedAt = at
	}
	return nil
}

// --- password resets ---

type passwordResetRepository struct {
	f *Factory
}

func (r *passwordResetRepository) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, existing := range r.f.resets {
		if existing.TokenHash == token.TokenHash {
			return uniqueViolation("idx_password_resets_token_hash")
		}
	}
	if token.Id == uuid.Nil {
		token.Id = uuid.New()
	}
	token.CreatedAt = time.Now()
	cp := *token
	r.f.resets[token.Id] = &cp
	return nil
}

func (r *passwordResetRepository) FindByTokenHashForUpdate(ctx context.Context, tokenHash string) (*entity.PasswordResetToken, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, t := range r.f.resets {
		if t.TokenHash == tokenHash {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *passwordResetRepository) MarkUsed(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if t, ok := r.f.resets[id]; ok && t.UsedAt == nil {
		ts := at
		t.UsedAt = &ts
	}
	return nil
}

func (r *passwordResetRepository) MarkAllUsedForAgency(ctx context.Context, agencyId uuid.UUID, at time.Time) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, t := range r.f.resets {
		if t.AgencyId == agencyId && t.UsedAt == nil {
			ts := at
			t.UsedAt = &ts
		}
	}
	return nil
}

func (r *passwordResetRepository) PurgeStale(ctx context.Context) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	now := time.Now()
	for id, t := range r.f.resets {
		if t.UsedAt != nil || !t.ExpiresAt.After(now) {
			delete(r.f.resets, id)
		}
	}
	return nil
}
