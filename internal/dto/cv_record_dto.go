// FILE: internal/dto/cv_record_dto.go
package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreateCvRecordRequest struct {
	IdempotencyKey string          `json:"idempotencyKey"`
	Source         string          `json:"source"`
	CandidateName  string          `json:"candidateName"`
	ReferenceNo    string          `json:"referenceNo"`
	Snapshot       json.RawMessage `json:"snapshot"`
}

// CreateCvRecordResponse reports whether this call actually consumed quota.
// A retried idempotency key returns AlreadyCounted=true with the agency
// unchanged.
type CreateCvRecordResponse struct {
	Ok             bool            `json:"ok"`
	AlreadyCounted bool            `json:"alreadyCounted"`
	Agency         *AgencyResponse `json:"agency"`
}

// CvRecordListItem is the history row projection: no snapshot payload, just
// the layout id pulled out of snapshot.meta for rendering the list.
type CvRecordListItem struct {
	Id            uuid.UUID `json:"id"`
	Source        string    `json:"source"`
	CandidateName string    `json:"candidateName"`
	ReferenceNo   string    `json:"referenceNo"`
	Layout        string    `json:"layout"`
	CreatedAt     time.Time `json:"createdAt"`
}

type CvRecordListResponse struct {
	Records []CvRecordListItem `json:"records"`
	Total   int64              `json:"total"`
	Limit   int                `json:"limit"`
	Offset  int                `json:"offset"`
}

type CvRecordDetail struct {
	Id            uuid.UUID       `json:"id"`
	Source        string          `json:"source"`
	CandidateName string          `json:"candidateName"`
	ReferenceNo   string          `json:"referenceNo"`
	Snapshot      json.RawMessage `json:"snapshot"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type CvRecordDetailResponse struct {
	Record *CvRecordDetail `json:"record"`
}
