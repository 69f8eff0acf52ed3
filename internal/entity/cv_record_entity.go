// FILE: internal/entity/cv_record_entity.go
package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CvRecord is a usage-metered CV creation event. The (AgencyId,
// IdempotencyKey) pair is unique; a retried create with the same key maps to
// the same record and is never counted twice.
type CvRecord struct {
	Id             uuid.UUID
	AgencyId       uuid.UUID
	IdempotencyKey string
	Source         string
	CandidateName  string
	ReferenceNo    string
	Snapshot       json.RawMessage
	CreatedAt      time.Time
}
