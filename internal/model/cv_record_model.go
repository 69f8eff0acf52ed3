// FILE: internal/model/cv_record_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CvRecord rows are append only. The composite unique index on (agency_id,
// idempotency_key) is the source of truth for idempotent creation; inserts
// race on it with ON CONFLICT DO NOTHING.
type CvRecord struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AgencyId       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_cv_records_agency_key;index:idx_cv_records_agency_created,priority:1"`
	IdempotencyKey string         `gorm:"type:varchar(120);not null;uniqueIndex:idx_cv_records_agency_key"`
	Source         string         `gorm:"type:varchar(40);not null;default:'api'"`
	CandidateName  string         `gorm:"type:varchar(160);not null;default:''"`
	ReferenceNo    string         `gorm:"type:varchar(120);not null;default:''"`
	Snapshot       datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt      time.Time      `gorm:"autoCreateTime;index:idx_cv_records_agency_created,priority:2,sort:desc"`
}

func (CvRecord) TableName() string {
	return "cv_records"
}
