// FILE: internal/model/rate_limit_model.go
package model

import "time"

// ApiRateLimit is one fixed-window counter bucket for the postgres rate
// limit store. Rows are upserted atomically and reaped opportunistically
// once expires_at has passed.
type ApiRateLimit struct {
	BucketKey    string    `gorm:"type:varchar(160);primaryKey"`
	WindowStart  time.Time `gorm:"primaryKey"`
	RequestCount int64     `gorm:"not null;default:0"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

func (ApiRateLimit) TableName() string {
	return "api_rate_limits"
}
