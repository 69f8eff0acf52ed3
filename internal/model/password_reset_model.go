// FILE: internal/model/password_reset_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type PasswordReset struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AgencyId  uuid.UUID  `gorm:"type:uuid;not null;index"`
	TokenHash string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	ExpiresAt time.Time  `gorm:"not null;index"`
	UsedAt    *time.Time `gorm:""`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

func (PasswordReset) TableName() string {
	return "password_resets"
}
