// FILE: internal/model/agency_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Agency struct {
	Id                 uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AgencyName         string         `gorm:"type:varchar(120);not null"`
	Email              string         `gorm:"type:varchar(160);not null;uniqueIndex"`
	PasswordHash       string         `gorm:"type:varchar(255);not null"`
	Plan               string         `gorm:"type:varchar(40);not null;default:'free'"`
	PlanName           string         `gorm:"type:varchar(80);not null;default:'Free'"`
	CvLimit            int            `gorm:"not null;default:3"`
	CvsCreated         int            `gorm:"not null;default:0"`
	Templates          datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	SubscriptionStatus string         `gorm:"type:varchar(40);not null;default:'active'"`
	PaymentMethod      string         `gorm:"type:varchar(80);not null;default:''"`
	PaymentReference   string         `gorm:"type:varchar(120);not null;default:''"`
	PaymentNote        string         `gorm:"type:varchar(240);not null;default:''"`
	LastResetMonth     string         `gorm:"type:varchar(7);not null"`
	Profile            datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt          time.Time      `gorm:"autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime"`
}

func (Agency) TableName() string {
	return "agencies"
}
