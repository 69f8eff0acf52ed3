// FILE: internal/dto/agency_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type AgencyProfilePayload struct {
	AgencyNameAr  string `json:"agencyNameAr"`
	AgencyTagline string `json:"agencyTagline"`
	AgencyPhone   string `json:"agencyPhone"`
	AgencyEmail   string `json:"agencyEmail"`
	AgencyWebsite string `json:"agencyWebsite"`
	AgencyAddress string `json:"agencyAddress"`
	AgencySocial1 string `json:"agencySocial1"`
	AgencySocial2 string `json:"agencySocial2"`
	AgencyLogo    string `json:"agencyLogo"`
	FraLogo       string `json:"fraLogo"`
}

// AgencyResponse is the normalized agency shape every account-facing
// endpoint returns. Templates are already merged with the plan defaults and
// the password hash never leaves the service layer.
type AgencyResponse struct {
	Id                 uuid.UUID            `json:"id"`
	AgencyName         string               `json:"agencyName"`
	Email              string               `json:"email"`
	Plan               string               `json:"plan"`
	PlanName           string               `json:"planName"`
	CvLimit            int                  `json:"cvLimit"`
	CvsCreated         int                  `json:"cvsCreated"`
	Templates          []string             `json:"templates"`
	SubscriptionStatus string               `json:"subscriptionStatus"`
	PaymentMethod      string               `json:"paymentMethod"`
	PaymentReference   string               `json:"paymentReference"`
	PaymentNote        string               `json:"paymentNote"`
	LastResetMonth     string               `json:"lastResetMonth"`
	Profile            AgencyProfilePayload `json:"profile"`
	CreatedAt          time.Time            `json:"createdAt"`
}

// UpdateProfileRequest uses pointers so absent fields keep their stored
// value while explicit empty strings clear it.
type UpdateProfileRequest struct {
	AgencyName    *string `json:"agencyName"`
	AgencyNameAr  *string `json:"agencyNameAr"`
	AgencyTagline *string `json:"agencyTagline"`
	AgencyPhone   *string `json:"agencyPhone"`
	AgencyEmail   *string `json:"agencyEmail"`
	AgencyWebsite *string `json:"agencyWebsite"`
	AgencyAddress *string `json:"agencyAddress"`
	AgencySocial1 *string `json:"agencySocial1"`
	AgencySocial2 *string `json:"agencySocial2"`
	AgencyLogo    *string `json:"agencyLogo"`
	FraLogo       *string `json:"fraLogo"`
}

type PaymentRequest struct {
	PaymentMethod    string `json:"paymentMethod" validate:"required"`
	PaymentReference string `json:"paymentReference" validate:"required"`
	PaymentNote      string `json:"paymentNote"`
}
