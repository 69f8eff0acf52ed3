// FILE: internal/entity/agency_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubscriptionActive          SubscriptionStatus = "active"
	SubscriptionPendingApproval SubscriptionStatus = "pending_approval"
	SubscriptionPendingPayment  SubscriptionStatus = "pending_payment"
)

// AgencyProfile is the branding block an agency prints on generated CVs.
// All fields are optional free text maintained by the agency itself.
type AgencyProfile struct {
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

// Agency is a tenant account. CvsCreated counts records created inside the
// calendar month named by LastResetMonth; the pair is only ever read or
// written together.
type Agency struct {
	Id                 uuid.UUID
	AgencyName         string
	Email              string
	PasswordHash       string
	Plan               string
	PlanName           string
	CvLimit            int
	CvsCreated         int
	Templates          []string
	SubscriptionStatus SubscriptionStatus
	PaymentMethod      string
	PaymentReference   string
	PaymentNote        string
	LastResetMonth     string
	Profile            AgencyProfile
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// MonthKey formats t as the YYYY-MM usage window key.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// ReconcileMonthlyUsage resets the usage counter when the calendar month has
// rolled over since the last recorded window. It returns true when the agency
// was mutated and needs to be persisted. Calling it twice in the same month
// is a no-op, which is what makes the lazy reset safe under concurrency.
func (a *Agency) ReconcileMonthlyUsage(now time.Time) bool {
	key := MonthKey(now)
	if a.LastResetMonth == key {
		return false
	}
	a.CvsCreated = 0
	a.LastResetMonth = key
	return true
}

// HasQuotaRemaining reports whether the agency may create another CV record
// in the current window. Callers must reconcile the month first.
func (a *Agency) HasQuotaRemaining() bool {
	return a.CvsCreated < a.CvLimit
}
