// FILE: internal/entity/password_reset_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetToken stores only the sha256 hash of the raw token that was
// delivered to the agency. Tokens are single use: UsedAt is set when the
// token is consumed, and issuing a new token invalidates all outstanding
// ones for the same agency.
type PasswordResetToken struct {
	Id        uuid.UUID
	AgencyId  uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// Usable reports whether the token can still redeem a password reset.
func (t *PasswordResetToken) Usable(now time.Time) bool {
	return t.UsedAt == nil && t.ExpiresAt.After(now)
}
