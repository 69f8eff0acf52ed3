// FILE: internal/entity/admin_user_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	AdminRoleSuper = "super_admin"
	AdminRoleAdmin = "admin"
)

// AdminUser is an operator account, fully separate from agency accounts.
// Admin sessions are re-checked against this row on every request, so
// flipping IsActive revokes access immediately.
type AdminUser struct {
	Id           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
