// FILE: internal/dto/auth_dto.go
package dto

type SignupRequest struct {
	AgencyName string `json:"agencyName" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Plan       string `json:"plan" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest carries no validate tags: a malformed email must
// still produce the generic "link sent" response so the endpoint cannot be
// used to probe which addresses exist.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPasswordResponse reads the same whether or not the email matched an
// agency. The debug fields are only populated outside production when the
// delivery transport is "log".
type ForgotPasswordResponse struct {
	Ok              bool   `json:"ok"`
	Message         string `json:"message"`
	DebugResetURL   string `json:"debugResetUrl,omitempty"`
	DebugResetToken string `json:"debugResetToken,omitempty"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}
