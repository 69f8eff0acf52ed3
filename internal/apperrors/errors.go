// FILE: internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// AppError carries a stable error code, the message exposed to API clients,
// the HTTP status that message travels with, and the wrapped cause (never
// exposed to clients).
type AppError struct {
	Code     string
	Message  string
	HTTPCode int
	Err      error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// PublicMessage is what goes into the response body. Internal and upstream
// failures never leak their cause.
func (e *AppError) PublicMessage() string {
	return e.Message
}

func Validation(message string) *AppError {
	return &AppError{Code: "VALIDATION", Message: message, HTTPCode: http.StatusBadRequest}
}

func Auth(message string) *AppError {
	return &AppError{Code: "AUTH", Message: message, HTTPCode: http.StatusUnauthorized}
}

func Forbidden(message string) *AppError {
	return &AppError{Code: "FORBIDDEN", Message: message, HTTPCode: http.StatusForbidden}
}

func NotFound(message string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: message, HTTPCode: http.StatusNotFound}
}

func Conflict(message string) *AppError {
	return &AppError{Code: "CONFLICT", Message: message, HTTPCode: http.StatusConflict}
}

func RateLimited(message string) *AppError {
	return &AppError{Code: "RATE_LIMITED", Message: message, HTTPCode: http.StatusTooManyRequests}
}

func Upstream(message string, err error) *AppError {
	return &AppError{Code: "UPSTREAM", Message: message, HTTPCode: http.StatusServiceUnavailable, Err: err}
}

func Internal(err error) *AppError {
	return &AppError{Code: "INTERNAL", Message: "Server error", HTTPCode: http.StatusInternalServerError, Err: err}
}

// From returns err as an *AppError, wrapping unknown errors as internal.
func From(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

// IsUniqueViolation reports whether err is a postgres unique constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
