package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ===========================================================================
// Custom Errors
// Standard error kinds for the application, each mapped to an HTTP status.
// Engine rejections always carry a specific, actionable reason; silent
// no-ops are a defect class this package exists to prevent.
// ===========================================================================

// Sentinel errors, for use with errors.Is().
var (
	// ErrNotFound resource does not exist
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized missing or invalid session
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden authenticated but not allowed
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput request payload failed validation
	ErrInvalidInput = errors.New("invalid input")

	// ErrScopeDenied actor role unrecognized or account mismatch;
	// list paths fail closed (empty result) instead of surfacing this
	ErrScopeDenied = errors.New("scope denied")

	// ErrAssignmentRejected candidate assignee malformed, unknown,
	// wrong role or wrong account
	ErrAssignmentRejected = errors.New("assignment rejected")

	// ErrTransitionRejected requested status change violates the
	// conversation state graph
	ErrTransitionRejected = errors.New("transition rejected")

	// ErrChannelFailure realtime transport for a subscription died;
	// recoverable by re-attaching
	ErrChannelFailure = errors.New("channel failure")

	// ErrStoreFailure the external store rejected a read or write;
	// propagated unchanged, no automatic retry
	ErrStoreFailure = errors.New("store failure")

	// Auth errors
	// ErrInvalidCredentials email or password incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired token past its expiry
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidToken token malformed or signature mismatch
	ErrInvalidToken = errors.New("invalid token")
)

// ===========================================================================
// AppError
// ===========================================================================

// AppError carries a user-facing message on top of a sentinel.
type AppError struct {
	// Err wrapped sentinel
	Err error

	// Message reason shown to the user
	Message string

	// Code machine-readable code ("TRANSITION_REJECTED")
	Code string

	// StatusCode HTTP status
	StatusCode int
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped sentinel for errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds an AppError from a sentinel and a user-facing reason.
func New(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: StatusCode(err),
		Code:       ErrorCode(err),
	}
}

// Wrap adds context while keeping the wrapped chain intact.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// ===========================================================================
// Error mapping
// ===========================================================================

// StatusCode returns the HTTP status for an error.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrScopeDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrAssignmentRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrTransitionRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrChannelFailure):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrStoreFailure):
		return http.StatusBadGateway
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode returns the machine-readable code for an error.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, ErrInvalidInput):
		return "INVALID_INPUT"
	case errors.Is(err, ErrScopeDenied):
		return "SCOPE_DENIED"
	case errors.Is(err, ErrAssignmentRejected):
		return "ASSIGNMENT_REJECTED"
	case errors.Is(err, ErrTransitionRejected):
		return "TRANSITION_REJECTED"
	case errors.Is(err, ErrChannelFailure):
		return "CHANNEL_FAILURE"
	case errors.Is(err, ErrStoreFailure):
		return "STORE_FAILURE"
	case errors.Is(err, ErrInvalidCredentials):
		return "INVALID_CREDENTIALS"
	case errors.Is(err, ErrTokenExpired):
		return "TOKEN_EXPIRED"
	case errors.Is(err, ErrInvalidToken):
		return "INVALID_TOKEN"
	default:
		return "INTERNAL_ERROR"
	}
}

// Is forwards to errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
