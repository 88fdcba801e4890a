package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ===========================================================================
// Custom Errors
// Standard error values for the application, each mapped to an HTTP
// status code.
// ===========================================================================

// Sentinel errors - for use with errors.Is()
var (
	// ErrNotFound resource does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput request data failed validation
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden caller is not allowed (bad webhook signature)
	ErrForbidden = errors.New("forbidden")

	// ErrExternal an upstream service (gateway, NLU, payment) failed
	ErrExternal = errors.New("external service error")

	// ErrTimeout request timeout
	ErrTimeout = errors.New("timeout")

	// ErrInternal internal server error
	ErrInternal = errors.New("internal server error")
)

// ===========================================================================
// AppError
// ===========================================================================

// AppError carries an error with a user message and HTTP mapping
type AppError struct {
	// Err is the wrapped cause
	Err error

	// Message is the user-facing error text
	Message string

	// Code is the machine-readable error code (e.g. "NOT_FOUND")
	Code string

	// StatusCode is the HTTP status code
	StatusCode int
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error (for errors.Is/As)
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError from a sentinel error
func New(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: StatusCode(err),
		Code:       ErrorCode(err),
	}
}

// Wrap annotates an error, keeping the chain intact via %w
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// ===========================================================================
// Error Mapping
// ===========================================================================

// StatusCode returns the HTTP status code for an error
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrExternal):
		return http.StatusBadGateway
	case errors.Is(err, ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode returns the error code string for an error
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrInvalidInput):
		return "INVALID_INPUT"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, ErrExternal):
		return "EXTERNAL_ERROR"
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	default:
		return "INTERNAL_ERROR"
	}
}

// Is is a helper around errors.Is()
func Is(err, target error) bool {
	return errors.Is(err, target)
}
