package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Caller errors
	ErrorTypeValidation ErrorType = "VALIDATION"

	// Collaborator errors
	ErrorTypeUpstream     ErrorType = "UPSTREAM"
	ErrorTypeNotConnected ErrorType = "NOT_CONNECTED"

	// Everything else
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// NotConnectedMessage is shown to callers when the CRM session was never established.
const NotConnectedMessage = "Not connected to CRM"

// AppError represents an application-specific error.
// Message is safe to show to callers; Cause never leaves the process.
type AppError struct {
	Type       ErrorType
	Message    string
	Service    string
	Cause      error
	HTTPStatus int
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// NewValidationError creates a validation error for a missing or malformed input
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewUpstreamError creates an error for a failed CRM or language-model call
func NewUpstreamError(service string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeUpstream,
		Message:    fmt.Sprintf("upstream service '%s' failed", service),
		Service:    service,
		Cause:      err,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewNotConnectedError creates the error returned while no CRM session exists
func NewNotConnectedError() *AppError {
	return &AppError{
		Type:       ErrorTypeNotConnected,
		Message:    NotConnectedMessage,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// GetAppError extracts AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// IsUpstream checks if an error is an upstream error
func IsUpstream(err error) bool {
	return IsType(err, ErrorTypeUpstream)
}

// IsNotConnected checks if an error reports a missing CRM session
func IsNotConnected(err error) bool {
	return IsType(err, ErrorTypeNotConnected)
}

// Exposed reports whether the error message may be shown to the caller as-is.
func (e *AppError) Exposed() bool {
	return e.Type == ErrorTypeValidation || e.Type == ErrorTypeNotConnected
}
