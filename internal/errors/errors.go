// Package errors defines the structured error taxonomy shared across the
// logging service: validation errors raised before dispatch, resolution
// errors for unconfigured destinations, and delivery/storage errors reported
// per sink.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeMissingField indicates a mandatory field is absent from an event.
	ErrCodeMissingField ErrorCode = "missing_field"
	// ErrCodeUnknownDestination indicates a destination outside the supported set.
	ErrCodeUnknownDestination ErrorCode = "unknown_destination"
	// ErrCodeInconsistentPayload indicates a destination was requested without its sub-record.
	ErrCodeInconsistentPayload ErrorCode = "inconsistent_payload"
	// ErrCodeUnresolvedDestination indicates a destination with no configured sink adapter.
	ErrCodeUnresolvedDestination ErrorCode = "unresolved_destination"
	// ErrCodeDelivery indicates a sink adapter failed to deliver an event.
	ErrCodeDelivery ErrorCode = "delivery"
	// ErrCodeStorage indicates the live-alert store failed; the service's own persistence is degraded.
	ErrCodeStorage ErrorCode = "storage"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
)

// AppError represents a structured application error with a code, message, and
// optional cause. It supports error wrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// MissingField creates a validation error for an absent mandatory field.
func MissingField(field string) *AppError {
	return &AppError{
		Code:    ErrCodeMissingField,
		Message: fmt.Sprintf("missing required field %q", field),
		Field:   field,
	}
}

// UnknownDestination creates a validation error for an unrecognized destination value.
func UnknownDestination(value string) *AppError {
	return &AppError{
		Code:    ErrCodeUnknownDestination,
		Message: fmt.Sprintf("unknown destination %q", value),
		Field:   "destination",
	}
}

// InconsistentPayload creates a validation error for a destination requested
// without its matching sub-record.
func InconsistentPayload(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInconsistentPayload,
		Message: message,
		Field:   field,
	}
}

// Validationf creates a missing_field-class validation error with a formatted message.
func Validationf(field, format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeMissingField,
		Message: fmt.Sprintf(format, args...),
		Field:   field,
	}
}

// UnresolvedDestination creates a resolution error for a destination whose
// adapter is not configured. This is an operational condition, not a client error.
func UnresolvedDestination(dest string) *AppError {
	return &AppError{
		Code:    ErrCodeUnresolvedDestination,
		Message: fmt.Sprintf("no sink adapter configured for destination %q", dest),
		Field:   "destination",
	}
}

// Delivery wraps a sink failure as a delivery error.
func Delivery(err error, sink string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    ErrCodeDelivery,
		Message: fmt.Sprintf("deliver to %s failed", sink),
		Cause:   err,
	}
}

// Storage wraps a live-alert store failure.
func Storage(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    ErrCodeStorage,
		Message: message,
		Cause:   err,
	}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsValidation reports whether the error belongs to the client-caused
// validation family (missing field, unknown destination, inconsistent payload).
func IsValidation(err error) bool {
	return isCode(err, ErrCodeMissingField) ||
		isCode(err, ErrCodeUnknownDestination) ||
		isCode(err, ErrCodeInconsistentPayload)
}

// IsUnresolvedDestination checks if an error is a resolution error.
func IsUnresolvedDestination(err error) bool {
	return isCode(err, ErrCodeUnresolvedDestination)
}

// IsStorage checks if an error is a storage error.
func IsStorage(err error) bool {
	return isCode(err, ErrCodeStorage)
}

// IsDelivery checks if an error is a delivery error.
func IsDelivery(err error) bool {
	return isCode(err, ErrCodeDelivery)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
