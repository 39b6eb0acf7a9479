// Package errors defines the application error taxonomy. Handlers and
// usecases return these; the delivery layer's central error handler maps
// them onto HTTP responses.
package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() any      // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   any
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message.
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information.
func (e *BaseError) Details() any {
	return e.details
}

// WithDetails returns a copy carrying detailed error information, e.g. the
// per-field messages of a validation failure.
func (e *BaseError) WithDetails(details any) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Auth / user errors
	ErrInvalidVerificationCode = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_VERIFICATION_CODE",
		"The verification code is incorrect",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
	)

	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Invalid or expired token",
	)

	ErrInvalidTier = NewBaseError(
		http.StatusBadRequest,
		"INVALID_TIER",
		"Unknown subscription tier",
	)

	// Venue errors
	ErrVenueNotFound = NewBaseError(
		http.StatusNotFound,
		"VENUE_NOT_FOUND",
		"Venue not found",
	)

	ErrVenueInactive = NewBaseError(
		http.StatusConflict,
		"VENUE_INACTIVE",
		"Venue is not active",
	)

	ErrInvalidQRCode = NewBaseError(
		http.StatusBadRequest,
		"INVALID_QR_CODE",
		"QR code could not be read",
	)

	// Matching / chat errors
	ErrSelfSwipe = NewBaseError(
		http.StatusBadRequest,
		"SELF_SWIPE",
		"You cannot swipe on yourself",
	)

	ErrMatchNotFound = NewBaseError(
		http.StatusNotFound,
		"MATCH_NOT_FOUND",
		"Match not found",
	)

	ErrChatNotFound = NewBaseError(
		http.StatusNotFound,
		"CHAT_NOT_FOUND",
		"Chat not found",
	)

	ErrNotChatParticipant = NewBaseError(
		http.StatusForbidden,
		"NOT_CHAT_PARTICIPANT",
		"You are not a participant of this chat",
	)

	// Notification errors
	ErrNotificationNotFound = NewBaseError(
		http.StatusNotFound,
		"NOTIFICATION_NOT_FOUND",
		"Notification not found",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Request validation failed",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
	)
)
