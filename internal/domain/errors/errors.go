package errors

import (
	"net/http"

	"studio/internal/errors"
)

// AppError is an error that knows how it should be presented to API callers.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-facing message
	Details() string   // Optional detail, never shown for 5xx
}

// BaseError is the plain AppError used for the sentinel catalogue below.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context while keeping errors.Is matches.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

func (e *BaseError) Message() string {
	return e.message
}

func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy carrying details. The copy no longer matches the
// sentinel with errors.Is.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

var (
	// Identity
	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"Sign in to continue",
		"",
	)

	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Your session is invalid or has expired, please sign in again",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	// Catalog
	ErrPackageNotFound = NewBaseError(
		http.StatusNotFound,
		"PACKAGE_NOT_FOUND",
		"Package not found",
		"",
	)

	ErrLocationNotFound = NewBaseError(
		http.StatusNotFound,
		"LOCATION_NOT_FOUND",
		"Location not found",
		"",
	)

	// Bookings
	ErrBookingNotFound = NewBaseError(
		http.StatusNotFound,
		"BOOKING_NOT_FOUND",
		"Booking not found",
		"",
	)

	ErrCheckInUnavailable = NewBaseError(
		http.StatusConflict,
		"CHECK_IN_UNAVAILABLE",
		"A check-in code is only available for approved bookings",
		"",
	)

	// Chat
	ErrChatDisabled = NewBaseError(
		http.StatusConflict,
		"CHAT_DISABLED",
		"Chat opens once your booking is queued or approved",
		"",
	)

	// Profile pictures
	ErrInvalidImage = NewBaseError(
		http.StatusBadRequest,
		"INVALID_IMAGE",
		"Please upload an image file",
		"",
	)

	ErrImageTooLarge = NewBaseError(
		http.StatusRequestEntityTooLarge,
		"IMAGE_TOO_LARGE",
		"Image must be smaller than 5 MB",
		"",
	)

	// General
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Request validation failed",
		"",
	)

	ErrRateLimited = NewBaseError(
		http.StatusTooManyRequests,
		"RATE_LIMITED",
		"Too many requests, please slow down",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error, please try again later",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)
)
