package errors

import (
	"fmt"
	"net/http"
	"strings"

	"studio/internal/errors"
)

// ValidationReason discriminates why a booking input was refused.
type ValidationReason string

const (
	ReasonMissingField         ValidationReason = "missing-field"
	ReasonUnknownLocation      ValidationReason = "unknown-location"
	ReasonDistanceOutOfRange   ValidationReason = "distance-out-of-range"
	ReasonPackageNotEligible   ValidationReason = "package-not-eligible"
	ReasonWeekdayDate          ValidationReason = "weekday-date"
	ReasonInvalidQueuePosition ValidationReason = "invalid-queue-position"
	ReasonNotQueued            ValidationReason = "not-queued"
)

const (
	ReasonNotAuthorized     = "not-authorized"
	ReasonInvalidTransition = "invalid-transition"
)

// ValidationError rejects malformed or ineligible booking input. Nothing is
// written when it is returned.
type ValidationError struct {
	reason  ValidationReason
	field   string
	message string
}

func NewValidationError(reason ValidationReason, field, message string) *ValidationError {
	return &ValidationError{reason: reason, field: field, message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.reason, e.message)
}

func (e *ValidationError) Reason() ValidationReason {
	return e.reason
}

// Field names the offending input field, empty when the rule spans several.
func (e *ValidationError) Field() string {
	return e.field
}

func (e *ValidationError) HTTPCode() int {
	if e.reason == ReasonMissingField {
		return http.StatusBadRequest
	}

	return http.StatusUnprocessableEntity
}

func (e *ValidationError) ErrorCode() string {
	return reasonCode(string(e.reason))
}

func (e *ValidationError) Message() string {
	return e.message
}

func (e *ValidationError) Details() string {
	if e.field == "" {
		return string(e.reason)
	}

	return string(e.reason) + ": " + e.field
}

// AuthorizationError is returned when a non-administrator attempts an
// administrator-only operation.
type AuthorizationError struct {
	action string
}

func NewAuthorizationError(action string) *AuthorizationError {
	return &AuthorizationError{action: action}
}

func (e *AuthorizationError) Error() string {
	return "not authorized to " + e.action
}

func (e *AuthorizationError) Reason() string {
	return ReasonNotAuthorized
}

func (e *AuthorizationError) HTTPCode() int {
	return http.StatusForbidden
}

func (e *AuthorizationError) ErrorCode() string {
	return reasonCode(ReasonNotAuthorized)
}

func (e *AuthorizationError) Message() string {
	return "Only an administrator can " + e.action
}

func (e *AuthorizationError) Details() string {
	return ""
}

// TransitionError rejects a status change the lifecycle does not allow. The
// booking is left unchanged.
type TransitionError struct {
	from string
	to   string
}

func NewTransitionError(from, to string) *TransitionError {
	return &TransitionError{from: from, to: to}
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %q to %q", e.from, e.to)
}

func (e *TransitionError) Reason() string {
	return ReasonInvalidTransition
}

func (e *TransitionError) From() string {
	return e.from
}

func (e *TransitionError) To() string {
	return e.to
}

func (e *TransitionError) HTTPCode() int {
	return http.StatusConflict
}

func (e *TransitionError) ErrorCode() string {
	return reasonCode(ReasonInvalidTransition)
}

func (e *TransitionError) Message() string {
	return fmt.Sprintf("A %s booking cannot be moved to %s", e.from, e.to)
}

func (e *TransitionError) Details() string {
	return e.from + " -> " + e.to
}

// HasValidationReason reports whether err carries a ValidationError with reason.
func HasValidationReason(err error, reason ValidationReason) bool {
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		return false
	}

	return vErr.reason == reason
}

func reasonCode(reason string) string {
	return strings.ToUpper(strings.ReplaceAll(reason, "-", "_"))
}
