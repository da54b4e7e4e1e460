package errors

import (
	"net/http"
	"testing"

	"studio/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		wantHTTP int
		wantCode string
	}{
		{
			name:     "missing field is a bad request",
			err:      NewValidationError(ReasonMissingField, "packageId", "Please choose a package"),
			wantHTTP: http.StatusBadRequest,
			wantCode: "MISSING_FIELD",
		},
		{
			name:     "ineligible package is unprocessable",
			err:      NewValidationError(ReasonPackageNotEligible, "packageId", "No such package at this distance"),
			wantHTTP: http.StatusUnprocessableEntity,
			wantCode: "PACKAGE_NOT_ELIGIBLE",
		},
		{
			name:     "distance out of range",
			err:      NewValidationError(ReasonDistanceOutOfRange, "", "Outside the service area"),
			wantHTTP: http.StatusUnprocessableEntity,
			wantCode: "DISTANCE_OUT_OF_RANGE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantHTTP, tt.err.HTTPCode())
			assert.Equal(t, tt.wantCode, tt.err.ErrorCode())
			assert.Contains(t, tt.err.Error(), string(tt.err.Reason()))
		})
	}
}

func TestHasValidationReason_ThroughWrap(t *testing.T) {
	err := errors.Wrap(NewValidationError(ReasonWeekdayDate, "preferredDate", "weekends only"), "create booking")

	assert.True(t, HasValidationReason(err, ReasonWeekdayDate))
	assert.False(t, HasValidationReason(err, ReasonMissingField))
	assert.False(t, HasValidationReason(errors.New("boom"), ReasonWeekdayDate))
}

func TestAsAppError(t *testing.T) {
	wrapped := errors.Wrap(NewTransitionError("completed", "queued"), "transition")

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode())
	assert.Equal(t, "INVALID_TRANSITION", appErr.ErrorCode())
	assert.Equal(t, "completed -> queued", appErr.Details())

	authErr, ok := AsAppError(NewAuthorizationError("change a booking status"))
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, authErr.HTTPCode())
	assert.Equal(t, "NOT_AUTHORIZED", authErr.ErrorCode())

	_, ok = AsAppError(errors.New("store unreachable"))
	assert.False(t, ok)
}

func TestBaseError_WrapKeepsSentinel(t *testing.T) {
	err := ErrBookingNotFound.WrapMessage("load booking b1")

	assert.True(t, errors.Is(err, ErrBookingNotFound))
	assert.False(t, errors.Is(ErrBookingNotFound.WithDetails("b1"), ErrBookingNotFound))
}
