// Package validator adapts go-playground/validator to echo. Booking form rules
// stay in the use case, which reports them with their own reasons.
package validator

import (
	"strings"

	"studio/internal/domain/entity"
	domainerrors "studio/internal/domain/errors"
	"studio/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type requestValidator struct {
	validate *validator.Validate
}

func New() echo.Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for an empty tag or a nil func.
	_ = v.RegisterValidation("bookingstatus", isBookingStatus)

	return &requestValidator{validate: v}
}

// Validate reports every failed field in the details of ErrValidationFailed.
func (rv *requestValidator) Validate(i any) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate request")
	}

	failures := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		failures = append(failures, describe(fe))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(failures, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "bookingstatus":
		return field + " is not a booking status"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "gt":
		return field + " must be greater than " + fe.Param()
	case "oneof":
		return field + " must be one of " + fe.Param()
	default:
		return field + " failed " + fe.Tag()
	}
}

func isBookingStatus(fl validator.FieldLevel) bool {
	return entity.BookingStatus(fl.Field().String()).IsValid()
}
