package middleware

import (
	"net/http"

	domainerrors "studio/internal/domain/errors"
	"studio/internal/errors"

	"github.com/labstack/echo/v4"
)

// statusOf predicts the status the error handler will send for err.
func statusOf(err error) int {
	if appErr, ok := domainerrors.AsAppError(err); ok {
		return appErr.HTTPCode()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return http.StatusInternalServerError
}
