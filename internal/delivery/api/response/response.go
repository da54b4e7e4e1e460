// Package response writes the JSON envelope every API endpoint uses.
package response

import (
	"net/http"

	deliverycontext "studio/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

type SuccessResponse struct {
	Data any       `json:"data"`
	Meta *MetaInfo `json:"meta"`
}

type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

type ErrorInfo struct {
	Code    string `json:"code"`              // Machine-readable, e.g. "PACKAGE_NOT_ELIGIBLE"
	Message string `json:"message"`           // Shown to the user as is
	Details any    `json:"details,omitempty"` // 4xx only
}

type MetaInfo struct {
	RequestID string `json:"request_id"`
}

func meta(c echo.Context) *MetaInfo {
	return &MetaInfo{RequestID: deliverycontext.GetRequestID(c)}
}

func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, SuccessResponse{Data: data, Meta: meta(c)})
}

func OK(c echo.Context, data any) error {
	return Success(c, http.StatusOK, data)
}

func Created(c echo.Context, data any) error {
	return Success(c, http.StatusCreated, data)
}

// Error writes an error envelope. Details are dropped for 5xx, 401 and 403.
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	if statusCode >= http.StatusInternalServerError ||
		statusCode == http.StatusUnauthorized ||
		statusCode == http.StatusForbidden {
		details = nil
	}

	return c.JSON(statusCode, ErrorResponse{
		Error: &ErrorInfo{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
		Meta: meta(c),
	})
}

func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, nil)
}
