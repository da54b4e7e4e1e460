package handler

import (
	"studio/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
)

// HealthCheck is the liveness probe.
func HealthCheck(c echo.Context) error {
	return response.OK(c, map[string]string{"status": "ok"})
}
