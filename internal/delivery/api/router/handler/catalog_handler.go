package handler

import (
	"log/slog"
	"strconv"

	"studio/internal/delivery/api/response"
	"studio/internal/domain/entity"
	domainerrors "studio/internal/domain/errors"
	"studio/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type CatalogHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// CatalogHandler serves the reference data behind the booking form. No
// authentication is required.
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

func (h *CatalogHandler) ListPackages(c echo.Context) error {
	return response.OK(c, h.catalogUC.ListPackages(c.Request().Context()))
}

func (h *CatalogHandler) GetPackage(c echo.Context) error {
	pkg, err := h.catalogUC.GetPackage(c.Request().Context(), entity.PackageID(c.Param("id")))
	if err != nil {
		return err
	}

	return response.OK(c, pkg)
}

// ListLocations accepts ?serviceable=true to hide locations beyond the
// service radius.
func (h *CatalogHandler) ListLocations(c echo.Context) error {
	serviceableOnly := false
	if raw := c.QueryParam("serviceable"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return domainerrors.ErrValidationFailed.WithDetails("serviceable must be true or false")
		}
		serviceableOnly = parsed
	}

	return response.OK(c, h.catalogUC.ListLocations(c.Request().Context(), serviceableOnly))
}

func (h *CatalogHandler) ListProvinces(c echo.Context) error {
	return response.OK(c, h.catalogUC.LocationsByProvince(c.Request().Context()))
}

// Quote answers GET /catalog/quote?location=Soweto.
func (h *CatalogHandler) Quote(c echo.Context) error {
	name := c.QueryParam("location")
	if name == "" {
		return domainerrors.NewValidationError(domainerrors.ReasonMissingField, "location", "Please choose a location")
	}

	quote, err := h.catalogUC.Quote(c.Request().Context(), name)
	if err != nil {
		return err
	}

	return response.OK(c, quote)
}
