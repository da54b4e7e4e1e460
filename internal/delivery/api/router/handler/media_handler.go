package handler

import (
	"net/http"
	"strings"

	domainerrors "studio/internal/domain/errors"
	"studio/internal/infra/storage"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type MediaHandlerParams struct {
	fx.In

	Media storage.MediaReader
}

// MediaHandler serves uploaded files for buckets that are not publicly
// readable (mem:// and file:// in development).
type MediaHandler struct {
	media storage.MediaReader
}

func NewMediaHandler(params MediaHandlerParams) *MediaHandler {
	return &MediaHandler{media: params.Media}
}

func (h *MediaHandler) Serve(c echo.Context) error {
	key := strings.TrimPrefix(c.Param("*"), "/")
	if key == "" || strings.Contains(key, "..") {
		return domainerrors.ErrNotFound
	}

	data, contentType, err := h.media.Get(c.Request().Context(), key)
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=300")

	return c.Blob(http.StatusOK, contentType, data)
}
