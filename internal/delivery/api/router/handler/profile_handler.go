package handler

import (
	"log/slog"

	"studio/internal/delivery/api/response"
	domainerrors "studio/internal/domain/errors"
	"studio/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const profilePictureField = "file"

type ProfileHandlerParams struct {
	fx.In

	ProfileUC usecase.ProfileUsecase
	Logger    *slog.Logger
}

type ProfileHandler struct {
	profileUC usecase.ProfileUsecase
	logger    *slog.Logger
}

func NewProfileHandler(params ProfileHandlerParams) *ProfileHandler {
	return &ProfileHandler{
		profileUC: params.ProfileUC,
		logger:    params.Logger,
	}
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	user, err := h.profileUC.GetProfile(c.Request().Context(), actor.UserID)
	if err != nil {
		return err
	}

	return response.OK(c, toUserResponse(user))
}

// UploadProfilePicture accepts a multipart form with the image in "file".
func (h *ProfileHandler) UploadProfilePicture(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	header, err := c.FormFile(profilePictureField)
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("multipart field \"file\" is required")
	}

	file, err := header.Open()
	if err != nil {
		return domainerrors.ErrInvalidImage.WrapMessage("open upload")
	}
	defer file.Close()

	user, err := h.profileUC.UploadProfilePicture(c.Request().Context(), actor.UserID, usecase.ProfilePictureUpload{
		ContentType: header.Header.Get(echo.HeaderContentType),
		Size:        header.Size,
		Content:     file,
	})
	if err != nil {
		return err
	}

	return response.OK(c, toUserResponse(user))
}
