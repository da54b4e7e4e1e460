package handler

import (
	"log/slog"
	"strings"

	"studio/internal/delivery/api/response"
	"studio/internal/domain/entity"
	domainerrors "studio/internal/domain/errors"
	"studio/internal/domain/service"
	"studio/internal/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type AuthHandlerParams struct {
	fx.In

	// Issuer is nil unless the local identity provider is configured.
	Issuer service.TokenIssuer `optional:"true"`
	Logger *slog.Logger
}

// AuthHandler mints development tokens for the local identity provider. With
// Firebase, clients sign in through the Firebase SDK instead.
type AuthHandler struct {
	issuer service.TokenIssuer
	logger *slog.Logger
}

func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		issuer: params.Issuer,
		logger: params.Logger,
	}
}

type DevTokenRequest struct {
	UID         string `json:"uid" validate:"required,max=128"`
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"displayName" validate:"max=100"`
	PhotoURL    string `json:"photoUrl" validate:"omitempty,url"`
}

type DevTokenResponse struct {
	IDToken string `json:"idToken"`
}

// Enabled reports whether the route should be registered at all.
func (h *AuthHandler) Enabled() bool {
	return h.issuer != nil
}

func (h *AuthHandler) IssueDevToken(c echo.Context) error {
	if h.issuer == nil {
		return domainerrors.ErrNotFound
	}

	var req DevTokenRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	token, err := h.issuer.Issue(entity.Identity{
		UID:         strings.TrimSpace(req.UID),
		Email:       strings.TrimSpace(req.Email),
		DisplayName: strings.TrimSpace(req.DisplayName),
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		return errors.Wrap(err, "issue dev token")
	}

	h.logger.Debug("Issued development token", slog.String("uid", req.UID))

	return response.Created(c, DevTokenResponse{IDToken: token})
}
