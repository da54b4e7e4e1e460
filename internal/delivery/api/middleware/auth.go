package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "studio/internal/delivery/context"
	"studio/internal/domain/constants"
	domainerrors "studio/internal/domain/errors"
	"studio/internal/domain/service"
	"studio/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const bearerPrefix = "Bearer "

type AuthMiddlewareParams struct {
	fx.In

	Verifier  service.IdentityVerifier
	ProfileUC usecase.ProfileUsecase
	Logger    *slog.Logger
}

// AuthMiddleware verifies ID tokens and loads the caller's profile.
type AuthMiddleware struct {
	verifier  service.IdentityVerifier
	profileUC usecase.ProfileUsecase
	logger    *slog.Logger
}

func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		verifier:  params.Verifier,
		profileUC: params.ProfileUC,
		logger:    params.Logger,
	}
}

// bearerToken reads the Authorization header, falling back to the token
// query parameter browsers must use for WebSocket upgrades.
func bearerToken(c echo.Context) string {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		if !strings.HasPrefix(header, bearerPrefix) {
			return ""
		}

		return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	}

	return c.QueryParam(constants.QueryParamToken)
}

// Authenticate verifies the token, creates the profile on first sight and
// stores the caller on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		if token == "" {
			return domainerrors.ErrUnauthenticated
		}

		ctx := c.Request().Context()
		identity, err := m.verifier.Verify(ctx, token)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(ctx, m.logger).Debug("Token rejected", slog.Any("error", err))

			return domainerrors.ErrInvalidToken
		}

		user, err := m.profileUC.EnsureUser(ctx, *identity)
		if err != nil {
			return err
		}
		deliverycontext.SetUser(c, user)

		reqLogger := deliverycontext.GetLoggerOrDefault(ctx, m.logger).With(slog.String("user_id", user.ID))
		c.SetRequest(c.Request().WithContext(deliverycontext.WithLogger(ctx, reqLogger)))

		return next(c)
	}
}

// RequireAdmin must run after Authenticate.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, ok := deliverycontext.GetActor(c)
		if !ok {
			return domainerrors.ErrUnauthenticated
		}
		if !actor.IsAdmin {
			return domainerrors.NewAuthorizationError("access the admin area")
		}

		return next(c)
	}
}
