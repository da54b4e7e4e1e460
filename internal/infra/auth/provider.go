package auth

import (
	"context"
	"log/slog"

	"studio/config"
	"studio/internal/domain/constants"
	"studio/internal/domain/service"
	"studio/internal/errors"
	"studio/internal/infra/firebase"

	"go.uber.org/fx"
)

type VerifierParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
	Apps   *firebase.AppProvider
}

type VerifierResult struct {
	fx.Out

	Verifier service.IdentityVerifier
	// Issuer is nil unless the local provider is active.
	Issuer service.TokenIssuer
}

// NewIdentityVerifier picks the identity provider from configuration.
func NewIdentityVerifier(params VerifierParams) (VerifierResult, error) {
	cfg := params.Config.Auth

	switch cfg.Provider {
	case constants.AuthProviderLocal:
		svc, err := NewJWTService(cfg.Secret, cfg.TokenTTL)
		if err != nil {
			return VerifierResult{}, err
		}
		params.Logger.Warn("Using local HS256 identity provider")

		return VerifierResult{Verifier: svc, Issuer: svc}, nil

	case constants.AuthProviderFirebase:
		app, err := params.Apps.App(params.Ctx)
		if err != nil {
			return VerifierResult{}, err
		}
		client, err := app.Auth(params.Ctx)
		if err != nil {
			return VerifierResult{}, errors.Wrap(err, "create firebase auth client")
		}
		params.Logger.Info("Using Firebase identity provider")

		return VerifierResult{Verifier: NewFirebaseVerifier(client)}, nil

	default:
		return VerifierResult{}, errors.Errorf("unknown auth provider: %s", cfg.Provider)
	}
}
