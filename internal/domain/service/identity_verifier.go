package service

import (
	"context"

	"studio/internal/domain/entity"
)

// IdentityVerifier turns a bearer token into a verified identity.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*entity.Identity, error)
}

// TokenIssuer mints tokens for the local identity provider used in development.
type TokenIssuer interface {
	Issue(identity entity.Identity) (string, error)
}
