// Package auth verifies the bearer tokens presented to the portal.
package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"studio/internal/domain/entity"
	domainerrors "studio/internal/domain/errors"
	"studio/internal/errors"
)

const localIssuer = "studio-local"

// localClaims mirror the identity fields a Firebase ID token carries.
type localClaims struct {
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// jwtService is the local identity provider: HS256 tokens signed with a
// shared secret. It stands in for Firebase Auth in development and tests.
type jwtService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTService(secret string, ttl time.Duration) (*jwtService, error) {
	if secret == "" {
		return nil, errors.New("local auth secret must be provided")
	}

	return &jwtService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for identity.
func (s *jwtService) Issue(identity entity.Identity) (string, error) {
	if identity.UID == "" {
		return "", errors.New("identity uid is required")
	}

	now := s.now()
	claims := localClaims{
		Email:   identity.Email,
		Name:    identity.DisplayName,
		Picture: identity.PhotoURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    localIssuer,
			Subject:   identity.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign local token")
	}

	return signed, nil
}

// Verify checks signature, issuer and expiry.
func (s *jwtService) Verify(_ context.Context, token string) (*entity.Identity, error) {
	claims := &localClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(localIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidToken, err.Error())
	}

	if claims.Subject == "" {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("token has no subject")
	}

	return &entity.Identity{
		UID:         claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
		PhotoURL:    claims.Picture,
	}, nil
}
