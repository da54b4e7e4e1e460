package auth

import (
	"context"

	"studio/internal/domain/entity"
	domainerrors "studio/internal/domain/errors"
	"studio/internal/errors"

	firebaseauth "firebase.google.com/go/v4/auth"
)

// firebaseVerifier checks Firebase ID tokens issued by the Google sign-in flow.
type firebaseVerifier struct {
	client *firebaseauth.Client
}

func NewFirebaseVerifier(client *firebaseauth.Client) *firebaseVerifier {
	return &firebaseVerifier{client: client}
}

func (v *firebaseVerifier) Verify(ctx context.Context, token string) (*entity.Identity, error) {
	verified, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidToken, err.Error())
	}

	return &entity.Identity{
		UID:         verified.UID,
		Email:       claimString(verified.Claims, "email"),
		DisplayName: claimString(verified.Claims, "name"),
		PhotoURL:    claimString(verified.Claims, "picture"),
	}, nil
}

func claimString(claims map[string]any, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}

	return ""
}
