package auth

import (
	"context"
	"testing"
	"time"

	"studio/internal/domain/entity"
	domainerrors "studio/internal/domain/errors"
	"studio/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_local_secret_key_very_long_for_testing"

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc, err := NewJWTService(testSecret, time.Hour)
	require.NoError(t, err)

	token, err := svc.Issue(entity.Identity{
		UID:         "uid-42",
		Email:       "naledi@example.com",
		DisplayName: "Naledi",
		PhotoURL:    "https://example.com/n.png",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	identity, err := svc.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "uid-42", identity.UID)
	assert.Equal(t, "naledi@example.com", identity.Email)
	assert.Equal(t, "Naledi", identity.DisplayName)
	assert.Equal(t, "https://example.com/n.png", identity.PhotoURL)
}

func TestJWTService_RejectsBadTokens(t *testing.T) {
	svc, err := NewJWTService(testSecret, time.Hour)
	require.NoError(t, err)

	other, err := NewJWTService("a_completely_different_secret_value", time.Hour)
	require.NoError(t, err)
	foreign, err := other.Issue(entity.Identity{UID: "uid-1"})
	require.NoError(t, err)

	expiredSvc, err := NewJWTService(testSecret, time.Hour)
	require.NoError(t, err)
	expiredSvc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredSvc.Issue(entity.Identity{UID: "uid-1"})
	require.NoError(t, err)

	wrongIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   "uid-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-jwt"},
		{name: "signed with another secret", token: foreign},
		{name: "expired", token: expired},
		{name: "wrong issuer", token: wrongIssuer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(context.Background(), tt.token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
		})
	}
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService("", time.Hour)
	assert.Error(t, err)

	svc, err := NewJWTService(testSecret, time.Hour)
	require.NoError(t, err)
	_, err = svc.Issue(entity.Identity{})
	assert.Error(t, err)
}

func TestClaimString(t *testing.T) {
	claims := map[string]any{"email": "a@b.c", "email_verified": true}

	assert.Equal(t, "a@b.c", claimString(claims, "email"))
	assert.Empty(t, claimString(claims, "email_verified"))
	assert.Empty(t, claimString(claims, "name"))
}
