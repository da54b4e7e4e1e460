package memory

import (
	"context"
	"testing"

	"studio/internal/domain/entity"
	domainerrors "studio/internal/domain/errors"
	"studio/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateIsIdempotent(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &entity.User{ID: "uid-1", Email: "a@b.c", DisplayName: "A", Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	again, err := repo.Create(ctx, &entity.User{ID: "uid-1", Email: "other@b.c", Role: entity.RoleClient})
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", again.Email)
	assert.True(t, again.IsAdmin())
}

func TestUserRepository_UpdatePhotoURL(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &entity.User{ID: "uid-1", Role: entity.RoleClient})
	require.NoError(t, err)

	require.NoError(t, repo.UpdatePhotoURL(ctx, "uid-1", "https://cdn/profile-pictures/uid-1"))

	user, err := repo.FindByID(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/profile-pictures/uid-1", user.PhotoURL)

	err = repo.UpdatePhotoURL(ctx, "missing", "x")
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))

	_, err = repo.FindByID(ctx, "missing")
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
