package impl

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"studio/internal/domain/entity"
	domainerrors "studio/internal/domain/errors"
	"studio/internal/errors"
	"studio/internal/infra/persistence/memory"
	mockRepo "studio/internal/mocks/repository"
	mockSvc "studio/internal/mocks/service"
	"studio/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type profileFixture struct {
	ctx        context.Context
	service    usecase.ProfileUsecase
	storage    *mockSvc.MockObjectStorage
	normalizer *mockSvc.MockImageNormalizer
}

func newProfileFixture(t *testing.T) *profileFixture {
	t.Helper()

	store, err := memory.NewStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	f := &profileFixture{
		ctx:        context.Background(),
		storage:    mockSvc.NewMockObjectStorage(t),
		normalizer: mockSvc.NewMockImageNormalizer(t),
	}
	f.service = NewProfileService(newDiscardLogger(), newTestConfig(), memory.NewUserRepository(store), f.storage, f.normalizer)

	return f
}

func TestProfileService_EnsureUser(t *testing.T) {
	f := newProfileFixture(t)

	user, err := f.service.EnsureUser(f.ctx, entity.Identity{UID: "uid-1", Email: "thandi@example.com", DisplayName: "Thandi"})
	require.NoError(t, err)
	assert.Equal(t, "uid-1", user.ID)
	assert.Equal(t, entity.RoleClient, user.Role)
	assert.False(t, user.CreatedAt.IsZero())

	again, err := f.service.EnsureUser(f.ctx, entity.Identity{UID: "uid-1", DisplayName: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Thandi", again.DisplayName)
	assert.True(t, again.CreatedAt.Equal(user.CreatedAt))
}

func TestProfileService_EnsureUser_AdminBootstrap(t *testing.T) {
	f := newProfileFixture(t)

	user, err := f.service.EnsureUser(f.ctx, entity.Identity{UID: "uid-admin", Email: "ADMIN@studio.local"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	assert.True(t, user.IsAdmin())
}

func TestProfileService_EnsureUser_RequiresUID(t *testing.T) {
	f := newProfileFixture(t)

	_, err := f.service.EnsureUser(f.ctx, entity.Identity{Email: "x@example.com"})
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
}

func TestProfileService_EnsureUser_StoreError(t *testing.T) {
	users := mockRepo.NewMockUserRepository(t)
	svc := NewProfileService(newDiscardLogger(), newTestConfig(), users, mockSvc.NewMockObjectStorage(t), mockSvc.NewMockImageNormalizer(t))

	storeErr := errors.New("unavailable")
	users.EXPECT().FindByID(mock.Anything, "uid-1").Return(nil, storeErr).Once()

	_, err := svc.EnsureUser(context.Background(), entity.Identity{UID: "uid-1"})
	assert.True(t, errors.Is(err, storeErr))
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	f := newProfileFixture(t)

	_, err := f.service.GetProfile(f.ctx, "nobody")
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestProfileService_UploadProfilePicture(t *testing.T) {
	f := newProfileFixture(t)
	_, err := f.service.EnsureUser(f.ctx, entity.Identity{UID: "uid-1"})
	require.NoError(t, err)

	f.normalizer.EXPECT().Normalize(mock.Anything).
		RunAndReturn(func(r io.Reader) ([]byte, string, error) {
			data, err := io.ReadAll(r)
			if err != nil {
				return nil, "", err
			}

			return append([]byte("jpeg:"), data...), "image/jpeg", nil
		}).
		Once()
	f.storage.EXPECT().
		Put(mock.Anything, "profile-pictures/uid-1", "image/jpeg", []byte("jpeg:png-bytes")).
		Return("https://media.test/profile-pictures/uid-1", nil).
		Once()

	user, err := f.service.UploadProfilePicture(f.ctx, "uid-1", usecase.ProfilePictureUpload{
		ContentType: "image/png",
		Size:        9,
		Content:     strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://media.test/profile-pictures/uid-1", user.PhotoURL)
}

func TestProfileService_UploadProfilePicture_Rejections(t *testing.T) {
	f := newProfileFixture(t)

	_, err := f.service.UploadProfilePicture(f.ctx, "uid-1", usecase.ProfilePictureUpload{
		ContentType: "application/pdf",
		Size:        10,
		Content:     strings.NewReader("%PDF"),
	})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidImage))

	_, err = f.service.UploadProfilePicture(f.ctx, "uid-1", usecase.ProfilePictureUpload{
		ContentType: "image/jpeg",
		Size:        4096,
		Content:     bytes.NewReader(make([]byte, 4096)),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrImageTooLarge))
	assert.Contains(t, err.Error(), "4.0 KB exceeds 1.0 KB")
}

func TestProfileService_UploadProfilePicture_UnderstatedSize(t *testing.T) {
	f := newProfileFixture(t)

	f.normalizer.EXPECT().Normalize(mock.Anything).
		RunAndReturn(func(r io.Reader) ([]byte, string, error) {
			_, _ = io.Copy(io.Discard, r)

			return nil, "", domainerrors.ErrInvalidImage
		}).
		Once()

	_, err := f.service.UploadProfilePicture(f.ctx, "uid-1", usecase.ProfilePictureUpload{
		ContentType: "image/jpeg",
		Size:        10,
		Content:     bytes.NewReader(make([]byte, 4096)),
	})
	assert.True(t, errors.Is(err, domainerrors.ErrImageTooLarge))
}
