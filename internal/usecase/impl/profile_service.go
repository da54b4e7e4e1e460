package impl

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"

	"studio/config"
	deliverycontext "studio/internal/delivery/context"
	"studio/internal/domain/constants"
	"studio/internal/domain/entity"
	domainerrors "studio/internal/domain/errors"
	"studio/internal/domain/repository"
	"studio/internal/domain/service"
	"studio/internal/errors"
	"studio/internal/usecase"
	"studio/internal/util"
)

type profileService struct {
	logger         *slog.Logger
	users          repository.UserRepository
	storage        service.ObjectStorage
	normalizer     service.ImageNormalizer
	adminEmails    []string
	maxUploadBytes int64
}

func NewProfileService(
	logger *slog.Logger,
	cfg *config.Config,
	users repository.UserRepository,
	storage service.ObjectStorage,
	normalizer service.ImageNormalizer,
) usecase.ProfileUsecase {
	admins := make([]string, 0, len(cfg.Auth.AdminEmails))
	for _, email := range cfg.Auth.AdminEmails {
		admins = append(admins, strings.ToLower(strings.TrimSpace(email)))
	}

	return &profileService{
		logger:         logger,
		users:          users,
		storage:        storage,
		normalizer:     normalizer,
		adminEmails:    admins,
		maxUploadBytes: cfg.Storage.MaxUploadBytes,
	}
}

// EnsureUser creates the profile on first sign-in. The role is decided once;
// later changes to the admin list do not touch existing profiles.
func (srv *profileService) EnsureUser(ctx context.Context, identity entity.Identity) (*entity.User, error) {
	if identity.UID == "" {
		return nil, domainerrors.ErrUnauthenticated
	}

	user, err := srv.users.FindByID(ctx, identity.UID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domainerrors.ErrUserNotFound) {
		return nil, errors.Wrap(err, "find user")
	}

	role := entity.RoleClient
	if identity.Email != "" && slices.Contains(srv.adminEmails, strings.ToLower(identity.Email)) {
		role = entity.RoleAdmin
	}

	created, err := srv.users.Create(ctx, &entity.User{
		ID:          identity.UID,
		DisplayName: identity.DisplayName,
		Email:       identity.Email,
		PhotoURL:    identity.PhotoURL,
		Role:        role,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create user")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("User profile created",
		slog.String("user_id", created.ID),
		slog.String("role", string(created.Role)),
	)

	return created, nil
}

func (srv *profileService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return srv.users.FindByID(ctx, userID)
}

func (srv *profileService) UploadProfilePicture(ctx context.Context, userID string, upload usecase.ProfilePictureUpload) (*entity.User, error) {
	if !strings.HasPrefix(strings.ToLower(upload.ContentType), "image/") {
		return nil, domainerrors.ErrInvalidImage.WrapMessage("content type " + upload.ContentType)
	}
	if upload.Size > srv.maxUploadBytes {
		return nil, srv.tooLarge(upload.Size)
	}

	// The declared size comes from the client, so the reader is capped too.
	limited := &io.LimitedReader{R: upload.Content, N: srv.maxUploadBytes + 1}
	data, contentType, err := srv.normalizer.Normalize(limited)
	if limited.N <= 0 {
		return nil, srv.tooLarge(srv.maxUploadBytes + 1)
	}
	if err != nil {
		return nil, err
	}

	url, err := srv.storage.Put(ctx, constants.ProfilePicPrefix+userID, contentType, data)
	if err != nil {
		return nil, errors.Wrap(err, "store profile picture")
	}

	if err := srv.users.UpdatePhotoURL(ctx, userID, url); err != nil {
		return nil, err
	}

	return srv.users.FindByID(ctx, userID)
}

func (srv *profileService) tooLarge(size int64) error {
	return domainerrors.ErrImageTooLarge.WrapMessage(
		util.FormatBytes(size) + " exceeds " + util.FormatBytes(srv.maxUploadBytes))
}
