package usecase

import (
	"context"
	"io"

	"studio/internal/domain/entity"
)

// ProfileUsecase manages the portal profile behind a verified identity.
type ProfileUsecase interface {
	// EnsureUser returns the stored profile, creating it on first sight.
	EnsureUser(ctx context.Context, identity entity.Identity) (*entity.User, error)
	GetProfile(ctx context.Context, userID string) (*entity.User, error)
	UploadProfilePicture(ctx context.Context, userID string, upload ProfilePictureUpload) (*entity.User, error)
}

// --- Input DTOs ---

// ProfilePictureUpload is one uploaded file as received from the client.
type ProfilePictureUpload struct {
	ContentType string
	Size        int64
	Content     io.Reader
}
