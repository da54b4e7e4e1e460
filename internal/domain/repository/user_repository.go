// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"studio/internal/domain/entity"
)

// UserRepository persists portal profiles keyed by the identity provider uid.
type UserRepository interface {
	// FindByID returns domainerrors.ErrUserNotFound when no profile exists.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// Create stores a new profile; the store assigns CreatedAt. If a profile
	// with the same id already exists it is returned unchanged.
	Create(ctx context.Context, user *entity.User) (*entity.User, error)

	// UpdatePhotoURL replaces the profile picture URL.
	UpdatePhotoURL(ctx context.Context, id, photoURL string) error
}
