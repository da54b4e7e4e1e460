package firestore

import (
	"context"
	"time"

	"studio/internal/domain/entity"
	domainerrors "studio/internal/domain/errors"
	"studio/internal/domain/repository"
	"studio/internal/errors"
	"studio/internal/infra/persistence/model"

	"cloud.google.com/go/firestore"
)

type userRepository struct {
	client *Client
}

func NewUserRepository(client *Client) repository.UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	snap, err := r.client.users().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("find user " + id)
		}

		return nil, errors.Wrapf(err, "get user %s", id)
	}

	var doc model.UserDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, errors.Wrapf(err, "decode user %s", id)
	}
	doc.ID = snap.Ref.ID

	return doc.ToEntity(), nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	doc := model.UserToDocument(user)
	doc.CreatedAt = time.Time{}

	if _, err := r.client.users().Doc(user.ID).Create(ctx, doc); err != nil && !isAlreadyExists(err) {
		return nil, errors.Wrapf(err, "create user %s", user.ID)
	}

	return r.FindByID(ctx, user.ID)
}

func (r *userRepository) UpdatePhotoURL(ctx context.Context, id, photoURL string) error {
	_, err := r.client.users().Doc(id).Update(ctx, []firestore.Update{{Path: "photoURL", Value: photoURL}})
	if err != nil {
		if isNotFound(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("update user " + id)
		}

		return errors.Wrapf(err, "update user %s", id)
	}

	return nil
}
