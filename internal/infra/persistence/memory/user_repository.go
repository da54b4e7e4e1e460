package memory

import (
	"context"

	"studio/internal/domain/entity"
	domainerrors "studio/internal/domain/errors"
	"studio/internal/domain/repository"
	"studio/internal/errors"
	"studio/internal/infra/persistence/model"

	"gocloud.dev/docstore"
	"gocloud.dev/gcerrors"
)

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	doc := &model.UserDocument{ID: id}
	if err := r.store.users.Get(ctx, doc); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("find user " + id)
		}

		return nil, errors.Wrapf(err, "get user %s", id)
	}

	return doc.ToEntity(), nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	doc := model.UserToDocument(user)
	doc.CreatedAt = r.store.timestamp()

	if err := r.store.users.Create(ctx, doc); err != nil {
		if gcerrors.Code(err) == gcerrors.AlreadyExists {
			return r.FindByID(ctx, user.ID)
		}

		return nil, errors.Wrapf(err, "create user %s", user.ID)
	}

	return doc.ToEntity(), nil
}

func (r *userRepository) UpdatePhotoURL(ctx context.Context, id, photoURL string) error {
	err := r.store.users.Update(ctx, &model.UserDocument{ID: id}, docstore.Mods{"photoURL": photoURL})
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return domainerrors.ErrUserNotFound.WrapMessage("update user " + id)
		}

		return errors.Wrapf(err, "update user %s", id)
	}

	return nil
}
