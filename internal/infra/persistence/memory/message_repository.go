package memory

import (
	"context"
	"io"
	"slices"
	"strings"

	"studio/internal/domain/entity"
	"studio/internal/domain/repository"
	"studio/internal/errors"
	"studio/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gocloud.dev/docstore"
)

type messageRepository struct {
	store    *Store
	markRead func(ctx context.Context, id string) error
}

func NewMessageRepository(store *Store) repository.MessageRepository {
	r := &messageRepository{store: store}
	r.markRead = r.markDocumentRead

	return r
}

func (r *messageRepository) markDocumentRead(ctx context.Context, id string) error {
	return r.store.messages.Update(ctx, &model.MessageDocument{ID: id}, docstore.Mods{model.FieldRead: true})
}

func (r *messageRepository) Create(ctx context.Context, message *entity.Message) (*entity.Message, error) {
	doc := model.MessageToDocument(message)
	doc.ID = uuid.NewString()
	doc.CreatedAt = r.store.timestamp()

	if err := r.store.messages.Create(ctx, doc); err != nil {
		return nil, errors.Wrap(err, "create message document")
	}
	r.store.messageHub.broadcast()

	return doc.ToEntity(), nil
}

func (r *messageRepository) ListByBooking(ctx context.Context, bookingID string) ([]*entity.Message, error) {
	iter := r.store.messages.Query().Where(model.FieldBookingID, "=", bookingID).Get(ctx)
	defer iter.Stop()

	messages := make([]*entity.Message, 0)
	for {
		var doc model.MessageDocument
		err := iter.Next(ctx, &doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "query messages")
		}
		messages = append(messages, doc.ToEntity())
	}

	// oldest first
	slices.SortFunc(messages, func(a, b *entity.Message) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}

		return strings.Compare(a.ID, b.ID)
	})

	return messages, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, bookingID, recipientID string) (int, error) {
	messages, err := r.ListByBooking(ctx, bookingID)
	if err != nil {
		return 0, err
	}

	marked := 0
	defer func() {
		if marked > 0 {
			r.store.messageHub.broadcast()
		}
	}()

	for _, m := range messages {
		if m.Read || m.RecipientID != recipientID {
			continue
		}
		if err := r.markRead(ctx, m.ID); err != nil {
			return marked, errors.Wrapf(err, "mark message %s read", m.ID)
		}
		marked++
	}

	return marked, nil
}

func (r *messageRepository) Subscribe(ctx context.Context, bookingID string, fn repository.MessageSnapshotFunc) error {
	signal, cancel := r.store.messageHub.subscribe()
	defer cancel()

	for {
		snapshot, err := r.ListByBooking(ctx, bookingID)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return err
		}
		fn(snapshot)

		select {
		case <-ctx.Done():
			return nil
		case <-signal:
		}
	}
}
