package firestore

import (
	"context"
	"time"

	"studio/internal/domain/entity"
	"studio/internal/domain/repository"
	"studio/internal/errors"
	"studio/internal/infra/persistence/model"

	"cloud.google.com/go/firestore"
)

type messageRepository struct {
	client *Client
}

func NewMessageRepository(client *Client) repository.MessageRepository {
	return &messageRepository{client: client}
}

func (r *messageRepository) Create(ctx context.Context, message *entity.Message) (*entity.Message, error) {
	ref := r.client.messages().NewDoc()
	doc := model.MessageToDocument(message)
	doc.CreatedAt = time.Time{}

	if _, err := ref.Create(ctx, doc); err != nil {
		return nil, errors.Wrap(err, "create message document")
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "get message %s", ref.ID)
	}

	return decodeMessage(snap)
}

func (r *messageRepository) ListByBooking(ctx context.Context, bookingID string) ([]*entity.Message, error) {
	docs, err := r.byBooking(bookingID).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "query messages")
	}

	return decodeMessages(docs)
}

func (r *messageRepository) MarkRead(ctx context.Context, bookingID, recipientID string) (int, error) {
	docs, err := r.client.messages().
		Where(model.FieldBookingID, "==", bookingID).
		Where(model.FieldRecipientID, "==", recipientID).
		Where(model.FieldRead, "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Wrap(err, "query unread messages")
	}

	if len(docs) == 0 {
		return 0, nil
	}

	writer := r.client.fs.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(docs))
	for _, snap := range docs {
		job, err := writer.Update(snap.Ref, []firestore.Update{{Path: model.FieldRead, Value: true}})
		if err != nil {
			writer.End()

			return 0, errors.Wrapf(err, "queue read flag for %s", snap.Ref.ID)
		}
		jobs = append(jobs, job)
	}
	writer.End()

	marked := 0
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return marked, errors.Wrap(err, "set read flag")
		}
		marked++
	}

	return marked, nil
}

func (r *messageRepository) Subscribe(ctx context.Context, bookingID string, fn repository.MessageSnapshotFunc) error {
	return watch(ctx, r.byBooking(bookingID), func(docs []*firestore.DocumentSnapshot) error {
		messages, err := decodeMessages(docs)
		if err != nil {
			return err
		}
		fn(messages)

		return nil
	})
}

func (r *messageRepository) byBooking(bookingID string) firestore.Query {
	return r.client.messages().
		Where(model.FieldBookingID, "==", bookingID).
		OrderBy(model.FieldCreatedAt, firestore.Asc)
}

func decodeMessage(snap *firestore.DocumentSnapshot) (*entity.Message, error) {
	var doc model.MessageDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, errors.Wrapf(err, "decode message %s", snap.Ref.ID)
	}
	doc.ID = snap.Ref.ID

	return doc.ToEntity(), nil
}

func decodeMessages(docs []*firestore.DocumentSnapshot) ([]*entity.Message, error) {
	messages := make([]*entity.Message, 0, len(docs))
	for _, snap := range docs {
		m, err := decodeMessage(snap)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, nil
}
