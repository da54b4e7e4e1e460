package firestore

import (
	"context"
	"log/slog"
	"time"

	"studio/internal/domain/entity"
	domainerrors "studio/internal/domain/errors"
	"studio/internal/domain/repository"
	"studio/internal/errors"
	"studio/internal/infra/persistence/model"

	"cloud.google.com/go/firestore"
)

type bookingRepository struct {
	client *Client
}

func NewBookingRepository(client *Client) repository.BookingRepository {
	return &bookingRepository{client: client}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	ref := r.client.bookings().NewDoc()
	doc := model.BookingToDocument(booking)
	// zero timestamps become server timestamps
	doc.CreatedAt, doc.LastUpdated = time.Time{}, time.Time{}

	if _, err := ref.Create(ctx, doc); err != nil {
		return nil, errors.Wrap(err, "create booking document")
	}

	r.client.logger.Debug("Booking document created", slog.String("booking_id", ref.ID))

	return r.get(ctx, ref)
}

func (r *bookingRepository) Update(ctx context.Context, id string, change entity.BookingChange) (*entity.Booking, error) {
	updates := []firestore.Update{{Path: model.FieldLastUpdated, Value: firestore.ServerTimestamp}}
	for path, value := range model.ChangeFields(change) {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	ref := r.client.bookings().Doc(id)
	if _, err := ref.Update(ctx, updates); err != nil {
		if isNotFound(err) {
			return nil, domainerrors.ErrBookingNotFound.WrapMessage("update booking " + id)
		}

		return nil, errors.Wrapf(err, "update booking %s", id)
	}

	return r.get(ctx, ref)
}

func (r *bookingRepository) FindByID(ctx context.Context, id string) (*entity.Booking, error) {
	return r.get(ctx, r.client.bookings().Doc(id))
}

func (r *bookingRepository) List(ctx context.Context, query entity.BookingQuery) ([]*entity.Booking, error) {
	docs, err := r.query(query).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "query bookings")
	}

	return r.decodeBookings(docs)
}

func (r *bookingRepository) Subscribe(ctx context.Context, query entity.BookingQuery, fn repository.BookingSnapshotFunc) error {
	return watch(ctx, r.query(query), func(docs []*firestore.DocumentSnapshot) error {
		bookings, err := r.decodeBookings(docs)
		if err != nil {
			return err
		}
		fn(bookings)

		return nil
	})
}

func (r *bookingRepository) query(query entity.BookingQuery) firestore.Query {
	q := r.client.bookings().Query
	if query.UserID != "" {
		q = q.Where(model.FieldUserID, "==", query.UserID)
	}
	if len(query.Statuses) > 0 {
		statuses := make([]string, len(query.Statuses))
		for i, s := range query.Statuses {
			statuses[i] = string(s)
		}
		q = q.Where(model.FieldStatus, "in", statuses)
	}

	return q.OrderBy(model.FieldCreatedAt, firestore.Desc)
}

func (r *bookingRepository) get(ctx context.Context, ref *firestore.DocumentRef) (*entity.Booking, error) {
	snap, err := ref.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, domainerrors.ErrBookingNotFound.WrapMessage("find booking " + ref.ID)
		}

		return nil, errors.Wrapf(err, "get booking %s", ref.ID)
	}

	return decodeBooking(snap)
}

func decodeBooking(snap *firestore.DocumentSnapshot) (*entity.Booking, error) {
	var doc model.BookingDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, errors.Wrapf(err, "decode booking %s", snap.Ref.ID)
	}
	doc.ID = snap.Ref.ID
	if err := doc.Validate(); err != nil {
		return nil, errors.Wrapf(err, "booking %s", snap.Ref.ID)
	}

	return doc.ToEntity(), nil
}

// decodeBookings skips and logs documents that fail validation.
func (r *bookingRepository) decodeBookings(docs []*firestore.DocumentSnapshot) ([]*entity.Booking, error) {
	bookings := make([]*entity.Booking, 0, len(docs))
	for _, snap := range docs {
		booking, err := decodeBooking(snap)
		if errors.Is(err, model.ErrInvalidDocument) {
			r.client.logger.Warn("Skipping invalid booking document",
				slog.String("booking_id", snap.Ref.ID),
				slog.Any("error", err),
			)

			continue
		}
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}
