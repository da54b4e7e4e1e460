package memory

import (
	"context"
	"io"
	"slices"
	"strings"

	"studio/internal/domain/entity"
	domainerrors "studio/internal/domain/errors"
	"studio/internal/domain/repository"
	"studio/internal/errors"
	"studio/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gocloud.dev/docstore"
	"gocloud.dev/gcerrors"
)

type bookingRepository struct {
	store *Store
}

func NewBookingRepository(store *Store) repository.BookingRepository {
	return &bookingRepository{store: store}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	doc := model.BookingToDocument(booking)
	doc.ID = uuid.NewString()
	doc.CreatedAt = r.store.timestamp()
	doc.LastUpdated = doc.CreatedAt

	if err := r.store.bookings.Create(ctx, doc); err != nil {
		return nil, errors.Wrap(err, "create booking document")
	}
	r.store.bookingHub.broadcast()

	return doc.ToEntity(), nil
}

func (r *bookingRepository) Update(ctx context.Context, id string, change entity.BookingChange) (*entity.Booking, error) {
	mods := docstore.Mods{model.FieldLastUpdated: r.store.timestamp()}
	for path, value := range model.ChangeFields(change) {
		mods[docstore.FieldPath(path)] = value
	}

	if err := r.store.bookings.Update(ctx, &model.BookingDocument{ID: id}, mods); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, domainerrors.ErrBookingNotFound.WrapMessage("update booking " + id)
		}

		return nil, errors.Wrapf(err, "update booking %s", id)
	}
	r.store.bookingHub.broadcast()

	return r.FindByID(ctx, id)
}

func (r *bookingRepository) FindByID(ctx context.Context, id string) (*entity.Booking, error) {
	doc := &model.BookingDocument{ID: id}
	if err := r.store.bookings.Get(ctx, doc); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, domainerrors.ErrBookingNotFound.WrapMessage("find booking " + id)
		}

		return nil, errors.Wrapf(err, "get booking %s", id)
	}

	return doc.ToEntity(), nil
}

func (r *bookingRepository) List(ctx context.Context, query entity.BookingQuery) ([]*entity.Booking, error) {
	q := r.store.bookings.Query()
	if query.UserID != "" {
		q = q.Where(model.FieldUserID, "=", query.UserID)
	}

	iter := q.Get(ctx)
	defer iter.Stop()

	bookings := make([]*entity.Booking, 0)
	for {
		var doc model.BookingDocument
		err := iter.Next(ctx, &doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "query bookings")
		}

		booking := doc.ToEntity()
		if query.Matches(booking) {
			bookings = append(bookings, booking)
		}
	}

	// newest first
	slices.SortFunc(bookings, func(a, b *entity.Booking) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}

		return strings.Compare(a.ID, b.ID)
	})

	return bookings, nil
}

func (r *bookingRepository) Subscribe(ctx context.Context, query entity.BookingQuery, fn repository.BookingSnapshotFunc) error {
	signal, cancel := r.store.bookingHub.subscribe()
	defer cancel()

	for {
		snapshot, err := r.List(ctx, query)
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
