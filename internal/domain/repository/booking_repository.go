package repository

import (
	"context"

	"studio/internal/domain/entity"
)

// BookingSnapshotFunc receives the complete, ordered result set of a query.
// Each call replaces the previous one.
type BookingSnapshotFunc func(bookings []*entity.Booking)

// BookingRepository is the document-store view of bookings. Writes are last
// writer wins; there is no version check.
type BookingRepository interface {
	// Create assigns ID, CreatedAt and LastUpdated and returns the stored booking.
	Create(ctx context.Context, booking *entity.Booking) (*entity.Booking, error)

	// Update applies a partial change and stamps LastUpdated.
	// Returns domainerrors.ErrBookingNotFound for unknown ids.
	Update(ctx context.Context, id string, change entity.BookingChange) (*entity.Booking, error)

	FindByID(ctx context.Context, id string) (*entity.Booking, error)

	// List returns matching bookings, newest first.
	List(ctx context.Context, query entity.BookingQuery) ([]*entity.Booking, error)

	// Subscribe delivers a snapshot immediately and again after every change
	// until ctx is done. It blocks; a nil return means ctx ended.
	Subscribe(ctx context.Context, query entity.BookingQuery, fn BookingSnapshotFunc) error
}
