package usecase

import (
	"context"

	"studio/internal/domain/entity"
	"studio/internal/domain/repository"
)

// BookingScope selects which bookings a watcher follows.
type BookingScope string

const (
	// ScopeMine is the caller's own bookings.
	ScopeMine BookingScope = "mine"
	// ScopeChat is the caller's bookings that have chat enabled.
	ScopeChat BookingScope = "chat"
	// ScopeAll is every booking, administrators only.
	ScopeAll BookingScope = "all"
)

func (s BookingScope) IsValid() bool {
	return s == ScopeMine || s == ScopeChat || s == ScopeAll
}

// BookingUsecase is the booking lifecycle: creation by clients, every later
// change by administrators.
type BookingUsecase interface {
	CreateBooking(ctx context.Context, actor entity.Actor, draft entity.BookingDraft) (*entity.Booking, error)

	// GetBooking hides bookings the actor may not see behind ErrBookingNotFound.
	GetBooking(ctx context.Context, actor entity.Actor, id string) (*entity.Booking, error)

	ListBookings(ctx context.Context, actor entity.Actor, scope BookingScope, statuses []entity.BookingStatus) ([]*entity.Booking, error)

	// TransitionStatus moves a booking through the lifecycle. Entering queued
	// requires queuePosition.
	TransitionStatus(ctx context.Context, actor entity.Actor, id string, to entity.BookingStatus, queuePosition *int) (*entity.Booking, error)

	// UpdateQueuePosition edits the position of a queued booking.
	UpdateQueuePosition(ctx context.Context, actor entity.Actor, id string, position int) (*entity.Booking, error)

	Stats(ctx context.Context, actor entity.Actor) (*entity.BookingStats, error)

	// CheckInQR renders the check-in code of an approved booking as PNG.
	CheckInQR(ctx context.Context, actor entity.Actor, id string) ([]byte, error)

	// WatchBookings blocks, delivering full snapshots until ctx ends.
	WatchBookings(ctx context.Context, actor entity.Actor, scope BookingScope, fn repository.BookingSnapshotFunc) error
}
