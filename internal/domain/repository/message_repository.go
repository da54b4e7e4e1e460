package repository

import (
	"context"

	"studio/internal/domain/entity"
)

type MessageSnapshotFunc func(messages []*entity.Message)

// MessageRepository is the append-only chat log, scoped by booking and
// ordered by creation time ascending.
type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) (*entity.Message, error)

	ListByBooking(ctx context.Context, bookingID string) ([]*entity.Message, error)

	// MarkRead flags every unread message of the booking addressed to
	// recipientID and returns how many changed.
	MarkRead(ctx context.Context, bookingID, recipientID string) (int, error)

	// Subscribe follows the same contract as BookingRepository.Subscribe.
	Subscribe(ctx context.Context, bookingID string, fn MessageSnapshotFunc) error
}
