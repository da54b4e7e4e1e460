package usecase

import (
	"context"

	"studio/internal/domain/entity"
	"studio/internal/domain/repository"
)

// MessageUsecase is the per-booking chat between a client and the studio.
type MessageUsecase interface {
	SendMessage(ctx context.Context, actor entity.Actor, bookingID, text string) (*entity.Message, error)
	ListMessages(ctx context.Context, actor entity.Actor, bookingID string) ([]*entity.Message, error)
	// MarkRead flags the messages addressed to the actor as read.
	MarkRead(ctx context.Context, actor entity.Actor, bookingID string) (int, error)
	WatchMessages(ctx context.Context, actor entity.Actor, bookingID string, fn repository.MessageSnapshotFunc) error
}
