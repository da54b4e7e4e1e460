package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "studio/internal/delivery/context"
	"studio/internal/domain/constants"
	"studio/internal/domain/entity"
	domainerrors "studio/internal/domain/errors"
	"studio/internal/domain/repository"
	"studio/internal/domain/service"
	"studio/internal/errors"
	"studio/internal/usecase"
	"studio/internal/util"
)

const (
	defaultSenderName = "User"
	previewRunes      = 80
)

type messageService struct {
	logger    *slog.Logger
	bookings  repository.BookingRepository
	messages  repository.MessageRepository
	publisher service.EventPublisher
	now       func() time.Time
}

func NewMessageService(
	logger *slog.Logger,
	bookings repository.BookingRepository,
	messages repository.MessageRepository,
	publisher service.EventPublisher,
) usecase.MessageUsecase {
	return &messageService{
		logger:    logger,
		bookings:  bookings,
		messages:  messages,
		publisher: publisher,
		now:       time.Now,
	}
}

// visibleBooking returns the booking if the actor owns it or is an admin.
func (srv *messageService) visibleBooking(ctx context.Context, actor entity.Actor, bookingID string) (*entity.Booking, error) {
	booking, err := srv.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && !booking.IsOwnedBy(actor.UserID) {
		return nil, domainerrors.ErrBookingNotFound.WrapMessage(bookingID)
	}

	return booking, nil
}

func (srv *messageService) SendMessage(ctx context.Context, actor entity.Actor, bookingID, text string) (*entity.Message, error) {
	booking, err := srv.visibleBooking(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && !booking.Status.ChatEnabled() {
		return nil, domainerrors.ErrChatDisabled
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domainerrors.NewValidationError(domainerrors.ReasonMissingField, "text", "Message text is required")
	}

	recipient := constants.AdminRecipient
	if actor.IsAdmin {
		recipient = booking.UserID
	}
	senderName := strings.TrimSpace(actor.Name)
	if senderName == "" {
		senderName = defaultSenderName
	}

	created, err := srv.messages.Create(ctx, &entity.Message{
		BookingID:   booking.ID,
		SenderID:    actor.UserID,
		SenderName:  senderName,
		RecipientID: recipient,
		Text:        text,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create message")
	}

	publishEvent(ctx, srv.publisher, deliverycontext.GetLoggerOrDefault(ctx, srv.logger), &service.BookingEvent{
		Type:        service.EventMessageCreated,
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		UserName:    booking.UserName,
		Status:      string(booking.Status),
		SenderID:    created.SenderID,
		RecipientID: created.RecipientID,
		Preview:     util.Truncate(created.Text, previewRunes),
	}, srv.now())

	return created, nil
}

func (srv *messageService) ListMessages(ctx context.Context, actor entity.Actor, bookingID string) ([]*entity.Message, error) {
	if _, err := srv.visibleBooking(ctx, actor, bookingID); err != nil {
		return nil, err
	}

	messages, err := srv.messages.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, errors.Wrap(err, "list messages")
	}

	return messages, nil
}

func (srv *messageService) MarkRead(ctx context.Context, actor entity.Actor, bookingID string) (int, error) {
	if _, err := srv.visibleBooking(ctx, actor, bookingID); err != nil {
		return 0, err
	}

	recipient := actor.UserID
	if actor.IsAdmin {
		recipient = constants.AdminRecipient
	}

	n, err := srv.messages.MarkRead(ctx, bookingID, recipient)
	if err != nil {
		return 0, errors.Wrap(err, "mark messages read")
	}

	return n, nil
}

func (srv *messageService) WatchMessages(
	ctx context.Context,
	actor entity.Actor,
	bookingID string,
	fn repository.MessageSnapshotFunc,
) error {
	if _, err := srv.visibleBooking(ctx, actor, bookingID); err != nil {
		return err
	}

	return srv.messages.Subscribe(ctx, bookingID, fn)
}
