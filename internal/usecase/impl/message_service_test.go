package impl

import (
	"context"
	"testing"

	"studio/internal/domain/entity"
	domainerrors "studio/internal/domain/errors"
	"studio/internal/domain/service"
	"studio/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMessageService_SendMessage_ClientToAdmin(t *testing.T) {
	f := newBookingFixture(t)
	b := f.seed(t, client, entity.StatusQueued)

	f.publisher.EXPECT().
		PublishBookingEvent(mock.Anything, mock.MatchedBy(func(e *service.BookingEvent) bool {
			return e.Type == service.EventMessageCreated &&
				e.BookingID == b.ID &&
				e.RecipientID == "admin" &&
				e.Preview == "Can we start at 10?"
		})).
		Return(nil).
		Once()

	msg, err := f.chat.SendMessage(f.ctx, client, b.ID, "  Can we start at 10?  ")
	require.NoError(t, err)

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, b.ID, msg.BookingID)
	assert.Equal(t, client.UserID, msg.SenderID)
	assert.Equal(t, "Thandi", msg.SenderName)
	assert.Equal(t, "admin", msg.RecipientID)
	assert.Equal(t, "Can we start at 10?", msg.Text)
	assert.False(t, msg.Read)
}

func TestMessageService_SendMessage_AdminToClient(t *testing.T) {
	f := newBookingFixture(t)
	f.publisher.EXPECT().PublishBookingEvent(mock.Anything, mock.Anything).Return(nil).Once()

	// Admins may write on bookings whose client cannot chat yet.
	b := f.seed(t, client, entity.StatusPending)

	msg, err := f.chat.SendMessage(f.ctx, admin, b.ID, "We received your request")
	require.NoError(t, err)
	assert.Equal(t, client.UserID, msg.RecipientID)
	assert.Equal(t, "Studio", msg.SenderName)
}

func TestMessageService_SendMessage_Rejections(t *testing.T) {
	f := newBookingFixture(t)
	pending := f.seed(t, client, entity.StatusPending)
	completed := f.seed(t, client, entity.StatusCompleted)
	queued := f.seed(t, client, entity.StatusQueued)

	_, err := f.chat.SendMessage(f.ctx, client, pending.ID, "hello")
	assert.True(t, errors.Is(err, domainerrors.ErrChatDisabled))

	_, err = f.chat.SendMessage(f.ctx, client, completed.ID, "hello")
	assert.True(t, errors.Is(err, domainerrors.ErrChatDisabled))

	_, err = f.chat.SendMessage(f.ctx, other, queued.ID, "hello")
	assert.True(t, errors.Is(err, domainerrors.ErrBookingNotFound))

	_, err = f.chat.SendMessage(f.ctx, client, queued.ID, " \n\t ")
	assert.True(t, domainerrors.HasValidationReason(err, domainerrors.ReasonMissingField))

	_, err = f.chat.SendMessage(f.ctx, client, "missing", "hello")
	assert.True(t, errors.Is(err, domainerrors.ErrBookingNotFound))

	messages, err := f.messages.ListByBooking(f.ctx, queued.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestMessageService_SendMessage_DefaultSenderName(t *testing.T) {
	f := newBookingFixture(t)
	f.publisher.EXPECT().PublishBookingEvent(mock.Anything, mock.Anything).Return(nil).Once()

	anonymous := entity.Actor{UserID: "client-3"}
	b := f.seed(t, anonymous, entity.StatusApproved)

	msg, err := f.chat.SendMessage(f.ctx, anonymous, b.ID, "hi")
	require.NoError(t, err)
	assert.Equal(t, "User", msg.SenderName)
}

func TestMessageService_ListAndMarkRead(t *testing.T) {
	f := newBookingFixture(t)
	f.publisher.EXPECT().PublishBookingEvent(mock.Anything, mock.Anything).Return(nil).Times(3)

	b := f.seed(t, client, entity.StatusApproved)

	_, err := f.chat.SendMessage(f.ctx, client, b.ID, "first")
	require.NoError(t, err)
	_, err = f.chat.SendMessage(f.ctx, admin, b.ID, "second")
	require.NoError(t, err)
	_, err = f.chat.SendMessage(f.ctx, client, b.ID, "third")
	require.NoError(t, err)

	messages, err := f.chat.ListMessages(f.ctx, client, b.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[0].Text)
	assert.Equal(t, "second", messages[1].Text)
	assert.Equal(t, "third", messages[2].Text)

	_, err = f.chat.ListMessages(f.ctx, other, b.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrBookingNotFound))

	n, err := f.chat.MarkRead(f.ctx, admin, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = f.chat.MarkRead(f.ctx, client, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = f.chat.MarkRead(f.ctx, client, b.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMessageService_WatchMessages(t *testing.T) {
	f := newBookingFixture(t)
	b := f.seed(t, client, entity.StatusQueued)

	err := f.chat.WatchMessages(f.ctx, other, b.ID, func([]*entity.Message) {})
	assert.True(t, errors.Is(err, domainerrors.ErrBookingNotFound))

	ctx, cancel := context.WithCancel(f.ctx)
	calls := 0
	err = f.chat.WatchMessages(ctx, admin, b.ID, func(messages []*entity.Message) {
		calls++
		assert.Empty(t, messages)
		cancel()
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
