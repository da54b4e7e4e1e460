package pubsub

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"studio/internal/domain/constants"
	"studio/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent() *service.BookingEvent {
	pos := 3

	return &service.BookingEvent{
		RequestID:     "req-1",
		EventID:       "evt-1",
		Type:          service.EventQueuePositionChanged,
		BookingID:     "bk-1",
		UserID:        "uid-1",
		Status:        "queued",
		QueuePosition: &pos,
		OccurredAt:    time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC),
	}
}

func TestLocalHTTPPublisher_PostsPushEnvelope(t *testing.T) {
	var received PushMessage
	var requestID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get(constants.HeaderRequestID)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	publisher := NewLocalHTTPPublisher(srv.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, publisher.PublishBookingEvent(context.Background(), testEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "evt-1", received.Message.MessageID)
	assert.Equal(t, string(service.EventQueuePositionChanged), received.Message.Attributes[constants.AttrEventType])
	assert.Equal(t, "bk-1", received.Message.Attributes["booking_id"])

	event, err := received.Event()
	require.NoError(t, err)
	assert.Equal(t, "bk-1", event.BookingID)
	require.NotNil(t, event.QueuePosition)
	assert.Equal(t, 3, *event.QueuePosition)
}

func TestLocalHTTPPublisher_FailsOnWorkerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	publisher := NewLocalHTTPPublisher(srv.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := publisher.PublishBookingEvent(context.Background(), testEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestPushMessage_EventRejectsGarbage(t *testing.T) {
	var msg PushMessage
	msg.Message.Data = "%%%"

	_, err := msg.Event()
	assert.Error(t, err)
}
