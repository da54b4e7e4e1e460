package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"studio/config"
	"studio/internal/domain/service"
	"studio/internal/errors"
	"studio/internal/infra/pubsub"
	mockSvc "studio/internal/mocks/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func newTestHandler(t *testing.T, verify bool) (*PushHandler, *mockSvc.MockNotificationService) {
	t.Helper()

	notifier := mockSvc.NewMockNotificationService(t)
	h := NewPushHandler(PushHandlerParams{
		Config: &config.Config{Worker: &config.WorkerConfig{
			AdminTopic:      "studio-admins",
			VerifyPushToken: verify,
			PushAudience:    "https://worker.studio.test/pubsub/push",
		}},
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		NotificationSvc: notifier,
	})

	return h, notifier
}

func push(t *testing.T, h *PushHandler, event *service.BookingEvent, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	msg, err := pubsub.NewPushMessage(event, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return pushRaw(t, h, body, authHeader)
}

func pushRaw(t *testing.T, h *PushHandler, body []byte, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/pubsub/push", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()

	require.NoError(t, h.HandlePush(echo.New().NewContext(req, rec)))

	return rec
}

func intPtr(v int) *int {
	return &v
}

func TestHandlePush_RoutesEvents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		event     *service.BookingEvent
		wantTopic string
		wantTitle string
		wantBody  string
	}{
		{
			name: "new booking goes to the studio",
			event: &service.BookingEvent{
				Type: service.EventBookingCreated, BookingID: "b1", UserID: "client-1", UserName: "Thandi", PackageID: "full",
			},
			wantTopic: "studio-admins",
			wantTitle: "New booking request",
			wantBody:  "Thandi requested the full package",
		},
		{
			name: "queued goes to the client",
			event: &service.BookingEvent{
				Type: service.EventBookingStatusChanged, BookingID: "b1", UserID: "client-1", Status: "queued", QueuePosition: intPtr(3),
			},
			wantTopic: "user-client-1",
			wantTitle: "Booking update",
			wantBody:  "Your booking is queued at number 3",
		},
		{
			name: "queue edit",
			event: &service.BookingEvent{
				Type: service.EventQueuePositionChanged, BookingID: "b1", UserID: "client-1", Status: "queued", QueuePosition: intPtr(1),
			},
			wantTopic: "user-client-1",
			wantTitle: "Queue update",
			wantBody:  "You are now number 1 in the queue",
		},
		{
			name: "client message goes to the studio",
			event: &service.BookingEvent{
				Type: service.EventMessageCreated, BookingID: "b1", UserID: "client-1", UserName: "Thandi",
				SenderID: "client-1", RecipientID: "admin", Preview: "When should I arrive?",
			},
			wantTopic: "studio-admins",
			wantTitle: "New message from Thandi",
			wantBody:  "When should I arrive?",
		},
		{
			name: "studio message goes to the client",
			event: &service.BookingEvent{
				Type: service.EventMessageCreated, BookingID: "b1", UserID: "client-1",
				SenderID: "admin-1", RecipientID: "client-1", Preview: "Ten o'clock",
			},
			wantTopic: "user-client-1",
			wantTitle: "New message from the studio",
			wantBody:  "Ten o'clock",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, notifier := newTestHandler(t, false)
			notifier.EXPECT().
				SendToTopic(mock.Anything, tt.wantTopic, tt.wantTitle, tt.wantBody, mock.MatchedBy(func(data map[string]string) bool {
					return data["booking_id"] == "b1" && data["event_type"] == string(tt.event.Type)
				})).
				Return(nil)

			rec := push(t, h, tt.event, "")
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestHandlePush_QueuePositionInData(t *testing.T) {
	t.Parallel()

	h, notifier := newTestHandler(t, false)
	notifier.EXPECT().
		SendToTopic(mock.Anything, "user-client-1", mock.Anything, mock.Anything, mock.Anything).
		Run(func(_ context.Context, _, _, _ string, data map[string]string) {
			assert.Equal(t, "4", data["queue_position"])
			assert.Equal(t, "queued", data["status"])
		}).
		Return(nil)

	rec := push(t, h, &service.BookingEvent{
		Type: service.EventQueuePositionChanged, BookingID: "b1", UserID: "client-1", Status: "queued", QueuePosition: intPtr(4),
	}, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlePush_SendFailureIsRetried(t *testing.T) {
	t.Parallel()

	h, notifier := newTestHandler(t, false)
	notifier.EXPECT().
		SendToTopic(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("fcm unavailable"))

	rec := push(t, h, &service.BookingEvent{
		Type: service.EventBookingStatusChanged, BookingID: "b1", UserID: "client-1", Status: "approved",
	}, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandlePush_AcksEventsWithoutAudience(t *testing.T) {
	t.Parallel()

	// No SendToTopic expectation: the mock fails the test if it is called.
	h, _ := newTestHandler(t, false)

	rec := push(t, h, &service.BookingEvent{Type: "booking.archived", BookingID: "b1"}, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = push(t, h, &service.BookingEvent{Type: service.EventBookingStatusChanged, BookingID: "b1"}, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlePush_RejectsMalformedMessages(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t, false)

	rec := pushRaw(t, h, []byte(`{"message":{"data":"not base64!"}}`), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = pushRaw(t, h, []byte(`{`), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePush_VerifiesToken(t *testing.T) {
	t.Parallel()

	event := &service.BookingEvent{Type: service.EventBookingStatusChanged, BookingID: "b1", UserID: "client-1", Status: "cancelled"}

	t.Run("missing header", func(t *testing.T) {
		t.Parallel()

		h, _ := newTestHandler(t, true)
		rec := push(t, h, event, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		t.Parallel()

		h, _ := newTestHandler(t, true)
		h.validate = func(context.Context, string, string) (*idtoken.Payload, error) {
			return &idtoken.Payload{Issuer: "https://evil.example.com"}, nil
		}

		rec := push(t, h, event, "Bearer token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		t.Parallel()

		h, notifier := newTestHandler(t, true)
		var gotAudience string
		h.validate = func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
			gotAudience = audience

			return &idtoken.Payload{
				Issuer: "https://accounts.google.com",
				Claims: map[string]any{"email_verified": true},
			}, nil
		}
		notifier.EXPECT().
			SendToTopic(mock.Anything, "user-client-1", "Booking update", "Your booking was cancelled", mock.Anything).
			Return(nil)

		rec := push(t, h, event, "Bearer token")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://worker.studio.test/pubsub/push", gotAudience)
	})
}
