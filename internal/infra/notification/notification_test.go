package notification

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"studio/config"
	"studio/internal/infra/firebase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogService_SendToTopic(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	svc := NewLogService(slog.New(slog.NewTextHandler(&buf, nil)))

	err := svc.SendToTopic(context.Background(), "user-client-1", "Queue update", "You are now number 2 in the queue",
		map[string]string{"booking_id": "b1"})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "topic=user-client-1")
	assert.Contains(t, buf.String(), `title="Queue update"`)
}

func TestNewNotificationService(t *testing.T) {
	t.Parallel()

	newParams := func(notifier string) Params {
		cfg := &config.Config{
			Firebase: &config.FirebaseConfig{},
			Worker:   &config.WorkerConfig{Notifier: notifier},
		}

		return Params{
			Ctx:    context.Background(),
			Config: cfg,
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
			Apps:   firebase.NewAppProvider(cfg),
		}
	}

	svc, err := NewNotificationService(newParams("log"))
	require.NoError(t, err)
	assert.IsType(t, &logService{}, svc)

	_, err = NewNotificationService(newParams("carrier-pigeon"))
	assert.ErrorContains(t, err, "unknown notifier")
}
