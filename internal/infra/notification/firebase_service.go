// Package notification sends push notifications for booking events.
package notification

import (
	"context"
	"log/slog"

	"studio/config"
	"studio/internal/domain/constants"
	"studio/internal/domain/service"
	"studio/internal/errors"
	"studio/internal/infra/firebase"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/fx"
)

type firebaseService struct {
	client *messaging.Client
}

func NewFirebaseService(client *messaging.Client) service.NotificationService {
	return &firebaseService{client: client}
}

// SendToTopic pushes to every device subscribed to the FCM topic.
func (s *firebaseService) SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) error {
	message := &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := s.client.Send(ctx, message); err != nil {
		return errors.Wrapf(err, "send notification to topic %s", topic)
	}

	return nil
}

// logService stands in for FCM in development.
type logService struct {
	logger *slog.Logger
}

func NewLogService(logger *slog.Logger) service.NotificationService {
	return &logService{logger: logger}
}

func (s *logService) SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) error {
	s.logger.InfoContext(ctx, "Notification",
		slog.String("topic", topic),
		slog.String("title", title),
		slog.String("body", body),
		slog.Any("data", data),
	)

	return nil
}

type Params struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
	Apps   *firebase.AppProvider
}

func NewNotificationService(params Params) (service.NotificationService, error) {
	switch params.Config.Worker.Notifier {
	case constants.NotifierLog:
		return NewLogService(params.Logger), nil

	case constants.NotifierFCM:
		app, err := params.Apps.App(params.Ctx)
		if err != nil {
			return nil, err
		}
		client, err := app.Messaging(params.Ctx)
		if err != nil {
			return nil, errors.Wrap(err, "create messaging client")
		}

		return NewFirebaseService(client), nil

	default:
		return nil, errors.Errorf("unknown notifier: %s", params.Config.Worker.Notifier)
	}
}

//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewNotificationService),
)
