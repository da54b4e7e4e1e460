package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"studio/config"
	deliverycontext "studio/internal/delivery/context"
	"studio/internal/domain/constants"
	"studio/internal/domain/entity"
	"studio/internal/domain/service"
	"studio/internal/infra/pubsub"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// retryableError wraps an error to indicate it should trigger a Pub/Sub retry
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

func newRetryableError(err error) error {
	return &retryableError{err: err}
}

func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// tokenValidator matches idtoken.Validate.
type tokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// notification is what a booking event turns into on a device.
type notification struct {
	topic string
	title string
	body  string
	data  map[string]string
}

// PushHandler consumes booking events delivered by Pub/Sub push and fans them
// out as FCM topic notifications.
type PushHandler struct {
	verifyPushAuth  bool
	audience        string
	adminTopic      string
	validate        tokenValidator
	logger          *slog.Logger
	notificationSvc service.NotificationService
}

type PushHandlerParams struct {
	fx.In

	Config          *config.Config
	Logger          *slog.Logger
	NotificationSvc service.NotificationService
}

func NewPushHandler(params PushHandlerParams) *PushHandler {
	cfg := params.Config.Worker

	return &PushHandler{
		verifyPushAuth:  cfg.VerifyPushToken,
		audience:        cfg.PushAudience,
		adminTopic:      cfg.AdminTopic,
		validate:        idtoken.Validate,
		logger:          params.Logger,
		notificationSvc: params.NotificationSvc,
	}
}

// HandlePush answers 2xx to acknowledge, 503 to have Pub/Sub redeliver.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := h.verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg pubsub.PushMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	event, err := pushMsg.Event()
	if err != nil {
		h.logger.Error("[Worker] Failed to decode booking event",
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := extractRequestID(ctx, &pushMsg, event)
	reqLogger := h.logger.With(
		slog.String(constants.AttrRequestID, requestID),
		slog.String(constants.AttrEventType, string(event.Type)),
		slog.String("booking_id", event.BookingID),
	)
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	if err := h.processEvent(ctx, event); err != nil {
		reqLogger.Error("[Worker] Failed to process booking event",
			slog.String("event_id", event.EventID),
			slog.Any("error", err),
			slog.Bool("retryable", isRetryableError(err)),
		)
		if isRetryableError(err) {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	return c.NoContent(http.StatusOK)
}

// extractRequestID prefers message attributes, then the event payload, then
// the X-Request-Id of the push request itself.
func extractRequestID(ctx context.Context, pushMsg *pubsub.PushMessage, event *service.BookingEvent) string {
	if requestID := pushMsg.Message.Attributes[constants.AttrRequestID]; requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.NewString()
}

func (h *PushHandler) processEvent(ctx context.Context, event *service.BookingEvent) error {
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	n, ok := h.notificationFor(event)
	if !ok {
		logger.Info("[Worker] Ignoring event with no notification")

		return nil
	}

	if err := h.notificationSvc.SendToTopic(ctx, n.topic, n.title, n.body, n.data); err != nil {
		return newRetryableError(errors.WithStack(err))
	}

	logger.Info("[Worker] Notification sent", slog.String("topic", n.topic))

	return nil
}

func userTopic(userID string) string {
	return constants.UserTopicPrefix + userID
}

// notificationFor maps an event to its audience: new bookings and client
// messages go to the studio, everything else to the booking's client.
func (h *PushHandler) notificationFor(event *service.BookingEvent) (notification, bool) {
	data := map[string]string{
		"event_id":   event.EventID,
		"event_type": string(event.Type),
		"booking_id": event.BookingID,
	}
	if event.Status != "" {
		data["status"] = event.Status
	}
	if event.QueuePosition != nil {
		data["queue_position"] = strconv.Itoa(*event.QueuePosition)
	}

	switch event.Type {
	case service.EventBookingCreated:
		if h.adminTopic == "" || event.BookingID == "" {
			return notification{}, false
		}

		return notification{
			topic: h.adminTopic,
			title: "New booking request",
			body:  fmt.Sprintf("%s requested the %s package", nameOr(event.UserName, "A client"), event.PackageID),
			data:  data,
		}, true

	case service.EventBookingStatusChanged:
		if event.UserID == "" {
			return notification{}, false
		}

		return notification{
			topic: userTopic(event.UserID),
			title: "Booking update",
			body:  statusBody(event),
			data:  data,
		}, true

	case service.EventQueuePositionChanged:
		if event.UserID == "" || event.QueuePosition == nil {
			return notification{}, false
		}

		return notification{
			topic: userTopic(event.UserID),
			title: "Queue update",
			body:  fmt.Sprintf("You are now number %d in the queue", *event.QueuePosition),
			data:  data,
		}, true

	case service.EventMessageCreated:
		data["sender_id"] = event.SenderID
		if event.RecipientID == constants.AdminRecipient {
			if h.adminTopic == "" {
				return notification{}, false
			}

			return notification{
				topic: h.adminTopic,
				title: "New message from " + nameOr(event.UserName, "a client"),
				body:  event.Preview,
				data:  data,
			}, true
		}
		if event.RecipientID == "" {
			return notification{}, false
		}

		return notification{
			topic: userTopic(event.RecipientID),
			title: "New message from the studio",
			body:  event.Preview,
			data:  data,
		}, true

	default:
		return notification{}, false
	}
}

func statusBody(event *service.BookingEvent) string {
	switch entity.BookingStatus(event.Status) {
	case entity.StatusQueued:
		if event.QueuePosition != nil {
			return fmt.Sprintf("Your booking is queued at number %d", *event.QueuePosition)
		}

		return "Your booking is queued"
	case entity.StatusApproved:
		return "Your booking is approved, see you there"
	case entity.StatusCompleted:
		return "Thanks for shooting with us"
	case entity.StatusCancelled:
		return "Your booking was cancelled"
	default:
		return "Your booking is now " + event.Status
	}
}

func nameOr(name, fallback string) string {
	if strings.TrimSpace(name) == "" {
		return fallback
	}

	return name
}

// verifyPubSubToken checks the Google-signed OIDC token Pub/Sub attaches to
// authenticated push requests.
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func (h *PushHandler) verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	audience := h.audience
	if audience == "" {
		scheme := "https"
		if req.TLS == nil {
			scheme = "http"
		}
		audience = fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)
	}

	payload, err := h.validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
