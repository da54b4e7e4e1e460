package handler

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"studio/config"
	deliverycontext "studio/internal/delivery/context"
	"studio/internal/domain/entity"
	domainerrors "studio/internal/domain/errors"
	"studio/internal/usecase"
	"studio/internal/util"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	pingInterval   = 30 * time.Second
	pongWait       = 60 * time.Second
	writeWait      = 10 * time.Second
	maxInboundSize = 512
)

const (
	frameTypeSnapshot = "snapshot"
	frameTypeError    = "error"
)

// streamFrame is one WebSocket text message. Every snapshot frame carries
// the complete result set and replaces the previous one.
type streamFrame struct {
	Type  string      `json:"type"`
	Data  any         `json:"data,omitempty"`
	Error *frameError `json:"error,omitempty"`
}

type frameError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type StreamHandlerParams struct {
	fx.In

	BookingUC usecase.BookingUsecase
	MessageUC usecase.MessageUsecase
	Config    *config.Config
	Logger    *slog.Logger
}

// StreamHandler pushes live booking lists and chat threads over WebSocket.
type StreamHandler struct {
	bookingUC usecase.BookingUsecase
	messageUC usecase.MessageUsecase
	logger    *slog.Logger
	upgrader  websocket.Upgrader
}

func NewStreamHandler(params StreamHandlerParams) *StreamHandler {
	origins := params.Config.HTTP.AllowOrigins

	return &StreamHandler{
		bookingUC: params.BookingUC,
		messageUC: params.MessageUC,
		logger:    params.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(origins) == 0 || slices.Contains(origins, "*") {
					return true
				}

				return slices.Contains(origins, origin)
			},
		},
	}
}

// WatchBookings streams ?scope=mine|chat|all.
func (h *StreamHandler) WatchBookings(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	scope := usecase.BookingScope(c.QueryParam("scope"))
	if scope == "" {
		scope = usecase.ScopeMine
	}
	if !scope.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetails("scope must be one of mine, chat, all")
	}

	return h.stream(c, "bookings", func(ctx context.Context, send func(any)) error {
		return h.bookingUC.WatchBookings(ctx, actor, scope, func(bookings []*entity.Booking) {
			send(toBookingResponses(bookings))
		})
	})
}

func (h *StreamHandler) WatchMessages(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	bookingID := c.Param("id")
	// Surface visibility errors as plain HTTP before upgrading.
	if _, err := h.messageUC.ListMessages(c.Request().Context(), actor, bookingID); err != nil {
		return err
	}

	return h.stream(c, "messages", func(ctx context.Context, send func(any)) error {
		return h.messageUC.WatchMessages(ctx, actor, bookingID, func(messages []*entity.Message) {
			send(toMessageResponses(messages))
		})
	})
}

type wsSession struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *wsSession) writeFrame(frame streamFrame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return s.conn.WriteJSON(frame)
}

func (s *wsSession) writeControl(messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conn.WriteControl(messageType, data, time.Now().Add(writeWait))
}

// readLoop discards client messages and cancels once the peer goes away.
func (s *wsSession) readLoop(cancel context.CancelFunc) {
	defer cancel()

	s.conn.SetReadLimit(maxInboundSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *wsSession) pingLoop(ctx context.Context, cancel context.CancelFunc) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.writeControl(websocket.PingMessage, nil); err != nil {
				cancel()

				return
			}
		}
	}
}

func (h *StreamHandler) stream(c echo.Context, kind string, watch func(ctx context.Context, send func(any)) error) error {
	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).With(slog.String("stream", kind))

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already answered with an HTTP error.
		logger.Debug("WebSocket upgrade failed", slog.Any("error", err))

		return nil
	}
	defer conn.Close()

	session := &wsSession{conn: conn}
	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	go session.readLoop(cancel)
	go session.pingLoop(ctx, cancel)

	started := time.Now()
	var frames atomic.Int64

	err = watch(ctx, func(data any) {
		if err := session.writeFrame(streamFrame{Type: frameTypeSnapshot, Data: data}); err != nil {
			cancel()

			return
		}
		frames.Add(1)
	})

	closeCode, closeText := websocket.CloseNormalClosure, ""
	if err != nil && ctx.Err() == nil {
		code, message := domainerrors.ErrInternalError.ErrorCode(), domainerrors.ErrInternalError.Message()
		if appErr, ok := domainerrors.AsAppError(err); ok {
			code, message = appErr.ErrorCode(), appErr.Message()
		} else {
			logger.Error("Stream failed", slog.Any("error", err))
		}
		_ = session.writeFrame(streamFrame{Type: frameTypeError, Error: &frameError{Code: code, Message: message}})
		closeCode, closeText = websocket.ClosePolicyViolation, code
	}
	_ = session.writeControl(websocket.CloseMessage, websocket.FormatCloseMessage(closeCode, closeText))

	logger.Info("Stream closed",
		slog.Int64("frames", frames.Load()),
		slog.String("duration", util.FormatDuration(time.Since(started))),
	)

	return nil
}
