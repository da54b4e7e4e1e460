package middleware

import (
	"context"
	"log/slog"
	"time"

	"studio/config"
	deliverycontext "studio/internal/delivery/context"
	"studio/internal/domain/constants"

	"github.com/labstack/echo/v4"
)

// LoggerMiddleware writes one line per request when debug is on.
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
}

func NewLoggerMiddleware(logger *slog.Logger, config *config.Config) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
		debug:  config.Env.Debug,
	}
}

func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.debug {
			return next(c)
		}

		start := time.Now()
		err := next(c)
		m.logRequest(c, start, err)

		return err
	}
}

func (m *LoggerMiddleware) logRequest(c echo.Context, start time.Time, err error) {
	req := c.Request()
	res := c.Response()

	// Errors are turned into responses after middleware returns.
	status := res.Status
	if err != nil && !res.Committed {
		status = statusOf(err)
	}

	fields := []slog.Attr{
		slog.String(constants.AttrRequestID, deliverycontext.GetRequestID(c)),
		slog.String("method", req.Method),
		slog.String("route", c.Path()),
		slog.String("uri", req.URL.Path),
		slog.Int("status", status),
		slog.Duration("latency", time.Since(start)),
		slog.String("remote_ip", c.RealIP()),
	}
	if actor, ok := deliverycontext.GetActor(c); ok {
		fields = append(fields, slog.String("user_id", actor.UserID))
	}
	if err != nil {
		fields = append(fields, slog.Any("error", err))
	}

	level := slog.LevelInfo
	switch {
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}

	m.logger.LogAttrs(context.Background(), level, "HTTP Request", fields...)
}
