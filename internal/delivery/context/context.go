// Package context carries request-scoped values (request id, logger, caller)
// between the HTTP layer and the use cases.
package context

import (
	"context"
	"log/slog"

	"studio/internal/domain/constants"
	"studio/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ContextKey string

const (
	KeyRequestID ContextKey = constants.AttrRequestID
	KeyLogger    ContextKey = "logger"
	KeyActor     ContextKey = "actor"
	KeyUser      ContextKey = "user"
)

// GetRequestID returns the id set by the request-id middleware, or a fresh
// one when the middleware did not run.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok && id != "" {
		return id
	}

	return uuid.NewString()
}

func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}

	return ""
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault prefers the request-scoped logger.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// SetUser stores the authenticated profile and the actor derived from it.
func SetUser(c echo.Context, user *entity.User) {
	c.Set(string(KeyUser), user)
	c.Set(string(KeyActor), entity.ActorFromUser(user))
}

func GetUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(string(KeyUser)).(*entity.User)

	return user, ok && user != nil
}

// GetActor returns the caller set by the auth middleware.
func GetActor(c echo.Context) (entity.Actor, bool) {
	actor, ok := c.Get(string(KeyActor)).(entity.Actor)

	return actor, ok && actor.UserID != ""
}
