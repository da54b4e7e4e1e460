// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"studio/config"
	"studio/internal/delivery/api/middleware"
	"studio/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	CatalogHandler *handler.CatalogHandler
	BookingHandler *handler.BookingHandler
	MessageHandler *handler.MessageHandler
	ProfileHandler *handler.ProfileHandler
	StreamHandler  *handler.StreamHandler
	MediaHandler   *handler.MediaHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	catalogHandler *handler.CatalogHandler
	bookingHandler *handler.BookingHandler
	messageHandler *handler.MessageHandler
	profileHandler *handler.ProfileHandler
	streamHandler  *handler.StreamHandler
	mediaHandler   *handler.MediaHandler
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		catalogHandler: params.CatalogHandler,
		bookingHandler: params.BookingHandler,
		messageHandler: params.MessageHandler,
		profileHandler: params.ProfileHandler,
		streamHandler:  params.StreamHandler,
		mediaHandler:   params.MediaHandler,
		authMiddleware: params.AuthMiddleware,
		rateLimiter:    params.RateLimiter,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/media/*", r.mediaHandler.Serve)

	limit := r.rateLimiter.Limit

	// Local identity provider only
	if r.authHandler.Enabled() {
		e.POST("/auth/dev-token", r.authHandler.IssueDevToken, limit)
	}

	apiV1 := e.Group("/api/v1")

	// Reference data is public
	catalogGroup := apiV1.Group("/catalog")
	{
		catalogGroup.GET("/packages", r.catalogHandler.ListPackages)
		catalogGroup.GET("/packages/:id", r.catalogHandler.GetPackage)
		catalogGroup.GET("/locations", r.catalogHandler.ListLocations)
		catalogGroup.GET("/provinces", r.catalogHandler.ListProvinces)
		catalogGroup.GET("/quote", r.catalogHandler.Quote)
	}

	authed := apiV1.Group("")
	authed.Use(r.authMiddleware.Authenticate)

	meGroup := authed.Group("/me")
	{
		meGroup.GET("", r.profileHandler.GetProfile)
		meGroup.POST("/picture", r.profileHandler.UploadProfilePicture, limit)
	}

	bookingsGroup := authed.Group("/bookings")
	{
		bookingsGroup.POST("", r.bookingHandler.CreateBooking, limit)
		bookingsGroup.GET("", r.bookingHandler.ListBookings)
		bookingsGroup.GET("/:id", r.bookingHandler.GetBooking)
		bookingsGroup.GET("/:id/qr", r.bookingHandler.CheckInQR)

		bookingsGroup.GET("/:id/messages", r.messageHandler.ListMessages)
		bookingsGroup.POST("/:id/messages", r.messageHandler.SendMessage, limit)
		bookingsGroup.POST("/:id/messages/read", r.messageHandler.MarkRead)
	}

	adminGroup := authed.Group("/admin")
	adminGroup.Use(r.authMiddleware.RequireAdmin)
	{
		adminGroup.GET("/bookings", r.bookingHandler.ListAllBookings)
		adminGroup.GET("/stats", r.bookingHandler.Stats)
		adminGroup.PATCH("/bookings/:id/status", r.bookingHandler.TransitionStatus, limit)
		adminGroup.PATCH("/bookings/:id/queue", r.bookingHandler.UpdateQueuePosition, limit)
	}

	// Browsers cannot set headers on WebSocket upgrades; the token may come
	// in ?token= instead.
	wsGroup := e.Group("/ws")
	wsGroup.Use(r.authMiddleware.Authenticate)
	{
		wsGroup.GET("/bookings", r.streamHandler.WatchBookings)
		wsGroup.GET("/bookings/:id/messages", r.streamHandler.WatchMessages)
	}
}
