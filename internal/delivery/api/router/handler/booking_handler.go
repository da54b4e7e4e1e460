package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"studio/internal/delivery/api/response"
	deliverycontext "studio/internal/delivery/context"
	"studio/internal/domain/entity"
	domainerrors "studio/internal/domain/errors"
	"studio/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type BookingHandlerParams struct {
	fx.In

	BookingUC usecase.BookingUsecase
	Logger    *slog.Logger
}

// BookingHandler serves the client side of bookings and the admin queue.
type BookingHandler struct {
	bookingUC usecase.BookingUsecase
	logger    *slog.Logger
}

func NewBookingHandler(params BookingHandlerParams) *BookingHandler {
	return &BookingHandler{
		bookingUC: params.BookingUC,
		logger:    params.Logger,
	}
}

// CreateBookingRequest is the booking form. Eligibility is decided by the use
// case; only lengths are checked here.
type CreateBookingRequest struct {
	Location       string `json:"location" validate:"max=100"`
	PackageID      string `json:"packageId" validate:"max=20"`
	PreferredDate  string `json:"preferredDate" validate:"max=10"`
	MeetHalfway    bool   `json:"meetHalfway"`
	MeetupLocation string `json:"meetupLocation" validate:"max=200"`
	Notes          string `json:"notes" validate:"max=2000"`
}

type TransitionRequest struct {
	Status        string `json:"status" validate:"required"`
	QueuePosition *int   `json:"queuePosition"`
}

type QueuePositionRequest struct {
	QueuePosition *int `json:"queuePosition" validate:"required"`
}

func actorOf(c echo.Context) (entity.Actor, error) {
	actor, ok := deliverycontext.GetActor(c)
	if !ok {
		return entity.Actor{}, domainerrors.ErrUnauthenticated
	}

	return actor, nil
}

// statusFilter is the ?status= list filter.
type statusFilter struct {
	Status []entity.BookingStatus `validate:"dive,bookingstatus"`
}

// parseStatuses reads ?status=queued,approved.
func parseStatuses(raw string) []entity.BookingStatus {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	statuses := make([]entity.BookingStatus, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			statuses = append(statuses, entity.BookingStatus(strings.ToLower(part)))
		}
	}

	return statuses
}

func statusesOf(c echo.Context) ([]entity.BookingStatus, error) {
	filter := statusFilter{Status: parseStatuses(c.QueryParam("status"))}
	if err := c.Validate(&filter); err != nil {
		return nil, err
	}

	return filter.Status, nil
}

func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("request body is not valid JSON")
	}

	return c.Validate(req)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	var req CreateBookingRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	booking, err := h.bookingUC.CreateBooking(c.Request().Context(), actor, entity.BookingDraft{
		LocationName:   req.Location,
		PackageID:      entity.PackageID(strings.ToLower(strings.TrimSpace(req.PackageID))),
		PreferredDate:  strings.TrimSpace(req.PreferredDate),
		MeetHalfway:    req.MeetHalfway,
		MeetupLocation: strings.TrimSpace(req.MeetupLocation),
		Notes:          strings.TrimSpace(req.Notes),
	})
	if err != nil {
		return err
	}

	return response.Created(c, toBookingResponse(booking))
}

// ListBookings serves the caller's bookings: ?scope=mine (default) or chat,
// optionally filtered by ?status=.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	scope := usecase.BookingScope(c.QueryParam("scope"))
	if scope == "" {
		scope = usecase.ScopeMine
	}

	statuses, err := statusesOf(c)
	if err != nil {
		return err
	}

	bookings, err := h.bookingUC.ListBookings(c.Request().Context(), actor, scope, statuses)
	if err != nil {
		return err
	}

	return response.OK(c, toBookingResponses(bookings))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	booking, err := h.bookingUC.GetBooking(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	return response.OK(c, toBookingResponse(booking))
}

// CheckInQR returns the PNG check-in code of an approved booking.
func (h *BookingHandler) CheckInQR(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	png, err := h.bookingUC.CheckInQR(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")

	return c.Blob(http.StatusOK, "image/png", png)
}

// ListAllBookings is the admin queue, newest first, optionally filtered by
// ?status=.
func (h *BookingHandler) ListAllBookings(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	statuses, err := statusesOf(c)
	if err != nil {
		return err
	}

	bookings, err := h.bookingUC.ListBookings(c.Request().Context(), actor, usecase.ScopeAll, statuses)
	if err != nil {
		return err
	}

	return response.OK(c, toBookingResponses(bookings))
}

func (h *BookingHandler) Stats(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	stats, err := h.bookingUC.Stats(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	return response.OK(c, stats)
}

func (h *BookingHandler) TransitionStatus(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	var req TransitionRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	booking, err := h.bookingUC.TransitionStatus(
		c.Request().Context(), actor, c.Param("id"), entity.BookingStatus(req.Status), req.QueuePosition,
	)
	if err != nil {
		return err
	}

	return response.OK(c, toBookingResponse(booking))
}

func (h *BookingHandler) UpdateQueuePosition(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	var req QueuePositionRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	booking, err := h.bookingUC.UpdateQueuePosition(c.Request().Context(), actor, c.Param("id"), *req.QueuePosition)
	if err != nil {
		return err
	}

	return response.OK(c, toBookingResponse(booking))
}
