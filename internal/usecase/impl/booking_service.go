package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "studio/internal/delivery/context"
	"studio/internal/domain/entity"
	domainerrors "studio/internal/domain/errors"
	"studio/internal/domain/geo"
	"studio/internal/domain/repository"
	"studio/internal/domain/service"
	"studio/internal/errors"
	"studio/internal/usecase"

	"github.com/google/uuid"
)

const preferredDateLayout = time.DateOnly

type bookingService struct {
	logger    *slog.Logger
	catalog   repository.CatalogRepository
	bookings  repository.BookingRepository
	publisher service.EventPublisher
	qrcode    service.QRCodeService
	now       func() time.Time
}

func NewBookingService(
	logger *slog.Logger,
	catalog repository.CatalogRepository,
	bookings repository.BookingRepository,
	publisher service.EventPublisher,
	qrcode service.QRCodeService,
) usecase.BookingUsecase {
	return &bookingService{
		logger:    logger,
		catalog:   catalog,
		bookings:  bookings,
		publisher: publisher,
		qrcode:    qrcode,
		now:       time.Now,
	}
}

// eligibleDraft is a draft that passed every creation rule.
type eligibleDraft struct {
	location entity.Location
	pkg      entity.PackageID
	km       float64
}

// validateDraft applies the creation rules in order and stops at the first
// failure. It performs no I/O beyond the read-only catalog.
func validateDraft(catalog repository.CatalogRepository, draft entity.BookingDraft) (*eligibleDraft, error) {
	name := strings.TrimSpace(draft.LocationName)
	if name == "" {
		return nil, domainerrors.NewValidationError(domainerrors.ReasonMissingField, "location", "Please select a location")
	}
	if draft.PackageID == "" {
		return nil, domainerrors.NewValidationError(domainerrors.ReasonMissingField, "package", "Please select a package")
	}

	loc, ok := catalog.FindLocation(name)
	if !ok {
		return nil, domainerrors.NewValidationError(domainerrors.ReasonUnknownLocation, "location",
			"Unknown location "+name)
	}

	km := geo.DistanceFromBase(loc.Lat, loc.Lng)
	if err := checkEligibility(draft.PackageID, km); err != nil {
		return nil, err
	}

	if err := checkPreferredDate(draft.PreferredDate); err != nil {
		return nil, err
	}

	return &eligibleDraft{location: loc, pkg: draft.PackageID, km: km}, nil
}

// checkEligibility uses the unrounded distance.
func checkEligibility(pkg entity.PackageID, km float64) error {
	if !geo.InServiceArea(km) {
		return domainerrors.NewValidationError(domainerrors.ReasonDistanceOutOfRange, "location",
			"This location is outside our 50km service area")
	}
	if !geo.IsEligible(km, pkg) {
		return domainerrors.NewValidationError(domainerrors.ReasonPackageNotEligible, "package",
			"The "+string(pkg)+" package is not available at this distance")
	}

	return nil
}

// checkPreferredDate accepts an empty date or a Saturday or Sunday.
func checkPreferredDate(date string) error {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil
	}

	day, err := time.Parse(preferredDateLayout, date)
	if err != nil {
		return domainerrors.NewValidationError(domainerrors.ReasonWeekdayDate, "preferredDate",
			"Preferred date must be a weekend day in YYYY-MM-DD format")
	}
	if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
		return domainerrors.NewValidationError(domainerrors.ReasonWeekdayDate, "preferredDate",
			"Sessions are only available on weekends")
	}

	return nil
}

func (srv *bookingService) CreateBooking(ctx context.Context, actor entity.Actor, draft entity.BookingDraft) (*entity.Booking, error) {
	if actor.UserID == "" {
		return nil, domainerrors.ErrUnauthenticated
	}

	eligible, err := validateDraft(srv.catalog, draft)
	if err != nil {
		return nil, err
	}

	booking := &entity.Booking{
		UserID:        actor.UserID,
		UserName:      actor.Name,
		UserEmail:     actor.Email,
		PackageID:     eligible.pkg,
		Location:      entity.SnapshotLocation(eligible.location),
		DistanceKm:    geo.RoundKm(eligible.km),
		DistanceBand:  geo.DistanceBand(eligible.km),
		PreferredDate: strings.TrimSpace(draft.PreferredDate),
		// Meeting halfway is not offered, whatever the client sent.
		MeetHalfway:    geo.IsMeetHalfwayEligible(eligible.km) && draft.MeetHalfway,
		MeetupLocation: "",
		Notes:          strings.TrimSpace(draft.Notes),
		Status:         entity.StatusPending,
	}

	created, err := srv.bookings.Create(ctx, booking)
	if err != nil {
		return nil, errors.Wrap(err, "create booking")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Booking created",
		slog.String("booking_id", created.ID),
		slog.String("package", string(created.PackageID)),
		slog.Float64("distance_km", created.DistanceKm),
	)

	srv.publish(ctx, &service.BookingEvent{
		Type:      service.EventBookingCreated,
		BookingID: created.ID,
		UserID:    created.UserID,
		UserName:  created.UserName,
		PackageID: string(created.PackageID),
		Status:    string(created.Status),
	})

	return created, nil
}

func (srv *bookingService) GetBooking(ctx context.Context, actor entity.Actor, id string) (*entity.Booking, error) {
	booking, err := srv.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && !booking.IsOwnedBy(actor.UserID) {
		return nil, domainerrors.ErrBookingNotFound.WrapMessage(id)
	}

	return booking, nil
}

// bookingQuery resolves a scope to a store query for the actor.
func bookingQuery(actor entity.Actor, scope usecase.BookingScope, statuses []entity.BookingStatus) (entity.BookingQuery, error) {
	for _, s := range statuses {
		if !s.IsValid() {
			return entity.BookingQuery{}, domainerrors.ErrValidationFailed.WrapMessage("unknown status " + string(s))
		}
	}

	switch scope {
	case usecase.ScopeMine:
		return entity.BookingQuery{UserID: actor.UserID, Statuses: statuses}, nil
	case usecase.ScopeChat:
		query := entity.BookingQuery{Statuses: []entity.BookingStatus{entity.StatusQueued, entity.StatusApproved}}
		if !actor.IsAdmin {
			query.UserID = actor.UserID
		}

		return query, nil
	case usecase.ScopeAll:
		if !actor.IsAdmin {
			return entity.BookingQuery{}, domainerrors.NewAuthorizationError("view all bookings")
		}

		return entity.BookingQuery{Statuses: statuses}, nil
	default:
		return entity.BookingQuery{}, domainerrors.ErrValidationFailed.WrapMessage("unknown scope " + string(scope))
	}
}

func (srv *bookingService) ListBookings(
	ctx context.Context,
	actor entity.Actor,
	scope usecase.BookingScope,
	statuses []entity.BookingStatus,
) ([]*entity.Booking, error) {
	query, err := bookingQuery(actor, scope, statuses)
	if err != nil {
		return nil, err
	}

	bookings, err := srv.bookings.List(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "list bookings")
	}

	return bookings, nil
}

func (srv *bookingService) TransitionStatus(
	ctx context.Context,
	actor entity.Actor,
	id string,
	to entity.BookingStatus,
	queuePosition *int,
) (*entity.Booking, error) {
	if !actor.IsAdmin {
		return nil, domainerrors.NewAuthorizationError("change a booking status")
	}

	current, err := srv.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(to) {
		return nil, domainerrors.NewTransitionError(string(current.Status), string(to))
	}

	change := entity.BookingChange{Status: &to}
	if to == entity.StatusQueued {
		if queuePosition == nil {
			return nil, domainerrors.NewValidationError(domainerrors.ReasonMissingField, "queuePosition",
				"A queue position is required to queue a booking")
		}
		if *queuePosition <= 0 {
			return nil, domainerrors.NewValidationError(domainerrors.ReasonInvalidQueuePosition, "queuePosition",
				"Queue position must be a positive number")
		}
		pos := *queuePosition
		change.QueuePosition = &pos
	}

	updated, err := srv.bookings.Update(ctx, id, change)
	if err != nil {
		return nil, errors.Wrap(err, "update booking status")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Booking status changed",
		slog.String("booking_id", id),
		slog.String("from", string(current.Status)),
		slog.String("to", string(to)),
		slog.String("admin_id", actor.UserID),
	)

	srv.publish(ctx, &service.BookingEvent{
		Type:          service.EventBookingStatusChanged,
		BookingID:     updated.ID,
		UserID:        updated.UserID,
		UserName:      updated.UserName,
		PackageID:     string(updated.PackageID),
		Status:        string(updated.Status),
		QueuePosition: change.QueuePosition,
	})

	return updated, nil
}

func (srv *bookingService) UpdateQueuePosition(ctx context.Context, actor entity.Actor, id string, position int) (*entity.Booking, error) {
	if !actor.IsAdmin {
		return nil, domainerrors.NewAuthorizationError("edit the queue")
	}

	current, err := srv.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != entity.StatusQueued {
		return nil, domainerrors.NewValidationError(domainerrors.ReasonNotQueued, "status",
			"Only queued bookings have a queue position")
	}
	if position <= 0 {
		return nil, domainerrors.NewValidationError(domainerrors.ReasonInvalidQueuePosition, "queuePosition",
			"Queue position must be a positive number")
	}

	updated, err := srv.bookings.Update(ctx, id, entity.BookingChange{QueuePosition: &position})
	if err != nil {
		return nil, errors.Wrap(err, "update queue position")
	}

	srv.publish(ctx, &service.BookingEvent{
		Type:          service.EventQueuePositionChanged,
		BookingID:     updated.ID,
		UserID:        updated.UserID,
		UserName:      updated.UserName,
		Status:        string(updated.Status),
		QueuePosition: &position,
	})

	return updated, nil
}

func (srv *bookingService) Stats(ctx context.Context, actor entity.Actor) (*entity.BookingStats, error) {
	if !actor.IsAdmin {
		return nil, domainerrors.NewAuthorizationError("view booking statistics")
	}

	bookings, err := srv.bookings.List(ctx, entity.BookingQuery{})
	if err != nil {
		return nil, errors.Wrap(err, "list bookings")
	}
	stats := entity.SummarizeBookings(bookings)

	return &stats, nil
}

func (srv *bookingService) CheckInQR(ctx context.Context, actor entity.Actor, id string) ([]byte, error) {
	booking, err := srv.GetBooking(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != entity.StatusApproved {
		return nil, domainerrors.ErrCheckInUnavailable
	}

	png, err := srv.qrcode.GenerateCheckInQR(booking.ID)
	if err != nil {
		return nil, errors.Wrap(err, "generate check-in code")
	}

	return png, nil
}

func (srv *bookingService) WatchBookings(
	ctx context.Context,
	actor entity.Actor,
	scope usecase.BookingScope,
	fn repository.BookingSnapshotFunc,
) error {
	query, err := bookingQuery(actor, scope, nil)
	if err != nil {
		return err
	}

	return srv.bookings.Subscribe(ctx, query, fn)
}

// publish is best effort: the booking write already succeeded.
func (srv *bookingService) publish(ctx context.Context, event *service.BookingEvent) {
	publishEvent(ctx, srv.publisher, deliverycontext.GetLoggerOrDefault(ctx, srv.logger), event, srv.now())
}

func publishEvent(ctx context.Context, publisher service.EventPublisher, logger *slog.Logger, event *service.BookingEvent, now time.Time) {
	event.EventID = uuid.NewString()
	event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)
	event.OccurredAt = now.UTC()

	if err := publisher.PublishBookingEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish booking event",
			slog.String("event_type", string(event.Type)),
			slog.String("booking_id", event.BookingID),
			slog.Any("error", err),
		)
	}
}
