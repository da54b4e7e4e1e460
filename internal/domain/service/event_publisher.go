package service

import (
	"context"
	"time"
)

// BookingEventType names what happened to a booking.
type BookingEventType string

const (
	EventBookingCreated       BookingEventType = "booking.created"
	EventBookingStatusChanged BookingEventType = "booking.status_changed"
	EventQueuePositionChanged BookingEventType = "booking.queue_position_changed"
	EventMessageCreated       BookingEventType = "message.created"
)

// BookingEvent is published after a booking write succeeds and consumed by the
// notification worker.
type BookingEvent struct {
	RequestID     string           `json:"request_id,omitempty"` // For distributed tracing
	EventID       string           `json:"event_id"`
	Type          BookingEventType `json:"type"`
	BookingID     string           `json:"booking_id"`
	UserID        string           `json:"user_id"`
	UserName      string           `json:"user_name,omitempty"`
	PackageID     string           `json:"package_id,omitempty"`
	Status        string           `json:"status,omitempty"`
	QueuePosition *int             `json:"queue_position,omitempty"`
	SenderID      string           `json:"sender_id,omitempty"`
	RecipientID   string           `json:"recipient_id,omitempty"`
	Preview       string           `json:"preview,omitempty"`
	OccurredAt    time.Time        `json:"occurred_at"`
}

// EventPublisher hands booking events to a message queue.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event *BookingEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
