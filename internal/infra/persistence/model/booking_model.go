package model

import (
	"time"

	"studio/internal/domain/entity"
	"studio/internal/errors"
)

// ErrInvalidDocument marks a stored document that does not describe a valid
// record.
var ErrInvalidDocument = errors.New("invalid document")

// LocationDocument is the location snapshot embedded in a booking.
type LocationDocument struct {
	Name     string  `firestore:"name" docstore:"name"`
	Province string  `firestore:"province" docstore:"province"`
	Lat      float64 `firestore:"lat" docstore:"lat"`
	Lng      float64 `firestore:"lng" docstore:"lng"`
}

// BookingDocument mirrors bookings/{id}. Optional strings are stored as null.
type BookingDocument struct {
	ID             string           `firestore:"-" docstore:"id"`
	UserID         string           `firestore:"userId" docstore:"userId"`
	UserName       string           `firestore:"userName" docstore:"userName"`
	UserEmail      string           `firestore:"userEmail" docstore:"userEmail"`
	PackageID      string           `firestore:"packageId" docstore:"packageId"`
	Location       LocationDocument `firestore:"location" docstore:"location"`
	DistanceKm     float64          `firestore:"distanceKm" docstore:"distanceKm"`
	DistanceBand   string           `firestore:"distanceBand" docstore:"distanceBand"`
	PreferredDate  *string          `firestore:"preferredDate" docstore:"preferredDate"`
	MeetHalfway    bool             `firestore:"meetHalfway" docstore:"meetHalfway"`
	MeetupLocation *string          `firestore:"meetupLocation" docstore:"meetupLocation"`
	Notes          string           `firestore:"notes" docstore:"notes"`
	Status         string           `firestore:"status" docstore:"status"`
	QueuePosition  *int             `firestore:"queuePosition,omitempty" docstore:"queuePosition"`
	CreatedAt      time.Time        `firestore:"createdAt,serverTimestamp" docstore:"createdAt"`
	LastUpdated    time.Time        `firestore:"lastUpdated,serverTimestamp" docstore:"lastUpdated"`
}

// Booking field paths used in partial updates and queries.
const (
	FieldUserID        = "userId"
	FieldStatus        = "status"
	FieldQueuePosition = "queuePosition"
	FieldLastUpdated   = "lastUpdated"
	FieldCreatedAt     = "createdAt"
)

func BookingToDocument(b *entity.Booking) *BookingDocument {
	return &BookingDocument{
		ID:        b.ID,
		UserID:    b.UserID,
		UserName:  b.UserName,
		UserEmail: b.UserEmail,
		PackageID: string(b.PackageID),
		Location: LocationDocument{
			Name:     b.Location.Name,
			Province: b.Location.Province,
			Lat:      b.Location.Lat,
			Lng:      b.Location.Lng,
		},
		DistanceKm:     b.DistanceKm,
		DistanceBand:   b.DistanceBand,
		PreferredDate:  nullable(b.PreferredDate),
		MeetHalfway:    b.MeetHalfway,
		MeetupLocation: nullable(b.MeetupLocation),
		Notes:          b.Notes,
		Status:         string(b.Status),
		QueuePosition:  b.QueuePosition,
		CreatedAt:      b.CreatedAt,
		LastUpdated:    b.LastUpdated,
	}
}

// Validate checks the fields every booking must carry.
func (d *BookingDocument) Validate() error {
	switch {
	case d.UserID == "":
		return errors.Wrap(ErrInvalidDocument, "booking without userId")
	case !entity.BookingStatus(d.Status).IsValid():
		return errors.Wrapf(ErrInvalidDocument, "unknown booking status %q", d.Status)
	case !entity.PackageID(d.PackageID).IsValid():
		return errors.Wrapf(ErrInvalidDocument, "unknown package %q", d.PackageID)
	case d.Status == string(entity.StatusQueued) && (d.QueuePosition == nil || *d.QueuePosition <= 0):
		return errors.Wrap(ErrInvalidDocument, "queued booking without a positive queuePosition")
	}

	return nil
}

func (d *BookingDocument) ToEntity() *entity.Booking {
	return &entity.Booking{
		ID:        d.ID,
		UserID:    d.UserID,
		UserName:  d.UserName,
		UserEmail: d.UserEmail,
		PackageID: entity.PackageID(d.PackageID),
		Location: entity.BookingLocation{
			Name:     d.Location.Name,
			Province: d.Location.Province,
			Lat:      d.Location.Lat,
			Lng:      d.Location.Lng,
		},
		DistanceKm:     d.DistanceKm,
		DistanceBand:   d.DistanceBand,
		PreferredDate:  deref(d.PreferredDate),
		MeetHalfway:    d.MeetHalfway,
		MeetupLocation: deref(d.MeetupLocation),
		Notes:          d.Notes,
		Status:         entity.BookingStatus(d.Status),
		QueuePosition:  d.QueuePosition,
		CreatedAt:      d.CreatedAt,
		LastUpdated:    d.LastUpdated,
	}
}

// ChangeFields flattens a partial update into field path -> value, without
// the lastUpdated stamp.
func ChangeFields(change entity.BookingChange) map[string]any {
	fields := make(map[string]any, 2)
	if change.Status != nil {
		fields[FieldStatus] = string(*change.Status)
	}
	if change.QueuePosition != nil {
		fields[FieldQueuePosition] = *change.QueuePosition
	}

	return fields
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
