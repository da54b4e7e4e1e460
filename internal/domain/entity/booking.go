package entity

import (
	"slices"
	"time"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusQueued    BookingStatus = "queued"
	StatusApproved  BookingStatus = "approved"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []BookingStatus{StatusPending, StatusQueued, StatusApproved, StatusCompleted, StatusCancelled}

// allowedTransitions is the lifecycle table. queued -> queued reassigns the
// queue position; terminal states have no entry.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:  {StatusQueued, StatusApproved, StatusCancelled},
	StatusQueued:   {StatusQueued, StatusApproved, StatusCancelled},
	StatusApproved: {StatusCompleted, StatusCancelled},
}

func (s BookingStatus) String() string {
	return string(s)
}

func (s BookingStatus) IsValid() bool {
	return slices.Contains(AllStatuses, s)
}

func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return slices.Contains(allowedTransitions[s], next)
}

// ChatEnabled reports whether the booking's client may chat in this state.
func (s BookingStatus) ChatEnabled() bool {
	return s == StatusQueued || s == StatusApproved
}

// BookingLocation is the location snapshot stored on a booking.
type BookingLocation struct {
	Name     string
	Province string
	Lat      float64
	Lng      float64
}

func SnapshotLocation(l Location) BookingLocation {
	return BookingLocation{Name: l.Name, Province: l.Province, Lat: l.Lat, Lng: l.Lng}
}

// Booking is a session request. DistanceKm and DistanceBand are computed once
// at creation and never recomputed.
type Booking struct {
	ID             string
	UserID         string
	UserName       string
	UserEmail      string
	PackageID      PackageID
	Location       BookingLocation
	DistanceKm     float64
	DistanceBand   string
	PreferredDate  string // YYYY-MM-DD, empty when the client has no preference
	MeetHalfway    bool
	MeetupLocation string
	Notes          string
	Status         BookingStatus
	QueuePosition  *int // set on entering queued, left stale afterwards
	CreatedAt      time.Time
	LastUpdated    time.Time
}

func (b *Booking) IsOwnedBy(userID string) bool {
	return b.UserID == userID
}

// BookingDraft is the immutable input a client submits to request a session.
type BookingDraft struct {
	LocationName   string
	PackageID      PackageID
	PreferredDate  string
	MeetHalfway    bool
	MeetupLocation string
	Notes          string
}

// BookingChange is a partial update. Nil fields are left untouched; the store
// always stamps lastUpdated.
type BookingChange struct {
	Status        *BookingStatus
	QueuePosition *int
}

// BookingQuery selects bookings. Results are always newest first.
type BookingQuery struct {
	UserID   string
	Statuses []BookingStatus
}

// Matches applies the query to a single booking.
func (q BookingQuery) Matches(b *Booking) bool {
	if q.UserID != "" && b.UserID != q.UserID {
		return false
	}
	if len(q.Statuses) > 0 && !slices.Contains(q.Statuses, b.Status) {
		return false
	}

	return true
}

// BookingStats backs the admin dashboard counters.
type BookingStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Queued    int `json:"queued"`
	Approved  int `json:"approved"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

func SummarizeBookings(bookings []*Booking) BookingStats {
	stats := BookingStats{Total: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case StatusPending:
			stats.Pending++
		case StatusQueued:
			stats.Queued++
		case StatusApproved:
			stats.Approved++
		case StatusCompleted:
			stats.Completed++
		case StatusCancelled:
			stats.Cancelled++
		}
	}

	return stats
}
