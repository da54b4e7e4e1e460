package entity

import "time"

// Message is one chat line on a booking. Messages are append-only apart from
// the read flag.
type Message struct {
	ID          string
	BookingID   string
	SenderID    string
	SenderName  string
	RecipientID string
	Text        string
	Read        bool
	CreatedAt   time.Time
}
