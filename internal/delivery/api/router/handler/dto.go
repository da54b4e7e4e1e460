package handler

import (
	"time"

	"studio/internal/domain/entity"
)

// BookingResponse is the wire form of a booking.
type BookingResponse struct {
	ID             string                  `json:"id"`
	UserID         string                  `json:"userId"`
	UserName       string                  `json:"userName"`
	UserEmail      string                  `json:"userEmail"`
	PackageID      string                  `json:"packageId"`
	Location       BookingLocationResponse `json:"location"`
	DistanceKm     float64                 `json:"distanceKm"`
	DistanceBand   string                  `json:"distanceBand"`
	PreferredDate  string                  `json:"preferredDate,omitempty"`
	MeetHalfway    bool                    `json:"meetHalfway"`
	MeetupLocation string                  `json:"meetupLocation,omitempty"`
	Notes          string                  `json:"notes,omitempty"`
	Status         string                  `json:"status"`
	QueuePosition  *int                    `json:"queuePosition,omitempty"`
	ChatEnabled    bool                    `json:"chatEnabled"`
	CreatedAt      time.Time               `json:"createdAt"`
	LastUpdated    time.Time               `json:"lastUpdated"`
}

type BookingLocationResponse struct {
	Name     string  `json:"name"`
	Province string  `json:"province"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

func toBookingResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		UserName:  b.UserName,
		UserEmail: b.UserEmail,
		PackageID: string(b.PackageID),
		Location: BookingLocationResponse{
			Name:     b.Location.Name,
			Province: b.Location.Province,
			Lat:      b.Location.Lat,
			Lng:      b.Location.Lng,
		},
		DistanceKm:     b.DistanceKm,
		DistanceBand:   b.DistanceBand,
		PreferredDate:  b.PreferredDate,
		MeetHalfway:    b.MeetHalfway,
		MeetupLocation: b.MeetupLocation,
		Notes:          b.Notes,
		Status:         string(b.Status),
		QueuePosition:  b.QueuePosition,
		ChatEnabled:    b.Status.ChatEnabled(),
		CreatedAt:      b.CreatedAt,
		LastUpdated:    b.LastUpdated,
	}
}

func toBookingResponses(bookings []*entity.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}

	return out
}

type MessageResponse struct {
	ID          string    `json:"id"`
	BookingID   string    `json:"bookingId"`
	SenderID    string    `json:"senderId"`
	SenderName  string    `json:"senderName"`
	RecipientID string    `json:"recipientId"`
	Text        string    `json:"text"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toMessageResponses(messages []*entity.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, toMessageResponse(m))
	}

	return out
}

func toMessageResponse(m *entity.Message) MessageResponse {
	return MessageResponse{
		ID:          m.ID,
		BookingID:   m.BookingID,
		SenderID:    m.SenderID,
		SenderName:  m.SenderName,
		RecipientID: m.RecipientID,
		Text:        m.Text,
		Read:        m.Read,
		CreatedAt:   m.CreatedAt,
	}
}

type UserResponse struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	PhotoURL    string    `json:"photoUrl,omitempty"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		PhotoURL:    u.PhotoURL,
		Role:        u.Role.String(),
		CreatedAt:   u.CreatedAt,
	}
}
