package model

import (
	"time"

	"studio/internal/domain/entity"
)

// MessageDocument mirrors messages/{id}.
type MessageDocument struct {
	ID          string    `firestore:"-" docstore:"id"`
	BookingID   string    `firestore:"bookingId" docstore:"bookingId"`
	SenderID    string    `firestore:"senderId" docstore:"senderId"`
	SenderName  string    `firestore:"senderName" docstore:"senderName"`
	RecipientID string    `firestore:"recipientId" docstore:"recipientId"`
	Text        string    `firestore:"text" docstore:"text"`
	Read        bool      `firestore:"read" docstore:"read"`
	CreatedAt   time.Time `firestore:"createdAt,serverTimestamp" docstore:"createdAt"`
}

const (
	FieldBookingID   = "bookingId"
	FieldRecipientID = "recipientId"
	FieldRead        = "read"
)

func MessageToDocument(m *entity.Message) *MessageDocument {
	return &MessageDocument{
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

func (d *MessageDocument) ToEntity() *entity.Message {
	return &entity.Message{
		ID:          d.ID,
		BookingID:   d.BookingID,
		SenderID:    d.SenderID,
		SenderName:  d.SenderName,
		RecipientID: d.RecipientID,
		Text:        d.Text,
		Read:        d.Read,
		CreatedAt:   d.CreatedAt,
	}
}
