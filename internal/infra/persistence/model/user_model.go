// Package model holds the document shapes shared by the Firestore and the
// in-memory docstore repositories. Field names match the portal's existing
// collections.
package model

import (
	"time"

	"studio/internal/domain/entity"
)

// Key is the docstore key field of every document.
const Key = "id"

// UserDocument mirrors users/{uid}.
type UserDocument struct {
	ID          string    `firestore:"uid" docstore:"id"`
	DisplayName string    `firestore:"displayName" docstore:"displayName"`
	Email       string    `firestore:"email" docstore:"email"`
	PhotoURL    string    `firestore:"photoURL" docstore:"photoURL"`
	Role        string    `firestore:"role" docstore:"role"`
	CreatedAt   time.Time `firestore:"createdAt,serverTimestamp" docstore:"createdAt"`
}

func UserToDocument(u *entity.User) *UserDocument {
	return &UserDocument{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		PhotoURL:    u.PhotoURL,
		Role:        u.Role.String(),
		CreatedAt:   u.CreatedAt,
	}
}

func (d *UserDocument) ToEntity() *entity.User {
	return &entity.User{
		ID:          d.ID,
		DisplayName: d.DisplayName,
		Email:       d.Email,
		PhotoURL:    d.PhotoURL,
		Role:        entity.RoleFromString(d.Role),
		CreatedAt:   d.CreatedAt,
	}
}
