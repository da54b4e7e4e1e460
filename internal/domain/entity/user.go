package entity

import "time"

// User is the portal profile kept for every signed-in identity, keyed by the
// identity provider's uid.
type User struct {
	ID          string
	DisplayName string
	Email       string
	PhotoURL    string
	Role        Role
	CreatedAt   time.Time
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Identity is what the identity provider asserts about a verified token.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

// Actor is the caller of a use case: who they are and whether they may act as
// an administrator.
type Actor struct {
	UserID  string
	Name    string
	Email   string
	IsAdmin bool
}

// ActorFromUser builds the actor for a stored profile.
func ActorFromUser(u *User) Actor {
	return Actor{
		UserID:  u.ID,
		Name:    u.DisplayName,
		Email:   u.Email,
		IsAdmin: u.IsAdmin(),
	}
}
