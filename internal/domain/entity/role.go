// Package entity contains the core business objects of the project.
package entity

// Role represents the capability a portal user has.
type Role string

const (
	// RoleClient books sessions and chats about their own bookings.
	RoleClient Role = "client"
	// RoleAdmin manages the booking queue.
	RoleAdmin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a known value.
func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleAdmin:
		return true
	default:
		return false
	}
}

// RoleFromString falls back to RoleClient for unknown or empty values.
func RoleFromString(s string) Role {
	role := Role(s)
	if !role.IsValid() {
		return RoleClient
	}

	return role
}
