package model

import "time"

// Role gates access to the administrative surface.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered customer or administrator.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Customer is the subset of user data embedded into invoices.
type Customer struct {
	ID    int64
	Name  string
	Email string
}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	UserID int64
	Role   Role
}

// IsAdmin reports whether the identity may cross the ownership boundary.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
