package models

import (
	"strings"
	"time"
)

// Role is the authorization level assigned to a user account.
type Role string

const (
	// RoleUser is the default role assigned at registration.
	RoleUser Role = "user"

	// RoleAdmin grants access to the user-management endpoints.
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a dashboard account.
//
// PasswordHash is persisted by the credential store but must be stripped via
// [User.Sanitized] before the record crosses any client-facing boundary.
type User struct {
	// ID is the generated unique identifier of the account.
	ID string `json:"id"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// Email is unique across accounts after normalization
	// (see [NormalizeEmail]).
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the account password.
	// Serialized only for the store side-channel; never returned to clients.
	PasswordHash string `json:"passwordHash,omitempty"`

	Role Role `json:"role"`

	// IsActive gates all authenticated access. A deactivated account is
	// rejected even when it presents a token that has not expired yet.
	IsActive bool `json:"isActive"`

	EmailVerified bool `json:"emailVerified"`

	// LastLoginAt is nil until the first successful login.
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Sanitized returns a copy of the user with the password hash stripped.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// FullName returns the display name shown in the dashboard header.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// NormalizeEmail lowercases and trims an email address so that lookups and
// uniqueness checks are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
