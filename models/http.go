package models

import "time"

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe,omitempty"`
}

// UpdateRoleRequest is the body of PATCH /api/auth/users/{id}/role.
type UpdateRoleRequest struct {
	Role Role `json:"role"`
}

// RequestMeta carries transport-level attributes of an auth request that end
// up in the login-attempt audit trail.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// AuthResponse is the success body of register, login and refresh.
type AuthResponse struct {
	Success bool   `json:"success"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}

// UserResponse is the success body of /me and the role-update endpoint.
type UserResponse struct {
	Success bool `json:"success"`
	User    User `json:"user"`
}

// UsersResponse is the success body of the admin user listing.
type UsersResponse struct {
	Success bool   `json:"success"`
	Users   []User `json:"users"`
}

// StatusResponse is the body of endpoints that return no payload (logout).
type StatusResponse struct {
	Success bool `json:"success"`
}

// APIError is the uniform failure body of every auth endpoint.
//
// Field tags validation and credential failures with the form field they
// belong to, so client forms can surface the message next to the input.
type APIError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
}

// ClientSession is the snapshot the dashboard client persists locally so a
// restarted process can re-hydrate its auth state without logging in again.
type ClientSession struct {
	Token   string    `json:"token"`
	User    User      `json:"user"`
	SavedAt time.Time `json:"saved_at"`
}
