package models

import "time"

// Session is a server-tracked record binding one token to one user with an
// expiry. A logical session occupies exactly one record: refreshing rotates
// the id, token and expiry in place instead of appending a new row.
type Session struct {
	// ID is the session identifier embedded in the token's "sid" claim.
	ID string `json:"id"`

	// UserID references the owning [User].
	UserID string `json:"userId"`

	// Token is the compact JWS string issued for this session. Unique across
	// sessions; the /me path resolves sessions by this literal string.
	Token string `json:"token"`

	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`

	// LastActivityAt is touched on every successful /me resolution.
	LastActivityAt time.Time `json:"lastActivityAt"`
}

// Expired reports whether the session's expiry lies strictly before now.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}
