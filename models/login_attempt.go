package models

import "time"

// LoginAttempt is one row of the append-only authentication audit trail.
//
// A row is inserted with Success=false before credentials are checked, so
// attempts against unknown emails are audited too. When the credentials
// verify, the same row is flipped to Success=true within the same request.
type LoginAttempt struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Success   bool      `json:"success"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`

	AttemptedAt time.Time `json:"attemptedAt"`
}

// TableName returns the name of the database table
// associated with the LoginAttempt model.
func (a LoginAttempt) TableName() string {
	return "login_attempts"
}
