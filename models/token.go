package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the claims payload embedded in every session token.
//
// It extends the standard JWT registered claim set (RFC 7519) with the
// session identifier, so a decoded token can be matched against its session
// record: the "sub" claim must equal the session's UserID and the "sid"
// claim must equal the session's ID.
type TokenClaims struct {
	jwt.RegisteredClaims

	// SessionID is the "sid" claim: the id of the session record the token
	// was minted for.
	SessionID string `json:"sid,omitempty"`
}

// UserID returns the "sub" claim, the id of the user the token was issued to.
func (c *TokenClaims) UserID() string {
	return c.Subject
}
