// Package utils provides general-purpose helper utilities used across
// different parts of the application: context keys, HTTP response writing,
// session-token generation and validation, and id generation.
package utils

import (
	"context"

	"github.com/tradedesk/tradedesk/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// AuthUserCtxKey is the key under which the auth middleware stores the
// resolved, sanitized user of the current request.
var AuthUserCtxKey = contextKey("authUser")

// SessionTokenCtxKey is the key under which the auth middleware stores the
// raw session token presented by the current request.
var SessionTokenCtxKey = contextKey("sessionToken")

// WithAuthUser returns a child context carrying the authenticated user.
func WithAuthUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, AuthUserCtxKey, user)
}

// GetAuthUserFromContext retrieves the authenticated user stored by the auth
// middleware.
//
// Returns the user and an ok flag:
//   - ok == true: value is found and has the correct type
//   - ok == false: value is missing or has an unexpected type
func GetAuthUserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(AuthUserCtxKey).(models.User)
	return user, ok
}

// WithSessionToken returns a child context carrying the raw session token.
func WithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, SessionTokenCtxKey, token)
}

// GetSessionTokenFromContext retrieves the raw session token stored by the
// auth middleware.
func GetSessionTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(SessionTokenCtxKey).(string)
	return token, ok
}
