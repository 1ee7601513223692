// SPDX-License-Identifier: Apache-2.0

// Package adapter provides the transport layer the dashboard client uses to
// talk to the auth API.
//
// The primary abstraction is [AuthAPI], which decouples the client services
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPAuthAPI]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
// Field-tagged API errors additionally surface as [*APIFieldError] so forms
// can highlight the offending input.
package adapter

import (
	"context"

	"github.com/tradedesk/tradedesk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/auth_api_mock.go -package=mock

// AuthAPI defines transport-agnostic communication with the auth API.
// Implementations are responsible for serialisation, authentication header
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type AuthAPI interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It should be called immediately
	// after a successful Register, Login or Refresh.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates a new account and returns the signed-in user together
	// with the session token.
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)

	// Login authenticates with email and password and returns the signed-in
	// user together with the session token.
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)

	// Logout deletes the server-side session behind the stored token and
	// clears the stored token. Safe to call without a token.
	Logout(ctx context.Context) error

	// CurrentUser resolves the account behind the stored token.
	CurrentUser(ctx context.Context) (models.User, error)

	// Refresh rotates the server-side session and stores the replacement
	// token. Returns the new token and user.
	Refresh(ctx context.Context) (models.AuthResponse, error)

	// ListUsers returns every account. Requires an admin session.
	ListUsers(ctx context.Context) ([]models.User, error)

	// UpdateUserRole changes the target account's role. Requires an admin
	// session.
	UpdateUserRole(ctx context.Context, userID string, role models.Role) (models.User, error)
}
