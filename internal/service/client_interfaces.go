package service

import (
	"context"
	"time"

	"github.com/tradedesk/tradedesk/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_services_mock.go -package=mock

// ClientAuthService drives the dashboard's authentication lifecycle. All
// state changes flow through the event reducer, and the current snapshot is
// available via State at any time.
type ClientAuthService interface {
	// State returns the current authentication state snapshot.
	State() AuthState

	// Bootstrap restores a persisted session at startup. A present session is
	// confirmed against the server; confirmation failure clears the persisted
	// session. An absent session just drops the loading flag.
	Bootstrap(ctx context.Context)

	// Login authenticates with the server and persists the session. The
	// returned error keeps its transport tagging so forms can map it to a
	// field.
	Login(ctx context.Context, req models.LoginRequest) error

	// Register creates an account, signs in and persists the session.
	Register(ctx context.Context, req models.RegisterRequest) error

	// Logout tears down the server session, the persisted session and the
	// in-memory state. Local state is reset even when the server call fails.
	Logout(ctx context.Context) error

	// RefreshToken rotates the session token. Any failure is fail-closed:
	// the persisted session is cleared and the state machine is logged out.
	RefreshToken(ctx context.Context) error

	// ClearError drops the current error message from the state.
	ClearError()
}

// ClientRefreshJob is the background worker that keeps the session token
// fresh while the dashboard stays open.
type ClientRefreshJob interface {
	// Start launches the background refresh goroutine. It refreshes every
	// interval, defaulting to 5 minutes if interval is zero or negative. Any
	// previously running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
