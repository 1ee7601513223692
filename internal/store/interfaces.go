package store

import (
	"context"
	"time"

	"github.com/tradedesk/tradedesk/models"
)

// UserRepository is the data-access contract for dashboard accounts.
type UserRepository interface {
	// CreateUser persists a new account and returns it with server-assigned
	// fields populated. Returns [ErrEmailAlreadyExists] when another account
	// owns the same normalized email.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByID returns the account with the given id or
	// [ErrNoUserWasFound].
	FindUserByID(ctx context.Context, id string) (models.User, error)

	// FindUserByEmail looks an account up by case-insensitively normalized
	// email. Returns [ErrNoUserWasFound] when no account matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// UpdateUser overwrites the stored account identified by user.ID.
	// Returns [ErrNoUserWasFound] when the account does not exist.
	UpdateUser(ctx context.Context, user models.User) (models.User, error)

	// ListUsers returns all accounts ordered by creation time.
	ListUsers(ctx context.Context) ([]models.User, error)
}

// SessionRepository is the data-access contract for session records.
type SessionRepository interface {
	// CreateSession persists a new session row.
	CreateSession(ctx context.Context, session models.Session) (models.Session, error)

	// FindSessionByToken resolves a session by its literal token string.
	// Returns [ErrNoSessionWasFound] when no session carries the token.
	FindSessionByToken(ctx context.Context, token string) (models.Session, error)

	// RotateSession replaces the row identified by oldID with the given
	// session (new id, token and expiry) in place, keeping one row per
	// logical session. Returns [ErrNoSessionWasFound] when oldID is gone.
	RotateSession(ctx context.Context, oldID string, session models.Session) (models.Session, error)

	// TouchSession updates the session's last-activity timestamp.
	TouchSession(ctx context.Context, id string, at time.Time) error

	// DeleteSessionByToken removes the session carrying the token. Deleting
	// a token that is already gone is a no-op, not an error.
	DeleteSessionByToken(ctx context.Context, token string) error

	// DeleteExpiredSessions removes every session whose expiry lies before
	// now and returns the number of rows deleted.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
}

// LoginAttemptRepository is the data-access contract for the append-only
// authentication audit trail.
type LoginAttemptRepository interface {
	// CreateLoginAttempt appends an audit row.
	CreateLoginAttempt(ctx context.Context, attempt models.LoginAttempt) (models.LoginAttempt, error)

	// MarkLoginAttemptSuccess retroactively flips the row with the given id
	// to success=true. Returns [ErrNoLoginAttemptWasFound] when the row does
	// not exist.
	MarkLoginAttemptSuccess(ctx context.Context, id string) error

	// ListLoginAttemptsByEmail returns all audit rows recorded for the
	// normalized email, oldest first.
	ListLoginAttemptsByEmail(ctx context.Context, email string) ([]models.LoginAttempt, error)
}

// SnapshotStore is the durable side-channel of the in-memory credential
// store. Implementations persist the full store state keyed by collection
// name; the in-memory state stays authoritative when a flush fails.
type SnapshotStore interface {
	// Load reads the last persisted snapshot. A missing snapshot returns
	// (nil, nil), which the caller treats as an empty store.
	Load(ctx context.Context) (*Snapshot, error)

	// Persist durably writes the snapshot, replacing any previous one.
	Persist(ctx context.Context, snapshot *Snapshot) error

	// Reset removes the persisted snapshot.
	Reset(ctx context.Context) error
}
