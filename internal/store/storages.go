package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tradedesk/tradedesk/internal/config"
	"github.com/tradedesk/tradedesk/internal/crypto"
	"github.com/tradedesk/tradedesk/internal/logger"
	"github.com/tradedesk/tradedesk/internal/utils"
	"github.com/tradedesk/tradedesk/models"
)

// Default administrator seeded into an empty store so the dashboard is
// usable out of the box.
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "Admin123"
)

// Storages groups the credential-store repositories into a single value that
// is passed to the service layer. All three fields point at the same backend
// instance (memory or PostgreSQL).
type Storages struct {
	Users         UserRepository
	Sessions      SessionRepository
	LoginAttempts LoginAttemptRepository
}

// NewStorages initialises the credential store from configuration.
//
// A non-empty database DSN selects the PostgreSQL backend: the connection is
// opened, pending goose migrations are applied, and the SQL repositories are
// returned. Otherwise the mock in-memory store is constructed, rehydrated
// from the snapshot side-channel selected by cfg.Snapshot.Backend ("file" or
// "sqlite").
func NewStorages(cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	if cfg.DB.DSN != "" {
		db, err := NewConnectPostgres(context.Background(), cfg.DB, logger)
		if err != nil {
			return nil, fmt.Errorf("postgres connection error: %w", err)
		}

		if err := db.Migrate(); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}

		return &Storages{
			Users:         NewUserRepository(db, logger),
			Sessions:      NewSessionRepository(db, logger),
			LoginAttempts: NewLoginAttemptRepository(db, logger),
		}, nil
	}

	snapshot, err := newSnapshotStore(cfg.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("snapshot store error: %w", err)
	}

	memory, err := NewMemoryStore(snapshot, logger)
	if err != nil {
		return nil, fmt.Errorf("memory store error: %w", err)
	}

	return &Storages{
		Users:         memory,
		Sessions:      memory,
		LoginAttempts: memory,
	}, nil
}

func newSnapshotStore(cfg config.Snapshot) (SnapshotStore, error) {
	switch cfg.Backend {
	case "sqlite":
		return NewSQLiteSnapshotStore(cfg.Path)
	default:
		return NewFileSnapshotStore(cfg.Path), nil
	}
}

// EnsureDefaultAdmin seeds the fixed administrator account when no account
// owns its email yet. Safe to call on every startup; an already-seeded store
// is left untouched.
func (s *Storages) EnsureDefaultAdmin(ctx context.Context, hasher crypto.PasswordHasher, logger *logger.Logger) error {
	_, err := s.Users.FindUserByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNoUserWasFound) {
		return fmt.Errorf("default admin lookup failed: %w", err)
	}

	hash, err := hasher.Hash(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("default admin password hash failed: %w", err)
	}

	now := time.Now()
	admin := models.User{
		ID:            utils.NewID(),
		FirstName:     "System",
		LastName:      "Administrator",
		Email:         DefaultAdminEmail,
		PasswordHash:  hash,
		Role:          models.RoleAdmin,
		IsActive:      true,
		EmailVerified: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err = s.Users.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("default admin creation failed: %w", err)
	}

	logger.Info().Str("email", DefaultAdminEmail).Msg("seeded default administrator account")
	return nil
}
