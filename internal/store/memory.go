package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tradedesk/tradedesk/internal/logger"
	"github.com/tradedesk/tradedesk/models"
)

// memoryStore is the mock persistence layer standing in for a real auth
// database. All three collections live in mutex-guarded maps; every write is
// additionally flushed to the [SnapshotStore] side-channel. Flush failures
// are logged and swallowed; the in-memory state stays authoritative for the
// request that caused them.
type memoryStore struct {
	logger   *logger.Logger
	snapshot SnapshotStore

	mu       sync.RWMutex
	users    map[string]models.User
	sessions map[string]models.Session
	attempts []models.LoginAttempt
}

// NewMemoryStore constructs the in-memory store and rehydrates it from the
// snapshot side-channel. An absent snapshot yields an empty store.
func NewMemoryStore(snapshot SnapshotStore, logger *logger.Logger) (*memoryStore, error) {
	s := &memoryStore{
		logger:   logger,
		snapshot: snapshot,
		users:    make(map[string]models.User),
		sessions: make(map[string]models.Session),
	}

	loaded, err := snapshot.Load(context.Background())
	if err != nil {
		return nil, err
	}
	if loaded != nil {
		for _, u := range loaded.Users {
			s.users[u.ID] = u
		}
		for _, sess := range loaded.Sessions {
			s.sessions[sess.ID] = sess
		}
		s.attempts = append(s.attempts, loaded.LoginAttempts...)
	}

	logger.Debug().
		Int("users", len(s.users)).
		Int("sessions", len(s.sessions)).
		Int("login_attempts", len(s.attempts)).
		Msg("credential store rehydrated")

	return s, nil
}

// flush copies the current state under the read lock and persists it to the
// side-channel. Errors are logged, never returned: a failed flush must not
// fail the request whose write triggered it.
func (s *memoryStore) flush(ctx context.Context) {
	s.mu.RLock()
	snapshot := s.buildSnapshotLocked()
	s.mu.RUnlock()

	if err := s.snapshot.Persist(ctx, snapshot); err != nil {
		logger.FromContext(ctx).Err(err).Msg("snapshot flush failed, in-memory state stays authoritative")
	}
}

// buildSnapshotLocked assembles a deterministic snapshot. Callers must hold
// at least the read lock.
func (s *memoryStore) buildSnapshotLocked() *Snapshot {
	snapshot := &Snapshot{
		Users:         make([]models.User, 0, len(s.users)),
		Sessions:      make([]models.Session, 0, len(s.sessions)),
		LoginAttempts: make([]models.LoginAttempt, len(s.attempts)),
	}

	for _, u := range s.users {
		snapshot.Users = append(snapshot.Users, u)
	}
	sort.Slice(snapshot.Users, func(i, j int) bool {
		return snapshot.Users[i].ID < snapshot.Users[j].ID
	})

	for _, sess := range s.sessions {
		snapshot.Sessions = append(snapshot.Sessions, sess)
	}
	sort.Slice(snapshot.Sessions, func(i, j int) bool {
		return snapshot.Sessions[i].ID < snapshot.Sessions[j].ID
	})

	copy(snapshot.LoginAttempts, s.attempts)

	return snapshot
}

// ---- UserRepository ----

func (s *memoryStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	normalized := models.NormalizeEmail(user.Email)

	s.mu.Lock()
	for _, existing := range s.users {
		if models.NormalizeEmail(existing.Email) == normalized {
			s.mu.Unlock()
			return models.User{}, ErrEmailAlreadyExists
		}
	}
	s.users[user.ID] = user
	s.mu.Unlock()

	s.flush(ctx)
	return user, nil
}

func (s *memoryStore) FindUserByID(ctx context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}
	return user, nil
}

func (s *memoryStore) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	normalized := models.NormalizeEmail(email)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if models.NormalizeEmail(user.Email) == normalized {
			return user, nil
		}
	}
	return models.User{}, ErrNoUserWasFound
}

func (s *memoryStore) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	if _, ok := s.users[user.ID]; !ok {
		s.mu.Unlock()
		return models.User{}, ErrNoUserWasFound
	}
	s.users[user.ID] = user
	s.mu.Unlock()

	s.flush(ctx)
	return user, nil
}

func (s *memoryStore) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})

	return users, nil
}

// ---- SessionRepository ----

func (s *memoryStore) CreateSession(ctx context.Context, session models.Session) (models.Session, error) {
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.flush(ctx)
	return session, nil
}

func (s *memoryStore) FindSessionByToken(ctx context.Context, token string) (models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, session := range s.sessions {
		if session.Token == token {
			return session, nil
		}
	}
	return models.Session{}, ErrNoSessionWasFound
}

func (s *memoryStore) RotateSession(ctx context.Context, oldID string, session models.Session) (models.Session, error) {
	s.mu.Lock()
	if _, ok := s.sessions[oldID]; !ok {
		s.mu.Unlock()
		return models.Session{}, ErrNoSessionWasFound
	}
	// One row per logical session: the old id is replaced, never kept
	// alongside the new one.
	delete(s.sessions, oldID)
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.flush(ctx)
	return session, nil
}

func (s *memoryStore) TouchSession(ctx context.Context, id string, at time.Time) error {
	s.mu.Lock()
	session, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return ErrNoSessionWasFound
	}
	session.LastActivityAt = at
	s.sessions[id] = session
	s.mu.Unlock()

	s.flush(ctx)
	return nil
}

func (s *memoryStore) DeleteSessionByToken(ctx context.Context, token string) error {
	s.mu.Lock()
	deleted := false
	for id, session := range s.sessions {
		if session.Token == token {
			delete(s.sessions, id)
			deleted = true
			break
		}
	}
	s.mu.Unlock()

	if deleted {
		s.flush(ctx)
	}
	return nil
}

func (s *memoryStore) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	deleted := 0
	for id, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, id)
			deleted++
		}
	}
	s.mu.Unlock()

	if deleted > 0 {
		s.flush(ctx)
	}
	return deleted, nil
}

// ---- LoginAttemptRepository ----

func (s *memoryStore) CreateLoginAttempt(ctx context.Context, attempt models.LoginAttempt) (models.LoginAttempt, error) {
	s.mu.Lock()
	s.attempts = append(s.attempts, attempt)
	s.mu.Unlock()

	s.flush(ctx)
	return attempt, nil
}

func (s *memoryStore) MarkLoginAttemptSuccess(ctx context.Context, id string) error {
	s.mu.Lock()
	found := false
	for i := range s.attempts {
		if s.attempts[i].ID == id {
			s.attempts[i].Success = true
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return ErrNoLoginAttemptWasFound
	}

	s.flush(ctx)
	return nil
}

func (s *memoryStore) ListLoginAttemptsByEmail(ctx context.Context, email string) ([]models.LoginAttempt, error) {
	normalized := models.NormalizeEmail(email)

	s.mu.RLock()
	defer s.mu.RUnlock()

	attempts := make([]models.LoginAttempt, 0)
	for _, attempt := range s.attempts {
		if models.NormalizeEmail(attempt.Email) == normalized {
			attempts = append(attempts, attempt)
		}
	}
	return attempts, nil
}
