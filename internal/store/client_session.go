package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tradedesk/tradedesk/models"
)

// ErrLocalSessionNotFound reports that no session has been persisted on this
// machine yet.
var ErrLocalSessionNotFound = errors.New("no local session was found")

// ClientSessionStore persists the dashboard's authenticated session between
// launches so a restart can restore the signed-in state without asking for
// credentials again.
type ClientSessionStore interface {
	Load(ctx context.Context) (models.ClientSession, error)
	Save(ctx context.Context, session models.ClientSession) error
	Clear(ctx context.Context) error
}

// fileClientSessionStore keeps the session as a single JSON file next to the
// client executable.
type fileClientSessionStore struct {
	path string
}

// NewClientSessionStore returns a file-backed [ClientSessionStore] rooted at
// path.
func NewClientSessionStore(path string) ClientSessionStore {
	return &fileClientSessionStore{path: path}
}

func (s *fileClientSessionStore) Load(ctx context.Context) (models.ClientSession, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.ClientSession{}, ErrLocalSessionNotFound
		}
		return models.ClientSession{}, fmt.Errorf("read local session: %w", err)
	}

	var session models.ClientSession
	if err = json.Unmarshal(data, &session); err != nil {
		return models.ClientSession{}, fmt.Errorf("decode local session: %w", err)
	}
	if session.Token == "" {
		return models.ClientSession{}, ErrLocalSessionNotFound
	}

	return session, nil
}

func (s *fileClientSessionStore) Save(ctx context.Context, session models.ClientSession) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local session: %w", err)
	}

	// 0600: the file carries a live bearer token.
	if err = os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write local session: %w", err)
	}

	return nil
}

// Clear removes the persisted session. Clearing an absent session is not an
// error.
func (s *fileClientSessionStore) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove local session: %w", err)
	}
	return nil
}
