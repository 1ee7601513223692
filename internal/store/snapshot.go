package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tradedesk/tradedesk/models"
)

// Snapshot is the serialized form of the in-memory credential store: every
// collection dumped under its collection name.
type Snapshot struct {
	Users         []models.User         `json:"users"`
	Sessions      []models.Session      `json:"sessions"`
	LoginAttempts []models.LoginAttempt `json:"login_attempts"`
}

// fileSnapshotStore persists the snapshot as one JSON document on disk.
// It is the default side-channel backend.
type fileSnapshotStore struct {
	path string
}

// NewFileSnapshotStore constructs a [SnapshotStore] writing to the given
// file path.
func NewFileSnapshotStore(path string) SnapshotStore {
	return &fileSnapshotStore{path: path}
}

func (f *fileSnapshotStore) Load(ctx context.Context) (*Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	var snapshot Snapshot
	if err = json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot file: %w", err)
	}

	return &snapshot, nil
}

func (f *fileSnapshotStore) Persist(ctx context.Context, snapshot *Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err = os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}

	return nil
}

func (f *fileSnapshotStore) Reset(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove snapshot file: %w", err)
	}
	return nil
}
