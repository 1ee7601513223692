package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tradedesk/tradedesk/models"
)

func TestFileSnapshotStore_LoadAbsentFile(t *testing.T) {
	s := NewFileSnapshotStore(filepath.Join(t.TempDir(), "missing.json"))

	snapshot, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot != nil {
		t.Errorf("expected nil snapshot for absent file, got %+v", snapshot)
	}
}

func TestFileSnapshotStore_PersistLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	s := NewFileSnapshotStore(path)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	want := &Snapshot{
		Users: []models.User{{
			ID:        "u1",
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
			Role:      models.RoleAdmin,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}},
		Sessions: []models.Session{{
			ID:        "s1",
			UserID:    "u1",
			Token:     "token-1",
			ExpiresAt: now.Add(time.Hour),
			CreatedAt: now,
		}},
		LoginAttempts: []models.LoginAttempt{{
			ID:          "a1",
			Email:       "jane@example.com",
			Success:     true,
			AttemptedAt: now,
		}},
	}

	if err := s.Persist(ctx, want); err != nil {
		t.Fatalf("persist: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatal("expected snapshot, got nil")
	}
	if len(got.Users) != 1 || got.Users[0].Email != "jane@example.com" {
		t.Errorf("users did not survive the round trip: %+v", got.Users)
	}
	if len(got.Sessions) != 1 || got.Sessions[0].Token != "token-1" {
		t.Errorf("sessions did not survive the round trip: %+v", got.Sessions)
	}
	if len(got.LoginAttempts) != 1 || !got.LoginAttempts[0].Success {
		t.Errorf("login attempts did not survive the round trip: %+v", got.LoginAttempts)
	}
}

func TestFileSnapshotStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	if _, err := NewFileSnapshotStore(path).Load(context.Background()); err == nil {
		t.Error("expected error for corrupt snapshot, got nil")
	}
}

func TestFileSnapshotStore_Reset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	s := NewFileSnapshotStore(path)
	ctx := context.Background()

	if err := s.Persist(ctx, &Snapshot{}); err != nil {
		t.Fatalf("persist: %v", err)
	}
	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected snapshot file to be removed, stat error: %v", err)
	}

	// Resetting again must be a no-op.
	if err := s.Reset(ctx); err != nil {
		t.Errorf("second reset must be a no-op, got %v", err)
	}
}
