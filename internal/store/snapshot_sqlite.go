package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

// Collection names used as snapshot keys by the SQLite backend.
const (
	collectionUsers         = "users"
	collectionSessions      = "sessions"
	collectionLoginAttempts = "login_attempts"
)

// sqliteSnapshotStore persists each collection of the in-memory store as a
// JSON payload in an SQLite table keyed by collection name. It is the
// durable-side-channel alternative to the flat JSON file.
type sqliteSnapshotStore struct {
	db *sql.DB
}

// NewSQLiteSnapshotStore opens (and if necessary creates) the SQLite
// database at path and prepares the snapshots table.
func NewSQLiteSnapshotStore(path string) (SnapshotStore, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite snapshot store: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS snapshots (
		collection TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);`
	if _, err = conn.Exec(schema); err != nil {
		return nil, fmt.Errorf("create snapshots table: %w", err)
	}

	return &sqliteSnapshotStore{db: conn}, nil
}

func (s *sqliteSnapshotStore) Load(ctx context.Context) (*Snapshot, error) {
	snapshot := &Snapshot{}
	found := false

	collections := map[string]any{
		collectionUsers:         &snapshot.Users,
		collectionSessions:      &snapshot.Sessions,
		collectionLoginAttempts: &snapshot.LoginAttempts,
	}

	for name, dest := range collections {
		query, args, err := sq.Select("payload").
			From("snapshots").
			Where(sq.Eq{"collection": name}).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		var payload string
		err = s.db.QueryRowContext(ctx, query, args...).Scan(&payload)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		if err = json.Unmarshal([]byte(payload), dest); err != nil {
			return nil, fmt.Errorf("decode %s snapshot: %w", name, err)
		}
		found = true
	}

	if !found {
		return nil, nil
	}
	return snapshot, nil
}

func (s *sqliteSnapshotStore) Persist(ctx context.Context, snapshot *Snapshot) error {
	collections := map[string]any{
		collectionUsers:         snapshot.Users,
		collectionSessions:      snapshot.Sessions,
		collectionLoginAttempts: snapshot.LoginAttempts,
	}

	for name, payload := range collections {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s snapshot: %w", name, err)
		}

		query, args, err := sq.Insert("snapshots").
			Columns("collection", "payload", "updated_at").
			Values(name, string(data), time.Now()).
			Suffix("ON CONFLICT(collection) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return nil
}

func (s *sqliteSnapshotStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots;`); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}
