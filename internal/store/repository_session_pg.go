package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/tradedesk/tradedesk/internal/logger"
	"github.com/tradedesk/tradedesk/models"
)

var sessionColumns = []string{
	"id", "user_id", "token", "expires_at", "created_at", "last_activity_at",
}

// sessionRepository is the PostgreSQL-backed implementation of
// [SessionRepository].
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) (models.Session, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Insert(session.TableName()).
		Columns(sessionColumns...).
		Values(session.ID, session.UserID, session.Token, session.ExpiresAt, session.CreatedAt, session.LastActivityAt).
		ToSql()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("user_id", session.UserID).Msg("session insert failed")
		return models.Session{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return session, nil
}

func (r *sessionRepository) FindSessionByToken(ctx context.Context, token string) (models.Session, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Select(sessionColumns...).
		From(models.Session{}.TableName()).
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var session models.Session
	row := r.db.QueryRowContext(ctx, query, args...)
	if err = scanSession(row, &session); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrNoSessionWasFound
		}
		log.Err(err).Msg("session scan failed")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return session, nil
}

// RotateSession replaces the row identified by oldID with the new session
// state in place. The logical session keeps a single row across refreshes.
func (r *sessionRepository) RotateSession(ctx context.Context, oldID string, session models.Session) (models.Session, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Update(session.TableName()).
		Set("id", session.ID).
		Set("token", session.Token).
		Set("expires_at", session.ExpiresAt).
		Set("last_activity_at", session.LastActivityAt).
		Where(sq.Eq{"id": oldID}).
		ToSql()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("session_id", oldID).Msg("session rotation failed")
		return models.Session{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return models.Session{}, ErrNoSessionWasFound
	}

	return session, nil
}

func (r *sessionRepository) TouchSession(ctx context.Context, id string, at time.Time) error {
	query, args, err := psql.Update(models.Session{}.TableName()).
		Set("last_activity_at", at).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNoSessionWasFound
	}

	return nil
}

// DeleteSessionByToken removes the session owning the token. Deleting an
// unknown token is not an error.
func (r *sessionRepository) DeleteSessionByToken(ctx context.Context, token string) error {
	query, args, err := psql.Delete(models.Session{}.TableName()).
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *sessionRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Delete(models.Session{}.TableName()).
		Where(sq.Lt{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Msg("expired session sweep failed")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return int(affected), nil
}

func scanSession(row rowScanner, session *models.Session) error {
	return row.Scan(
		&session.ID, &session.UserID, &session.Token,
		&session.ExpiresAt, &session.CreatedAt, &session.LastActivityAt,
	)
}
