package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/tradedesk/tradedesk/internal/logger"
	"github.com/tradedesk/tradedesk/models"
)

var loginAttemptColumns = []string{
	"id", "email", "success", "ip_address", "user_agent", "attempted_at",
}

// loginAttemptRepository is the PostgreSQL-backed implementation of
// [LoginAttemptRepository].
type loginAttemptRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewLoginAttemptRepository constructs a [LoginAttemptRepository] backed by
// the provided database connection and logger.
func NewLoginAttemptRepository(db *DB, logger *logger.Logger) LoginAttemptRepository {
	logger.Debug().Msg("creating login attempt repository")
	return &loginAttemptRepository{
		db:     db,
		logger: logger,
	}
}

func (r *loginAttemptRepository) CreateLoginAttempt(ctx context.Context, attempt models.LoginAttempt) (models.LoginAttempt, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Insert(attempt.TableName()).
		Columns(loginAttemptColumns...).
		Values(attempt.ID, attempt.Email, attempt.Success, attempt.IPAddress, attempt.UserAgent, attempt.AttemptedAt).
		ToSql()
	if err != nil {
		return models.LoginAttempt{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("email", attempt.Email).Msg("login attempt insert failed")
		return models.LoginAttempt{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return attempt, nil
}

// MarkLoginAttemptSuccess flips the audit row to success after the
// credentials have been verified.
func (r *loginAttemptRepository) MarkLoginAttemptSuccess(ctx context.Context, id string) error {
	query, args, err := psql.Update(models.LoginAttempt{}.TableName()).
		Set("success", true).
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
		return ErrNoLoginAttemptWasFound
	}

	return nil
}

func (r *loginAttemptRepository) ListLoginAttemptsByEmail(ctx context.Context, email string) ([]models.LoginAttempt, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Select(loginAttemptColumns...).
		From(models.LoginAttempt{}.TableName()).
		Where(sq.Expr("LOWER(email) = ?", models.NormalizeEmail(email))).
		OrderBy("attempted_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Msg("login attempt listing failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	attempts := make([]models.LoginAttempt, 0)
	for rows.Next() {
		var attempt models.LoginAttempt
		if err = rows.Scan(
			&attempt.ID, &attempt.Email, &attempt.Success,
			&attempt.IPAddress, &attempt.UserAgent, &attempt.AttemptedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		attempts = append(attempts, attempt)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return attempts, nil
}
