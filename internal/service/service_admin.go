package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tradedesk/tradedesk/internal/logger"
	"github.com/tradedesk/tradedesk/internal/store"
	"github.com/tradedesk/tradedesk/models"
)

// adminService implements AdminService. Every operation checks the acting
// user's role itself, so the authorization decision does not depend on the
// transport layer alone.
type adminService struct {
	users  store.UserRepository
	logger *logger.Logger
}

func NewAdminService(users store.UserRepository, logger *logger.Logger) AdminService {
	return &adminService{
		users:  users,
		logger: logger,
	}
}

// ListUsers returns every account, sanitized. Requires an admin actor.
func (s *adminService) ListUsers(ctx context.Context, actor models.User) ([]models.User, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrPermissionDenied
	}

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("user listing failed: %w", err)
	}

	sanitized := make([]models.User, 0, len(users))
	for _, user := range users {
		sanitized = append(sanitized, user.Sanitized())
	}

	return sanitized, nil
}

// UpdateUserRole changes the target account's role. Requires an admin actor;
// rejects roles outside {user, admin} and unknown targets without mutating
// anything.
func (s *adminService) UpdateUserRole(ctx context.Context, actor models.User, userID string, role models.Role) (models.User, error) {
	log := logger.FromContext(ctx)

	if actor.Role != models.RoleAdmin {
		return models.User{}, ErrPermissionDenied
	}
	if !role.Valid() {
		return models.User{}, NewValidationError("role", "role must be either user or admin")
	}

	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("target user lookup failed: %w", err)
	}

	user.Role = role
	user.UpdatedAt = time.Now()

	user, err = s.users.UpdateUser(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("role update failed: %w", err)
	}

	log.Info().
		Str("actor_id", actor.ID).
		Str("user_id", user.ID).
		Str("role", string(role)).
		Msg("user role updated")

	return user.Sanitized(), nil
}
