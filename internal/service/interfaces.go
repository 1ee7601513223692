package service

import (
	"context"
	"time"

	"github.com/tradedesk/tradedesk/models"
)

// AuthResult bundles everything an auth operation hands back to the HTTP
// layer: the account, the freshly minted token, and the cookie lifetime.
type AuthResult struct {
	User      models.User
	Token     string
	ExpiresAt time.Time

	// TTL is the token lifetime used for the Max-Age of the auth cookie.
	TTL time.Duration
}

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest, meta models.RequestMeta) (AuthResult, error)
	Login(ctx context.Context, req models.LoginRequest, meta models.RequestMeta) (AuthResult, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (models.User, error)
	Refresh(ctx context.Context, token string) (AuthResult, error)
}

type AdminService interface {
	ListUsers(ctx context.Context, actor models.User) ([]models.User, error)
	UpdateUserRole(ctx context.Context, actor models.User, userID string, role models.Role) (models.User, error)
}
