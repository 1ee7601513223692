// SPDX-License-Identifier: Apache-2.0
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode"

	"github.com/tradedesk/tradedesk/internal/config"
	"github.com/tradedesk/tradedesk/internal/crypto"
	"github.com/tradedesk/tradedesk/internal/logger"
	"github.com/tradedesk/tradedesk/internal/store"
	"github.com/tradedesk/tradedesk/internal/utils"
	"github.com/tradedesk/tradedesk/models"
)

// emailPattern accepts local@domain.tld shaped addresses.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 8

// authService implements AuthService over the credential store. It owns the
// full session lifecycle: issuing tokens at register/login, resolving and
// touching sessions on /me, rotating them on refresh, and deleting them on
// logout.
type authService struct {
	users    store.UserRepository
	sessions store.SessionRepository
	attempts store.LoginAttemptRepository

	hasher crypto.PasswordHasher

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	tokenIssuer string

	// tokenDuration is the default session lifetime; rememberTokenDuration
	// replaces it when the login request sets rememberMe.
	tokenDuration         time.Duration
	rememberTokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the credential store and
// populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(storages *store.Storages, hasher crypto.PasswordHasher, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		users:                 storages.Users,
		sessions:              storages.Sessions,
		attempts:              storages.LoginAttempts,
		hasher:                hasher,
		tokenSignKey:          cfg.TokenSignKey,
		tokenIssuer:           cfg.TokenIssuer,
		tokenDuration:         cfg.TokenDuration,
		rememberTokenDuration: cfg.RememberTokenDuration,
		logger:                logger,
	}
}

// Register creates a new account and signs it in.
//
// Validation short-circuits in a fixed order (names, email shape, password
// strength, confirmation match, duplicate email) and performs no writes until
// every step has passed. The first failing step is returned as a
// field-tagged *ValidationError; a taken email surfaces as
// store.ErrEmailAlreadyExists.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest, meta models.RequestMeta) (AuthResult, error) {
	log := logger.FromContext(ctx)

	if err := validateRegistration(req); err != nil {
		log.Error().Str("email", req.Email).Str("reason", err.Error()).Msg("registration rejected")
		return AuthResult{}, err
	}

	if _, err := a.users.FindUserByEmail(ctx, req.Email); err == nil {
		return AuthResult{}, store.ErrEmailAlreadyExists
	} else if !errors.Is(err, store.ErrNoUserWasFound) {
		return AuthResult{}, fmt.Errorf("duplicate email check failed: %w", err)
	}

	hash, err := a.hasher.Hash(req.Password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("password hashing failed: %w", err)
	}

	now := time.Now()
	user := models.User{
		ID:           utils.NewID(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        models.NormalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         models.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	user, err = a.users.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return AuthResult{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	if _, err = a.attempts.CreateLoginAttempt(ctx, models.LoginAttempt{
		ID:          utils.NewID(),
		Email:       user.Email,
		Success:     true,
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
		AttemptedAt: now,
	}); err != nil {
		log.Err(err).Str("email", user.Email).Msg("registration audit row creation failed")
	}

	result, err := a.openSession(ctx, user, a.tokenDuration)
	if err != nil {
		return AuthResult{}, err
	}

	log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("account registered")
	return result, nil
}

// Login verifies credentials and opens a session.
//
// The audit row is inserted with success=false before the account lookup, so
// attempts against unknown emails leave a trace too. Only after the password
// verifies is the same row flipped to success=true. Unknown, inactive and
// wrong-password failures all come back as field-tagged *AuthError values.
func (a *authService) Login(ctx context.Context, req models.LoginRequest, meta models.RequestMeta) (AuthResult, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" {
		return AuthResult{}, NewValidationError("email", "email is required")
	}
	if req.Password == "" {
		return AuthResult{}, NewValidationError("password", "password is required")
	}

	now := time.Now()
	attempt, err := a.attempts.CreateLoginAttempt(ctx, models.LoginAttempt{
		ID:          utils.NewID(),
		Email:       models.NormalizeEmail(req.Email),
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
		AttemptedAt: now,
	})
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("login audit row creation failed")
	}

	user, err := a.users.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return AuthResult{}, NewAuthError("email", "invalid email or password")
		}
		return AuthResult{}, fmt.Errorf("user search by email failed: %w", err)
	}
	if !user.IsActive {
		return AuthResult{}, NewAuthError("email", "account is deactivated")
	}
	if !a.hasher.Verify(req.Password, user.PasswordHash) {
		log.Warn().Str("email", user.Email).Msg("wrong password")
		return AuthResult{}, NewAuthError("password", "invalid email or password")
	}

	if attempt.ID != "" {
		if err = a.attempts.MarkLoginAttemptSuccess(ctx, attempt.ID); err != nil {
			log.Err(err).Str("attempt_id", attempt.ID).Msg("login audit row update failed")
		}
	}

	user.LastLoginAt = &now
	user.UpdatedAt = now
	if user, err = a.users.UpdateUser(ctx, user); err != nil {
		return AuthResult{}, fmt.Errorf("last login update failed: %w", err)
	}

	ttl := a.tokenDuration
	if req.RememberMe {
		ttl = a.rememberTokenDuration
	}

	result, err := a.openSession(ctx, user, ttl)
	if err != nil {
		return AuthResult{}, err
	}

	log.Info().Str("user_id", user.ID).Bool("remember_me", req.RememberMe).Msg("user logged in")
	return result, nil
}

// Logout deletes the session owning the token. Idempotent: an unknown or
// already-deleted token is not an error.
func (a *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := a.sessions.DeleteSessionByToken(ctx, token); err != nil {
		return fmt.Errorf("session deletion failed: %w", err)
	}
	return nil
}

// CurrentUser resolves the account behind a token.
//
// Resolution goes through the session row, not just the JWT signature: an
// expired session is deleted on the spot, and a missing or deactivated
// account fails even while the token itself is still cryptographically valid.
// A successful resolution touches the session's lastActivityAt.
func (a *authService) CurrentUser(ctx context.Context, token string) (models.User, error) {
	log := logger.FromContext(ctx)

	session, user, err := a.resolveSession(ctx, token)
	if err != nil {
		return models.User{}, err
	}

	if err = a.sessions.TouchSession(ctx, session.ID, time.Now()); err != nil {
		log.Err(err).Str("session_id", session.ID).Msg("session activity update failed")
	}

	return user.Sanitized(), nil
}

// Refresh rotates the session behind a valid token: a new id, token and
// expiry overwrite the same logical session row, so refreshing never grows
// the session collection. The old token stops resolving immediately.
func (a *authService) Refresh(ctx context.Context, token string) (AuthResult, error) {
	log := logger.FromContext(ctx)

	session, user, err := a.resolveSession(ctx, token)
	if err != nil {
		return AuthResult{}, err
	}

	now := time.Now()
	next := models.Session{
		ID:             utils.NewID(),
		UserID:         user.ID,
		CreatedAt:      session.CreatedAt,
		LastActivityAt: now,
		ExpiresAt:      now.Add(a.tokenDuration),
	}

	next.Token, _, err = utils.GenerateSessionToken(a.tokenIssuer, user.ID, next.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return AuthResult{}, fmt.Errorf("token generation failed: %w", err)
	}

	if _, err = a.sessions.RotateSession(ctx, session.ID, next); err != nil {
		if errors.Is(err, store.ErrNoSessionWasFound) {
			return AuthResult{}, ErrTokenIsExpiredOrInvalid
		}
		return AuthResult{}, fmt.Errorf("session rotation failed: %w", err)
	}

	log.Debug().Str("user_id", user.ID).Str("session_id", next.ID).Msg("session rotated")

	return AuthResult{
		User:      user.Sanitized(),
		Token:     next.Token,
		ExpiresAt: next.ExpiresAt,
		TTL:       a.tokenDuration,
	}, nil
}

// resolveSession maps a raw token to its live session and active owner.
// Expired sessions are deleted lazily here, which keeps /me and /refresh the
// only places that need expiry awareness.
//
// The signature, issuer and expiry of the token itself are verified before
// anything touches the store: a string that merely collides with a stored
// token is not a credential.
func (a *authService) resolveSession(ctx context.Context, token string) (models.Session, models.User, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return models.Session{}, models.User{}, ErrTokenIsExpiredOrInvalid
	}

	claims, err := utils.ValidateSessionToken(token, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		// An expired token still triggers the lazy cleanup of its session
		// row; for forged tokens the delete is a no-op.
		if err = a.sessions.DeleteSessionByToken(ctx, token); err != nil {
			log.Err(err).Msg("rejected token cleanup failed")
		}
		return models.Session{}, models.User{}, ErrTokenIsExpiredOrInvalid
	}

	session, err := a.sessions.FindSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNoSessionWasFound) {
			return models.Session{}, models.User{}, ErrTokenIsExpiredOrInvalid
		}
		return models.Session{}, models.User{}, fmt.Errorf("session lookup failed: %w", err)
	}

	if claims.SessionID != session.ID || claims.UserID() != session.UserID {
		return models.Session{}, models.User{}, ErrTokenIsExpiredOrInvalid
	}

	if session.Expired(time.Now()) {
		if err = a.sessions.DeleteSessionByToken(ctx, token); err != nil {
			log.Err(err).Str("session_id", session.ID).Msg("expired session cleanup failed")
		}
		return models.Session{}, models.User{}, ErrTokenIsExpiredOrInvalid
	}

	user, err := a.users.FindUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.Session{}, models.User{}, ErrTokenIsExpiredOrInvalid
		}
		return models.Session{}, models.User{}, fmt.Errorf("session owner lookup failed: %w", err)
	}
	if !user.IsActive {
		return models.Session{}, models.User{}, ErrAccountInactive
	}

	return session, user, nil
}

// openSession mints a session and token for an authenticated account.
func (a *authService) openSession(ctx context.Context, user models.User, ttl time.Duration) (AuthResult, error) {
	now := time.Now()
	session := models.Session{
		ID:             utils.NewID(),
		UserID:         user.ID,
		CreatedAt:      now,
		LastActivityAt: now,
		ExpiresAt:      now.Add(ttl),
	}

	token, _, err := utils.GenerateSessionToken(a.tokenIssuer, user.ID, session.ID, ttl, a.tokenSignKey)
	if err != nil {
		return AuthResult{}, fmt.Errorf("token generation failed: %w", err)
	}
	session.Token = token

	if _, err = a.sessions.CreateSession(ctx, session); err != nil {
		return AuthResult{}, fmt.Errorf("session creation failed: %w", err)
	}

	return AuthResult{
		User:      user.Sanitized(),
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		TTL:       ttl,
	}, nil
}

func validateRegistration(req models.RegisterRequest) error {
	if req.FirstName == "" {
		return NewValidationError("firstName", "first name is required")
	}
	if req.LastName == "" {
		return NewValidationError("lastName", "last name is required")
	}
	if req.Email == "" {
		return NewValidationError("email", "email is required")
	}
	if !emailPattern.MatchString(req.Email) {
		return NewValidationError("email", "email address is malformed")
	}
	if err := validatePasswordStrength(req.Password); err != nil {
		return err
	}
	if req.Password != req.ConfirmPassword {
		return NewValidationError("confirmPassword", "passwords do not match")
	}
	return nil
}

func validatePasswordStrength(password string) error {
	if password == "" {
		return NewValidationError("password", "password is required")
	}
	if len(password) < minPasswordLength {
		return NewValidationError("password", "password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return NewValidationError("password", "password must contain an uppercase letter, a lowercase letter and a digit")
	}

	return nil
}
