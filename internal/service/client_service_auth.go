package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tradedesk/tradedesk/internal/adapter"
	"github.com/tradedesk/tradedesk/internal/logger"
	"github.com/tradedesk/tradedesk/internal/store"
	"github.com/tradedesk/tradedesk/models"
)

// clientAuthService owns the dashboard's auth state. Every transition goes
// through dispatch, so the reducer is the single source of truth for what
// each event does to the state.
type clientAuthService struct {
	sessions store.ClientSessionStore
	api      adapter.AuthAPI
	logger   *logger.Logger

	mu    sync.RWMutex
	state AuthState
}

func NewClientAuthService(sessions store.ClientSessionStore, api adapter.AuthAPI, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{
		sessions: sessions,
		api:      api,
		logger:   logger,
		state:    AuthState{IsLoading: true},
	}
}

func (a *clientAuthService) State() AuthState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

func (a *clientAuthService) dispatch(event AuthEvent) {
	a.mu.Lock()
	a.state = Reduce(a.state, event)
	a.mu.Unlock()

	a.logger.Debug().Str("event", event.Kind.String()).Msg("auth state transition")
}

// Bootstrap restores the persisted session on startup. The token is loaded,
// handed to the adapter, and confirmed with a /me round trip; a failed
// confirmation clears the stale session instead of trusting it.
func (a *clientAuthService) Bootstrap(ctx context.Context) {
	session, err := a.sessions.Load(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrLocalSessionNotFound) {
			a.logger.Err(err).Msg("local session load failed")
		}
		a.dispatch(AuthEvent{Kind: SetLoading, Loading: false})
		return
	}

	a.api.SetToken(session.Token)

	user, err := a.api.CurrentUser(ctx)
	if err != nil {
		a.logger.Err(err).Msg("persisted session rejected by server")
		a.clearPersistedSession(ctx)
		a.dispatch(AuthEvent{Kind: Logout})
		return
	}

	a.dispatch(AuthEvent{Kind: LoginSuccess, User: &user})
}

func (a *clientAuthService) Login(ctx context.Context, req models.LoginRequest) error {
	a.dispatch(AuthEvent{Kind: LoginStart})

	auth, err := a.api.Login(ctx, req)
	if err != nil {
		a.dispatch(AuthEvent{Kind: LoginError, Message: err.Error()})
		return fmt.Errorf("login failed: %w", err)
	}

	a.persistSession(ctx, auth)
	a.dispatch(AuthEvent{Kind: LoginSuccess, User: &auth.User})

	return nil
}

func (a *clientAuthService) Register(ctx context.Context, req models.RegisterRequest) error {
	a.dispatch(AuthEvent{Kind: RegisterStart})

	auth, err := a.api.Register(ctx, req)
	if err != nil {
		a.dispatch(AuthEvent{Kind: RegisterError, Message: err.Error()})
		return fmt.Errorf("registration failed: %w", err)
	}

	a.persistSession(ctx, auth)
	a.dispatch(AuthEvent{Kind: RegisterSuccess, User: &auth.User})

	return nil
}

// Logout resets local state unconditionally. A failed server call still
// leaves the client signed out; the abandoned session row expires on its own.
func (a *clientAuthService) Logout(ctx context.Context) error {
	err := a.api.Logout(ctx)
	if err != nil {
		a.logger.Err(err).Msg("server logout failed, clearing local state anyway")
	}

	a.clearPersistedSession(ctx)
	a.dispatch(AuthEvent{Kind: Logout})

	return err
}

// RefreshToken is fail-closed: any refresh failure logs the dashboard out and
// clears the persisted session rather than leaving a session of unknown
// validity in place.
func (a *clientAuthService) RefreshToken(ctx context.Context) error {
	auth, err := a.api.Refresh(ctx)
	if err != nil {
		a.logger.Err(err).Msg("token refresh failed, forcing logout")
		a.api.SetToken("")
		a.clearPersistedSession(ctx)
		a.dispatch(AuthEvent{Kind: Logout})
		return fmt.Errorf("token refresh failed: %w", err)
	}

	a.persistSession(ctx, auth)
	a.dispatch(AuthEvent{Kind: LoginSuccess, User: &auth.User})
	a.dispatch(AuthEvent{Kind: TokenRefresh})

	return nil
}

func (a *clientAuthService) ClearError() {
	a.dispatch(AuthEvent{Kind: ClearError})
}

func (a *clientAuthService) persistSession(ctx context.Context, auth models.AuthResponse) {
	session := models.ClientSession{
		Token:   auth.Token,
		User:    auth.User,
		SavedAt: time.Now(),
	}
	if err := a.sessions.Save(ctx, session); err != nil {
		// The in-memory session keeps working; only restart restoration is
		// affected.
		a.logger.Err(err).Msg("local session save failed")
	}
}

func (a *clientAuthService) clearPersistedSession(ctx context.Context) {
	if err := a.sessions.Clear(ctx); err != nil {
		a.logger.Err(err).Msg("local session clear failed")
	}
}
