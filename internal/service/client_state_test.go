package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradedesk/tradedesk/models"
)

func TestReduce_Transitions(t *testing.T) {
	user := &models.User{ID: "u1", Email: "jane@example.com"}

	authenticated := AuthState{User: user, IsAuthenticated: true}
	failed := AuthState{Error: "invalid email or password"}
	loading := AuthState{IsLoading: true}

	tests := []struct {
		name  string
		state AuthState
		event AuthEvent
		want  AuthState
	}{
		{
			name:  "login start sets loading and clears error",
			state: failed,
			event: AuthEvent{Kind: LoginStart},
			want:  AuthState{IsLoading: true},
		},
		{
			name:  "register start sets loading and clears error",
			state: failed,
			event: AuthEvent{Kind: RegisterStart},
			want:  AuthState{IsLoading: true},
		},
		{
			name:  "login success authenticates",
			state: loading,
			event: AuthEvent{Kind: LoginSuccess, User: user},
			want:  AuthState{User: user, IsAuthenticated: true},
		},
		{
			name:  "register success authenticates",
			state: loading,
			event: AuthEvent{Kind: RegisterSuccess, User: user},
			want:  AuthState{User: user, IsAuthenticated: true},
		},
		{
			name:  "login error drops user and records message",
			state: AuthState{User: user, IsAuthenticated: true, IsLoading: true},
			event: AuthEvent{Kind: LoginError, Message: "invalid email or password"},
			want:  AuthState{Error: "invalid email or password"},
		},
		{
			name:  "register error drops user and records message",
			state: loading,
			event: AuthEvent{Kind: RegisterError, Message: "an account with this email already exists"},
			want:  AuthState{Error: "an account with this email already exists"},
		},
		{
			name:  "logout resets everything",
			state: AuthState{User: user, IsAuthenticated: true, Error: "stale"},
			event: AuthEvent{Kind: Logout},
			want:  AuthState{},
		},
		{
			name:  "token refresh only clears loading",
			state: AuthState{User: user, IsAuthenticated: true, IsLoading: true},
			event: AuthEvent{Kind: TokenRefresh},
			want:  authenticated,
		},
		{
			name:  "clear error keeps the rest",
			state: AuthState{User: user, IsAuthenticated: true, Error: "stale"},
			event: AuthEvent{Kind: ClearError},
			want:  authenticated,
		},
		{
			name:  "set loading true",
			state: AuthState{},
			event: AuthEvent{Kind: SetLoading, Loading: true},
			want:  AuthState{IsLoading: true},
		},
		{
			name:  "set loading false",
			state: loading,
			event: AuthEvent{Kind: SetLoading},
			want:  AuthState{},
		},
		{
			name:  "unknown kind returns state unchanged",
			state: authenticated,
			event: AuthEvent{Kind: AuthEventKind(99)},
			want:  authenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reduce(tt.state, tt.event))
		})
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	user := &models.User{ID: "u1"}
	state := AuthState{User: user, IsAuthenticated: true, Error: "stale"}

	_ = Reduce(state, AuthEvent{Kind: Logout})

	assert.Equal(t, AuthState{User: user, IsAuthenticated: true, Error: "stale"}, state)
}

func TestAuthEventKind_String(t *testing.T) {
	tests := []struct {
		kind AuthEventKind
		want string
	}{
		{LoginStart, "LOGIN_START"},
		{LoginSuccess, "LOGIN_SUCCESS"},
		{LoginError, "LOGIN_ERROR"},
		{RegisterStart, "REGISTER_START"},
		{RegisterSuccess, "REGISTER_SUCCESS"},
		{RegisterError, "REGISTER_ERROR"},
		{Logout, "LOGOUT"},
		{TokenRefresh, "TOKEN_REFRESH"},
		{ClearError, "CLEAR_ERROR"},
		{SetLoading, "SET_LOADING"},
		{AuthEventKind(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}
