package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradedesk/tradedesk/models"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) AuthAPI {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewHTTPAuthAPI(HTTPClientConfig{BaseURL: server.URL})
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestLogin_StoresTokenOnSuccess(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "jane@example.com", req.Email)

		writeJSON(t, w, http.StatusOK, models.AuthResponse{
			Success: true,
			User:    models.User{ID: "u1", Email: req.Email},
			Token:   "issued-token",
		})
	})

	auth, err := api.Login(context.Background(), models.LoginRequest{
		Email:    "jane@example.com",
		Password: "Passw0rd",
	})
	require.NoError(t, err)
	assert.Equal(t, "issued-token", auth.Token)
	assert.Equal(t, "issued-token", api.Token())
}

func TestLogin_FieldErrorSurvivesTransport(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, models.APIError{
			Error: "invalid email or password",
			Field: "password",
		})
	})

	_, err := api.Login(context.Background(), models.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong",
	})

	var fieldErr *APIFieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "password", fieldErr.Field)
	assert.Equal(t, "invalid email or password", fieldErr.Message)

	// The status sentinel must still match through the wrapper.
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, api.Token())
}

func TestRegister_ConflictMapsToSentinel(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, models.APIError{
			Error: "an account with this email already exists",
			Field: "email",
		})
	})

	_, err := api.Register(context.Background(), models.RegisterRequest{Email: "jane@example.com"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCurrentUser_SendsBearerToken(t *testing.T) {
	var gotAuthorization string
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuthorization = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, models.UserResponse{
			Success: true,
			User:    models.User{ID: "u1", Email: "jane@example.com"},
		})
	})

	api.SetToken("issued-token")

	user, err := api.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "Bearer issued-token", gotAuthorization)
}

func TestCurrentUser_WithoutTokenOmitsHeader(t *testing.T) {
	var gotAuthorization string
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuthorization = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusUnauthorized, models.APIError{Error: "no token provided"})
	})

	_, err := api.CurrentUser(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, gotAuthorization)
}

func TestLogout_ClearsTokenEvenOnServerError(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, models.APIError{Error: "Internal Server Error"})
	})

	api.SetToken("issued-token")

	err := api.Logout(context.Background())
	assert.ErrorIs(t, err, ErrInternalServerError)
	assert.Empty(t, api.Token(), "token must be dropped regardless of the server outcome")
}

func TestRefresh_ReplacesStoredToken(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer old-token", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, models.AuthResponse{
			Success: true,
			User:    models.User{ID: "u1"},
			Token:   "new-token",
		})
	})

	api.SetToken("old-token")

	auth, err := api.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new-token", auth.Token)
	assert.Equal(t, "new-token", api.Token())
}

func TestListUsers_Success(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/users", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.UsersResponse{
			Success: true,
			Users: []models.User{
				{ID: "u1", Email: "jane@example.com"},
				{ID: "u2", Email: "john@example.com"},
			},
		})
	})

	users, err := api.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUpdateUserRole_ForbiddenForNonAdmin(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/auth/users/u1/role", r.URL.Path)
		writeJSON(t, w, http.StatusForbidden, models.APIError{Error: "permission denied"})
	})

	_, err := api.UpdateUserRole(context.Background(), "u1", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMapHTTPError_NonJSONBody(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	})

	_, err := api.CurrentUser(context.Background())
	require.Error(t, err)

	// 502 has no sentinel; the raw status and body must be reported.
	var fieldErr *APIFieldError
	assert.False(t, errors.As(err, &fieldErr))
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream unavailable")
}
