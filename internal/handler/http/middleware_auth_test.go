package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tradedesk/tradedesk/internal/service"
	"github.com/tradedesk/tradedesk/models"
)

func adminUser() models.User {
	return models.User{ID: "a1", Email: "admin@example.com", Role: models.RoleAdmin}
}

func TestAdminRoutes_RequireToken(t *testing.T) {
	handler, _, _ := newTestHandler(t, "development")
	router := handler.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/users", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutes_RejectInvalidToken(t *testing.T) {
	handler, authService, _ := newTestHandler(t, "development")
	router := handler.Init()

	authService.EXPECT().
		CurrentUser(gomock.Any(), "bad-token").
		Return(models.User{}, service.ErrTokenIsExpiredOrInvalid)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/users", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutes_ForbidNonAdmin(t *testing.T) {
	handler, authService, _ := newTestHandler(t, "development")
	router := handler.Init()

	authService.EXPECT().
		CurrentUser(gomock.Any(), "user-token").
		Return(models.User{ID: "u1", Role: models.RoleUser}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/users", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListUsersEndpoint_Success(t *testing.T) {
	handler, authService, adminService := newTestHandler(t, "development")
	router := handler.Init()

	actor := adminUser()
	authService.EXPECT().CurrentUser(gomock.Any(), "admin-token").Return(actor, nil)
	adminService.EXPECT().
		ListUsers(gomock.Any(), actor).
		Return([]models.User{actor, {ID: "u1", Email: "jane@example.com", Role: models.RoleUser}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/users", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.UsersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Users, 2)
}

func TestUpdateUserRoleEndpoint_Success(t *testing.T) {
	handler, authService, adminService := newTestHandler(t, "development")
	router := handler.Init()

	actor := adminUser()
	authService.EXPECT().CurrentUser(gomock.Any(), "admin-token").Return(actor, nil)
	adminService.EXPECT().
		UpdateUserRole(gomock.Any(), actor, "u1", models.RoleAdmin).
		Return(models.User{ID: "u1", Role: models.RoleAdmin}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/auth/users/u1/role",
		strings.NewReader(`{"role":"admin"}`))
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
}

func TestUpdateUserRoleEndpoint_InvalidRole(t *testing.T) {
	handler, authService, adminService := newTestHandler(t, "development")
	router := handler.Init()

	actor := adminUser()
	authService.EXPECT().CurrentUser(gomock.Any(), "admin-token").Return(actor, nil)
	adminService.EXPECT().
		UpdateUserRole(gomock.Any(), actor, "u1", models.Role("superuser")).
		Return(models.User{}, service.NewValidationError("role", "role must be either user or admin"))

	req := httptest.NewRequest(http.MethodPatch, "/api/auth/users/u1/role",
		strings.NewReader(`{"role":"superuser"}`))
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr models.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "role", apiErr.Field)
}

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"valid bearer", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"scheme only", "Bearer", "", ErrInvalidAuthorizationHeader},
		{"empty token", "Bearer ", "", ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
