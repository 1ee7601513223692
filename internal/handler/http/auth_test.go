package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tradedesk/tradedesk/internal/config"
	"github.com/tradedesk/tradedesk/internal/logger"
	"github.com/tradedesk/tradedesk/internal/mock"
	"github.com/tradedesk/tradedesk/internal/service"
	"github.com/tradedesk/tradedesk/internal/store"
	"github.com/tradedesk/tradedesk/models"
)

func newTestHandler(t *testing.T, environment string) (*Handler, *mock.MockAuthService, *mock.MockAdminService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	authService := mock.NewMockAuthService(ctrl)
	adminService := mock.NewMockAdminService(ctrl)

	handler := NewHandler(&service.Services{
		AuthService:  authService,
		AdminService: adminService,
	}, config.Auth{Environment: environment}, logger.Nop())

	return handler, authService, adminService
}

func testAuthResult() service.AuthResult {
	return service.AuthResult{
		User: models.User{
			ID:    "u1",
			Email: "jane@example.com",
			Role:  models.RoleUser,
		},
		Token:     "issued-token",
		ExpiresAt: time.Now().Add(time.Hour),
		TTL:       time.Hour,
	}
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestRegisterEndpoint_Success(t *testing.T) {
	handler, authService, _ := newTestHandler(t, "development")
	router := handler.Init()

	authService.EXPECT().
		Register(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(testAuthResult(), nil)

	body := `{"firstName":"Jane","lastName":"Doe","email":"jane@example.com","password":"Passw0rd","confirmPassword":"Passw0rd"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "issued-token", resp.Token)
	assert.Equal(t, "jane@example.com", resp.User.Email)

	cookie := findCookie(t, rec, AuthCookieName)
	assert.Equal(t, "issued-token", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int(time.Hour.Seconds()), cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.False(t, cookie.Secure, "cookie must not be Secure outside production")
}

func TestRegisterEndpoint_ValidationError(t *testing.T) {
	handler, authService, _ := newTestHandler(t, "development")
	router := handler.Init()

	authService.EXPECT().
		Register(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(service.AuthResult{}, service.NewValidationError("email", "email address is malformed"))

	body := `{"firstName":"Jane","lastName":"Doe","email":"broken","password":"Passw0rd","confirmPassword":"Passw0rd"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr models.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.False(t, apiErr.Success)
	assert.Equal(t, "email address is malformed", apiErr.Error)
	assert.Equal(t, "email", apiErr.Field)
}

func TestRegisterEndpoint_DuplicateEmail(t *testing.T) {
	handler, authService, _ := newTestHandler(t, "development")
	router := handler.Init()

	authService.EXPECT().
		Register(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(service.AuthResult{}, store.ErrEmailAlreadyExists)

	body := `{"firstName":"Jane","lastName":"Doe","email":"jane@example.com","password":"Passw0rd","confirmPassword":"Passw0rd"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)

	var apiErr models.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "an account with this email already exists", apiErr.Error)
	assert.Equal(t, "email", apiErr.Field)
}

func TestRegisterEndpoint_MalformedBody(t *testing.T) {
	handler, _, _ := newTestHandler(t, "development")
	router := handler.Init()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginEndpoint_Success(t *testing.T) {
	handler, authService, _ := newTestHandler(t, "development")
	router := handler.Init()

	authService.EXPECT().
		Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(testAuthResult(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"jane@example.com","password":"Passw0rd"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "issued-token", resp.Token)
}

func TestLoginEndpoint_FieldTaggedFailure(t *testing.T) {
	handler, authService, _ := newTestHandler(t, "development")
	router := handler.Init()

	authService.EXPECT().
		Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(service.AuthResult{}, service.NewAuthError("password", "invalid email or password"))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"jane@example.com","password":"wrong"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var apiErr models.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "invalid email or password", apiErr.Error)
	assert.Equal(t, "password", apiErr.Field)
}

func TestLoginEndpoint_ProductionCookieIsSecure(t *testing.T) {
	handler, authService, _ := newTestHandler(t, "production")
	router := handler.Init()

	authService.EXPECT().
		Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(testAuthResult(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"jane@example.com","password":"Passw0rd"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookie := findCookie(t, rec, AuthCookieName)
	assert.True(t, cookie.Secure)
}

func TestLogoutEndpoint_ClearsCookie(t *testing.T) {
	handler, authService, _ := newTestHandler(t, "development")
	router := handler.Init()

	authService.EXPECT().Logout(gomock.Any(), "issued-token").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer issued-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	cookie := findCookie(t, rec, AuthCookieName)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}

func TestLogoutEndpoint_WithoutToken(t *testing.T) {
	handler, authService, _ := newTestHandler(t, "development")
	router := handler.Init()

	// A missing token still logs out cleanly.
	authService.EXPECT().Logout(gomock.Any(), "").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMeEndpoint_BearerHeader(t *testing.T) {
	handler, authService, _ := newTestHandler(t, "development")
	router := handler.Init()

	authService.EXPECT().
		CurrentUser(gomock.Any(), "issued-token").
		Return(models.User{ID: "u1", Email: "jane@example.com"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer issued-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "jane@example.com", resp.User.Email)
}

func TestMeEndpoint_CookieFallback(t *testing.T) {
	handler, authService, _ := newTestHandler(t, "development")
	router := handler.Init()

	authService.EXPECT().
		CurrentUser(gomock.Any(), "cookie-token").
		Return(models.User{ID: "u1"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "cookie-token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMeEndpoint_NoToken(t *testing.T) {
	handler, _, _ := newTestHandler(t, "development")
	router := handler.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeEndpoint_ExpiredToken(t *testing.T) {
	handler, authService, _ := newTestHandler(t, "development")
	router := handler.Init()

	authService.EXPECT().
		CurrentUser(gomock.Any(), "expired-token").
		Return(models.User{}, service.ErrTokenIsExpiredOrInvalid)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshEndpoint_RotatesCookie(t *testing.T) {
	handler, authService, _ := newTestHandler(t, "development")
	router := handler.Init()

	rotated := testAuthResult()
	rotated.Token = "rotated-token"
	authService.EXPECT().Refresh(gomock.Any(), "issued-token").Return(rotated, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer issued-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "rotated-token", resp.Token)

	cookie := findCookie(t, rec, AuthCookieName)
	assert.Equal(t, "rotated-token", cookie.Value)
}

func TestRefreshEndpoint_InvalidToken(t *testing.T) {
	handler, authService, _ := newTestHandler(t, "development")
	router := handler.Init()

	authService.EXPECT().
		Refresh(gomock.Any(), "stale-token").
		Return(service.AuthResult{}, service.ErrTokenIsExpiredOrInvalid)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInternalErrorIsMasked(t *testing.T) {
	handler, authService, _ := newTestHandler(t, "development")
	router := handler.Init()

	authService.EXPECT().
		Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(service.AuthResult{}, store.ErrExecutingQuery)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"jane@example.com","password":"Passw0rd"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var apiErr models.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), apiErr.Error)
}
