package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tradedesk/tradedesk/models"
)

type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpAuthAPI struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPAuthAPI builds the REST implementation of [AuthAPI]. Requests share
// a single resty client with a hard timeout, so a stalled server surfaces as
// an error instead of a hung dashboard.
func NewHTTPAuthAPI(cfg HTTPClientConfig) AuthAPI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpAuthAPI{client: cli}
}

func (h *httpAuthAPI) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpAuthAPI) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpAuthAPI) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/auth/register")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	var auth models.AuthResponse
	if err = json.Unmarshal(resp.Body(), &auth); err != nil {
		return models.AuthResponse{}, fmt.Errorf("decode register response: %w", err)
	}

	h.SetToken(auth.Token)
	return auth, nil
}

func (h *httpAuthAPI) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/auth/login")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	var auth models.AuthResponse
	if err = json.Unmarshal(resp.Body(), &auth); err != nil {
		return models.AuthResponse{}, fmt.Errorf("decode login response: %w", err)
	}

	h.SetToken(auth.Token)
	return auth, nil
}

// Logout clears the stored token even when the server call fails; the local
// session must never outlive a logout attempt.
func (h *httpAuthAPI) Logout(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post("/api/auth/logout")

	h.SetToken("")

	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpAuthAPI) CurrentUser(ctx context.Context) (models.User, error) {
	resp, err := h.authedRequest(ctx).Get("/api/auth/me")
	if err != nil {
		return models.User{}, fmt.Errorf("current user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var userResp models.UserResponse
	if err = json.Unmarshal(resp.Body(), &userResp); err != nil {
		return models.User{}, fmt.Errorf("decode current user response: %w", err)
	}

	return userResp.User, nil
}

func (h *httpAuthAPI) Refresh(ctx context.Context) (models.AuthResponse, error) {
	resp, err := h.authedRequest(ctx).Post("/api/auth/refresh")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("refresh request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	var auth models.AuthResponse
	if err = json.Unmarshal(resp.Body(), &auth); err != nil {
		return models.AuthResponse{}, fmt.Errorf("decode refresh response: %w", err)
	}

	h.SetToken(auth.Token)
	return auth, nil
}

func (h *httpAuthAPI) ListUsers(ctx context.Context) ([]models.User, error) {
	resp, err := h.authedRequest(ctx).Get("/api/auth/users")
	if err != nil {
		return nil, fmt.Errorf("list users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var usersResp models.UsersResponse
	if err = json.Unmarshal(resp.Body(), &usersResp); err != nil {
		return nil, fmt.Errorf("decode list users response: %w", err)
	}

	return usersResp.Users, nil
}

func (h *httpAuthAPI) UpdateUserRole(ctx context.Context, userID string, role models.Role) (models.User, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.UpdateRoleRequest{Role: role}).
		Patch("/api/auth/users/" + userID + "/role")
	if err != nil {
		return models.User{}, fmt.Errorf("update role request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var userResp models.UserResponse
	if err = json.Unmarshal(resp.Body(), &userResp); err != nil {
		return models.User{}, fmt.Errorf("decode update role response: %w", err)
	}

	return userResp.User, nil
}

func (h *httpAuthAPI) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
