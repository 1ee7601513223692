package http

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/tradedesk/tradedesk/internal/logger"
	"github.com/tradedesk/tradedesk/internal/service"
	"github.com/tradedesk/tradedesk/internal/utils"
	"github.com/tradedesk/tradedesk/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, r, service.NewValidationError("", "invalid JSON was passed"))
		return
	}

	result, err := h.services.AuthService.Register(ctx, req, requestMeta(r))
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("registration failed")
		h.writeError(w, r, err)
		return
	}

	h.setAuthCookie(w, result.Token, result.TTL)
	if _, err = utils.WriteJSON(w, models.AuthResponse{
		Success: true,
		User:    result.User,
		Token:   result.Token,
	}, http.StatusCreated); err != nil {
		log.Err(err).Msg("registration response write failed")
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, r, service.NewValidationError("", "invalid JSON was passed"))
		return
	}

	result, err := h.services.AuthService.Login(ctx, req, requestMeta(r))
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("login failed")
		h.writeError(w, r, err)
		return
	}

	h.setAuthCookie(w, result.Token, result.TTL)
	if _, err = utils.WriteJSON(w, models.AuthResponse{
		Success: true,
		User:    result.User,
		Token:   result.Token,
	}, http.StatusOK); err != nil {
		log.Err(err).Msg("login response write failed")
	}
}

// logout never fails on a missing or unknown token; the cookie is cleared
// either way.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token, err := tokenFromRequest(r)
	if err != nil {
		token = ""
	}

	if err = h.services.AuthService.Logout(ctx, token); err != nil {
		log.Err(err).Msg("logout failed")
		h.writeError(w, r, err)
		return
	}

	h.clearAuthCookie(w)
	if _, err = utils.WriteJSON(w, models.StatusResponse{Success: true}, http.StatusOK); err != nil {
		log.Err(err).Msg("logout response write failed")
	}
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token, err := tokenFromRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.CurrentUser(ctx, token)
	if err != nil {
		log.Err(err).Msg("current user resolution failed")
		h.writeError(w, r, err)
		return
	}

	if _, err = utils.WriteJSON(w, models.UserResponse{
		Success: true,
		User:    user,
	}, http.StatusOK); err != nil {
		log.Err(err).Msg("current user response write failed")
	}
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token, err := tokenFromRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.services.AuthService.Refresh(ctx, token)
	if err != nil {
		log.Err(err).Msg("token refresh failed")
		h.writeError(w, r, err)
		return
	}

	h.setAuthCookie(w, result.Token, result.TTL)
	if _, err = utils.WriteJSON(w, models.AuthResponse{
		Success: true,
		User:    result.User,
		Token:   result.Token,
	}, http.StatusOK); err != nil {
		log.Err(err).Msg("refresh response write failed")
	}
}

// tokenFromRequest extracts the session token, preferring the Authorization
// header over the auth cookie.
func tokenFromRequest(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		return getTokenFromAuthHeader(authHeader)
	}

	cookie, err := r.Cookie(AuthCookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrNoTokenProvided
	}

	return cookie.Value, nil
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value of the form "<scheme> <token>".
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] if the header contains fewer than two
//     space-separated parts (i.e. the token is missing entirely).
//   - [ErrEmptyToken] if the second part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}

// requestMeta captures the caller's address and agent for the login audit
// trail.
func requestMeta(r *http.Request) models.RequestMeta {
	ip := r.Header.Get("X-Real-IP")
	if ip == "" {
		ip = r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}
	}

	return models.RequestMeta{
		IPAddress: ip,
		UserAgent: r.UserAgent(),
	}
}

