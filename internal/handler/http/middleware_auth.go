// Package http implements the HTTP transport layer of the auth API.
// It provides middleware, route handlers, and request/response utilities
// for the REST endpoints. Authentication, logging and tracing concerns are
// all handled at this layer before requests are forwarded to the service
// layer.
package http

import (
	"net/http"

	"github.com/tradedesk/tradedesk/internal/logger"
	"github.com/tradedesk/tradedesk/internal/service"
	"github.com/tradedesk/tradedesk/internal/utils"
	"github.com/tradedesk/tradedesk/models"
)

// auth is an HTTP middleware that resolves the session behind the request.
//
// It extracts the token from the "Authorization" header or the auth cookie,
// resolves it via [service.AuthService.CurrentUser] (which enforces session
// existence, expiry and account activity), and stores the authenticated user
// in the request context under [utils.AuthUserCtxKey] before delegating to
// the next handler. Requests without a resolvable live session are rejected
// with HTTP 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		ctx := r.Context()

		token, err := tokenFromRequest(r)
		if err != nil {
			log.Err(err).Send()
			h.writeError(w, r, err)
			return
		}

		user, err := h.services.AuthService.CurrentUser(ctx, token)
		if err != nil {
			log.Err(err).Msg("session resolution failed")
			h.writeError(w, r, err)
			return
		}

		// Downstream handlers read the actor and token from the context
		// instead of re-resolving the session.
		ctx = utils.WithAuthUser(ctx, user)
		ctx = utils.WithSessionToken(ctx, token)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin rejects authenticated non-admin callers with HTTP 403. Must
// run after auth.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := utils.GetAuthUserFromContext(r.Context())
		if !ok {
			h.writeError(w, r, service.ErrTokenIsExpiredOrInvalid)
			return
		}
		if user.Role != models.RoleAdmin {
			h.writeError(w, r, service.ErrPermissionDenied)
			return
		}

		next.ServeHTTP(w, r)
	})
}
