package http

import (
	"net/http"
	"time"
)

// AuthCookieName is the cookie carrying the session token between browser
// requests. The client dashboard uses the Authorization header instead; the
// cookie exists for web callers.
const AuthCookieName = "auth-token"

const productionEnvironment = "production"

// setAuthCookie emits the session cookie alongside a successful auth
// response. HttpOnly keeps it out of script reach, SameSite=Lax allows
// top-level navigation, and Secure is added outside development.
func (h *Handler) setAuthCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.environment == productionEnvironment,
	})
}

// clearAuthCookie expires the session cookie immediately.
func (h *Handler) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.environment == productionEnvironment,
	})
}
