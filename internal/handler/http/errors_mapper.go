package http

import (
	"errors"
	"net/http"

	"github.com/tradedesk/tradedesk/internal/logger"
	"github.com/tradedesk/tradedesk/internal/service"
	"github.com/tradedesk/tradedesk/internal/store"
	"github.com/tradedesk/tradedesk/internal/utils"
	"github.com/tradedesk/tradedesk/models"
)

var errorStatusMap = map[error]int{
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrAccountInactive:         http.StatusUnauthorized,
	service.ErrPermissionDenied:        http.StatusForbidden,

	ErrNoTokenProvided:            http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrEmptyToken:                 http.StatusUnauthorized,

	store.ErrEmailAlreadyExists:     http.StatusConflict,
	store.ErrNoUserWasFound:         http.StatusNotFound,
	store.ErrNoSessionWasFound:      http.StatusUnauthorized,
	store.ErrNoLoginAttemptWasFound: http.StatusNotFound,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError maps a service or store error to its HTTP status and writes the
// field-tagged JSON error body. Internal failures are masked with a generic
// message so storage details never leak to clients.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	apiErr := models.APIError{Error: err.Error()}
	status := statusFromError(err)

	var validationErr *service.ValidationError
	var authErr *service.AuthError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
		apiErr.Error = validationErr.Message
		apiErr.Field = validationErr.Field
	case errors.As(err, &authErr):
		status = http.StatusUnauthorized
		apiErr.Error = authErr.Message
		apiErr.Field = authErr.Field
	case errors.Is(err, store.ErrEmailAlreadyExists):
		apiErr.Error = "an account with this email already exists"
		apiErr.Field = "email"
	}

	if status == http.StatusInternalServerError {
		log.Err(err).Msg("unexpected error")
		apiErr.Error = http.StatusText(http.StatusInternalServerError)
	}

	if _, err = utils.WriteJSON(w, apiErr, status); err != nil {
		log.Err(err).Msg("error response write failed")
	}
}
