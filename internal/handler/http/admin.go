package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tradedesk/tradedesk/internal/logger"
	"github.com/tradedesk/tradedesk/internal/service"
	"github.com/tradedesk/tradedesk/internal/utils"
	"github.com/tradedesk/tradedesk/models"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actor, ok := utils.GetAuthUserFromContext(ctx)
	if !ok {
		h.writeError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	users, err := h.services.AdminService.ListUsers(ctx, actor)
	if err != nil {
		log.Err(err).Msg("user listing failed")
		h.writeError(w, r, err)
		return
	}

	if _, err = utils.WriteJSON(w, models.UsersResponse{
		Success: true,
		Users:   users,
	}, http.StatusOK); err != nil {
		log.Err(err).Msg("user listing response write failed")
	}
}

func (h *Handler) updateUserRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actor, ok := utils.GetAuthUserFromContext(ctx)
	if !ok {
		h.writeError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	var req models.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, r, service.NewValidationError("", "invalid JSON was passed"))
		return
	}

	targetID := chi.URLParam(r, "id")
	user, err := h.services.AdminService.UpdateUserRole(ctx, actor, targetID, req.Role)
	if err != nil {
		log.Err(err).Str("target_id", targetID).Msg("role update failed")
		h.writeError(w, r, err)
		return
	}

	if _, err = utils.WriteJSON(w, models.UserResponse{
		Success: true,
		User:    user,
	}, http.StatusOK); err != nil {
		log.Err(err).Msg("role update response write failed")
	}
}
