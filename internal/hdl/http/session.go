package http

import (
	"net/http"

	"github.com/JMURv/auth-guard/internal/config"
	"github.com/JMURv/auth-guard/internal/hdl"
	"github.com/JMURv/auth-guard/internal/hdl/http/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// listSessions godoc
//
//	@Summary		List sessions
//	@Description	List live refresh sessions of the current user
//	@Tags			Sessions
//	@Produce		json
//	@Success		200	{array}		dto.SessionResponse
//	@Failure		401	{object}	utils.ErrorsResponse
//	@Failure		500	{object}	utils.ErrorsResponse
//	@Router			/auth/sessions [get]
func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	const op = "auth.listSessions.hdl"
	uid, ok := r.Context().Value(config.UidKey).(uuid.UUID)
	if !ok {
		zap.L().Error(hdl.ErrFailedToGetUUID.Error(), zap.String("op", op))
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	res, err := h.ctrl.ListSessions(r.Context(), uid)
	if err != nil {
		authErrResponse(w, op, err)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}

// revokeSession godoc
//
//	@Summary		Revoke session
//	@Description	Revoke every refresh token of one device
//	@Tags			Sessions
//	@Produce		json
//	@Param			device	path	string	true	"Device ID"
//	@Success		204
//	@Failure		401	{object}	utils.ErrorsResponse
//	@Failure		404	{object}	utils.ErrorsResponse
//	@Failure		500	{object}	utils.ErrorsResponse
//	@Router			/auth/sessions/{device} [delete]
func (h *Handler) revokeSession(w http.ResponseWriter, r *http.Request) {
	const op = "auth.revokeSession.hdl"
	uid, ok := r.Context().Value(config.UidKey).(uuid.UUID)
	if !ok {
		zap.L().Error(hdl.ErrFailedToGetUUID.Error(), zap.String("op", op))
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	device := chi.URLParam(r, "device")
	if device == "" {
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrToRetrievePathArg)
		return
	}

	if err := h.ctrl.RevokeSession(r.Context(), uid, device); err != nil {
		authErrResponse(w, op, err)
		return
	}

	utils.StatusResponse(w, http.StatusNoContent)
}
