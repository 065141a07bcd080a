package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/JMURv/auth-guard/internal/auth/captcha"
	"github.com/JMURv/auth-guard/internal/auth/jwt"
	"github.com/JMURv/auth-guard/internal/config"
	"github.com/JMURv/auth-guard/internal/dto"
	"github.com/JMURv/auth-guard/internal/hdl"
	"github.com/JMURv/auth-guard/internal/hdl/http/utils"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// authenticate godoc
//
//	@Summary		Authenticate using email & password
//	@Description	Verify reCAPTCHA, check login guards, then authenticate and set JWT cookies
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			X-Real-IP	header		string						false	"Client real IP address"
//	@Param			User-Agent	header		string						false	"Client User-Agent"
//	@Param			body		body		dto.EmailAndPasswordRequest	true	"Login credentials"
//	@Success		200			{object}	dto.TokenPair
//	@Failure		400			{object}	utils.ErrorsResponse
//	@Failure		401			{object}	utils.ErrorsResponse
//	@Failure		403			{object}	utils.ErrorsResponse
//	@Failure		429			{object}	utils.ErrorsResponse
//	@Failure		500			{object}	utils.ErrorsResponse
//	@Router			/auth/jwt [post]
func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) {
	const op = "auth.authenticate.hdl"
	d, ok := utils.ParseDeviceByRequest(r.Context())
	if !ok {
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrNoDeviceInfo)
		return
	}

	req := &dto.EmailAndPasswordRequest{}
	if ok = utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	valid, err := h.captcha.VerifyRecaptcha(r.Context(), req.Token, captcha.PassAuth)
	if err != nil {
		zap.L().Error("failed to verify captcha", zap.String("op", op), zap.Error(err))
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}
	if !valid {
		utils.ErrResponse(w, http.StatusUnauthorized, hdl.ErrCaptchaFailed)
		return
	}

	res, err := h.ctrl.Login(r.Context(), &d, req)
	if err != nil {
		authErrResponse(w, op, err)
		return
	}

	utils.SetAuthCookies(w, res.Access, res.Refresh, h.conf.JWT.AccessTTL, h.conf.Refresh.IdleWindow)
	utils.SuccessResponse(w, http.StatusOK, res)
}

// refresh godoc
//
//	@Summary		Refresh JWT tokens
//	@Description	Rotate the refresh token from the cookie or body and issue a new pair
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.RefreshRequest	false	"Refresh token"
//	@Success		200		{object}	dto.TokenPair
//	@Failure		400		{object}	utils.ErrorsResponse
//	@Failure		401		{object}	utils.ErrorsResponse
//	@Failure		403		{object}	utils.ErrorsResponse
//	@Failure		500		{object}	utils.ErrorsResponse
//	@Router			/auth/jwt/refresh [post]
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	const op = "auth.refresh.hdl"
	d, ok := utils.ParseDeviceByRequest(r.Context())
	if !ok {
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrNoDeviceInfo)
		return
	}

	secret, err := refreshSecret(r)
	if err != nil || secret == "" {
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrDecodeRequest)
		return
	}

	res, err := h.ctrl.Refresh(r.Context(), &d, &dto.RefreshRequest{Refresh: secret})
	if err != nil {
		authErrResponse(w, op, err)
		return
	}

	utils.SetAuthCookies(w, res.Access, res.Refresh, h.conf.JWT.AccessTTL, h.conf.Refresh.IdleWindow)
	utils.SuccessResponse(w, http.StatusOK, res)
}

// logout godoc
//
//	@Summary		Logout user
//	@Description	Revoke the access token and the refresh token, clear JWT cookies
//	@Tags			Authentication
//	@Produce		json
//	@Param			Authorization	header	string				false	"Authorization token"
//	@Param			body			body	dto.LogoutRequest	false	"Refresh token, omit to end every session"
//	@Success		200
//	@Failure		401	{object}	utils.ErrorsResponse
//	@Failure		500	{object}	utils.ErrorsResponse
//	@Router			/auth/logout [post]
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	const op = "auth.logout.hdl"
	uid, ok := r.Context().Value(config.UidKey).(uuid.UUID)
	if !ok {
		zap.L().Error(
			hdl.ErrFailedToGetUUID.Error(),
			zap.String("op", op),
			zap.Any("uid", r.Context().Value(config.UidKey)),
		)
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}
	claims, _ := r.Context().Value(config.ClaimsKey).(jwt.Claims)

	secret, err := refreshSecret(r)
	if err != nil {
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrDecodeRequest)
		return
	}

	if err = h.ctrl.Logout(r.Context(), uid, claims, secret); err != nil {
		authErrResponse(w, op, err)
		return
	}

	utils.ClearAuthCookies(w)
	utils.StatusResponse(w, http.StatusOK)
}

// refreshSecret prefers the refresh cookie and falls back to the JSON body.
// An empty body yields an empty secret.
func refreshSecret(r *http.Request) (string, error) {
	if c, err := r.Cookie(config.RefreshCookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}

	req := &dto.RefreshRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		return "", err
	}
	return req.Refresh, nil
}
