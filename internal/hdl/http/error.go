package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/JMURv/auth-guard/internal/auth"
	"github.com/JMURv/auth-guard/internal/ctrl"
	"github.com/JMURv/auth-guard/internal/hdl"
	"github.com/JMURv/auth-guard/internal/hdl/http/utils"
	"github.com/JMURv/auth-guard/internal/observability/sentry"
	"go.uber.org/zap"
)

// authErrResponse writes the error with its kind. Infrastructure failures
// are hidden behind ErrInternal and reported.
func authErrResponse(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, ctrl.ErrNotFound) {
		utils.ErrResponse(w, http.StatusNotFound, err)
		return
	}

	kind := auth.Kind(err)
	switch kind {
	case auth.KindAccountLocked, auth.KindRateLimited:
		if secs, ok := auth.RetryAfter(err); ok {
			w.Header().Set("Retry-After", strconv.FormatInt(secs, 10))
		}
		utils.KindErrResponse(w, http.StatusTooManyRequests, kind, err)
	case auth.KindInvalidCredentials, auth.KindInvalidOrExpiredRefreshToken, auth.KindInvalidToken:
		utils.KindErrResponse(w, http.StatusUnauthorized, kind, err)
	case auth.KindAccountNotUsable:
		utils.KindErrResponse(w, http.StatusForbidden, kind, err)
	default:
		zap.L().Error("request failed", zap.String("op", op), zap.Error(err))
		sentry.CaptureError(err)
		utils.KindErrResponse(w, http.StatusInternalServerError, kind, hdl.ErrInternal)
	}
}
