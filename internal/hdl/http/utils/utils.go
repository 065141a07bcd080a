package utils

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/JMURv/auth-guard/internal/config"
	"github.com/JMURv/auth-guard/internal/dto"
	"github.com/JMURv/auth-guard/internal/hdl"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var validate = validator.New()

type Response struct {
	Data any `json:"data"`
}

type ErrorsResponse struct {
	Errors []string `json:"errors"`
	Kind   string   `json:"kind,omitempty"`
}

func SuccessResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(&Response{Data: data}); err != nil {
		zap.L().Error("failed to encode response", zap.Error(err))
	}
}

func StatusResponse(w http.ResponseWriter, statusCode int) {
	w.WriteHeader(statusCode)
}

func ErrResponse(w http.ResponseWriter, statusCode int, errs ...error) {
	KindErrResponse(w, statusCode, "", errs...)
}

func KindErrResponse(w http.ResponseWriter, statusCode int, kind string, errs ...error) {
	res := &ErrorsResponse{
		Errors: make([]string, 0, len(errs)),
		Kind:   kind,
	}
	for _, err := range errs {
		res.Errors = append(res.Errors, err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		zap.L().Error("failed to encode response", zap.Error(err))
	}
}

// ParseAndValidate decodes the body into dst and runs struct validation. On
// failure the response is already written.
func ParseAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		zap.L().Debug("failed to decode request", zap.String("path", r.URL.Path), zap.Error(err))
		ErrResponse(w, http.StatusBadRequest, hdl.ErrDecodeRequest)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			errs := make([]error, 0, len(verrs))
			for _, v := range verrs {
				errs = append(errs, ruleError(v))
			}
			ErrResponse(w, http.StatusBadRequest, errs...)
			return false
		}
		ErrResponse(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func ruleError(v validator.FieldError) error {
	return errors.New(v.Field() + " failed on the " + v.Tag() + " rule")
}

func ParseDeviceByRequest(ctx context.Context) (dto.DeviceRequest, bool) {
	ip, ok := ctx.Value(config.IpKey).(string)
	if !ok || ip == "" {
		return dto.DeviceRequest{}, false
	}

	ua, ok := ctx.Value(config.UaKey).(string)
	if !ok {
		return dto.DeviceRequest{}, false
	}

	return dto.DeviceRequest{IP: ip, UA: ua}, true
}

func SetAuthCookies(w http.ResponseWriter, access, refresh string, accessTTL, refreshTTL time.Duration) {
	setCookie(w, config.AccessCookieName, access, int(accessTTL.Seconds()))
	setCookie(w, config.RefreshCookieName, refresh, int(refreshTTL.Seconds()))
}

func ClearAuthCookies(w http.ResponseWriter) {
	setCookie(w, config.AccessCookieName, "", -1)
	setCookie(w, config.RefreshCookieName, "", -1)
}

func setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(
		w, &http.Cookie{
			Name:     name,
			Value:    value,
			MaxAge:   maxAge,
			HttpOnly: true,
			Secure:   true,
			Path:     "/",
			SameSite: http.SameSiteStrictMode,
		},
	)
}
