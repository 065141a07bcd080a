package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	_ "github.com/JMURv/auth-guard/api/rest/v1"
	"github.com/JMURv/auth-guard/internal/auth/captcha"
	"github.com/JMURv/auth-guard/internal/auth/jwt"
	"github.com/JMURv/auth-guard/internal/config"
	"github.com/JMURv/auth-guard/internal/ctrl"
	mid "github.com/JMURv/auth-guard/internal/hdl/http/middleware"
	"github.com/JMURv/auth-guard/internal/hdl/http/utils"
	"github.com/JMURv/auth-guard/internal/observability/sentry"
	chi "github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type Handler struct {
	Router   *chi.Mux
	au       jwt.Port
	ctrl     ctrl.AppCtrl
	captcha  captcha.Port
	throttle *mid.Throttle
	conf     config.AuthConfig
	srv      *http.Server
}

func New(au jwt.Port, ctrl ctrl.AppCtrl, captcha captcha.Port, conf config.AuthConfig) *Handler {
	h := &Handler{
		Router:   chi.NewRouter(),
		au:       au,
		ctrl:     ctrl,
		captcha:  captcha,
		throttle: mid.NewThrottle(conf.Throttle),
		conf:     conf,
	}

	h.Router.Use(
		mid.Logger(zap.L()),
		middleware.StripSlashes,
		middleware.RequestID,
	)
	if conf.TrustProxy {
		h.Router.Use(middleware.RealIP)
	}
	h.Router.Use(
		sentry.Recover,
		mid.Prometheus,
		mid.OT,
	)

	h.RegisterRoutes()
	h.Router.Get("/swagger/*", httpSwagger.WrapHandler)
	h.Router.Get(
		"/health", func(w http.ResponseWriter, r *http.Request) {
			utils.SuccessResponse(w, http.StatusOK, "OK")
		},
	)
	return h
}

func (h *Handler) Start(port int) {
	h.srv = &http.Server{
		Handler:      h.Router,
		Addr:         fmt.Sprintf(":%v", port),
		WriteTimeout: config.DefaultRequestTimeout,
		ReadTimeout:  config.DefaultRequestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info(
		"Starting HTTP server",
		zap.String("addr", h.srv.Addr),
	)

	err := h.srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		zap.L().Error("Server error", zap.Error(err))
	}
}

func (h *Handler) Close(ctx context.Context) error {
	if h.srv == nil {
		return nil
	}
	return h.srv.Shutdown(ctx)
}
