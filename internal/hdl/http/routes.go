package http

import (
	mid "github.com/JMURv/auth-guard/internal/hdl/http/middleware"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) RegisterRoutes() {
	h.Router.Route(
		"/auth", func(r chi.Router) {
			r.Use(h.throttle.Handler)
			r.With(mid.Device).Post("/jwt", h.authenticate)
			r.With(mid.Device).Post("/jwt/refresh", h.refresh)

			r.Group(
				func(r chi.Router) {
					r.Use(mid.Auth(h.au))
					r.Post("/logout", h.logout)
					r.Get("/sessions", h.listSessions)
					r.Delete("/sessions/{device}", h.revokeSession)
				},
			)
		},
	)
}
