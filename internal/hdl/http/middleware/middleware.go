package middleware

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/JMURv/auth-guard/internal/auth"
	"github.com/JMURv/auth-guard/internal/auth/jwt"
	"github.com/JMURv/auth-guard/internal/config"
	"github.com/JMURv/auth-guard/internal/hdl"
	"github.com/JMURv/auth-guard/internal/hdl/http/utils"
	metrics "github.com/JMURv/auth-guard/internal/observability/metrics/prometheus"
	"github.com/go-chi/chi/v5"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

// Auth accepts the access token from the access cookie or a bearer header
// and rejects revoked tokens.
func Auth(au jwt.Port) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				token := accessToken(r)
				if token == "" {
					utils.KindErrResponse(w, http.StatusUnauthorized, auth.KindInvalidToken, hdl.ErrMissingToken)
					return
				}

				claims, err := au.ParseClaims(r.Context(), token)
				if err != nil {
					utils.KindErrResponse(w, http.StatusUnauthorized, auth.KindInvalidToken, auth.ErrInvalidToken)
					return
				}

				revoked, err := au.IsRevoked(r.Context(), claims)
				if err != nil {
					zap.L().Error("failed to check access token", zap.String("jti", claims.ID), zap.Error(err))
					utils.KindErrResponse(w, http.StatusInternalServerError, auth.KindInternal, hdl.ErrInternal)
					return
				}
				if revoked {
					utils.KindErrResponse(w, http.StatusUnauthorized, auth.KindInvalidToken, auth.ErrTokenRevoked)
					return
				}

				ctx := context.WithValue(r.Context(), config.UidKey, claims.UID)
				ctx = context.WithValue(ctx, config.ClaimsKey, claims)
				next.ServeHTTP(w, r.WithContext(ctx))
			},
		)
	}
}

func accessToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}

	c, err := r.Cookie(config.AccessCookieName)
	if err != nil {
		if !errors.Is(err, http.ErrNoCookie) {
			zap.L().Debug("failed to get access cookie", zap.Error(err))
		}
		return ""
	}
	return c.Value
}

// Device stores the client address and user agent for the handlers. The
// address is RemoteAddr, rewritten by RealIP only when a trusted proxy is configured.
func Device(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), config.IpKey, ClientIP(r))
			ctx = context.WithValue(ctx, config.UaKey, r.UserAgent())
			next.ServeHTTP(w, r.WithContext(ctx))
		},
	)
}

func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type LoggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func NewLoggingResponseWriter(w http.ResponseWriter) *LoggingResponseWriter {
	return &LoggingResponseWriter{w, http.StatusOK}
}

func (lrw *LoggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			s := time.Now()
			lrw := NewLoggingResponseWriter(w)
			next.ServeHTTP(lrw, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				path = rctx.RoutePattern()
			}
			metrics.ObserveRequest(time.Since(s), lrw.statusCode, fmt.Sprintf("%s %s", r.Method, path))
		},
	)
}

func Logger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				start := time.Now()
				lrw := NewLoggingResponseWriter(w)
				logger.Debug(
					"-->",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote", r.RemoteAddr),
				)

				next.ServeHTTP(lrw, r)

				logger.Info(
					"<--",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", lrw.statusCode),
					zap.Duration("duration", time.Since(start)),
					zap.String("remote", r.RemoteAddr),
				)
			},
		)
	}
}

func OT(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			span, ctx := opentracing.StartSpanFromContext(r.Context(), fmt.Sprintf("%s %s", r.Method, r.URL.Path))
			defer span.Finish()

			next.ServeHTTP(w, r.WithContext(ctx))
		},
	)
}
