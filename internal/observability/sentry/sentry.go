package sentry

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/JMURv/auth-guard/internal/config"
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const flushTimeout = 2 * time.Second

// Init configures the global client. An empty DSN leaves reporting disabled.
func Init(conf config.SentryConfig, release string) error {
	if conf.DSN == "" {
		return nil
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              conf.DSN,
		Environment:      conf.Environment,
		Release:          release,
		AttachStacktrace: true,
	})
}

func Flush() {
	sentry.Flush(flushTimeout)
}

// CaptureError reports an infrastructure failure.
func CaptureError(err error) {
	if err == nil {
		return
	}
	sentry.CaptureException(err)
}

func capturePanic(rec any, tags map[string]string) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		scope.SetExtra("panic", rec)
		scope.SetExtra("stack", string(debug.Stack()))
		sentry.CaptureMessage(fmt.Sprintf("panic: %v", rec))
	})
}

// Recover turns handler panics into a 500 and reports them.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				capturePanic(rec, map[string]string{"method": r.Method, "path": r.URL.Path})
				zap.L().Error(
					"panic recovered",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"errors":["internal error"],"kind":"internal"}`))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func RecoverUnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (res any, err error) {
		defer func() {
			if rec := recover(); rec != nil {
				capturePanic(rec, map[string]string{"method": info.FullMethod})
				zap.L().Error("panic recovered", zap.String("method", info.FullMethod), zap.Any("panic", rec))
				res, err = nil, status.Error(codes.Internal, "internal error")
			}
		}()

		return handler(ctx, req)
	}
}
