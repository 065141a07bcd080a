package prometheus

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/JMURv/auth-guard/internal/config"
	pm "github.com/grpc-ecosystem/go-grpc-middleware/providers/prometheus"
	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uber/jaeger-client-go"
	"go.uber.org/zap"
)

// Security events counted by the authentication flow.
const (
	EventLoginSucceeded = "login_succeeded"
	EventLoginFailed    = "login_failed"
	EventRateLimited    = "rate_limited"
	EventAccountLocked  = "account_locked"
	EventLockoutTripped = "lockout_tripped"
	EventRefreshed      = "refreshed"
	EventReuseDetected  = "reuse_detected"
	EventLogout         = "logout"
)

var SrvMetrics = pm.NewServerMetrics(
	pm.WithServerHandlingTimeHistogram(
		pm.WithHistogramBuckets([]float64{0.001, 0.01, 0.1, 0.3, 0.6, 1, 3, 6, 9, 20, 30, 60, 90, 120}),
	),
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of handled requests",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"op", "status"},
)

var securityEvents = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "auth_security_events_total",
		Help: "Authentication security events",
	},
	[]string{"event"},
)

var registry = prometheus.NewRegistry()

func init() {
	registry.MustRegister(SrvMetrics, requestDuration, securityEvents)
}

func ObserveRequest(d time.Duration, status int, op string) {
	requestDuration.WithLabelValues(op, strconv.Itoa(status)).Observe(d.Seconds())
}

func IncSecurityEvent(event string) {
	securityEvents.WithLabelValues(event).Inc()
}

// Exemplar attaches the current Jaeger trace id to gRPC histograms.
func Exemplar(ctx context.Context) prometheus.Labels {
	span := opentracing.SpanFromContext(ctx)
	if span == nil {
		return nil
	}
	if sc, ok := span.Context().(jaeger.SpanContext); ok {
		return prometheus.Labels{"traceID": sc.TraceID().String()}
	}
	return nil
}

type Metrics struct {
	srv *http.Server
}

func New(port int) *Metrics {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{EnableOpenMetrics: true}))

	return &Metrics{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%v", port),
			Handler:           mux,
			ReadHeaderTimeout: config.DefaultRequestTimeout,
		},
	}
}

// Start serves /metrics until ctx is done.
func (m *Metrics) Start(ctx context.Context) {
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), config.DefaultShutdownTimeout)
		defer cancel()
		if err := m.srv.Shutdown(sctx); err != nil {
			zap.L().Warn("failed to shutdown metrics server", zap.Error(err))
		}
	}()

	zap.L().Info("Starting metrics server", zap.String("addr", m.srv.Addr))
	if err := m.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zap.L().Error("metrics server failed", zap.Error(err))
	}
}
