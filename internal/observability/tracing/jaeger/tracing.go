package jaeger

import (
	"context"

	cfg "github.com/JMURv/auth-guard/internal/config"
	"github.com/opentracing/opentracing-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"go.uber.org/zap"
)

func newConfig(serviceName string, conf cfg.JaegerConfig) jaegercfg.Configuration {
	return jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  conf.Sampler.Type,
			Param: conf.Sampler.Param,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans:           conf.Reporter.LogSpans,
			LocalAgentHostPort: conf.Reporter.LocalAgentHostPort,
		},
	}
}

// Start installs the global tracer and keeps it until ctx is done.
func Start(ctx context.Context, serviceName string, conf cfg.JaegerConfig) {
	tracerCfg := newConfig(serviceName, conf)

	tracer, closer, err := tracerCfg.NewTracer()
	if err != nil {
		zap.L().Fatal("Error initializing Jaeger tracer", zap.Error(err))
	}

	opentracing.SetGlobalTracer(tracer)
	zap.L().Info("Jaeger has been started")
	<-ctx.Done()

	if err = closer.Close(); err != nil {
		zap.L().Debug("Error shutting down Jaeger", zap.Error(err))
	}
	zap.L().Info("Jaeger has been stopped")
}
