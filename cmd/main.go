package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/JMURv/auth-guard/internal/auth"
	"github.com/JMURv/auth-guard/internal/auth/captcha"
	"github.com/JMURv/auth-guard/internal/auth/jwt"
	"github.com/JMURv/auth-guard/internal/auth/lockout"
	"github.com/JMURv/auth-guard/internal/auth/ratelimit"
	"github.com/JMURv/auth-guard/internal/auth/refresh"
	memcache "github.com/JMURv/auth-guard/internal/cache/memory"
	"github.com/JMURv/auth-guard/internal/cache/redis"
	"github.com/JMURv/auth-guard/internal/config"
	"github.com/JMURv/auth-guard/internal/ctrl"
	"github.com/JMURv/auth-guard/internal/hdl/grpc"
	"github.com/JMURv/auth-guard/internal/hdl/http"
	"github.com/JMURv/auth-guard/internal/observability/metrics/prometheus"
	"github.com/JMURv/auth-guard/internal/observability/sentry"
	"github.com/JMURv/auth-guard/internal/observability/tracing/jaeger"
	"github.com/JMURv/auth-guard/internal/repo/db"
	memrepo "github.com/JMURv/auth-guard/internal/repo/memory"
	"github.com/JMURv/auth-guard/internal/repo/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const configPath = ".env"

const release = "auth-guard@1.0.0"

type store interface {
	ctrl.UserRepo
	refresh.Repo
	ActivateUser(ctx context.Context, id uuid.UUID) error
	Close(ctx context.Context) error
}

type cache interface {
	ratelimit.Store
	lockout.Store
	jwt.Denylist
	Close() error
}

func mustRegisterLogger(mode string) {
	switch mode {
	case "prod":
		zap.ReplaceGlobals(zap.Must(zap.NewProduction()))
	case "dev":
		zap.ReplaceGlobals(zap.Must(zap.NewDevelopment()))
	}
}

func mustStore(conf config.Config) store {
	switch conf.Storage {
	case "memory":
		zap.L().Warn("using in-memory storage, data is lost on restart")
		return memrepo.New()
	default:
		return db.New(conf.DB)
	}
}

func mustCache(conf config.Config) cache {
	switch conf.Cache {
	case "memory":
		zap.L().Warn("using in-memory cache, guards are not shared between instances")
		return memcache.New()
	default:
		return redis.New(conf.Redis)
	}
}

func main() {
	defer func() {
		if err := recover(); err != nil {
			zap.L().Panic("panic occurred", zap.Any("error", err))
			os.Exit(1)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conf := config.MustLoad(configPath)
	mustRegisterLogger(conf.Server.Mode)

	if err := sentry.Init(conf.Sentry, release); err != nil {
		zap.L().Warn("failed to init sentry", zap.Error(err))
	}
	defer sentry.Flush()

	go prometheus.New(conf.Server.Port + 5).Start(ctx)
	go jaeger.Start(ctx, conf.ServiceName, conf.Jaeger)

	st := mustStore(conf)
	kv := mustCache(conf)

	au, err := jwt.New(conf.Auth.JWT, kv)
	if err != nil {
		zap.L().Fatal("failed to init token issuer", zap.Error(err))
	}

	opts := make([]ctrl.Option, 0, 1)
	if conf.S3.Enabled {
		archive, err := s3.New(conf.S3)
		if err != nil {
			zap.L().Fatal("failed to init incident archive", zap.Error(err))
		}
		if err = archive.EnsureBucket(ctx, conf.S3.Location); err != nil {
			zap.L().Fatal("failed to ensure incident bucket", zap.Error(err))
		}
		opts = append(opts, ctrl.WithArchive(archive))
	}

	svc := ctrl.New(
		au,
		auth.NewPasswordVerifier(st),
		auth.NewRolePolicy(conf.Auth.PrivilegedRoles, st),
		st,
		ratelimit.New(kv, conf.Auth.RateLimit),
		lockout.New(kv, conf.Auth.Lockout),
		refresh.New(st, conf.Auth.Refresh),
		opts...,
	)

	if len(conf.Auth.PrivilegedRoles) > 0 {
		if err = svc.EnsureAdmin(ctx, conf.Admin.Email, conf.Admin.Password, conf.Auth.PrivilegedRoles[0]); err != nil {
			zap.L().Fatal("failed to bootstrap admin", zap.Error(err))
		}
	}

	hh := http.New(au, svc, captcha.New(conf.Auth.Captcha), conf.Auth)
	gh := grpc.New(conf.ServiceName, au, svc, conf.Auth.TrustProxy)

	zap.L().Info(
		fmt.Sprintf(
			"Starting server on %v://%v:%v",
			conf.Server.Scheme,
			conf.Server.Domain,
			conf.Server.Port,
		),
	)
	go hh.Start(conf.Server.Port)
	go gh.Start(conf.Server.Port + 1)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-c

	zap.L().Info("Shutting down gracefully...")
	sctx, scancel := context.WithTimeout(context.Background(), config.DefaultShutdownTimeout)
	defer scancel()

	if err = hh.Close(sctx); err != nil {
		zap.L().Warn("Error closing HTTP handler", zap.Error(err))
	}

	if err = gh.Close(); err != nil {
		zap.L().Warn("Error closing gRPC handler", zap.Error(err))
	}

	if err = kv.Close(); err != nil {
		zap.L().Warn("Failed to close cache", zap.Error(err))
	}

	if err = st.Close(sctx); err != nil {
		zap.L().Warn("Error closing repository", zap.Error(err))
	}
}
