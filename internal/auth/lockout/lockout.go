package lockout

import (
	"context"
	"time"

	"github.com/JMURv/auth-guard/internal/auth"
	"github.com/JMURv/auth-guard/internal/config"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

const (
	attemptsPrefix = "lockout:attempts:"
	lockPrefix     = "lockout:lock:"
)

type Store interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
	Put(ctx context.Context, key string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Guard counts failures per login identity regardless of the client address
// and blocks the identity for a fixed duration once the threshold is hit.
type Guard struct {
	store     Store
	enabled   bool
	threshold int64
	window    time.Duration
	duration  time.Duration
}

func New(store Store, conf config.LockoutConfig) *Guard {
	return &Guard{
		store:     store,
		enabled:   conf.Enabled,
		threshold: conf.Threshold,
		window:    conf.Window,
		duration:  conf.Duration,
	}
}

func identity(login string) string {
	return auth.HashKey(auth.NormalizeLogin(login))
}

// EnsureNotLocked fails with auth.ErrAccountLocked while a lock record is live.
func (g *Guard) EnsureNotLocked(ctx context.Context, login string) error {
	const op = "lockout.EnsureNotLocked.guard"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if !g.enabled {
		return nil
	}

	left, err := g.store.TTL(ctx, lockPrefix+identity(login))
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to read lock", zap.String("op", op), zap.Error(err))
		return err
	}

	if left > 0 {
		return &auth.RetryError{Err: auth.ErrAccountLocked, RetryAfter: left}
	}
	return nil
}

// RecordFailureAndMaybeLock reports whether this failure tripped the lock.
func (g *Guard) RecordFailureAndMaybeLock(ctx context.Context, login string) (bool, error) {
	const op = "lockout.RecordFailureAndMaybeLock.guard"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if !g.enabled {
		return false, nil
	}

	id := identity(login)
	cnt, err := g.store.Increment(ctx, attemptsPrefix+id, g.window)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to record failure", zap.String("op", op), zap.Error(err))
		return false, err
	}

	if cnt < g.threshold {
		return false, nil
	}

	if err = g.store.Put(ctx, lockPrefix+id, g.duration); err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to put lock", zap.String("op", op), zap.Error(err))
		return false, err
	}

	if err = g.store.Delete(ctx, attemptsPrefix+id); err != nil {
		zap.L().Error("failed to reset failures", zap.String("op", op), zap.Error(err))
		return true, err
	}

	zap.L().Warn(
		"login identity locked",
		zap.String("op", op),
		zap.String("identity", id),
		zap.Duration("duration", g.duration),
	)
	return true, nil
}

// ClearAttempts resets the failure counter. A live lock is left to run out.
func (g *Guard) ClearAttempts(ctx context.Context, login string) error {
	const op = "lockout.ClearAttempts.guard"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if err := g.store.Delete(ctx, attemptsPrefix+identity(login)); err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to clear failures", zap.String("op", op), zap.Error(err))
		return err
	}
	return nil
}
