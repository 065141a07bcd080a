package ratelimit

import (
	"context"
	"time"

	"github.com/JMURv/auth-guard/internal/auth"
	"github.com/JMURv/auth-guard/internal/config"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

const keyPrefix = "ratelimit:"

// Store is a keyed counter with per-key expiry. Increment must be atomic and
// must only start the window when the key is absent.
type Store interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
	Count(ctx context.Context, key string) (int64, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
	Delete(ctx context.Context, key string) error
}

// Guard counts failed logins per (login, address) pair inside a fixed window.
type Guard struct {
	store       Store
	enabled     bool
	maxAttempts int64
	window      time.Duration
}

func New(store Store, conf config.RateLimitConfig) *Guard {
	return &Guard{
		store:       store,
		enabled:     conf.Enabled,
		maxAttempts: conf.MaxAttempts,
		window:      conf.Window,
	}
}

func key(login, address string) string {
	return keyPrefix + auth.HashKey(auth.NormalizeLogin(login), address)
}

func (g *Guard) TooManyAttempts(ctx context.Context, login, address string) (bool, error) {
	const op = "ratelimit.TooManyAttempts.guard"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if !g.enabled {
		return false, nil
	}

	cnt, err := g.store.Count(ctx, key(login, address))
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to read attempts", zap.String("op", op), zap.Error(err))
		return false, err
	}
	return cnt >= g.maxAttempts, nil
}

func (g *Guard) RecordFailure(ctx context.Context, login, address string) error {
	const op = "ratelimit.RecordFailure.guard"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if !g.enabled {
		return nil
	}

	if _, err := g.store.Increment(ctx, key(login, address), g.window); err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to record attempt", zap.String("op", op), zap.Error(err))
		return err
	}
	return nil
}

func (g *Guard) Clear(ctx context.Context, login, address string) error {
	const op = "ratelimit.Clear.guard"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if err := g.store.Delete(ctx, key(login, address)); err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to clear attempts", zap.String("op", op), zap.Error(err))
		return err
	}
	return nil
}

// RetryAfter is the time left in the current window.
func (g *Guard) RetryAfter(ctx context.Context, login, address string) (time.Duration, error) {
	return g.store.TTL(ctx, key(login, address))
}

func (g *Guard) RetryAfterSeconds(ctx context.Context, login, address string) (int64, error) {
	d, err := g.RetryAfter(ctx, login, address)
	if err != nil {
		return 0, err
	}
	return (&auth.RetryError{RetryAfter: d}).Seconds(), nil
}

// Check rejects the pair with auth.ErrRateLimited once the window is full.
func (g *Guard) Check(ctx context.Context, login, address string) error {
	limited, err := g.TooManyAttempts(ctx, login, address)
	if err != nil || !limited {
		return err
	}

	d, err := g.RetryAfter(ctx, login, address)
	if err != nil {
		return err
	}
	// window lapsed between the two reads
	if d <= 0 {
		d = time.Second
	}
	return &auth.RetryError{Err: auth.ErrRateLimited, RetryAfter: d}
}
