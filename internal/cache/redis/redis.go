package redis

import (
	"context"
	"errors"
	"time"

	"github.com/JMURv/auth-guard/internal/config"
	"github.com/go-redis/redis/v8"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

// incrScript increments a counter and starts its window on first use, in a
// single round trip so concurrent failures cannot lose the expiry.
var incrScript = redis.NewScript(`
local c = redis.call('INCR', KEYS[1])
if c == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return c
`)

type Redis struct {
	cli *redis.Client
}

func New(conf config.RedisConfig) *Redis {
	cli := redis.NewClient(
		&redis.Options{
			Addr:     conf.Addr,
			Password: conf.Pass,
			DB:       conf.DB,
		},
	)

	if err := cli.Ping(context.Background()).Err(); err != nil {
		zap.L().Fatal("failed to connect to Redis", zap.Error(err))
	}

	return &Redis{cli: cli}
}

func NewFromClient(cli *redis.Client) *Redis {
	return &Redis{cli: cli}
}

func (r *Redis) Close() error {
	return r.cli.Close()
}

func (r *Redis) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	const op = "cache.Increment.redis"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	n, err := incrScript.Run(ctx, r.cli, []string{key}, window.Milliseconds()).Int64()
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to increment counter", zap.String("op", op), zap.Error(err))
		return 0, err
	}
	return n, nil
}

func (r *Redis) Count(ctx context.Context, key string) (int64, error) {
	const op = "cache.Count.redis"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	n, err := r.cli.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to read counter", zap.String("op", op), zap.Error(err))
		return 0, err
	}
	return n, nil
}

func (r *Redis) TTL(ctx context.Context, key string) (time.Duration, error) {
	const op = "cache.TTL.redis"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	d, err := r.cli.PTTL(ctx, key).Result()
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to read ttl", zap.String("op", op), zap.Error(err))
		return 0, err
	}

	// -2 for a missing key, -1 for a key without expiry.
	if d < 0 {
		return 0, nil
	}
	return d, nil
}

func (r *Redis) Put(ctx context.Context, key string, ttl time.Duration) error {
	const op = "cache.Put.redis"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if err := r.cli.Set(ctx, key, 1, ttl).Err(); err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to set key", zap.String("op", op), zap.Error(err))
		return err
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	const op = "cache.Delete.redis"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if err := r.cli.Del(ctx, key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to delete key", zap.String("op", op), zap.Error(err))
		return err
	}
	return nil
}
