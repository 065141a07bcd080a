package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/JMURv/auth-guard/internal/auth"
	"github.com/JMURv/auth-guard/internal/config"
	md "github.com/JMURv/auth-guard/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

const revokedPrefix = "access-revoked:"

type Port interface {
	Issue(ctx context.Context, u *md.User) (string, int64, error)
	ParseClaims(ctx context.Context, tokenStr string) (Claims, error)
	Revoke(ctx context.Context, c Claims) error
	IsRevoked(ctx context.Context, c Claims) (bool, error)
}

// Denylist remembers revoked token ids until the tokens expire on their own.
type Denylist interface {
	Put(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}

type Claims struct {
	UID  uuid.UUID `json:"uid"`
	Role string    `json:"role"`
	jwt.RegisteredClaims
}

type Option func(*Core)

func WithClock(now func() time.Time) Option {
	return func(c *Core) {
		c.now = now
	}
}

type Core struct {
	secret   []byte
	issuer   string
	ttl      time.Duration
	denylist Denylist
	now      func() time.Time
}

func New(conf config.JWTConfig, denylist Denylist, opts ...Option) (*Core, error) {
	if conf.Secret == "" {
		return nil, ErrMissingSecret
	}

	c := &Core{
		secret:   []byte(conf.Secret),
		issuer:   conf.Issuer,
		ttl:      conf.AccessTTL,
		denylist: denylist,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue signs a short-lived access token and returns it with its lifetime in seconds.
func (c *Core) Issue(ctx context.Context, u *md.User) (string, int64, error) {
	const op = "auth.Issue.jwt"
	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	now := c.now()
	signed, err := jwt.NewWithClaims(
		jwt.SigningMethodHS256, &Claims{
			UID:  u.ID,
			Role: u.Role,
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.NewString(),
				Subject:   u.ID.String(),
				ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
				IssuedAt:  jwt.NewNumericDate(now),
				Issuer:    c.issuer,
			},
		},
	).SignedString(c.secret)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error(
			ErrWhileCreatingToken.Error(),
			zap.String("op", op),
			zap.Error(err),
		)
		return "", 0, ErrWhileCreatingToken
	}

	return signed, int64(c.ttl.Seconds()), nil
}

func (c *Core) ParseClaims(ctx context.Context, tokenStr string) (Claims, error) {
	const op = "auth.ParseClaims.jwt"
	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	claims := Claims{}
	token, err := jwt.ParseWithClaims(
		tokenStr, &claims, func(token *jwt.Token) (any, error) {
			if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, ErrUnexpectedSignMethod
			}

			return c.secret, nil
		},
		jwt.WithTimeFunc(c.now),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		zap.L().Debug(
			"failed to parse claims",
			zap.String("op", op),
			zap.Error(err),
		)
		return claims, auth.ErrInvalidToken
	}

	if !token.Valid || claims.ID == "" {
		return claims, auth.ErrInvalidToken
	}

	return claims, nil
}

// Revoke denylists the token id until the token expires.
func (c *Core) Revoke(ctx context.Context, claims Claims) error {
	const op = "auth.Revoke.jwt"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if claims.ID == "" || claims.ExpiresAt == nil {
		return auth.ErrInvalidToken
	}

	left := claims.ExpiresAt.Time.Sub(c.now())
	if left <= 0 {
		return nil
	}

	if err := c.denylist.Put(ctx, revokedPrefix+claims.ID, left); err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error(
			"failed to revoke access token",
			zap.String("op", op),
			zap.String("uid", claims.UID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (c *Core) IsRevoked(ctx context.Context, claims Claims) (bool, error) {
	const op = "auth.IsRevoked.jwt"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if claims.ID == "" {
		return false, errors.New("token has no id")
	}

	left, err := c.denylist.TTL(ctx, revokedPrefix+claims.ID)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to check access token", zap.String("op", op), zap.Error(err))
		return false, err
	}
	return left > 0, nil
}
