package refresh

import (
	"context"
	"errors"
	"time"

	"github.com/JMURv/auth-guard/internal/auth"
	"github.com/JMURv/auth-guard/internal/config"
	md "github.com/JMURv/auth-guard/internal/models"
	"github.com/JMURv/auth-guard/internal/repo"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

type Repo interface {
	CreateToken(ctx context.Context, t *md.RefreshToken) error
	GetTokenByHash(ctx context.Context, hash string) (*md.RefreshToken, error)
	GetTokenByID(ctx context.Context, id uuid.UUID) (*md.RefreshToken, error)
	// RotateToken inserts next and links currentID to it in one transaction.
	// It returns repo.ErrConflict if currentID was already replaced and
	// repo.ErrNotFound if it is missing or revoked.
	RotateToken(ctx context.Context, currentID uuid.UUID, next *md.RefreshToken, usedAt time.Time) error
	RevokeToken(ctx context.Context, id uuid.UUID, at time.Time) error
	RevokeByDevice(ctx context.Context, userID uuid.UUID, deviceID string, at time.Time) (int64, error)
	RevokeAllTokens(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error)
	ListActiveTokens(ctx context.Context, userID uuid.UUID, now time.Time) ([]*md.RefreshToken, error)
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store owns the lifecycle of refresh tokens: issuance, rotation, chain
// walking for reuse detection and revocation. Only secret hashes are persisted.
type Store struct {
	repo        Repo
	idle        time.Duration
	absolute    time.Duration
	maxDepth    int
	secretBytes int
	now         func() time.Time
}

func New(r Repo, conf config.RefreshConfig, opts ...Option) *Store {
	s := &Store{
		repo:        r,
		idle:        conf.IdleWindow,
		absolute:    conf.AbsoluteWindow,
		maxDepth:    conf.MaxChainDepth,
		secretBytes: conf.SecretBytes,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxDepth <= 0 {
		s.maxDepth = 1024
	}
	return s
}

func (s *Store) newToken(userID uuid.UUID, d md.Device, now, absolute time.Time) (*md.RefreshToken, string, error) {
	secret, err := auth.NewSecret(s.secretBytes)
	if err != nil {
		return nil, "", err
	}

	idle := now.Add(s.idle)
	if idle.After(absolute) {
		idle = absolute
	}

	return &md.RefreshToken{
		ID:                uuid.New(),
		UserID:            userID,
		TokenHash:         auth.HashSecret(secret),
		DeviceID:          d.ID,
		IP:                d.IP,
		UA:                d.UA,
		IssuedAt:          now,
		IdleExpiresAt:     idle,
		AbsoluteExpiresAt: absolute,
	}, secret, nil
}

// Create starts a new chain for the device and returns the plaintext secret.
// The secret is not recoverable afterwards.
func (s *Store) Create(ctx context.Context, userID uuid.UUID, d md.Device) (*md.RefreshToken, string, error) {
	const op = "refresh.Create.store"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	now := s.now().UTC()
	t, secret, err := s.newToken(userID, d, now, now.Add(s.absolute))
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to generate secret", zap.String("op", op), zap.Error(err))
		return nil, "", err
	}

	if err = s.repo.CreateToken(ctx, t); err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error(
			"failed to create refresh token",
			zap.String("op", op),
			zap.String("uid", userID.String()),
			zap.Error(err),
		)
		return nil, "", err
	}

	return t, secret, nil
}

// LookupValid resolves a secret to its row. Replaced rows are returned as is,
// callers must treat them as reuse.
func (s *Store) LookupValid(ctx context.Context, secret string) (*md.RefreshToken, error) {
	const op = "refresh.LookupValid.store"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if secret == "" {
		return nil, ErrNotFound
	}

	t, err := s.repo.GetTokenByHash(ctx, auth.HashSecret(secret))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to get refresh token", zap.String("op", op), zap.Error(err))
		return nil, err
	}

	if t.Revoked() || t.Expired(s.now()) {
		return nil, ErrNotFound
	}
	return t, nil
}

// Rotate replaces the current head with a successor on the same device. The
// successor inherits the absolute deadline and gets a fresh idle window.
func (s *Store) Rotate(ctx context.Context, current *md.RefreshToken, d md.Device) (*md.RefreshToken, string, error) {
	const op = "refresh.Rotate.store"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	now := s.now().UTC()
	d.ID = current.DeviceID
	next, secret, err := s.newToken(current.UserID, d, now, current.AbsoluteExpiresAt)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to generate secret", zap.String("op", op), zap.Error(err))
		return nil, "", err
	}

	if err = s.repo.RotateToken(ctx, current.ID, next, now); err != nil {
		switch {
		case errors.Is(err, repo.ErrConflict):
			return nil, "", ErrAlreadyRotated
		case errors.Is(err, repo.ErrNotFound):
			return nil, "", ErrNotFound
		}
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error(
			"failed to rotate refresh token",
			zap.String("op", op),
			zap.String("id", current.ID.String()),
			zap.Error(err),
		)
		return nil, "", err
	}

	current.ReplacedBy = &next.ID
	current.LastUsedAt = &now
	return next, secret, nil
}

// ChainDevices walks replacement links from start and returns every device
// seen on the way. The walk stops at the head, on a cycle or at maxDepth.
func (s *Store) ChainDevices(ctx context.Context, start *md.RefreshToken) ([]string, error) {
	const op = "refresh.ChainDevices.store"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	seen := map[uuid.UUID]struct{}{start.ID: {}}
	devices := []string{start.DeviceID}
	known := map[string]struct{}{start.DeviceID: {}}

	cur := start
	for depth := 0; cur.ReplacedBy != nil && depth < s.maxDepth; depth++ {
		if _, ok := seen[*cur.ReplacedBy]; ok {
			zap.L().Warn(
				"refresh chain has a cycle",
				zap.String("op", op),
				zap.String("id", cur.ID.String()),
			)
			break
		}

		next, err := s.repo.GetTokenByID(ctx, *cur.ReplacedBy)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				break
			}
			span.SetTag(config.ErrorSpanTag, true)
			zap.L().Error("failed to walk refresh chain", zap.String("op", op), zap.Error(err))
			return nil, err
		}

		seen[next.ID] = struct{}{}
		if _, ok := known[next.DeviceID]; !ok {
			known[next.DeviceID] = struct{}{}
			devices = append(devices, next.DeviceID)
		}
		cur = next
	}

	return devices, nil
}

// RevokeChain revokes every token of the user on the device.
func (s *Store) RevokeChain(ctx context.Context, userID uuid.UUID, deviceID string) (int64, error) {
	const op = "refresh.RevokeChain.store"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	n, err := s.repo.RevokeByDevice(ctx, userID, deviceID, s.now().UTC())
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error(
			"failed to revoke device chain",
			zap.String("op", op),
			zap.String("uid", userID.String()),
			zap.String("device", deviceID),
			zap.Error(err),
		)
		return 0, err
	}
	return n, nil
}

// Revoke kills the token behind secret if it belongs to userID. Unknown,
// foreign and already revoked secrets are ignored.
func (s *Store) Revoke(ctx context.Context, userID uuid.UUID, secret string) error {
	const op = "refresh.Revoke.store"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	t, err := s.repo.GetTokenByHash(ctx, auth.HashSecret(secret))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to get refresh token", zap.String("op", op), zap.Error(err))
		return err
	}

	if t.UserID != userID {
		zap.L().Warn(
			"refusing to revoke foreign refresh token",
			zap.String("op", op),
			zap.String("uid", userID.String()),
		)
		return nil
	}
	if t.Revoked() {
		return nil
	}

	if err = s.repo.RevokeToken(ctx, t.ID, s.now().UTC()); err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to revoke refresh token", zap.String("op", op), zap.Error(err))
		return err
	}
	return nil
}

func (s *Store) RevokeAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	const op = "refresh.RevokeAll.store"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	n, err := s.repo.RevokeAllTokens(ctx, userID, s.now().UTC())
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error(
			"failed to revoke refresh tokens",
			zap.String("op", op),
			zap.String("uid", userID.String()),
			zap.Error(err),
		)
		return 0, err
	}
	return n, nil
}

// ListActive returns the live head of every device chain of the user.
func (s *Store) ListActive(ctx context.Context, userID uuid.UUID) ([]*md.RefreshToken, error) {
	const op = "refresh.ListActive.store"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := s.repo.ListActiveTokens(ctx, userID, s.now().UTC())
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to list refresh tokens", zap.String("op", op), zap.Error(err))
		return nil, err
	}
	return res, nil
}
