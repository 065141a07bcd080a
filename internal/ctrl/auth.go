package ctrl

import (
	"context"
	"errors"

	"github.com/JMURv/auth-guard/internal/auth"
	"github.com/JMURv/auth-guard/internal/auth/jwt"
	"github.com/JMURv/auth-guard/internal/auth/refresh"
	"github.com/JMURv/auth-guard/internal/config"
	"github.com/JMURv/auth-guard/internal/dto"
	md "github.com/JMURv/auth-guard/internal/models"
	metrics "github.com/JMURv/auth-guard/internal/observability/metrics/prometheus"
	"github.com/JMURv/auth-guard/internal/repo"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

// Login checks the lockout first and the rate limit second, so a locked
// identity always gets the lockout answer. Failed verifications are counted
// by both guards before the error is returned.
func (c *Controller) Login(
	ctx context.Context,
	d *dto.DeviceRequest,
	req *dto.EmailAndPasswordRequest,
) (*dto.TokenPair, error) {
	const op = "auth.Login.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	login := auth.NormalizeLogin(req.Email)

	if err := c.lockout.EnsureNotLocked(ctx, login); err != nil {
		if errors.Is(err, auth.ErrAccountLocked) {
			metrics.IncSecurityEvent(metrics.EventAccountLocked)
		}
		return nil, err
	}

	if err := c.limiter.Check(ctx, login, d.IP); err != nil {
		if errors.Is(err, auth.ErrRateLimited) {
			metrics.IncSecurityEvent(metrics.EventRateLimited)
		}
		return nil, err
	}

	u, err := c.verifier.Verify(ctx, login, req.Password)
	if err != nil {
		metrics.IncSecurityEvent(metrics.EventLoginFailed)
		if ferr := c.recordFailure(ctx, login, d.IP); ferr != nil {
			span.SetTag(config.ErrorSpanTag, true)
			return nil, ferr
		}
		return nil, err
	}

	usable, err := c.policy.IsAccountUsable(ctx, u)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to check account", zap.String("op", op), zap.String("uid", u.ID.String()), zap.Error(err))
		return nil, err
	}
	if !usable {
		return nil, auth.ErrAccountNotUsable
	}

	if err = c.limiter.Clear(ctx, login, d.IP); err != nil {
		return nil, err
	}
	if err = c.lockout.ClearAttempts(ctx, login); err != nil {
		return nil, err
	}

	pair, err := c.issuePair(ctx, u, d)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		return nil, err
	}

	metrics.IncSecurityEvent(metrics.EventLoginSucceeded)
	return pair, nil
}

// recordFailure updates both guards even if one of them fails.
func (c *Controller) recordFailure(ctx context.Context, login, address string) error {
	const op = "auth.recordFailure.ctrl"

	rlErr := c.limiter.RecordFailure(ctx, login, address)
	locked, loErr := c.lockout.RecordFailureAndMaybeLock(ctx, login)
	if locked {
		metrics.IncSecurityEvent(metrics.EventLockoutTripped)
	}

	if err := errors.Join(rlErr, loErr); err != nil {
		zap.L().Error("failed to record login failure", zap.String("op", op), zap.Error(err))
		return err
	}
	return nil
}

func (c *Controller) issuePair(ctx context.Context, u *md.User, d *dto.DeviceRequest) (*dto.TokenPair, error) {
	access, expiresIn, err := c.au.Issue(ctx, u)
	if err != nil {
		return nil, err
	}

	_, secret, err := c.tokens.Create(ctx, u.ID, auth.GenerateDevice(u.ID, d))
	if err != nil {
		return nil, err
	}

	return &dto.TokenPair{
		Access:    access,
		Refresh:   secret,
		ExpiresIn: expiresIn,
	}, nil
}

// Refresh rotates a live refresh secret. Presenting a superseded secret is
// treated as theft: every device on its chain is revoked.
func (c *Controller) Refresh(
	ctx context.Context,
	d *dto.DeviceRequest,
	req *dto.RefreshRequest,
) (*dto.TokenPair, error) {
	const op = "auth.Refresh.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	cur, err := c.tokens.LookupValid(ctx, req.Refresh)
	if err != nil {
		if errors.Is(err, refresh.ErrNotFound) {
			return nil, auth.ErrInvalidOrExpiredRefreshToken
		}
		span.SetTag(config.ErrorSpanTag, true)
		return nil, err
	}

	if cur.Replaced() {
		return nil, c.handleReuse(ctx, cur, d)
	}

	u, err := c.users.GetUserByID(ctx, cur.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, auth.ErrInvalidOrExpiredRefreshToken
		}
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to get user", zap.String("op", op), zap.String("uid", cur.UserID.String()), zap.Error(err))
		return nil, err
	}

	usable, err := c.policy.IsAccountUsable(ctx, u)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		return nil, err
	}
	if !usable {
		return nil, auth.ErrAccountNotUsable
	}

	access, expiresIn, err := c.au.Issue(ctx, u)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		return nil, err
	}

	_, secret, err := c.tokens.Rotate(ctx, cur, md.Device{IP: d.IP, UA: d.UA})
	if err != nil {
		switch {
		case errors.Is(err, refresh.ErrAlreadyRotated):
			return nil, c.handleReuse(ctx, cur, d)
		case errors.Is(err, refresh.ErrNotFound):
			return nil, auth.ErrInvalidOrExpiredRefreshToken
		}
		span.SetTag(config.ErrorSpanTag, true)
		return nil, err
	}

	metrics.IncSecurityEvent(metrics.EventRefreshed)
	return &dto.TokenPair{
		Access:    access,
		Refresh:   secret,
		ExpiresIn: expiresIn,
	}, nil
}

// handleReuse revokes the device chains reachable from the reused token and
// always answers with the same error an expired secret would get.
func (c *Controller) handleReuse(ctx context.Context, t *md.RefreshToken, d *dto.DeviceRequest) error {
	const op = "auth.handleReuse.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	metrics.IncSecurityEvent(metrics.EventReuseDetected)

	devices, err := c.tokens.ChainDevices(ctx, t)
	if err != nil {
		zap.L().Error("failed to walk refresh chain", zap.String("op", op), zap.Error(err))
		devices = []string{t.DeviceID}
	}

	var errs []error
	var revoked int64
	for _, dev := range devices {
		n, err := c.tokens.RevokeChain(ctx, t.UserID, dev)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		revoked += n
	}

	zap.L().Warn(
		"refresh token reuse detected",
		zap.String("op", op),
		zap.String("uid", t.UserID.String()),
		zap.String("token", t.ID.String()),
		zap.Strings("devices", devices),
		zap.Int64("revoked", revoked),
		zap.String("ip", d.IP),
	)

	if c.archive != nil {
		inc := &md.ReuseIncident{
			UserID:     t.UserID,
			TokenID:    t.ID,
			DeviceIDs:  devices,
			IP:         d.IP,
			UA:         d.UA,
			DetectedAt: c.now().UTC(),
		}
		if err := c.archive.ArchiveIncident(ctx, inc); err != nil {
			zap.L().Error("failed to archive reuse incident", zap.String("op", op), zap.Error(err))
		}
	}

	if err = errors.Join(errs...); err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		return err
	}
	return auth.ReuseDetected()
}

// Logout revokes the access token and either the given refresh secret or,
// without one, every refresh token of the user. Repeating it is harmless.
func (c *Controller) Logout(ctx context.Context, uid uuid.UUID, claims jwt.Claims, secret string) error {
	const op = "auth.Logout.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if claims.ID != "" {
		if err := c.au.Revoke(ctx, claims); err != nil {
			span.SetTag(config.ErrorSpanTag, true)
			return err
		}
	}

	if secret != "" {
		if err := c.tokens.Revoke(ctx, uid, secret); err != nil {
			span.SetTag(config.ErrorSpanTag, true)
			return err
		}
	} else if _, err := c.tokens.RevokeAll(ctx, uid); err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		return err
	}

	metrics.IncSecurityEvent(metrics.EventLogout)
	return nil
}
