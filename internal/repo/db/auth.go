package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/JMURv/auth-guard/internal/config"
	md "github.com/JMURv/auth-guard/internal/models"
	"github.com/JMURv/auth-guard/internal/repo"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

func (r *Repository) CreateToken(ctx context.Context, t *md.RefreshToken) error {
	const op = "auth.CreateToken.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	_, err := r.conn.ExecContext(
		ctx,
		createTokenQ,
		t.ID,
		t.UserID,
		t.TokenHash,
		t.DeviceID,
		t.IP,
		t.UA,
		t.IssuedAt,
		t.IdleExpiresAt,
		t.AbsoluteExpiresAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repo.ErrAlreadyExists
		}
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error(
			"failed to create token",
			zap.String("op", op),
			zap.String("uid", t.UserID.String()),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (r *Repository) GetTokenByHash(ctx context.Context, hash string) (*md.RefreshToken, error) {
	const op = "auth.GetTokenByHash.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	return r.getToken(ctx, op, getTokenByHashQ, hash)
}

func (r *Repository) GetTokenByID(ctx context.Context, id uuid.UUID) (*md.RefreshToken, error) {
	const op = "auth.GetTokenByID.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	return r.getToken(ctx, op, getTokenByIDQ, id)
}

func (r *Repository) getToken(ctx context.Context, op, q string, arg any) (*md.RefreshToken, error) {
	res := &md.RefreshToken{}
	if err := r.conn.GetContext(ctx, res, q, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		zap.L().Error("failed to get token", zap.String("op", op), zap.Error(err))
		return nil, err
	}
	return res, nil
}

// RotateToken locks the current row, checks it is still the head of its
// chain, inserts the successor and links both, all in one transaction.
func (r *Repository) RotateToken(ctx context.Context, currentID uuid.UUID, next *md.RefreshToken, usedAt time.Time) error {
	const op = "auth.RotateToken.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	tx, err := r.conn.BeginTxx(ctx, nil)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to begin transaction", zap.String("op", op), zap.Error(err))
		return err
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			zap.L().Error("failed to rollback transaction", zap.String("op", op), zap.Error(err))
		}
	}()

	var (
		replacedBy *uuid.UUID
		revokedAt  *time.Time
	)
	err = tx.QueryRowContext(ctx, lockTokenQ, currentID).Scan(&replacedBy, &revokedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repo.ErrNotFound
		}
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to lock token", zap.String("op", op), zap.Error(err))
		return err
	}

	if revokedAt != nil {
		return repo.ErrNotFound
	}
	if replacedBy != nil {
		return repo.ErrConflict
	}

	_, err = tx.ExecContext(
		ctx,
		createTokenQ,
		next.ID,
		next.UserID,
		next.TokenHash,
		next.DeviceID,
		next.IP,
		next.UA,
		next.IssuedAt,
		next.IdleExpiresAt,
		next.AbsoluteExpiresAt,
	)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to insert successor", zap.String("op", op), zap.Error(err))
		return err
	}

	if _, err = tx.ExecContext(ctx, linkTokenQ, next.ID, usedAt, currentID); err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to link successor", zap.String("op", op), zap.Error(err))
		return err
	}

	if err = tx.Commit(); err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to commit rotation", zap.String("op", op), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) RevokeToken(ctx context.Context, id uuid.UUID, at time.Time) error {
	const op = "auth.RevokeToken.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if _, err := r.conn.ExecContext(ctx, revokeTokenQ, at, id); err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to revoke token", zap.String("op", op), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) RevokeByDevice(ctx context.Context, userID uuid.UUID, deviceID string, at time.Time) (int64, error) {
	const op = "auth.RevokeByDevice.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	return r.revoke(ctx, op, revokeByDeviceQ, at, userID, deviceID)
}

func (r *Repository) RevokeAllTokens(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	const op = "auth.RevokeAllTokens.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	return r.revoke(ctx, op, revokeAllTokensQ, at, userID)
}

func (r *Repository) revoke(ctx context.Context, op, q string, args ...any) (int64, error) {
	res, err := r.conn.ExecContext(ctx, q, args...)
	if err != nil {
		zap.L().Error("failed to revoke tokens", zap.String("op", op), zap.Error(err))
		return 0, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		zap.L().Error("failed to get affected rows", zap.String("op", op), zap.Error(err))
		return 0, err
	}
	return n, nil
}

func (r *Repository) ListActiveTokens(ctx context.Context, userID uuid.UUID, now time.Time) ([]*md.RefreshToken, error) {
	const op = "auth.ListActiveTokens.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	q, args, err := buildActiveTokensQuery(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	res := make([]*md.RefreshToken, 0)
	if err = r.conn.SelectContext(ctx, &res, q, args...); err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to list tokens", zap.String("op", op), zap.Error(err))
		return nil, err
	}
	return res, nil
}
