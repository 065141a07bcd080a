package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/JMURv/auth-guard/internal/config"
	md "github.com/JMURv/auth-guard/internal/models"
	"github.com/JMURv/auth-guard/internal/repo"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (*md.User, error) {
	const op = "users.GetUserByID.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := &md.User{}
	err := r.conn.GetContext(ctx, res, userGetByIDQ, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to get user", zap.String("op", op), zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}

	return res, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*md.User, error) {
	const op = "users.GetUserByEmail.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := &md.User{}
	err := r.conn.GetContext(ctx, res, userGetByEmailQ, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to get user", zap.String("op", op), zap.Error(err))
		return nil, err
	}

	return res, nil
}

func (r *Repository) CreateUser(ctx context.Context, u *md.User) (uuid.UUID, error) {
	const op = "users.CreateUser.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	var id uuid.UUID
	err := r.conn.QueryRowContext(
		ctx,
		userCreateQ,
		u.Email,
		u.Password,
		u.Role,
		u.IsActive,
		u.IsEmailVerified,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, repo.ErrAlreadyExists
		}
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to create user", zap.String("op", op), zap.Error(err))
		return uuid.Nil, err
	}

	return id, nil
}

func (r *Repository) ActivateUser(ctx context.Context, id uuid.UUID) error {
	const op = "users.ActivateUser.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	return r.updateUser(ctx, op, userActivateQ, id)
}

func (r *Repository) SetUserActive(ctx context.Context, id uuid.UUID, active bool) error {
	const op = "users.SetUserActive.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	return r.updateUser(ctx, op, userSetActiveQ, active, id)
}

func (r *Repository) updateUser(ctx context.Context, op, q string, args ...any) error {
	res, err := r.conn.ExecContext(ctx, q, args...)
	if err != nil {
		zap.L().Error("failed to update user", zap.String("op", op), zap.Error(err))
		return err
	}

	aff, err := res.RowsAffected()
	if err != nil {
		zap.L().Error("failed to get affected rows", zap.String("op", op), zap.Error(err))
		return err
	}

	if aff == 0 {
		return repo.ErrNotFound
	}
	return nil
}
