package ctrl

import (
	"context"
	"errors"

	"github.com/JMURv/auth-guard/internal/auth"
	md "github.com/JMURv/auth-guard/internal/models"
	"github.com/JMURv/auth-guard/internal/repo"
	"go.uber.org/zap"
)

// EnsureAdmin creates an active account with the given role unless one with
// the same email already exists. Empty credentials disable it.
func (c *Controller) EnsureAdmin(ctx context.Context, email, password, role string) error {
	const op = "auth.EnsureAdmin.ctrl"

	if email == "" || password == "" {
		return nil
	}

	email = auth.NormalizeLogin(email)
	_, err := c.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	id, err := c.users.CreateUser(ctx, &md.User{
		Email:           email,
		Password:        hash,
		Role:            role,
		IsActive:        true,
		IsEmailVerified: true,
	})
	if err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil
		}
		return err
	}

	zap.L().Info("admin account created", zap.String("op", op), zap.String("uid", id.String()))
	return nil
}
