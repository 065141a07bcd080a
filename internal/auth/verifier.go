package auth

import (
	"context"
	"errors"
	"sync"

	md "github.com/JMURv/auth-guard/internal/models"
	"github.com/JMURv/auth-guard/internal/repo"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type userByEmail interface {
	GetUserByEmail(ctx context.Context, email string) (*md.User, error)
}

// PasswordVerifier checks a login and password against the user store.
type PasswordVerifier struct {
	users userByEmail
}

func NewPasswordVerifier(users userByEmail) *PasswordVerifier {
	return &PasswordVerifier{users: users}
}

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// burnCompare spends the same bcrypt work as a real comparison so unknown
// logins cannot be told apart by response time.
func burnCompare(pswd string) {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(pswd))
}

func (v *PasswordVerifier) Verify(ctx context.Context, login, password string) (*md.User, error) {
	const op = "auth.Verify.verifier"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	u, err := v.users.GetUserByEmail(ctx, login)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			burnCompare(password)
			return nil, ErrInvalidCredentials
		}

		zap.L().Error("failed to load user", zap.String("op", op), zap.Error(err))
		return nil, err
	}

	if err = ComparePasswords([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}
