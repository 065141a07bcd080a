package ctrl

import (
	"context"
	"time"

	"github.com/JMURv/auth-guard/internal/auth/jwt"
	"github.com/JMURv/auth-guard/internal/dto"
	md "github.com/JMURv/auth-guard/internal/models"
	"github.com/google/uuid"
)

type AppCtrl interface {
	Login(ctx context.Context, d *dto.DeviceRequest, req *dto.EmailAndPasswordRequest) (*dto.TokenPair, error)
	Refresh(ctx context.Context, d *dto.DeviceRequest, req *dto.RefreshRequest) (*dto.TokenPair, error)
	Logout(ctx context.Context, uid uuid.UUID, claims jwt.Claims, refresh string) error
	ListSessions(ctx context.Context, uid uuid.UUID) ([]dto.SessionResponse, error)
	RevokeSession(ctx context.Context, uid uuid.UUID, deviceID string) error
}

type TokenIssuer interface {
	Issue(ctx context.Context, u *md.User) (string, int64, error)
	Revoke(ctx context.Context, c jwt.Claims) error
}

type CredentialVerifier interface {
	Verify(ctx context.Context, login, password string) (*md.User, error)
}

// AccountPolicy decides whether a verified user may hold a session.
type AccountPolicy interface {
	IsAccountUsable(ctx context.Context, u *md.User) (bool, error)
}

type UserRepo interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*md.User, error)
	GetUserByEmail(ctx context.Context, email string) (*md.User, error)
	CreateUser(ctx context.Context, u *md.User) (uuid.UUID, error)
}

type RateLimiter interface {
	Check(ctx context.Context, login, address string) error
	RecordFailure(ctx context.Context, login, address string) error
	Clear(ctx context.Context, login, address string) error
}

type Lockout interface {
	EnsureNotLocked(ctx context.Context, login string) error
	RecordFailureAndMaybeLock(ctx context.Context, login string) (bool, error)
	ClearAttempts(ctx context.Context, login string) error
}

type RefreshStore interface {
	Create(ctx context.Context, userID uuid.UUID, d md.Device) (*md.RefreshToken, string, error)
	LookupValid(ctx context.Context, secret string) (*md.RefreshToken, error)
	Rotate(ctx context.Context, current *md.RefreshToken, d md.Device) (*md.RefreshToken, string, error)
	ChainDevices(ctx context.Context, start *md.RefreshToken) ([]string, error)
	RevokeChain(ctx context.Context, userID uuid.UUID, deviceID string) (int64, error)
	Revoke(ctx context.Context, userID uuid.UUID, secret string) error
	RevokeAll(ctx context.Context, userID uuid.UUID) (int64, error)
	ListActive(ctx context.Context, userID uuid.UUID) ([]*md.RefreshToken, error)
}

type IncidentArchive interface {
	ArchiveIncident(ctx context.Context, inc *md.ReuseIncident) error
}

type Option func(*Controller)

// WithArchive enables incident archiving on reuse detection.
func WithArchive(a IncidentArchive) Option {
	return func(c *Controller) {
		c.archive = a
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

type Controller struct {
	au       TokenIssuer
	verifier CredentialVerifier
	policy   AccountPolicy
	users    UserRepo
	limiter  RateLimiter
	lockout  Lockout
	tokens   RefreshStore
	archive  IncidentArchive
	now      func() time.Time
}

func New(
	au TokenIssuer,
	verifier CredentialVerifier,
	policy AccountPolicy,
	users UserRepo,
	limiter RateLimiter,
	lockout Lockout,
	tokens RefreshStore,
	opts ...Option,
) *Controller {
	c := &Controller{
		au:       au,
		verifier: verifier,
		policy:   policy,
		users:    users,
		limiter:  limiter,
		lockout:  lockout,
		tokens:   tokens,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
