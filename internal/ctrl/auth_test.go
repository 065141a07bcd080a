package ctrl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JMURv/auth-guard/internal/auth"
	"github.com/JMURv/auth-guard/internal/auth/jwt"
	"github.com/JMURv/auth-guard/internal/auth/refresh"
	"github.com/JMURv/auth-guard/internal/dto"
	md "github.com/JMURv/auth-guard/internal/models"
	"github.com/JMURv/auth-guard/internal/repo"
	"github.com/JMURv/auth-guard/tests/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type deps struct {
	au       *mocks.MockTokenIssuer
	verifier *mocks.MockCredentialVerifier
	policy   *mocks.MockAccountPolicy
	users    *mocks.MockUserRepo
	limiter  *mocks.MockRateLimiter
	lockout  *mocks.MockLockout
	tokens   *mocks.MockRefreshStore
	archive  *mocks.MockIncidentArchive
}

func newMocked(t *testing.T) (*Controller, *deps) {
	t.Helper()
	mc := gomock.NewController(t)
	d := &deps{
		au:       mocks.NewMockTokenIssuer(mc),
		verifier: mocks.NewMockCredentialVerifier(mc),
		policy:   mocks.NewMockAccountPolicy(mc),
		users:    mocks.NewMockUserRepo(mc),
		limiter:  mocks.NewMockRateLimiter(mc),
		lockout:  mocks.NewMockLockout(mc),
		tokens:   mocks.NewMockRefreshStore(mc),
		archive:  mocks.NewMockIncidentArchive(mc),
	}
	c := New(d.au, d.verifier, d.policy, d.users, d.limiter, d.lockout, d.tokens, WithArchive(d.archive))
	return c, d
}

func TestController_Login(t *testing.T) {
	ctx := context.Background()
	device := &dto.DeviceRequest{IP: "192.168.1.1", UA: "test-user-agent"}
	req := &dto.EmailAndPasswordRequest{Email: " Test@Example.com", Password: "validpassword123!"}
	login := "test@example.com"
	user := &md.User{ID: uuid.New(), Email: login, Role: "user"}
	infraErr := errors.New("cache unreachable")

	tests := []struct {
		name     string
		setup    func(d *deps)
		expected *dto.TokenPair
		err      error
	}{
		{
			name: "Success",
			setup: func(d *deps) {
				gomock.InOrder(
					d.lockout.EXPECT().EnsureNotLocked(gomock.Any(), login).Return(nil),
					d.limiter.EXPECT().Check(gomock.Any(), login, device.IP).Return(nil),
					d.verifier.EXPECT().Verify(gomock.Any(), login, req.Password).Return(user, nil),
					d.policy.EXPECT().IsAccountUsable(gomock.Any(), user).Return(true, nil),
					d.limiter.EXPECT().Clear(gomock.Any(), login, device.IP).Return(nil),
					d.lockout.EXPECT().ClearAttempts(gomock.Any(), login).Return(nil),
					d.au.EXPECT().Issue(gomock.Any(), user).Return("access", int64(900), nil),
					d.tokens.EXPECT().
						Create(gomock.Any(), user.ID, auth.GenerateDevice(user.ID, device)).
						Return(&md.RefreshToken{}, "refresh", nil),
				)
			},
			expected: &dto.TokenPair{Access: "access", Refresh: "refresh", ExpiresIn: 900},
		},
		{
			name: "Locked",
			setup: func(d *deps) {
				d.lockout.EXPECT().
					EnsureNotLocked(gomock.Any(), login).
					Return(&auth.RetryError{Err: auth.ErrAccountLocked, RetryAfter: time.Minute})
			},
			err: auth.ErrAccountLocked,
		},
		{
			name: "RateLimited",
			setup: func(d *deps) {
				d.lockout.EXPECT().EnsureNotLocked(gomock.Any(), login).Return(nil)
				d.limiter.EXPECT().
					Check(gomock.Any(), login, device.IP).
					Return(&auth.RetryError{Err: auth.ErrRateLimited, RetryAfter: time.Minute})
			},
			err: auth.ErrRateLimited,
		},
		{
			name: "InvalidCredentials",
			setup: func(d *deps) {
				d.lockout.EXPECT().EnsureNotLocked(gomock.Any(), login).Return(nil)
				d.limiter.EXPECT().Check(gomock.Any(), login, device.IP).Return(nil)
				d.verifier.EXPECT().Verify(gomock.Any(), login, req.Password).Return(nil, auth.ErrInvalidCredentials)
				d.limiter.EXPECT().RecordFailure(gomock.Any(), login, device.IP).Return(nil)
				d.lockout.EXPECT().RecordFailureAndMaybeLock(gomock.Any(), login).Return(false, nil)
			},
			err: auth.ErrInvalidCredentials,
		},
		{
			name: "VerifierErrorStillCounts",
			setup: func(d *deps) {
				d.lockout.EXPECT().EnsureNotLocked(gomock.Any(), login).Return(nil)
				d.limiter.EXPECT().Check(gomock.Any(), login, device.IP).Return(nil)
				d.verifier.EXPECT().Verify(gomock.Any(), login, req.Password).Return(nil, infraErr)
				d.limiter.EXPECT().RecordFailure(gomock.Any(), login, device.IP).Return(nil)
				d.lockout.EXPECT().RecordFailureAndMaybeLock(gomock.Any(), login).Return(true, nil)
			},
			err: infraErr,
		},
		{
			name: "RecordFailureError",
			setup: func(d *deps) {
				d.lockout.EXPECT().EnsureNotLocked(gomock.Any(), login).Return(nil)
				d.limiter.EXPECT().Check(gomock.Any(), login, device.IP).Return(nil)
				d.verifier.EXPECT().Verify(gomock.Any(), login, req.Password).Return(nil, auth.ErrInvalidCredentials)
				d.limiter.EXPECT().RecordFailure(gomock.Any(), login, device.IP).Return(infraErr)
				d.lockout.EXPECT().RecordFailureAndMaybeLock(gomock.Any(), login).Return(false, nil)
			},
			err: infraErr,
		},
		{
			name: "LockoutStoreError",
			setup: func(d *deps) {
				d.lockout.EXPECT().EnsureNotLocked(gomock.Any(), login).Return(infraErr)
			},
			err: infraErr,
		},
		{
			name: "AccountNotUsable",
			setup: func(d *deps) {
				d.lockout.EXPECT().EnsureNotLocked(gomock.Any(), login).Return(nil)
				d.limiter.EXPECT().Check(gomock.Any(), login, device.IP).Return(nil)
				d.verifier.EXPECT().Verify(gomock.Any(), login, req.Password).Return(user, nil)
				d.policy.EXPECT().IsAccountUsable(gomock.Any(), user).Return(false, nil)
			},
			err: auth.ErrAccountNotUsable,
		},
		{
			name: "IssueError",
			setup: func(d *deps) {
				d.lockout.EXPECT().EnsureNotLocked(gomock.Any(), login).Return(nil)
				d.limiter.EXPECT().Check(gomock.Any(), login, device.IP).Return(nil)
				d.verifier.EXPECT().Verify(gomock.Any(), login, req.Password).Return(user, nil)
				d.policy.EXPECT().IsAccountUsable(gomock.Any(), user).Return(true, nil)
				d.limiter.EXPECT().Clear(gomock.Any(), login, device.IP).Return(nil)
				d.lockout.EXPECT().ClearAttempts(gomock.Any(), login).Return(nil)
				d.au.EXPECT().Issue(gomock.Any(), user).Return("", int64(0), jwt.ErrWhileCreatingToken)
			},
			err: jwt.ErrWhileCreatingToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, d := newMocked(t)
			tt.setup(d)

			res, err := c.Login(ctx, device, req)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Nil(t, res)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, res)
		})
	}
}

func TestController_Refresh(t *testing.T) {
	ctx := context.Background()
	device := &dto.DeviceRequest{IP: "192.168.1.1", UA: "test-user-agent"}
	req := &dto.RefreshRequest{Refresh: "secret"}
	user := &md.User{ID: uuid.New(), Role: "user", IsActive: true, IsEmailVerified: true}
	next := uuid.New()
	head := func() *md.RefreshToken {
		return &md.RefreshToken{ID: uuid.New(), UserID: user.ID, DeviceID: "dev-1"}
	}
	infraErr := errors.New("database error")

	tests := []struct {
		name  string
		setup func(d *deps)
		err   error
	}{
		{
			name: "Success",
			setup: func(d *deps) {
				cur := head()
				d.tokens.EXPECT().LookupValid(gomock.Any(), req.Refresh).Return(cur, nil)
				d.users.EXPECT().GetUserByID(gomock.Any(), user.ID).Return(user, nil)
				d.policy.EXPECT().IsAccountUsable(gomock.Any(), user).Return(true, nil)
				d.au.EXPECT().Issue(gomock.Any(), user).Return("access", int64(900), nil)
				d.tokens.EXPECT().
					Rotate(gomock.Any(), cur, md.Device{IP: device.IP, UA: device.UA}).
					Return(&md.RefreshToken{}, "next-secret", nil)
			},
		},
		{
			name: "NotFound",
			setup: func(d *deps) {
				d.tokens.EXPECT().LookupValid(gomock.Any(), req.Refresh).Return(nil, refresh.ErrNotFound)
			},
			err: auth.ErrInvalidOrExpiredRefreshToken,
		},
		{
			name: "LookupError",
			setup: func(d *deps) {
				d.tokens.EXPECT().LookupValid(gomock.Any(), req.Refresh).Return(nil, infraErr)
			},
			err: infraErr,
		},
		{
			name: "Reuse",
			setup: func(d *deps) {
				cur := head()
				cur.ReplacedBy = &next
				d.tokens.EXPECT().LookupValid(gomock.Any(), req.Refresh).Return(cur, nil)
				d.tokens.EXPECT().ChainDevices(gomock.Any(), cur).Return([]string{"dev-1", "dev-2"}, nil)
				d.tokens.EXPECT().RevokeChain(gomock.Any(), user.ID, "dev-1").Return(int64(2), nil)
				d.tokens.EXPECT().RevokeChain(gomock.Any(), user.ID, "dev-2").Return(int64(1), nil)
				d.archive.EXPECT().ArchiveIncident(gomock.Any(), gomock.Any()).Return(errors.New("s3 down"))
			},
			err: auth.ErrReuseDetected,
		},
		{
			name: "ReuseChainWalkFails",
			setup: func(d *deps) {
				cur := head()
				cur.ReplacedBy = &next
				d.tokens.EXPECT().LookupValid(gomock.Any(), req.Refresh).Return(cur, nil)
				d.tokens.EXPECT().ChainDevices(gomock.Any(), cur).Return(nil, infraErr)
				d.tokens.EXPECT().RevokeChain(gomock.Any(), user.ID, "dev-1").Return(int64(1), nil)
				d.archive.EXPECT().ArchiveIncident(gomock.Any(), gomock.Any()).Return(nil)
			},
			err: auth.ErrInvalidOrExpiredRefreshToken,
		},
		{
			name: "LostRotationRace",
			setup: func(d *deps) {
				cur := head()
				d.tokens.EXPECT().LookupValid(gomock.Any(), req.Refresh).Return(cur, nil)
				d.users.EXPECT().GetUserByID(gomock.Any(), user.ID).Return(user, nil)
				d.policy.EXPECT().IsAccountUsable(gomock.Any(), user).Return(true, nil)
				d.au.EXPECT().Issue(gomock.Any(), user).Return("access", int64(900), nil)
				d.tokens.EXPECT().Rotate(gomock.Any(), cur, gomock.Any()).Return(nil, "", refresh.ErrAlreadyRotated)
				d.tokens.EXPECT().ChainDevices(gomock.Any(), cur).Return([]string{"dev-1"}, nil)
				d.tokens.EXPECT().RevokeChain(gomock.Any(), user.ID, "dev-1").Return(int64(2), nil)
				d.archive.EXPECT().ArchiveIncident(gomock.Any(), gomock.Any()).Return(nil)
			},
			err: auth.ErrReuseDetected,
		},
		{
			name: "UserGone",
			setup: func(d *deps) {
				d.tokens.EXPECT().LookupValid(gomock.Any(), req.Refresh).Return(head(), nil)
				d.users.EXPECT().GetUserByID(gomock.Any(), user.ID).Return(nil, repo.ErrNotFound)
			},
			err: auth.ErrInvalidOrExpiredRefreshToken,
		},
		{
			name: "AccountNotUsable",
			setup: func(d *deps) {
				d.tokens.EXPECT().LookupValid(gomock.Any(), req.Refresh).Return(head(), nil)
				d.users.EXPECT().GetUserByID(gomock.Any(), user.ID).Return(user, nil)
				d.policy.EXPECT().IsAccountUsable(gomock.Any(), user).Return(false, nil)
			},
			err: auth.ErrAccountNotUsable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, d := newMocked(t)
			tt.setup(d)

			res, err := c.Refresh(ctx, device, req)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Nil(t, res)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, &dto.TokenPair{Access: "access", Refresh: "next-secret", ExpiresIn: 900}, res)
		})
	}
}

func TestController_ReuseRevocationFailureIsInternal(t *testing.T) {
	c, d := newMocked(t)
	next := uuid.New()
	cur := &md.RefreshToken{ID: uuid.New(), UserID: uuid.New(), DeviceID: "dev-1", ReplacedBy: &next}
	infraErr := errors.New("database error")

	d.tokens.EXPECT().LookupValid(gomock.Any(), "secret").Return(cur, nil)
	d.tokens.EXPECT().ChainDevices(gomock.Any(), cur).Return([]string{"dev-1"}, nil)
	d.tokens.EXPECT().RevokeChain(gomock.Any(), cur.UserID, "dev-1").Return(int64(0), infraErr)
	d.archive.EXPECT().ArchiveIncident(gomock.Any(), gomock.Any()).Return(nil)

	_, err := c.Refresh(context.Background(), &dto.DeviceRequest{}, &dto.RefreshRequest{Refresh: "secret"})
	assert.ErrorIs(t, err, infraErr)
	assert.Equal(t, auth.KindInternal, auth.Kind(err))
}

func TestController_Logout(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	claims := jwt.Claims{UID: uid}
	claims.ID = "jti"
	infraErr := errors.New("cache unreachable")

	tests := []struct {
		name   string
		claims jwt.Claims
		secret string
		setup  func(d *deps)
		err    error
	}{
		{
			name:   "WithSecret",
			claims: claims,
			secret: "secret",
			setup: func(d *deps) {
				d.au.EXPECT().Revoke(gomock.Any(), claims).Return(nil)
				d.tokens.EXPECT().Revoke(gomock.Any(), uid, "secret").Return(nil)
			},
		},
		{
			name:   "WithoutSecret",
			claims: claims,
			setup: func(d *deps) {
				d.au.EXPECT().Revoke(gomock.Any(), claims).Return(nil)
				d.tokens.EXPECT().RevokeAll(gomock.Any(), uid).Return(int64(3), nil)
			},
		},
		{
			name: "WithoutAccessToken",
			setup: func(d *deps) {
				d.tokens.EXPECT().RevokeAll(gomock.Any(), uid).Return(int64(0), nil)
			},
		},
		{
			name:   "RevokeAccessError",
			claims: claims,
			secret: "secret",
			setup: func(d *deps) {
				d.au.EXPECT().Revoke(gomock.Any(), claims).Return(infraErr)
			},
			err: infraErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, d := newMocked(t)
			tt.setup(d)

			err := c.Logout(ctx, uid, tt.claims, tt.secret)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestController_EnsureAdmin(t *testing.T) {
	ctx := context.Background()
	infraErr := errors.New("database error")

	t.Run("LookupError", func(t *testing.T) {
		c, d := newMocked(t)
		d.users.EXPECT().GetUserByEmail(gomock.Any(), "admin@example.com").Return(nil, infraErr)
		assert.ErrorIs(t, c.EnsureAdmin(ctx, "admin@example.com", "pass", "admin"), infraErr)
	})

	t.Run("CreatedConcurrently", func(t *testing.T) {
		c, d := newMocked(t)
		d.users.EXPECT().GetUserByEmail(gomock.Any(), "admin@example.com").Return(nil, repo.ErrNotFound)
		d.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(uuid.Nil, repo.ErrAlreadyExists)
		assert.NoError(t, c.EnsureAdmin(ctx, "admin@example.com", "pass", "admin"))
	})
}
