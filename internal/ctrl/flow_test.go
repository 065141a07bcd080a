package ctrl

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/JMURv/auth-guard/internal/auth"
	"github.com/JMURv/auth-guard/internal/auth/jwt"
	"github.com/JMURv/auth-guard/internal/auth/lockout"
	"github.com/JMURv/auth-guard/internal/auth/ratelimit"
	"github.com/JMURv/auth-guard/internal/auth/refresh"
	cache "github.com/JMURv/auth-guard/internal/cache/memory"
	"github.com/JMURv/auth-guard/internal/config"
	"github.com/JMURv/auth-guard/internal/dto"
	md "github.com/JMURv/auth-guard/internal/models"
	memrepo "github.com/JMURv/auth-guard/internal/repo/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "alice@example.com"
	testPassword = "correct-password"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingArchive struct {
	mu        sync.Mutex
	incidents []*md.ReuseIncident
}

func (a *recordingArchive) ArchiveIncident(_ context.Context, inc *md.ReuseIncident) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.incidents = append(a.incidents, inc)
	return nil
}

type flow struct {
	ctrl    *Controller
	au      *jwt.Core
	users   *memrepo.Repository
	clock   *clock
	archive *recordingArchive
	uid     uuid.UUID
}

func defaultAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWT: config.JWTConfig{Secret: "test-secret", Issuer: "auth-guard", AccessTTL: 15 * time.Minute},
		RateLimit: config.RateLimitConfig{
			Enabled:     true,
			MaxAttempts: 5,
			Window:      time.Minute,
		},
		Lockout: config.LockoutConfig{
			Enabled:   true,
			Threshold: 5,
			Window:    15 * time.Minute,
			Duration:  15 * time.Minute,
		},
		Refresh: config.RefreshConfig{
			IdleWindow:     14 * 24 * time.Hour,
			AbsoluteWindow: 90 * 24 * time.Hour,
			MaxChainDepth:  1024,
			SecretBytes:    32,
		},
		PrivilegedRoles: []string{"admin"},
	}
}

func newFlow(t *testing.T, conf config.AuthConfig) *flow {
	t.Helper()
	ctx := context.Background()
	clk := &clock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := cache.NewWithClock(clk.Now)
	users := memrepo.New()

	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)
	uid, err := users.CreateUser(ctx, &md.User{
		Email:           testEmail,
		Password:        hash,
		Role:            "user",
		IsActive:        true,
		IsEmailVerified: true,
	})
	require.NoError(t, err)

	au, err := jwt.New(conf.JWT, store, jwt.WithClock(clk.Now))
	require.NoError(t, err)

	archive := &recordingArchive{}
	c := New(
		au,
		auth.NewPasswordVerifier(users),
		auth.NewRolePolicy(conf.PrivilegedRoles, users),
		users,
		ratelimit.New(store, conf.RateLimit),
		lockout.New(store, conf.Lockout),
		refresh.New(users, conf.Refresh, refresh.WithClock(clk.Now)),
		WithArchive(archive),
		WithClock(clk.Now),
	)

	return &flow{ctrl: c, au: au, users: users, clock: clk, archive: archive, uid: uid}
}

func (f *flow) login(ip, password string) (*dto.TokenPair, error) {
	return f.ctrl.Login(
		context.Background(),
		&dto.DeviceRequest{IP: ip, UA: "test-agent"},
		&dto.EmailAndPasswordRequest{Email: testEmail, Password: password},
	)
}

func (f *flow) refresh(ip, secret string) (*dto.TokenPair, error) {
	return f.ctrl.Refresh(
		context.Background(),
		&dto.DeviceRequest{IP: ip, UA: "test-agent"},
		&dto.RefreshRequest{Refresh: secret},
	)
}

func TestFlow_RateLimitPerLoginAndAddress(t *testing.T) {
	conf := defaultAuthConfig()
	conf.Lockout.Threshold = 100
	f := newFlow(t, conf)

	for i := 0; i < 5; i++ {
		_, err := f.login("10.0.0.1", "wrong")
		require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	}

	_, err := f.login("10.0.0.1", testPassword)
	require.ErrorIs(t, err, auth.ErrRateLimited)
	assert.Equal(t, auth.KindRateLimited, auth.Kind(err))
	secs, ok := auth.RetryAfter(err)
	assert.True(t, ok)
	assert.Equal(t, int64(60), secs)

	pair, err := f.login("10.0.0.2", testPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)

	f.clock.Advance(time.Minute)
	_, err = f.login("10.0.0.1", testPassword)
	assert.NoError(t, err)
}

func TestFlow_LockoutIgnoresAddress(t *testing.T) {
	f := newFlow(t, defaultAuthConfig())

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.1", "10.0.0.2"} {
		_, err := f.login(ip, "wrong")
		require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	}

	_, err := f.login("10.0.0.9", testPassword)
	require.ErrorIs(t, err, auth.ErrAccountLocked)
	assert.Equal(t, auth.KindAccountLocked, auth.Kind(err))
	secs, ok := auth.RetryAfter(err)
	assert.True(t, ok)
	assert.Equal(t, int64(900), secs)

	f.clock.Advance(15 * time.Minute)
	_, err = f.login("10.0.0.9", testPassword)
	assert.NoError(t, err)
}

func TestFlow_LockoutWinsOverRateLimit(t *testing.T) {
	f := newFlow(t, defaultAuthConfig())

	for i := 0; i < 5; i++ {
		_, err := f.login("10.0.0.1", "wrong")
		require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	}

	_, err := f.login("10.0.0.1", testPassword)
	assert.ErrorIs(t, err, auth.ErrAccountLocked)
	assert.NotErrorIs(t, err, auth.ErrRateLimited)
}

func TestFlow_LockoutRunsFullDuration(t *testing.T) {
	f := newFlow(t, defaultAuthConfig())

	for i := 0; i < 5; i++ {
		_, _ = f.login("10.0.0.1", "wrong")
	}

	f.clock.Advance(14 * time.Minute)
	_, err := f.login("10.0.0.7", testPassword)
	require.ErrorIs(t, err, auth.ErrAccountLocked)
	secs, _ := auth.RetryAfter(err)
	assert.Equal(t, int64(60), secs)
}

func TestFlow_SuccessClearsBothGuards(t *testing.T) {
	f := newFlow(t, defaultAuthConfig())

	for i := 0; i < 4; i++ {
		_, err := f.login("10.0.0.1", "wrong")
		require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	}

	_, err := f.login("10.0.0.1", testPassword)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err = f.login("10.0.0.1", "wrong")
		require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	}

	_, err = f.login("10.0.0.1", testPassword)
	assert.NoError(t, err)
}

func TestFlow_UnknownLoginLooksLikeWrongPassword(t *testing.T) {
	f := newFlow(t, defaultAuthConfig())

	_, errUnknown := f.ctrl.Login(
		context.Background(),
		&dto.DeviceRequest{IP: "10.0.0.1", UA: "test-agent"},
		&dto.EmailAndPasswordRequest{Email: "nobody@example.com", Password: "x"},
	)
	_, errWrong := f.login("10.0.0.1", "wrong")

	require.Error(t, errUnknown)
	require.Error(t, errWrong)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
	assert.Equal(t, auth.Kind(errWrong), auth.Kind(errUnknown))
}

func TestFlow_LoginNormalizesIdentity(t *testing.T) {
	f := newFlow(t, defaultAuthConfig())

	_, err := f.ctrl.Login(
		context.Background(),
		&dto.DeviceRequest{IP: "10.0.0.1", UA: "test-agent"},
		&dto.EmailAndPasswordRequest{Email: "  Alice@Example.COM ", Password: testPassword},
	)
	assert.NoError(t, err)
}

func TestFlow_AccountState(t *testing.T) {
	ctx := context.Background()
	f := newFlow(t, defaultAuthConfig())

	require.NoError(t, f.users.SetUserActive(ctx, f.uid, false))
	_, err := f.login("10.0.0.1", testPassword)
	require.ErrorIs(t, err, auth.ErrAccountNotUsable)
	assert.Equal(t, auth.KindAccountNotUsable, auth.Kind(err))

	hash, err := auth.HashPassword("admin-password")
	require.NoError(t, err)
	adminID, err := f.users.CreateUser(ctx, &md.User{Email: "root@example.com", Password: hash, Role: "admin"})
	require.NoError(t, err)

	pair, err := f.ctrl.Login(
		ctx,
		&dto.DeviceRequest{IP: "10.0.0.1", UA: "test-agent"},
		&dto.EmailAndPasswordRequest{Email: "root@example.com", Password: "admin-password"},
	)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Refresh)

	admin, err := f.users.GetUserByID(ctx, adminID)
	require.NoError(t, err)
	assert.True(t, admin.IsActive)
}

func TestFlow_RotationInvalidatesPredecessor(t *testing.T) {
	f := newFlow(t, defaultAuthConfig())

	s0, err := f.login("10.0.0.1", testPassword)
	require.NoError(t, err)
	assert.Equal(t, int64(900), s0.ExpiresIn)

	s1, err := f.refresh("10.0.0.1", s0.Refresh)
	require.NoError(t, err)
	assert.NotEqual(t, s0.Refresh, s1.Refresh)
	assert.NotEqual(t, s0.Access, s1.Access)

	_, err = f.refresh("10.0.0.1", s0.Refresh)
	require.ErrorIs(t, err, auth.ErrInvalidOrExpiredRefreshToken)
	assert.Equal(t, auth.ErrInvalidOrExpiredRefreshToken.Error(), err.Error())
	assert.Equal(t, auth.KindInvalidOrExpiredRefreshToken, auth.Kind(err))
}

func TestFlow_ReuseRevokesDeviceChain(t *testing.T) {
	f := newFlow(t, defaultAuthConfig())

	s0, err := f.login("10.0.0.1", testPassword)
	require.NoError(t, err)
	other, err := f.ctrl.Login(
		context.Background(),
		&dto.DeviceRequest{IP: "10.0.0.2", UA: "other-agent"},
		&dto.EmailAndPasswordRequest{Email: testEmail, Password: testPassword},
	)
	require.NoError(t, err)

	s1, err := f.refresh("10.0.0.1", s0.Refresh)
	require.NoError(t, err)

	_, err = f.refresh("10.6.6.6", s0.Refresh)
	require.ErrorIs(t, err, auth.ErrReuseDetected)

	_, err = f.refresh("10.0.0.1", s1.Refresh)
	assert.ErrorIs(t, err, auth.ErrInvalidOrExpiredRefreshToken)

	_, err = f.ctrl.Refresh(
		context.Background(),
		&dto.DeviceRequest{IP: "10.0.0.2", UA: "other-agent"},
		&dto.RefreshRequest{Refresh: other.Refresh},
	)
	assert.NoError(t, err)

	require.Len(t, f.archive.incidents, 1)
	inc := f.archive.incidents[0]
	assert.Equal(t, f.uid, inc.UserID)
	assert.Equal(t, "10.6.6.6", inc.IP)
	assert.Len(t, inc.DeviceIDs, 1)
}

func TestFlow_IdleExpiry(t *testing.T) {
	f := newFlow(t, defaultAuthConfig())

	s0, err := f.login("10.0.0.1", testPassword)
	require.NoError(t, err)

	f.clock.Advance(14*24*time.Hour + time.Second)
	_, err = f.refresh("10.0.0.1", s0.Refresh)
	assert.ErrorIs(t, err, auth.ErrInvalidOrExpiredRefreshToken)
}

func TestFlow_AbsoluteExpiry(t *testing.T) {
	f := newFlow(t, defaultAuthConfig())

	pair, err := f.login("10.0.0.1", testPassword)
	require.NoError(t, err)

	// Regular use keeps the idle window alive but never passes 90 days.
	for day := 13; day < 90; day += 13 {
		f.clock.Advance(13 * 24 * time.Hour)
		pair, err = f.refresh("10.0.0.1", pair.Refresh)
		require.NoError(t, err, "day %d", day)
	}

	f.clock.Advance(13 * 24 * time.Hour)
	_, err = f.refresh("10.0.0.1", pair.Refresh)
	assert.ErrorIs(t, err, auth.ErrInvalidOrExpiredRefreshToken)
}

func TestFlow_ConcurrentRefreshSingleWinner(t *testing.T) {
	f := newFlow(t, defaultAuthConfig())

	s0, err := f.login("10.0.0.1", testPassword)
	require.NoError(t, err)

	const n = 10
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.refresh("10.0.0.1", s0.Refresh)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
				return
			}
			assert.ErrorIs(t, err, auth.ErrInvalidOrExpiredRefreshToken)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func TestFlow_Logout(t *testing.T) {
	ctx := context.Background()
	f := newFlow(t, defaultAuthConfig())

	pair, err := f.login("10.0.0.1", testPassword)
	require.NoError(t, err)
	claims, err := f.au.ParseClaims(ctx, pair.Access)
	require.NoError(t, err)

	require.NoError(t, f.ctrl.Logout(ctx, f.uid, claims, pair.Refresh))
	require.NoError(t, f.ctrl.Logout(ctx, f.uid, claims, pair.Refresh))

	revoked, err := f.au.IsRevoked(ctx, claims)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = f.refresh("10.0.0.1", pair.Refresh)
	assert.ErrorIs(t, err, auth.ErrInvalidOrExpiredRefreshToken)
}

func TestFlow_LogoutWithoutSecretRevokesAll(t *testing.T) {
	ctx := context.Background()
	f := newFlow(t, defaultAuthConfig())

	a, err := f.login("10.0.0.1", testPassword)
	require.NoError(t, err)
	b, err := f.login("10.0.0.2", testPassword)
	require.NoError(t, err)

	sessions, err := f.ctrl.ListSessions(ctx, f.uid)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	require.NoError(t, f.ctrl.Logout(ctx, f.uid, jwt.Claims{}, ""))

	for _, secret := range []string{a.Refresh, b.Refresh} {
		_, err = f.refresh("10.0.0.1", secret)
		assert.ErrorIs(t, err, auth.ErrInvalidOrExpiredRefreshToken)
	}

	sessions, err = f.ctrl.ListSessions(ctx, f.uid)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestFlow_RevokeSession(t *testing.T) {
	ctx := context.Background()
	f := newFlow(t, defaultAuthConfig())

	pair, err := f.login("10.0.0.1", testPassword)
	require.NoError(t, err)

	sessions, err := f.ctrl.ListSessions(ctx, f.uid)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	require.NoError(t, f.ctrl.RevokeSession(ctx, f.uid, sessions[0].DeviceID))
	assert.True(t, errors.Is(f.ctrl.RevokeSession(ctx, f.uid, sessions[0].DeviceID), ErrNotFound))

	_, err = f.refresh("10.0.0.1", pair.Refresh)
	assert.ErrorIs(t, err, auth.ErrInvalidOrExpiredRefreshToken)
}

func TestFlow_EnsureAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFlow(t, defaultAuthConfig())

	require.NoError(t, f.ctrl.EnsureAdmin(ctx, "Admin@Example.com", "admin-password", "admin"))
	require.NoError(t, f.ctrl.EnsureAdmin(ctx, "admin@example.com", "other", "admin"))
	require.NoError(t, f.ctrl.EnsureAdmin(ctx, "", "", "admin"))

	u, err := f.users.GetUserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Role)
	assert.True(t, u.IsActive)
	assert.NoError(t, auth.ComparePasswords([]byte(u.Password), []byte("admin-password")))
}
