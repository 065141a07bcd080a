package http

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JMURv/auth-guard/internal/auth"
	"github.com/JMURv/auth-guard/internal/auth/captcha"
	"github.com/JMURv/auth-guard/internal/auth/jwt"
	"github.com/JMURv/auth-guard/internal/auth/lockout"
	"github.com/JMURv/auth-guard/internal/auth/ratelimit"
	"github.com/JMURv/auth-guard/internal/auth/refresh"
	"github.com/JMURv/auth-guard/internal/cache/redis"
	"github.com/JMURv/auth-guard/internal/config"
	"github.com/JMURv/auth-guard/internal/ctrl"
	hdl "github.com/JMURv/auth-guard/internal/hdl/http"
	md "github.com/JMURv/auth-guard/internal/models"
	memrepo "github.com/JMURv/auth-guard/internal/repo/memory"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "user@example.com"
	testPassword = "correct-horse-battery"
)

type testServer struct {
	*httptest.Server
	redis *miniredis.Miniredis
	repo  *memrepo.Repository
}

func testConfig() config.AuthConfig {
	return config.AuthConfig{
		JWT: config.JWTConfig{
			Secret:    "integration-secret",
			Issuer:    "auth-guard",
			AccessTTL: 15 * time.Minute,
		},
		RateLimit: config.RateLimitConfig{Enabled: true, MaxAttempts: 5, Window: time.Minute},
		Lockout:   config.LockoutConfig{Enabled: true, Threshold: 5, Window: 15 * time.Minute, Duration: 15 * time.Minute},
		Refresh: config.RefreshConfig{
			IdleWindow:     14 * 24 * time.Hour,
			AbsoluteWindow: 90 * 24 * time.Hour,
			MaxChainDepth:  1024,
			SecretBytes:    32,
		},
		PrivilegedRoles: []string{"admin"},
		TrustProxy:      true,
	}
}

// setupTestServer runs the full HTTP stack on a Redis-backed guard store and
// the in-memory repository, with one active user registered.
func setupTestServer(t *testing.T, conf config.AuthConfig) *testServer {
	t.Helper()

	mr := miniredis.RunT(t)
	kv := redis.New(config.RedisConfig{Addr: mr.Addr()})
	repo := memrepo.New()

	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)
	_, err = repo.CreateUser(
		context.Background(), &md.User{
			Email:           testEmail,
			Password:        hash,
			Role:            "user",
			IsActive:        true,
			IsEmailVerified: true,
		},
	)
	require.NoError(t, err)

	au, err := jwt.New(conf.JWT, kv)
	require.NoError(t, err)

	svc := ctrl.New(
		au,
		auth.NewPasswordVerifier(repo),
		auth.NewRolePolicy(conf.PrivilegedRoles, repo),
		repo,
		ratelimit.New(kv, conf.RateLimit),
		lockout.New(kv, conf.Lockout),
		refresh.New(repo, conf.Refresh),
	)
	h := hdl.New(au, svc, captcha.New(conf.Captcha), conf)

	ts := httptest.NewServer(h.Router)
	t.Cleanup(
		func() {
			ts.Close()
			_ = kv.Close()
			_ = repo.Close(context.Background())
		},
	)

	return &testServer{Server: ts, redis: mr, repo: repo}
}
