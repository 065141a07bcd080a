package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/JMURv/auth-guard/internal/auth"
	"github.com/JMURv/auth-guard/internal/cache/memory"
	"github.com/JMURv/auth-guard/internal/config"
	md "github.com/JMURv/auth-guard/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time {
	return c.now
}

var testConf = config.JWTConfig{
	Secret:    "test-secret",
	Issuer:    "auth-guard",
	AccessTTL: 15 * time.Minute,
}

func setup(t *testing.T) (*Core, *clock) {
	t.Helper()
	clk := &clock{now: time.Now().Truncate(time.Second)}
	c, err := New(testConf, memory.NewWithClock(clk.Now), WithClock(clk.Now))
	require.NoError(t, err)
	return c, clk
}

func TestNew_MissingSecret(t *testing.T) {
	_, err := New(config.JWTConfig{}, memory.New())
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestCore_IssueAndParse(t *testing.T) {
	ctx := context.Background()
	c, clk := setup(t)
	u := &md.User{ID: uuid.New(), Role: "admin"}

	token, expiresIn, err := c.Issue(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, int64(900), expiresIn)

	claims, err := c.ParseClaims(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UID)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.ID)

	other, _, err := c.Issue(ctx, u)
	require.NoError(t, err)
	otherClaims, err := c.ParseClaims(ctx, other)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, otherClaims.ID)

	clk.now = clk.now.Add(16 * time.Minute)
	_, err = c.ParseClaims(ctx, token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestCore_ParseRejectsForeignTokens(t *testing.T) {
	ctx := context.Background()
	c, _ := setup(t)

	tests := []struct {
		name  string
		token func() string
	}{
		{
			name: "Garbage",
			token: func() string {
				return "not.a.token"
			},
		},
		{
			name: "WrongSecret",
			token: func() string {
				s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
					UID: uuid.New(),
					RegisteredClaims: jwt.RegisteredClaims{
						ID:        "x",
						Issuer:    testConf.Issuer,
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					},
				}).SignedString([]byte("other-secret"))
				return s
			},
		},
		{
			name: "NoneAlgorithm",
			token: func() string {
				s, _ := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
					UID: uuid.New(),
					RegisteredClaims: jwt.RegisteredClaims{
						ID:        "x",
						Issuer:    testConf.Issuer,
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					},
				}).SignedString(jwt.UnsafeAllowNoneSignatureType)
				return s
			},
		},
		{
			name: "WrongIssuer",
			token: func() string {
				s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
					UID: uuid.New(),
					RegisteredClaims: jwt.RegisteredClaims{
						ID:        "x",
						Issuer:    "someone-else",
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					},
				}).SignedString([]byte(testConf.Secret))
				return s
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.ParseClaims(ctx, tt.token())
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}
}

func TestCore_Revoke(t *testing.T) {
	ctx := context.Background()
	c, clk := setup(t)

	token, _, err := c.Issue(ctx, &md.User{ID: uuid.New()})
	require.NoError(t, err)
	claims, err := c.ParseClaims(ctx, token)
	require.NoError(t, err)

	revoked, err := c.IsRevoked(ctx, claims)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, c.Revoke(ctx, claims))
	require.NoError(t, c.Revoke(ctx, claims))

	revoked, err = c.IsRevoked(ctx, claims)
	require.NoError(t, err)
	assert.True(t, revoked)

	clk.now = clk.now.Add(15 * time.Minute)
	revoked, err = c.IsRevoked(ctx, claims)
	require.NoError(t, err)
	assert.False(t, revoked)

	assert.NoError(t, c.Revoke(ctx, claims))
	assert.ErrorIs(t, c.Revoke(ctx, Claims{}), auth.ErrInvalidToken)
}
