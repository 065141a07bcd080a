package db

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	md "github.com/JMURv/auth-guard/internal/models"
	"github.com/JMURv/auth-guard/internal/repo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokenCols = []string{
	"id", "user_id", "token_hash", "device_id", "ip", "user_agent", "issued_at",
	"last_used_at", "idle_expires_at", "absolute_expires_at", "replaced_by", "revoked_at",
}

func newToken(now time.Time) *md.RefreshToken {
	return &md.RefreshToken{
		ID:                uuid.New(),
		UserID:            uuid.New(),
		TokenHash:         "hash",
		DeviceID:          "device",
		IP:                "127.0.0.1",
		UA:                "agent",
		IssuedAt:          now,
		IdleExpiresAt:     now.Add(time.Hour),
		AbsoluteExpiresAt: now.Add(24 * time.Hour),
	}
}

func setup(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return &Repository{conn: sqlxDB}, mock
}

func TestRepository_CreateToken(t *testing.T) {
	r, mock := setup(t)
	tk := newToken(time.Now())

	tests := []struct {
		name        string
		mock        func()
		expectedErr error
	}{
		{
			name: "Success",
			mock: func() {
				mock.ExpectExec(regexp.QuoteMeta(createTokenQ)).
					WithArgs(
						tk.ID.String(), tk.UserID.String(), tk.TokenHash, tk.DeviceID, tk.IP, tk.UA,
						tk.IssuedAt, tk.IdleExpiresAt, tk.AbsoluteExpiresAt,
					).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name: "Duplicate",
			mock: func() {
				mock.ExpectExec(regexp.QuoteMeta(createTokenQ)).
					WillReturnError(&pgconn.PgError{Code: uniqueViolation})
			},
			expectedErr: repo.ErrAlreadyExists,
		},
		{
			name: "DatabaseError",
			mock: func() {
				mock.ExpectExec(regexp.QuoteMeta(createTokenQ)).
					WillReturnError(errors.New("database error"))
			},
			expectedErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mock()
			err := r.CreateToken(context.Background(), tk)
			if tt.expectedErr != nil {
				assert.EqualError(t, err, tt.expectedErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetTokenByHash(t *testing.T) {
	r, mock := setup(t)
	now := time.Now().UTC()
	tk := newToken(now)
	next := uuid.New()

	tests := []struct {
		name        string
		mock        func()
		expectedErr error
	}{
		{
			name: "Success",
			mock: func() {
				mock.ExpectQuery(regexp.QuoteMeta(getTokenByHashQ)).
					WithArgs(tk.TokenHash).
					WillReturnRows(
						sqlmock.NewRows(tokenCols).AddRow(
							tk.ID.String(), tk.UserID.String(), tk.TokenHash, tk.DeviceID, tk.IP, tk.UA,
							tk.IssuedAt, now, tk.IdleExpiresAt, tk.AbsoluteExpiresAt, next.String(), nil,
						),
					)
			},
		},
		{
			name: "NotFound",
			mock: func() {
				mock.ExpectQuery(regexp.QuoteMeta(getTokenByHashQ)).
					WithArgs(tk.TokenHash).
					WillReturnError(sql.ErrNoRows)
			},
			expectedErr: repo.ErrNotFound,
		},
		{
			name: "DatabaseError",
			mock: func() {
				mock.ExpectQuery(regexp.QuoteMeta(getTokenByHashQ)).
					WithArgs(tk.TokenHash).
					WillReturnError(errors.New("database error"))
			},
			expectedErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mock()
			res, err := r.GetTokenByHash(context.Background(), tk.TokenHash)
			if tt.expectedErr != nil {
				assert.EqualError(t, err, tt.expectedErr.Error())
				assert.Nil(t, res)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tk.ID, res.ID)
			assert.Equal(t, tk.UserID, res.UserID)
			require.NotNil(t, res.ReplacedBy)
			assert.Equal(t, next, *res.ReplacedBy)
			require.NotNil(t, res.LastUsedAt)
			assert.Nil(t, res.RevokedAt)
		})
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_RotateToken(t *testing.T) {
	r, mock := setup(t)
	now := time.Now().UTC()
	currentID := uuid.New()
	next := newToken(now)
	replaced := uuid.New()

	tests := []struct {
		name        string
		mock        func()
		expectedErr error
	}{
		{
			name: "Success",
			mock: func() {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta(lockTokenQ)).
					WithArgs(currentID.String()).
					WillReturnRows(sqlmock.NewRows([]string{"replaced_by", "revoked_at"}).AddRow(nil, nil))
				mock.ExpectExec(regexp.QuoteMeta(createTokenQ)).
					WithArgs(
						next.ID.String(), next.UserID.String(), next.TokenHash, next.DeviceID, next.IP, next.UA,
						next.IssuedAt, next.IdleExpiresAt, next.AbsoluteExpiresAt,
					).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(regexp.QuoteMeta(linkTokenQ)).
					WithArgs(next.ID.String(), now, currentID.String()).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "AlreadyReplaced",
			mock: func() {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta(lockTokenQ)).
					WithArgs(currentID.String()).
					WillReturnRows(
						sqlmock.NewRows([]string{"replaced_by", "revoked_at"}).AddRow(replaced.String(), nil),
					)
				mock.ExpectRollback()
			},
			expectedErr: repo.ErrConflict,
		},
		{
			name: "Revoked",
			mock: func() {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta(lockTokenQ)).
					WithArgs(currentID.String()).
					WillReturnRows(sqlmock.NewRows([]string{"replaced_by", "revoked_at"}).AddRow(nil, now))
				mock.ExpectRollback()
			},
			expectedErr: repo.ErrNotFound,
		},
		{
			name: "Missing",
			mock: func() {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta(lockTokenQ)).
					WithArgs(currentID.String()).
					WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			expectedErr: repo.ErrNotFound,
		},
		{
			name: "InsertError",
			mock: func() {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta(lockTokenQ)).
					WithArgs(currentID.String()).
					WillReturnRows(sqlmock.NewRows([]string{"replaced_by", "revoked_at"}).AddRow(nil, nil))
				mock.ExpectExec(regexp.QuoteMeta(createTokenQ)).
					WillReturnError(errors.New("database error"))
				mock.ExpectRollback()
			},
			expectedErr: errors.New("database error"),
		},
		{
			name: "BeginError",
			mock: func() {
				mock.ExpectBegin().WillReturnError(errors.New("database error"))
			},
			expectedErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mock()
			err := r.RotateToken(context.Background(), currentID, next, now)
			if tt.expectedErr != nil {
				assert.EqualError(t, err, tt.expectedErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Revoke(t *testing.T) {
	r, mock := setup(t)
	ctx := context.Background()
	now := time.Now().UTC()
	uid := uuid.New()
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(revokeTokenQ)).
		WithArgs(now, id.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.NoError(t, r.RevokeToken(ctx, id, now))

	mock.ExpectExec(regexp.QuoteMeta(revokeByDeviceQ)).
		WithArgs(now, uid.String(), "device").
		WillReturnResult(sqlmock.NewResult(0, 3))
	n, err := r.RevokeByDevice(ctx, uid, "device", now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	mock.ExpectExec(regexp.QuoteMeta(revokeAllTokensQ)).
		WithArgs(now, uid.String()).
		WillReturnError(errors.New("database error"))
	_, err = r.RevokeAllTokens(ctx, uid, now)
	assert.EqualError(t, err, "database error")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListActiveTokens(t *testing.T) {
	r, mock := setup(t)
	ctx := context.Background()
	now := time.Now().UTC()
	tk := newToken(now)

	q, args, err := buildActiveTokensQuery(ctx, tk.UserID, now)
	require.NoError(t, err)
	assert.Contains(t, q, "replaced_by IS NULL")
	assert.Contains(t, q, "revoked_at IS NULL")
	assert.Equal(t, []any{tk.UserID.String(), now, now}, args)

	mock.ExpectQuery(regexp.QuoteMeta(q)).
		WithArgs(tk.UserID.String(), now, now).
		WillReturnRows(
			sqlmock.NewRows(tokenCols).AddRow(
				tk.ID.String(), tk.UserID.String(), tk.TokenHash, tk.DeviceID, tk.IP, tk.UA,
				tk.IssuedAt, nil, tk.IdleExpiresAt, tk.AbsoluteExpiresAt, nil, nil,
			),
		)

	res, err := r.ListActiveTokens(ctx, tk.UserID, now)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, tk.ID, res[0].ID)
	assert.Nil(t, res[0].ReplacedBy)

	assert.NoError(t, mock.ExpectationsWereMet())
}
