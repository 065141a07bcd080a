package db

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/JMURv/auth-guard/internal/config"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

// buildActiveTokensQuery selects the live head of every device chain of the
// user, newest first.
func buildActiveTokensQuery(ctx context.Context, userID uuid.UUID, now time.Time) (string, []any, error) {
	const op = "auth.buildActiveTokensQuery.repo"
	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	query := sq.Select(tokenColumns).
		From("refresh_tokens").
		Where(sq.Eq{"user_id": userID.String()}).
		Where(sq.Eq{"replaced_by": nil}).
		Where(sq.Eq{"revoked_at": nil}).
		Where(sq.Gt{"idle_expires_at": now}).
		Where(sq.Gt{"absolute_expires_at": now}).
		OrderBy("issued_at DESC").
		PlaceholderFormat(sq.Dollar)

	q, args, err := query.ToSql()
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to build query", zap.String("op", op), zap.Error(err))
		return "", nil, err
	}
	return q, args, nil
}
