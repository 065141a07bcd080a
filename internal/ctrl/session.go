package ctrl

import (
	"context"

	"github.com/JMURv/auth-guard/internal/dto"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
)

func (c *Controller) ListSessions(ctx context.Context, uid uuid.UUID) ([]dto.SessionResponse, error) {
	const op = "auth.ListSessions.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	tokens, err := c.tokens.ListActive(ctx, uid)
	if err != nil {
		return nil, err
	}

	res := make([]dto.SessionResponse, 0, len(tokens))
	for _, t := range tokens {
		res = append(res, dto.SessionResponse{
			DeviceID:          t.DeviceID,
			IP:                t.IP,
			UA:                t.UA,
			IssuedAt:          t.IssuedAt,
			LastUsedAt:        t.LastUsedAt,
			IdleExpiresAt:     t.IdleExpiresAt,
			AbsoluteExpiresAt: t.AbsoluteExpiresAt,
		})
	}
	return res, nil
}

// RevokeSession ends one device session of the user.
func (c *Controller) RevokeSession(ctx context.Context, uid uuid.UUID, deviceID string) error {
	const op = "auth.RevokeSession.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	n, err := c.tokens.RevokeChain(ctx, uid, deviceID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
