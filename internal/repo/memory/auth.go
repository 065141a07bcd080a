package memory

import (
	"context"
	"sort"
	"time"

	md "github.com/JMURv/auth-guard/internal/models"
	"github.com/JMURv/auth-guard/internal/repo"
	"github.com/google/uuid"
)

func (r *Repository) CreateToken(_ context.Context, t *md.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.insertToken(t)
}

// insertToken must be called with r.mu held.
func (r *Repository) insertToken(t *md.RefreshToken) error {
	if _, ok := r.tokens[t.ID]; ok {
		return repo.ErrAlreadyExists
	}
	if _, ok := r.byHash[t.TokenHash]; ok {
		return repo.ErrAlreadyExists
	}

	r.tokens[t.ID] = copyToken(t)
	r.byHash[t.TokenHash] = t.ID
	return nil
}

func (r *Repository) GetTokenByHash(_ context.Context, hash string) (*md.RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byHash[hash]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return copyToken(r.tokens[id]), nil
}

func (r *Repository) GetTokenByID(_ context.Context, id uuid.UUID) (*md.RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tokens[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return copyToken(t), nil
}

func (r *Repository) RotateToken(_ context.Context, currentID uuid.UUID, next *md.RefreshToken, usedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.tokens[currentID]
	if !ok || cur.Revoked() {
		return repo.ErrNotFound
	}
	if cur.Replaced() {
		return repo.ErrConflict
	}

	if err := r.insertToken(next); err != nil {
		return err
	}

	id := next.ID
	cur.ReplacedBy = &id
	cur.LastUsedAt = &usedAt
	return nil
}

func (r *Repository) RevokeToken(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tokens[id]
	if !ok {
		return repo.ErrNotFound
	}
	if t.RevokedAt == nil {
		t.RevokedAt = &at
	}
	return nil
}

func (r *Repository) RevokeByDevice(_ context.Context, userID uuid.UUID, deviceID string, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, t := range r.tokens {
		if t.UserID == userID && t.DeviceID == deviceID && t.RevokedAt == nil {
			t.RevokedAt = &at
			n++
		}
	}
	return n, nil
}

func (r *Repository) RevokeAllTokens(_ context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, t := range r.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &at
			n++
		}
	}
	return n, nil
}

func (r *Repository) ListActiveTokens(_ context.Context, userID uuid.UUID, now time.Time) ([]*md.RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*md.RefreshToken, 0)
	for _, t := range r.tokens {
		if t.UserID != userID || t.Revoked() || t.Replaced() || t.Expired(now) {
			continue
		}
		res = append(res, copyToken(t))
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].IssuedAt.After(res[j].IssuedAt)
	})
	return res, nil
}
