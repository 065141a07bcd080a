package memory

import (
	"context"
	"sync"

	md "github.com/JMURv/auth-guard/internal/models"
	"github.com/google/uuid"
)

// Repository keeps users and refresh tokens in process memory. Every read
// hands out a copy so callers cannot mutate stored rows.
type Repository struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]*md.User
	byEmail map[string]uuid.UUID
	tokens  map[uuid.UUID]*md.RefreshToken
	byHash  map[string]uuid.UUID
}

func New() *Repository {
	return &Repository{
		users:   make(map[uuid.UUID]*md.User),
		byEmail: make(map[string]uuid.UUID),
		tokens:  make(map[uuid.UUID]*md.RefreshToken),
		byHash:  make(map[string]uuid.UUID),
	}
}

func (r *Repository) Close(_ context.Context) error {
	return nil
}

func copyToken(t *md.RefreshToken) *md.RefreshToken {
	c := *t
	if t.LastUsedAt != nil {
		v := *t.LastUsedAt
		c.LastUsedAt = &v
	}
	if t.ReplacedBy != nil {
		v := *t.ReplacedBy
		c.ReplacedBy = &v
	}
	if t.RevokedAt != nil {
		v := *t.RevokedAt
		c.RevokedAt = &v
	}
	return &c
}
