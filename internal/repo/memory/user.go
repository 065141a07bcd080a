package memory

import (
	"context"
	"time"

	md "github.com/JMURv/auth-guard/internal/models"
	"github.com/JMURv/auth-guard/internal/repo"
	"github.com/google/uuid"
)

func (r *Repository) CreateUser(_ context.Context, u *md.User) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[u.Email]; ok {
		return uuid.Nil, repo.ErrAlreadyExists
	}

	c := *u
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now

	r.users[c.ID] = &c
	r.byEmail[c.Email] = c.ID
	return c.ID, nil
}

func (r *Repository) GetUserByID(_ context.Context, id uuid.UUID) (*md.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (r *Repository) GetUserByEmail(_ context.Context, email string) (*md.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	c := *r.users[id]
	return &c, nil
}

func (r *Repository) ActivateUser(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.IsActive, u.IsEmailVerified = true, true
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// SetUserActive flips the active flag. Used to suspend accounts.
func (r *Repository) SetUserActive(_ context.Context, id uuid.UUID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.IsActive = active
	u.UpdatedAt = time.Now().UTC()
	return nil
}
