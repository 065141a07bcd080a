package memory

import (
	"context"
	"sync"
	"time"
)

const maxItems = 5000

type entry struct {
	count     int64
	expiresAt time.Time
}

// Cache is a single-instance keyed counter store. Entries vanish once their
// TTL elapses; nothing has to clean them up explicitly.
type Cache struct {
	mu    sync.Mutex
	items map[string]*entry
	now   func() time.Time
}

func New() *Cache {
	return NewWithClock(time.Now)
}

func NewWithClock(now func() time.Time) *Cache {
	return &Cache{
		items: make(map[string]*entry),
		now:   now,
	}
}

// live returns the entry for key, dropping it if it has expired.
// The caller must hold c.mu.
func (c *Cache) live(key string, now time.Time) *entry {
	e, ok := c.items[key]
	if !ok {
		return nil
	}
	if !now.Before(e.expiresAt) {
		delete(c.items, key)
		return nil
	}
	return e
}

func (c *Cache) Increment(_ context.Context, key string, window time.Duration) (int64, error) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.live(key, now)
	if e == nil {
		e = &entry{expiresAt: now.Add(window)}
		c.items[key] = e
		c.sweep(now)
	}
	e.count++
	return e.count, nil
}

func (c *Cache) Count(_ context.Context, key string) (int64, error) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if e := c.live(key, now); e != nil {
		return e.count, nil
	}
	return 0, nil
}

func (c *Cache) TTL(_ context.Context, key string) (time.Duration, error) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if e := c.live(key, now); e != nil {
		return e.expiresAt.Sub(now), nil
	}
	return 0, nil
}

func (c *Cache) Put(_ context.Context, key string, ttl time.Duration) error {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = &entry{count: 1, expiresAt: now.Add(ttl)}
	c.sweep(now)
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}

func (c *Cache) Close() error {
	return nil
}

// sweep drops expired entries once the map grows past maxItems.
// The caller must hold c.mu.
func (c *Cache) sweep(now time.Time) {
	if len(c.items) <= maxItems {
		return
	}
	for key, e := range c.items {
		if !now.Before(e.expiresAt) {
			delete(c.items, key)
		}
	}
}
