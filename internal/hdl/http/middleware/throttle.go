package middleware

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/JMURv/auth-guard/internal/config"
	"github.com/JMURv/auth-guard/internal/hdl/http/utils"
	"golang.org/x/time/rate"
)

var ErrTooManyRequests = errors.New("too many requests")

const throttleIdle = 5 * time.Minute

// Throttle is a coarse per-address request limiter in front of the auth
// endpoints. It is independent from the per-identity login guards.
type Throttle struct {
	limit   rate.Limit
	burst   int
	mu      sync.Mutex
	clients map[string]*client
	now     func() time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewThrottle returns nil when throttling is disabled. A nil Throttle
// passes every request through.
func NewThrottle(conf config.ThrottleConfig) *Throttle {
	if !conf.Enabled || conf.RPS <= 0 {
		return nil
	}

	burst := conf.Burst
	if burst < 1 {
		burst = 1
	}
	return &Throttle{
		limit:   rate.Limit(conf.RPS),
		burst:   burst,
		clients: make(map[string]*client),
		now:     time.Now,
	}
}

func (t *Throttle) Handler(next http.Handler) http.Handler {
	if t == nil {
		return next
	}

	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if !t.limiter(ClientIP(r)).Allow() {
				w.Header().Set("Retry-After", "1")
				utils.ErrResponse(w, http.StatusTooManyRequests, ErrTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		},
	)
}

func (t *Throttle) limiter(key string) *rate.Limiter {
	now := t.now()
	t.mu.Lock()
	defer t.mu.Unlock()

	if c, ok := t.clients[key]; ok {
		c.lastSeen = now
		return c.limiter
	}

	l := rate.NewLimiter(t.limit, t.burst)
	t.clients[key] = &client{limiter: l, lastSeen: now}
	for k, c := range t.clients {
		if now.Sub(c.lastSeen) > throttleIdle {
			delete(t.clients, k)
		}
	}
	return l
}
