package middleware

import (
	"sync"
	"time"

	"studio/config"
	deliverycontext "studio/internal/delivery/context"
	domainerrors "studio/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles writes per caller: the authenticated user when known,
// the client IP otherwise.
type RateLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor
	lastGC   time.Time
}

func NewRateLimiter(cfg *config.Config) *RateLimiter {
	rl := &RateLimiter{
		limit:    rate.Inf,
		now:      time.Now,
		visitors: make(map[string]*visitor),
	}

	if rpm := cfg.RateLimit.RequestsPerMinute; rpm > 0 {
		rl.limit = rate.Every(time.Minute / time.Duration(rpm))
		rl.burst = max(cfg.RateLimit.Burst, 1)
	}

	return rl
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastGC) > limiterIdleTTL {
		for k, v := range rl.visitors {
			if now.Sub(v.lastSeen) > limiterIdleTTL {
				delete(rl.visitors, k)
			}
		}
		rl.lastGC = now
	}

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if rl.limit == rate.Inf {
			return next(c)
		}

		key := "ip:" + c.RealIP()
		if actor, ok := deliverycontext.GetActor(c); ok {
			key = "user:" + actor.UserID
		}

		if !rl.allow(key) {
			return domainerrors.ErrRateLimited
		}

		return next(c)
	}
}
