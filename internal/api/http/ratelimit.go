package http

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	apperrors "github.com/spec-kit/church-service/pkg/util"
)

// ipRateLimiter keeps one token bucket per client IP.
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func newIPRateLimiter(rps float64, burst int) *ipRateLimiter {
	if rps <= 0 {
		rps = 5
	}
	if burst <= 0 {
		burst = 10
	}
	return &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (l *ipRateLimiter) limiterFor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(l.rps, l.burst)
		l.limiters[ip] = limiter
	}
	return limiter
}

// RateLimit throttles requests per client IP with a token bucket. Applied to
// the /auth group to blunt credential-stuffing runs; the per-account lockout
// in Redis handles targeted guessing.
func RateLimit(rps float64, burst int) fiber.Handler {
	limiter := newIPRateLimiter(rps, burst)
	return func(c *fiber.Ctx) error {
		if !limiter.limiterFor(c.IP()).Allow() {
			return apperrors.NewTooManyRequests("rate limit exceeded")
		}
		return c.Next()
	}
}
