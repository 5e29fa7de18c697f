package api

import (
	"net/http"
	"sync"
	"time"

	"wolfpack/fitness-hub/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type rateLimiter struct {
	limiter *rate.Limiter
	expires time.Time
}

var (
	limiters   = map[string]*rateLimiter{}
	limitersMu sync.Mutex
)

// RateLimitMiddleware applies an IP based token bucket. It guards the
// credential endpoints, where bcrypt makes each request expensive.
func RateLimitMiddleware(cfg config.RateLimitConfig) gin.HandlerFunc {
	perMinute := cfg.PerMinute
	if perMinute < 1 {
		perMinute = 1
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	r := rate.Every(time.Minute / time.Duration(perMinute))

	return func(c *gin.Context) {
		if !getLimiter(c.ClientIP(), r, burst).Allow() {
			abortWithError(c, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		c.Next()
	}
}

func getLimiter(key string, limit rate.Limit, burst int) *rate.Limiter {
	limitersMu.Lock()
	defer limitersMu.Unlock()

	cleanupExpiredLimitersLocked()

	if entry, ok := limiters[key]; ok {
		entry.expires = time.Now().Add(5 * time.Minute)
		return entry.limiter
	}

	entry := &rateLimiter{
		limiter: rate.NewLimiter(limit, burst),
		expires: time.Now().Add(5 * time.Minute),
	}
	limiters[key] = entry
	return entry.limiter
}

func cleanupExpiredLimitersLocked() {
	now := time.Now()
	for key, entry := range limiters {
		if now.After(entry.expires) {
			delete(limiters, key)
		}
	}
}
