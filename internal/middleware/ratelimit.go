package middleware

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"CASHTRACKR_BACK-END/internal/utils"
)

// RateLimiter applies a per-client limit, keyed by remote address. It guards
// the endpoints that trigger outbound email (account creation and
// password-reset requests).
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
}

// NewRateLimiter creates a rate limiter allowing requestsPerSecond with the
// given burst per client.
func NewRateLimiter(requestsPerSecond, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter
}

// Limit wraps a handler with the per-client rate check.
func (rl *RateLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			key = host
		}

		if !rl.getLimiter(key).Allow() {
			utils.WriteErrorResponse(w, http.StatusTooManyRequests, "Too many requests", "Please try again later")
			return
		}

		next.ServeHTTP(w, r)
	}
}
