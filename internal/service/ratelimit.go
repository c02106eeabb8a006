package service

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter is a per-key token bucket limiter backed by x/time/rate.
// It is safe for concurrent use. Idle keys are cleaned up periodically.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
}

type limiterEntry struct {
	limiter *rate.Limiter
	last    time.Time
}

// NewRateLimiter creates a limiter that allows up to burst events per key,
// refilling at perSecond events per second. It starts a background goroutine
// that periodically removes idle keys.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(perSecond),
		burst:    burst,
	}
	go rl.cleanup()
	return rl
}

// Allow reports whether the given key may proceed. Each call consumes one token.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	e, ok := rl.limiters[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = e
	}
	e.last = time.Now()
	return e.limiter.Allow()
}

// cleanup runs periodically and removes keys that haven't been used in 10 minutes.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		rl.mu.Lock()
		cutoff := time.Now().Add(-10 * time.Minute)
		for key, e := range rl.limiters {
			if e.last.Before(cutoff) {
				delete(rl.limiters, key)
			}
		}
		rl.mu.Unlock()
	}
}
