package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Policy allows Limit requests per Window, refilled continuously
type Policy struct {
	Limit  int
	Window time.Duration
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per namespace:key pair. Each namespace
// has its own policy.
//
// Example usage:
//
//	rl := ratelimiter.NewRateLimiter()
//	rl.SetPolicy("onboarding", 10, time.Minute)
//
//	if ok, retryAfter := rl.Allow("onboarding", clientIP); !ok {
//	    w.Header().Set("Retry-After", ...)
//	}
type RateLimiter struct {
	mu          sync.Mutex
	buckets     map[string]*bucket
	policies    map[string]Policy
	now         func() time.Time
	idleTTL     time.Duration
	stopCleanup chan struct{}
	stopped     bool
}

// NewRateLimiter creates a rate limiter and starts the goroutine that drops
// idle buckets. Call Stop when done.
func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{
		buckets:     make(map[string]*bucket),
		policies:    make(map[string]Policy),
		now:         time.Now,
		idleTTL:     10 * time.Minute,
		stopCleanup: make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// SetPolicy configures the policy of a namespace and resets its buckets
func (rl *RateLimiter) SetPolicy(namespace string, limit int, window time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.policies[namespace] = Policy{Limit: limit, Window: window}
	prefix := namespace + ":"
	for k := range rl.buckets {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			delete(rl.buckets, k)
		}
	}
}

// Allow consumes one token for key. When the bucket is empty it returns false
// and how long until the next token. A namespace without policy is denied.
func (rl *RateLimiter) Allow(namespace, key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	policy, ok := rl.policies[namespace]
	if !ok || policy.Limit <= 0 || policy.Window <= 0 {
		return false, 0
	}

	now := rl.now()
	id := namespace + ":" + key
	b, ok := rl.buckets[id]
	if !ok {
		every := policy.Window / time.Duration(policy.Limit)
		b = &bucket{limiter: rate.NewLimiter(rate.Every(every), policy.Limit)}
		rl.buckets[id] = b
	}
	b.lastSeen = now

	reservation := b.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, policy.Window
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Reset drops the bucket of key, restoring its full allowance
func (rl *RateLimiter) Reset(namespace, key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	delete(rl.buckets, namespace+":"+key)
}

// Stop ends the cleanup goroutine. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if !rl.stopped {
		close(rl.stopCleanup)
		rl.stopped = true
	}
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictIdle()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *RateLimiter) evictIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.idleTTL)
	for id, b := range rl.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(rl.buckets, id)
		}
	}
}
