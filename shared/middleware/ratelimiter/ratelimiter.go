package ratelimiter

import (
	"sync"
	"time"
)

// bucket is a token bucket for a single identity.
type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// UserRateLimiter keeps a token bucket per identity (user id, ip, ...).
// rate is tokens added per second, burst is the bucket capacity.
// Buckets untouched for ttl are dropped by a background sweep.
type UserRateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    float64
	burst   int
	ttl     time.Duration
	done    chan struct{}
}

func New(rate float64, burst int, ttl time.Duration) *UserRateLimiter {
	rl := &UserRateLimiter{
		buckets: make(map[string]*bucket),
		rate:    rate,
		burst:   burst,
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Allow reports whether the identity may proceed and consumes a token if so.
func (rl *UserRateLimiter) Allow(identity string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[identity]
	if !ok {
		b = &bucket{tokens: float64(rl.burst)}
		rl.buckets[identity] = b
	} else {
		elapsed := now.Sub(b.lastSeen).Seconds()
		b.tokens = min(float64(rl.burst), b.tokens+elapsed*rl.rate)
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Stop terminates the background cleanup goroutine.
func (rl *UserRateLimiter) Stop() {
	close(rl.done)
}

func (rl *UserRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-rl.ttl)
			rl.mu.Lock()
			for identity, b := range rl.buckets {
				if b.lastSeen.Before(cutoff) {
					delete(rl.buckets, identity)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Common presets used by the router.

func Rps10() *UserRateLimiter {
	return New(10, 10, time.Hour)
}

func Rps100() *UserRateLimiter {
	return New(100, 100, time.Hour)
}

func Rps1000() *UserRateLimiter {
	return New(1000, 1000, time.Hour)
}

func OnceInSecond() *UserRateLimiter {
	return New(1, 1, time.Hour)
}

func OnceInMinute() *UserRateLimiter {
	return New(1.0/60.0, 1, time.Hour)
}
