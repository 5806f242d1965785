package ratelimit

import (
	"sync"
	"time"
)

// tokenBucket refills at a steady rate up to its capacity
type tokenBucket struct {
	mu         sync.Mutex
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	now        func() time.Time
}

func newTokenBucket(capacity int, refillRate float64, now func() time.Time) *tokenBucket {
	return &tokenBucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: now(),
		now:        now,
	}
}

// refill must be called with mu held
func (tb *tokenBucket) refill() time.Time {
	now := tb.now()
	tb.tokens = min(tb.capacity, tb.tokens+now.Sub(tb.lastRefill).Seconds()*tb.refillRate)
	tb.lastRefill = now
	return now
}

// take consumes one token when available and reports the bucket state after
func (tb *tokenBucket) take() (allowed bool, remaining int, resetTime time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.refill()
	if tb.tokens >= 1 {
		tb.tokens--
		allowed = true
	}

	resetTime = now
	if tb.tokens < tb.capacity {
		secondsUntilFull := (tb.capacity - tb.tokens) / tb.refillRate
		resetTime = now.Add(time.Duration(secondsUntilFull * float64(time.Second)))
	}
	return allowed, int(tb.tokens), resetTime
}
