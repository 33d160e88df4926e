package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const localIdleTTL = 10 * time.Minute

// LocalLimiter keeps one x/time/rate limiter per key in process memory.
// Idle keys are dropped on the next sweep.
type LocalLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	now       func() time.Time
	buckets   map[string]*localBucket
	lastSweep time.Time
}

type localBucket struct {
	limiter *rate.Limiter
	seen    time.Time
}

func NewLocalLimiter(rps float64, burst int) *LocalLimiter {
	return &LocalLimiter{
		limit:   rate.Limit(rps),
		burst:   normalizeBurst(burst),
		now:     time.Now,
		buckets: make(map[string]*localBucket),
	}
}

func (l *LocalLimiter) Allow(ctx context.Context, key string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if key == "" {
		return Result{}, errEmptyKey
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &localBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.seen = now

	res := Result{Limit: l.burst}
	if b.limiter.AllowN(now, 1) {
		res.Allowed = true
		res.Remaining = int(b.limiter.TokensAt(now))
		return res, nil
	}
	res.RetryAfter = refillDelay(1-b.limiter.TokensAt(now), float64(l.limit))
	return res, nil
}

func (l *LocalLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < localIdleTTL {
		return
	}
	l.lastSweep = now
	for key, b := range l.buckets {
		if now.Sub(b.seen) >= localIdleTTL {
			delete(l.buckets, key)
		}
	}
}

func (l *LocalLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
