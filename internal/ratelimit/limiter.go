// Package ratelimit throttles invoice generation per client.
package ratelimit

import (
	"context"
	"time"
)

// Result describes one admission decision.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter admits or rejects a request for key.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

func normalizeBurst(burst int) int {
	if burst < 1 {
		return 1
	}
	return burst
}
