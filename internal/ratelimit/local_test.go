package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLimiterBurstThenDeny(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	l := NewLocalLimiter(1, 2)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}

	res, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 2, res.Limit)
	assert.InDelta(t, time.Second, res.RetryAfter, float64(10*time.Millisecond))

	other, err := l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, other.Allowed)

	now = now.Add(time.Second)
	res, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestLocalLimiterSweepsIdleKeys(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	l := NewLocalLimiter(5, 5)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := l.Allow(ctx, "a")
	require.NoError(t, err)
	_, err = l.Allow(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 2, l.size())

	now = now.Add(localIdleTTL + time.Second)
	_, err = l.Allow(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, 1, l.size())
}

func TestLocalLimiterRejectsEmptyKey(t *testing.T) {
	_, err := NewLocalLimiter(1, 1).Allow(context.Background(), "")
	assert.ErrorIs(t, err, errEmptyKey)
}
