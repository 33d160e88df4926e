package cache

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/invoicefill/internal/clock"
	taxdomain "github.com/smallbiznis/invoicefill/internal/tax/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheExpires(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	c := NewMemoryCache(time.Hour, clk)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "94107", taxdomain.NewRate(decimal.RequireFromString("8.625"))))

	rate, ok, err := c.Get(ctx, " 94107 ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "8.625", rate.String())

	clk.Advance(time.Hour)
	_, ok, err = c.Get(ctx, "94107")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheSkipsUnknown(t *testing.T) {
	c := NewMemoryCache(time.Hour, clock.NewFakeClock(time.Now()))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "94107", taxdomain.Unknown))
	_, ok, err := c.Get(ctx, "94107")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheBounded(t *testing.T) {
	clk := clock.NewFakeClock(time.Now())
	c := NewMemoryCache(time.Hour, clk)
	c.maxEntries = 2
	ctx := context.Background()
	rate := taxdomain.NewRate(decimal.NewFromInt(5))

	require.NoError(t, c.Set(ctx, "a", rate))
	require.NoError(t, c.Set(ctx, "b", rate))
	require.NoError(t, c.Set(ctx, "c", rate))
	assert.LessOrEqual(t, len(c.entries), 2)

	_, ok, err := c.Get(ctx, "c")
	require.NoError(t, err)
	assert.True(t, ok)
}
