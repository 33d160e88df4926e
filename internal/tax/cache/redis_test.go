package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/invoicefill/internal/clock"
	"github.com/smallbiznis/invoicefill/internal/config"
	taxdomain "github.com/smallbiznis/invoicefill/internal/tax/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client, time.Hour), mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "94107")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, " 94107 ", taxdomain.NewRate(decimal.RequireFromString("8.625"))))

	rate, ok, err := c.Get(ctx, "94107")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "8.625", rate.String())
	assert.Equal(t, time.Hour, mr.TTL("invoicefill:tax:rate:94107"))

	mr.FastForward(2 * time.Hour)
	_, ok, err = c.Get(ctx, "94107")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCacheSkipsUnknown(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, c.Set(context.Background(), "10001", taxdomain.Unknown))
	assert.False(t, mr.Exists("invoicefill:tax:rate:10001"))
}

func TestRedisCacheDropsCorruptEntries(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("invoicefill:tax:rate:10001", "not-a-number"))

	_, ok, err := c.Get(context.Background(), "10001")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists("invoicefill:tax:rate:10001"))
}

func TestNewCacheSelectsBackend(t *testing.T) {
	clk := clock.NewFakeClock(time.Now())
	assert.IsType(t, &MemoryCache{}, NewCache(CacheParam{Cfg: config.Config{}, Clock: clk}))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	assert.IsType(t, &RedisCache{}, NewCache(CacheParam{Cfg: config.Config{}, Clock: clk, Redis: client}))
}
