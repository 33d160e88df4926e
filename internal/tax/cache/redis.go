package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/invoicefill/internal/clock"
	"github.com/smallbiznis/invoicefill/internal/config"
	taxdomain "github.com/smallbiznis/invoicefill/internal/tax/domain"
	"go.uber.org/fx"
)

const (
	keyTaxRate = "invoicefill:tax:rate:"
	defaultTTL = 24 * time.Hour
)

// RedisCache keeps known tax rates keyed by postal code.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type CacheParam struct {
	fx.In

	Cfg   config.Config
	Clock clock.Clock
	Redis *redis.Client `optional:"true"`
}

// NewCache prefers redis and falls back to an in-process cache.
func NewCache(p CacheParam) taxdomain.Cache {
	if p.Redis == nil {
		return NewMemoryCache(p.Cfg.Tax.CacheTTL, p.Clock)
	}
	return NewRedisCache(p.Redis, p.Cfg.Tax.CacheTTL)
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, zip string) (taxdomain.Rate, bool, error) {
	raw, err := c.client.Get(ctx, key(zip)).Result()
	if errors.Is(err, redis.Nil) {
		return taxdomain.Unknown, false, nil
	}
	if err != nil {
		return taxdomain.Unknown, false, err
	}

	pct, err := decimal.NewFromString(raw)
	if err != nil {
		// Corrupt entry; drop it so the next lookup refreshes.
		_ = c.client.Del(ctx, key(zip)).Err()
		return taxdomain.Unknown, false, nil
	}
	return taxdomain.NewRate(pct), true, nil
}

func (c *RedisCache) Set(ctx context.Context, zip string, rate taxdomain.Rate) error {
	pct, ok := rate.Percent()
	if !ok {
		return nil
	}
	return c.client.Set(ctx, key(zip), pct.String(), c.ttl).Err()
}

func key(zip string) string {
	return keyTaxRate + strings.ToUpper(strings.TrimSpace(zip))
}
