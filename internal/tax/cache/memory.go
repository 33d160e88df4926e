package cache

import (
	"context"
	"sync"
	"time"

	"github.com/smallbiznis/invoicefill/internal/clock"
	taxdomain "github.com/smallbiznis/invoicefill/internal/tax/domain"
)

const defaultMaxEntries = 10000

type memoryEntry struct {
	rate    taxdomain.Rate
	expires time.Time
}

// MemoryCache is the in-process fallback used when redis is not configured.
// Entries are not shared across replicas.
type MemoryCache struct {
	mu         sync.Mutex
	clock      clock.Clock
	ttl        time.Duration
	maxEntries int
	entries    map[string]memoryEntry
}

func NewMemoryCache(ttl time.Duration, clk clock.Clock) *MemoryCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if clk == nil {
		clk = clock.NewSystemClock()
	}
	return &MemoryCache{
		clock:      clk,
		ttl:        ttl,
		maxEntries: defaultMaxEntries,
		entries:    make(map[string]memoryEntry),
	}
}

func (c *MemoryCache) Get(_ context.Context, zip string) (taxdomain.Rate, bool, error) {
	k := key(zip)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[k]
	if !ok {
		return taxdomain.Unknown, false, nil
	}
	if !c.clock.Now().Before(e.expires) {
		delete(c.entries, k)
		return taxdomain.Unknown, false, nil
	}
	return e.rate, true, nil
}

func (c *MemoryCache) Set(_ context.Context, zip string, rate taxdomain.Rate) error {
	if !rate.Known() {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if len(c.entries) >= c.maxEntries {
		c.evict(now)
	}
	c.entries[key(zip)] = memoryEntry{rate: rate, expires: now.Add(c.ttl)}
	return nil
}

// evict drops expired entries, then arbitrary ones until there is room.
func (c *MemoryCache) evict(now time.Time) {
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
		}
	}
	for k := range c.entries {
		if len(c.entries) < c.maxEntries {
			return
		}
		delete(c.entries, k)
	}
}
