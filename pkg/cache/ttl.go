package cache

import (
	"context"
	"time"
)

// Capped bounds the TTL of every Set on the wrapped cache.
type Capped struct {
	Cache
	Max time.Duration
}

// CapTTL wraps c so that no entry outlives max. A non-positive max returns c
// unchanged.
func CapTTL(c Cache, max time.Duration) Cache {
	if max <= 0 {
		return c
	}
	return &Capped{Cache: c, Max: max}
}

// Set implements Cache.
func (c *Capped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 || ttl > c.Max {
		ttl = c.Max
	}
	return c.Cache.Set(ctx, key, data, ttl)
}

// Clear forwards to the wrapped cache when it supports clearing.
func (c *Capped) Clear(ctx context.Context) (int, error) {
	if cl, ok := c.Cache.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return 0, nil
}

var _ Clearer = (*Capped)(nil)
