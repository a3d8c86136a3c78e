package cache

import (
	"context"
	"time"

	"github.com/Ortofta/kaoto/pkg/observability"
)

// Observed reports every Get and Set of the wrapped cache to the registered
// observability cache hooks.
type Observed struct {
	Cache
}

// Observe wraps c so that its traffic is reported to observability hooks.
func Observe(c Cache) Cache {
	if c == nil {
		c = NewNullCache()
	}
	return &Observed{Cache: c}
}

// Get implements Cache.
func (o *Observed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := o.Cache.Get(ctx, key)
	if err != nil {
		return data, hit, err
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType(key))
	} else {
		observability.Cache().OnCacheMiss(ctx, keyType(key))
	}
	return data, hit, nil
}

// Set implements Cache.
func (o *Observed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := o.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

// Clear forwards to the wrapped cache when it supports clearing.
func (o *Observed) Clear(ctx context.Context) (int, error) {
	if cl, ok := o.Cache.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return 0, nil
}

var _ Clearer = (*Observed)(nil)
