package analysis

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// cache is a read-through result cache keyed by request fingerprint.
// Concurrent misses for one key share a single service call; parse-failed
// results are not stored so a later request can try again. The shared call
// runs detached from the callers' contexts, bounded by its own timeout.
type cache struct {
	lru   *expirable.LRU[string, *Result]
	group singleflight.Group
}

func newCache(size int, ttl time.Duration) *cache {
	if size < 0 {
		size = 0
	}
	return &cache{lru: expirable.NewLRU[string, *Result](size, nil, ttl)}
}

func (c *cache) get(key string) (*Result, bool) {
	return c.lru.Get(key)
}

func (c *cache) fill(ctx context.Context, key string, timeout time.Duration, fn func(context.Context) (*Result, error)) (*Result, error) {
	ch := c.group.DoChan(key, func() (any, error) {
		if res, ok := c.lru.Get(key); ok {
			return res, nil
		}
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		res, err := fn(callCtx)
		if err != nil {
			return nil, err
		}
		if !res.ParseFailed && !c.lru.Contains(key) {
			c.lru.Add(key, res)
		}
		return res, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*Result), nil
	}
}

// CacheLen reports the number of cached results.
func (c *Client) CacheLen() int { return c.cache.lru.Len() }
