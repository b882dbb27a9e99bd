package lru

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"
)

// LoadFunc produces the value for a key missing from a LoadingCache.
type LoadFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// LoadingCache is a thread-safe LRU cache that fills itself on a miss.
//
// Concurrent misses on the same key wait for one shared load instead of
// each calling LoadFunc. Failed loads are returned to every waiter and are
// not cached.
type LoadingCache[K comparable, V any] struct {
	cache   *Cache[K, V]
	load    LoadFunc[K, V]
	keyFunc func(key K) string
	group   singleflight.Group
}

// NewLoading creates a LoadingCache of the given size backed by load.
func NewLoading[K comparable, V any](size int, load LoadFunc[K, V], opts ...Option[K, V]) (*LoadingCache[K, V], error) {
	if load == nil {
		return nil, fmt.Errorf("%w: load function is required", ErrInvalidConfig)
	}
	o := newOptions(opts)
	cache, err := newCache(size, o)
	if err != nil {
		return nil, err
	}
	return &LoadingCache[K, V]{
		cache:   cache,
		load:    load,
		keyFunc: o.keyFunc,
	}, nil
}

// Get returns the cached value for key, loading it on a miss.
//
// The shared load runs detached from the cancellation of whichever caller
// started it, so one caller giving up does not fail the others. A caller
// whose ctx is done stops waiting and gets ctx.Err().
func (c *LoadingCache[K, V]) Get(ctx context.Context, key K) (V, error) {
	if value, ok := c.cache.Get(key); ok {
		return value, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(c.keyFunc(key), func() (any, error) {
		// another flight may have filled the key since our miss
		if value, ok := c.cache.Peek(key); ok {
			return value, nil
		}
		value, err := c.load(loadCtx, key)
		if err != nil {
			return nil, err
		}
		c.cache.Add(key, value)
		return value, nil
	})

	var zero V
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		value, _ := res.Val.(V)
		return value, nil
	}
}

// Peek returns the cached value for key without loading or updating its
// recent-ness.
func (c *LoadingCache[K, V]) Peek(key K) (value V, ok bool) {
	return c.cache.Peek(key)
}

// Invalidate drops key so the next Get loads it again.
func (c *LoadingCache[K, V]) Invalidate(key K) bool {
	return c.cache.Remove(key)
}

// Purge drops every cached value.
func (c *LoadingCache[K, V]) Purge() {
	c.cache.Purge()
}

// Len returns the number of cached values.
func (c *LoadingCache[K, V]) Len() int {
	return c.cache.Len()
}

// Stats returns the counters of the underlying cache. Every Get counts as
// exactly one hit or miss.
func (c *LoadingCache[K, V]) Stats() Stats {
	return c.cache.Stats()
}
