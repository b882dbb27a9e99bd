package lru

import (
	"github.com/rs/zerolog"

	"github.com/venkatsvpr/ridegrid/simplelru"
)

const (
	// DefaultEvictedBufferSize defines the default buffer size to store evicted key/val
	DefaultEvictedBufferSize = 16
)

// Cache is a thread-safe fixed size LRU cache.
type Cache[K comparable, V any] struct {
	lru         *simplelru.LRU[K, V]
	evictedKeys []K
	evictedVals []V
	onEvictedCB func(k K, v V)
	lock        RWLocker
	logger      zerolog.Logger
	stats       counters
}

var _ simplelru.LRUCache[int, int] = (*Cache[int, int])(nil)

// New creates an LRU of the given size.
func New[K comparable, V any](size int) (*Cache[K, V], error) {
	return NewWithOpts[K, V](size)
}

// NewWithEvict constructs a fixed size cache with the given eviction
// callback.
func NewWithEvict[K comparable, V any](size int, onEvicted func(key K, value V)) (*Cache[K, V], error) {
	return NewWithOpts(size, WithCallback(onEvicted))
}

// NewWithOpts constructs a fixed size cache configured by opts.
func NewWithOpts[K comparable, V any](size int, opts ...Option[K, V]) (*Cache[K, V], error) {
	return newCache(size, newOptions(opts))
}

func newCache[K comparable, V any](size int, o *options[K, V]) (*Cache[K, V], error) {
	c := &Cache[K, V]{
		onEvictedCB: o.onEvict,
		lock:        o.locker,
		logger:      o.logger,
	}
	c.initEvictBuffers()

	var err error
	c.lru, err = simplelru.NewLRU(size, c.onEvicted)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Cache[K, V]) initEvictBuffers() {
	c.evictedKeys = make([]K, 0, DefaultEvictedBufferSize)
	c.evictedVals = make([]V, 0, DefaultEvictedBufferSize)
}

// onEvicted save evicted key/val and sent in externally registered callback
// outside critical section
func (c *Cache[K, V]) onEvicted(k K, v V) {
	c.evictedKeys = append(c.evictedKeys, k)
	c.evictedVals = append(c.evictedVals, v)
}

// takeEvicted hands the buffered entries to the caller. Has to be called
// with lock!
func (c *Cache[K, V]) takeEvicted() (ks []K, vs []V) {
	if len(c.evictedKeys) == 0 {
		return nil, nil
	}
	ks, vs = c.evictedKeys, c.evictedVals
	c.initEvictBuffers()
	return ks, vs
}

// notify logs and reports entries that left the cache. Must be called
// without the lock held.
func (c *Cache[K, V]) notify(reason string, ks []K, vs []V) {
	for i := range ks {
		c.logger.Debug().
			Interface("key", ks[i]).
			Str("reason", reason).
			Msg("cache entry dropped")
		if c.onEvictedCB != nil {
			c.onEvictedCB(ks[i], vs[i])
		}
	}
}

// Purge is used to completely clear the cache.
func (c *Cache[K, V]) Purge() {
	c.lock.Lock()
	c.lru.Purge()
	ks, vs := c.takeEvicted()
	c.lock.Unlock()
	c.notify("purge", ks, vs)
}

// Add adds a value to the cache. Returns true if an eviction occurred.
func (c *Cache[K, V]) Add(key K, value V) (evicted bool) {
	c.lock.Lock()
	evicted = c.lru.Add(key, value)
	ks, vs := c.takeEvicted()
	c.lock.Unlock()
	if evicted {
		c.stats.evictions.Add(1)
	}
	c.notify("capacity", ks, vs)
	return evicted
}

// Get looks up a key's value from the cache.
func (c *Cache[K, V]) Get(key K) (value V, ok bool) {
	c.lock.Lock()
	value, ok = c.lru.Get(key)
	c.lock.Unlock()
	if ok {
		c.stats.hits.Add(1)
	} else {
		c.stats.misses.Add(1)
	}
	return value, ok
}

// Contains checks if a key is in the cache, without updating the
// recent-ness or deleting it for being stale.
func (c *Cache[K, V]) Contains(key K) bool {
	c.lock.RLock()
	containKey := c.lru.Contains(key)
	c.lock.RUnlock()
	return containKey
}

// Peek returns the key value (or undefined if not found) without updating
// the "recently used"-ness of the key.
func (c *Cache[K, V]) Peek(key K) (value V, ok bool) {
	c.lock.RLock()
	value, ok = c.lru.Peek(key)
	c.lock.RUnlock()
	return value, ok
}

// ContainsOrAdd checks if a key is in the cache without updating the
// recent-ness or deleting it for being stale, and if not, adds the value.
// Returns whether found and whether an eviction occurred.
func (c *Cache[K, V]) ContainsOrAdd(key K, value V) (ok, evicted bool) {
	c.lock.Lock()
	if c.lru.Contains(key) {
		c.lock.Unlock()
		return true, false
	}
	evicted = c.lru.Add(key, value)
	ks, vs := c.takeEvicted()
	c.lock.Unlock()
	if evicted {
		c.stats.evictions.Add(1)
	}
	c.notify("capacity", ks, vs)
	return false, evicted
}

// PeekOrAdd checks if a key is in the cache without updating the
// recent-ness or deleting it for being stale, and if not, adds the value.
// Returns whether found and whether an eviction occurred.
func (c *Cache[K, V]) PeekOrAdd(key K, value V) (previous V, ok, evicted bool) {
	c.lock.Lock()
	previous, ok = c.lru.Peek(key)
	if ok {
		c.lock.Unlock()
		return previous, true, false
	}
	evicted = c.lru.Add(key, value)
	ks, vs := c.takeEvicted()
	c.lock.Unlock()
	if evicted {
		c.stats.evictions.Add(1)
	}
	c.notify("capacity", ks, vs)
	return previous, false, evicted
}

// Remove removes the provided key from the cache.
func (c *Cache[K, V]) Remove(key K) (present bool) {
	c.lock.Lock()
	present = c.lru.Remove(key)
	ks, vs := c.takeEvicted()
	c.lock.Unlock()
	c.notify("remove", ks, vs)
	return present
}

// Resize changes the cache size. Sizes below 1 are treated as 1.
func (c *Cache[K, V]) Resize(size int) (evicted int) {
	c.lock.Lock()
	evicted = c.lru.Resize(size)
	ks, vs := c.takeEvicted()
	c.lock.Unlock()
	c.stats.evictions.Add(uint64(evicted))
	c.notify("resize", ks, vs)
	return evicted
}

// RemoveOldest removes the oldest item from the cache.
func (c *Cache[K, V]) RemoveOldest() (key K, value V, ok bool) {
	c.lock.Lock()
	key, value, ok = c.lru.RemoveOldest()
	ks, vs := c.takeEvicted()
	c.lock.Unlock()
	c.notify("remove", ks, vs)
	return key, value, ok
}

// GetOldest returns the oldest entry
func (c *Cache[K, V]) GetOldest() (key K, value V, ok bool) {
	c.lock.RLock()
	key, value, ok = c.lru.GetOldest()
	c.lock.RUnlock()
	return key, value, ok
}

// Keys returns a slice of the keys in the cache, from oldest to newest.
func (c *Cache[K, V]) Keys() []K {
	c.lock.RLock()
	keys := c.lru.Keys()
	c.lock.RUnlock()
	return keys
}

// Values returns a slice of the values in the cache, from oldest to newest.
func (c *Cache[K, V]) Values() []V {
	c.lock.RLock()
	values := c.lru.Values()
	c.lock.RUnlock()
	return values
}

// Len returns the number of items in the cache.
func (c *Cache[K, V]) Len() int {
	c.lock.RLock()
	length := c.lru.Len()
	c.lock.RUnlock()
	return length
}

// Cap returns the capacity of the cache
func (c *Cache[K, V]) Cap() int {
	c.lock.RLock()
	capacity := c.lru.Cap()
	c.lock.RUnlock()
	return capacity
}

// Stats returns a snapshot of the hit, miss and eviction counters.
func (c *Cache[K, V]) Stats() Stats {
	return c.stats.snapshot()
}
