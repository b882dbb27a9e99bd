package lru

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

type options[K comparable, V any] struct {
	onEvict func(key K, value V)
	locker  RWLocker
	logger  zerolog.Logger
	keyFunc func(key K) string
}

// Option configures a Cache or LoadingCache.
type Option[K comparable, V any] func(*options[K, V])

// WithCallback sets a function invoked, outside the cache lock, for every
// entry that leaves the cache through eviction, Remove, Purge or Resize.
func WithCallback[K comparable, V any](onEvict func(key K, value V)) Option[K, V] {
	return func(o *options[K, V]) {
		o.onEvict = onEvict
	}
}

// WithLocker replaces the default sync.RWMutex. Pass NoOpRWLocker{} when
// the caller already serializes every call on the cache.
func WithLocker[K comparable, V any](locker RWLocker) Option[K, V] {
	return func(o *options[K, V]) {
		if locker != nil {
			o.locker = locker
		}
	}
}

// WithLogger sets the logger used for eviction events.
func WithLogger[K comparable, V any](logger zerolog.Logger) Option[K, V] {
	return func(o *options[K, V]) {
		o.logger = logger
	}
}

// WithKeyFunc sets how a LoadingCache turns a key into the string that
// identifies its in-flight load. The default combines the dynamic type and
// the %#v form of the key; keys that still collide need their own function.
func WithKeyFunc[K comparable, V any](keyFunc func(key K) string) Option[K, V] {
	return func(o *options[K, V]) {
		if keyFunc != nil {
			o.keyFunc = keyFunc
		}
	}
}

func newOptions[K comparable, V any](opts []Option[K, V]) *options[K, V] {
	o := &options[K, V]{
		locker:  &sync.RWMutex{},
		logger:  zerolog.Nop(),
		keyFunc: defaultKeyFunc[K],
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func defaultKeyFunc[K comparable](key K) string {
	return fmt.Sprintf("%T:%#v", key, key)
}
