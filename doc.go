// Package lru provides thread-safe, fixed size LRU caches.
//
// Cache wraps the non-thread-safe simplelru.LRU and serializes every call
// through an RWLocker. Eviction callbacks are collected while the lock is
// held and invoked after it is released, so a callback may safely call
// back into the cache.
//
// LoadingCache is a read-through Cache: a miss runs a LoadFunc, and
// concurrent misses on the same key share a single load.
package lru
