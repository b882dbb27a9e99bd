// Package testutils holds conformance tests shared by every
// simplelru.LRUCache implementation in this module.
package testutils

import (
	"testing"

	"github.com/venkatsvpr/ridegrid/simplelru"
)

// BasicTest fills l with twice its capacity and checks eviction, removal
// and key ordering. evictCounter must be incremented by the cache's
// eviction callback.
func BasicTest(t *testing.T, l simplelru.LRUCache[int, int], capacity int, evictCounter *int) {
	t.Helper()

	// add twice as much the capacity to check if eviction occurs
	for i := 0; i < 2*capacity; i++ {
		l.Add(i, i)
	}

	if l.Len() != capacity {
		t.Fatalf("bad len: %v", l.Len())
	}

	// half of them should be evicted to make room for the incoming ones
	if *evictCounter != capacity {
		t.Fatalf("bad evict count: %v", *evictCounter)
	}

	// cache should contain only the keys from capacity..2*capacity, anything before
	// that should have been evicted
	for i, k := range l.Keys() {
		if v, ok := l.Get(k); !ok || v != k || v != i+capacity {
			t.Fatalf("bad key: %v", k)
		}
	}
	for i, v := range l.Values() {
		if v != i+capacity {
			t.Fatalf("bad value: %v", v)
		}
	}

	for i := 0; i < capacity; i++ {
		if _, ok := l.Get(i); ok {
			t.Fatalf("should be evicted")
		}
	}

	for i := capacity; i < 2*capacity; i++ {
		if _, ok := l.Get(i); !ok {
			t.Fatalf("should not be evicted")
		}
	}

	// delete half the items from cache
	lastIndex := capacity + capacity/2
	for i := capacity; i < lastIndex; i++ {
		if ok := l.Remove(i); !ok {
			t.Fatalf("should be contained")
		}
		if ok := l.Remove(i); ok {
			t.Fatalf("should not be contained")
		}
		if _, ok := l.Get(i); ok {
			t.Fatalf("should be deleted")
		}
	}

	// this makes this item the most recently accessed; moved to the front
	l.Get(lastIndex)

	// make sure the cache has only half the capacity as we deleted half of them.
	cacheLen := l.Len()
	if capacity/2 != cacheLen {
		t.Fatalf("invalid len. expected %v, got %v", capacity/2, cacheLen)
	}

	// Keys - returns items from oldest to newest.
	for i, k := range l.Keys() {
		// last item should be `lastIndex` and make sure the other items are ordered
		if (i == cacheLen-1 && k != lastIndex) || (i < cacheLen-1 && k != i+lastIndex+1) {
			t.Fatalf("out of order key: %v %v %v", i, k, cacheLen-1)
		}
	}

	l.Purge()
	if l.Len() != 0 {
		t.Fatalf("bad len: %v", l.Len())
	}

	// try to get the random item
	if _, ok := l.Get(2 * capacity); ok {
		t.Fatalf("should contain nothing")
	}
}

// GetOldestRemoveOldestTest checks that the back of the recency order is
// reported and removed in insertion order.
func GetOldestRemoveOldestTest(t *testing.T, l simplelru.LRUCache[int, int], capacity int) {
	t.Helper()

	// add twice as much the capacity
	for i := 0; i < 2*capacity; i++ {
		l.Add(i, i)
	}

	k, _, ok := l.GetOldest()
	if !ok {
		t.Fatalf("missing")
	}
	if k != capacity {
		t.Fatalf("bad: %v", k)
	}

	k, _, ok = l.RemoveOldest()
	if !ok {
		t.Fatalf("missing")
	}
	if k != capacity {
		t.Fatalf("bad: %v", k)
	}

	k, _, ok = l.RemoveOldest()
	if !ok {
		t.Fatalf("missing")
	}
	if k != capacity+1 {
		t.Fatalf("bad: %v", k)
	}
}

// AddTest checks that Add reports an eviction exactly when the cache is full.
func AddTest(t *testing.T, l simplelru.LRUCache[int, int], capacity int, evictCounter *int) {
	t.Helper()

	for i := 0; i < capacity; i++ {
		if l.Add(i, i) || *evictCounter != 0 {
			t.Errorf("should not have an eviction")
		}
	}
	if !l.Add(capacity, capacity) || *evictCounter != 1 {
		t.Errorf("should have an eviction")
	}
}

// ContainsTest checks that Contains does not refresh recency.
func ContainsTest(t *testing.T, l simplelru.LRUCache[int, int], capacity int) {
	t.Helper()

	for i := 0; i < capacity; i++ {
		l.Add(i, i)
	}

	// contains should not update the recent-ness so this item will remain the oldest
	if !l.Contains(0) {
		t.Errorf("0 should be contained")
	}

	// oldest (0) should have been evicted
	l.Add(capacity, capacity)
	if l.Contains(0) {
		t.Errorf("Contains should not have updated recent-ness of 0")
	}
}

// PeekTest checks that Peek does not refresh recency.
func PeekTest(t *testing.T, l simplelru.LRUCache[int, int], capacity int) {
	t.Helper()

	for i := 0; i < capacity; i++ {
		l.Add(i, i)
	}

	if v, ok := l.Peek(0); !ok || v != 0 {
		t.Errorf("0 should be set to 0: %v, %v", v, ok)
	}

	l.Add(capacity, capacity)
	if l.Contains(0) {
		t.Errorf("should have been removed to make room for the new item")
	}
}

// RecencyTest checks that a Get protects a key from the next eviction:
// after filling the cache, touching key 0 and adding a new key, key 1 is
// the one evicted. capacity must be at least 2.
func RecencyTest(t *testing.T, l simplelru.LRUCache[int, int], capacity int) {
	t.Helper()

	for i := 0; i < capacity; i++ {
		l.Add(i, i*10)
	}
	if _, ok := l.Get(0); !ok {
		t.Fatalf("0 should be contained")
	}
	if !l.Add(capacity, capacity*10) {
		t.Fatalf("should have an eviction")
	}

	if l.Contains(1) {
		t.Fatalf("1 should have been evicted")
	}
	if l.Len() != capacity {
		t.Fatalf("bad len: %v", l.Len())
	}
	for _, k := range []int{0, capacity} {
		if v, ok := l.Peek(k); !ok || v != k*10 {
			t.Fatalf("bad value for %v: %v, %v", k, v, ok)
		}
	}
}

// UpdateTest checks that re-adding an existing key replaces its value
// without changing the size or evicting anything.
func UpdateTest(t *testing.T, l simplelru.LRUCache[int, int], capacity int, evictCounter *int) {
	t.Helper()

	for i := 0; i < capacity; i++ {
		l.Add(i, i)
	}
	for i := 0; i < capacity; i++ {
		if l.Add(i, -i) {
			t.Fatalf("update of %v should not evict", i)
		}
		if l.Len() != capacity {
			t.Fatalf("bad len: %v", l.Len())
		}
	}
	if *evictCounter != 0 {
		t.Fatalf("bad evict count: %v", *evictCounter)
	}
	for i := 0; i < capacity; i++ {
		if v, _ := l.Peek(i); v != -i {
			t.Fatalf("bad value for %v: %v", i, v)
		}
	}
}
