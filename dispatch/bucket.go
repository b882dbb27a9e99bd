package dispatch

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// bucket is the set of drivers in one cell, kept in insertion order.
type bucket struct {
	drivers *orderedmap.OrderedMap[Driver, struct{}]
}

func newBucket() *bucket {
	return &bucket{drivers: orderedmap.New[Driver, struct{}]()}
}

// add inserts d at the end of the bucket. It reports false, and leaves the
// order untouched, when d is already present.
func (b *bucket) add(d Driver) bool {
	_, present := b.drivers.Set(d, struct{}{})
	return !present
}

func (b *bucket) remove(d Driver) bool {
	_, present := b.drivers.Delete(d)
	return present
}

func (b *bucket) len() int {
	return b.drivers.Len()
}

// appendTo appends the drivers in insertion order to out.
func (b *bucket) appendTo(out []Driver) []Driver {
	for pair := b.drivers.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

func (b *bucket) snapshot() []Driver {
	return b.appendTo(make([]Driver, 0, b.len()))
}
