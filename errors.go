package lru

import "github.com/venkatsvpr/ridegrid/simplelru"

// ErrInvalidConfig is returned when a cache is constructed with a
// non-positive size or a missing load function.
var ErrInvalidConfig = simplelru.ErrInvalidConfig
