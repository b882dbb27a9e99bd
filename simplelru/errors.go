package simplelru

import "errors"

// ErrInvalidConfig is returned when a cache is constructed with a
// non-positive size.
var ErrInvalidConfig = errors.New("invalid config")
