package dispatch

import (
	"errors"

	lru "github.com/venkatsvpr/ridegrid"
)

var (
	// ErrInvalidArgument is returned when a query parameter is out of range,
	// such as a negative radius.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidConfig is returned by NewDispatcher for invalid options.
	ErrInvalidConfig = lru.ErrInvalidConfig
)
