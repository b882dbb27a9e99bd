package dispatch

import "github.com/rs/zerolog"

// DefaultMemoSize is the number of Nearby results a Dispatcher keeps by
// default.
const DefaultMemoSize = 256

type options struct {
	memoSize int
	logger   zerolog.Logger
	metrics  MetricsCollector
}

// Option configures a Dispatcher.
type Option func(*options)

// WithMemoSize sets how many Nearby results are memoized. 0 disables
// memoization.
func WithMemoSize(size int) Option {
	return func(o *options) {
		o.memoSize = size
	}
}

// WithLogger sets the logger for dispatcher events.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics sets the collector notified after every operation.
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *options) {
		if metrics != nil {
			o.metrics = metrics
		}
	}
}
