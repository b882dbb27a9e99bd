package dispatch

import (
	"sync/atomic"
	"time"
)

//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks

// MetricsCollector receives one call per Dispatcher operation.
type MetricsCollector interface {
	// RecordAppear is called after each Appear.
	RecordAppear(duration time.Duration)

	// RecordMove is called after each Move.
	RecordMove(duration time.Duration)

	// RecordAcceptRide is called after each AcceptRide with the number of
	// cells the driver was removed from.
	RecordAcceptRide(removed int, duration time.Duration)

	// RecordNearby is called after each Nearby. results is the number of
	// drivers returned; err is non-nil for a rejected query.
	RecordNearby(radius, results int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAppear(time.Duration)                  {}
func (NoopMetricsCollector) RecordMove(time.Duration)                    {}
func (NoopMetricsCollector) RecordAcceptRide(int, time.Duration)         {}
func (NoopMetricsCollector) RecordNearby(int, int, time.Duration, error) {}

// BasicMetricsCollector keeps in-memory counters.
type BasicMetricsCollector struct {
	AppearCount      atomic.Int64
	MoveCount        atomic.Int64
	AcceptRideCount  atomic.Int64
	CellsReleased    atomic.Int64
	NearbyCount      atomic.Int64
	NearbyErrors     atomic.Int64
	NearbyResults    atomic.Int64
	NearbyTotalNanos atomic.Int64
}

// RecordAppear implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAppear(time.Duration) {
	b.AppearCount.Add(1)
}

// RecordMove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMove(time.Duration) {
	b.MoveCount.Add(1)
}

// RecordAcceptRide implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAcceptRide(removed int, _ time.Duration) {
	b.AcceptRideCount.Add(1)
	b.CellsReleased.Add(int64(removed))
}

// RecordNearby implements MetricsCollector.
func (b *BasicMetricsCollector) RecordNearby(_, results int, duration time.Duration, err error) {
	b.NearbyCount.Add(1)
	b.NearbyTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.NearbyErrors.Add(1)
		return
	}
	b.NearbyResults.Add(int64(results))
}

// AvgNearbyLatency returns the mean Nearby duration.
func (b *BasicMetricsCollector) AvgNearbyLatency() time.Duration {
	n := b.NearbyCount.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(b.NearbyTotalNanos.Load() / n)
}
