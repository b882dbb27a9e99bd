package dispatch

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	lru "github.com/venkatsvpr/ridegrid"
)

// Dispatcher is an Index that is safe for concurrent use.
//
// Mutations hold an exclusive lock, so readers never observe a Move or
// AcceptRide half done. Nearby results are memoized per index generation:
// every mutation that changes the index starts a new generation, and results
// of older generations are never served again and age out of the LRU.
type Dispatcher struct {
	mu    sync.RWMutex
	index *Index
	gen   uint64

	memo    *lru.LoadingCache[nearbyQuery, []Driver]
	logger  zerolog.Logger
	metrics MetricsCollector
}

type nearbyQuery struct {
	center Cell
	radius int
	gen    uint64
}

// NewDispatcher returns a Dispatcher over an empty Index.
func NewDispatcher(opts ...Option) (*Dispatcher, error) {
	o := &options{
		memoSize: DefaultMemoSize,
		logger:   zerolog.Nop(),
		metrics:  NoopMetricsCollector{},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.memoSize < 0 {
		return nil, fmt.Errorf("%w: memo size must be non-negative, got %d", ErrInvalidConfig, o.memoSize)
	}

	d := &Dispatcher{
		index:   NewIndex(),
		logger:  o.logger,
		metrics: o.metrics,
	}
	if o.memoSize > 0 {
		memo, err := lru.NewLoading(o.memoSize, d.loadNearby,
			lru.WithLogger[nearbyQuery, []Driver](o.logger.With().Str("cache", "nearby").Logger()),
			lru.WithKeyFunc[nearbyQuery, []Driver](nearbyQueryKey),
		)
		if err != nil {
			return nil, err
		}
		d.memo = memo
	}
	return d, nil
}

// Appear adds driver to cell c.
func (d *Dispatcher) Appear(ctx context.Context, c Cell, driver Driver) {
	start := time.Now()

	d.mu.Lock()
	added := d.index.Appear(c, driver)
	if added {
		d.gen++
	}
	d.mu.Unlock()

	d.logger.Debug().Ctx(ctx).
		Stringer("driver", driver).
		Stringer("cell", c).
		Bool("added", added).
		Msg("driver appeared")
	d.metrics.RecordAppear(time.Since(start))
}

// Move relocates driver from one cell to another. See Index.Move.
func (d *Dispatcher) Move(ctx context.Context, driver Driver, from, to Cell) {
	start := time.Now()

	d.mu.Lock()
	moved, added := d.index.Move(driver, from, to)
	if moved || added {
		d.gen++
	}
	d.mu.Unlock()

	d.logger.Debug().Ctx(ctx).
		Stringer("driver", driver).
		Stringer("from", from).
		Stringer("to", to).
		Bool("moved", moved).
		Msg("driver moved")
	d.metrics.RecordMove(time.Since(start))
}

// AcceptRide takes driver off the grid. See Index.AcceptRide.
func (d *Dispatcher) AcceptRide(ctx context.Context, driver Driver) int {
	start := time.Now()

	d.mu.Lock()
	removed := d.index.AcceptRide(driver)
	if removed > 0 {
		d.gen++
	}
	d.mu.Unlock()

	d.logger.Debug().Ctx(ctx).
		Stringer("driver", driver).
		Int("removed", removed).
		Msg("ride accepted")
	d.metrics.RecordAcceptRide(removed, time.Since(start))
	return removed
}

// DriversIn returns a copy of the drivers in c.
func (d *Dispatcher) DriversIn(_ context.Context, c Cell) []Driver {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.index.DriversIn(c)
}

// Occupied returns every occupied cell. See Index.Occupied.
func (d *Dispatcher) Occupied(_ context.Context) []Occupancy {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.index.Occupied()
}

// Nearby returns the drivers within radius of center. See Index.Nearby.
// The returned slice is never shared with the memo or other callers.
func (d *Dispatcher) Nearby(ctx context.Context, center Cell, radius int) ([]Driver, error) {
	start := time.Now()

	drivers, err := d.nearby(ctx, center, radius)
	if err != nil {
		d.logger.Warn().Ctx(ctx).
			Stringer("center", center).
			Int("radius", radius).
			Err(err).
			Msg("nearby failed")
		d.metrics.RecordNearby(radius, 0, time.Since(start), err)
		return nil, err
	}

	d.logger.Debug().Ctx(ctx).
		Stringer("center", center).
		Int("radius", radius).
		Int("results", len(drivers)).
		Msg("nearby")
	d.metrics.RecordNearby(radius, len(drivers), time.Since(start), nil)
	return drivers, nil
}

func (d *Dispatcher) nearby(ctx context.Context, center Cell, radius int) ([]Driver, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: radius must be non-negative, got %d", ErrInvalidArgument, radius)
	}
	if d.memo == nil {
		d.mu.RLock()
		defer d.mu.RUnlock()
		return d.index.Nearby(center, radius)
	}

	d.mu.RLock()
	gen := d.gen
	d.mu.RUnlock()

	drivers, err := d.memo.Get(ctx, nearbyQuery{center: center, radius: radius, gen: gen})
	if err != nil {
		return nil, err
	}
	return slices.Clone(drivers), nil
}

// loadNearby computes a memo entry. The index may have moved past q.gen by
// now; the result is then newer than its key, never older.
func (d *Dispatcher) loadNearby(_ context.Context, q nearbyQuery) ([]Driver, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.index.Nearby(q.center, q.radius)
}

// MemoStats returns the counters of the Nearby memo, or zero Stats when
// memoization is disabled.
func (d *Dispatcher) MemoStats() lru.Stats {
	if d.memo == nil {
		return lru.Stats{}
	}
	return d.memo.Stats()
}

func nearbyQueryKey(q nearbyQuery) string {
	b := make([]byte, 0, 48)
	b = strconv.AppendInt(b, int64(q.center.x), 10)
	b = append(b, ',')
	b = strconv.AppendInt(b, int64(q.center.y), 10)
	b = append(b, '/')
	b = strconv.AppendInt(b, int64(q.radius), 10)
	b = append(b, '@')
	b = strconv.AppendUint(b, q.gen, 10)
	return string(b)
}
