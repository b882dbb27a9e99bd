package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/sync/errgroup"

	lru "github.com/venkatsvpr/ridegrid"
	"github.com/venkatsvpr/ridegrid/dispatch/mocks"
)

func newTestDispatcher(t *testing.T, opts ...Option) *Dispatcher {
	t.Helper()
	d, err := NewDispatcher(opts...)
	require.NoError(t, err)
	return d
}

func TestNewDispatcher_InvalidMemoSize(t *testing.T) {
	_, err := NewDispatcher(WithMemoSize(-1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDispatcher_Scenario(t *testing.T) {
	ctx := context.Background()
	d := newTestDispatcher(t)

	d.Appear(ctx, c47, "D1")
	d.Appear(ctx, c47, "D2")
	d.Appear(ctx, c57, "D3")

	near, err := d.Nearby(ctx, c57, 1)
	require.NoError(t, err)
	assert.Equal(t, []Driver{"D1", "D2", "D3"}, near)

	assert.Equal(t, 1, d.AcceptRide(ctx, "D2"))
	d.Move(ctx, "D3", c57, c58)

	assert.Equal(t, []Driver{"D3"}, d.DriversIn(ctx, c58))
	assert.Empty(t, d.DriversIn(ctx, c57))
	assert.Equal(t, []Occupancy{
		{Cell: c47, Drivers: []Driver{"D1"}},
		{Cell: c58, Drivers: []Driver{"D3"}},
	}, d.Occupied(ctx))
}

func TestDispatcher_MemoFollowsMutations(t *testing.T) {
	ctx := context.Background()
	d := newTestDispatcher(t)
	d.Appear(ctx, c47, "D1")

	first, err := d.Nearby(ctx, c57, 1)
	require.NoError(t, err)
	again, err := d.Nearby(ctx, c57, 1)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	stats := d.MemoStats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)

	d.Move(ctx, "D1", c47, NewCell(40, 70))
	near, err := d.Nearby(ctx, c57, 1)
	require.NoError(t, err)
	assert.Empty(t, near)

	d.Appear(ctx, c58, "D2")
	near, err = d.Nearby(ctx, c57, 1)
	require.NoError(t, err)
	assert.Equal(t, []Driver{"D2"}, near)

	d.AcceptRide(ctx, "D2")
	near, err = d.Nearby(ctx, c57, 1)
	require.NoError(t, err)
	assert.Empty(t, near)

	assert.Equal(t, uint64(4), d.MemoStats().Misses)
}

func TestDispatcher_NoOpMutationsKeepMemo(t *testing.T) {
	ctx := context.Background()
	d := newTestDispatcher(t)
	d.Appear(ctx, c47, "D1")

	_, err := d.Nearby(ctx, c47, 0)
	require.NoError(t, err)

	d.Appear(ctx, c47, "D1")
	d.AcceptRide(ctx, "nobody")
	d.Move(ctx, "D1", c58, c47)

	_, err = d.Nearby(ctx, c47, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), d.MemoStats().Hits)
}

func TestDispatcher_NearbyReturnsCopy(t *testing.T) {
	ctx := context.Background()
	d := newTestDispatcher(t)
	d.Appear(ctx, c47, "D1")

	near, err := d.Nearby(ctx, c47, 0)
	require.NoError(t, err)
	near[0] = "X"

	near, err = d.Nearby(ctx, c47, 0)
	require.NoError(t, err)
	assert.Equal(t, []Driver{"D1"}, near)
}

func TestDispatcher_WithoutMemo(t *testing.T) {
	ctx := context.Background()
	d := newTestDispatcher(t, WithMemoSize(0))
	d.Appear(ctx, c57, "D3")

	for i := 0; i < 3; i++ {
		near, err := d.Nearby(ctx, c57, 0)
		require.NoError(t, err)
		assert.Equal(t, []Driver{"D3"}, near)
	}
	assert.Equal(t, lru.Stats{}, d.MemoStats())

	_, err := d.Nearby(ctx, c57, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDispatcher_NegativeRadius(t *testing.T) {
	d := newTestDispatcher(t)

	near, err := d.Nearby(context.Background(), c47, -3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Nil(t, near)
	assert.Zero(t, d.MemoStats().Misses, "rejected queries never reach the memo")
}

func TestDispatcher_Metrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	metrics := mocks.NewMockMetricsCollector(ctrl)

	gomock.InOrder(
		metrics.EXPECT().RecordAppear(gomock.Any()),
		metrics.EXPECT().RecordAppear(gomock.Any()),
		metrics.EXPECT().RecordMove(gomock.Any()),
		metrics.EXPECT().RecordNearby(1, 2, gomock.Any(), gomock.Nil()),
		metrics.EXPECT().RecordNearby(-1, 0, gomock.Any(), gomock.Not(gomock.Nil())),
		metrics.EXPECT().RecordAcceptRide(1, gomock.Any()),
		metrics.EXPECT().RecordAcceptRide(0, gomock.Any()),
	)

	ctx := context.Background()
	d := newTestDispatcher(t, WithMetrics(metrics))

	d.Appear(ctx, c47, "D1")
	d.Appear(ctx, c57, "D2")
	d.Move(ctx, "D2", c57, c58)
	_, err := d.Nearby(ctx, c57, 1)
	require.NoError(t, err)
	_, err = d.Nearby(ctx, c57, -1)
	require.Error(t, err)
	d.AcceptRide(ctx, "D1")
	d.AcceptRide(ctx, "D1")
}

func TestDispatcher_BasicMetrics(t *testing.T) {
	ctx := context.Background()
	metrics := &BasicMetricsCollector{}
	d := newTestDispatcher(t, WithMetrics(metrics))

	d.Appear(ctx, c47, "D1")
	d.Appear(ctx, c47, "D2")
	d.Move(ctx, "D1", c47, c57)
	d.AcceptRide(ctx, "D2")
	_, _ = d.Nearby(ctx, c57, 2)
	_, _ = d.Nearby(ctx, c57, -2)

	assert.Equal(t, int64(2), metrics.AppearCount.Load())
	assert.Equal(t, int64(1), metrics.MoveCount.Load())
	assert.Equal(t, int64(1), metrics.AcceptRideCount.Load())
	assert.Equal(t, int64(1), metrics.CellsReleased.Load())
	assert.Equal(t, int64(2), metrics.NearbyCount.Load())
	assert.Equal(t, int64(1), metrics.NearbyErrors.Load())
	assert.Equal(t, int64(1), metrics.NearbyResults.Load())
	assert.GreaterOrEqual(t, metrics.AvgNearbyLatency(), time.Duration(0))
	assert.Zero(t, (&BasicMetricsCollector{}).AvgNearbyLatency())
}

func TestDispatcher_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	ctx := context.Background()
	d := newTestDispatcher(t, WithLogger(logger))

	d.Appear(ctx, c47, "D1")
	d.Move(ctx, "D1", c47, c58)
	_, _ = d.Nearby(ctx, c58, -1)

	out := buf.String()
	assert.Contains(t, out, `"message":"driver appeared"`)
	assert.Contains(t, out, `"from":"(4,7)"`)
	assert.Contains(t, out, `"to":"(5,8)"`)
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, ErrInvalidArgument.Error())
}

// Every driver is always in exactly one cell, so a Nearby covering the
// whole grid must return each driver exactly once, whatever the moves in
// flight.
func TestDispatcher_ConcurrentMoves(t *testing.T) {
	const (
		drivers = 20
		grid    = 5
		movers  = 4
		readers = 4
	)
	ctx := context.Background()
	d := newTestDispatcher(t, WithMemoSize(8))

	names := make([]Driver, drivers)
	for i := range names {
		names[i] = Driver("D" + strconv.Itoa(i))
	}

	// each mover owns a disjoint set of drivers and tracks where they are
	owned := make([]map[Driver]Cell, movers)
	for m := range owned {
		owned[m] = map[Driver]Cell{}
	}
	for i, name := range names {
		c := NewCell(i%grid, i/grid%grid)
		d.Appear(ctx, c, name)
		owned[i%movers][name] = c
	}

	var g errgroup.Group
	for m := 0; m < movers; m++ {
		g.Go(func() error {
			rng := rand.New(rand.NewPCG(uint64(m), 1))
			for i := 0; i < 500; i++ {
				for name, from := range owned[m] {
					to := NewCell(rng.IntN(grid), rng.IntN(grid))
					d.Move(ctx, name, from, to)
					owned[m][name] = to
					break
				}
			}
			return nil
		})
	}
	for r := 0; r < readers; r++ {
		g.Go(func() error {
			for i := 0; i < 500; i++ {
				near, err := d.Nearby(ctx, NewCell(2, 2), 2*grid)
				if err != nil {
					return err
				}
				seen := make(map[Driver]bool, len(near))
				for _, name := range near {
					if seen[name] {
						return fmt.Errorf("driver %s seen twice", name)
					}
					seen[name] = true
				}
				if len(seen) != drivers {
					return fmt.Errorf("saw %d drivers, want %d", len(seen), drivers)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
