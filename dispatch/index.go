package dispatch

import (
	"fmt"
	"slices"
)

// maxWalkRadius bounds the radius for which the cell count of the search
// diamond is computed; larger radii always scan the occupied cells.
const maxWalkRadius = 1 << 30

// Index maps grid cells to the drivers available in them.
//
// A driver appears at most once per cell. Index does not stop a driver from
// being in several cells at once; Move and AcceptRide keep a driver in at
// most one cell when callers route every relocation through them.
//
// Index is not safe for concurrent use.
type Index struct {
	buckets map[Cell]*bucket
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{buckets: make(map[Cell]*bucket)}
}

// Appear adds d to cell c. It reports false when d was already there.
func (x *Index) Appear(c Cell, d Driver) (added bool) {
	b, ok := x.buckets[c]
	if !ok {
		b = newBucket()
		x.buckets[c] = b
	}
	return b.add(d)
}

// Move removes d from the cell from, if it is there, and adds it to to.
// moved reports whether d was found in from; added reports whether d was
// newly placed in to. A driver that was not in from simply appears in to.
// When both are false the index is unchanged.
func (x *Index) Move(d Driver, from, to Cell) (moved, added bool) {
	moved = x.remove(from, d)
	added = x.Appear(to, d)
	return moved, added
}

// AcceptRide takes d off the grid, removing it from every cell that holds
// it, and returns how many cells that was.
func (x *Index) AcceptRide(d Driver) (removed int) {
	for c, b := range x.buckets {
		if !b.remove(d) {
			continue
		}
		removed++
		if b.len() == 0 {
			delete(x.buckets, c)
		}
	}
	return removed
}

// DriversIn returns the drivers in c in the order they appeared. The slice
// is a copy and is empty when c holds no driver.
func (x *Index) DriversIn(c Cell) []Driver {
	b, ok := x.buckets[c]
	if !ok {
		return []Driver{}
	}
	return b.snapshot()
}

// Nearby returns the drivers in every cell within Manhattan distance radius
// of center. A radius of 0 covers only center.
//
// Cells are visited column by column from center.X()-radius to
// center.X()+radius, and within a column from the lowest row to the
// highest; each cell contributes its drivers in the order they appeared.
func (x *Index) Nearby(center Cell, radius int) ([]Driver, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: radius must be non-negative, got %d", ErrInvalidArgument, radius)
	}
	if len(x.buckets) == 0 {
		return []Driver{}, nil
	}
	if diamondLarger(radius, len(x.buckets)) {
		return x.scanNearby(center, radius), nil
	}

	out := []Driver{}
	for dx := -radius; dx <= radius; dx++ {
		span := radius - abs(dx)
		for dy := -span; dy <= span; dy++ {
			c := center.Offset(dx, dy)
			// offsets that wrapped around the coordinate range are not near
			if !center.Within(c, radius) {
				continue
			}
			if b, ok := x.buckets[c]; ok {
				out = b.appendTo(out)
			}
		}
	}
	return out, nil
}

// scanNearby answers Nearby from the occupied cells, sorted into the order
// the diamond walk visits them.
func (x *Index) scanNearby(center Cell, radius int) []Driver {
	cells := make([]Cell, 0, len(x.buckets))
	for c := range x.buckets {
		if center.Within(c, radius) {
			cells = append(cells, c)
		}
	}
	slices.SortFunc(cells, compareCells)

	out := []Driver{}
	for _, c := range cells {
		out = x.buckets[c].appendTo(out)
	}
	return out
}

// Len returns the number of occupied cells.
func (x *Index) Len() int {
	return len(x.buckets)
}

// Occupied returns every occupied cell with a copy of its drivers, ordered
// by column and then row.
func (x *Index) Occupied() []Occupancy {
	out := make([]Occupancy, 0, len(x.buckets))
	for c, b := range x.buckets {
		out = append(out, Occupancy{Cell: c, Drivers: b.snapshot()})
	}
	slices.SortFunc(out, func(a, b Occupancy) int {
		return compareCells(a.Cell, b.Cell)
	})
	return out
}

// remove takes d out of c and prunes the cell if it ends up empty.
func (x *Index) remove(c Cell, d Driver) bool {
	b, ok := x.buckets[c]
	if !ok || !b.remove(d) {
		return false
	}
	if b.len() == 0 {
		delete(x.buckets, c)
	}
	return true
}

// diamondLarger reports whether the search diamond of radius holds more
// cells than there are occupied cells.
func diamondLarger(radius, occupied int) bool {
	if radius >= maxWalkRadius {
		return true
	}
	r := int64(radius)
	return 2*r*(r+1)+1 > int64(occupied)
}
