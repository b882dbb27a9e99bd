package dispatch

import (
	"cmp"
	"math"
	"strconv"
)

// Cell is one square of the dispatch grid. It is a comparable value type
// and has no mutators, so it is safe to use as a map key.
type Cell struct {
	x, y int
}

// NewCell returns the cell at (x, y).
func NewCell(x, y int) Cell {
	return Cell{x: x, y: y}
}

// X returns the column of the cell.
func (c Cell) X() int { return c.x }

// Y returns the row of the cell.
func (c Cell) Y() int { return c.y }

// Offset returns the cell dx columns and dy rows away from c. Coordinates
// wrap on overflow.
func (c Cell) Offset(dx, dy int) Cell {
	return Cell{x: c.x + dx, y: c.y + dy}
}

// Distance returns the Manhattan distance between c and o, saturated at
// math.MaxInt.
func (c Cell) Distance(o Cell) int {
	dx, dy := gap(c.x, o.x), gap(c.y, o.y)
	if d := dx + dy; d >= dx && d <= math.MaxInt {
		return int(d)
	}
	return math.MaxInt
}

// Within reports whether o is at most radius away from c. It is exact for
// every pair of cells, including those whose distance overflows int.
func (c Cell) Within(o Cell, radius int) bool {
	if radius < 0 {
		return false
	}
	r := uint64(radius)
	dx := gap(c.x, o.x)
	if dx > r {
		return false
	}
	return gap(c.y, o.y) <= r-dx
}

func (c Cell) String() string {
	return "(" + strconv.Itoa(c.x) + "," + strconv.Itoa(c.y) + ")"
}

// compareCells orders cells by column, then row.
func compareCells(a, b Cell) int {
	if n := cmp.Compare(a.x, b.x); n != 0 {
		return n
	}
	return cmp.Compare(a.y, b.y)
}

// gap returns |a-b| without overflow.
func gap(a, b int) uint64 {
	if a >= b {
		return uint64(a) - uint64(b)
	}
	return uint64(b) - uint64(a)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Driver identifies a driver. Two drivers are the same driver when their
// identifiers are equal.
type Driver string

func (d Driver) String() string { return string(d) }

// Occupancy is the content of one occupied cell.
type Occupancy struct {
	Cell    Cell
	Drivers []Driver
}
