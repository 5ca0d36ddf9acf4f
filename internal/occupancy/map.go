package occupancy

import (
	"fmt"
	"strings"
)

// Map is the read-only capability a sensor samples. Coordinates outside
// [0, width) x [0, height) are never occupied; callers are expected to check
// InBounds before sampling.
type Map interface {
	IsOccupied(x, y int) bool
	Bounds() (width, height int)
}

// InBounds reports whether (x, y) lies inside m.
func InBounds(m Map, x, y int) bool {
	w, h := m.Bounds()
	return x >= 0 && y >= 0 && x < w && y < h
}

// Grid is an in-memory occupancy map backed by a flat bool slice.
type Grid struct {
	width  int
	height int
	cells  []bool
}

// NewGrid returns an empty (all free) grid.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid grid dimensions: %dx%d", width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}, nil
}

// ParseGrid builds a grid from text rows, one row per y. '#' marks an occupied
// cell; any other rune is free. All rows must have the same width.
func ParseGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows")
	}
	width := len(rows[0])
	g, err := NewGrid(width, len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has width %d, want %d", y, len(row), width)
		}
		for x := 0; x < width; x++ {
			if row[x] == '#' {
				g.cells[y*width+x] = true
			}
		}
	}
	return g, nil
}

// Set marks a cell occupied or free. Out-of-bounds coordinates are ignored.
func (g *Grid) Set(x, y int, occupied bool) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return
	}
	g.cells[g.idx(x, y)] = occupied
}

// FillRect marks every cell of the half-open rectangle [x0,x1) x [y0,y1)
// occupied, clipped to the grid.
func (g *Grid) FillRect(x0, y0, x1, y1 int) {
	for y := max(y0, 0); y < min(y1, g.height); y++ {
		for x := max(x0, 0); x < min(x1, g.width); x++ {
			g.cells[g.idx(x, y)] = true
		}
	}
}

// IsOccupied implements Map.
func (g *Grid) IsOccupied(x, y int) bool {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return false
	}
	return g.cells[g.idx(x, y)]
}

// Bounds implements Map.
func (g *Grid) Bounds() (int, int) { return g.width, g.height }

// OccupiedCount returns the number of occupied cells.
func (g *Grid) OccupiedCount() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// String renders the grid in the ParseGrid format.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[g.idx(x, y)] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		if y < g.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (g *Grid) idx(x, y int) int { return y*g.width + x }
