package grid

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Point is a single lattice cell.
type Point struct {
	X, Y int
}

// Key returns the canonical "x,y" form used for storage.
func (p Point) Key() string {
	return strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y)
}

// ParseKey parses a "x,y" key back into a Point.
func ParseKey(key string) (Point, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(key), ",")
	if !ok {
		return Point{}, fmt.Errorf("grid key %q: missing comma", key)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Point{}, fmt.Errorf("grid key %q: %w", key, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Point{}, fmt.Errorf("grid key %q: %w", key, err)
	}
	return Point{X: x, Y: y}, nil
}

// Adjustment controls how out-of-bounds coordinates are treated by Probe.
type Adjustment int

const (
	// AdjustMod wraps coordinates modulo the grid size.
	AdjustMod Adjustment = iota
	// AdjustClamp clamps coordinates to the nearest edge cell.
	AdjustClamp
	// AdjustNone leaves coordinates alone; out-of-bounds cells read as empty.
	AdjustNone
)

func (a Adjustment) String() string {
	switch a {
	case AdjustMod:
		return "mod"
	case AdjustClamp:
		return "clamp"
	case AdjustNone:
		return "none"
	default:
		return "unknown"
	}
}

// Grid is a sparse set of occupied points inside a Width x Height rectangle.
type Grid struct {
	Width      int
	Height     int
	Adjustment Adjustment

	// OnChange is called after every Set, Unset, Clear or Replace.
	OnChange func(g *Grid)

	cells map[Point]struct{}
}

func New(width, height int) *Grid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Grid{
		Width:  width,
		Height: height,
		cells:  make(map[Point]struct{}),
	}
}

// FromPoints builds a grid already holding pts. OnChange is not fired.
func FromPoints(width, height int, pts []Point) *Grid {
	g := New(width, height)
	for _, p := range pts {
		g.cells[p] = struct{}{}
	}
	return g
}

func (g *Grid) Has(x, y int) bool {
	_, ok := g.cells[Point{X: x, Y: y}]
	return ok
}

func (g *Grid) Set(x, y int) {
	g.cells[Point{X: x, Y: y}] = struct{}{}
	g.changed()
}

func (g *Grid) Unset(x, y int) {
	delete(g.cells, Point{X: x, Y: y})
	g.changed()
}

func (g *Grid) Clear() {
	g.cells = make(map[Point]struct{})
	g.changed()
}

// Replace swaps the whole point set for pts.
func (g *Grid) Replace(pts []Point) {
	g.cells = make(map[Point]struct{}, len(pts))
	for _, p := range pts {
		g.cells[p] = struct{}{}
	}
	g.changed()
}

func (g *Grid) Len() int {
	return len(g.cells)
}

// Contains reports whether (x, y) lies inside the grid rectangle.
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// Adjust maps (x, y) into the grid according to the Adjustment policy.
// ok is false only for AdjustNone when the point is outside.
func (g *Grid) Adjust(x, y int) (int, int, bool) {
	switch g.Adjustment {
	case AdjustClamp:
		return clamp(x, 0, g.Width-1), clamp(y, 0, g.Height-1), true
	case AdjustNone:
		return x, y, g.Contains(x, y)
	default:
		return mod(x, g.Width), mod(y, g.Height), true
	}
}

// Probe reports occupancy of (x, y) after adjustment. It is the adjacency
// callback the autotile resolver reads neighbours through.
func (g *Grid) Probe(x, y int) bool {
	ax, ay, ok := g.Adjust(x, y)
	if !ok {
		return false
	}
	return g.Has(ax, ay)
}

// Points returns occupied points sorted row-major.
func (g *Grid) Points() []Point {
	pts := make([]Point, 0, len(g.cells))
	for p := range g.cells {
		pts = append(pts, p)
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Y != pts[j].Y {
			return pts[i].Y < pts[j].Y
		}
		return pts[i].X < pts[j].X
	})
	return pts
}

// ForEach visits every cell of the bounding rectangle, row by row.
func (g *Grid) ForEach(fn func(x, y int)) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			fn(x, y)
		}
	}
}

// Clone copies dimensions, policy and points. OnChange is not copied.
func (g *Grid) Clone() *Grid {
	c := New(g.Width, g.Height)
	c.Adjustment = g.Adjustment
	for p := range g.cells {
		c.cells[p] = struct{}{}
	}
	return c
}

// Equal compares the occupied point sets only.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if len(g.cells) != len(other.cells) {
		return false
	}
	for p := range g.cells {
		if _, ok := other.cells[p]; !ok {
			return false
		}
	}
	return true
}

func (g *Grid) changed() {
	if g.OnChange != nil {
		g.OnChange(g)
	}
}

func mod(v, n int) int {
	if n <= 0 {
		return 0
	}
	r := v % n
	if r < 0 {
		r += n
	}
	return r
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
