// Package dungeon generates random room-and-corridor floor layouts.
package dungeon

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/blueprint/grid"
)

type Params struct {
	Rooms   int `yaml:"rooms"`
	MinSize int `yaml:"min_size"`
	MaxSize int `yaml:"max_size"`
}

func DefaultParams() Params {
	return Params{Rooms: 32, MinSize: 2, MaxSize: 8}
}

// Room is an axis-aligned rectangle of floor cells.
type Room struct {
	X, Y int
	W, H int
}

// BB is the room's bounding box. Touching boxes count as intersecting.
func (r Room) BB() cp.BB {
	return cp.BB{L: float64(r.X), B: float64(r.Y), R: float64(r.X + r.W), T: float64(r.Y + r.H)}
}

func (r Room) Center() grid.Point {
	return grid.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

func (r Room) Points() []grid.Point {
	pts := make([]grid.Point, 0, r.W*r.H)
	for x := r.X; x < r.X+r.W; x++ {
		for y := r.Y; y < r.Y+r.H; y++ {
			pts = append(pts, grid.Point{X: x, Y: y})
		}
	}
	return pts
}

// Layout describes what Generate stamped, before mirroring.
type Layout struct {
	Rooms     []Room
	Corridors [][]grid.Point
}

// Centers lists the room centres in generation order.
func (l Layout) Centers() []grid.Point {
	pts := make([]grid.Point, len(l.Rooms))
	for i, r := range l.Rooms {
		pts[i] = r.Center()
	}
	return pts
}

// Stamp places one floor cell; callers apply their symmetry rule inside it.
type Stamp func(p grid.Point)

type Generator struct {
	Params Params
	Rand   *rand.Rand
}

func NewGenerator(params Params, rng *rand.Rand) *Generator {
	return &Generator{Params: params, Rand: rng}
}

func (g *Generator) between(lo, hi int) int {
	return lo + g.Rand.Intn(hi-lo+1)
}

// Generate samples rooms inside the top-left quadrant of a width x height
// grid, rejecting any candidate that intersects an accepted room, then
// joins consecutive rooms with L-shaped corridors. Every cell goes through
// stamp.
func (g *Generator) Generate(width, height int, stamp Stamp) Layout {
	p := g.Params
	if p.MinSize < 1 {
		p.MinSize = 1
	}
	if p.MaxSize < p.MinSize {
		p.MaxSize = p.MinSize
	}

	var layout Layout
	for i := 0; i < p.Rooms; i++ {
		w := g.between(p.MinSize, p.MaxSize)
		h := g.between(p.MinSize, p.MaxSize)
		maxX := width/2 - w - 1
		maxY := height/2 - h - 1
		if maxX < 1 || maxY < 1 {
			continue
		}
		room := Room{X: g.between(1, maxX), Y: g.between(1, maxY), W: w, H: h}

		bb := room.BB()
		overlapping := false
		for _, other := range layout.Rooms {
			if bb.Intersects(other.BB()) {
				overlapping = true
				break
			}
		}
		if overlapping {
			continue
		}

		for _, pt := range room.Points() {
			stamp(pt)
		}
		layout.Rooms = append(layout.Rooms, room)
	}

	for i := 1; i < len(layout.Rooms); i++ {
		prev := layout.Rooms[i-1].Center()
		next := layout.Rooms[i].Center()

		var cells []grid.Point
		if g.Rand.Intn(2) == 1 {
			cells = append(cells, hTunnel(prev.X, next.X, prev.Y)...)
			cells = append(cells, vTunnel(prev.Y, next.Y, next.X)...)
		} else {
			cells = append(cells, vTunnel(prev.Y, next.Y, prev.X)...)
			cells = append(cells, hTunnel(prev.X, next.X, next.Y)...)
		}
		for _, pt := range cells {
			stamp(pt)
		}
		layout.Corridors = append(layout.Corridors, cells)
	}
	return layout
}

func hTunnel(x1, x2, y int) []grid.Point {
	lo, hi := minMax(x1, x2)
	pts := make([]grid.Point, 0, hi-lo+1)
	for x := lo; x <= hi; x++ {
		pts = append(pts, grid.Point{X: x, Y: y})
	}
	return pts
}

func vTunnel(y1, y2, x int) []grid.Point {
	lo, hi := minMax(y1, y2)
	pts := make([]grid.Point, 0, hi-lo+1)
	for y := lo; y <= hi; y++ {
		pts = append(pts, grid.Point{X: x, Y: y})
	}
	return pts
}

func minMax(a, b int) (int, int) {
	if a < b {
		return a, b
	}
	return b, a
}
