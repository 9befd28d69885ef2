package dungeon

import (
	"math/rand"
	"testing"

	"github.com/milk9111/blueprint/grid"
	"github.com/milk9111/blueprint/mirror"
)

const (
	width  = 25
	height = 31
)

func generate(seed int64, settings mirror.Settings) (*grid.Grid, Layout) {
	g := grid.New(width, height)
	axes := mirror.AxesFor(width, height)
	gen := NewGenerator(DefaultParams(), rand.New(rand.NewSource(seed)))
	layout := gen.Generate(width, height, func(p grid.Point) {
		for _, t := range axes.Targets(settings, p) {
			g.Set(t.Point.X, t.Point.Y)
		}
	})
	return g, layout
}

func TestRoomsInsideQuadrantAndDisjoint(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		_, layout := generate(seed, mirror.Settings{})
		if len(layout.Rooms) == 0 {
			t.Fatalf("seed %d: expected at least one room", seed)
		}
		for i, r := range layout.Rooms {
			if r.X < 1 || r.Y < 1 || r.X+r.W > width/2 || r.Y+r.H > height/2 {
				t.Fatalf("seed %d: room %d %+v leaves the quadrant", seed, i, r)
			}
			if r.W < 2 || r.W > 8 || r.H < 2 || r.H > 8 {
				t.Fatalf("seed %d: room %d size out of range: %+v", seed, i, r)
			}
			for j := i + 1; j < len(layout.Rooms); j++ {
				if r.BB().Intersects(layout.Rooms[j].BB()) {
					t.Fatalf("seed %d: rooms %d and %d overlap", seed, i, j)
				}
			}
		}
	}
}

func TestMirroredCellsStayInBounds(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g, _ := generate(seed, mirror.Settings{X: true, Y: true})
		for _, p := range g.Points() {
			if !g.Contains(p.X, p.Y) {
				t.Fatalf("seed %d: point %v outside grid", seed, p)
			}
		}
	}
}

func TestMirroredLayoutIsSymmetric(t *testing.T) {
	g, _ := generate(7, mirror.Settings{X: true, Y: true})
	axes := mirror.AxesFor(width, height)
	for _, p := range g.Points() {
		if !g.Has(axes.X-p.X, p.Y) || !g.Has(p.X, axes.Y-p.Y) {
			t.Fatalf("point %v has no reflection", p)
		}
	}
}

func TestRoomsReachableFromFirst(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		g, layout := generate(seed, mirror.Settings{})
		if !g.Connected(layout.Centers()) {
			t.Fatalf("seed %d: rooms not connected", seed)
		}
		if len(layout.Corridors) != len(layout.Rooms)-1 {
			t.Fatalf("seed %d: expected %d corridors, got %d", seed, len(layout.Rooms)-1, len(layout.Corridors))
		}
	}
}

func TestGenerateIsDeterministicPerSeed(t *testing.T) {
	a, _ := generate(42, mirror.Settings{X: true, Y: true})
	b, _ := generate(42, mirror.Settings{X: true, Y: true})
	if !a.Equal(b) {
		t.Fatalf("same seed should give the same layout")
	}
}

func TestTinyGridProducesNothing(t *testing.T) {
	gen := NewGenerator(DefaultParams(), rand.New(rand.NewSource(1)))
	stamped := 0
	layout := gen.Generate(4, 4, func(grid.Point) { stamped++ })
	if len(layout.Rooms) != 0 || stamped != 0 {
		t.Fatalf("a 4x4 grid has no room for a quadrant room, got %d rooms", len(layout.Rooms))
	}
}
