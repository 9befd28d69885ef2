// Package mirror applies paint and erase actions symmetrically across the
// floor grid and the décor layer.
package mirror

import (
	"image"

	"github.com/milk9111/blueprint/autotile"
	"github.com/milk9111/blueprint/document"
	"github.com/milk9111/blueprint/grid"
)

// Settings are the independent symmetry toggles.
type Settings struct {
	X bool
	Y bool
}

func (s Settings) String() string {
	switch {
	case s.X && s.Y:
		return ">>SYMMETRY [X] && [Y] ENABLED"
	case s.X:
		return ">>SYMMETRY [X] ENABLED"
	case s.Y:
		return ">>SYMMETRY [Y] ENABLED"
	default:
		return "SYMMETRY DISABLED"
	}
}

// Axes are the coordinates content is reflected about: x' = X - x, y' = Y - y.
type Axes struct {
	X int
	Y int
}

// AxesFor returns the axes that reflect a width x height grid onto itself.
func AxesFor(width, height int) Axes {
	return Axes{X: width - 1, Y: height - 1}
}

// Target is one reflected position with the flips a décor tile needs there.
type Target struct {
	Point grid.Point
	FlipX bool
	FlipY bool
}

// Targets returns the cursor plus its active reflections. Coinciding
// positions (on an axis) are reported once.
func (a Axes) Targets(s Settings, c grid.Point) []Target {
	out := make([]Target, 0, 4)
	add := func(t Target) {
		for _, o := range out {
			if o.Point == t.Point {
				return
			}
		}
		out = append(out, t)
	}
	add(Target{Point: c})
	if s.X {
		add(Target{Point: grid.Point{X: a.X - c.X, Y: c.Y}, FlipX: true})
	}
	if s.Y {
		add(Target{Point: grid.Point{X: c.X, Y: a.Y - c.Y}, FlipY: true})
	}
	if s.X && s.Y {
		add(Target{Point: grid.Point{X: a.X - c.X, Y: a.Y - c.Y}, FlipX: true, FlipY: true})
	}
	return out
}

// Engine performs mirrored edits on a document.
type Engine struct {
	Doc      *document.Document
	Axes     Axes
	Settings Settings
	Resolver *autotile.Resolver
	// Floor receives autotile updates; nil skips rendering.
	Floor autotile.Sink
	// OnDecorChange receives the full décor list after every décor edit.
	OnDecorChange func(props []document.Prop)
}

func NewEngine(doc *document.Document) *Engine {
	return &Engine{
		Doc:      doc,
		Axes:     AxesFor(doc.Floor.Width, doc.Floor.Height),
		Resolver: &autotile.Resolver{},
	}
}

func (e *Engine) targets(c grid.Point) []Target {
	all := e.Axes.Targets(e.Settings, c)
	out := all[:0]
	for _, t := range all {
		if e.Doc.Floor.Contains(t.Point.X, t.Point.Y) {
			out = append(out, t)
		}
	}
	return out
}

// PaintFloor sets the cursor cell and its reflections, returning the
// cells touched.
func (e *Engine) PaintFloor(c grid.Point) []grid.Point {
	return e.floor(c, true)
}

// EraseFloor unsets the cursor cell and its reflections.
func (e *Engine) EraseFloor(c grid.Point) []grid.Point {
	return e.floor(c, false)
}

func (e *Engine) floor(c grid.Point, set bool) []grid.Point {
	targets := e.targets(c)
	touched := make([]grid.Point, 0, len(targets))
	for _, t := range targets {
		if set {
			e.Doc.Floor.Set(t.Point.X, t.Point.Y)
		} else {
			e.Doc.Floor.Unset(t.Point.X, t.Point.Y)
		}
		touched = append(touched, t.Point)
	}
	if e.Floor != nil && e.Resolver != nil {
		for _, p := range touched {
			e.Resolver.Refresh(e.Doc.Floor, e.Floor, p.X, p.Y)
		}
	}
	return touched
}

// PaintDecor places tile at the cursor and its reflections. Reflected
// placements are flipped so the layout stays visually symmetric.
func (e *Engine) PaintDecor(c grid.Point, tile int) []grid.Point {
	targets := e.targets(c)
	touched := make([]grid.Point, 0, len(targets))
	for _, t := range targets {
		e.Doc.Decor.Put(document.Prop{X: t.Point.X, Y: t.Point.Y, Tile: tile, FlipX: t.FlipX, FlipY: t.FlipY})
		e.Doc.Props.Set(t.Point.X, t.Point.Y)
		touched = append(touched, t.Point)
	}
	e.decorChanged()
	return touched
}

// EraseDecor removes décor at the cursor and its reflections.
func (e *Engine) EraseDecor(c grid.Point) []grid.Point {
	targets := e.targets(c)
	touched := make([]grid.Point, 0, len(targets))
	for _, t := range targets {
		e.Doc.Decor.Remove(t.Point.X, t.Point.Y)
		e.Doc.Props.Unset(t.Point.X, t.Point.Y)
		touched = append(touched, t.Point)
	}
	e.decorChanged()
	return touched
}

func (e *Engine) decorChanged() {
	if e.OnDecorChange != nil {
		e.OnDecorChange(e.Doc.Decor.List())
	}
}

// Viewport is the editable board rectangle on screen.
type Viewport struct {
	X, Y     int
	TileSize int
	Cols     int
	Rows     int
}

func (v Viewport) Rect() image.Rectangle {
	return image.Rect(v.X, v.Y, v.X+v.Cols*v.TileSize, v.Y+v.Rows*v.TileSize)
}

// Cell maps a screen position to a grid cell. ok is false outside the board.
func (v Viewport) Cell(px, py int) (grid.Point, bool) {
	if v.TileSize <= 0 {
		return grid.Point{}, false
	}
	if !image.Pt(px, py).In(v.Rect()) {
		return grid.Point{}, false
	}
	return grid.Point{X: (px - v.X) / v.TileSize, Y: (py - v.Y) / v.TileSize}, true
}

// Origin returns the screen position of the top-left corner of cell p.
func (v Viewport) Origin(p grid.Point) image.Point {
	return image.Pt(v.X+p.X*v.TileSize, v.Y+p.Y*v.TileSize)
}
