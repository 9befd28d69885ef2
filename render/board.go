package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/blueprint/assets"
	"github.com/milk9111/blueprint/document"
	"github.com/milk9111/blueprint/grid"
	"github.com/milk9111/blueprint/mirror"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	boardBackground = color.RGBA{0x0b, 0x10, 0x1c, 0xff}
	gridLine        = color.RGBA{0x2a, 0x3a, 0x55, 0xff}
	axisLine        = color.RGBA{0x8a, 0x2b, 0xe2, 0xa0}
	cursorLine      = colornames.White
)

// Board draws a document inside a viewport.
type Board struct {
	Viewport mirror.Viewport
	Floor    *FloorLayer

	props   *ebiten.Image
	icons   map[string]*ebiten.Image
	sources map[string]*text.GoTextFaceSource
}

func NewBoard(vp mirror.Viewport) (*Board, error) {
	sources := make(map[string]*text.GoTextFaceSource, 2)
	for name, ttf := range map[string][]byte{
		document.FontNeuro:   gomono.TTF,
		document.FontDefault: goregular.TTF,
	} {
		s, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
		if err != nil {
			return nil, fmt.Errorf("load font %s: %w", name, err)
		}
		sources[name] = s
	}
	return &Board{
		Viewport: vp,
		Floor:    NewFloorLayer(vp.TileSize),
		icons:    make(map[string]*ebiten.Image),
		sources:  sources,
	}, nil
}

// IconSize is the on-board size of icon placements in pixels.
const IconSize = 32

// IconImage returns the cached image for an icon texture.
func (b *Board) IconImage(name string) *ebiten.Image {
	img, ok := b.icons[name]
	if !ok {
		img = ebiten.NewImageFromImage(assets.Icon(name, IconSize))
		b.icons[name] = img
	}
	return img
}

// Face returns the face for a text placement.
func (b *Board) Face(t document.Text) text.Face {
	src, ok := b.sources[t.Font]
	if !ok {
		src = b.sources[document.FontNeuro]
	}
	return &text.GoTextFace{Source: src, Size: float64(t.Size) * t.Scale}
}

// Draw renders every layer of doc. Axes are shown for active mirror settings.
func (b *Board) Draw(dst *ebiten.Image, doc *document.Document, axes mirror.Axes, s mirror.Settings) {
	vp := b.Viewport
	r := vp.Rect()
	vector.FillRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), boardBackground, false)
	for c := 0; c <= vp.Cols; c++ {
		x := float32(vp.X + c*vp.TileSize)
		vector.StrokeLine(dst, x, float32(r.Min.Y), x, float32(r.Max.Y), 1, gridLine, false)
	}
	for row := 0; row <= vp.Rows; row++ {
		y := float32(vp.Y + row*vp.TileSize)
		vector.StrokeLine(dst, float32(r.Min.X), y, float32(r.Max.X), y, 1, gridLine, false)
	}

	b.Floor.Draw(dst, vp)
	b.drawDecor(dst, doc)
	b.drawAxes(dst, axes, s)

	for _, ic := range doc.Icons {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(ic.X-IconSize/2, ic.Y-IconSize/2)
		dst.DrawImage(b.IconImage(ic.Texture), op)
	}
	for _, t := range doc.Texts {
		op := &text.DrawOptions{}
		op.GeoM.Translate(t.X, t.Y)
		op.ColorScale.ScaleAlpha(float32(t.Alpha))
		text.Draw(dst, t.Content, b.Face(t), op)
	}
}

func (b *Board) drawDecor(dst *ebiten.Image, doc *document.Document) {
	vp := b.Viewport
	if b.props == nil {
		b.props = ebiten.NewImageFromImage(assets.PropSheet(vp.TileSize))
	}
	for _, p := range doc.Decor.List() {
		src := b.props.SubImage(assets.TileRect(p.Tile, vp.TileSize)).(*ebiten.Image)
		op := flipOptions(vp.Origin(grid.Point{X: p.X, Y: p.Y}), vp.TileSize, vp.TileSize, p.FlipX, p.FlipY)
		dst.DrawImage(src, op)
	}
}

func (b *Board) drawAxes(dst *ebiten.Image, axes mirror.Axes, s mirror.Settings) {
	vp := b.Viewport
	r := vp.Rect()
	half := float32(vp.TileSize) / 2
	if s.X {
		// Reflection about x' = X - x puts the axis at X/2 cells.
		x := float32(vp.X) + float32(axes.X)*half + half
		vector.StrokeLine(dst, x, float32(r.Min.Y), x, float32(r.Max.Y), 2, axisLine, false)
	}
	if s.Y {
		y := float32(vp.Y) + float32(axes.Y)*half + half
		vector.StrokeLine(dst, float32(r.Min.X), y, float32(r.Max.X), y, 2, axisLine, false)
	}
}

// DrawCursor outlines the hovered cell and its mirrored copies.
func (b *Board) DrawCursor(dst *ebiten.Image, c grid.Point, axes mirror.Axes, s mirror.Settings) {
	vp := b.Viewport
	for _, t := range axes.Targets(s, c) {
		if t.Point.X < 0 || t.Point.Y < 0 || t.Point.X >= vp.Cols || t.Point.Y >= vp.Rows {
			continue
		}
		o := vp.Origin(t.Point)
		vector.StrokeRect(dst, float32(o.X), float32(o.Y), float32(vp.TileSize), float32(vp.TileSize), 1, cursorLine, false)
	}
}

// HitIcon returns the id of the topmost icon under the pointer.
func (b *Board) HitIcon(doc *document.Document, px, py float64) (string, bool) {
	for i := len(doc.Icons) - 1; i >= 0; i-- {
		ic := doc.Icons[i]
		if px >= ic.X-IconSize/2 && px < ic.X+IconSize/2 && py >= ic.Y-IconSize/2 && py < ic.Y+IconSize/2 {
			return ic.ID, true
		}
	}
	return "", false
}

// HitText returns the id of the topmost text under the pointer.
func (b *Board) HitText(doc *document.Document, px, py float64) (string, bool) {
	for i := len(doc.Texts) - 1; i >= 0; i-- {
		t := doc.Texts[i]
		w, h := text.Measure(t.Content, b.Face(t), 0)
		if px >= t.X && px < t.X+w && py >= t.Y && py < t.Y+h {
			return t.ID, true
		}
	}
	return "", false
}
