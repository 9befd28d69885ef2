// Package render draws the blueprint board with ebiten.
package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/blueprint/assets"
	"github.com/milk9111/blueprint/grid"
	"github.com/milk9111/blueprint/mirror"
)

// FloorLayer holds resolved floor tiles. It is the autotile sink of the
// editing session.
type FloorLayer struct {
	tiles map[grid.Point]int
	sheet *ebiten.Image
	size  int
}

func NewFloorLayer(tileSize int) *FloorLayer {
	return &FloorLayer{tiles: make(map[grid.Point]int), size: tileSize}
}

func (f *FloorLayer) PutTile(x, y, index int) {
	f.tiles[grid.Point{X: x, Y: y}] = index
}

func (f *FloorLayer) RemoveTile(x, y int) {
	delete(f.tiles, grid.Point{X: x, Y: y})
}

func (f *FloorLayer) At(x, y int) (int, bool) {
	idx, ok := f.tiles[grid.Point{X: x, Y: y}]
	return idx, ok
}

func (f *FloorLayer) Len() int { return len(f.tiles) }

func (f *FloorLayer) Draw(dst *ebiten.Image, vp mirror.Viewport) {
	if f.sheet == nil {
		f.sheet = ebiten.NewImageFromImage(assets.FloorSheet(f.size))
	}
	scale := float64(vp.TileSize) / float64(f.size)
	for p, idx := range f.tiles {
		src := f.sheet.SubImage(assets.TileRect(idx, f.size)).(*ebiten.Image)
		o := vp.Origin(p)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(float64(o.X), float64(o.Y))
		dst.DrawImage(src, op)
	}
}

// flipOptions positions a size-pixel tile at origin o, mirrored as asked.
func flipOptions(o image.Point, size, target int, flipX, flipY bool) *ebiten.DrawImageOptions {
	op := &ebiten.DrawImageOptions{}
	sx, sy := 1.0, 1.0
	if flipX {
		sx = -1
		op.GeoM.Translate(-float64(size), 0)
	}
	if flipY {
		sy = -1
		op.GeoM.Translate(0, -float64(size))
	}
	op.GeoM.Scale(sx, sy)
	scale := float64(target) / float64(size)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(o.X), float64(o.Y))
	return op
}
