// Package assets draws the editor's tile sheets, prop and icon art
// procedurally and embeds its default data files.
package assets

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sort"

	"github.com/milk9111/blueprint/autotile"
	"golang.org/x/image/colornames"
)

// SheetColumns is the number of tiles per row in generated sheets.
const SheetColumns = 8

var (
	FloorFill   = colornames.Darkslategray
	FloorEdge   = colornames.Aquamarine
	FloorCorner = colornames.Mediumaquamarine
)

// ParseHexColor parses a colour in the form #rrggbb. It returns an opaque
// blue when parsing fails.
func ParseHexColor(s string) color.RGBA {
	var r, g, b uint8 = 0x3c, 0x78, 0xff
	if len(s) == 7 && s[0] == '#' {
		var ri, gi, bi uint32
		if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &ri, &gi, &bi); err == nil {
			r = uint8(ri)
			g = uint8(gi)
			b = uint8(bi)
		}
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// TileRect is the source rectangle of tile index in a sheet of size-pixel tiles.
func TileRect(index, size int) image.Rectangle {
	x := (index % SheetColumns) * size
	y := (index / SheetColumns) * size
	return image.Rect(x, y, x+size, y+size)
}

func sheet(count, size int) *image.RGBA {
	rows := (count + SheetColumns - 1) / SheetColumns
	return image.NewRGBA(image.Rect(0, 0, SheetColumns*size, rows*size))
}

// FloorSheet draws the 47 blob tiles in mask order. Open edges get a rim and
// missing inner corners a notch, so joined cells read as one surface.
func FloorSheet(size int) *image.RGBA {
	masks := autotile.Masks()
	img := sheet(len(masks), size)
	for i, mask := range masks {
		drawFloorTile(img, TileRect(i, size), mask)
	}
	return img
}

func drawFloorTile(img *image.RGBA, r image.Rectangle, mask uint8) {
	draw.Draw(img, r, image.NewUniform(FloorFill), image.Point{}, draw.Src)
	rim := r.Dx() / 8
	if rim < 1 {
		rim = 1
	}
	fill := func(rect image.Rectangle, c color.Color) {
		draw.Draw(img, rect.Intersect(r), image.NewUniform(c), image.Point{}, draw.Src)
	}

	if mask&autotile.MaskN == 0 {
		fill(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+rim), FloorEdge)
	}
	if mask&autotile.MaskS == 0 {
		fill(image.Rect(r.Min.X, r.Max.Y-rim, r.Max.X, r.Max.Y), FloorEdge)
	}
	if mask&autotile.MaskW == 0 {
		fill(image.Rect(r.Min.X, r.Min.Y, r.Min.X+rim, r.Max.Y), FloorEdge)
	}
	if mask&autotile.MaskE == 0 {
		fill(image.Rect(r.Max.X-rim, r.Min.Y, r.Max.X, r.Max.Y), FloorEdge)
	}

	corner := func(edges, bit uint8, x, y int) {
		if mask&edges == edges && mask&bit == 0 {
			fill(image.Rect(x, y, x+rim, y+rim), FloorCorner)
		}
	}
	corner(autotile.MaskN|autotile.MaskW, autotile.MaskNW, r.Min.X, r.Min.Y)
	corner(autotile.MaskN|autotile.MaskE, autotile.MaskNE, r.Max.X-rim, r.Min.Y)
	corner(autotile.MaskS|autotile.MaskW, autotile.MaskSW, r.Min.X, r.Max.Y-rim)
	corner(autotile.MaskS|autotile.MaskE, autotile.MaskSE, r.Max.X-rim, r.Max.Y-rim)
}

type shape int

const (
	shapeCircle shape = iota
	shapeTriangle
	shapeSquare
	shapeCross
)

type prop struct {
	shape shape
	color color.RGBA
}

var props = []prop{
	{shapeCircle, colornames.Orange},
	{shapeTriangle, colornames.Crimson},
	{shapeSquare, colornames.Khaki},
	{shapeCross, colornames.Lime},
	{shapeCircle, colornames.Violet},
	{shapeTriangle, colornames.Gold},
	{shapeSquare, colornames.Steelblue},
	{shapeCross, colornames.Tomato},
}

// PropCount is the number of décor tiles in PropSheet.
var PropCount = len(props)

func PropSheet(size int) *image.RGBA {
	img := sheet(len(props), size)
	for i, p := range props {
		r := TileRect(i, size)
		draw.Draw(img, r, shapeImage(p.shape, size, p.color), image.Point{}, draw.Over)
	}
	return img
}

var icons = map[string]prop{
	"reactor":  {shapeCircle, colornames.Yellow},
	"airlock":  {shapeSquare, colornames.Lightskyblue},
	"hazard":   {shapeTriangle, colornames.Orangered},
	"medbay":   {shapeCross, colornames.White},
	"beacon":   {shapeTriangle, colornames.Springgreen},
	"specimen": {shapeCircle, colornames.Hotpink},
}

// IconNames lists the icon texture keys in sorted order.
func IconNames() []string {
	names := make([]string, 0, len(icons))
	for name := range icons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Icon draws the named icon. Unknown names get a grey square.
func Icon(name string, size int) *image.RGBA {
	p, ok := icons[name]
	if !ok {
		p = prop{shapeSquare, colornames.Gray}
	}
	return shapeImage(p.shape, size, p.color)
}

func shapeImage(s shape, size int, col color.RGBA) *image.RGBA {
	switch s {
	case shapeCircle:
		return circleImage(size, col)
	case shapeTriangle:
		return triangleImage(size, col)
	case shapeCross:
		return crossImage(size, col)
	default:
		return squareImage(size, col)
	}
}

// circleImage builds an RGBA image with a filled circle of the given color.
func circleImage(size int, col color.RGBA) *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	cx := float64(size) / 2
	cy := float64(size) / 2
	r := float64(size)/2 - 2
	rr := r * r
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= rr {
				rgba.SetRGBA(x, y, col)
			}
		}
	}
	return rgba
}

// triangleImage builds an upward-pointing triangle with its base at the bottom.
func triangleImage(size int, col color.RGBA) *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	if size < 2 {
		return rgba
	}
	cx := float64(size) / 2
	for y := 0; y < size; y++ {
		rowWidth := float64(y) / float64(size-1) * float64(size)
		left := cx - rowWidth/2
		right := cx + rowWidth/2
		for x := 0; x < size; x++ {
			fx := float64(x) + 0.5
			if fx >= left && fx <= right {
				rgba.SetRGBA(x, y, col)
			}
		}
	}
	return rgba
}

func squareImage(size int, col color.RGBA) *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	pad := size / 6
	draw.Draw(rgba, image.Rect(pad, pad, size-pad, size-pad), image.NewUniform(col), image.Point{}, draw.Src)
	return rgba
}

func crossImage(size int, col color.RGBA) *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	bar := size / 4
	mid := size / 2
	u := image.NewUniform(col)
	draw.Draw(rgba, image.Rect(mid-bar/2, 1, mid+bar-bar/2, size-1), u, image.Point{}, draw.Src)
	draw.Draw(rgba, image.Rect(1, mid-bar/2, size-1, mid+bar-bar/2), u, image.Point{}, draw.Src)
	return rgba
}
