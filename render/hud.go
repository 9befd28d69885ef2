package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const hudLineHeight = 16

var (
	hudText  = color.RGBA{0x7f, 0xff, 0xd4, 0xff}
	helpBack = color.RGBA{0, 0, 0, 200}
)

// HUD draws the status lines and the help overlay.
type HUD struct {
	face text.Face
}

func NewHUD() *HUD {
	return &HUD{face: text.NewGoXFace(basicfont.Face7x13)}
}

func (h *HUD) Face() text.Face { return h.face }

// Lines draws lines top-down starting at (x, y).
func (h *HUD) Lines(dst *ebiten.Image, x, y float64, lines []string) {
	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y+float64(i*hudLineHeight))
		op.ColorScale.ScaleWithColor(hudText)
		text.Draw(dst, line, h.face, op)
	}
}

// Help draws lines on a dark panel.
func (h *HUD) Help(dst *ebiten.Image, x, y float64, lines []string) {
	var w float64
	for _, line := range lines {
		lw, _ := text.Measure(line, h.face, 0)
		if lw > w {
			w = lw
		}
	}
	hgt := float64(len(lines) * hudLineHeight)
	vector.FillRect(dst, float32(x-8), float32(y-8), float32(w+16), float32(hgt+16), helpBack, false)
	h.Lines(dst, x, y, lines)
}
