package render

import (
	"image"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/blueprint/document"
	"github.com/milk9111/blueprint/editor"
)

// Scale returns the per-channel multipliers applied to the finished frame:
// brightness lifts every channel, the tint lifts its own.
func Scale(fx editor.FX, tint document.Tint) (r, g, b float32) {
	base := 1 + fx.Brightness
	return float32(base + tint.R), float32(base + tint.G), float32(base + tint.B)
}

// Post applies brightness, tint and noise to a finished frame.
type Post struct {
	frame *ebiten.Image
	noise *ebiten.Image
	rng   *rand.Rand
}

func NewPost(seed int64) *Post {
	return &Post{rng: rand.New(rand.NewSource(seed))}
}

// Target returns the offscreen image the board is drawn into.
func (p *Post) Target(w, h int) *ebiten.Image {
	if p.frame == nil || p.frame.Bounds().Dx() != w || p.frame.Bounds().Dy() != h {
		p.frame = ebiten.NewImage(w, h)
	}
	p.frame.Clear()
	return p.frame
}

// Frame is the last image returned by Target, for snapshots.
func (p *Post) Frame() *ebiten.Image { return p.frame }

func (p *Post) Apply(dst *ebiten.Image, fx editor.FX, tint document.Tint) {
	if p.frame == nil {
		return
	}
	r, g, b := Scale(fx, tint)
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.Scale(r, g, b, 1)
	dst.DrawImage(p.frame, op)

	if fx.Noise <= 0 {
		return
	}
	if p.noise == nil {
		p.noise = ebiten.NewImageFromImage(noiseImage(p.rng, 256))
	}
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	ox, oy := p.rng.Intn(256), p.rng.Intn(256)
	for y := -oy; y < h; y += 256 {
		for x := -ox; x < w; x += 256 {
			nop := &ebiten.DrawImageOptions{}
			nop.GeoM.Translate(float64(x), float64(y))
			nop.ColorScale.ScaleAlpha(float32(fx.Noise))
			dst.DrawImage(p.noise, nop)
		}
	}
}

func noiseImage(rng *rand.Rand, size int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.Intn(256))
	}
	return img
}

