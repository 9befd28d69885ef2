package editor

import (
	"fmt"
	"math"

	"github.com/milk9111/blueprint/grid"
)

const (
	brightnessStep = 0.05
	brightnessMax  = 1.0
	noiseLevel     = 0.1
	tintStep       = 0.01
	tintMax        = 0.5
)

// step adds inc to v and wraps to zero once the result passes max.
// Values are rounded to two decimals so repeated steps do not drift.
func step(v, inc, limit float64) float64 {
	v = math.Round((v+inc)*100) / 100
	if v > limit {
		return 0
	}
	return v
}

// CycleBrightness raises brightness while noise is on.
type CycleBrightness struct{}

func (CycleBrightness) records() bool { return false }

func (CycleBrightness) apply(s *Session) error {
	if s.FX.Noise == 0 {
		return nil
	}
	s.FX.Brightness = step(s.FX.Brightness, brightnessStep, brightnessMax)
	s.Status = fmt.Sprintf("brightness %.2f", s.FX.Brightness)
	return nil
}

type ToggleNoise struct{}

func (ToggleNoise) records() bool { return false }

func (ToggleNoise) apply(s *Session) error {
	if s.FX.Noise == 0 {
		s.FX.Noise = noiseLevel
	} else {
		s.FX.Noise = 0
	}
	return nil
}

type Channel int

const (
	Red Channel = iota
	Blue
)

// CycleTint raises one tint channel and persists the tint.
type CycleTint struct{ Channel Channel }

func (CycleTint) records() bool { return false }

func (c CycleTint) apply(s *Session) error {
	switch c.Channel {
	case Red:
		s.Doc.Tint.R = step(s.Doc.Tint.R, tintStep, tintMax)
	case Blue:
		s.Doc.Tint.B = step(s.Doc.Tint.B, tintStep, tintMax)
	default:
		return fmt.Errorf("cycle tint: unknown channel %d", c.Channel)
	}
	s.flush(s.Flusher.FlushTint)
	return nil
}

// scriptTarget lets macros edit through the mirror engine without taking
// a snapshot per cell.
type scriptTarget struct{ s *Session }

func (t scriptTarget) Size() (int, int) {
	return t.s.Doc.Floor.Width, t.s.Doc.Floor.Height
}

func (t scriptTarget) Has(x, y int) bool { return t.s.Doc.Floor.Has(x, y) }

func (t scriptTarget) Paint(x, y int) { t.s.Engine.PaintFloor(grid.Point{X: x, Y: y}) }

func (t scriptTarget) Erase(x, y int) { t.s.Engine.EraseFloor(grid.Point{X: x, Y: y}) }

func (t scriptTarget) PaintDecor(x, y, tile int) {
	t.s.Engine.PaintDecor(grid.Point{X: x, Y: y}, tile)
}

func (t scriptTarget) EraseDecor(x, y int) { t.s.Engine.EraseDecor(grid.Point{X: x, Y: y}) }

func (t scriptTarget) AddText(content string, x, y float64) {
	t.s.Doc.AddText(content, x, y)
	t.s.flush(t.s.Flusher.FlushTexts)
}
