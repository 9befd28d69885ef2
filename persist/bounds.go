package persist

import (
	"fmt"

	"github.com/milk9111/blueprint/assets"
	"github.com/milk9111/blueprint/document"
	"github.com/milk9111/blueprint/grid"
)

// Bounds is the board a payload must fit. Cells outside it can never be
// drawn or erased, so imports carrying them are rejected.
type Bounds struct {
	Width, Height int
}

func DefaultBounds() Bounds {
	return Bounds{Width: document.DefaultWidth, Height: document.DefaultHeight}
}

func (b Bounds) contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

func validTile(tile int) bool {
	return tile >= 0 && tile < assets.PropCount
}

// check reports the first grid key or prop of a decoded field that falls
// outside b.
func (b Bounds) check(v any) error {
	switch val := v.(type) {
	case []GridEntry:
		for _, e := range val {
			p, err := grid.ParseKey(e.Key)
			if err != nil {
				return err
			}
			if !b.contains(p.X, p.Y) {
				return fmt.Errorf("grid cell %q outside %dx%d board", e.Key, b.Width, b.Height)
			}
		}
	case []document.Prop:
		for _, p := range val {
			if !b.contains(p.X, p.Y) {
				return fmt.Errorf("prop at %d,%d outside %dx%d board", p.X, p.Y, b.Width, b.Height)
			}
			if !validTile(p.Tile) {
				return fmt.Errorf("prop at %d,%d has unknown tile %d", p.X, p.Y, p.Tile)
			}
		}
	}
	return nil
}

// decodeWithin decodes a field and checks it against b.
func decodeWithin(b Bounds, key string, raw []byte) (any, error) {
	v, err := decodeField(key, raw)
	if err != nil {
		return nil, err
	}
	if err := b.check(v); err != nil {
		return nil, fmt.Errorf("field %q: %w", key, err)
	}
	return v, nil
}
