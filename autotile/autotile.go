// Package autotile resolves blob (47-tile) autotile graphics from the
// occupancy of a cell's 8-neighbourhood.
package autotile

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	MaskN uint8 = 1 << iota
	MaskNE
	MaskE
	MaskSE
	MaskS
	MaskSW
	MaskW
	MaskNW
)

// 47-tile autotile mask order (ascending valid masks with corner constraints).
// The position of a mask in this list is its tile index in the blob sheet.
var maskOrder = [47]uint8{
	28, 124, 112, 16, 247, 223, 125, 31, 255, 241, 17, 253, 127, 95, 7, 199, 193, 1, 117, 87, 245, 4, 68, 64, 0, 213, 93, 215, 23, 209, 116, 92, 20, 84, 80, 29, 113, 197, 71, 21, 85, 81, 221, 119, 5, 69, 65,
}

var maskToIndex = initMaskToIndex()

func initMaskToIndex() [256]int {
	var lookup [256]int
	for i := range lookup {
		lookup[i] = -1
	}
	for idx, mask := range maskOrder {
		lookup[int(mask)] = idx
	}
	return lookup
}

// TileCount is the number of graphics in a blob sheet.
const TileCount = len(maskOrder)

// SingleTile is the tile index of an isolated cell (mask 0).
var SingleTile = maskToIndex[0]

// FullTile is the tile index of a fully surrounded cell (mask 255).
var FullTile = maskToIndex[255]

// Probe reports whether (x, y) is occupied. Out-of-bounds handling is up to
// the probe; grid.Grid.Probe wraps by default.
type Probe func(x, y int) bool

// Mask computes the blob mask of (x, y). Corner bits are only kept when both
// adjacent edges are occupied.
func Mask(probe Probe, x, y int) uint8 {
	var mask uint8
	n := probe(x, y-1)
	e := probe(x+1, y)
	s := probe(x, y+1)
	w := probe(x-1, y)
	if n {
		mask |= MaskN
	}
	if e {
		mask |= MaskE
	}
	if s {
		mask |= MaskS
	}
	if w {
		mask |= MaskW
	}
	if n && e && probe(x+1, y-1) {
		mask |= MaskNE
	}
	if s && e && probe(x+1, y+1) {
		mask |= MaskSE
	}
	if s && w && probe(x-1, y+1) {
		mask |= MaskSW
	}
	if n && w && probe(x-1, y-1) {
		mask |= MaskNW
	}
	return mask
}

// WangID returns the mask of (x, y), or ok=false when the cell itself is empty.
func WangID(probe Probe, x, y int) (uint8, bool) {
	if !probe(x, y) {
		return 0, false
	}
	return Mask(probe, x, y), true
}

// Valid reports whether mask is one of the 47 reachable blob masks.
func Valid(mask uint8) bool {
	return maskToIndex[int(mask)] >= 0
}

// Masks returns the 47 masks in tile-index order.
func Masks() []uint8 {
	out := make([]uint8, len(maskOrder))
	copy(out, maskOrder[:])
	return out
}

// Table maps a mask to a tile-graphic index. A nil table uses the sheet order.
type Table []int

// Index resolves mask to a tile index, or -1 when the mask is unreachable.
func (t Table) Index(mask uint8) int {
	idx := maskToIndex[int(mask)]
	if idx < 0 {
		return -1
	}
	if len(t) == len(maskOrder) && t[idx] >= 0 {
		return t[idx]
	}
	return idx
}

// LoadTable reads a JSON array of 47 tile indices in mask order.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read autotile map: %w", err)
	}
	var indices []int
	if err := json.Unmarshal(data, &indices); err != nil {
		return nil, fmt.Errorf("parse autotile map: %w", err)
	}
	if len(indices) != len(maskOrder) {
		return nil, fmt.Errorf("autotile map must have %d entries, got %d", len(maskOrder), len(indices))
	}
	return Table(indices), nil
}
