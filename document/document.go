// Package document holds the editable blueprint: floor grid, décor layer,
// icon and text placements and the screen tint.
package document

import (
	"sort"

	"github.com/milk9111/blueprint/grid"
	"github.com/oklog/ulid/v2"
)

const (
	DefaultWidth  = 25
	DefaultHeight = 31
)

// Prop is one décor tile.
type Prop struct {
	X     int  `json:"x"`
	Y     int  `json:"y"`
	Tile  int  `json:"t"`
	FlipX bool `json:"fx,omitempty"`
	FlipY bool `json:"fy,omitempty"`
}

type Icon struct {
	ID      string  `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Texture string  `json:"textureKey"`
	Name    string  `json:"name"`
}

type Text struct {
	ID      string  `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Font    string  `json:"font"`
	Content string  `json:"text"`
	Size    int     `json:"fontSize"`
	Scale   float64 `json:"scale"`
	Alpha   float64 `json:"alpha"`
	Name    string  `json:"name"`
}

// Tint is the persisted screen colour offset.
type Tint struct {
	R float64 `json:"R"`
	G float64 `json:"G"`
	B float64 `json:"B"`
}

type Document struct {
	Floor *grid.Grid
	// Props mirrors the floor dimensions for décor bookkeeping.
	Props *grid.Grid
	Decor *Decor
	Icons []Icon
	Texts []Text
	Tint  Tint
}

func New(width, height int) *Document {
	return &Document{
		Floor: grid.New(width, height),
		Props: grid.New(width, height),
		Decor: NewDecor(),
	}
}

// NewID returns a fresh stable identifier for icons and texts.
func NewID() string {
	return ulid.Make().String()
}

// Reset empties every layer and zeroes the tint. Grid hooks stay attached.
func (d *Document) Reset() {
	d.Floor.Clear()
	d.Props.Clear()
	d.Decor.Clear()
	d.Icons = nil
	d.Texts = nil
	d.Tint = Tint{}
}

func (d *Document) AddIcon(texture, name string, x, y float64) Icon {
	icon := Icon{ID: NewID(), X: x, Y: y, Texture: texture, Name: name}
	d.Icons = append(d.Icons, icon)
	return icon
}

func (d *Document) IconIndex(id string) int {
	for i := range d.Icons {
		if d.Icons[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Document) MoveIcon(id string, x, y float64) bool {
	i := d.IconIndex(id)
	if i < 0 {
		return false
	}
	d.Icons[i].X = x
	d.Icons[i].Y = y
	return true
}

func (d *Document) RemoveIcon(id string) bool {
	i := d.IconIndex(id)
	if i < 0 {
		return false
	}
	d.Icons = append(d.Icons[:i], d.Icons[i+1:]...)
	return true
}

// AddText places a new label with default styling.
func (d *Document) AddText(content string, x, y float64) Text {
	txt := Text{
		ID:      NewID(),
		X:       x,
		Y:       y,
		Font:    FontNeuro,
		Content: content,
		Size:    DefaultFontSize,
		Scale:   1,
		Alpha:   1,
		Name:    content,
	}
	d.Texts = append(d.Texts, txt)
	return txt
}

func (d *Document) TextIndex(id string) int {
	for i := range d.Texts {
		if d.Texts[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Document) MoveText(id string, x, y float64) bool {
	i := d.TextIndex(id)
	if i < 0 {
		return false
	}
	d.Texts[i].X = x
	d.Texts[i].Y = y
	return true
}

// UpdateText applies fn to the text with the given id.
func (d *Document) UpdateText(id string, fn func(t *Text)) bool {
	i := d.TextIndex(id)
	if i < 0 {
		return false
	}
	fn(&d.Texts[i])
	d.Texts[i].normalize()
	return true
}

func (d *Document) RemoveText(id string) bool {
	i := d.TextIndex(id)
	if i < 0 {
		return false
	}
	d.Texts = append(d.Texts[:i], d.Texts[i+1:]...)
	return true
}

// Text styling presets.
const (
	FontNeuro       = "neuro"
	FontDefault     = "font"
	DefaultFontSize = 16
)

var FontScales = []float64{1, 1.618, 3.236, 4.854}

func (t *Text) normalize() {
	if t.Font != FontNeuro && t.Font != FontDefault {
		t.Font = FontNeuro
	}
	if t.Size <= 0 {
		t.Size = DefaultFontSize
	}
	if t.Scale <= 0 {
		t.Scale = 1
	}
	if t.Alpha < 0 {
		t.Alpha = 0
	}
	if t.Alpha > 1 {
		t.Alpha = 1
	}
}

// Decor is the décor layer keyed by cell.
type Decor struct {
	tiles map[grid.Point]Prop
}

func NewDecor() *Decor {
	return &Decor{tiles: make(map[grid.Point]Prop)}
}

func (d *Decor) Put(p Prop) {
	d.tiles[grid.Point{X: p.X, Y: p.Y}] = p
}

func (d *Decor) At(x, y int) (Prop, bool) {
	p, ok := d.tiles[grid.Point{X: x, Y: y}]
	return p, ok
}

func (d *Decor) Remove(x, y int) bool {
	key := grid.Point{X: x, Y: y}
	if _, ok := d.tiles[key]; !ok {
		return false
	}
	delete(d.tiles, key)
	return true
}

func (d *Decor) Clear() {
	d.tiles = make(map[grid.Point]Prop)
}

func (d *Decor) Len() int {
	return len(d.tiles)
}

// List returns the placed props sorted row-major.
func (d *Decor) List() []Prop {
	out := make([]Prop, 0, len(d.tiles))
	for _, p := range d.tiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Replace swaps the layer contents for props.
func (d *Decor) Replace(props []Prop) {
	d.tiles = make(map[grid.Point]Prop, len(props))
	for _, p := range props {
		d.Put(p)
	}
}
