package persist

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/milk9111/blueprint/document"
	"github.com/milk9111/blueprint/grid"
)

// GridEntry is one ["x,y", true] pair of the serialized grid.
type GridEntry struct {
	Key   string
	Value bool
}

func (e GridEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.Key, e.Value})
}

func (e *GridEntry) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("grid entry: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("grid entry: want 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &e.Key); err != nil {
		return fmt.Errorf("grid entry key: %w", err)
	}
	if _, err := grid.ParseKey(e.Key); err != nil {
		return err
	}
	if err := json.Unmarshal(pair[1], &e.Value); err != nil {
		return fmt.Errorf("grid entry value: %w", err)
	}
	return nil
}

// GridEntriesOf serializes g's occupied points in row-major order.
func GridEntriesOf(g *grid.Grid) []GridEntry {
	pts := g.Points()
	out := make([]GridEntry, 0, len(pts))
	for _, p := range pts {
		out = append(out, GridEntry{Key: p.Key(), Value: true})
	}
	return out
}

// GridPoints converts entries back to points, dropping false values.
func GridPoints(entries []GridEntry) []grid.Point {
	out := make([]grid.Point, 0, len(entries))
	for _, e := range entries {
		if !e.Value {
			continue
		}
		p, err := grid.ParseKey(e.Key)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Payload is the shareable / exportable document structure.
type Payload struct {
	Icons     []document.Icon `json:"icons"`
	Texts     []document.Text `json:"texts"`
	Props     []document.Prop `json:"props"`
	Grid      []GridEntry     `json:"grid"`
	RGBValues *document.Tint  `json:"rgbValues,omitempty"`
}

// PayloadOf captures doc. Slices are never nil so every key encodes.
func PayloadOf(doc *document.Document) Payload {
	p := Payload{
		Icons: document.CloneIcons(doc.Icons),
		Texts: document.CloneTexts(doc.Texts),
		Props: doc.Decor.List(),
		Grid:  GridEntriesOf(doc.Floor),
	}
	if p.Icons == nil {
		p.Icons = []document.Icon{}
	}
	if p.Texts == nil {
		p.Texts = []document.Text{}
	}
	return p
}

// Document rebuilds a document of the given size from the payload. Cells
// and props outside the board, and props with unknown tiles, are dropped.
func (p Payload) Document(width, height int) *document.Document {
	doc := document.New(width, height)
	b := Bounds{Width: doc.Floor.Width, Height: doc.Floor.Height}
	pts := GridPoints(p.Grid)
	floor := pts[:0]
	for _, pt := range pts {
		if b.contains(pt.X, pt.Y) {
			floor = append(floor, pt)
		}
	}
	doc.Floor.Replace(floor)
	props := make([]document.Prop, 0, len(p.Props))
	for _, pr := range p.Props {
		if b.contains(pr.X, pr.Y) && validTile(pr.Tile) {
			props = append(props, pr)
		}
	}
	doc.Decor.Replace(props)
	doc.SyncPropsGrid()
	doc.Icons = fillIconIDs(p.Icons)
	doc.Texts = fillTextIDs(p.Texts)
	if p.RGBValues != nil {
		doc.Tint = *p.RGBValues
	}
	return doc
}

// Older saves carry no ids; give them fresh ones.
func fillIconIDs(src []document.Icon) []document.Icon {
	out := document.CloneIcons(src)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = document.NewID()
		}
	}
	return out
}

func fillTextIDs(src []document.Text) []document.Text {
	out := document.CloneTexts(src)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = document.NewID()
		}
	}
	return out
}

// decodeField validates raw against the Go type of the named key.
func decodeField(key string, raw []byte) (any, error) {
	var err error
	var v any
	switch key {
	case KeyIcons:
		var icons []document.Icon
		err = json.Unmarshal(raw, &icons)
		v = icons
	case KeyTexts:
		var texts []document.Text
		err = json.Unmarshal(raw, &texts)
		v = texts
	case KeyProps:
		var props []document.Prop
		err = json.Unmarshal(raw, &props)
		v = props
	case KeyGrid:
		var entries []GridEntry
		err = json.Unmarshal(raw, &entries)
		v = entries
	case KeyRGBValues:
		var tint document.Tint
		err = json.Unmarshal(raw, &tint)
		v = tint
	default:
		return nil, fmt.Errorf("unknown field %q", key)
	}
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", key, err)
	}
	return v, nil
}

func isNull(raw []byte) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// LoadDocument reads every field from store. Missing, null or corrupt
// fields fall back to empty collections and a zero tint.
func LoadDocument(store Store, width, height int) *document.Document {
	var p Payload
	for _, key := range append(append([]string(nil), DocumentKeys...), KeyRGBValues) {
		raw, ok, err := store.Get(key)
		if err != nil {
			log.Printf("load %s: %v", key, err)
			continue
		}
		if !ok || isNull(raw) {
			continue
		}
		v, err := decodeField(key, raw)
		if err != nil {
			log.Printf("load %s: %v", key, err)
			continue
		}
		switch val := v.(type) {
		case []document.Icon:
			p.Icons = val
		case []document.Text:
			p.Texts = val
		case []document.Prop:
			p.Props = val
		case []GridEntry:
			p.Grid = val
		case document.Tint:
			p.RGBValues = &val
		}
	}
	return p.Document(width, height)
}
