package document

import "github.com/milk9111/blueprint/grid"

// CloneIcons returns an independent copy of icons.
func CloneIcons(src []Icon) []Icon {
	if src == nil {
		return nil
	}
	res := make([]Icon, len(src))
	copy(res, src)
	return res
}

// CloneTexts returns an independent copy of texts.
func CloneTexts(src []Text) []Text {
	if src == nil {
		return nil
	}
	res := make([]Text, len(src))
	copy(res, src)
	return res
}

// Clone deep-copies the document. Grid change hooks are not carried over.
func (d *Document) Clone() *Document {
	decor := NewDecor()
	decor.Replace(d.Decor.List())
	return &Document{
		Floor: d.Floor.Clone(),
		Props: d.Props.Clone(),
		Decor: decor,
		Icons: CloneIcons(d.Icons),
		Texts: CloneTexts(d.Texts),
		Tint:  d.Tint,
	}
}

// SyncPropsGrid rebuilds the props bookkeeping grid from the décor layer.
func (d *Document) SyncPropsGrid() {
	list := d.Decor.List()
	pts := make([]grid.Point, 0, len(list))
	for _, p := range list {
		pts = append(pts, grid.Point{X: p.X, Y: p.Y})
	}
	d.Props.Replace(pts)
}

// Equal compares the editable content: floor points, décor, icons, texts.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	if !d.Floor.Equal(other.Floor) {
		return false
	}
	a, b := d.Decor.List(), other.Decor.List()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	if len(d.Icons) != len(other.Icons) || len(d.Texts) != len(other.Texts) {
		return false
	}
	for i := range d.Icons {
		if d.Icons[i] != other.Icons[i] {
			return false
		}
	}
	for i := range d.Texts {
		if d.Texts[i] != other.Texts[i] {
			return false
		}
	}
	return true
}
