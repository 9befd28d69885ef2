package autotile

// Sink receives resolved tiles; in the editor it is the floor tile layer.
type Sink interface {
	PutTile(x, y, index int)
	RemoveTile(x, y int)
}

// Source is the grid view the resolver reads from.
type Source interface {
	Probe(x, y int) bool
	Adjust(x, y int) (int, int, bool)
	ForEach(fn func(x, y int))
}

type Resolver struct {
	Table Table
}

// Resolve returns the tile index for (x, y), or ok=false for "no tile".
func (r *Resolver) Resolve(src Source, x, y int) (int, bool) {
	mask, ok := WangID(src.Probe, x, y)
	if !ok {
		return -1, false
	}
	idx := r.Table.Index(mask)
	if idx < 0 {
		return -1, false
	}
	return idx, true
}

func (r *Resolver) apply(src Source, sink Sink, x, y int) {
	if idx, ok := r.Resolve(src, x, y); ok {
		sink.PutTile(x, y, idx)
		return
	}
	sink.RemoveTile(x, y)
}

// Refresh recomputes (x, y) and its 8 neighbours. Neighbours outside the
// grid are adjusted the same way the probe adjusts them, so wrapped edges
// stay consistent.
func (r *Resolver) Refresh(src Source, sink Sink, x, y int) {
	for yy := y - 1; yy <= y+1; yy++ {
		for xx := x - 1; xx <= x+1; xx++ {
			ax, ay, ok := src.Adjust(xx, yy)
			if !ok {
				continue
			}
			r.apply(src, sink, ax, ay)
		}
	}
}

// RefreshAll recomputes every cell of the grid rectangle.
func (r *Resolver) RefreshAll(src Source, sink Sink) {
	src.ForEach(func(x, y int) {
		r.apply(src, sink, x, y)
	})
}
