package history

import (
	"testing"

	"github.com/milk9111/blueprint/document"
	"github.com/milk9111/blueprint/grid"
)

func sampleDoc() *document.Document {
	d := document.New(document.DefaultWidth, document.DefaultHeight)
	d.Floor.Set(1, 1)
	d.Floor.Set(2, 2)
	return d
}

func TestUndoRestoresGrid(t *testing.T) {
	d := sampleDoc()
	m := NewManager(0)

	m.Push(d)
	d.Floor.Unset(1, 1)

	if !m.Undo(d) {
		t.Fatalf("Undo should report success")
	}
	pts := d.Floor.Points()
	if len(pts) != 2 || pts[0] != (grid.Point{X: 1, Y: 1}) || pts[1] != (grid.Point{X: 2, Y: 2}) {
		t.Fatalf("grid not restored: %v", pts)
	}
}

func TestUndoRedoFullDocument(t *testing.T) {
	d := sampleDoc()
	d.Decor.Put(document.Prop{X: 3, Y: 3, Tile: 4})
	icon := d.AddIcon("egg", "EGG", 1, 1)
	d.AddText("LAB", 2, 2)
	before := d.Clone()
	m := NewManager(10)

	m.Push(d)
	d.Floor.Set(5, 5)
	d.Decor.Remove(3, 3)
	d.MoveIcon(icon.ID, 40, 40)
	d.Texts = nil
	after := d.Clone()

	m.Undo(d)
	if !d.Equal(before) {
		t.Fatalf("undo should restore the pre-edit document")
	}
	if !d.Props.Has(3, 3) {
		t.Fatalf("props grid should be rebuilt from restored décor")
	}

	if !m.Redo(d) {
		t.Fatalf("redo should succeed after undo")
	}
	if !d.Equal(after) {
		t.Fatalf("redo should restore the post-edit document")
	}
}

func TestNewEditInvalidatesRedo(t *testing.T) {
	d := sampleDoc()
	m := NewManager(10)

	m.Push(d)
	d.Floor.Set(7, 7)
	m.Undo(d)
	if !m.CanRedo() {
		t.Fatalf("redo should be available right after undo")
	}

	m.Push(d)
	d.Floor.Set(8, 8)

	if m.CanRedo() {
		t.Fatalf("new edit must clear the redo stack")
	}
	snapshot := d.Clone()
	if m.Redo(d) {
		t.Fatalf("redo after undo-then-edit should be a no-op")
	}
	if !d.Equal(snapshot) {
		t.Fatalf("no-op redo changed the document")
	}
}

func TestEmptyStacksAreNoOps(t *testing.T) {
	d := sampleDoc()
	m := NewManager(10)
	if m.Undo(d) || m.Redo(d) {
		t.Fatalf("empty stacks should report false")
	}
	if d.Floor.Len() != 2 {
		t.Fatalf("document changed by no-op")
	}
}

func TestLimitDropsOldest(t *testing.T) {
	d := document.New(5, 5)
	m := NewManager(3)
	for i := 0; i < 5; i++ {
		m.Push(d)
		d.Floor.Set(i, 0)
	}
	if u, _ := m.Depth(); u != 3 {
		t.Fatalf("undo depth = %d, want 3", u)
	}
	for m.Undo(d) {
	}
	// The two oldest states were dropped, so the earliest reachable state
	// already has (0,0) and (1,0).
	if d.Floor.Len() != 2 || !d.Floor.Has(0, 0) || !d.Floor.Has(1, 0) {
		t.Fatalf("unexpected earliest state: %v", d.Floor.Points())
	}
}

func TestSnapshotIsIndependentOfLaterEdits(t *testing.T) {
	d := sampleDoc()
	d.AddIcon("egg", "EGG", 1, 1)
	snap := Capture(d)
	d.Icons[0].X = 99
	d.Floor.Set(9, 9)

	snap.Restore(d)
	if d.Icons[0].X != 1 || d.Floor.Has(9, 9) {
		t.Fatalf("snapshot was aliased to live state")
	}
}
