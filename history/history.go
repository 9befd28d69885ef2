// Package history keeps linear undo/redo stacks of document snapshots.
package history

import (
	"github.com/milk9111/blueprint/document"
	"github.com/milk9111/blueprint/grid"
)

const DefaultLimit = 100

// Snapshot is a deep copy of the document's editable state. Treat it as
// immutable; Restore copies out of it.
type Snapshot struct {
	floor []grid.Point
	decor []document.Prop
	icons []document.Icon
	texts []document.Text
}

// Capture copies the floor, décor, icons and texts of doc.
func Capture(doc *document.Document) Snapshot {
	return Snapshot{
		floor: doc.Floor.Points(),
		decor: doc.Decor.List(),
		icons: document.CloneIcons(doc.Icons),
		texts: document.CloneTexts(doc.Texts),
	}
}

// Restore writes the snapshot back into doc, replacing its layers. The
// floor grid's change hook fires once.
func (s Snapshot) Restore(doc *document.Document) {
	doc.Decor.Replace(s.decor)
	doc.SyncPropsGrid()
	doc.Icons = document.CloneIcons(s.icons)
	doc.Texts = document.CloneTexts(s.texts)
	doc.Floor.Replace(append([]grid.Point(nil), s.floor...))
}

// Matches reports whether doc still holds exactly the snapshotted state.
func (s Snapshot) Matches(doc *document.Document) bool {
	return Capture(doc).equal(s)
}

func (s Snapshot) equal(o Snapshot) bool {
	if len(s.floor) != len(o.floor) || len(s.decor) != len(o.decor) ||
		len(s.icons) != len(o.icons) || len(s.texts) != len(o.texts) {
		return false
	}
	for i := range s.floor {
		if s.floor[i] != o.floor[i] {
			return false
		}
	}
	for i := range s.decor {
		if s.decor[i] != o.decor[i] {
			return false
		}
	}
	for i := range s.icons {
		if s.icons[i] != o.icons[i] {
			return false
		}
	}
	for i := range s.texts {
		if s.texts[i] != o.texts[i] {
			return false
		}
	}
	return true
}

type Manager struct {
	// Limit caps the undo stack; the oldest snapshot is dropped first.
	Limit int

	undo []Snapshot
	redo []Snapshot
}

func NewManager(limit int) *Manager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager{Limit: limit}
}

// Push records doc's current state before a destructive edit and
// invalidates the redo stack.
func (m *Manager) Push(doc *document.Document) {
	m.Record(Capture(doc))
}

// Record pushes a snapshot taken earlier, for edits that only commit once
// they succeed.
func (m *Manager) Record(snap Snapshot) {
	if m.Limit <= 0 {
		m.Limit = DefaultLimit
	}
	if len(m.undo) >= m.Limit {
		m.undo = m.undo[1:]
	}
	m.undo = append(m.undo, snap)
	m.redo = nil
}

// Undo restores the most recent snapshot, saving the current state for
// redo. It reports false when there is nothing to undo.
func (m *Manager) Undo(doc *document.Document) bool {
	n := len(m.undo)
	if n == 0 {
		return false
	}
	m.redo = append(m.redo, Capture(doc))
	snap := m.undo[n-1]
	m.undo = m.undo[:n-1]
	snap.Restore(doc)
	return true
}

// Redo re-applies the most recently undone state.
func (m *Manager) Redo(doc *document.Document) bool {
	n := len(m.redo)
	if n == 0 {
		return false
	}
	m.undo = append(m.undo, Capture(doc))
	snap := m.redo[n-1]
	m.redo = m.redo[:n-1]
	snap.Restore(doc)
	return true
}

func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// Depth returns the sizes of the undo and redo stacks.
func (m *Manager) Depth() (undo, redo int) {
	return len(m.undo), len(m.redo)
}

// Clear drops both stacks.
func (m *Manager) Clear() {
	m.undo = nil
	m.redo = nil
}
