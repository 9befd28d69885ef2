package editor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/milk9111/blueprint/document"
	"github.com/milk9111/blueprint/dungeon"
	"github.com/milk9111/blueprint/grid"
	"github.com/milk9111/blueprint/history"
	"github.com/milk9111/blueprint/mirror"
	"github.com/milk9111/blueprint/persist"
	"github.com/milk9111/blueprint/script"
)

var ErrHalted = errors.New("editor: session halted")

// Command is one editor action. Commands that record are snapshotted into
// history before they run.
type Command interface {
	records() bool
	apply(s *Session) error
}

// Paint paints the active layer at a cell. Drag continues the stroke
// started by the last press; the whole stroke is one undo step.
type Paint struct {
	Cell grid.Point
	Drag bool
}

func (Paint) records() bool { return true }

func (c Paint) dragging() bool { return c.Drag }

func (c Paint) apply(s *Session) error {
	if s.Layer == LayerProps {
		s.Engine.PaintDecor(c.Cell, s.DecorTile)
		return nil
	}
	s.Engine.PaintFloor(c.Cell)
	return nil
}

type Erase struct {
	Cell grid.Point
	Drag bool
}

func (Erase) records() bool { return true }

func (c Erase) dragging() bool { return c.Drag }

func (c Erase) apply(s *Session) error {
	if s.Layer == LayerProps {
		s.Engine.EraseDecor(c.Cell)
		return nil
	}
	s.Engine.EraseFloor(c.Cell)
	return nil
}

// Reset empties the document and drops every persisted field.
type Reset struct{}

func (Reset) records() bool { return true }

func (Reset) apply(s *Session) error {
	s.withoutFlush(s.Doc.Reset)
	s.redrawFloor()
	for _, key := range append(append([]string(nil), persist.DocumentKeys...), persist.KeyRGBValues) {
		if err := s.Store.Delete(key); err != nil {
			return fmt.Errorf("reset %s: %w", key, err)
		}
	}
	s.Status = "document reset"
	return nil
}

// RandomDungeon replaces the floor with a generated, fully mirrored layout.
type RandomDungeon struct{}

func (RandomDungeon) records() bool { return true }

func (RandomDungeon) apply(s *Session) error {
	s.Engine.Settings = mirror.Settings{X: true, Y: true}
	gen := dungeon.NewGenerator(s.opts.Dungeon, s.rng)
	var layout dungeon.Layout
	s.withoutFlush(func() {
		s.Doc.Floor.Clear()
		layout = gen.Generate(s.Doc.Floor.Width, s.Doc.Floor.Height, func(p grid.Point) {
			for _, t := range s.Engine.Axes.Targets(s.Engine.Settings, p) {
				if s.Doc.Floor.Contains(t.Point.X, t.Point.Y) {
					s.Doc.Floor.Set(t.Point.X, t.Point.Y)
				}
			}
		})
	})
	s.redrawFloor()
	s.flush(s.Flusher.FlushGrid)
	s.Status = fmt.Sprintf("generated %d rooms", len(layout.Rooms))
	if !s.Doc.Floor.Connected(layout.Centers()) {
		log.Printf("dungeon: %d rooms not all connected", len(layout.Rooms))
	}
	return nil
}

type AddIcon struct {
	Texture, Name string
	X, Y          float64
}

func (AddIcon) records() bool { return true }

func (c AddIcon) apply(s *Session) error {
	s.Doc.AddIcon(c.Texture, c.Name, c.X, c.Y)
	s.flush(s.Flusher.FlushIcons)
	return nil
}

type MoveIcon struct {
	ID   string
	X, Y float64
}

func (MoveIcon) records() bool { return true }

func (c MoveIcon) apply(s *Session) error {
	if !s.Doc.MoveIcon(c.ID, c.X, c.Y) {
		return fmt.Errorf("move icon: unknown id %q", c.ID)
	}
	s.flush(s.Flusher.FlushIcons)
	return nil
}

type RemoveIcon struct{ ID string }

func (RemoveIcon) records() bool { return true }

func (c RemoveIcon) apply(s *Session) error {
	if !s.Doc.RemoveIcon(c.ID) {
		return fmt.Errorf("remove icon: unknown id %q", c.ID)
	}
	s.flush(s.Flusher.FlushIcons)
	return nil
}

type AddText struct {
	Content string
	X, Y    float64
}

func (AddText) records() bool { return true }

func (c AddText) apply(s *Session) error {
	if c.Content == "" {
		return errors.New("add text: empty content")
	}
	s.Doc.AddText(c.Content, c.X, c.Y)
	s.flush(s.Flusher.FlushTexts)
	return nil
}

// UpdateText restyles or rewrites a text placement.
type UpdateText struct {
	ID   string
	Edit func(t *document.Text)
}

func (UpdateText) records() bool { return true }

func (c UpdateText) apply(s *Session) error {
	if c.Edit == nil || !s.Doc.UpdateText(c.ID, c.Edit) {
		return fmt.Errorf("update text: unknown id %q", c.ID)
	}
	s.flush(s.Flusher.FlushTexts)
	return nil
}

type MoveText struct {
	ID   string
	X, Y float64
}

func (MoveText) records() bool { return true }

func (c MoveText) apply(s *Session) error {
	if !s.Doc.MoveText(c.ID, c.X, c.Y) {
		return fmt.Errorf("move text: unknown id %q", c.ID)
	}
	s.flush(s.Flusher.FlushTexts)
	return nil
}

type RemoveText struct{ ID string }

func (RemoveText) records() bool { return true }

func (c RemoveText) apply(s *Session) error {
	if !s.Doc.RemoveText(c.ID) {
		return fmt.Errorf("remove text: unknown id %q", c.ID)
	}
	s.flush(s.Flusher.FlushTexts)
	return nil
}

type Undo struct{}

func (Undo) records() bool { return false }

func (Undo) apply(s *Session) error {
	return s.restore(s.History.Undo, "undo")
}

type Redo struct{}

func (Redo) records() bool { return false }

func (Redo) apply(s *Session) error {
	return s.restore(s.History.Redo, "redo")
}

func (s *Session) restore(step func(*document.Document) bool, name string) error {
	applied := false
	s.withoutFlush(func() { applied = step(s.Doc) })
	if !applied {
		s.Status = "nothing to " + name
		return nil
	}
	s.rebuild()
	u, r := s.History.Depth()
	s.Status = fmt.Sprintf("%s (%d/%d)", name, u, r)
	return nil
}

// Import overwrites stored fields from a save file and reloads.
type Import struct{ Path string }

func (Import) records() bool { return true }

func (c Import) apply(s *Session) error {
	if err := persist.ImportFile(s.Store, c.Path, s.bounds()); err != nil {
		return err
	}
	s.reload()
	s.Status = "loaded " + c.Path
	return nil
}

// Share merges a share link's payload into storage and reloads. A
// malformed payload is logged and leaves the document as it was.
type Share struct{ Link string }

func (Share) records() bool { return true }

func (c Share) apply(s *Session) error {
	keys, err := persist.ApplyShare(s.Store, c.Link, s.bounds())
	if err != nil {
		log.Printf("share: ignoring payload: %v", err)
		s.Status = "share link ignored"
		return nil
	}
	if len(keys) == 0 {
		return nil
	}
	s.reload()
	s.Status = fmt.Sprintf("share applied: %v", keys)
	return nil
}

// Reload rereads the document from storage.
type Reload struct{}

func (Reload) records() bool { return false }

func (Reload) apply(s *Session) error {
	s.reload()
	return nil
}

func (s *Session) reload() {
	loaded := persist.LoadDocument(s.Store, s.Doc.Floor.Width, s.Doc.Floor.Height)
	s.withoutFlush(func() {
		history.Capture(loaded).Restore(s.Doc)
		s.Doc.Tint = loaded.Tint
	})
	s.rebuild()
}

// SaveFile exports the document as JSON to the export directory.
type SaveFile struct{}

func (SaveFile) records() bool { return false }

func (SaveFile) apply(s *Session) error {
	path, err := persist.ExportFile(s.opts.ExportDir, persist.PayloadOf(s.Doc))
	if err != nil {
		return err
	}
	if err := s.Flusher.RecordSave(path, time.Now()); err != nil {
		log.Printf("persist: %v", err)
	}
	s.Status = "saved " + path
	return nil
}

// RunScript runs a tengo macro as a single undoable edit.
type RunScript struct {
	Source  []byte
	Timeout time.Duration
}

func (RunScript) records() bool { return true }

func (c RunScript) apply(s *Session) error {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	var res script.Result
	var err error
	s.withoutFlush(func() {
		res, err = script.Run(ctx, c.Source, scriptTarget{s})
	})
	s.flush(s.Flusher.FlushAll)
	if err != nil {
		return err
	}
	s.Status = fmt.Sprintf("macro: %d edits", res.Edits())
	return nil
}

// RunFile loads a macro from disk and runs it like RunScript.
type RunFile struct{ Path string }

func (RunFile) records() bool { return true }

func (c RunFile) apply(s *Session) error {
	src, err := script.Load(c.Path)
	if err != nil {
		return err
	}
	return RunScript{Source: src}.apply(s)
}

type ToggleMirrorX struct{}

func (ToggleMirrorX) records() bool { return false }

func (ToggleMirrorX) apply(s *Session) error {
	s.Engine.Settings.X = !s.Engine.Settings.X
	s.Status = s.Engine.Settings.String()
	return nil
}

type ToggleMirrorY struct{}

func (ToggleMirrorY) records() bool { return false }

func (ToggleMirrorY) apply(s *Session) error {
	s.Engine.Settings.Y = !s.Engine.Settings.Y
	s.Status = s.Engine.Settings.String()
	return nil
}

type SwitchLayer struct{}

func (SwitchLayer) records() bool { return false }

func (SwitchLayer) apply(s *Session) error {
	if s.Layer == LayerFloor {
		s.Layer = LayerProps
	} else {
		s.Layer = LayerFloor
	}
	s.Status = fmt.Sprintf("Switched to %s layer", s.Layer)
	log.Println(s.Status)
	return nil
}

type SelectDecor struct{ Tile int }

func (SelectDecor) records() bool { return false }

func (c SelectDecor) apply(s *Session) error {
	if c.Tile < 0 {
		return fmt.Errorf("select decor: invalid tile %d", c.Tile)
	}
	s.DecorTile = c.Tile
	return nil
}

type ToggleHelp struct{}

func (ToggleHelp) records() bool { return false }

func (ToggleHelp) apply(s *Session) error {
	s.Help = !s.Help
	return nil
}
