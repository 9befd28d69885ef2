package editor

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/blueprint/document"
	"github.com/milk9111/blueprint/grid"
	"github.com/milk9111/blueprint/mirror"
	"github.com/milk9111/blueprint/persist"
)

type countingStore struct {
	*persist.MemoryStore
	sets map[string]int
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: persist.NewMemoryStore(), sets: map[string]int{}}
}

func (c *countingStore) Set(key string, value []byte) error {
	c.sets[key]++
	return c.MemoryStore.Set(key, value)
}

type tileSink struct {
	tiles map[grid.Point]int
}

func (s *tileSink) PutTile(x, y, index int) { s.tiles[grid.Point{X: x, Y: y}] = index }
func (s *tileSink) RemoveTile(x, y int)     { delete(s.tiles, grid.Point{X: x, Y: y}) }

func newSession(t *testing.T, store persist.Store) *Session {
	t.Helper()
	opts := DefaultOptions()
	opts.Rand = rand.New(rand.NewSource(7))
	opts.ExportDir = t.TempDir()
	s := New(store, opts)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func pt(x, y int) grid.Point { return grid.Point{X: x, Y: y} }

func dispatch(t *testing.T, s *Session, cmds ...Command) {
	t.Helper()
	for _, c := range cmds {
		if err := s.Dispatch(c); err != nil {
			t.Fatalf("dispatch %T: %v", c, err)
		}
	}
}

func TestPaintWithoutMirror(t *testing.T) {
	store := newCountingStore()
	s := newSession(t, store)
	dispatch(t, s, Paint{Cell: pt(5, 5)})

	got := s.Doc.Floor.Points()
	if len(got) != 1 || got[0] != pt(5, 5) {
		t.Fatalf("floor = %v", got)
	}
	if store.sets[persist.KeyGrid] != 1 {
		t.Fatalf("grid flushed %d times", store.sets[persist.KeyGrid])
	}
}

func TestPaintMirrored(t *testing.T) {
	s := newSession(t, persist.NewMemoryStore())
	dispatch(t, s, ToggleMirrorX{}, ToggleMirrorY{}, Paint{Cell: pt(2, 3)})

	want := []grid.Point{pt(2, 3), pt(22, 3), pt(2, 27), pt(22, 27)}
	if s.Doc.Floor.Len() != len(want) {
		t.Fatalf("floor = %v", s.Doc.Floor.Points())
	}
	for _, p := range want {
		if !s.Doc.Floor.Has(p.X, p.Y) {
			t.Fatalf("missing %v", p)
		}
	}
}

func TestSinkFollowsEdits(t *testing.T) {
	s := newSession(t, persist.NewMemoryStore())
	sink := &tileSink{tiles: map[grid.Point]int{}}
	s.SetFloorSink(sink)

	dispatch(t, s, Paint{Cell: pt(3, 3)})
	if len(sink.tiles) != 1 {
		t.Fatalf("tiles = %v", sink.tiles)
	}
	dispatch(t, s, Undo{})
	if len(sink.tiles) != 0 {
		t.Fatalf("undo left tiles %v", sink.tiles)
	}
}

func TestUndoRestoresErasedPoint(t *testing.T) {
	s := newSession(t, persist.NewMemoryStore())
	s.Doc.Floor.Replace([]grid.Point{pt(1, 1), pt(2, 2)})

	dispatch(t, s, Erase{Cell: pt(1, 1)})
	if s.Doc.Floor.Has(1, 1) {
		t.Fatalf("erase failed")
	}
	dispatch(t, s, Undo{})
	if !s.Doc.Floor.Has(1, 1) || !s.Doc.Floor.Has(2, 2) || s.Doc.Floor.Len() != 2 {
		t.Fatalf("floor = %v", s.Doc.Floor.Points())
	}
	dispatch(t, s, Redo{})
	if s.Doc.Floor.Has(1, 1) {
		t.Fatalf("redo did not erase")
	}

	dispatch(t, s, Undo{}, Paint{Cell: pt(9, 9)})
	if s.History.CanRedo() {
		t.Fatalf("new edit should clear redo")
	}
	dispatch(t, s, Redo{})
	if !s.Doc.Floor.Has(1, 1) || !s.Doc.Floor.Has(9, 9) {
		t.Fatalf("redo after edit should be a no-op: %v", s.Doc.Floor.Points())
	}
}

func TestUndoPersistsRestoredState(t *testing.T) {
	store := persist.NewMemoryStore()
	s := newSession(t, store)
	dispatch(t, s, AddIcon{Texture: "crate", Name: "Crate", X: 10, Y: 20}, Undo{})

	loaded := persist.LoadDocument(store, 25, 31)
	if len(loaded.Icons) != 0 {
		t.Fatalf("stored icons = %v", loaded.Icons)
	}
}

func TestDragContinuesStroke(t *testing.T) {
	s := newSession(t, persist.NewMemoryStore())
	dispatch(t, s,
		Paint{Cell: pt(1, 1)},
		Paint{Cell: pt(2, 1), Drag: true},
		Paint{Cell: pt(3, 1), Drag: true},
	)
	if u, _ := s.History.Depth(); u != 1 {
		t.Fatalf("undo depth = %d", u)
	}
	dispatch(t, s, Undo{})
	if s.Doc.Floor.Len() != 0 {
		t.Fatalf("floor = %v", s.Doc.Floor.Points())
	}
}

func TestStrokeFromUnchangedPress(t *testing.T) {
	tests := []struct {
		name  string
		setup []Command
		press Command
		drag  Command
		cell  grid.Point
		want  bool
	}{
		{
			name:  "paint_on_painted_cell",
			setup: []Command{Paint{Cell: pt(2, 2)}},
			press: Paint{Cell: pt(2, 2)},
			drag:  Paint{Cell: pt(3, 3), Drag: true},
			cell:  pt(3, 3),
			want:  false,
		},
		{
			name:  "erase_on_empty_cell",
			setup: []Command{Paint{Cell: pt(2, 2)}, Paint{Cell: pt(3, 3)}},
			press: Erase{Cell: pt(1, 1)},
			drag:  Erase{Cell: pt(3, 3), Drag: true},
			cell:  pt(3, 3),
			want:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, persist.NewMemoryStore())
			dispatch(t, s, tt.setup...)
			before, _ := s.History.Depth()

			dispatch(t, s, tt.press)
			if u, _ := s.History.Depth(); u != before {
				t.Fatalf("unchanged press recorded: depth %d -> %d", before, u)
			}
			dispatch(t, s, tt.drag)
			if u, _ := s.History.Depth(); u != before+1 {
				t.Fatalf("stroke not recorded: depth %d -> %d", before, u)
			}
			s.EndStroke()

			dispatch(t, s, Undo{})
			if got := s.Doc.Floor.Has(tt.cell.X, tt.cell.Y); got != tt.want {
				t.Fatalf("after undo Has(%v) = %v, want %v", tt.cell, got, tt.want)
			}
			if !s.Doc.Floor.Has(2, 2) {
				t.Fatalf("undo rolled back the edit before the stroke")
			}
		})
	}
}

func TestStrokeAfterUndoClearsRedo(t *testing.T) {
	s := newSession(t, persist.NewMemoryStore())
	dispatch(t, s, Paint{Cell: pt(2, 2)}, Paint{Cell: pt(1, 1)}, Undo{})
	if _, r := s.History.Depth(); r != 1 {
		t.Fatalf("redo depth = %d", r)
	}

	dispatch(t, s, Paint{Cell: pt(2, 2)}, Paint{Cell: pt(3, 3), Drag: true})
	s.EndStroke()
	if u, r := s.History.Depth(); u != 2 || r != 0 {
		t.Fatalf("depth = %d/%d, want 2/0", u, r)
	}

	dispatch(t, s, Redo{})
	if !s.Doc.Floor.Has(3, 3) || s.Doc.Floor.Has(1, 1) {
		t.Fatalf("redo after a new stroke changed the floor: %v", s.Doc.Floor.Points())
	}
}

func TestDragWithoutPressStartsStroke(t *testing.T) {
	s := newSession(t, persist.NewMemoryStore())
	dispatch(t, s, Paint{Cell: pt(1, 1)}, ToggleHelp{})
	dispatch(t, s, Paint{Cell: pt(2, 1), Drag: true}, Paint{Cell: pt(3, 1), Drag: true})
	if u, _ := s.History.Depth(); u != 2 {
		t.Fatalf("undo depth = %d", u)
	}
	dispatch(t, s, Undo{})
	if s.Doc.Floor.Len() != 1 || !s.Doc.Floor.Has(1, 1) {
		t.Fatalf("floor = %v", s.Doc.Floor.Points())
	}
}

func TestDecorLayer(t *testing.T) {
	store := persist.NewMemoryStore()
	s := newSession(t, store)
	dispatch(t, s, SwitchLayer{}, SelectDecor{Tile: 4}, ToggleMirrorX{}, Paint{Cell: pt(1, 2)})

	if s.Doc.Floor.Len() != 0 {
		t.Fatalf("floor painted on props layer")
	}
	p, ok := s.Doc.Decor.At(23, 2)
	if !ok || p.Tile != 4 || !p.FlipX || p.FlipY {
		t.Fatalf("mirrored prop = %+v ok=%v", p, ok)
	}
	loaded := persist.LoadDocument(store, 25, 31)
	if loaded.Decor.Len() != 2 {
		t.Fatalf("stored props = %v", loaded.Decor.List())
	}

	dispatch(t, s, Erase{Cell: pt(23, 2)})
	if s.Doc.Decor.Len() != 0 || s.Doc.Props.Len() != 0 {
		t.Fatalf("decor = %v", s.Doc.Decor.List())
	}
	if err := s.Dispatch(SelectDecor{Tile: -1}); err == nil {
		t.Fatalf("expected error for negative tile")
	}
}

func TestResetClearsStoreAndUndoes(t *testing.T) {
	store := persist.NewMemoryStore()
	s := newSession(t, store)
	dispatch(t, s, Paint{Cell: pt(4, 4)}, AddText{Content: "BAY", X: 1, Y: 1}, CycleTint{Channel: Red})

	dispatch(t, s, Reset{})
	if s.Doc.Floor.Len() != 0 || len(s.Doc.Texts) != 0 || s.Doc.Tint != (document.Tint{}) {
		t.Fatalf("document not reset")
	}
	if keys := store.Keys(); len(keys) != 0 {
		t.Fatalf("store keys = %v", keys)
	}

	dispatch(t, s, Undo{})
	if !s.Doc.Floor.Has(4, 4) || len(s.Doc.Texts) != 1 {
		t.Fatalf("undo after reset failed")
	}
}

func TestRandomDungeon(t *testing.T) {
	store := newCountingStore()
	s := newSession(t, store)
	s.Doc.Floor.Set(0, 0)
	before := store.sets[persist.KeyGrid]

	dispatch(t, s, RandomDungeon{})
	if !s.Engine.Settings.X || !s.Engine.Settings.Y {
		t.Fatalf("mirror not forced on")
	}
	if store.sets[persist.KeyGrid] != before+1 {
		t.Fatalf("grid flushed %d times", store.sets[persist.KeyGrid]-before)
	}
	if s.Doc.Floor.Len() == 0 {
		t.Fatalf("no floor generated")
	}
	ax := s.Engine.Axes
	for _, p := range s.Doc.Floor.Points() {
		if !s.Doc.Floor.Has(ax.X-p.X, p.Y) || !s.Doc.Floor.Has(p.X, ax.Y-p.Y) {
			t.Fatalf("layout not symmetric at %v", p)
		}
	}
	if s.Doc.Floor.Has(0, 0) {
		t.Fatalf("old floor not cleared")
	}

	dispatch(t, s, Undo{})
	if s.Doc.Floor.Len() != 1 || !s.Doc.Floor.Has(0, 0) {
		t.Fatalf("undo = %v", s.Doc.Floor.Points())
	}
}

func TestIconAndTextCommands(t *testing.T) {
	store := persist.NewMemoryStore()
	s := newSession(t, store)
	dispatch(t, s, AddIcon{Texture: "reactor", Name: "Reactor", X: 5, Y: 6}, AddText{Content: "LAB", X: 7, Y: 8})

	iconID := s.Doc.Icons[0].ID
	textID := s.Doc.Texts[0].ID
	dispatch(t, s,
		MoveIcon{ID: iconID, X: 50, Y: 60},
		MoveText{ID: textID, X: 70, Y: 80},
		UpdateText{ID: textID, Edit: func(tx *document.Text) {
			tx.Font = document.FontDefault
			tx.Scale = document.FontScales[2]
		}},
	)
	loaded := persist.LoadDocument(store, 25, 31)
	if loaded.Icons[0].X != 50 || loaded.Texts[0].Y != 80 || loaded.Texts[0].Font != document.FontDefault {
		t.Fatalf("stored icons=%+v texts=%+v", loaded.Icons, loaded.Texts)
	}

	depth, _ := s.History.Depth()
	if err := s.Dispatch(RemoveIcon{ID: "missing"}); err == nil {
		t.Fatalf("expected error for unknown id")
	}
	if after, _ := s.History.Depth(); after != depth {
		t.Fatalf("failed command recorded history")
	}
	if s.Status == "" {
		t.Fatalf("error not surfaced in status")
	}

	dispatch(t, s, RemoveIcon{ID: iconID}, RemoveText{ID: textID})
	if len(s.Doc.Icons) != 0 || len(s.Doc.Texts) != 0 {
		t.Fatalf("remove failed")
	}
	dispatch(t, s, Undo{})
	if len(s.Doc.Texts) != 1 || s.Doc.Texts[0].ID != textID {
		t.Fatalf("undo lost text identity")
	}
}

func TestEffects(t *testing.T) {
	store := persist.NewMemoryStore()
	s := newSession(t, store)

	dispatch(t, s, CycleBrightness{})
	if s.FX.Brightness != 0 {
		t.Fatalf("brightness changed without noise")
	}
	dispatch(t, s, ToggleNoise{})
	for i := 0; i < 20; i++ {
		dispatch(t, s, CycleBrightness{})
	}
	if s.FX.Brightness != 1 {
		t.Fatalf("brightness = %v", s.FX.Brightness)
	}
	dispatch(t, s, CycleBrightness{})
	if s.FX.Brightness != 0 {
		t.Fatalf("brightness should wrap, got %v", s.FX.Brightness)
	}
	dispatch(t, s, ToggleNoise{})
	if s.FX.Noise != 0 {
		t.Fatalf("noise = %v", s.FX.Noise)
	}

	for i := 0; i < 50; i++ {
		dispatch(t, s, CycleTint{Channel: Blue})
	}
	if s.Doc.Tint.B != 0.5 {
		t.Fatalf("blue = %v", s.Doc.Tint.B)
	}
	dispatch(t, s, CycleTint{Channel: Blue}, CycleTint{Channel: Red})
	if s.Doc.Tint.B != 0 || s.Doc.Tint.R != 0.01 {
		t.Fatalf("tint = %+v", s.Doc.Tint)
	}
	loaded := persist.LoadDocument(store, 25, 31)
	if loaded.Tint != s.Doc.Tint {
		t.Fatalf("stored tint = %+v", loaded.Tint)
	}
	if s.History.CanUndo() {
		t.Fatalf("effects should not be undoable")
	}
}

func TestShareMergesIntoDocument(t *testing.T) {
	store := persist.NewMemoryStore()
	s := newSession(t, store)
	dispatch(t, s, AddIcon{Texture: "crate", Name: "Crate", X: 1, Y: 1}, Paint{Cell: pt(6, 6)})

	dispatch(t, s, Share{Link: `https://example.org/?data=%7B%22grid%22%3A%5B%5B%220%2C0%22%2Ctrue%5D%5D%7D`})
	if s.Doc.Floor.Len() != 1 || !s.Doc.Floor.Has(0, 0) {
		t.Fatalf("floor = %v", s.Doc.Floor.Points())
	}
	if len(s.Doc.Icons) != 1 {
		t.Fatalf("icons should be kept")
	}

	dispatch(t, s, Share{Link: `https://example.org/?data=%7Bbroken`})
	if !s.Doc.Floor.Has(0, 0) {
		t.Fatalf("malformed share changed the document")
	}

	dispatch(t, s, Undo{})
	if !s.Doc.Floor.Has(6, 6) {
		t.Fatalf("share should be undoable")
	}
}

func TestShareURLCarriesDocument(t *testing.T) {
	s := newSession(t, persist.NewMemoryStore())
	dispatch(t, s, Paint{Cell: pt(8, 9)})
	link, err := s.ShareURL()
	if err != nil {
		t.Fatalf("share url: %v", err)
	}

	other := newSession(t, persist.NewMemoryStore())
	dispatch(t, other, Share{Link: link})
	if !other.Doc.Equal(s.Doc) {
		t.Fatalf("shared document differs")
	}
}

func TestSaveAndImportFile(t *testing.T) {
	store := persist.NewMemoryStore()
	s := newSession(t, store)
	dispatch(t, s, Paint{Cell: pt(2, 2)}, AddText{Content: "A", X: 1, Y: 1}, SaveFile{})

	rec, ok := persist.LastSave(store)
	if !ok || filepath.Base(rec.File) != persist.ExportName {
		t.Fatalf("save record = %+v ok=%v", rec, ok)
	}

	other := newSession(t, persist.NewMemoryStore())
	dispatch(t, other, Paint{Cell: pt(20, 20)}, Import{Path: rec.File})
	if !other.Doc.Equal(s.Doc) {
		t.Fatalf("imported document differs")
	}
}

func TestImportInvalidFile(t *testing.T) {
	store := persist.NewMemoryStore()
	s := newSession(t, store)
	dispatch(t, s, Paint{Cell: pt(3, 3)})
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	err := s.Dispatch(Import{Path: path})
	var ie *persist.ImportError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v", err)
	}
	if !s.Doc.Floor.Has(3, 3) {
		t.Fatalf("document changed")
	}
	if u, _ := s.History.Depth(); u != 1 {
		t.Fatalf("failed import recorded history")
	}
}

func TestRunScriptIsOneEdit(t *testing.T) {
	store := newCountingStore()
	s := newSession(t, store)
	src := []byte(`
for x := 0; x < 5; x++ {
	editor.paint(x, 0)
}
editor.text("GATE", 10, 10)
`)
	before := store.sets[persist.KeyGrid]
	dispatch(t, s, RunScript{Source: src})
	if s.Doc.Floor.Len() != 5 || len(s.Doc.Texts) != 1 {
		t.Fatalf("floor=%v texts=%v", s.Doc.Floor.Points(), s.Doc.Texts)
	}
	if store.sets[persist.KeyGrid] != before+1 {
		t.Fatalf("grid flushed %d times", store.sets[persist.KeyGrid]-before)
	}
	dispatch(t, s, Undo{})
	if s.Doc.Floor.Len() != 0 || len(s.Doc.Texts) != 0 {
		t.Fatalf("undo did not revert macro")
	}
}

func TestRunScriptErrorKeepsPartialEditsUndoable(t *testing.T) {
	s := newSession(t, persist.NewMemoryStore())
	err := s.Dispatch(RunScript{Source: []byte(`editor.paint(1, 1)
editor.paint("x", 1)`)})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !s.Doc.Floor.Has(1, 1) {
		t.Fatalf("partial edit missing")
	}
	dispatch(t, s, Undo{})
	if s.Doc.Floor.Len() != 0 {
		t.Fatalf("partial edit not undoable")
	}
}

func TestTextEntryDisablesKeys(t *testing.T) {
	s := newSession(t, persist.NewMemoryStore())
	delay := s.Options().InputDelay

	s.OpenTextEntry()
	if s.KeysEnabled() || !s.TextEntryOpen() {
		t.Fatalf("keys should be disabled")
	}
	s.CloseTextEntry()
	for i := 0; i < delay-1; i++ {
		s.Update()
		if s.KeysEnabled() {
			t.Fatalf("keys enabled after %d ticks", i+1)
		}
	}
	s.Update()
	if !s.KeysEnabled() {
		t.Fatalf("keys not re-enabled after %d ticks", delay)
	}
}

func TestReopenCancelsPendingEnable(t *testing.T) {
	s := newSession(t, persist.NewMemoryStore())
	s.OpenTextEntry()
	s.CloseTextEntry()
	s.OpenTextEntry()
	for i := 0; i < 20; i++ {
		s.Update()
	}
	if s.KeysEnabled() {
		t.Fatalf("stale task re-enabled keys")
	}
}

func TestCloseCancelsTasksAndHalts(t *testing.T) {
	s := newSession(t, persist.NewMemoryStore())
	s.OpenTextEntry()
	s.CloseTextEntry()
	if s.Tasks.Pending() != 1 {
		t.Fatalf("pending = %d", s.Tasks.Pending())
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if s.Tasks.Pending() != 0 {
		t.Fatalf("tasks survived close")
	}
	if !s.Halted() {
		t.Fatalf("session not halted")
	}
	if err := s.Dispatch(Paint{Cell: pt(1, 1)}); !errors.Is(err, ErrHalted) {
		t.Fatalf("err = %v", err)
	}
}

func TestSessionLoadsStoredDocument(t *testing.T) {
	store := persist.NewMemoryStore()
	_ = store.Set(persist.KeyGrid, []byte(`[["4,5",true]]`))
	_ = store.Set(persist.KeyRGBValues, []byte(`{"R":0.2,"G":0,"B":0.1}`))
	s := newSession(t, store)
	if !s.Doc.Floor.Has(4, 5) || s.Doc.Tint.R != 0.2 {
		t.Fatalf("doc = %v tint=%+v", s.Doc.Floor.Points(), s.Doc.Tint)
	}
}

func TestCursorLines(t *testing.T) {
	s := newSession(t, persist.NewMemoryStore())
	dispatch(t, s, ToggleMirrorX{})
	lines := s.Cursor(pt(3, 4))
	if lines[0] != "X:3 Y:4" || lines[2] != (mirror.Settings{X: true}).String() || lines[3] != "LAYER: floor" {
		t.Fatalf("lines = %v", lines)
	}
}

func TestInboxImportsDroppedFiles(t *testing.T) {
	dir := t.TempDir()
	s := newSession(t, persist.NewMemoryStore())
	inbox, err := persist.NewInbox(dir)
	if err != nil {
		t.Fatalf("inbox: %v", err)
	}
	s.Inbox = inbox

	if err := os.WriteFile(filepath.Join(dir, "drop.json"), []byte(`{"grid":[["7,7",true]]}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		s.Update()
		if s.Doc.Floor.Has(7, 7) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("dropped file was not imported")
}

func TestInboxRunsDroppedMacros(t *testing.T) {
	dir := t.TempDir()
	s := newSession(t, persist.NewMemoryStore())
	inbox, err := persist.NewInbox(dir)
	if err != nil {
		t.Fatalf("inbox: %v", err)
	}
	s.Inbox = inbox

	if err := os.WriteFile(filepath.Join(dir, "ring.tengo"), []byte(`editor.paint(6, 6)`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		s.Update()
		if s.Doc.Floor.Has(6, 6) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("dropped macro was not run")
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macro.tengo")
	if err := os.WriteFile(path, []byte(`editor.paint(4, 5)`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s := newSession(t, persist.NewMemoryStore())
	dispatch(t, s, RunFile{Path: path})
	if !s.Doc.Floor.Has(4, 5) {
		t.Fatalf("floor = %v", s.Doc.Floor.Points())
	}
	if err := s.Dispatch(RunFile{Path: filepath.Join(t.TempDir(), "missing.tengo")}); err == nil {
		t.Fatalf("expected error for missing macro")
	}
}
