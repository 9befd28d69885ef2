// Package editor owns the live blueprint document and applies every edit
// to it through Dispatch.
package editor

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/milk9111/blueprint/autotile"
	"github.com/milk9111/blueprint/config"
	"github.com/milk9111/blueprint/document"
	"github.com/milk9111/blueprint/dungeon"
	"github.com/milk9111/blueprint/grid"
	"github.com/milk9111/blueprint/history"
	"github.com/milk9111/blueprint/mirror"
	"github.com/milk9111/blueprint/persist"
)

type Layer int

const (
	LayerFloor Layer = iota
	LayerProps
)

func (l Layer) String() string {
	switch l {
	case LayerFloor:
		return "floor"
	case LayerProps:
		return "props"
	default:
		return "unknown"
	}
}

type Options struct {
	Width, Height int
	Axes          mirror.Axes
	Table         autotile.Table
	UndoLimit     int
	Dungeon       dungeon.Params
	InputDelay    int
	ExportDir     string
	ShareBase     string
	Rand          *rand.Rand
}

func DefaultOptions() Options {
	return OptionsFromConfig(config.Default(), nil)
}

func OptionsFromConfig(cfg config.Config, table autotile.Table) Options {
	ax, ay := cfg.Axes()
	return Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Axes:       mirror.Axes{X: ax, Y: ay},
		Table:      table,
		UndoLimit:  cfg.UndoLimit,
		Dungeon:    cfg.Dungeon,
		InputDelay: cfg.InputDelay,
		ExportDir:  cfg.ExportDir,
		ShareBase:  cfg.ShareBase,
	}
}

// FX is the cosmetic post-processing state.
type FX struct {
	Brightness float64
	Noise      float64
}

type Session struct {
	Doc     *document.Document
	History *history.Manager
	Engine  *mirror.Engine
	Store   persist.Store
	Flusher *persist.Flusher
	Tasks   *Tasks
	// Inbox, when set, is drained every Update: saves are imported and
	// macros run.
	Inbox *persist.Watcher

	FX        FX
	Layer     Layer
	DecorTile int
	Help      bool
	Status    string

	opts        Options
	rng         *rand.Rand
	suspended   bool
	keysEnabled bool
	textEntry   bool
	enableTask  TaskID
	halted      bool
	stroke      *stroke
}

// stroke holds the snapshot taken when a paint or erase press starts. It
// is recorded once, on the first cell of the stroke that changes the
// document.
type stroke struct {
	before   history.Snapshot
	recorded bool
}

// strokeCommand is a command that may continue the current stroke.
type strokeCommand interface {
	dragging() bool
}

// New loads the document from store and wires its change hooks to the
// store.
func New(store persist.Store, opts Options) *Session {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = document.DefaultWidth, document.DefaultHeight
	}
	if opts.Axes == (mirror.Axes{}) {
		opts.Axes = mirror.AxesFor(opts.Width, opts.Height)
	}
	if opts.Dungeon == (dungeon.Params{}) {
		opts.Dungeon = dungeon.DefaultParams()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	doc := persist.LoadDocument(store, opts.Width, opts.Height)
	s := &Session{
		Doc:         doc,
		History:     history.NewManager(opts.UndoLimit),
		Engine:      mirror.NewEngine(doc),
		Store:       store,
		Flusher:     &persist.Flusher{Store: store, Doc: doc},
		Tasks:       NewTasks(),
		opts:        opts,
		rng:         rng,
		keysEnabled: true,
	}
	s.Engine.Axes = opts.Axes
	s.Engine.Resolver = &autotile.Resolver{Table: opts.Table}
	s.Engine.OnDecorChange = func([]document.Prop) {
		s.flush(s.Flusher.FlushProps)
	}
	doc.Floor.OnChange = func(*grid.Grid) {
		s.flush(s.Flusher.FlushGrid)
	}
	return s
}

func (s *Session) Options() Options { return s.opts }

func (s *Session) bounds() persist.Bounds {
	return persist.Bounds{Width: s.Doc.Floor.Width, Height: s.Doc.Floor.Height}
}

// SetFloorSink attaches the floor tile layer and draws the whole grid into it.
func (s *Session) SetFloorSink(sink autotile.Sink) {
	s.Engine.Floor = sink
	s.redrawFloor()
}

func (s *Session) flush(fn func() error) {
	if s.suspended {
		return
	}
	if err := fn(); err != nil {
		log.Printf("persist: %v", err)
	}
}

// withoutFlush runs fn with the grid and décor hooks muted.
func (s *Session) withoutFlush(fn func()) {
	prev := s.suspended
	s.suspended = true
	defer func() { s.suspended = prev }()
	fn()
}

func (s *Session) redrawFloor() {
	if s.Engine.Floor == nil {
		return
	}
	s.Engine.Resolver.RefreshAll(s.Doc.Floor, s.Engine.Floor)
}

// rebuild redraws every layer and persists the whole document, after undo,
// redo or a reload.
func (s *Session) rebuild() {
	s.redrawFloor()
	s.flush(s.Flusher.FlushAll)
}

// Dispatch applies cmd. Edits snapshot the document first; the snapshot
// is committed to history only if the document changed, even when the
// command failed part way.
func (s *Session) Dispatch(cmd Command) error {
	if s.halted {
		return ErrHalted
	}
	if sc, ok := cmd.(strokeCommand); ok {
		return s.dispatchStroke(cmd, sc.dragging())
	}
	s.stroke = nil
	var snap history.Snapshot
	if cmd.records() {
		snap = history.Capture(s.Doc)
	}
	err := cmd.apply(s)
	if err != nil {
		s.Status = err.Error()
	}
	if cmd.records() && !snap.Matches(s.Doc) {
		s.History.Record(snap)
	}
	return err
}

func (s *Session) dispatchStroke(cmd Command, drag bool) error {
	if !drag || s.stroke == nil {
		s.stroke = &stroke{before: history.Capture(s.Doc)}
	}
	err := cmd.apply(s)
	if err != nil {
		s.Status = err.Error()
	}
	if !s.stroke.recorded && !s.stroke.before.Matches(s.Doc) {
		s.History.Record(s.stroke.before)
		s.stroke.recorded = true
	}
	return err
}

// EndStroke closes the current paint or erase stroke. A later drag cell
// starts a new undo step.
func (s *Session) EndStroke() { s.stroke = nil }

// Update runs one frame of session housekeeping.
func (s *Session) Update() {
	if s.halted {
		return
	}
	s.Tasks.Update()
	if s.Inbox == nil {
		return
	}
	for {
		path, ok := s.Inbox.Poll()
		if !ok {
			return
		}
		if err := s.Dispatch(inboxCommand(path)); err != nil {
			log.Printf("inbox: %v", err)
		}
	}
}

// inboxCommand imports dropped saves and runs dropped macros.
func inboxCommand(path string) Command {
	if persist.IsScriptFile(path) {
		return RunFile{Path: path}
	}
	return Import{Path: path}
}

// KeysEnabled reports whether keyboard shortcuts should be handled.
func (s *Session) KeysEnabled() bool {
	return s.keysEnabled && !s.textEntry && !s.halted
}

func (s *Session) TextEntryOpen() bool { return s.textEntry }

// OpenTextEntry disables shortcuts while text is typed.
func (s *Session) OpenTextEntry() {
	if s.enableTask != 0 {
		s.Tasks.Cancel(s.enableTask)
		s.enableTask = 0
	}
	s.textEntry = true
	s.keysEnabled = false
}

// CloseTextEntry re-enables shortcuts after the configured delay so the
// closing key press is not handled twice.
func (s *Session) CloseTextEntry() {
	if !s.textEntry {
		return
	}
	s.textEntry = false
	s.enableTask = s.Tasks.After(s.opts.InputDelay, func() {
		s.keysEnabled = true
		s.enableTask = 0
	})
}

// Halt stops all further updates and dispatches.
func (s *Session) Halt() { s.halted = true }

func (s *Session) Halted() bool { return s.halted }

// Close cancels pending tasks and releases the inbox. The store is owned
// by the caller.
func (s *Session) Close() error {
	s.halted = true
	s.Tasks.Close()
	if s.Inbox != nil {
		return s.Inbox.Close()
	}
	return nil
}

// ShareURL returns a link that carries the current document.
func (s *Session) ShareURL() (string, error) {
	return persist.ShareURL(s.opts.ShareBase, persist.PayloadOf(s.Doc))
}

// Cursor describes the HUD status lines for a hovered cell.
func (s *Session) Cursor(p grid.Point) []string {
	tool := "brush"
	if s.Layer == LayerProps {
		tool = fmt.Sprintf("prop #%d", s.DecorTile)
	}
	return []string{
		fmt.Sprintf("X:%d Y:%d", p.X, p.Y),
		fmt.Sprintf("TOOL: %s", tool),
		s.Engine.Settings.String(),
		fmt.Sprintf("LAYER: %s", s.Layer),
	}
}
