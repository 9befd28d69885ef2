package main

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/blueprint/assets"
	"github.com/milk9111/blueprint/config"
	"github.com/milk9111/blueprint/editor"
	"github.com/milk9111/blueprint/export"
	"github.com/milk9111/blueprint/grid"
	"github.com/milk9111/blueprint/mirror"
	"github.com/milk9111/blueprint/persist"
	"github.com/milk9111/blueprint/render"
	"github.com/milk9111/blueprint/script"
)

type exportKind int

const (
	exportNone exportKind = iota
	exportPNG
	exportPDF
)

type dragKind int

const (
	dragNone dragKind = iota
	dragIcon
	dragText
)

type drag struct {
	kind    dragKind
	id      string
	texture string
	dx, dy  float64
	x, y    float64
}

// Game hosts the editing session in an ebiten window.
type Game struct {
	session *editor.Session
	cfg     config.Config

	board *render.Board
	hud   *render.HUD
	post  *render.Post
	ui    *ebitenui.UI
	entry *textEntry
	sound *sounds
	share *sharer

	width, height int

	hover     grid.Point
	hoverOK   bool
	stroke    bool
	lastCell  grid.Point
	drag      drag
	selected  string
	pending   exportKind
	entryAt   [2]float64
	palette   []string
	helpLines []string
}

func NewGame(session *editor.Session, cfg config.Config) (*Game, error) {
	vp := mirror.Viewport{
		X:        cfg.OriginX,
		Y:        cfg.OriginY,
		TileSize: cfg.TileSize,
		Cols:     cfg.Width,
		Rows:     cfg.Height,
	}
	board, err := render.NewBoard(vp)
	if err != nil {
		return nil, err
	}
	session.SetFloorSink(board.Floor)

	g := &Game{
		session:   session,
		cfg:       cfg,
		board:     board,
		hud:       render.NewHUD(),
		post:      render.NewPost(1),
		sound:     newSounds(),
		share:     newSharer(),
		width:     vp.Rect().Max.X + 32,
		height:    vp.Rect().Max.Y + 32,
		palette:   assets.IconNames(),
		helpLines: assets.HelpLines(),
	}
	g.ui, g.entry, err = newUI(g.onEntrySubmit, session.CloseTextEntry)
	if err != nil {
		return nil, fmt.Errorf("build ui: %w", err)
	}
	return g, nil
}

func (g *Game) dispatch(cmd editor.Command) {
	if err := g.session.Dispatch(cmd); err != nil {
		log.Printf("%T: %v", cmd, err)
		g.sound.play(assets.SoundError)
	}
}

func (g *Game) Update() error {
	if g.session.Halted() {
		return nil
	}
	g.session.Update()
	g.flushExport()
	g.ui.Update()

	if g.entry.IsOpen() {
		if escapePressed() {
			g.entry.Close()
		}
		return nil
	}
	if g.session.KeysEnabled() {
		g.handleKeys()
	}
	g.handlePointer()
	return nil
}

func (g *Game) onEntrySubmit(mode entryMode, value string) {
	switch mode {
	case entryText:
		g.dispatch(editor.AddText{Content: value, X: g.entryAt[0], Y: g.entryAt[1]})
	case entryPath:
		g.dispatch(editor.Import{Path: value})
	}
}

func (g *Game) openEntry(mode entryMode, initial string) {
	mx, my := ebiten.CursorPosition()
	if _, ok := g.board.Viewport.Cell(mx, my); ok {
		g.entryAt = [2]float64{float64(mx), float64(my)}
	} else {
		r := g.board.Viewport.Rect()
		c := r.Min.Add(r.Size().Div(2))
		g.entryAt = [2]float64{float64(c.X), float64(c.Y)}
	}
	g.session.OpenTextEntry()
	g.entry.Open(mode, initial)
}

func (g *Game) runMacro() {
	src := assets.DefaultMacro()
	var err error
	if g.cfg.Script != "" {
		src, err = script.Load(g.cfg.Script)
		if errors.Is(err, fs.ErrNotExist) {
			src, err = assets.DefaultMacro(), nil
		}
	}
	if err != nil {
		log.Printf("macro: %v", err)
		g.session.Status = err.Error()
		return
	}
	g.dispatch(editor.RunScript{Source: src})
}

func (g *Game) shareLink() {
	link, err := g.session.ShareURL()
	if err != nil {
		log.Printf("share: %v", err)
		return
	}
	g.session.Status = g.share.publish(link)
}

func (g *Game) pasteLink() {
	link, ok := g.share.paste()
	if !ok {
		g.session.Status = "clipboard is empty"
		return
	}
	g.dispatch(editor.Share{Link: link})
}

// flushExport writes a requested snapshot from the previous frame.
func (g *Game) flushExport() {
	if g.pending == exportNone || g.post.Frame() == nil {
		return
	}
	kind := g.pending
	g.pending = exportNone

	snap := export.Snapshot(g.post.Frame(), g.board.Viewport.Rect(), export.Inset)
	var path string
	var err error
	if kind == exportPDF {
		path, err = export.WritePDF(g.cfg.ExportDir, snap)
	} else {
		path, err = export.WritePNG(g.cfg.ExportDir, snap)
	}
	if err != nil {
		log.Printf("export: %v", err)
		g.session.Status = err.Error()
		return
	}
	g.session.Status = "exported " + path
}

func (g *Game) Draw(screen *ebiten.Image) {
	frame := g.post.Target(g.width, g.height)
	doc := g.session.Doc
	eng := g.session.Engine
	g.board.Draw(frame, doc, eng.Axes, eng.Settings)
	if g.hoverOK {
		g.board.DrawCursor(frame, g.hover, eng.Axes, eng.Settings)
	}
	g.drawDrag(frame)
	g.post.Apply(screen, g.session.FX, doc.Tint)

	g.drawPanel(screen)
	g.ui.Draw(screen)
}

func (g *Game) drawPanel(screen *ebiten.Image) {
	x, y := 24.0, float64(g.cfg.OriginY)
	lines := g.session.Cursor(g.hover)
	if !g.hoverOK {
		lines[0] = "X:- Y:-"
	}
	u, r := g.session.History.Depth()
	lines = append(lines,
		fmt.Sprintf("UNDO: %d  REDO: %d", u, r),
		fmt.Sprintf("TINT: R %.2f  B %.2f", g.session.Doc.Tint.R, g.session.Doc.Tint.B),
		fmt.Sprintf("NOISE: %.1f  BRIGHTNESS: %.2f", g.session.FX.Noise, g.session.FX.Brightness),
	)
	if rec, ok := persist.LastSave(g.session.Store); ok {
		lines = append(lines, "LAST SAVE: "+filepath.Base(rec.File)+" "+rec.At.Format("15:04:05"))
	}
	lines = append(lines, "", g.session.Status)
	g.hud.Lines(screen, x, y, lines)

	g.drawPalette(screen)
	if g.session.Help {
		g.hud.Help(screen, x, float64(g.height)/2, g.helpLines)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// paletteRect is the on-screen slot of palette entry i.
func (g *Game) paletteRect(i int) image.Rectangle {
	const size, gap = render.IconSize, 8
	x := 24 + i*(size+gap)
	y := g.cfg.OriginY + 12*16
	return image.Rect(x, y, x+size, y+size)
}

func (g *Game) drawPalette(screen *ebiten.Image) {
	for i, name := range g.palette {
		r := g.paletteRect(i)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
		screen.DrawImage(g.board.IconImage(name), op)
	}
	r := g.paletteRect(0)
	g.hud.Lines(screen, float64(r.Min.X), float64(r.Max.Y+8), []string{
		fmt.Sprintf("PROP TILE: %d (wheel)", g.session.DecorTile),
	})
}

func (g *Game) drawDrag(frame *ebiten.Image) {
	if g.drag.kind != dragIcon {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(g.drag.x+g.drag.dx-render.IconSize/2, g.drag.y+g.drag.dy-render.IconSize/2)
	op.ColorScale.ScaleAlpha(0.6)
	frame.DrawImage(g.board.IconImage(g.drag.texture), op)
}
