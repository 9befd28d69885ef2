package main

import (
	"image"
	"math"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/blueprint/assets"
	"github.com/milk9111/blueprint/document"
	"github.com/milk9111/blueprint/editor"
	"github.com/milk9111/blueprint/persist"
)

var textAlphas = []float64{1, 0.75, 0.5, 0.25}

func escapePressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

func ctrlPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl)
}

func (g *Game) handleKeys() {
	if ctrlPressed() {
		if inpututil.IsKeyJustPressed(ebiten.KeyS) {
			g.dispatch(editor.SaveFile{})
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyO) {
			g.openEntry(entryPath, filepath.Join(g.cfg.ExportDir, persist.ExportName))
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyV) {
			g.pasteLink()
		}
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.dispatch(editor.ToggleHelp{})
	}
	if escapePressed() {
		g.selected = ""
		g.dispatch(editor.Reset{})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.dispatch(editor.CycleBrightness{})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.dispatch(editor.ToggleNoise{})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		g.dispatch(editor.ToggleMirrorX{})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyY) {
		g.dispatch(editor.ToggleMirrorY{})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.dispatch(editor.SwitchLayer{})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.dispatch(editor.CycleTint{Channel: editor.Red})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.dispatch(editor.CycleTint{Channel: editor.Blue})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		g.pending = exportPNG
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.pending = exportPDF
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.shareLink()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.dispatch(editor.RandomDungeon{})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.runMacro()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		g.dispatch(editor.Undo{})
		g.sound.play(assets.SoundUndo)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.dispatch(editor.Redo{})
		g.sound.play(assets.SoundUndo)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.openEntry(entryText, "")
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		tile := g.session.DecorTile
		if wy > 0 {
			tile++
		} else {
			tile--
		}
		tile = (tile + assets.PropCount) % assets.PropCount
		g.dispatch(editor.SelectDecor{Tile: tile})
	}

	g.handleSelectedText()
}

// handleSelectedText restyles the last clicked text placement.
func (g *Game) handleSelectedText() {
	if g.selected == "" {
		return
	}
	if g.session.Doc.TextIndex(g.selected) < 0 {
		g.selected = ""
		return
	}
	var edit func(t *document.Text)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		edit = func(t *document.Text) {
			if t.Font == document.FontNeuro {
				t.Font = document.FontDefault
			} else {
				t.Font = document.FontNeuro
			}
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		edit = func(t *document.Text) { t.Scale = nextValue(document.FontScales, t.Scale) }
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		edit = func(t *document.Text) { t.Alpha = nextValue(textAlphas, t.Alpha) }
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete):
		g.dispatch(editor.RemoveText{ID: g.selected})
		g.selected = ""
		return
	default:
		return
	}
	g.dispatch(editor.UpdateText{ID: g.selected, Edit: edit})
}

// nextValue returns the entry after the closest match to v, wrapping.
func nextValue(values []float64, v float64) float64 {
	best := 0
	for i, c := range values {
		if math.Abs(c-v) < math.Abs(values[best]-v) {
			best = i
		}
	}
	return values[(best+1)%len(values)]
}

func (g *Game) paletteAt(p image.Point) (string, bool) {
	for i, name := range g.palette {
		if p.In(g.paletteRect(i)) {
			return name, true
		}
	}
	return "", false
}

func (g *Game) handlePointer() {
	mx, my := ebiten.CursorPosition()
	px, py := float64(mx), float64(my)
	g.hover, g.hoverOK = g.board.Viewport.Cell(mx, my)
	doc := g.session.Doc

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		if name, ok := g.paletteAt(image.Pt(mx, my)); ok {
			g.drag = drag{kind: dragIcon, texture: name, x: px, y: py}
			return
		}
		if id, ok := g.board.HitIcon(doc, px, py); ok {
			ic := doc.Icons[doc.IconIndex(id)]
			g.drag = drag{kind: dragIcon, id: id, texture: ic.Texture, dx: ic.X - px, dy: ic.Y - py, x: px, y: py}
			return
		}
		if id, ok := g.board.HitText(doc, px, py); ok {
			t := doc.Texts[doc.TextIndex(id)]
			g.selected = id
			g.drag = drag{kind: dragText, id: id, dx: t.X - px, dy: t.Y - py, x: px, y: py}
			return
		}
		g.selected = ""
		if g.hoverOK {
			g.stroke = true
			g.lastCell = g.hover
			g.dispatch(editor.Paint{Cell: g.hover})
			g.sound.play(assets.SoundPaint)
		}
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		if id, ok := g.board.HitIcon(doc, px, py); ok {
			g.dispatch(editor.RemoveIcon{ID: id})
			return
		}
		if id, ok := g.board.HitText(doc, px, py); ok {
			g.dispatch(editor.RemoveText{ID: id})
			return
		}
		if g.hoverOK {
			g.stroke = true
			g.lastCell = g.hover
			g.dispatch(editor.Erase{Cell: g.hover})
			g.sound.play(assets.SoundErase)
		}
	}

	if g.drag.kind != dragNone {
		g.drag.x, g.drag.y = px, py
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
			g.dropDrag()
		}
		return
	}

	if !g.stroke {
		return
	}
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if !left && !right {
		g.stroke = false
		g.session.EndStroke()
		return
	}
	if !g.hoverOK || g.hover == g.lastCell {
		return
	}
	g.lastCell = g.hover
	if left {
		g.dispatch(editor.Paint{Cell: g.hover, Drag: true})
	} else {
		g.dispatch(editor.Erase{Cell: g.hover, Drag: true})
	}
}

func (g *Game) dropDrag() {
	d := g.drag
	g.drag = drag{}
	x, y := d.x+d.dx, d.y+d.dy
	if _, ok := g.board.Viewport.Cell(int(d.x), int(d.y)); !ok {
		return
	}
	switch {
	case d.kind == dragIcon && d.id == "":
		g.dispatch(editor.AddIcon{Texture: d.texture, Name: d.texture, X: x, Y: y})
	case d.kind == dragIcon:
		g.dispatch(editor.MoveIcon{ID: d.id, X: x, Y: y})
	case d.kind == dragText:
		g.dispatch(editor.MoveText{ID: d.id, X: x, Y: y})
	}
}
