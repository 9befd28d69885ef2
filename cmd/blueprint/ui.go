package main

import (
	"bytes"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// solidNineSlice returns a solid color *image.NineSlice for widget backgrounds.
func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func newBlueprintTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(color.RGBA{12, 20, 34, 255}),
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:    solidNineSlice(color.RGBA{40, 90, 110, 255}),
				Hover:   solidNineSlice(color.RGBA{60, 120, 140, 255}),
				Pressed: solidNineSlice(color.RGBA{30, 70, 90, 255}),
			},
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle: color.White,
			},
		},
	}
}

type entryMode int

const (
	entryText entryMode = iota
	entryPath
)

// textEntry is the modal input used for new labels and file paths. Submit
// fires on Enter or OK; Escape and Cancel close it without submitting.
type textEntry struct {
	overlay *widget.Container
	labels  map[entryMode]*widget.Label
	input   *widget.TextInput
	mode    entryMode
	open    bool

	onSubmit func(mode entryMode, value string)
	onClose  func()
}

func newTextEntry(theme *widget.Theme, fontFace *text.Face, onSubmit func(entryMode, string), onClose func()) *textEntry {
	e := &textEntry{onSubmit: onSubmit, onClose: onClose, labels: map[entryMode]*widget.Label{}}

	e.overlay = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
				StretchHorizontal:  true,
				StretchVertical:    true,
			}),
			widget.WidgetOpts.MinSize(1, 1),
		),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{0, 0, 0, 160})),
	)
	e.overlay.GetWidget().Visibility = widget.Visibility_Hide

	dialog := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(420, 140)),
		widget.ContainerOpts.BackgroundImage(theme.PanelTheme.BackgroundImage),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 16, Right: 16}),
		)),
	)
	dialog.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
	}

	for mode, caption := range map[entryMode]string{entryText: "New label", entryPath: "Load save file"} {
		label := widget.NewLabel(
			widget.LabelOpts.Text(caption, fontFace, &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}),
		)
		label.GetWidget().Visibility = widget.Visibility_Hide_Blocking
		e.labels[mode] = label
		dialog.AddChild(label)
	}

	e.input = widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(380, 28)),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     solidNineSlice(color.RGBA{245, 245, 245, 255}),
			Disabled: solidNineSlice(color.RGBA{200, 200, 200, 255}),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:     color.Black,
			Disabled: color.Gray{Y: 120},
			Caret:    color.Black,
		}),
		widget.TextInputOpts.Face(fontFace),
		widget.TextInputOpts.SubmitOnEnter(true),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			e.submit(args.InputText)
		}),
	)
	dialog.AddChild(e.input)

	buttons := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
		)),
	)
	buttons.AddChild(widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("OK", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			e.submit(e.input.GetText())
		}),
	))
	buttons.AddChild(widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Cancel", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			e.Close()
		}),
	))
	dialog.AddChild(buttons)
	e.overlay.AddChild(dialog)
	return e
}

func (e *textEntry) IsOpen() bool { return e.open }

func (e *textEntry) Open(mode entryMode, initial string) {
	e.mode = mode
	for m, label := range e.labels {
		if m == mode {
			label.GetWidget().Visibility = widget.Visibility_Show
		} else {
			label.GetWidget().Visibility = widget.Visibility_Hide_Blocking
		}
	}
	e.input.SetText(initial)
	e.input.Focus(true)
	e.overlay.GetWidget().Visibility = widget.Visibility_Show
	e.open = true
}

func (e *textEntry) Close() {
	if !e.open {
		return
	}
	e.open = false
	e.input.Focus(false)
	e.overlay.GetWidget().Visibility = widget.Visibility_Hide
	if e.onClose != nil {
		e.onClose()
	}
}

func (e *textEntry) submit(value string) {
	if !e.open {
		return
	}
	mode := e.mode
	e.Close()
	if value != "" && e.onSubmit != nil {
		e.onSubmit(mode, value)
	}
}

// newUI builds the ebitenui root holding the text entry overlay.
func newUI(onSubmit func(entryMode, string), onClose func()) (*ebitenui.UI, *textEntry, error) {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, nil, err
	}
	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	theme := newBlueprintTheme(&fontFace)
	entry := newTextEntry(theme, &fontFace, onSubmit, onClose)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(entry.overlay)
	ui := &ebitenui.UI{Container: root, PrimaryTheme: theme}
	return ui, entry, nil
}
