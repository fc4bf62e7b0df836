package ui

import (
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"WorkBoard/internal/board"
	"WorkBoard/internal/render"
	"WorkBoard/internal/state"
)

var palette = []color.NRGBA{
	{A: 255},
	{R: 220, G: 38, B: 38, A: 255},
	{R: 22, G: 163, B: 74, A: 255},
	{R: 37, G: 99, B: 235, A: 255},
	{R: 234, G: 179, B: 8, A: 255},
}

type colorSwatch struct {
	widget.BaseWidget
	Color    color.NRGBA
	OnTapped func(color.NRGBA)
}

func newColorSwatch(c color.NRGBA, tapped func(color.NRGBA)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// Actions are the toolbar commands that need the window.
type Actions struct {
	Download func()
	SavePDF  func()
	Check    func()
}

// Toolbar holds the controls whose state follows the engine.
type Toolbar struct {
	engine *board.Engine

	pen, eraser  *widget.Button
	undo, redo   *widget.Button
	width        *widget.Slider
	background   *widget.Select
	showFeedback *widget.Check
	check        *widget.Button

	content fyne.CanvasObject
}

func NewToolbar(e *board.Engine, act Actions) *Toolbar {
	t := &Toolbar{engine: e}

	t.pen = widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
		e.SetTool(state.ToolPen)
		t.Sync()
	})
	t.eraser = widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), func() {
		e.SetTool(state.ToolEraser)
		t.Sync()
	})

	colorBox := container.NewHBox()
	for _, c := range palette {
		colorBox.Add(newColorSwatch(c, func(c color.NRGBA) {
			e.SetColor(c)
			e.SetTool(state.ToolPen)
			t.Sync()
		}))
	}

	t.width = widget.NewSlider(1, 20)
	t.width.Step = 1
	t.width.OnChanged = e.SetWidth
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(120, 35)), t.width)

	t.background = widget.NewSelect(
		[]string{string(render.BackgroundBlank), string(render.BackgroundLined), string(render.BackgroundGrid)},
		func(s string) {
			if err := e.SetBackground(render.Background(s)); err != nil {
				slog.Warn("[UI] background rejected", slog.String("style", s), slog.Any("err", err))
			}
		},
	)

	t.undo = widget.NewButtonWithIcon("", theme.ContentUndoIcon(), func() { e.Undo() })
	t.redo = widget.NewButtonWithIcon("", theme.ContentRedoIcon(), func() { e.Redo() })
	clearBtn := widget.NewButtonWithIcon("Clear", theme.DeleteIcon(), e.ClearAll)

	t.showFeedback = widget.NewCheck("Feedback", e.ShowFeedback)

	download := widget.NewButtonWithIcon("", theme.DownloadIcon(), act.Download)
	pdf := widget.NewButtonWithIcon("", theme.DocumentPrintIcon(), act.SavePDF)
	t.check = widget.NewButtonWithIcon("Check work", theme.ConfirmIcon(), act.Check)
	t.check.Importance = widget.HighImportance

	e.Bus().Subscribe(func(state.Op) { t.syncHistory() })

	t.content = container.NewHBox(
		t.pen, t.eraser,
		widget.NewSeparator(),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		t.background,
		widget.NewSeparator(),
		t.undo, t.redo, clearBtn,
		layout.NewSpacer(),
		t.showFeedback,
		download, pdf, t.check,
	)
	t.Sync()
	return t
}

func (t *Toolbar) Content() fyne.CanvasObject { return t.content }

// SetChecking disables the check button while a submission is in flight.
func (t *Toolbar) SetChecking(busy bool) {
	if busy {
		t.check.Disable()
	} else {
		t.check.Enable()
	}
}

// Sync copies the engine's current settings into the controls.
func (t *Toolbar) Sync() {
	if t.engine.Tool() == state.ToolEraser {
		t.eraser.Importance = widget.HighImportance
		t.pen.Importance = widget.MediumImportance
	} else {
		t.pen.Importance = widget.HighImportance
		t.eraser.Importance = widget.MediumImportance
	}
	t.pen.Refresh()
	t.eraser.Refresh()

	t.width.Value = t.engine.Width()
	t.width.Refresh()
	t.background.Selected = string(t.engine.Options().Background)
	t.background.Refresh()
	_, show := t.engine.Feedback()
	t.showFeedback.Checked = show
	t.showFeedback.Refresh()
	t.syncHistory()
}

func (t *Toolbar) syncHistory() {
	enable(t.undo, t.engine.CanUndo())
	enable(t.redo, t.engine.CanRedo())
}

func enable(b *widget.Button, on bool) {
	if on {
		b.Enable()
	} else {
		b.Disable()
	}
}
