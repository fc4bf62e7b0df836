package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"WorkBoard/internal/board"
	"WorkBoard/internal/export"
	"WorkBoard/internal/feedback"
)

// Verdict is a grading result to show on the board.
type Verdict struct {
	Correct bool
	Summary string
	Items   []feedback.Item
}

// App is the window hosting one board.
type App struct {
	fyne    fyne.App
	win     fyne.Window
	engine  *board.Engine
	board   *BoardWidget
	toolbar *Toolbar
	status  *widget.Label
	column  *fyne.Container
}

func NewApp(e *board.Engine, height float64) *App {
	a := &App{
		fyne:   app.New(),
		engine: e,
		status: widget.NewLabel("Ready"),
	}
	a.win = a.fyne.NewWindow("Work Board")
	a.win.Resize(fyne.NewSize(1024, 768))

	a.board = NewBoardWidget(e, height)
	a.toolbar = NewToolbar(e, Actions{
		Download: a.download,
		SavePDF:  a.savePDF,
		Check:    a.check,
	})

	a.column = container.NewVBox(a.board)
	a.column.Add(newResizeHandle(a.board, a.column.Refresh))

	e.OnClearFeedback(func() { a.status.SetText("Board cleared") })

	a.win.SetContent(container.NewBorder(a.toolbar.Content(), a.status, nil, nil, container.NewVScroll(a.column)))
	return a
}

// Run shows the window and blocks until it closes.
func (a *App) Run() { a.win.ShowAndRun() }

// SetStatus may be called from any goroutine.
func (a *App) SetStatus(text string) {
	fyne.Do(func() { a.status.SetText(text) })
}

// ShowVerdict applies a grading result. Safe from any goroutine.
func (a *App) ShowVerdict(v Verdict) {
	fyne.Do(func() {
		_, show := a.engine.Feedback()
		a.engine.SetFeedback(v.Items, show)
		mark := "Not quite"
		if v.Correct {
			mark = "Correct"
		}
		text := fmt.Sprintf("%s: %d note(s)", mark, len(v.Items))
		if v.Summary != "" {
			text += " · " + v.Summary
		}
		a.status.SetText(text)
	})
}

// Reconfigure applies new board options, e.g. after a config reload.
// Safe from any goroutine.
func (a *App) Reconfigure(opts board.Options) {
	fyne.Do(func() {
		if err := a.engine.Configure(opts); err != nil {
			slog.Warn("[UI] reconfigure rejected", slog.Any("err", err))
			return
		}
		if h := float32(a.engine.ResizeController().Clamp(float64(a.board.Height()))); h != a.board.Height() {
			a.board.SetHeight(h)
			a.column.Refresh()
		}
		a.toolbar.Sync()
		a.status.SetText("Settings reloaded")
	})
}

func (a *App) check() {
	a.toolbar.SetChecking(true)
	a.status.SetText("Checking your work...")

	done := a.engine.SubmitForCheck(context.Background())
	go func() {
		err := <-done
		fyne.Do(func() {
			a.toolbar.SetChecking(false)
			switch {
			case err == nil:
			case errors.Is(err, export.ErrEmptyCanvas):
				a.status.SetText("Ready")
				dialog.ShowInformation("Nothing to check", "Please draw something first.", a.win)
			default:
				a.status.SetText("Check failed")
				dialog.ShowError(err, a.win)
			}
		})
	}()
}

func (a *App) download() {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.win)
			return
		}
		if w == nil {
			return
		}
		defer w.Close()
		if err := a.engine.Download(w); err != nil {
			dialog.ShowError(err, a.win)
			return
		}
		a.status.SetText("Saved " + w.URI().Name())
	}, a.win)
	d.SetFileName("whiteboard.png")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	d.Show()
}

func (a *App) savePDF() {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.win)
			return
		}
		if w == nil {
			return
		}
		defer w.Close()
		if err := a.engine.SavePDF(w); err != nil {
			dialog.ShowError(err, a.win)
			return
		}
		a.status.SetText("Saved " + w.URI().Name())
	}, a.win)
	d.SetFileName("whiteboard.pdf")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	d.Show()
}
