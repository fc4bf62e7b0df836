// Package board is the whiteboard engine. An Engine exclusively owns the
// stroke model, the history stacks, the render surface and the feedback
// overlay, and exposes them as commands to the UI layer.
package board

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"

	"WorkBoard/internal/export"
	"WorkBoard/internal/feedback"
	"WorkBoard/internal/render"
	"WorkBoard/internal/state"
)

var (
	// ErrContextUnavailable means the board has no surface yet. Drawing
	// commands no-op silently; only explicit raster requests report it.
	ErrContextUnavailable = errors.New("board surface not available")

	// ErrSubmission wraps a rejection from the grading collaborator.
	ErrSubmission = errors.New("submission failed")
)

// Submitter hands an exported image to the grading collaborator. It runs on
// its own goroutine and must not touch the Engine.
type Submitter func(ctx context.Context, img export.Image) error

// Engine is confined to the UI goroutine.
type Engine struct {
	opts    Options
	board   *state.Board
	bus     *state.Bus
	surface *render.Surface
	resize  ResizeController

	items        []feedback.Item
	showFeedback bool
	inspecting   bool
	hovered      int

	submit          Submitter
	onChange        func()
	onHover         func(hit feedback.Hit, ok bool)
	onClearFeedback func()

	log *slog.Logger
}

// New creates an engine with opts. bus may be nil, in which case the engine
// creates its own.
func New(opts Options, bus *state.Bus) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("board options: %w", err)
	}
	if bus == nil {
		bus = state.NewBus()
	}
	e := &Engine{
		board:   state.NewBoard(bus),
		bus:     bus,
		hovered: -1,
		log:     slog.Default().With(slog.String("component", "board")),
	}
	e.apply(opts)
	return e, nil
}

// Configure replaces the board options and redraws. Strokes are untouched.
func (e *Engine) Configure(opts Options) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("board options: %w", err)
	}
	e.apply(opts)
	e.redraw()
	return nil
}

func (e *Engine) apply(opts Options) {
	if opts.Background == "" {
		opts.Background = render.BackgroundBlank
	}
	e.opts = opts
	e.resize.Min, e.resize.Max = opts.MinHeight, opts.MaxHeight
	e.board.SetColor(opts.Color)
	e.board.SetWidth(opts.Width)
	e.showFeedback = opts.ShowFeedback
}

func (e *Engine) Options() Options        { return e.opts }
func (e *Engine) Bus() *state.Bus         { return e.bus }
func (e *Engine) Strokes() []state.Stroke { return e.board.Strokes() }
func (e *Engine) Mode() state.Mode        { return e.board.Mode() }
func (e *Engine) Tool() state.Tool        { return e.board.Tool() }
func (e *Engine) CanUndo() bool           { return e.board.CanUndo() }
func (e *Engine) CanRedo() bool           { return e.board.CanRedo() }

func (e *Engine) SetSubmitter(fn Submitter)                  { e.submit = fn }
func (e *Engine) OnChange(fn func())                         { e.onChange = fn }
func (e *Engine) OnHover(fn func(hit feedback.Hit, ok bool)) { e.onHover = fn }
func (e *Engine) OnClearFeedback(fn func())                  { e.onClearFeedback = fn }

// SetTool switches between pen and eraser. A gesture in progress keeps the
// tool it started with.
func (e *Engine) SetTool(t state.Tool) {
	e.board.SetTool(t)
	e.notify()
}

func (e *Engine) SetColor(c color.NRGBA) { e.board.SetColor(c) }
func (e *Engine) SetWidth(w float64)     { e.board.SetWidth(w) }
func (e *Engine) Color() color.NRGBA     { return e.board.Color() }
func (e *Engine) Width() float64         { return e.board.Width() }

// SetBackground changes the guide pattern and redraws.
func (e *Engine) SetBackground(bg render.Background) error {
	if _, err := render.ParseBackground(string(bg)); err != nil {
		return err
	}
	e.opts.Background = bg
	e.redraw()
	return nil
}

// Resize sets the board's CSS size and device pixel ratio, allocating the
// surface on first use, then redraws. Stroke coordinates are not touched.
func (e *Engine) Resize(width, height, dpr float64) error {
	if e.surface == nil {
		s, err := render.NewSurface(width, height, dpr)
		if err != nil {
			return fmt.Errorf("create surface: %w", err)
		}
		e.surface = s
	} else if err := e.surface.Resize(width, height, dpr); err != nil {
		return err
	}
	e.log.Debug("[RESIZE] surface", slog.Float64("width", width), slog.Float64("height", height), slog.Float64("dpr", dpr))
	e.redraw()
	return nil
}

// Size returns the board's CSS size and DPR, or ok=false without a surface.
func (e *Engine) Size() (width, height, dpr float64, ok bool) {
	if e.surface == nil {
		return 0, 0, 0, false
	}
	width, height, dpr = e.surface.Size()
	return width, height, dpr, true
}

// ResizeController exposes the drag-to-resize state for the handle widget.
func (e *Engine) ResizeController() *ResizeController { return &e.resize }

// DragResize applies a handle drag at pointerY and returns the new height.
func (e *Engine) DragResize(pointerY float64) (float64, bool) {
	h, ok := e.resize.Drag(pointerY)
	if !ok || e.surface == nil {
		return h, ok
	}
	w, _, dpr := e.surface.Size()
	if err := e.Resize(w, h, dpr); err != nil {
		e.log.Warn("[RESIZE] failed", slog.Any("err", err))
		return h, false
	}
	return h, true
}

// PointerDown starts drawing or erasing, unless p is on a visible feedback
// item, in which case the gesture only inspects it.
func (e *Engine) PointerDown(p state.Point) {
	if e.surface == nil {
		return
	}
	if e.board.Mode() == state.ModeIdle {
		if hit, ok := e.hitFeedback(p); ok {
			e.inspecting = true
			e.setHover(hit, true)
			return
		}
	}
	e.setHover(feedback.Hit{}, false)
	e.update(e.board.PenDown(p))
}

// PointerMove extends the gesture, or hovers when idle.
func (e *Engine) PointerMove(p state.Point) {
	if e.surface == nil {
		return
	}
	if e.inspecting || e.board.Mode() == state.ModeIdle {
		e.Hover(p)
		return
	}
	e.update(e.board.PenMove(p))
}

func (e *Engine) PointerUp() {
	if e.surface == nil {
		return
	}
	if e.inspecting {
		e.inspecting = false
		return
	}
	e.update(e.board.PenUp())
}

func (e *Engine) PointerCancel() {
	e.inspecting = false
	e.update(e.board.Cancel())
}

// Hover updates the hovered feedback item for p and returns it.
func (e *Engine) Hover(p state.Point) (feedback.Hit, bool) {
	hit, ok := e.hitFeedback(p)
	e.setHover(hit, ok)
	return hit, ok
}

func (e *Engine) hitFeedback(p state.Point) (feedback.Hit, bool) {
	if !e.showFeedback || len(e.items) == 0 || e.surface == nil {
		return feedback.Hit{}, false
	}
	_, _, dpr := e.surface.Size()
	return feedback.HitTest(e.items, p, feedback.NewTransform(dpr))
}

func (e *Engine) setHover(hit feedback.Hit, ok bool) {
	idx := -1
	if ok {
		idx = hit.Index
	}
	if idx == e.hovered {
		return
	}
	e.hovered = idx
	if e.onHover != nil {
		e.onHover(hit, ok)
	}
}

func (e *Engine) Undo() bool {
	if !e.board.Undo() {
		return false
	}
	e.redraw()
	return true
}

func (e *Engine) Redo() bool {
	if !e.board.Redo() {
		return false
	}
	e.redraw()
	return true
}

// ClearAll empties the board as one undoable step and drops the feedback,
// telling the host through OnClearFeedback.
func (e *Engine) ClearAll() {
	e.board.ClearAll()
	e.items = nil
	e.setHover(feedback.Hit{}, false)
	if e.onClearFeedback != nil {
		e.onClearFeedback()
	}
	e.redraw()
}

// SetFeedback replaces the overlay items wholesale.
func (e *Engine) SetFeedback(items []feedback.Item, show bool) {
	e.setHover(feedback.Hit{}, false)
	e.items = append([]feedback.Item(nil), items...)
	e.showFeedback = show
	e.redraw()
}

// ClearFeedback drops the overlay without touching strokes.
func (e *Engine) ClearFeedback() {
	e.SetFeedback(nil, e.showFeedback)
}

func (e *Engine) ShowFeedback(show bool) {
	e.showFeedback = show
	if !show {
		e.setHover(feedback.Hit{}, false)
	}
	e.redraw()
}

func (e *Engine) Feedback() ([]feedback.Item, bool) {
	return append([]feedback.Item(nil), e.items...), e.showFeedback
}

// Frame returns the current raster, or nil without a surface.
func (e *Engine) Frame() image.Image {
	if e.surface == nil {
		return nil
	}
	return e.surface.Image()
}

// Download writes the current raster as PNG.
func (e *Engine) Download(w io.Writer) error {
	if e.surface == nil {
		return ErrContextUnavailable
	}
	return export.PNG(w, e.surface.Image())
}

// SavePDF writes the strokes as a vector PDF page.
func (e *Engine) SavePDF(w io.Writer) error {
	width, height, _, ok := e.Size()
	if !ok {
		return ErrContextUnavailable
	}
	return export.PDF(w, e.board.Strokes(), width, height)
}

// Export rasterizes the strokes for the grading collaborator.
func (e *Engine) Export() (export.Image, error) {
	width, height, dpr, ok := e.Size()
	if !ok {
		return export.Image{}, ErrContextUnavailable
	}
	return export.JPEG(e.board.Strokes(), width, height, dpr)
}

// SubmitForCheck exports the board and hands the image to the submitter on
// a new goroutine. The returned channel yields exactly one value: nil, an
// export error (export.ErrEmptyCanvas included), or an error wrapping
// ErrSubmission. The engine never waits on it.
func (e *Engine) SubmitForCheck(ctx context.Context) <-chan error {
	done := make(chan error, 1)

	if e.submit == nil {
		done <- fmt.Errorf("%w: no submitter configured", ErrSubmission)
		close(done)
		return done
	}

	img, err := e.Export()
	if err != nil {
		done <- err
		close(done)
		return done
	}

	submit := e.submit
	log := e.log
	go func() {
		defer close(done)
		if err := submit(ctx, img); err != nil {
			log.Warn("[SUBMIT] check failed", slog.Any("err", err))
			done <- fmt.Errorf("%w: %w", ErrSubmission, err)
			return
		}
		log.Info("[SUBMIT] check delivered", slog.Int("bytes", len(img.Data)))
		done <- nil
	}()
	return done
}

func (e *Engine) update(c state.Change) {
	switch c {
	case state.ChangeSegment:
		if s, ok := e.board.InProgress(); ok {
			if err := render.Segment(e.surface, s); err != nil {
				e.log.Warn("[RENDER] segment failed", slog.Any("err", err))
			}
		}
		e.notify()
	case state.ChangeFull:
		e.redraw()
	}
}

func (e *Engine) redraw() {
	if e.surface == nil {
		return
	}
	scene := render.Scene{
		Background:   e.opts.Background,
		Strokes:      e.board.Strokes(),
		Feedback:     e.items,
		ShowFeedback: e.showFeedback,
	}
	if s, ok := e.board.InProgress(); ok {
		scene.Pending = &s
	}
	if err := render.Redraw(e.surface, scene); err != nil {
		e.log.Warn("[RENDER] redraw failed", slog.Any("err", err))
	}
	e.notify()
}

func (e *Engine) notify() {
	if e.onChange != nil {
		e.onChange()
	}
}
