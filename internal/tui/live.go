package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/san-kum/neuralbg/internal/frame"
	"github.com/san-kum/neuralbg/internal/render"
	"github.com/san-kum/neuralbg/internal/viz"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer prints the braille canvas to a plain stream, for terminals
// where the full screen UI is not wanted. It observes frames and redraws
// at most frameRate times per second.
type LiveRenderer struct {
	canvas    *viz.Canvas
	out       io.Writer
	frameRate int
	lastFrame time.Time
	now       func() time.Time
	printed   int
}

func NewLiveRenderer(canvas *viz.Canvas, out io.Writer, frameRate int) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = frame.DefaultFPS
	}
	return &LiveRenderer{canvas: canvas, out: out, frameRate: frameRate, now: time.Now}
}

func (r *LiveRenderer) OnFrame(f render.FrameStats) {
	now := r.now()
	if !r.lastFrame.IsZero() && now.Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = now
	r.render(f)
}

func (r *LiveRenderer) render(f render.FrameStats) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  neuralbg  frame=%d\n", f.Tick))
	b.WriteString("  " + strings.Repeat("-", r.canvas.Width) + "\n")

	for _, row := range r.canvas.Grid {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", r.canvas.Width) + "\n")
	b.WriteString(fmt.Sprintf("  particles=%d links=%d reflections=%d\n", f.Particles, f.Links, f.Reflections))

	fmt.Fprint(r.out, b.String())
	r.printed++
}

// Printed counts the frames written so far.
func (r *LiveRenderer) Printed() int { return r.printed }

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }

type Options struct {
	Render render.Options
	FPS    int
	// Columns and Rows size the canvas in terminal cells.
	Columns, Rows int
	Logger        *slog.Logger
}

// Run animates the field on out until ctx is cancelled. The frame queue
// is pumped by a frame.Ticker.
func Run(ctx context.Context, out io.Writer, opts Options) error {
	cols, rows := opts.Columns, opts.Rows
	if cols <= 0 {
		cols = width
	}
	if rows <= 0 {
		rows = height
	}

	canvas := viz.NewCanvas(cols, rows)
	host := frame.NewHost(canvas.Size())
	host.Attach(canvas)

	r, err := render.New(opts.Render, host, render.WithLogger(opts.Logger))
	if err != nil {
		return err
	}
	printer := NewLiveRenderer(canvas, out, opts.FPS)
	r.AddObserver(printer)

	printer.Start()
	defer printer.Stop()
	defer r.Stop()

	if err := r.Start(); err != nil {
		return err
	}
	ticker := frame.NewTicker(host.Queue, opts.FPS)
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("terminal loop started", "interval", ticker.Interval(), "columns", cols, "rows", rows)
	err = ticker.Run(ctx)
	if ctx.Err() != nil {
		return nil
	}
	return err
}
