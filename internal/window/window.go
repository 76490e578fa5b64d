// Package window hosts the particle field in a desktop window on
// Ebitengine. Draw runs once per display refresh, so it pumps the frame
// queue there.
package window

import (
	"errors"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/san-kum/neuralbg/internal/config"
	"github.com/san-kum/neuralbg/internal/frame"
	"github.com/san-kum/neuralbg/internal/render"
)

type Game struct {
	host     *frame.Host
	layer    *layer
	renderer *render.Renderer
	logger   *slog.Logger

	background color.NRGBA
	opacity    float32
	started    bool
	paused     bool
}

func New(cfg *config.Config, logger *slog.Logger) (*Game, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	l := &layer{}
	host := frame.NewHost(cfg.Window.Width, cfg.Window.Height)
	host.Attach(l)

	r, err := render.New(opts, host, render.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &Game{
		host:       host,
		layer:      l,
		renderer:   r,
		logger:     logger,
		background: cfg.Background(),
		opacity:    float32(cfg.Style.Opacity),
	}, nil
}

// Renderer is exposed so callers can attach observers before Run.
func (g *Game) Renderer() *render.Renderer { return g.renderer }

func (g *Game) Update() error {
	if !g.started {
		g.started = true
		if err := g.renderer.Start(); err != nil {
			return err
		}
	}

	if ebiten.IsWindowBeingClosed() ||
		inpututil.IsKeyJustPressed(ebiten.KeyQ) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.shutdown()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	if !g.paused {
		g.host.Pump()
	}
	if g.layer.img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(g.opacity)
	screen.DrawImage(g.layer.img, op)
}

// Layout follows the window size one to one and feeds it to the viewport.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.host.Set(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (g *Game) shutdown() {
	g.renderer.Stop()
	g.host.Detach()
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, logger *slog.Logger) error {
	g, err := New(cfg, logger)
	if err != nil {
		return err
	}
	defer g.shutdown()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(cfg.FPS)

	g.logger.Debug("opening window", "width", cfg.Window.Width, "height", cfg.Window.Height, "backend", "ebiten")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
