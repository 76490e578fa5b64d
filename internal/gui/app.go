//go:build raylib

package gui

import (
	"fmt"
	"image/color"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/neuralbg/internal/config"
	"github.com/san-kum/neuralbg/internal/frame"
	"github.com/san-kum/neuralbg/internal/render"
)

var (
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

// Available reports whether the raylib backend was compiled in.
func Available() bool { return true }

// target is a render texture used as the particle layer. Raylib only
// allows reallocating it outside texture mode, so the app resizes it and
// SetSize merely records the size the renderer asked for.
type target struct {
	tex  rl.RenderTexture2D
	w, h int
}

func (t *target) Size() (int, int) { return t.w, t.h }
func (t *target) SetSize(w, h int) { t.w, t.h = w, h }
func (t *target) Clear()           { rl.ClearBackground(rl.Blank) }
func (t *target) reload(w, h int) {
	if t.tex.ID != 0 {
		rl.UnloadRenderTexture(t.tex)
	}
	t.tex = rl.LoadRenderTexture(int32(w), int32(h))
}

func (t *target) FillCircle(x, y, r float64, c color.NRGBA) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), toRL(c))
}

func (t *target) StrokeLine(x1, y1, x2, y2, width float64, c color.NRGBA) {
	rl.DrawLineEx(rl.NewVector2(float32(x1), float32(y1)), rl.NewVector2(float32(x2), float32(y2)), float32(width), toRL(c))
}

func toRL(c color.NRGBA) rl.Color { return rl.NewColor(c.R, c.G, c.B, c.A) }

type App struct {
	host     *frame.Host
	layer    *target
	renderer *render.Renderer
	logger   *slog.Logger

	background rl.Color
	opacity    float32
	paused     bool
}

// initWindow opens a resizable window and disables the default exit key
// so Q and Esc go through the same teardown.
func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)
}

func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
	layer := &target{}
	layer.reload(w, h)
	host := frame.NewHost(w, h)
	host.Attach(layer)

	r, err := render.New(opts, host, render.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &App{
		host:       host,
		layer:      layer,
		renderer:   r,
		logger:     logger,
		background: toRL(cfg.Background()),
		opacity:    float32(cfg.Style.Opacity),
	}, nil
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, logger *slog.Logger) error {
	initWindow(cfg)
	defer rl.CloseWindow()

	app, err := NewApp(cfg, logger)
	if err != nil {
		return err
	}
	defer rl.UnloadRenderTexture(app.layer.tex)
	app.logger.Debug("opening window", "width", cfg.Window.Width, "height", cfg.Window.Height, "backend", "raylib")

	rl.BeginTextureMode(app.layer.tex)
	err = app.renderer.Start()
	rl.EndTextureMode()
	if err != nil {
		return err
	}

	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	defer func() {
		a.renderer.Stop()
		a.host.Detach()
	}()

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
			return
		}
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
	}
	if rl.IsWindowResized() {
		w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
		a.layer.reload(w, h)
		a.host.Set(w, h)
	}

	rl.BeginTextureMode(a.layer.tex)
	if !a.paused {
		a.host.Pump()
	}
	rl.EndTextureMode()
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(a.background)

	// render textures are stored upside down
	w, h := float32(a.layer.tex.Texture.Width), float32(a.layer.tex.Texture.Height)
	rl.DrawTextureRec(a.layer.tex.Texture, rl.NewRectangle(0, 0, w, -h), rl.NewVector2(0, 0), rl.Fade(rl.White, a.opacity))

	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 12, int32(rl.GetScreenHeight())-24, 14, ColTextDim)
	if a.paused {
		rl.DrawText("PAUSED", int32(rl.GetScreenWidth())-80, 12, 14, ColText)
	}
	rl.EndDrawing()
}
