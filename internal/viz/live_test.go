package viz

import (
	"image/color"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/neuralbg/internal/field"
	"github.com/san-kum/neuralbg/internal/render"
)

func testOptions() Options {
	return Options{
		Render: render.Options{
			Params: field.Params{Count: 12, ConnectionDistance: 80, MaxSpeed: 0.5, MinSize: 1, MaxSize: 3},
			Style: render.Style{
				Particle:  color.NRGBA{R: 129, G: 140, B: 248, A: 102},
				Line:      color.NRGBA{R: 129, G: 140, B: 248, A: 77},
				LineWidth: 0.8,
			},
			Seed: 3,
		},
		FPS: 30,
	}
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return nm, cmd
}

func TestNewModelDefaults(t *testing.T) {
	m, err := NewModel(testOptions())
	if err != nil {
		t.Fatal(err)
	}
	if m.Theme().Name != DefaultTheme.Name {
		t.Errorf("expected default theme, got %s", m.Theme().Name)
	}
	if m.interval != time.Second/30 {
		t.Errorf("unexpected interval %v", m.interval)
	}
}

func TestNewModelRejectsInvalidOptions(t *testing.T) {
	opts := testOptions()
	opts.Render.Params.ConnectionDistance = 0
	if _, err := NewModel(opts); err == nil {
		t.Error("expected error for invalid options")
	}
}

func TestInitStartsRenderer(t *testing.T) {
	m, _ := NewModel(testOptions())
	if cmd := m.Init(); cmd == nil {
		t.Fatal("expected a tick command")
	}
	if !m.Renderer().Running() {
		t.Fatal("renderer not running after Init")
	}
	if m.Renderer().Ticks() != 1 {
		t.Errorf("expected first frame drawn, got %d ticks", m.Renderer().Ticks())
	}
}

func TestTickPumpsUnlessPaused(t *testing.T) {
	m, _ := NewModel(testOptions())
	m.Init()

	m, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick did not schedule the next tick")
	}
	if m.Renderer().Ticks() != 2 {
		t.Errorf("expected 2 ticks, got %d", m.Renderer().Ticks())
	}

	m, _ = update(t, m, key(" "))
	if !m.Paused() {
		t.Fatal("space did not pause")
	}
	m, _ = update(t, m, TickMsg(time.Now()))
	if m.Renderer().Ticks() != 2 {
		t.Errorf("paused model advanced to %d ticks", m.Renderer().Ticks())
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("view does not show pause state")
	}
}

func TestWindowSizeResizesViewport(t *testing.T) {
	m, _ := NewModel(testOptions())
	m.Init()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	w, h := m.host.Size()
	wantCols := 120 - canvasStyle.GetHorizontalFrameSize() - statsWidth
	wantRows := 40 - canvasStyle.GetVerticalFrameSize() - 1
	if w != wantCols*2*Scale || h != wantRows*4*Scale {
		t.Errorf("unexpected viewport %dx%d", w, h)
	}

	m, _ = update(t, m, TickMsg(time.Now()))
	if m.canvas.Width != wantCols || m.canvas.Height != wantRows {
		t.Errorf("canvas not resized on next frame: %dx%d", m.canvas.Width, m.canvas.Height)
	}

	m, _ = update(t, m, key("s"))
	if w2, _ := m.host.Size(); w2 <= w {
		t.Error("hiding stats did not widen the canvas")
	}
}

func TestViewFitsTerminal(t *testing.T) {
	m, _ := NewModel(testOptions())
	m.Init()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, TickMsg(time.Now()))
	if h := lipgloss.Height(m.View()); h > 40 {
		t.Errorf("with stats: view is %d lines in a 40 line terminal", h)
	}

	m, _ = update(t, m, key("s"))
	m, _ = update(t, m, TickMsg(time.Now()))
	h := lipgloss.Height(m.View())
	if h > 40 {
		t.Errorf("without stats: view is %d lines in a 40 line terminal", h)
	}
	if h < 39 {
		t.Errorf("without stats: view leaves %d lines unused", 40-h)
	}
}

func TestThemeCycles(t *testing.T) {
	m, _ := NewModel(testOptions())
	m, _ = update(t, m, key("t"))
	if m.Theme().Name != Themes[1].Name {
		t.Errorf("expected %s, got %s", Themes[1].Name, m.Theme().Name)
	}
}

func TestQuitStopsRenderer(t *testing.T) {
	m, _ := NewModel(testOptions())
	m.Init()

	m, cmd := update(t, m, key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
	if m.Renderer().Running() {
		t.Error("renderer still running after quit")
	}
	if m.host.Queue.Len() != 0 {
		t.Error("frame still scheduled after quit")
	}
	if !strings.Contains(m.View(), "STOPPED") {
		t.Error("view does not show stopped state")
	}
}

func TestViewShowsStats(t *testing.T) {
	m, _ := NewModel(testOptions())
	m.Init()
	for i := 0; i < 3; i++ {
		m, _ = update(t, m, TickMsg(time.Now()))
	}
	view := m.View()
	for _, want := range []string{"links_per_frame", "Particles", "Viewport"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestThemes(t *testing.T) {
	if _, ok := GetTheme("nope"); ok {
		t.Error("unknown theme reported as found")
	}
	if th, ok := GetTheme("ocean"); !ok || th.Name != "ocean" {
		t.Error("ocean theme not found")
	}
	last := Themes[len(Themes)-1].Name
	if NextTheme(last).Name != Themes[0].Name {
		t.Error("theme cycle does not wrap")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names out of sync")
	}
}

func TestSparklineChart(t *testing.T) {
	if got := SparklineChart(nil, 5); got != "─────" {
		t.Errorf("unexpected empty sparkline %q", got)
	}
	out := SparklineChart([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 4)
	if strings.Contains(out, "▁") {
		t.Error("sparkline should keep only the most recent samples")
	}
}
