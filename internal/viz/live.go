package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/neuralbg/internal/frame"
	"github.com/san-kum/neuralbg/internal/metrics"
	"github.com/san-kum/neuralbg/internal/render"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
)

type TickMsg time.Time

type Options struct {
	Render render.Options
	Theme  string
	FPS    int
	Title  string
	Logger *slog.Logger
}

// Model hosts the renderer in a terminal. Each TickMsg stands in for a
// display refresh and pumps the frame queue once.
type Model struct {
	renderer *render.Renderer
	host     *frame.Host
	canvas   *Canvas
	metrics  *metrics.Set
	links    *metrics.Series
	logger   *slog.Logger

	theme        Theme
	interval     time.Duration
	title        string
	termW, termH int
	paused       bool
	showStats    bool
}

func NewModel(opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	canvas := NewCanvas(width, height)
	host := frame.NewHost(canvas.Size())
	host.Attach(canvas)

	r, err := render.New(opts.Render, host, render.WithLogger(logger))
	if err != nil {
		return Model{}, err
	}
	set := metrics.Default()
	links := metrics.NewSeries(historyCapacity)
	r.AddObserver(set)
	r.AddObserver(links)

	theme, ok := GetTheme(opts.Theme)
	if !ok && opts.Theme != "" {
		logger.Warn("unknown theme, using default", "theme", opts.Theme, "default", theme.Name)
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = frame.DefaultFPS
	}
	title := opts.Title
	if title == "" {
		title = "neuralbg"
	}

	return Model{
		renderer:  r,
		host:      host,
		canvas:    canvas,
		metrics:   set,
		links:     links,
		logger:    logger,
		theme:     theme,
		interval:  time.Second / time.Duration(fps),
		title:     title,
		showStats: true,
	}, nil
}

func (m Model) Init() tea.Cmd {
	if err := m.renderer.Start(); err != nil {
		m.logger.Error("start particle field", "err", err)
		return tea.Quit
	}
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termW, m.termH = msg.Width, msg.Height
		m.layout()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.renderer.Stop()
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "s":
			m.showStats = !m.showStats
			m.layout()
		}
	case TickMsg:
		if !m.paused {
			m.host.Pump()
		}
		return m, m.tick()
	}
	return m, nil
}

// layout resizes the viewport to the terminal area left for the canvas.
// With stats shown the header lives in the side panel; without them the
// header and key hint stack above and below the canvas. The renderer
// picks the new size up on its next frame.
func (m *Model) layout() {
	if m.termW <= 0 || m.termH <= 0 {
		return
	}
	cols := m.termW - canvasStyle.GetHorizontalFrameSize()
	if m.showStats {
		cols -= statsWidth
	}
	rows := m.termH - canvasStyle.GetVerticalFrameSize() - 1
	if !m.showStats {
		rows = m.termH - canvasStyle.GetVerticalFrameSize() - lipgloss.Height(m.header()) - lipgloss.Height(compactHint())
	}
	cols, rows = max(cols, 1), max(rows, 1)
	m.host.Set(cols*2*Scale, rows*4*Scale)
}

func (m Model) status() string {
	switch {
	case !m.renderer.Running():
		return StatusStopped.Render("STOPPED")
	case m.paused:
		return StatusPaused.Render("PAUSED")
	}
	return StatusRunning.Render("RUNNING")
}

func (m Model) header() string {
	return GradientText(strings.ToUpper(m.title), m.theme.Particle, m.theme.Accent) + "  " + m.status()
}

func compactHint() string {
	return helpStyle.Render("SP:Pause T:Theme S:Stats Q:Quit")
}

func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.Render(m.theme))
	header := m.header()

	if !m.showStats {
		return lipgloss.JoinVertical(lipgloss.Left, header, canvasView, compactHint())
	}

	var s strings.Builder
	s.WriteString(header + "\n\n")
	if hist := m.links.Values(); len(hist) > 1 {
		chart := asciigraph.Plot(hist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Links"))
		s.WriteString(graphStyle.Render(chart) + "\n")
		s.WriteString(SparklineChart(hist, 30) + "\n\n")
	}
	s.WriteString(labelStyle.Render("Frames") + valueStyle.Render(fmt.Sprintf("%d", m.renderer.Ticks())) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", len(m.renderer.Snapshot()))) + "\n")
	values := m.metrics.Values()
	for _, name := range m.metrics.Names() {
		s.WriteString(labelStyle.Render(name) + valueStyle.Render(fmt.Sprintf("%.2f", values[name])) + "\n")
	}
	w, h := m.host.Size()
	s.WriteString(labelStyle.Render("Viewport") + valueStyle.Render(fmt.Sprintf("%dx%d px", w, h)) + "\n")
	s.WriteString(labelStyle.Render("Theme") + valueStyle.Render(m.theme.Name) + "\n")
	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause T:Theme Q:Quit\nS:Hide stats"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// Renderer exposes the hosted renderer, mostly for tests.
func (m Model) Renderer() *render.Renderer { return m.renderer }

func (m Model) Paused() bool { return m.paused }
func (m Model) Theme() Theme { return m.theme }

// Run drives the model until the user quits.
func Run(opts Options) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}
	defer m.renderer.Stop()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
