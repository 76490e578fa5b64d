package render

import (
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/san-kum/neuralbg/internal/field"
)

const (
	stateIdle int32 = iota
	stateRunning
	stateStopped
)

// Renderer animates a particle field on a host surface. All drawing and
// particle mutation happens inside the tick callback; resize notifications
// only publish the new size for the next tick to pick up.
type Renderer struct {
	opts      Options
	host      Host
	logger    *slog.Logger
	rng       *rand.Rand
	preset    []field.Particle
	observers []Observer

	state   atomic.Int32
	pending atomic.Pointer[Size]

	field     *field.Field
	frameID   uint64
	scheduled bool
	unlisten  func()
	ticks     uint64
}

type Option func(*Renderer)

func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithParticles starts the field from the given particles instead of
// spawning Params.Count random ones.
func WithParticles(ps []field.Particle) Option {
	return func(r *Renderer) { r.preset = ps }
}

func WithRand(rng *rand.Rand) Option {
	return func(r *Renderer) { r.rng = rng }
}

func New(opts Options, host Host, options ...Option) (*Renderer, error) {
	if host == nil {
		return nil, ErrNilHost
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	r := &Renderer{
		opts:      opts,
		host:      host,
		logger:    slog.Default(),
		observers: make([]Observer, 0),
	}
	for _, o := range options {
		o(r)
	}
	if r.rng == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		r.rng = rand.New(rand.NewSource(seed))
	}
	return r, nil
}

func (r *Renderer) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Start mounts the renderer. Without a surface it stays idle and draws
// nothing. Otherwise it builds the field, subscribes to resizes and runs
// the first tick, which schedules the rest.
func (r *Renderer) Start() error {
	if r.state.Load() != stateIdle {
		return nil
	}

	s, ok := r.host.Surface()
	if !ok || s == nil {
		r.logger.Debug("no surface at start, background stays static")
		return nil
	}

	w, h := r.host.Size()
	if w > 0 && h > 0 {
		s.SetSize(w, h)
	}
	fw, fh := r.bounds(w, h)

	var (
		f   *field.Field
		err error
	)
	if r.preset != nil {
		f, err = field.FromParticles(r.opts.Params, fw, fh, r.preset)
	} else {
		f, err = field.New(r.opts.Params, fw, fh, r.rng)
	}
	if err != nil {
		return err
	}
	r.field = f

	r.unlisten = r.host.OnResize(func(w, h int) {
		r.pending.Store(&Size{Width: w, Height: h})
	})

	r.state.Store(stateRunning)
	r.logger.Info("particle field started",
		"particles", f.Len(),
		"width", fw,
		"height", fh,
		"connection_distance", r.opts.Params.ConnectionDistance)

	r.tick()
	return nil
}

func (r *Renderer) bounds(w, h int) (float64, float64) {
	if w > 0 && h > 0 {
		return float64(w), float64(h)
	}
	if r.opts.Fallback.Width > 0 && r.opts.Fallback.Height > 0 {
		return float64(r.opts.Fallback.Width), float64(r.opts.Fallback.Height)
	}
	return field.DefaultWidth, field.DefaultHeight
}

func (r *Renderer) tick() {
	r.scheduled = false
	if r.state.Load() != stateRunning {
		return
	}

	s, ok := r.host.Surface()
	if !ok || s == nil {
		r.logger.Debug("surface gone, stopping particle field", "tick", r.ticks)
		r.Stop()
		return
	}

	if sz := r.pending.Swap(nil); sz != nil {
		s.SetSize(sz.Width, sz.Height)
		r.field.Resize(float64(sz.Width), float64(sz.Height))
	}

	s.Clear()
	reflections := r.field.Step()

	st := r.opts.Style
	for _, p := range r.field.Particles() {
		if st.GlowBlur > 0 && st.Glow.A > 0 {
			s.FillCircle(p.X, p.Y, p.Size+st.GlowBlur/2, st.Glow)
		}
		s.FillCircle(p.X, p.Y, p.Size, st.Particle)
	}

	links := 0
	r.field.Links(func(a, b field.Particle, dist, strength float64) {
		c := st.LineColor(strength)
		if c.A == 0 {
			return
		}
		s.StrokeLine(a.X, a.Y, b.X, b.Y, st.LineWidth, c)
		links++
	})

	r.ticks++
	if len(r.observers) > 0 {
		w, h := s.Size()
		stats := FrameStats{
			Tick:        r.ticks,
			Particles:   r.field.Len(),
			Links:       links,
			Reflections: reflections,
			Width:       w,
			Height:      h,
		}
		for _, o := range r.observers {
			o.OnFrame(stats)
		}
	}

	if r.state.Load() == stateRunning {
		r.frameID = r.host.RequestFrame(r.tick)
		r.scheduled = true
	}
}

// Stop tears the animation down: the pending frame is cancelled, the
// resize listener removed and the particles dropped. Safe to call more
// than once and before Start.
func (r *Renderer) Stop() {
	prev := r.state.Swap(stateStopped)
	if prev == stateStopped {
		return
	}
	if r.scheduled {
		r.host.CancelFrame(r.frameID)
		r.scheduled = false
	}
	if r.unlisten != nil {
		r.unlisten()
		r.unlisten = nil
	}
	r.field = nil
	if prev == stateRunning {
		r.logger.Info("particle field stopped", "ticks", r.ticks)
	}
}

func (r *Renderer) Running() bool { return r.state.Load() == stateRunning }
func (r *Renderer) Ticks() uint64 { return r.ticks }

// Snapshot copies the current particles; nil when not running.
func (r *Renderer) Snapshot() []field.Particle {
	if r.field == nil {
		return nil
	}
	return r.field.Clone()
}
