package render_test

import (
	"image/color"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/neuralbg/internal/field"
	"github.com/san-kum/neuralbg/internal/frame"
	"github.com/san-kum/neuralbg/internal/render"
	"github.com/san-kum/neuralbg/internal/surface"
)

var indigo = color.NRGBA{R: 129, G: 140, B: 248, A: 200}

func options(d float64) render.Options {
	return render.Options{
		Params: field.Params{Count: 30, ConnectionDistance: d, MaxSpeed: 1.5, MinSize: 1, MaxSize: 3},
		Style: render.Style{
			Particle:  color.NRGBA{R: 129, G: 140, B: 248, A: 102},
			Line:      indigo,
			LineWidth: 0.8,
		},
		Seed: 11,
	}
}

type statsLog struct{ frames []render.FrameStats }

func (s *statsLog) OnFrame(f render.FrameStats) { s.frames = append(s.frames, f) }

var _ = Describe("Renderer", func() {
	var (
		host *frame.Host
		rec  *surface.Recorder
	)

	BeforeEach(func() {
		host = frame.NewHost(200, 100)
		rec = surface.NewRecorder(0, 0)
		host.Attach(rec)
	})

	Describe("construction", func() {
		It("rejects a nil host", func() {
			_, err := render.New(options(20), nil)
			Expect(err).To(MatchError(render.ErrNilHost))
		})

		It("rejects invalid field parameters", func() {
			opts := options(0)
			_, err := render.New(opts, host)
			Expect(err).To(MatchError(field.ErrInvalidParams))
		})

		It("rejects a negative line width", func() {
			opts := options(20)
			opts.Style.LineWidth = -1
			_, err := render.New(opts, host)
			Expect(err).To(MatchError(render.ErrInvalidOptions))
		})

		It("rejects non-finite sizes", func() {
			opts := options(20)
			opts.Style.GlowBlur = math.Inf(1)
			_, err := render.New(opts, host)
			Expect(err).To(MatchError(render.ErrInvalidOptions))

			opts = options(20)
			opts.Params.MaxSpeed = math.Inf(1)
			_, err = render.New(opts, host)
			Expect(err).To(MatchError(field.ErrInvalidParams))
		})
	})

	Describe("start", func() {
		It("sizes the surface from the host and draws the first frame", func() {
			r, err := render.New(options(40), host)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Start()).To(Succeed())

			w, h := rec.Size()
			Expect(w).To(Equal(200))
			Expect(h).To(Equal(100))
			Expect(r.Running()).To(BeTrue())
			Expect(r.Ticks()).To(Equal(uint64(1)))
			Expect(rec.Circles()).To(HaveLen(30))
			Expect(host.Queue.Len()).To(Equal(1))
			Expect(host.Listeners()).To(Equal(1))
		})

		It("stays static without a surface", func() {
			host.Detach()
			r, _ := render.New(options(40), host)
			Expect(r.Start()).To(Succeed())

			Expect(r.Running()).To(BeFalse())
			Expect(r.Ticks()).To(BeZero())
			Expect(host.Queue.Len()).To(BeZero())
			Expect(host.Listeners()).To(BeZero())
		})

		It("falls back to a default area when the host reports no size", func() {
			host = frame.NewHost(0, 0)
			host.Attach(rec)
			opts := options(40)
			opts.Fallback = render.Size{Width: 320, Height: 240}
			r, _ := render.New(opts, host)
			Expect(r.Start()).To(Succeed())

			for _, p := range r.Snapshot() {
				Expect(p.X).To(BeNumerically("<=", 320+opts.Params.MaxSpeed))
				Expect(p.Y).To(BeNumerically("<=", 240+opts.Params.MaxSpeed))
			}
		})

		It("is a no-op the second time", func() {
			r, _ := render.New(options(40), host)
			Expect(r.Start()).To(Succeed())
			Expect(r.Start()).To(Succeed())
			Expect(r.Ticks()).To(Equal(uint64(1)))
			Expect(host.Listeners()).To(Equal(1))
		})
	})

	Describe("ticks", func() {
		It("keeps two resting particles linked at half strength", func() {
			opts := options(20)
			r, _ := render.New(opts, host, render.WithParticles([]field.Particle{
				{X: 0, Y: 0, Size: 1},
				{X: 10, Y: 0, Size: 1},
			}))
			Expect(r.Start()).To(Succeed())

			for i := 0; i < 10; i++ {
				lines := rec.Lines()
				Expect(lines).To(HaveLen(1))
				Expect(lines[0].Color.A).To(Equal(uint8(100)))
				Expect(lines[0].W).To(Equal(0.8))

				ps := r.Snapshot()
				Expect(ps[0].X).To(Equal(0.0))
				Expect(ps[1].X).To(Equal(10.0))
				Expect(ps[0].VX).To(Equal(0.0))

				Expect(frame.Drain(host.Queue, 1)).To(Equal(1))
			}
		})

		It("reflects a particle crossing the right edge", func() {
			r, _ := render.New(options(20), host, render.WithParticles([]field.Particle{
				{X: 200 - 0.1, Y: 50, VX: 0.2, Size: 1},
			}))
			Expect(r.Start()).To(Succeed())

			p := r.Snapshot()[0]
			Expect(p.VX).To(Equal(-0.2))

			frame.Drain(host.Queue, 1)
			p = r.Snapshot()[0]
			Expect(p.X).To(BeNumerically("<=", 200))
			Expect(p.VX).To(Equal(-0.2))
		})

		It("draws no line at or beyond the connection distance", func() {
			r, _ := render.New(options(20), host, render.WithParticles([]field.Particle{
				{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 60, Y: 0},
			}))
			Expect(r.Start()).To(Succeed())
			Expect(rec.Lines()).To(BeEmpty())
		})

		It("fades lines as particles separate", func() {
			prev := uint8(255)
			for _, d := range []float64{1, 5, 9, 13, 17, 19.5} {
				rec := surface.NewRecorder(0, 0)
				host := frame.NewHost(100, 100)
				host.Attach(rec)
				r, _ := render.New(options(20), host, render.WithParticles([]field.Particle{
					{X: 0, Y: 0}, {X: d, Y: 0},
				}))
				Expect(r.Start()).To(Succeed())

				lines := rec.Lines()
				Expect(lines).To(HaveLen(1))
				Expect(lines[0].Color.A).To(BeNumerically("<", prev))
				prev = lines[0].Color.A
			}
		})

		It("skips links that round to full transparency", func() {
			log := &statsLog{}
			r, _ := render.New(options(20), host, render.WithParticles([]field.Particle{
				{X: 0, Y: 0}, {X: 19.999, Y: 0},
			}))
			r.AddObserver(log)
			Expect(r.Start()).To(Succeed())

			Expect(rec.Lines()).To(BeEmpty())
			Expect(log.frames[0].Links).To(Equal(0))
		})

		It("draws the glow halo beneath each particle", func() {
			opts := options(20)
			opts.Style.Glow = color.NRGBA{R: 129, G: 140, B: 248, A: 51}
			opts.Style.GlowBlur = 10
			r, _ := render.New(opts, host, render.WithParticles([]field.Particle{{X: 50, Y: 50, Size: 2}}))
			Expect(r.Start()).To(Succeed())

			circles := rec.Circles()
			Expect(circles).To(HaveLen(2))
			Expect(circles[0].R).To(Equal(7.0))
			Expect(circles[0].Color.A).To(Equal(uint8(51)))
			Expect(circles[1].R).To(Equal(2.0))
		})

		It("keeps every particle inside the viewport over many frames", func() {
			r, _ := render.New(options(30), host, render.WithRand(rand.New(rand.NewSource(5))))
			Expect(r.Start()).To(Succeed())

			speed := options(30).Params.MaxSpeed
			for i := 0; i < 2000; i++ {
				frame.Drain(host.Queue, 1)
				for _, p := range r.Snapshot() {
					Expect(p.X).To(BeNumerically(">=", -speed))
					Expect(p.X).To(BeNumerically("<=", 200+speed))
					Expect(p.Y).To(BeNumerically(">=", -speed))
					Expect(p.Y).To(BeNumerically("<=", 100+speed))
				}
			}
		})

		It("reports frame statistics to observers", func() {
			log := &statsLog{}
			r, _ := render.New(options(20), host, render.WithParticles([]field.Particle{
				{X: 0, Y: 0}, {X: 10, Y: 0},
			}))
			r.AddObserver(log)
			Expect(r.Start()).To(Succeed())
			frame.Drain(host.Queue, 2)

			Expect(log.frames).To(HaveLen(3))
			last := log.frames[2]
			Expect(last.Tick).To(Equal(uint64(3)))
			Expect(last.Particles).To(Equal(2))
			Expect(last.Links).To(Equal(1))
			Expect(last.Width).To(Equal(200))
		})
	})

	Describe("resize", func() {
		It("resynchronizes the surface before the next frame without moving particles", func() {
			r, _ := render.New(options(20), host, render.WithParticles([]field.Particle{
				{X: 150, Y: 80}, {X: 10, Y: 10},
			}))
			Expect(r.Start()).To(Succeed())

			host.Set(400, 300)
			w, _ := rec.Size()
			Expect(w).To(Equal(200), "resize applies on the next tick, not in the notification")

			frame.Drain(host.Queue, 1)
			w, h := rec.Size()
			Expect(w).To(Equal(400))
			Expect(h).To(Equal(300))
			Expect(r.Snapshot()[0].X).To(Equal(150.0))
		})
	})

	Describe("teardown", func() {
		It("cancels the pending frame and removes the resize listener", func() {
			r, _ := render.New(options(20), host)
			Expect(r.Start()).To(Succeed())

			r.Stop()
			Expect(r.Running()).To(BeFalse())
			Expect(host.Queue.Len()).To(BeZero())
			Expect(host.Listeners()).To(BeZero())
			Expect(r.Snapshot()).To(BeNil())

			Expect(host.Queue.Pump()).To(BeZero())
			Expect(r.Ticks()).To(Equal(uint64(1)))
		})

		It("is idempotent", func() {
			r, _ := render.New(options(20), host)
			Expect(r.Start()).To(Succeed())

			Expect(r.Stop).NotTo(Panic())
			Expect(r.Stop).NotTo(Panic())
			Expect(host.Queue.Len()).To(BeZero())
		})

		It("is safe before start and prevents a later start", func() {
			r, _ := render.New(options(20), host)
			r.Stop()
			Expect(r.Start()).To(Succeed())
			Expect(r.Running()).To(BeFalse())
			Expect(host.Queue.Len()).To(BeZero())
		})

		It("can be triggered from an observer without rescheduling", func() {
			r, _ := render.New(options(20), host)
			r.AddObserver(stopAfter{r: r, n: 3})
			Expect(r.Start()).To(Succeed())

			Expect(frame.Drain(host.Queue, 10)).To(Equal(2))
			Expect(r.Ticks()).To(Equal(uint64(3)))
			Expect(host.Queue.Len()).To(BeZero())
		})
	})

	Describe("losing the surface", func() {
		It("stops silently without drawing or rescheduling", func() {
			r, _ := render.New(options(20), host)
			Expect(r.Start()).To(Succeed())
			clears := rec.Clears()

			host.Detach()
			Expect(func() { host.Queue.Pump() }).NotTo(Panic())

			Expect(r.Running()).To(BeFalse())
			Expect(rec.Clears()).To(Equal(clears))
			Expect(host.Queue.Len()).To(BeZero())
			Expect(host.Listeners()).To(BeZero())
		})
	})
})

type stopAfter struct {
	r *render.Renderer
	n uint64
}

func (s stopAfter) OnFrame(f render.FrameStats) {
	if f.Tick >= s.n {
		s.r.Stop()
	}
}
