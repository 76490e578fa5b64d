package field

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
}

type Params struct {
	Count              int
	ConnectionDistance float64
	MaxSpeed           float64
	MinSize            float64
	MaxSize            float64
}

func (p Params) Validate() error {
	switch {
	case p.Count < 0:
		return fmt.Errorf("%w: count must be non-negative, got %d", ErrInvalidParams, p.Count)
	case !(p.ConnectionDistance > 0) || math.IsInf(p.ConnectionDistance, 0):
		return fmt.Errorf("%w: connection distance must be positive, got %f", ErrInvalidParams, p.ConnectionDistance)
	case !nonNegative(p.MaxSpeed):
		return fmt.Errorf("%w: max speed must be non-negative, got %f", ErrInvalidParams, p.MaxSpeed)
	case !nonNegative(p.MinSize):
		return fmt.Errorf("%w: min size must be non-negative, got %f", ErrInvalidParams, p.MinSize)
	case !nonNegative(p.MaxSize) || p.MaxSize < p.MinSize:
		return fmt.Errorf("%w: size range [%f, %f] is empty", ErrInvalidParams, p.MinSize, p.MaxSize)
	}
	return nil
}

// nonNegative reports whether v is finite and >= 0.
func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

type Field struct {
	params        Params
	particles     []Particle
	width, height float64
}

// New spawns p.Count particles uniformly inside width x height. Non-positive
// bounds fall back to DefaultWidth x DefaultHeight.
func New(p Params, width, height float64, rng *rand.Rand) (*Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	f := &Field{params: p}
	f.width, f.height = fallback(width, height)

	f.particles = make([]Particle, p.Count)
	for i := range f.particles {
		f.particles[i] = Particle{
			X:    rng.Float64() * f.width,
			Y:    rng.Float64() * f.height,
			VX:   (rng.Float64()*2 - 1) * p.MaxSpeed,
			VY:   (rng.Float64()*2 - 1) * p.MaxSpeed,
			Size: p.MinSize + rng.Float64()*(p.MaxSize-p.MinSize),
		}
	}
	return f, nil
}

// FromParticles builds a field from explicit particles. p.Count is ignored;
// the field holds exactly len(ps) particles.
func FromParticles(p Params, width, height float64, ps []Particle) (*Field, error) {
	p.Count = len(ps)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	f := &Field{params: p}
	f.width, f.height = fallback(width, height)

	for i, q := range ps {
		if q.X < 0 || q.X > f.width || q.Y < 0 || q.Y > f.height {
			return nil, fmt.Errorf("%w: particle %d at (%.2f, %.2f) in %.0fx%.0f",
				ErrParticleOutOfBounds, i, q.X, q.Y, f.width, f.height)
		}
	}
	f.particles = make([]Particle, len(ps))
	copy(f.particles, ps)
	return f, nil
}

func fallback(w, h float64) (float64, float64) {
	if !(w > 0) || !(h > 0) {
		return DefaultWidth, DefaultHeight
	}
	return w, h
}

// Step advances every particle by one tick and returns how many velocity
// components were reflected.
func (f *Field) Step() int {
	reflections := 0
	for i := range f.particles {
		p := &f.particles[i]
		p.X += p.VX
		p.Y += p.VY

		// Flip only while heading further out so a particle stranded by a
		// shrinking viewport walks back in.
		if (p.X < 0 && p.VX < 0) || (p.X > f.width && p.VX > 0) {
			p.VX = -p.VX
			reflections++
		}
		if (p.Y < 0 && p.VY < 0) || (p.Y > f.height && p.VY > 0) {
			p.VY = -p.VY
			reflections++
		}
	}
	return reflections
}

// Resize changes the reflection bounds. Particles keep their positions.
func (f *Field) Resize(width, height float64) {
	if !(width > 0) || !(height > 0) {
		return
	}
	f.width, f.height = width, height
}

// Links calls fn for every unordered pair closer than the connection
// distance. strength is 1 - dist/D and lies in (0, 1].
func (f *Field) Links(fn func(a, b Particle, dist, strength float64)) int {
	d := f.params.ConnectionDistance
	n := 0
	for i := 0; i < len(f.particles); i++ {
		a := f.particles[i]
		for j := i + 1; j < len(f.particles); j++ {
			b := f.particles[j]
			dx, dy := a.X-b.X, a.Y-b.Y
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist >= d {
				continue
			}
			n++
			if fn != nil {
				fn(a, b, dist, 1-dist/d)
			}
		}
	}
	return n
}

// Particles returns the live slice in stored order. Callers must not modify it.
func (f *Field) Particles() []Particle { return f.particles }

func (f *Field) Len() int                   { return len(f.particles) }
func (f *Field) Params() Params             { return f.params }
func (f *Field) Bounds() (float64, float64) { return f.width, f.height }

// Clone returns an independent copy of the particles.
func (f *Field) Clone() []Particle {
	c := make([]Particle, len(f.particles))
	copy(c, f.particles)
	return c
}
