package metrics

import "github.com/san-kum/neuralbg/internal/render"

// LinkDensity is the mean number of links drawn per frame.
type LinkDensity struct {
	name    string
	frames  int
	total   int
	maximum int
}

func NewLinkDensity() *LinkDensity {
	return &LinkDensity{name: "links_per_frame"}
}

func (l *LinkDensity) Name() string { return l.name }

func (l *LinkDensity) Observe(s render.FrameStats) {
	l.frames++
	l.total += s.Links
	if s.Links > l.maximum {
		l.maximum = s.Links
	}
}

func (l *LinkDensity) Value() float64 {
	if l.frames == 0 {
		return 0
	}
	return float64(l.total) / float64(l.frames)
}

func (l *LinkDensity) Max() int { return l.maximum }

func (l *LinkDensity) Reset() {
	l.frames = 0
	l.total = 0
	l.maximum = 0
}

// Reflections counts boundary bounces over all observed frames.
type Reflections struct {
	name  string
	total int
}

func NewReflections() *Reflections {
	return &Reflections{name: "reflections"}
}

func (r *Reflections) Name() string                { return r.name }
func (r *Reflections) Observe(s render.FrameStats) { r.total += s.Reflections }
func (r *Reflections) Value() float64              { return float64(r.total) }
func (r *Reflections) Reset()                      { r.total = 0 }
