package metrics

import (
	"sort"

	"github.com/san-kum/neuralbg/internal/render"
)

type Metric interface {
	Name() string
	Observe(s render.FrameStats)
	Value() float64
	Reset()
}

// Set feeds every frame to its metrics. It is a render.Observer.
type Set struct {
	metrics []Metric
}

func NewSet(ms ...Metric) *Set {
	return &Set{metrics: ms}
}

// Default bundles the metrics the CLI reports.
func Default() *Set {
	return NewSet(NewLinkDensity(), NewReflections(), NewFrameRate(nil))
}

func (s *Set) Add(m Metric) { s.metrics = append(s.metrics, m) }

func (s *Set) OnFrame(f render.FrameStats) {
	for _, m := range s.metrics {
		m.Observe(f)
	}
}

func (s *Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Names returns metric names sorted for stable output.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.metrics))
	for _, m := range s.metrics {
		names = append(names, m.Name())
	}
	sort.Strings(names)
	return names
}

func (s *Set) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
}
