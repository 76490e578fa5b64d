package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/san-kum/neuralbg/internal/render"
)

func TestLinkDensity(t *testing.T) {
	m := NewLinkDensity()
	if m.Value() != 0 {
		t.Errorf("expected 0 before frames, got %f", m.Value())
	}

	for _, n := range []int{2, 4, 6} {
		m.Observe(render.FrameStats{Links: n})
	}
	if m.Value() != 4 {
		t.Errorf("expected mean 4, got %f", m.Value())
	}
	if m.Max() != 6 {
		t.Errorf("expected max 6, got %d", m.Max())
	}

	m.Reset()
	if m.Value() != 0 || m.Max() != 0 {
		t.Error("reset did not clear link density")
	}
}

func TestReflections(t *testing.T) {
	m := NewReflections()
	m.Observe(render.FrameStats{Reflections: 3})
	m.Observe(render.FrameStats{Reflections: 1})
	if m.Value() != 4 {
		t.Errorf("expected 4 reflections, got %f", m.Value())
	}
}

func TestFrameRate(t *testing.T) {
	start := time.Unix(0, 0)
	tick := 0
	m := NewFrameRate(func() time.Time {
		ts := start.Add(time.Duration(tick) * time.Second / 60)
		tick++
		return ts
	})

	for i := 0; i < 61; i++ {
		m.Observe(render.FrameStats{})
	}
	if math.Abs(m.Value()-60) > 1e-9 {
		t.Errorf("expected 60 fps, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
}

func TestSeriesWrapsOldestFirst(t *testing.T) {
	s := NewSeries(3)
	for i := 1; i <= 5; i++ {
		s.OnFrame(render.FrameStats{Links: i})
	}

	got := s.Values()
	want := []float64{3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestSeriesPartial(t *testing.T) {
	s := NewSeries(10)
	s.Push(1)
	s.Push(2)
	if s.Len() != 2 || len(s.Values()) != 2 {
		t.Errorf("expected 2 samples, got %d", s.Len())
	}
	s.Reset()
	if s.Len() != 0 {
		t.Errorf("expected empty series after reset, got %d", s.Len())
	}
}

func TestSetValues(t *testing.T) {
	set := NewSet(NewLinkDensity(), NewReflections())
	set.OnFrame(render.FrameStats{Links: 5, Reflections: 2})

	v := set.Values()
	if v["links_per_frame"] != 5 {
		t.Errorf("expected links_per_frame 5, got %f", v["links_per_frame"])
	}
	if v["reflections"] != 2 {
		t.Errorf("expected reflections 2, got %f", v["reflections"])
	}

	names := set.Names()
	if len(names) != 2 || names[0] != "links_per_frame" {
		t.Errorf("unexpected names %v", names)
	}

	set.Reset()
	if set.Values()["reflections"] != 0 {
		t.Error("reset did not propagate")
	}
}
