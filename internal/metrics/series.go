package metrics

import "github.com/san-kum/neuralbg/internal/render"

// Series keeps the link count of the most recent frames for plotting.
type Series struct {
	buf  []float64
	next int
	full bool
}

func NewSeries(capacity int) *Series {
	if capacity < 1 {
		capacity = 1
	}
	return &Series{buf: make([]float64, capacity)}
}

func (s *Series) OnFrame(f render.FrameStats) { s.Push(float64(f.Links)) }

func (s *Series) Push(v float64) {
	s.buf[s.next] = v
	s.next++
	if s.next == len(s.buf) {
		s.next = 0
		s.full = true
	}
}

func (s *Series) Len() int {
	if s.full {
		return len(s.buf)
	}
	return s.next
}

// Values returns the samples oldest first.
func (s *Series) Values() []float64 {
	if !s.full {
		out := make([]float64, s.next)
		copy(out, s.buf[:s.next])
		return out
	}
	out := make([]float64, 0, len(s.buf))
	out = append(out, s.buf[s.next:]...)
	return append(out, s.buf[:s.next]...)
}

func (s *Series) Reset() {
	s.next = 0
	s.full = false
}
