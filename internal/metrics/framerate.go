package metrics

import (
	"time"

	"github.com/san-kum/neuralbg/internal/render"
)

// FrameRate measures delivered frames per wall-clock second.
type FrameRate struct {
	name   string
	now    func() time.Time
	first  time.Time
	last   time.Time
	frames int
}

// NewFrameRate uses time.Now when now is nil.
func NewFrameRate(now func() time.Time) *FrameRate {
	if now == nil {
		now = time.Now
	}
	return &FrameRate{name: "fps", now: now}
}

func (f *FrameRate) Name() string { return f.name }

func (f *FrameRate) Observe(s render.FrameStats) {
	t := f.now()
	if f.frames == 0 {
		f.first = t
	}
	f.last = t
	f.frames++
}

func (f *FrameRate) Value() float64 {
	if f.frames < 2 {
		return 0
	}
	elapsed := f.last.Sub(f.first).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(f.frames-1) / elapsed
}

func (f *FrameRate) Reset() {
	f.frames = 0
	f.first = time.Time{}
	f.last = time.Time{}
}
