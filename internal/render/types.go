package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/san-kum/neuralbg/internal/field"
)

// Surface is the drawable region a host lends to the renderer.
// Coordinates are in surface pixels with the origin at the top left.
type Surface interface {
	Size() (w, h int)
	SetSize(w, h int)
	Clear()
	FillCircle(x, y, r float64, c color.NRGBA)
	StrokeLine(x1, y1, x2, y2, width float64, c color.NRGBA)
}

// Host provides the mount point, the display-refresh primitive and
// resize notifications.
type Host interface {
	// Surface reports the mounted surface, or false once the mount is gone.
	Surface() (Surface, bool)

	RequestFrame(cb func()) uint64
	CancelFrame(id uint64)

	Size() (w, h int)
	OnResize(fn func(w, h int)) (remove func())
}

type Observer interface {
	OnFrame(s FrameStats)
}

type FrameStats struct {
	Tick        uint64
	Particles   int
	Links       int
	Reflections int
	Width       int
	Height      int
}

type Style struct {
	Particle  color.NRGBA
	Line      color.NRGBA
	LineWidth float64
	Glow      color.NRGBA
	GlowBlur  float64
}

// LineColor is the stroke for a link of the given strength in (0, 1].
// Alpha is rounded to 8 bits, so nearby strengths share a value and links
// just short of the connection distance come out fully transparent; the
// renderer skips those.
func (s Style) LineColor(strength float64) color.NRGBA {
	c := s.Line
	c.A = uint8(float64(s.Line.A)*strength + 0.5)
	return c
}

type Size struct {
	Width, Height int
}

type Options struct {
	Params   field.Params
	Style    Style
	Fallback Size
	Seed     int64
}

func (o Options) Validate() error {
	if err := o.Params.Validate(); err != nil {
		return err
	}
	if !finiteNonNegative(o.Style.LineWidth) || !finiteNonNegative(o.Style.GlowBlur) {
		return fmt.Errorf("%w: line width and glow blur must be non-negative", ErrInvalidOptions)
	}
	if o.Fallback.Width < 0 || o.Fallback.Height < 0 {
		return fmt.Errorf("%w: fallback size must be non-negative", ErrInvalidOptions)
	}
	return nil
}

func finiteNonNegative(v float64) bool { return v >= 0 && !math.IsInf(v, 1) }
