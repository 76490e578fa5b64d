package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// layer is the offscreen image the renderer draws into. The game
// composites it over the background at the configured opacity.
type layer struct {
	img  *ebiten.Image
	w, h int
}

func (l *layer) Size() (int, int) { return l.w, l.h }

func (l *layer) SetSize(w, h int) {
	if l.img != nil && w == l.w && h == l.h {
		return
	}
	if l.img != nil {
		l.img.Deallocate()
		l.img = nil
	}
	l.w, l.h = max(w, 0), max(h, 0)
	if l.w > 0 && l.h > 0 {
		l.img = ebiten.NewImage(l.w, l.h)
	}
}

func (l *layer) Clear() {
	if l.img != nil {
		l.img.Clear()
	}
}

func (l *layer) FillCircle(x, y, r float64, c color.NRGBA) {
	if l.img == nil || r <= 0 {
		return
	}
	vector.DrawFilledCircle(l.img, float32(x), float32(y), float32(r), c, true)
}

func (l *layer) StrokeLine(x1, y1, x2, y2, width float64, c color.NRGBA) {
	if l.img == nil || width <= 0 {
		return
	}
	vector.StrokeLine(l.img, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), c, true)
}
