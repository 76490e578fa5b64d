package surface

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic control points so four curves approximate a circle.
const kappa = 0.5522847498

// Raster draws into an in-memory RGBA image with anti-aliased shapes.
type Raster struct {
	img        *image.RGBA
	background color.NRGBA
	z          *vector.Rasterizer
}

func NewRaster(w, h int, background color.NRGBA) *Raster {
	r := &Raster{background: background}
	r.SetSize(w, h)
	return r
}

func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// SetSize reallocates the backing image; the contents are lost.
func (r *Raster) SetSize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if r.img != nil {
		if b := r.img.Bounds(); b.Dx() == w && b.Dy() == h {
			return
		}
	}
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	r.z = vector.NewRasterizer(w, h)
	r.Clear()
}

func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.background), image.Point{}, draw.Src)
}

func (r *Raster) FillCircle(x, y, radius float64, c color.NRGBA) {
	if radius <= 0 || c.A == 0 || r.empty() {
		return
	}
	cx, cy, rr := float32(x), float32(y), float32(radius)
	k := float32(kappa) * rr

	r.begin()
	r.z.MoveTo(cx+rr, cy)
	r.z.CubeTo(cx+rr, cy+k, cx+k, cy+rr, cx, cy+rr)
	r.z.CubeTo(cx-k, cy+rr, cx-rr, cy+k, cx-rr, cy)
	r.z.CubeTo(cx-rr, cy-k, cx-k, cy-rr, cx, cy-rr)
	r.z.CubeTo(cx+k, cy-rr, cx+rr, cy-k, cx+rr, cy)
	r.z.ClosePath()
	r.fill(c)
}

func (r *Raster) StrokeLine(x1, y1, x2, y2, width float64, c color.NRGBA) {
	if width <= 0 || c.A == 0 || r.empty() {
		return
	}
	dx, dy := x2-x1, y2-y1
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	// unit normal scaled to half the stroke width
	nx, ny := -dy/l*width/2, dx/l*width/2

	r.begin()
	r.z.MoveTo(float32(x1+nx), float32(y1+ny))
	r.z.LineTo(float32(x2+nx), float32(y2+ny))
	r.z.LineTo(float32(x2-nx), float32(y2-ny))
	r.z.LineTo(float32(x1-nx), float32(y1-ny))
	r.z.ClosePath()
	r.fill(c)
}

func (r *Raster) begin() {
	b := r.img.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
	r.z.DrawOp = draw.Over
}

func (r *Raster) fill(c color.NRGBA) {
	r.z.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{})
}

func (r *Raster) empty() bool {
	b := r.img.Bounds()
	return b.Dx() == 0 || b.Dy() == 0
}

// Image returns the backing image. It is overwritten by later frames.
func (r *Raster) Image() *image.RGBA { return r.img }
