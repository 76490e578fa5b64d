package export

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/neuralbg/internal/render"
	"github.com/san-kum/neuralbg/internal/surface"
)

var ErrNoFrames = errors.New("export: no frames captured")

// Look holds what a host adds around the particle layer.
type Look struct {
	Background color.NRGBA
	Accent     color.NRGBA
	Opacity    float64
}

// Compose paints the background and draws the layer over it at the
// layer opacity.
func Compose(layer *image.RGBA, look Look) *image.RGBA {
	b := layer.Bounds()
	dst := image.NewRGBA(b)
	bg := look.Background
	bg.A = 255
	draw.Draw(dst, b, image.NewUniform(bg), image.Point{}, draw.Src)

	a := min(max(look.Opacity, 0), 1)
	mask := image.NewUniform(color.Alpha{A: uint8(a*255 + 0.5)})
	draw.DrawMask(dst, b, layer, b.Min, mask, image.Point{}, draw.Over)
	return dst
}

// Palette ramps from the background to the accent color in Lab space,
// which covers every blend a frame can produce.
func Palette(look Look) color.Palette {
	from := toColorful(look.Background)
	to := toColorful(look.Accent)

	p := make(color.Palette, 0, 256)
	for i := 0; i < 255; i++ {
		c := from.BlendLab(to, float64(i)/254).Clamped()
		r, g, b := c.RGB255()
		p = append(p, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return append(p, color.RGBA{R: 255, G: 255, B: 255, A: 255})
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// GIFRecorder captures the raster layer after every frame.
type GIFRecorder struct {
	layer   *surface.Raster
	look    Look
	palette color.Palette
	delay   int
	frames  []*image.Paletted
}

// NewGIFRecorder records layer; delay is in hundredths of a second.
func NewGIFRecorder(layer *surface.Raster, look Look, delay int) *GIFRecorder {
	if delay <= 0 {
		delay = 2
	}
	return &GIFRecorder{layer: layer, look: look, palette: Palette(look), delay: delay}
}

func (g *GIFRecorder) OnFrame(_ render.FrameStats) {
	img := Compose(g.layer.Image(), g.look)
	pal := image.NewPaletted(img.Bounds(), g.palette)
	draw.Draw(pal, img.Bounds(), img, image.Point{}, draw.Src)
	g.frames = append(g.frames, pal)
}

func (g *GIFRecorder) Frames() int { return len(g.frames) }

func (g *GIFRecorder) Save(w io.Writer) error {
	if len(g.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range g.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, g.delay)
	}
	return gif.EncodeAll(w, &anim)
}

func WritePNG(w io.Writer, layer *image.RGBA, look Look) error {
	return png.Encode(w, Compose(layer, look))
}
