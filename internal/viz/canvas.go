package viz

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Scale is the number of surface pixels per braille dot.
const Scale = 4

// DefaultMinAlpha drops shapes too faint to show as a whole dot.
const DefaultMinAlpha = 20

// Canvas is a braille grid that doubles as a render.Surface. Surface
// coordinates are pixels; every Scale pixels map to one dot and every
// cell holds 2x4 dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	MinAlpha      uint8

	pw, ph int
	level  [][]uint8
	disc   [][]bool
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{MinAlpha: DefaultMinAlpha}
	c.resize(w, h)
	c.pw, c.ph = w*2*Scale, h*4*Scale
	return c
}

func (c *Canvas) resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.level = make([][]uint8, h)
	c.disc = make([][]bool, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.level[i] = make([]uint8, w)
		c.disc[i] = make([]bool, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// Size reports the surface size in pixels.
func (c *Canvas) Size() (int, int) { return c.pw, c.ph }

// SetSize reallocates the grid to cover w x h pixels.
func (c *Canvas) SetSize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.pw, c.ph = w, h
	cellW, cellH := 2*Scale, 4*Scale
	c.resize((w+cellW-1)/cellW, (h+cellH-1)/cellH)
}

// mark sets the dot at (x, y), in dots, and records its alpha.
func (c *Canvas) mark(x, y int, a uint8, disc bool) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if a > c.level[row][col] {
		c.level[row][col] = a
	}
	if disc {
		c.disc[row][col] = true
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.level[i][j] = 0
			c.disc[i][j] = false
		}
	}
}

// FillCircle sets every dot whose center lies in the disc. Discs smaller
// than a dot still light the dot under their center.
func (c *Canvas) FillCircle(x, y, r float64, col color.NRGBA) {
	if col.A < c.MinAlpha || r <= 0 {
		return
	}
	cx, cy, rd := x/Scale, y/Scale, r/Scale
	c.mark(int(math.Floor(cx)), int(math.Floor(cy)), col.A, true)

	for iy := int(math.Floor(cy - rd)); iy <= int(math.Ceil(cy+rd)); iy++ {
		for ix := int(math.Floor(cx - rd)); ix <= int(math.Ceil(cx+rd)); ix++ {
			dx := float64(ix) + 0.5 - cx
			dy := float64(iy) + 0.5 - cy
			if dx*dx+dy*dy <= rd*rd {
				c.mark(ix, iy, col.A, true)
			}
		}
	}
}

// StrokeLine draws a one-dot line regardless of width.
func (c *Canvas) StrokeLine(x1, y1, x2, y2, _ float64, col color.NRGBA) {
	if col.A < c.MinAlpha {
		return
	}
	c.drawLine(
		int(math.Floor(x1/Scale)), int(math.Floor(y1/Scale)),
		int(math.Floor(x2/Scale)), int(math.Floor(y2/Scale)),
		col.A)
}

// drawLine walks dots from (x0, y0) to (x1, y1) with Bresenham's algorithm.
func (c *Canvas) drawLine(x0, y0, x1, y1 int, a uint8) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.mark(x0, y0, a, false)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

type shade int

const (
	shadeEmpty shade = iota
	shadeFaint
	shadeLink
	shadeParticle
)

// Level returns the strongest alpha drawn into a cell this frame.
func (c *Canvas) Level(col, row int) uint8 {
	if row < 0 || row >= c.Height || col < 0 || col >= c.Width {
		return 0
	}
	return c.level[row][col]
}

func (c *Canvas) shade(col, row int) shade {
	switch {
	case c.Grid[row][col] == blank:
		return shadeEmpty
	case c.disc[row][col]:
		return shadeParticle
	case c.level[row][col] >= 48:
		return shadeLink
	}
	return shadeFaint
}

// Render colors the grid with the theme. Runs of cells with the same
// shade share one style so the escape codes stay short.
func (c *Canvas) Render(t Theme) string {
	styles := map[shade]lipgloss.Style{
		shadeFaint:    lipgloss.NewStyle().Foreground(t.Faint),
		shadeLink:     lipgloss.NewStyle().Foreground(t.Link),
		shadeParticle: lipgloss.NewStyle().Foreground(t.Particle).Bold(true),
	}

	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		start := 0
		for start < c.Width {
			s := c.shade(start, row)
			end := start + 1
			for end < c.Width && c.shade(end, row) == s {
				end++
			}
			run := string(c.Grid[row][start:end])
			if st, ok := styles[s]; ok {
				run = st.Render(run)
			}
			b.WriteString(run)
			start = end
		}
		if row < c.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
