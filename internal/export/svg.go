package export

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/san-kum/neuralbg/internal/surface"
)

// FrameToSVG converts the drawing calls of one recorded frame to an SVG
// document. The particle layer sits in a group at the layer opacity.
func FrameToSVG(ops []surface.Op, width, height int, look Look) string {
	var sb strings.Builder

	// SVG header
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g opacity="%.2f">
`, width, height, width, height, hex(look.Background), look.Opacity))

	for _, op := range ops {
		switch op.Kind {
		case surface.OpCircle:
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s" fill-opacity="%.3f"/>
`, op.X1, op.Y1, op.R, hex(op.Color), alpha(op.Color)))
		case surface.OpLine:
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f"/>
`, op.X1, op.Y1, op.X2, op.Y2, hex(op.Color), alpha(op.Color), op.W))
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func alpha(c color.NRGBA) float64 { return float64(c.A) / 255 }
