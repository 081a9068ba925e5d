package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/mechdyn/internal/state"
)

// CanvasSVG renders the canvas dots as SVG circles, scale pixels per dot.
func CanvasSVG(c *Canvas, scale float64) string {
	width := float64(c.DotWidth()) * scale
	height := float64(c.DotHeight()) * scale

	var b strings.Builder
	b.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff88">
`, width, height, width, height))

	radius := scale * 0.4
	for row := 0; row < c.Height(); row++ {
		for col := 0; col < c.Width(); col++ {
			pattern := c.At(col, row) - 0x2800
			if pattern <= 0 {
				continue
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&dotBits[dy][dx] == 0 {
						continue
					}
					cx := (float64(col*2+dx) + 0.5) * scale
					cy := (float64(row*4+dy) + 0.5) * scale
					b.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, radius))
				}
			}
		}
	}
	b.WriteString("</g>\n</svg>\n")
	return b.String()
}

// PoseSVG renders a mechanism pose straight to SVG.
func PoseSVG(st *state.MechanismState, width, height int, scale float64) string {
	r := NewPoseRenderer(width, height)
	return CanvasSVG(r.RenderCanvas(st), scale)
}
