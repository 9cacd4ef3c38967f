package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/wavefield/internal/driver"
	"github.com/san-kum/wavefield/internal/grid"
	"github.com/san-kum/wavefield/internal/viz"
)

const background = "#0a0a0a"

// CanvasToSVG converts a Braille canvas to SVG format. Dots are coloured by
// their cell level through shader; a nil shader paints every dot white.
func CanvasToSVG(canvas *viz.Canvas, scale float64, shader *viz.Shader) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			fill := "#ffffff"
			if shader != nil {
				fill = shader.Hex(canvas.Levels[row][col])
			}

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, fill)
					}
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// HeightmapSVG draws the frame from above: one circle per strided vertex,
// shaded by height.
func HeightmapSVG(f driver.Frame, plane *grid.Plane, opts Options) string {
	opts = opts.withDefaults()
	shader := viz.NewShader(f.Appearance.Tint, viz.GetTheme(opts.Theme))
	w, h := float64(opts.Width), float64(opts.Height)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, background)

	if f.Heights != nil {
		half := plane.Size / 2
		r := f.Appearance.PointSize * opts.PointScale
		for _, i := range plane.Strided(opts.Stride) {
			v := plane.Vertices[i]
			cx := (v.X + half) / plane.Size * w
			cy := (v.Z + half) / plane.Size * h
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, r, shader.Hex(opts.level(f.Heights[i])))
		}
	}

	if opts.Clock && f.Display != "" {
		fmt.Fprintf(&sb, `<text x="%.0f" y="40" fill="#e0e0e0" font-family="monospace" font-size="28" text-anchor="middle">%s</text>
`, w/2, f.Display)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// ProfileSVG draws the heights along one grid row as a polyline.
func ProfileSVG(f driver.Frame, plane *grid.Plane, row, width, height int, strokeColor string) string {
	side := plane.Side()
	if f.Heights == nil || row < 0 || row >= side || side < 2 {
		return ""
	}

	minY, maxY := f.Heights[plane.Index(row, 0)], f.Heights[plane.Index(row, 0)]
	for col := 0; col < side; col++ {
		y := f.Heights[plane.Index(row, col)]
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor)

	for col := 0; col < side; col++ {
		x := float64(col) / float64(side-1) * float64(width)
		y := float64(height) - (f.Heights[plane.Index(row, col)]-minY)/rangeY*float64(height)
		if col == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
