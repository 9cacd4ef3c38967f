package export

import (
	"io"
	"math"
	"sort"

	"github.com/fogleman/gg"

	"github.com/san-kum/wavefield/internal/driver"
	"github.com/san-kum/wavefield/internal/grid"
	"github.com/san-kum/wavefield/internal/viz"
)

// Options control the SVG and PNG renderings of a frame.
type Options struct {
	Width, Height int
	Theme         string
	// Stride thins the grid; 0 keeps every vertex.
	Stride int
	// PointScale converts an Appearance point size to pixels.
	PointScale float64
	// HeightScale exaggerates displacement in the perspective view.
	HeightScale float64
	// MaxAmplitude normalises heights for shading; 0 uses the default tuning.
	MaxAmplitude float64
	Clock        bool
	Camera       *viz.Camera
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 1024
	}
	if o.Height <= 0 {
		o.Height = 768
	}
	if o.Stride <= 0 {
		o.Stride = 1
	}
	if o.PointScale <= 0 {
		o.PointScale = 1
	}
	if o.HeightScale <= 0 {
		o.HeightScale = 2
	}
	if o.MaxAmplitude <= 0 {
		o.MaxAmplitude = 1.1
	}
	if o.Camera == nil {
		o.Camera = viz.NewCamera()
	}
	return o
}

func (o Options) level(h float64) float64 {
	return h / o.MaxAmplitude
}

type dot struct {
	x, y, depth float64
	color       string
}

// RenderPNG draws the frame in perspective with the viz camera and returns
// the context so callers can save or encode it.
func RenderPNG(f driver.Frame, plane *grid.Plane, opts Options) *gg.Context {
	opts = opts.withDefaults()
	shader := viz.NewShader(f.Appearance.Tint, viz.GetTheme(opts.Theme))

	ctx := gg.NewContext(opts.Width, opts.Height)
	ctx.SetHexColor(background)
	ctx.Clear()

	if f.Heights != nil {
		dots := make([]dot, 0, plane.Len()/(opts.Stride*opts.Stride)+1)
		for _, i := range plane.Strided(opts.Stride) {
			v := plane.Vertices[i]
			h := f.Heights[i]
			p := viz.Vec3{X: v.X, Y: h * opts.HeightScale, Z: v.Z}
			x, y, d, ok := opts.Camera.Project(p, opts.Width, opts.Height)
			if !ok {
				continue
			}
			dots = append(dots, dot{float64(x), float64(y), d, shader.Hex(opts.level(h))})
		}
		sort.Slice(dots, func(i, j int) bool { return dots[i].depth < dots[j].depth })

		r := math.Max(0.5, f.Appearance.PointSize*opts.PointScale/2)
		for _, d := range dots {
			ctx.SetHexColor(d.color)
			ctx.DrawCircle(d.x, d.y, r)
			ctx.Fill()
		}
	}

	if opts.Clock && f.Display != "" {
		ctx.SetHexColor("#e0e0e0")
		ctx.DrawStringAnchored(f.Display, float64(opts.Width)/2, 30, 0.5, 0.5)
	}
	return ctx
}

// FramePNG encodes the perspective rendering of f to w.
func FramePNG(w io.Writer, f driver.Frame, plane *grid.Plane, opts Options) error {
	return RenderPNG(f, plane, opts).EncodePNG(w)
}

// SavePNG writes the perspective rendering of f to path.
func SavePNG(path string, f driver.Frame, plane *grid.Plane, opts Options) error {
	return RenderPNG(f, plane, opts).SavePNG(path)
}
