package viz

import (
	"math"
	"sort"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

const (
	MinZoom = 0.25
	MaxZoom = 6.0
)

// Camera orbits the origin and projects to the canvas.
type Camera struct {
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

// NewCamera looks down on the plane from above and in front, the way the
// field is framed in a window.
func NewCamera() *Camera {
	return &Camera{Distance: 20, Near: 0.1, RotX: 0.9, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }

// ZoomTarget is the next zoom step in or out, clamped to [MinZoom, MaxZoom].
func (c *Camera) ZoomTarget(in bool) float64 {
	if in {
		return math.Min(MaxZoom, c.Zoom*1.2)
	}
	return math.Max(MinZoom, c.Zoom/1.2)
}

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts world coordinates to dot coordinates on a sw x sh
// surface. Returns x, y, depth, and visibility.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	dist := c.Distance
	if rot.Z >= dist-c.Near {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	pScale := minDim / 12.0
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

// Point is one vertex of the cloud with its normalised height in [0, 1].
type Point struct {
	Pos   Vec3
	Level float64
}

type projected struct {
	x, y  int
	depth float64
	level float64
}

// RenderPoints draws the cloud far to near so nearer points set the cell
// level. size is the point size; sizes above 1 stamp a square of dots.
func RenderPoints(c *Canvas, pts []Point, cam *Camera, size float64) {
	if c == nil || cam == nil {
		return
	}
	cw, ch := c.Dots()
	proj := make([]projected, 0, len(pts))
	for _, p := range pts {
		x, y, d, ok := cam.Project(p.Pos, cw, ch)
		if ok {
			proj = append(proj, projected{x, y, d, p.Level})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })

	r := int(size/4 + 0.5)
	for _, p := range proj {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				c.Plot(p.x+dx, p.y+dy, p.level)
			}
		}
	}
}
