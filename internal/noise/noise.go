package noise

import "math"

// Lattice hash: fract(sin(dot(cell, hashDir)) * hashScale).
const hashScale = 43758.5453123

var hashDir = Vec2{12.9898, 78.233}

// Vec2 is a point in noise space.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2       { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Scale(s float64) Vec2  { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Offset(s float64) Vec2 { return Vec2{v.X + s, v.Y + s} }
func (v Vec2) Swap() Vec2            { return Vec2{v.Y, v.X} }
func (v Vec2) Dot(o Vec2) float64    { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Floor() Vec2           { return Vec2{math.Floor(v.X), math.Floor(v.Y)} }
func (v Vec2) Sub(o Vec2) Vec2       { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Rotate(sin, cos float64) Vec2 {
	return Vec2{cos*v.X - sin*v.Y, sin*v.X + cos*v.Y}
}

// Fract returns x - floor(x), always in [0, 1).
func Fract(x float64) float64 {
	f := x - math.Floor(x)
	if f >= 1 {
		return 0
	}
	return f
}

// Hash maps an integer lattice cell to a pseudo-random value in [0, 1).
// Negative cells are valid.
func Hash(cell Vec2) float64 {
	return Fract(math.Sin(cell.Dot(hashDir)) * hashScale)
}

// smooth is the cubic Hermite curve 3f² - 2f³.
func smooth(f float64) float64 {
	return f * f * (3 - 2*f)
}

func mix(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Value samples the noise field at p. The result lies in [0, 1).
func Value(p Vec2) float64 {
	i := p.Floor()
	f := p.Sub(i)

	a := Hash(i)
	b := Hash(Vec2{i.X + 1, i.Y})
	c := Hash(Vec2{i.X, i.Y + 1})
	d := Hash(Vec2{i.X + 1, i.Y + 1})

	ux, uy := smooth(f.X), smooth(f.Y)

	return mix(a, b, ux) + (c-a)*uy*(1-ux) + (d-b)*ux*uy
}
