// Package grid builds the fixed planar vertex lattice that the wave field
// displaces each frame.
package grid

import "fmt"

const (
	DefaultSegments = 128
	DefaultSize     = 10.0
)

// Vertex is an undisplaced point on the plane.
type Vertex struct {
	X, Z float64
}

// Plane is a square lattice of (Segments+1)² vertices centred on the origin,
// stored row-major: rows run along Z, columns along X.
type Plane struct {
	Segments int
	Size     float64
	Vertices []Vertex
}

// NewPlane lays out a Size×Size plane split into segments×segments quads.
func NewPlane(segments int, size float64) (*Plane, error) {
	if segments < 1 {
		return nil, fmt.Errorf("grid: segments must be positive, got %d", segments)
	}
	if size <= 0 {
		return nil, fmt.Errorf("grid: size must be positive, got %f", size)
	}

	n := segments + 1
	p := &Plane{
		Segments: segments,
		Size:     size,
		Vertices: make([]Vertex, 0, n*n),
	}

	step := size / float64(segments)
	half := size / 2
	for row := 0; row < n; row++ {
		z := -half + float64(row)*step
		for col := 0; col < n; col++ {
			p.Vertices = append(p.Vertices, Vertex{X: -half + float64(col)*step, Z: z})
		}
	}
	return p, nil
}

// Side is the number of vertices per axis.
func (p *Plane) Side() int { return p.Segments + 1 }

// Len is the total vertex count.
func (p *Plane) Len() int { return len(p.Vertices) }

// Index returns the slice index of (row, col).
func (p *Plane) Index(row, col int) int { return row*p.Side() + col }

// Nearest returns the index of the vertex closest to (x, z), clamped to the
// plane.
func (p *Plane) Nearest(x, z float64) int {
	step := p.Size / float64(p.Segments)
	half := p.Size / 2
	col := clampIndex(int((x+half)/step+0.5), p.Side())
	row := clampIndex(int((z+half)/step+0.5), p.Side())
	return p.Index(row, col)
}

// Strided returns the indices of every stride-th vertex on both axes.
// A stride below 1 is treated as 1.
func (p *Plane) Strided(stride int) []int {
	if stride < 1 {
		stride = 1
	}
	n := p.Side()
	out := make([]int, 0, (n/stride+1)*(n/stride+1))
	for row := 0; row < n; row += stride {
		for col := 0; col < n; col += stride {
			out = append(out, p.Index(row, col))
		}
	}
	return out
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
