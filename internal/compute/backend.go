package compute

import (
	"fmt"

	"github.com/san-kum/wavefield/internal/grid"
	"github.com/san-kum/wavefield/internal/wave"
)

// Backend runs the per-vertex displacement pass.
type Backend interface {
	Name() string
	Available() bool
	// Displace writes the height of vertices[i] into out[i]. out must be at
	// least as long as vertices.
	Displace(vertices []grid.Vertex, snap wave.Snapshot, out []float64)
	Cleanup()
}

// Names lists the backends accepted by New.
var Names = []string{"auto", "cpu", "serial", "opengl"}

// New returns the named backend. "auto" prefers an initialised OpenGL
// backend when vertices is non-nil and a GL context is current, else CPU.
func New(name string, vertices []grid.Vertex) (Backend, error) {
	switch name {
	case "", "auto":
		return AutoSelectBackend(vertices), nil
	case "cpu":
		return NewCPUBackend(0), nil
	case "serial":
		return NewCPUBackend(1), nil
	case "opengl":
		gl := NewOpenGLBackend(len(vertices))
		if err := gl.Init(vertices); err != nil {
			return nil, fmt.Errorf("compute: opengl backend: %w", err)
		}
		return gl, nil
	default:
		return nil, fmt.Errorf("compute: unknown backend %q (available: %v)", name, Names)
	}
}

// AutoSelectBackend picks the best available backend.
func AutoSelectBackend(vertices []grid.Vertex) Backend {
	if vertices != nil {
		gl := NewOpenGLBackend(len(vertices))
		if err := gl.Init(vertices); err == nil && gl.Available() {
			return gl
		}
	}
	return NewCPUBackend(0)
}
