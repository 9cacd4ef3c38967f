//go:build !opengl

package compute

import (
	"errors"

	"github.com/san-kum/wavefield/internal/grid"
	"github.com/san-kum/wavefield/internal/wave"
)

// ErrNoOpenGL is returned by Init when the binary was built without the
// opengl tag.
var ErrNoOpenGL = errors.New("built without opengl support (use -tags opengl)")

type OpenGLBackend struct{}

func NewOpenGLBackend(count int) *OpenGLBackend {
	return &OpenGLBackend{}
}

func (g *OpenGLBackend) Name() string                      { return "opengl (not available)" }
func (g *OpenGLBackend) Available() bool                   { return false }
func (g *OpenGLBackend) Init(vertices []grid.Vertex) error { return ErrNoOpenGL }
func (g *OpenGLBackend) Cleanup()                          {}

func (g *OpenGLBackend) Displace(vertices []grid.Vertex, snap wave.Snapshot, out []float64) {
	NewCPUBackend(0).Displace(vertices, snap, out)
}
