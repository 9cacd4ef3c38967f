// Package tui is the plain ANSI renderer: a top-down heightmap of the field
// redrawn in place, with no terminal UI framework. It is a driver observer,
// so any loop that ticks the driver can feed it.
package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/san-kum/wavefield/internal/driver"
	"github.com/san-kum/wavefield/internal/grid"
)

const (
	DefaultWidth  = 64
	DefaultHeight = 24
	clearScreen   = "\033[2J\033[H"
	home          = "\033[H"
	hideCursor    = "\033[?25l"
	showCursor    = "\033[?25h"
)

// ramp runs from trough to crest.
var ramp = []rune(" .:-=+*#%@")

type LiveRenderer struct {
	out       io.Writer
	plane     *grid.Plane
	width     int
	height    int
	maxAmp    float64
	frameRate int
	lastFrame time.Time
	now       func() time.Time
	canvas    [][]rune
	cells     []int
	drawn     int
}

// NewLiveRenderer samples plane at width x height cells. Heights are shaded
// against maxAmp. frameRate caps redraws; zero redraws every frame.
func NewLiveRenderer(out io.Writer, plane *grid.Plane, width, height int, maxAmp float64, frameRate int) *LiveRenderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}

	// Each cell reads the vertex nearest its centre.
	cells := make([]int, width*height)
	half := plane.Size / 2
	for y := 0; y < height; y++ {
		z := -half + (float64(y)+0.5)*plane.Size/float64(height)
		for x := 0; x < width; x++ {
			vx := -half + (float64(x)+0.5)*plane.Size/float64(width)
			cells[y*width+x] = plane.Nearest(vx, z)
		}
	}

	return &LiveRenderer{
		out:       out,
		plane:     plane,
		width:     width,
		height:    height,
		maxAmp:    maxAmp,
		frameRate: frameRate,
		now:       time.Now,
		canvas:    canvas,
		cells:     cells,
	}
}

func (r *LiveRenderer) OnFrame(f *driver.Frame) {
	if r.frameRate > 0 {
		now := r.now()
		if now.Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
			return
		}
		r.lastFrame = now
	}

	r.draw(f.Heights)
	r.render(f)
}

// Frames is the number of redraws so far.
func (r *LiveRenderer) Frames() int { return r.drawn }

func (r *LiveRenderer) draw(heights []float64) {
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			r.canvas[y][x] = Shade(heights[r.cells[y*r.width+x]], r.maxAmp)
		}
	}
}

// Shade maps a height in [0, maxAmp] to a ramp character.
func Shade(h, maxAmp float64) rune {
	if maxAmp <= 0 || math.IsNaN(h) {
		return ramp[0]
	}
	i := int(h / maxAmp * float64(len(ramp)-1))
	if i < 0 {
		i = 0
	}
	if i >= len(ramp) {
		i = len(ramp) - 1
	}
	return ramp[i]
}

func (r *LiveRenderer) render(f *driver.Frame) {
	var b strings.Builder
	if r.drawn == 0 {
		b.WriteString(clearScreen)
	} else {
		b.WriteString(home)
	}
	b.WriteString(fmt.Sprintf("  %s  t=%.2fs\n", f.Display, f.Elapsed))
	b.WriteString("  +" + strings.Repeat("-", r.width) + "+\n")

	for _, row := range r.canvas {
		b.WriteString("  |")
		b.WriteString(string(row))
		b.WriteString("|\n")
	}

	b.WriteString("  +" + strings.Repeat("-", r.width) + "+\n")
	for i, l := range f.Layers {
		b.WriteString(fmt.Sprintf("  L%d amp=%.3f freq=%.3f speed=%.3f\n", i+1, l.Amplitude, l.Frequency, l.Speed))
	}

	io.WriteString(r.out, b.String())
	r.drawn++
}

func (r *LiveRenderer) Start() { io.WriteString(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { io.WriteString(r.out, showCursor) }
