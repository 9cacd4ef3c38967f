package driver

import (
	"math"

	"github.com/san-kum/wavefield/internal/clock"
	"github.com/san-kum/wavefield/internal/wave"
)

const (
	MinPointSize     = 1.0
	MaxPointSize     = 10.0
	DefaultPointSize = 2.0
	DefaultTint      = "#2f8fff"
)

// Appearance is passed through to the renderer untouched apart from
// clamping.
type Appearance struct {
	PointSize float64
	Tint      string
}

func DefaultAppearance() Appearance {
	return Appearance{PointSize: DefaultPointSize, Tint: DefaultTint}
}

// Clamped returns a with PointSize inside [MinPointSize, MaxPointSize] and an
// empty tint replaced by DefaultTint.
func (a Appearance) Clamped() Appearance {
	if math.IsNaN(a.PointSize) {
		a.PointSize = DefaultPointSize
	}
	a.PointSize = math.Min(MaxPointSize, math.Max(MinPointSize, a.PointSize))
	if a.Tint == "" {
		a.Tint = DefaultTint
	}
	return a
}

// Frame is the output of one Tick. Heights is row-major, one entry per grid
// vertex, and is owned by the Driver: it is overwritten by the next Tick.
// Use Driver.Capture to keep a frame.
type Frame struct {
	Index      uint64
	Layers     wave.Layers
	Angles     clock.Angles
	Display    string
	Wall       clock.Sample
	Elapsed    float64
	Interval   float64
	Heights    []float64
	Appearance Appearance
}

// Snapshot is the vertex-pass input that produced f.
func (f *Frame) Snapshot() wave.Snapshot {
	return wave.Snapshot{Layers: f.Layers, Elapsed: f.Elapsed}
}

// Observer is notified after every Tick.
type Observer interface {
	OnFrame(f *Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(f *Frame)

func (fn ObserverFunc) OnFrame(f *Frame) { fn(f) }
