package wave

import (
	"math"

	"github.com/san-kum/wavefield/internal/noise"
)

// Displace returns the height of the field at p after elapsed seconds.
//
//	z = a1·noise(p·f1 + t·s1) + a2·noise(R(π/4)·swap(p)·f2 − t·s2·0.6)
func Displace(p noise.Vec2, elapsed float64, layers Layers) float64 {
	var z float64
	for i := range layers {
		z += layers[i].contribution(p, elapsed, &Policies[i])
	}
	return z
}

func (l *Layer) contribution(p noise.Vec2, t float64, pol *Policy) float64 {
	if l.Amplitude == 0 {
		return 0
	}
	q := p
	if pol.Swap {
		q = q.Swap()
	}
	if l.Rotation != 0 {
		s, c := math.Sincos(l.Rotation)
		q = q.Rotate(s, c)
	}
	q = q.Scale(l.Frequency).Offset(pol.TimeSign * t * l.Speed * pol.TimeScale)
	return l.Amplitude * noise.Value(q)
}

// Snapshot is the immutable input of one vertex pass.
type Snapshot struct {
	Layers  Layers
	Elapsed float64
}

// Height evaluates the field at (x, z) for this snapshot.
func (s Snapshot) Height(x, z float64) float64 {
	return Displace(noise.Vec2{X: x, Y: z}, s.Elapsed, s.Layers)
}
