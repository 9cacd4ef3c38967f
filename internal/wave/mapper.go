package wave

import (
	"math"

	"github.com/san-kum/wavefield/internal/clock"
)

// Params is the mapper output for one frame.
type Params struct {
	Layers  Layers
	Angles  clock.Angles
	Display string
}

// Mapper converts clock readings into layer parameters.
type Mapper struct {
	tuning Tuning
	format clock.Format
	layers Layers
}

func NewMapper(t Tuning, f clock.Format) *Mapper {
	m := &Mapper{tuning: t, format: f}
	for i := range m.layers {
		m.layers[i].Rotation = Policies[i].Rotation
	}
	return m
}

func (m *Mapper) Tuning() Tuning           { return m.tuning }
func (m *Mapper) SetTuning(t Tuning)       { m.tuning = t }
func (m *Mapper) Format() clock.Format     { return m.format }
func (m *Mapper) SetFormat(f clock.Format) { m.format = f }

// Layers returns a copy of the most recent layer values.
func (m *Mapper) Layers() Layers { return m.layers }

// Update recomputes both layers from now. Amplitude and frequency never go
// below zero, whatever the tuning.
func (m *Mapper) Update(now clock.Sample) Params {
	angles := clock.AnglesOf(now)
	w := angles.Wrapped()

	for i := range m.layers {
		pol := &Policies[i]
		lt := m.tuning.Layer(i)
		l := &m.layers[i]

		l.Amplitude = math.Max(0, lt.Amplitude.At(pol.Shape(w.Second)))
		l.Frequency = math.Max(0, lt.Frequency.At(pol.Shape(w.Minute)))
		l.Speed = lt.Speed.At(pol.Shape(w.Hour))
		l.Rotation = pol.Rotation
	}

	return Params{
		Layers:  m.layers,
		Angles:  angles,
		Display: m.format.Display(now),
	}
}
