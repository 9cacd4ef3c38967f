package metrics

import (
	"math"

	"github.com/san-kum/wavefield/internal/driver"
)

// PeakHeight is the highest vertex seen since the last Reset.
type PeakHeight struct {
	name    string
	peak    float64
	samples int
}

func NewPeakHeight() *PeakHeight {
	return &PeakHeight{name: "peak_height"}
}

func (p *PeakHeight) Name() string { return p.name }

func (p *PeakHeight) Observe(f *driver.Frame) {
	for _, h := range f.Heights {
		if p.samples == 0 || h > p.peak {
			p.peak = h
		}
		p.samples++
	}
}

func (p *PeakHeight) Value() float64 { return p.peak }

func (p *PeakHeight) Reset() {
	p.peak = 0
	p.samples = 0
}

// MeanAmplitude averages the mean vertex height of every frame.
type MeanAmplitude struct {
	name   string
	total  float64
	frames int
}

func NewMeanAmplitude() *MeanAmplitude {
	return &MeanAmplitude{name: "mean_amplitude"}
}

func (m *MeanAmplitude) Name() string { return m.name }

func (m *MeanAmplitude) Observe(f *driver.Frame) {
	if len(f.Heights) == 0 {
		return
	}
	var sum float64
	for _, h := range f.Heights {
		sum += math.Abs(h)
	}
	m.total += sum / float64(len(f.Heights))
	m.frames++
}

func (m *MeanAmplitude) Value() float64 {
	if m.frames == 0 {
		return 0
	}
	return m.total / float64(m.frames)
}

func (m *MeanAmplitude) Reset() {
	m.total = 0
	m.frames = 0
}
