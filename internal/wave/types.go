package wave

// Layer is one noise contribution to the field.
type Layer struct {
	Frequency float64
	Amplitude float64
	Speed     float64
	Rotation  float64 // radians; only layer 2 rotates
}

// Layers is the fixed pair of wave layers.
type Layers [2]Layer

// Range is a base value plus a span scaled by a [0, 1] shape.
type Range struct {
	Base float64 `yaml:"base"`
	Span float64 `yaml:"span"`
}

// At returns Base + Span*shape.
func (r Range) At(shape float64) float64 {
	return r.Base + r.Span*shape
}

// LayerTuning holds the ranges for one layer.
type LayerTuning struct {
	Amplitude Range `yaml:"amplitude"`
	Frequency Range `yaml:"frequency"`
	Speed     Range `yaml:"speed"`
}

// Tuning holds the ranges for both layers. The values are cosmetic.
type Tuning struct {
	Layer1 LayerTuning `yaml:"layer1"`
	Layer2 LayerTuning `yaml:"layer2"`
}

// Layer returns the tuning for layer index i (0 or 1).
func (t Tuning) Layer(i int) LayerTuning {
	if i == 0 {
		return t.Layer1
	}
	return t.Layer2
}

// DefaultTuning returns the stock ranges.
func DefaultTuning() Tuning {
	return Tuning{
		Layer1: LayerTuning{
			Amplitude: Range{Base: 0.1, Span: 0.4},
			Frequency: Range{Base: 0.25, Span: 2.5},
			Speed:     Range{Base: 0.3, Span: 1.5},
		},
		Layer2: LayerTuning{
			Amplitude: Range{Base: 0.1, Span: 0.5},
			Frequency: Range{Base: 0.1, Span: 2.75},
			Speed:     Range{Base: 0.01, Span: 1.5},
		},
	}
}

// MaxAmplitude is the largest height the tuning can produce. Noise values
// are below 1, so the sum of the amplitude ceilings bounds |z|.
func (t Tuning) MaxAmplitude() float64 {
	return rangeMax(t.Layer1.Amplitude) + rangeMax(t.Layer2.Amplitude)
}

func rangeMax(r Range) float64 {
	lo, hi := r.Base, r.Base+r.Span
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi < 0 {
		return 0
	}
	return hi
}
