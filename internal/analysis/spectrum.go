package analysis

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/window"

	"github.com/san-kum/wavefield/internal/driver"
)

// SpectrumOptions samples one vertex while a driver steps offline.
type SpectrumOptions struct {
	Steps  driver.Steps
	Vertex int
	// Hann applies a Hann window before the transform.
	Hann bool
}

type SpectrumResult struct {
	Samples []float64 // vertex height per frame
	Power   []float64 // magnitude of bins 0..N/2
	BinHz   float64   // width of one bin
	Peak    int       // strongest non-DC bin
}

// PeakHz is the dominant temporal frequency of the vertex height.
func (r *SpectrumResult) PeakHz() float64 { return float64(r.Peak) * r.BinHz }

// Spectrum runs d for opts.Steps and transforms the height of one vertex.
func Spectrum(ctx context.Context, d *driver.Driver, opts SpectrumOptions) (*SpectrumResult, error) {
	if opts.Vertex < 0 || opts.Vertex >= d.Plane().Len() {
		return nil, fmt.Errorf("analysis: vertex %d outside [0, %d)", opts.Vertex, d.Plane().Len())
	}
	samples := make([]float64, 0, opts.Steps.Count)
	err := d.RunSteps(ctx, opts.Steps, func(f driver.Frame) bool {
		samples = append(samples, f.Heights[opts.Vertex])
		return true
	})
	if err != nil {
		return nil, err
	}
	return PowerSpectrum(samples, opts.Steps.Dt, opts.Hann), nil
}

// PowerSpectrum transforms samples taken dt seconds apart. The mean is
// removed first so the peak is never the DC bin.
func PowerSpectrum(samples []float64, dt float64, hann bool) *SpectrumResult {
	res := &SpectrumResult{Samples: samples}
	n := len(samples)
	if n < 2 || dt <= 0 {
		return res
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)

	x := make([]float64, n)
	for i, v := range samples {
		x[i] = v - mean
	}
	if hann {
		x = window.Hann(x)
	}

	coeffs := fft.FFTReal(x)
	res.Power = make([]float64, n/2+1)
	for i := range res.Power {
		res.Power[i] = cmplx.Abs(coeffs[i])
	}
	res.BinHz = 1 / (float64(n) * dt)

	best := -1.0
	for i := 1; i < len(res.Power); i++ {
		if res.Power[i] > best {
			best, res.Peak = res.Power[i], i
		}
	}
	return res
}

// Decibels converts Power to dB relative to the strongest bin.
func (r *SpectrumResult) Decibels() []float64 {
	out := make([]float64, len(r.Power))
	peak := 0.0
	for _, p := range r.Power {
		peak = math.Max(peak, p)
	}
	if peak == 0 {
		return out
	}
	for i, p := range r.Power {
		out[i] = 20 * math.Log10(math.Max(p, 1e-12)/peak)
	}
	return out
}
