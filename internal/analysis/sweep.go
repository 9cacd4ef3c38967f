package analysis

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/wavefield/internal/clock"
	"github.com/san-kum/wavefield/internal/wave"
)

var ErrInvalidSweep = errors.New("analysis: invalid sweep")

const (
	DefaultSweepSpan = 12 * time.Hour
	DefaultSweepStep = time.Minute
)

// SweepOptions describes a walk of the wall clock through the mapper.
// Zero Span and Step take the defaults; a nil Tuning takes
// wave.DefaultTuning.
type SweepOptions struct {
	Tuning *wave.Tuning
	Start  time.Time
	Span   time.Duration
	Step   time.Duration
}

// Series is one parameter sampled along a sweep.
type Series struct {
	Name    string
	Values  []float64
	Mean    float64
	StdDev  float64
	Min     float64
	Max     float64
	MaxJump float64 // largest change between neighbouring samples
}

type SweepPoint struct {
	Wall   clock.Sample
	Layers wave.Layers
}

type SweepResult struct {
	Points []SweepPoint
	Series []Series
	Step   time.Duration
}

// seriesNames is the order of Series in a SweepResult.
var seriesNames = []string{
	"l1.amplitude", "l1.frequency", "l1.speed",
	"l2.amplitude", "l2.frequency", "l2.speed",
}

func layerValue(l wave.Layer, field int) float64 {
	switch field {
	case 0:
		return l.Amplitude
	case 1:
		return l.Frequency
	default:
		return l.Speed
	}
}

// Sweep samples the mapper from Start to Start+Span inclusive.
func Sweep(opts SweepOptions) (*SweepResult, error) {
	if opts.Span == 0 {
		opts.Span = DefaultSweepSpan
	}
	if opts.Step == 0 {
		opts.Step = DefaultSweepStep
	}
	if opts.Span < 0 || opts.Step < 0 {
		return nil, fmt.Errorf("%w: span=%s step=%s", ErrInvalidSweep, opts.Span, opts.Step)
	}
	tuning := wave.DefaultTuning()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}

	n := int(opts.Span/opts.Step) + 1
	m := wave.NewMapper(tuning, clock.Format{})
	res := &SweepResult{
		Points: make([]SweepPoint, 0, n),
		Series: make([]Series, len(seriesNames)),
		Step:   opts.Step,
	}
	for i := range res.Series {
		res.Series[i] = Series{Name: seriesNames[i], Values: make([]float64, 0, n)}
	}

	for i := 0; i < n; i++ {
		s := clock.FromTime(opts.Start.Add(time.Duration(i) * opts.Step))
		p := m.Update(s)
		res.Points = append(res.Points, SweepPoint{Wall: s, Layers: p.Layers})
		for j := range res.Series {
			v := layerValue(p.Layers[j/3], j%3)
			res.Series[j].Values = append(res.Series[j].Values, v)
		}
	}

	for i := range res.Series {
		summarize(&res.Series[i])
	}
	return res, nil
}

func summarize(s *Series) {
	if len(s.Values) == 0 {
		return
	}
	s.Mean = stat.Mean(s.Values, nil)
	if len(s.Values) > 1 {
		s.StdDev = stat.StdDev(s.Values, nil)
	}
	s.Min = floats.Min(s.Values)
	s.Max = floats.Max(s.Values)

	if len(s.Values) > 1 {
		diffs := make([]float64, len(s.Values)-1)
		for i := 1; i < len(s.Values); i++ {
			diffs[i-1] = math.Abs(s.Values[i] - s.Values[i-1])
		}
		s.MaxJump = floats.Max(diffs)
	}
}

// Get returns the named series, or nil.
func (r *SweepResult) Get(name string) *Series {
	for i := range r.Series {
		if r.Series[i].Name == name {
			return &r.Series[i]
		}
	}
	return nil
}

// MaxJump is the largest neighbour-to-neighbour change across all series.
func (r *SweepResult) MaxJump() float64 {
	jump := 0.0
	for _, s := range r.Series {
		jump = math.Max(jump, s.MaxJump)
	}
	return jump
}

// Plot draws one chart per parameter kind with both layers overlaid.
func (r *SweepResult) Plot(width, height int) string {
	if len(r.Points) == 0 {
		return ""
	}
	var sb strings.Builder
	for field, kind := range []string{"amplitude", "frequency", "speed"} {
		l1 := downsample(r.Series[field].Values, width)
		l2 := downsample(r.Series[3+field].Values, width)
		sb.WriteString(asciigraph.PlotMany([][]float64{l1, l2},
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption(kind+" (l1, l2)"),
			asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Magenta),
		))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// Report is a plain table of the series statistics.
func (r *SweepResult) Report() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d samples, step %s\n\n", len(r.Points), r.Step)
	fmt.Fprintf(&sb, "%-14s %9s %9s %9s %9s %9s\n", "param", "mean", "stddev", "min", "max", "max jump")
	for _, s := range r.Series {
		fmt.Fprintf(&sb, "%-14s %9.4f %9.4f %9.4f %9.4f %9.4f\n", s.Name, s.Mean, s.StdDev, s.Min, s.Max, s.MaxJump)
	}
	return sb.String()
}

// downsample keeps at most n evenly spaced values.
func downsample(v []float64, n int) []float64 {
	if n <= 0 || len(v) <= n {
		return v
	}
	if n == 1 {
		return v[:1]
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = v[i*(len(v)-1)/(n-1)]
	}
	return out
}
