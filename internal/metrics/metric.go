// Package metrics collects per-frame statistics from the driver.
package metrics

import (
	"sort"

	"github.com/san-kum/wavefield/internal/driver"
)

type Metric interface {
	Name() string
	Observe(f *driver.Frame)
	Value() float64
	Reset()
}

// Set fans one frame out to several metrics. It is a driver.Observer.
type Set struct {
	metrics []Metric
}

func NewSet(ms ...Metric) *Set {
	return &Set{metrics: ms}
}

// Default is the FPS counter plus the height statistics.
func Default() *Set {
	return NewSet(NewFrameRate(30), NewPeakHeight(), NewMeanAmplitude())
}

func (s *Set) Add(m Metric) { s.metrics = append(s.metrics, m) }

func (s *Set) OnFrame(f *driver.Frame) {
	for _, m := range s.metrics {
		m.Observe(f)
	}
}

func (s *Set) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Get returns the named metric's value.
func (s *Set) Get(name string) (float64, bool) {
	for _, m := range s.metrics {
		if m.Name() == name {
			return m.Value(), true
		}
	}
	return 0, false
}

// Values returns every metric keyed by name.
func (s *Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Set) Names() []string {
	names := make([]string, 0, len(s.metrics))
	for _, m := range s.metrics {
		names = append(names, m.Name())
	}
	sort.Strings(names)
	return names
}
