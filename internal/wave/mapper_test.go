package wave

import (
	"math"
	"testing"

	"github.com/san-kum/wavefield/internal/clock"
)

func TestMapperScenarioThreeOClock(t *testing.T) {
	tuning := DefaultTuning()
	m := NewMapper(tuning, clock.Format{})
	p := m.Update(clock.Sample{Hours: 3})

	wantHour := clock.Midnight - math.Pi/2
	if math.Abs(p.Angles.Hour-wantHour) > 1e-15 {
		t.Fatalf("hour angle = %v, want %v", p.Angles.Hour, wantHour)
	}

	for i, pol := range Policies {
		want := tuning.Layer(i).Speed.Base + tuning.Layer(i).Speed.Span*pol.Shape(wantHour)
		if got := p.Layers[i].Speed; math.Abs(got-want) > 1e-12 {
			t.Errorf("layer %d speed = %v, want %v", i+1, got, want)
		}
	}

	// |sin(0)| = 0 and |cos(0)| = 1.
	if got := p.Layers[0].Speed; math.Abs(got-0.3) > 1e-12 {
		t.Errorf("layer 1 speed = %v, want 0.3", got)
	}
	if got := p.Layers[1].Speed; math.Abs(got-1.51) > 1e-12 {
		t.Errorf("layer 2 speed = %v, want 1.51", got)
	}
}

func TestMapperMidnight(t *testing.T) {
	m := NewMapper(DefaultTuning(), clock.Format{})
	p := m.Update(clock.Sample{})

	if p.Display != "12:00:00" {
		t.Errorf("Display = %q, want 12:00:00", p.Display)
	}
	// At Midnight = pi/2: |sin| = 1, |cos| = 0.
	l1, l2 := p.Layers[0], p.Layers[1]
	if math.Abs(l1.Amplitude-0.5) > 1e-12 || math.Abs(l1.Frequency-2.75) > 1e-12 || math.Abs(l1.Speed-1.8) > 1e-12 {
		t.Errorf("layer 1 = %+v", l1)
	}
	if math.Abs(l2.Amplitude-0.1) > 1e-12 || math.Abs(l2.Frequency-0.1) > 1e-12 || math.Abs(l2.Speed-0.01) > 1e-12 {
		t.Errorf("layer 2 = %+v", l2)
	}
	if l2.Rotation != math.Pi/4 || l1.Rotation != 0 {
		t.Errorf("rotations = %v, %v", l1.Rotation, l2.Rotation)
	}
}

func TestMapperWrapAroundContinuity(t *testing.T) {
	tuning := DefaultTuning()
	m := NewMapper(tuning, clock.Format{})

	before := m.Update(clock.Sample{Hours: 11, Minutes: 59, Seconds: 59, Millis: 999, PM: true}).Layers
	after := m.Update(clock.Sample{}).Layers

	perMs := struct{ second, minute, hour float64 }{
		second: clock.TwoPi / 60_000,
		minute: clock.TwoPi / (60 * 60_000),
		hour:   clock.TwoPi / (12 * 3_600_000),
	}

	for i := range before {
		lt := tuning.Layer(i)
		checks := []struct {
			name  string
			a, b  float64
			bound float64
		}{
			{"amplitude", before[i].Amplitude, after[i].Amplitude, math.Abs(lt.Amplitude.Span) * perMs.second},
			{"frequency", before[i].Frequency, after[i].Frequency, math.Abs(lt.Frequency.Span) * perMs.minute},
			{"speed", before[i].Speed, after[i].Speed, math.Abs(lt.Speed.Span) * perMs.hour},
		}
		for _, c := range checks {
			if d := math.Abs(c.a - c.b); d > c.bound*(1+1e-6)+1e-12 {
				t.Errorf("layer %d %s jumped %g across midnight, bound %g", i+1, c.name, d, c.bound)
			}
		}
	}
}

func TestMapperNonNegative(t *testing.T) {
	tunings := map[string]Tuning{
		"default": DefaultTuning(),
		"negative bases": {
			Layer1: LayerTuning{Amplitude: Range{-0.5, 0.4}, Frequency: Range{-1, 0.5}, Speed: Range{-1, 1}},
			Layer2: LayerTuning{Amplitude: Range{-0.1, 0.05}, Frequency: Range{-2, 1}, Speed: Range{0, 1}},
		},
		"negative spans": {
			Layer1: LayerTuning{Amplitude: Range{0.1, -0.5}, Frequency: Range{0.1, -3}, Speed: Range{0.1, -1}},
			Layer2: LayerTuning{Amplitude: Range{0.2, -0.9}, Frequency: Range{0.3, -2}, Speed: Range{0.1, -1}},
		},
	}

	for name, tuning := range tunings {
		t.Run(name, func(t *testing.T) {
			m := NewMapper(tuning, clock.Format{})
			for h := 0; h < 12; h++ {
				for mm := 0; mm < 60; mm += 7 {
					for s := 0; s < 60; s += 3 {
						p := m.Update(clock.Sample{Hours: h, Minutes: mm, Seconds: s, Millis: (s * 37) % 1000})
						for i, l := range p.Layers {
							if l.Amplitude < 0 || l.Frequency < 0 {
								t.Fatalf("%02d:%02d:%02d layer %d = %+v", h, mm, s, i+1, l)
							}
						}
					}
				}
			}
		})
	}
}

func TestMapperRecomputesEveryCall(t *testing.T) {
	m := NewMapper(DefaultTuning(), clock.Format{Meridiem: true})
	a := m.Update(clock.Sample{Hours: 1, Minutes: 2, Seconds: 3})
	b := m.Update(clock.Sample{Hours: 1, Minutes: 2, Seconds: 4, PM: true})

	if a.Layers == b.Layers {
		t.Error("layers did not change between readings")
	}
	if a.Display != "1:02:03 AM" || b.Display != "1:02:04 PM" {
		t.Errorf("displays = %q, %q", a.Display, b.Display)
	}
	if m.Layers() != b.Layers {
		t.Error("Layers() does not reflect the last update")
	}
}

func TestTuningMaxAmplitude(t *testing.T) {
	if got := DefaultTuning().MaxAmplitude(); math.Abs(got-1.1) > 1e-12 {
		t.Errorf("MaxAmplitude() = %v, want 1.1", got)
	}
	neg := Tuning{Layer1: LayerTuning{Amplitude: Range{-1, 0.5}}}
	if got := neg.MaxAmplitude(); got != 0 {
		t.Errorf("MaxAmplitude() = %v, want 0", got)
	}
}
