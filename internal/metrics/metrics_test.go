package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/wavefield/internal/clock"
	"github.com/san-kum/wavefield/internal/driver"
	"github.com/san-kum/wavefield/internal/grid"
)

func TestFrameRate(t *testing.T) {
	r := NewFrameRate(4)
	if r.Value() != 0 {
		t.Errorf("empty FrameRate = %v, want 0", r.Value())
	}

	for i := 0; i < 10; i++ {
		r.Observe(&driver.Frame{Interval: 1.0 / 60})
	}
	if math.Abs(r.Value()-60) > 1e-9 {
		t.Errorf("FrameRate = %v, want 60", r.Value())
	}

	for i := 0; i < 4; i++ {
		r.Observe(&driver.Frame{Interval: 0.1})
	}
	if math.Abs(r.Value()-10) > 1e-9 {
		t.Errorf("FrameRate after window slide = %v, want 10", r.Value())
	}

	r.Observe(&driver.Frame{Interval: 0})
	if math.Abs(r.Value()-10) > 1e-9 {
		t.Error("zero interval should be ignored")
	}

	r.Reset()
	if r.Value() != 0 {
		t.Errorf("FrameRate after Reset = %v, want 0", r.Value())
	}
}

func TestPeakHeight(t *testing.T) {
	p := NewPeakHeight()
	p.Observe(&driver.Frame{Heights: []float64{0.1, 0.7, 0.3}})
	p.Observe(&driver.Frame{Heights: []float64{0.2, 0.4}})
	if p.Value() != 0.7 {
		t.Errorf("PeakHeight = %v, want 0.7", p.Value())
	}
	p.Reset()
	if p.Value() != 0 {
		t.Errorf("PeakHeight after Reset = %v, want 0", p.Value())
	}
}

func TestMeanAmplitude(t *testing.T) {
	m := NewMeanAmplitude()
	m.Observe(&driver.Frame{Heights: []float64{0.2, 0.4}})
	m.Observe(&driver.Frame{Heights: []float64{0.6, 0.6, 0.6}})
	m.Observe(&driver.Frame{})
	if math.Abs(m.Value()-0.45) > 1e-12 {
		t.Errorf("MeanAmplitude = %v, want 0.45", m.Value())
	}
}

func TestSetAsDriverObserver(t *testing.T) {
	plane, err := grid.NewPlane(8, grid.DefaultSize)
	if err != nil {
		t.Fatal(err)
	}
	d, err := driver.New(driver.Options{Plane: plane})
	if err != nil {
		t.Fatal(err)
	}
	set := Default()
	d.AddObserver(set)

	for i := 1; i <= 5; i++ {
		d.Tick(float64(i)/60, 1.0/60, clock.Sample{Hours: 3, Seconds: i})
	}

	fps, ok := set.Get("fps")
	if !ok || math.Abs(fps-60) > 1e-6 {
		t.Errorf("fps = %v (found %v), want 60", fps, ok)
	}
	peak, _ := set.Get("peak_height")
	if peak <= 0 || peak > 1.1 {
		t.Errorf("peak_height = %v, want in (0, 1.1]", peak)
	}
	if _, ok := set.Get("missing"); ok {
		t.Error("Get(missing) reported found")
	}
	if len(set.Values()) != 3 {
		t.Errorf("Values() = %v", set.Values())
	}
	if names := set.Names(); names[0] != "fps" {
		t.Errorf("Names() = %v", names)
	}

	set.Reset()
	if v, _ := set.Get("mean_amplitude"); v != 0 {
		t.Errorf("mean_amplitude after Reset = %v", v)
	}
}
