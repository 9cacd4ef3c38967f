package driver

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/wavefield/internal/clock"
	"github.com/san-kum/wavefield/internal/compute"
	"github.com/san-kum/wavefield/internal/grid"
	"github.com/san-kum/wavefield/internal/wave"
)

func newTestDriver(t testing.TB, segments int) *Driver {
	t.Helper()
	plane, err := grid.NewPlane(segments, grid.DefaultSize)
	if err != nil {
		t.Fatalf("NewPlane: %v", err)
	}
	d, err := New(Options{Plane: plane})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func TestNewRequiresPlane(t *testing.T) {
	if _, err := New(Options{}); !errors.Is(err, ErrNoPlane) {
		t.Errorf("New() error = %v, want ErrNoPlane", err)
	}
}

func TestTickProducesOneHeightPerVertex(t *testing.T) {
	d := newTestDriver(t, grid.DefaultSegments)
	f := d.Tick(0.5, 1.0/60, clock.Sample{Hours: 3})

	if len(f.Heights) != 129*129 {
		t.Fatalf("len(Heights) = %d, want %d", len(f.Heights), 129*129)
	}
	snap := f.Snapshot()
	for _, i := range []int{0, 64, 129 * 64, len(f.Heights) - 1} {
		v := d.Plane().Vertices[i]
		if want := snap.Height(v.X, v.Z); f.Heights[i] != want {
			t.Errorf("Heights[%d] = %v, want %v", i, f.Heights[i], want)
		}
	}
}

func TestTickMatchesMapper(t *testing.T) {
	d := newTestDriver(t, 4)
	wall := clock.Sample{Hours: 0, Minutes: 5, Seconds: 9, Millis: 120}
	f := d.Tick(1, 0.016, wall)

	want := wave.NewMapper(wave.DefaultTuning(), clock.Format{}).Update(wall)
	if f.Layers != want.Layers {
		t.Errorf("Layers = %+v, want %+v", f.Layers, want.Layers)
	}
	if f.Display != "12:05:09" {
		t.Errorf("Display = %q, want %q", f.Display, "12:05:09")
	}
	if f.Angles != want.Angles {
		t.Errorf("Angles = %+v, want %+v", f.Angles, want.Angles)
	}
}

func TestTickElapsedNeverRegresses(t *testing.T) {
	d := newTestDriver(t, 2)

	tests := []struct {
		in   float64
		want float64
	}{
		{1.0, 1.0},
		{2.5, 2.5},
		{2.0, 2.5},
		{math.NaN(), 2.5},
		{3.0, 3.0},
	}
	for _, tt := range tests {
		f := d.Tick(tt.in, 0.016, clock.Sample{})
		if f.Elapsed != tt.want {
			t.Errorf("Tick(%v).Elapsed = %v, want %v", tt.in, f.Elapsed, tt.want)
		}
	}
	if d.Frames() != uint64(len(tests)) {
		t.Errorf("Frames() = %d, want %d", d.Frames(), len(tests))
	}
}

func TestTickNegativeIntervalClamped(t *testing.T) {
	d := newTestDriver(t, 2)
	if f := d.Tick(1, -0.5, clock.Sample{}); f.Interval != 0 {
		t.Errorf("Interval = %v, want 0", f.Interval)
	}
}

func TestAppearancePassThrough(t *testing.T) {
	tests := []struct {
		name string
		in   Appearance
		want Appearance
	}{
		{"unchanged", Appearance{PointSize: 3, Tint: "#ff0000"}, Appearance{PointSize: 3, Tint: "#ff0000"}},
		{"too small", Appearance{PointSize: 0.2, Tint: "#00ff00"}, Appearance{PointSize: MinPointSize, Tint: "#00ff00"}},
		{"too large", Appearance{PointSize: 40, Tint: "#0000ff"}, Appearance{PointSize: MaxPointSize, Tint: "#0000ff"}},
		{"empty tint", Appearance{PointSize: 2}, Appearance{PointSize: 2, Tint: DefaultTint}},
	}

	d := newTestDriver(t, 2)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d.SetAppearance(tt.in)
			if got := d.Tick(0, 0, clock.Sample{}).Appearance; got != tt.want {
				t.Errorf("Appearance = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestObserversSeeEveryFrame(t *testing.T) {
	d := newTestDriver(t, 2)
	var seen []uint64
	d.AddObserver(ObserverFunc(func(f *Frame) { seen = append(seen, f.Index) }))

	for i := 0; i < 3; i++ {
		d.Tick(float64(i), 0.016, clock.Sample{})
	}
	if len(seen) != 3 || seen[0] != 0 || seen[2] != 2 {
		t.Errorf("observer saw %v, want [0 1 2]", seen)
	}
}

func TestCaptureSurvivesNextTick(t *testing.T) {
	d := newTestDriver(t, 8)
	d.Tick(1, 0.016, clock.Sample{Hours: 1})
	kept := d.Capture()
	first := kept.Heights[10]

	d.Tick(50, 0.016, clock.Sample{Hours: 7, Minutes: 30})
	if kept.Heights[10] != first {
		t.Errorf("captured height changed from %v to %v", first, kept.Heights[10])
	}
	if &kept.Heights[0] == &d.Last().Heights[0] {
		t.Error("Capture shares the live buffer")
	}
	d.Release(kept)
}

func TestSetBackend(t *testing.T) {
	d := newTestDriver(t, 2)
	serial := compute.NewCPUBackend(1)
	d.SetBackend(serial)
	if d.Backend() != compute.Backend(serial) {
		t.Errorf("Backend() = %s, want %s", d.Backend().Name(), serial.Name())
	}
	d.SetBackend(nil)
	if d.Backend() == nil {
		t.Error("SetBackend(nil) cleared the backend")
	}
}

func TestRunSteps(t *testing.T) {
	d := newTestDriver(t, 2)
	start := time.Date(2024, 1, 1, 2, 59, 59, 0, time.Local)

	var frames []Frame
	err := d.RunSteps(context.Background(), Steps{Start: start, Dt: 0.5, Count: 4}, func(f Frame) bool {
		frames = append(frames, f)
		return true
	})
	if err != nil {
		t.Fatalf("RunSteps: %v", err)
	}
	if len(frames) != 4 {
		t.Fatalf("got %d frames, want 4", len(frames))
	}
	if frames[3].Elapsed != 1.5 {
		t.Errorf("last Elapsed = %v, want 1.5", frames[3].Elapsed)
	}
	if frames[0].Display != "2:59:59" || frames[2].Display != "3:00:00" {
		t.Errorf("displays = %q, %q", frames[0].Display, frames[2].Display)
	}
}

func TestRunStepsStopsEarly(t *testing.T) {
	d := newTestDriver(t, 2)
	n := 0
	err := d.RunSteps(context.Background(), Steps{Dt: 1, Count: 10}, func(Frame) bool {
		n++
		return n < 3
	})
	if err != nil || n != 3 {
		t.Errorf("RunSteps stopped after %d frames, err %v", n, err)
	}
}

func TestRunStepsValidation(t *testing.T) {
	d := newTestDriver(t, 2)
	for _, s := range []Steps{{Dt: 0, Count: 1}, {Dt: 1, Count: 0}} {
		if err := d.RunSteps(context.Background(), s, nil); !errors.Is(err, ErrInvalidSteps) {
			t.Errorf("RunSteps(%+v) error = %v, want ErrInvalidSteps", s, err)
		}
	}
}

func TestRunHonoursContext(t *testing.T) {
	d := newTestDriver(t, 2)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := d.Run(ctx, clock.Fixed{T: time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)}, 200, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() error = %v, want deadline exceeded", err)
	}
	if d.Frames() == 0 {
		t.Error("Run produced no frames")
	}
}

func TestRunInvalidFPS(t *testing.T) {
	d := newTestDriver(t, 2)
	if err := d.Run(context.Background(), clock.System{}, 0, nil); !errors.Is(err, ErrInvalidFPS) {
		t.Errorf("Run(fps=0) error = %v, want ErrInvalidFPS", err)
	}
}

func TestHeightPool(t *testing.T) {
	p := NewHeightPool(4)
	h := p.GetAndCopy([]float64{1, 2, 3, 4})
	if h[2] != 3 {
		t.Errorf("GetAndCopy()[2] = %v, want 3", h[2])
	}
	p.Put(h)
	p.Put(make([]float64, 3))
	if got := p.Get(); len(got) != 4 {
		t.Errorf("len(Get()) = %d, want 4", len(got))
	}
}

func TestExplicitZeroTuningIsFlat(t *testing.T) {
	plane, err := grid.NewPlane(8, grid.DefaultSize)
	if err != nil {
		t.Fatalf("NewPlane: %v", err)
	}
	d, err := New(Options{Plane: plane, Tuning: &wave.Tuning{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	f := d.Tick(12.5, 1.0/60, clock.Sample{Hours: 7, Minutes: 20, Seconds: 41})
	if f.Layers != (wave.Layers{}) {
		t.Errorf("Layers = %+v, want all zero", f.Layers)
	}
	for i, h := range f.Heights {
		if h != 0 {
			t.Fatalf("Heights[%d] = %v, want 0", i, h)
		}
	}
	if got := d.Mapper().Tuning(); got != (wave.Tuning{}) {
		t.Errorf("Tuning = %+v, want zero", got)
	}
}

func TestNilTuningUsesDefault(t *testing.T) {
	d := newTestDriver(t, 2)
	if got := d.Mapper().Tuning(); got != wave.DefaultTuning() {
		t.Errorf("Tuning = %+v, want DefaultTuning", got)
	}
}
