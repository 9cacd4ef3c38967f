package compute

import (
	"testing"

	"github.com/san-kum/wavefield/internal/clock"
	"github.com/san-kum/wavefield/internal/grid"
	"github.com/san-kum/wavefield/internal/wave"
)

func testSnapshot() wave.Snapshot {
	m := wave.NewMapper(wave.DefaultTuning(), clock.Format{})
	p := m.Update(clock.Sample{Hours: 10, Minutes: 8, Seconds: 30, Millis: 500})
	return wave.Snapshot{Layers: p.Layers, Elapsed: 42.25}
}

func testPlane(t testing.TB, segments int) *grid.Plane {
	t.Helper()
	p, err := grid.NewPlane(segments, grid.DefaultSize)
	if err != nil {
		t.Fatalf("NewPlane: %v", err)
	}
	return p
}

func TestCPUBackendMatchesSnapshot(t *testing.T) {
	plane := testPlane(t, grid.DefaultSegments)
	snap := testSnapshot()

	tests := []struct {
		name    string
		workers int
	}{
		{"serial", 1},
		{"two", 2},
		{"odd", 7},
		{"default", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewCPUBackend(tt.workers)
			out := make([]float64, plane.Len())
			b.Displace(plane.Vertices, snap, out)
			for i, v := range plane.Vertices {
				if want := snap.Height(v.X, v.Z); out[i] != want {
					t.Fatalf("out[%d] = %v, want %v", i, out[i], want)
				}
			}
		})
	}
}

func TestCPUBackendSmallGridRunsSerially(t *testing.T) {
	plane := testPlane(t, 4)
	snap := testSnapshot()
	out := make([]float64, plane.Len())
	NewCPUBackend(8).Displace(plane.Vertices, snap, out)
	for i, v := range plane.Vertices {
		if want := snap.Height(v.X, v.Z); out[i] != want {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want)
		}
	}
}

func TestCPUBackendNames(t *testing.T) {
	if got := NewCPUBackend(1).Name(); got != "cpu (serial)" {
		t.Errorf("Name() = %q", got)
	}
	if got := NewCPUBackend(4).Name(); got != "cpu (4 workers)" {
		t.Errorf("Name() = %q", got)
	}
	if NewCPUBackend(-3).Workers() < 1 {
		t.Error("non-positive worker count should default to NumCPU")
	}
}

func TestNew(t *testing.T) {
	plane := testPlane(t, 8)
	for _, name := range []string{"", "auto", "cpu", "serial"} {
		b, err := New(name, plane.Vertices)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if !b.Available() {
			t.Errorf("New(%q) returned unavailable backend %s", name, b.Name())
		}
		b.Cleanup()
	}

	if _, err := New("metal", plane.Vertices); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestAutoSelectFallsBackToCPU(t *testing.T) {
	b := AutoSelectBackend(nil)
	if _, ok := b.(*CPUBackend); !ok {
		t.Errorf("AutoSelectBackend(nil) = %T, want *CPUBackend", b)
	}
}
