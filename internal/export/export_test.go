package export

import (
	"bytes"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/wavefield/internal/clock"
	"github.com/san-kum/wavefield/internal/driver"
	"github.com/san-kum/wavefield/internal/grid"
	"github.com/san-kum/wavefield/internal/viz"
)

func testFrame(t *testing.T) (driver.Frame, *grid.Plane) {
	t.Helper()
	plane, err := grid.NewPlane(16, grid.DefaultSize)
	if err != nil {
		t.Fatalf("NewPlane: %v", err)
	}
	d, err := driver.New(driver.Options{Plane: plane})
	if err != nil {
		t.Fatalf("driver.New: %v", err)
	}
	d.Tick(1.5, 1.0/60, clock.Sample{Hours: 3, Minutes: 20, Seconds: 10})
	return d.Capture(), plane
}

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(4, 2)
	c.Plot(0, 0, 0)
	c.Plot(1, 1, 1)
	c.Plot(7, 7, 0.5)

	svg := CanvasToSVG(c, 2, viz.NewShader("#000000", viz.GetTheme("mono")))
	if got := strings.Count(svg, "<circle"); got != 3 {
		t.Errorf("circles = %d, want 3", got)
	}
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("not a complete SVG document")
	}
	if CanvasToSVG(nil, 1, nil) != "" {
		t.Error("nil canvas should give empty output")
	}
}

func TestHeightmapSVG(t *testing.T) {
	f, plane := testFrame(t)

	svg := HeightmapSVG(f, plane, Options{Width: 200, Height: 200, Clock: true})
	if got := strings.Count(svg, "<circle"); got != plane.Len() {
		t.Errorf("circles = %d, want %d", got, plane.Len())
	}
	if !strings.Contains(svg, f.Display) {
		t.Errorf("clock text %q missing", f.Display)
	}

	thin := HeightmapSVG(f, plane, Options{Stride: 4})
	if got := strings.Count(thin, "<circle"); got != 25 {
		t.Errorf("stride 4 circles = %d, want 25", got)
	}
}

func TestProfileSVG(t *testing.T) {
	f, plane := testFrame(t)

	svg := ProfileSVG(f, plane, 8, 300, 100, "#00ff00")
	if got := strings.Count(svg, " L"); got != plane.Side()-1 {
		t.Errorf("segments = %d, want %d", got, plane.Side()-1)
	}
	if ProfileSVG(f, plane, plane.Side(), 300, 100, "#00ff00") != "" {
		t.Error("out of range row should give empty output")
	}
}

func TestFramePNG(t *testing.T) {
	f, plane := testFrame(t)

	var buf bytes.Buffer
	if err := FramePNG(&buf, f, plane, Options{Width: 320, Height: 240, Clock: true}); err != nil {
		t.Fatalf("FramePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Errorf("bounds = %v, want 320x240", b)
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := SavePNG(path, f, plane, Options{}); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
}
