package viz

import (
	"math"
	"testing"
)

func TestCameraProjectCentre(t *testing.T) {
	cam := NewCamera()
	x, y, _, ok := cam.Project(Vec3{}, 100, 60)
	if !ok || x != 50 || y != 30 {
		t.Errorf("Project(origin) = %d,%d,%v; want 50,30,true", x, y, ok)
	}
}

func TestCameraNearEdgeBelowFarEdge(t *testing.T) {
	cam := NewCamera()
	_, yNear, dNear, _ := cam.Project(Vec3{Z: 4}, 200, 200)
	_, yFar, dFar, _ := cam.Project(Vec3{Z: -4}, 200, 200)
	if yNear <= yFar {
		t.Errorf("near edge y=%d should sit below far edge y=%d", yNear, yFar)
	}
	if dNear <= dFar {
		t.Errorf("near depth %v should exceed far depth %v", dNear, dFar)
	}
}

func TestCameraZoomTarget(t *testing.T) {
	cam := NewCamera()
	cam.Zoom = MaxZoom
	if got := cam.ZoomTarget(true); got != MaxZoom {
		t.Errorf("ZoomTarget(in) at max = %v", got)
	}
	cam.Zoom = MinZoom
	if got := cam.ZoomTarget(false); got != MinZoom {
		t.Errorf("ZoomTarget(out) at min = %v", got)
	}
	cam.Zoom = 1
	if got := cam.ZoomTarget(true); math.Abs(got-1.2) > 1e-12 {
		t.Errorf("ZoomTarget(in) = %v, want 1.2", got)
	}
}

func TestRotatePointPreservesLength(t *testing.T) {
	cam := &Camera{RotX: 0.3, RotY: -1.1, RotZ: 2.0}
	p := Vec3{1, 2, 3}
	r := cam.RotatePoint(p)
	l0 := math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
	l1 := math.Sqrt(r.X*r.X + r.Y*r.Y + r.Z*r.Z)
	if math.Abs(l0-l1) > 1e-12 {
		t.Errorf("rotation changed length %v -> %v", l0, l1)
	}
}

func TestRenderPoints(t *testing.T) {
	c := NewCanvas(20, 10)
	pts := []Point{{Pos: Vec3{}, Level: 0.5}}
	RenderPoints(c, pts, NewCamera(), 1)

	lit := 0
	for r := range c.Grid {
		for col := range c.Grid[r] {
			if c.Lit(r, col) {
				lit++
				if c.Levels[r][col] != 0.5 {
					t.Errorf("level = %v, want 0.5", c.Levels[r][col])
				}
			}
		}
	}
	if lit != 1 {
		t.Errorf("lit cells = %d, want 1", lit)
	}

	RenderPoints(nil, pts, NewCamera(), 1)
}

func TestShaderAndThemes(t *testing.T) {
	s := NewShader("#000000", ThemeMono)
	if s.Hex(0) != "#000000" || s.Hex(1) != "#ffffff" {
		t.Errorf("shade ends = %s, %s", s.Hex(0), s.Hex(1))
	}
	if s.Hex(-3) != s.Hex(0) || s.Hex(7) != s.Hex(1) || s.Hex(math.NaN()) != s.Hex(0) {
		t.Error("out-of-range levels not clamped")
	}

	if GetTheme("nope").Name != "ocean" {
		t.Error("unknown theme should fall back to ocean")
	}
	if NextTheme(Themes[len(Themes)-1]).Name != Themes[0].Name {
		t.Error("NextTheme does not wrap")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("ThemeNames length mismatch")
	}
}

func TestMixHex(t *testing.T) {
	tests := []struct {
		a, b string
		t    float64
		want string
	}{
		{"#000000", "#ffffff", 0, "#000000"},
		{"#000000", "#ffffff", 1, "#ffffff"},
		{"#000000", "#ff0000", 0.5, "#800000"},
		{"bad", "#000000", 0, "#ffffff"},
	}
	for _, tt := range tests {
		if got := MixHex(tt.a, tt.b, tt.t); got != tt.want {
			t.Errorf("MixHex(%s, %s, %v) = %s, want %s", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}
