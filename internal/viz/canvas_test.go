package viz

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	c.Set(1, 3)
	if got := c.Grid[0][0]; got != blank|0x1|0x80 {
		t.Errorf("cell = %U, want %U", got, blank|0x1|0x80)
	}

	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)
	if c.Lit(0, 1) {
		t.Error("out-of-range Set lit a cell")
	}
}

func TestCanvasPlotLevels(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Plot(0, 0, 0.3)
	c.Plot(1, 1, 0.8)
	if c.Levels[0][0] != 0.8 {
		t.Errorf("level = %v, want last plotted 0.8", c.Levels[0][0])
	}

	c.Clear()
	if c.Lit(0, 0) || c.Levels[0][0] != 0 {
		t.Error("Clear left state behind")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)
	for col := 0; col < 4; col++ {
		if c.Grid[0][col] != blank|0x1|0x8 {
			t.Errorf("col %d = %U", col, c.Grid[0][col])
		}
	}
}

func TestCanvasRender(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Plot(0, 0, 1)
	out := c.Render(func(float64) lipgloss.Style { return lipgloss.NewStyle() })
	if strings.Count(out, "\n") != 2 {
		t.Errorf("Render rows = %d, want 2", strings.Count(out, "\n"))
	}
	if !strings.ContainsRune(out, blank|0x1) {
		t.Errorf("Render lost the plotted dot: %q", out)
	}
	if len([]rune(c.String())) != 8 {
		t.Errorf("String() = %q", c.String())
	}
}
