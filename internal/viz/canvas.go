package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille dot buffer. Each cell also remembers the level of the
// last dot plotted into it so the renderer can shade by height.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Levels        [][]float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Levels: make([][]float64, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Levels[i] = make([]float64, w)
	}
	c.Clear()
	return c
}

// Dots is the canvas size in sub-pixels: (Width*2) x (Height*4).
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

// Set sets a dot at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	c.Plot(x, y, 0)
}

// Plot sets a dot and records level for its cell.
func (c *Canvas) Plot(x, y int, level float64) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Levels[row][col] = level
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Levels[i][j] = 0
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Lit reports whether any dot of the cell at (row, col) is set.
func (c *Canvas) Lit(row, col int) bool {
	return c.Grid[row][col] != blank
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render is String with each lit cell styled by its level. Runs of cells
// sharing a style are rendered together.
func (c *Canvas) Render(shade func(level float64) lipgloss.Style) string {
	var b strings.Builder
	for r, row := range c.Grid {
		var run []rune
		var runStyle lipgloss.Style
		styled := false
		flush := func() {
			if len(run) == 0 {
				return
			}
			if styled {
				b.WriteString(runStyle.Render(string(run)))
			} else {
				b.WriteString(string(run))
			}
			run = run[:0]
		}
		for col, ch := range row {
			if ch == blank {
				if styled {
					flush()
					styled = false
				}
				run = append(run, ch)
				continue
			}
			st := shade(c.Levels[r][col])
			if !styled || st.GetForeground() != runStyle.GetForeground() {
				flush()
				runStyle, styled = st, true
			}
			run = append(run, ch)
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
