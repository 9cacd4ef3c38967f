package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/wavefield/internal/viz"
)

const (
	paletteSize = 16
	crestHex    = "#ffffff"
)

// refreshPalette rebuilds the height palette from the current tint: troughs
// take the tint, crests fade towards white.
func (a *App) refreshPalette() {
	a.tint = a.drv.Appearance().Tint
	for i := range a.palette {
		t := float64(i) / float64(paletteSize-1)
		r, g, b := viz.ParseHex(viz.MixHex(a.tint, crestHex, t*0.8))
		a.palette[i] = rl.NewColor(uint8(r), uint8(g), uint8(b), 255)
	}
}

func (a *App) shade(h float64) rl.Color {
	if a.maxAmp <= 0 {
		return a.palette[0]
	}
	i := int(h / a.maxAmp * float64(paletteSize-1))
	if i < 0 {
		i = 0
	}
	if i >= paletteSize {
		i = paletteSize - 1
	}
	return a.palette[i]
}

// RenderField draws one small cube per vertex at its displaced height.
func (a *App) RenderField() {
	heights := a.frame.Heights
	if heights == nil {
		return
	}
	s := float32(a.frame.Appearance.PointSize * pointScale)
	for i, v := range a.drv.Plane().Vertices {
		h := heights[i]
		pos := rl.NewVector3(float32(v.X), float32(h*heightScale), float32(v.Z))
		rl.DrawCube(pos, s, s, s, a.shade(h))
	}
}
