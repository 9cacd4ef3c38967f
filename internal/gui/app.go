package gui

import (
	"errors"
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/wavefield/internal/clock"
	"github.com/san-kum/wavefield/internal/compute"
	"github.com/san-kum/wavefield/internal/driver"
	"github.com/san-kum/wavefield/internal/logging"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColGrid    = rl.NewColor(30, 30, 30, 255)
	ColPanel   = rl.NewColor(20, 20, 20, 220)
)

var ErrNoDriver = errors.New("gui: no driver")

const (
	screenWidth  = 1280
	screenHeight = 720

	minPitch    = 0.1
	maxPitch    = 1.5
	minDistance = 4.0
	maxDistance = 40.0
	// pointScale turns an Appearance point size into world units.
	pointScale = 0.012
	// heightScale exaggerates displacement in the window.
	heightScale = 1.5
)

type Options struct {
	Driver *driver.Driver
	Source clock.Source
	FPS    int
	// Backend is a compute.New name; it is resolved after the window opens
	// so the opengl backend has a context.
	Backend string
}

// App is the raylib shell around the driver: one Tick per rendered frame.
type App struct {
	drv     *driver.Driver
	src     clock.Source
	fps     int
	backend string

	Camera   rl.Camera3D
	yaw      float64
	pitch    float64
	distance float64
	Font     rl.Font

	frame   driver.Frame
	elapsed float64
	Running bool

	ShowClock bool
	ShowAbout bool

	tint    string
	palette [paletteSize]rl.Color
	maxAmp  float64
}

// initWindow opens a 1280x720 window titled "wavefield", caps the frame
// rate and disables the default exit key.
func initWindow(fps int) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(screenWidth, screenHeight, "wavefield")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// loadFont loads Liberation Mono, falling back to the raylib default font.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp must be called after initWindow.
func NewApp(opts Options) *App {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Source == nil {
		opts.Source = clock.System{}
	}
	a := &App{
		drv:     opts.Driver,
		src:     opts.Source,
		fps:     opts.FPS,
		backend: opts.Backend,
		Camera: rl.NewCamera3D(
			rl.NewVector3(0, 8, 12),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			45.0,
			rl.CameraPerspective,
		),
		yaw:       0,
		pitch:     0.6,
		distance:  14,
		Font:      loadFont(),
		Running:   true,
		ShowClock: true,
		maxAmp:    opts.Driver.Mapper().Tuning().MaxAmplitude(),
	}
	a.refreshPalette()
	a.updateCamera()
	return a
}

// selectBackend swaps the driver onto the configured backend now that a GL
// context exists. Failures keep the CPU backend.
func (a *App) selectBackend() {
	b, err := compute.New(a.backend, a.drv.Plane().Vertices)
	if err != nil {
		logging.Error("gui: backend %q: %v", a.backend, err)
		return
	}
	a.drv.SetBackend(b)
	logging.Info("gui: using %s backend", b.Name())
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	if opts.Driver == nil {
		return ErrNoDriver
	}
	initWindow(opts.FPS)
	defer rl.CloseWindow()

	app := NewApp(opts)
	app.selectBackend()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
			break
		}
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	dt := float64(rl.GetFrameTime())
	if a.Running {
		a.elapsed += dt
		a.frame = a.drv.Tick(a.elapsed, dt, clock.FromTime(a.src.Now()))
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.ShowClock = !a.ShowClock
	}
	if rl.IsKeyPressed(rl.KeyA) {
		a.ShowAbout = !a.ShowAbout
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		a.adjustPointSize(0.5)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		a.adjustPointSize(-0.5)
	}

	if rl.IsKeyDown(rl.KeyLeft) {
		a.yaw -= dt
	}
	if rl.IsKeyDown(rl.KeyRight) {
		a.yaw += dt
	}
	if rl.IsKeyDown(rl.KeyUp) {
		a.pitch += dt
	}
	if rl.IsKeyDown(rl.KeyDown) {
		a.pitch -= dt
	}
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		delta := rl.GetMouseDelta()
		a.yaw += float64(delta.X) * 0.005
		a.pitch += float64(delta.Y) * 0.005
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.distance -= float64(wheel)
	}
	a.updateCamera()

	if tint := a.drv.Appearance().Tint; tint != a.tint {
		a.refreshPalette()
	}
}

func (a *App) adjustPointSize(delta float64) {
	ap := a.drv.Appearance()
	ap.PointSize += delta
	a.drv.SetAppearance(ap)
}

// updateCamera places the camera on a sphere around the origin.
func (a *App) updateCamera() {
	a.pitch = math.Min(maxPitch, math.Max(minPitch, a.pitch))
	a.distance = math.Min(maxDistance, math.Max(minDistance, a.distance))
	x := a.distance * math.Cos(a.pitch) * math.Sin(a.yaw)
	y := a.distance * math.Sin(a.pitch)
	z := a.distance * math.Cos(a.pitch) * math.Cos(a.yaw)
	a.Camera.Position = rl.NewVector3(float32(x), float32(y), float32(z))
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.CustomGrid(20, float32(a.drv.Plane().Size/10))
	rl.BeginMode3D(a.Camera)
	a.RenderField()
	rl.EndMode3D()

	a.DrawHUD()
	if a.ShowClock {
		a.DrawClock()
	}
	if a.ShowAbout {
		a.DrawAbout()
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	a.drawText("wavefield", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.drv.Backend().Name()), 170, 34, 16, ColText)

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, int(rl.GetScreenWidth())-130, 30, 16, col)

	y := 80
	for i, l := range a.frame.Layers {
		a.drawText(fmt.Sprintf("L%d  amp %.3f  freq %.3f  speed %.3f", i+1, l.Amplitude, l.Frequency, l.Speed), 30, y, 14, ColText)
		y += 20
	}
	a.drawText(fmt.Sprintf("point %.1f  tint %s", a.frame.Appearance.PointSize, a.frame.Appearance.Tint), 30, y, 14, ColTextDim)

	h := int(rl.GetScreenHeight())
	a.drawText("[SPACE] PAUSE  [C] CLOCK  [A] ABOUT  [+/-] POINT  [ARROWS] ORBIT  [Q] QUIT", 380, h-40, 14, ColTextDim)
	rl.DrawFPS(30, int32(h-40))
}

func (a *App) DrawClock() {
	if a.frame.Display == "" {
		return
	}
	w := int(rl.GetScreenWidth())
	size := 48
	tw := int(rl.MeasureTextEx(a.Font, a.frame.Display, float32(size), 1).X)
	a.drawText(a.frame.Display, (w-tw)/2, 40, size, ColAccent)
}

func (a *App) DrawAbout() {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	pw, ph := int32(520), int32(200)
	x, y := (w-pw)/2, (h-ph)/2
	rl.DrawRectangle(x, y, pw, ph, ColPanel)
	rl.DrawRectangleLines(x, y, pw, ph, ColAccent)

	lines := []string{
		"wavefield",
		"",
		"A grid of points displaced by two noise layers.",
		"Amplitude, frequency and speed follow the clock hands:",
		"seconds, minutes and hours.",
		"",
		"[A] close",
	}
	for i, line := range lines {
		col := ColText
		if i == 0 {
			col = ColSelect
		}
		a.drawText(line, int(x)+20, int(y)+20+i*24, 16, col)
	}
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) CustomGrid(slices int, spacing float32) {
	halfSize := float32(slices) * spacing / 2
	rl.BeginMode3D(a.Camera)
	for i := -slices / 2; i <= slices/2; i++ {
		pos := float32(i) * spacing
		rl.DrawLine3D(rl.NewVector3(pos, -1, -halfSize), rl.NewVector3(pos, -1, halfSize), ColGrid)
		rl.DrawLine3D(rl.NewVector3(-halfSize, -1, pos), rl.NewVector3(halfSize, -1, pos), ColGrid)
	}
	rl.EndMode3D()
}
