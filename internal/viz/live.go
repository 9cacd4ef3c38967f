package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/wavefield/internal/clock"
	"github.com/san-kum/wavefield/internal/driver"
	"github.com/san-kum/wavefield/internal/logging"
	"github.com/san-kum/wavefield/internal/metrics"
	"github.com/san-kum/wavefield/internal/wave"
)

const (
	defaultWidth    = 80
	defaultHeight   = 28
	statsWidth      = 40
	historyCapacity = 240
	pointSizeStep   = 0.5
	orbitStep       = 0.1
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(statsWidth)
	clockStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

type TickMsg time.Time

type Options struct {
	Driver *driver.Driver
	Source clock.Source
	FPS    int
	Theme  string
	// Stride thins the grid for the terminal; 0 picks one from the grid size.
	Stride int
	// HeightScale exaggerates displacement on screen.
	HeightScale float64
	GIFPath     string
}

// Model is the bubbletea shell around the driver. Each TickMsg becomes one
// driver Tick; the model keeps only view state.
type Model struct {
	drv     *driver.Driver
	src     clock.Source
	fps     int
	metrics *metrics.Set

	canvas        *Canvas
	camera        *Camera
	zoom          harmonica.Spring
	zoomVel       float64
	zoomTarget    float64
	width, height int

	theme   Theme
	shader  *Shader
	tint    string
	indices []int
	points  []Point
	scale   float64
	maxAmp  float64

	frame   driver.Frame
	elapsed float64
	last    time.Time
	running bool

	showClock   bool
	showAbout   bool
	showHelp    bool
	showOutline bool

	ampHistory  [2][]float64
	peakHistory []float64

	recording bool
	frames    []*image.Paletted
	gifPath   string
	status    string
}

func NewModel(opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Source == nil {
		opts.Source = clock.System{}
	}
	if opts.HeightScale <= 0 {
		opts.HeightScale = 2
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "wavefield.gif"
	}
	plane := opts.Driver.Plane()
	stride := opts.Stride
	if stride <= 0 {
		stride = plane.Side() / 48
	}
	indices := plane.Strided(stride)

	set := metrics.Default()
	opts.Driver.AddObserver(set)

	theme := GetTheme(opts.Theme)
	tint := opts.Driver.Appearance().Tint
	cam := NewCamera()

	return Model{
		drv:         opts.Driver,
		src:         opts.Source,
		fps:         opts.FPS,
		metrics:     set,
		canvas:      NewCanvas(defaultWidth-statsWidth, defaultHeight),
		camera:      cam,
		zoom:        harmonica.NewSpring(harmonica.FPS(opts.FPS), 6.0, 0.9),
		zoomTarget:  cam.Zoom,
		width:       defaultWidth,
		height:      defaultHeight,
		theme:       theme,
		shader:      NewShader(tint, theme),
		tint:        tint,
		indices:     indices,
		points:      make([]Point, len(indices)),
		scale:       opts.HeightScale,
		maxAmp:      opts.Driver.Mapper().Tuning().MaxAmplitude(),
		running:     true,
		showClock:   true,
		showOutline: true,
		gifPath:     opts.GIFPath,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and drives one frame per tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.advance(time.Time(msg))
		m.draw()
		if m.recording {
			m.captureFrame()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "c":
		m.showClock = !m.showClock
	case "a":
		m.showAbout = !m.showAbout
	case "o":
		m.showOutline = !m.showOutline
	case "m":
		f := m.drv.Mapper().Format()
		f.Meridiem = !f.Meridiem
		m.drv.Mapper().SetFormat(f)
	case "?":
		m.showHelp = !m.showHelp
	case "+", "=":
		m.adjustPointSize(pointSizeStep)
	case "-", "_":
		m.adjustPointSize(-pointSizeStep)
	case "t":
		m.theme = NextTheme(m.theme)
		m.shader = NewShader(m.tint, m.theme)
	case "x":
		m.camera.RotateX(orbitStep)
	case "X":
		m.camera.RotateX(-orbitStep)
	case "y":
		m.camera.RotateY(orbitStep)
	case "Y":
		m.camera.RotateY(-orbitStep)
	case "z":
		m.camera.RotateZ(orbitStep)
	case "Z":
		m.camera.RotateZ(-orbitStep)
	case "]":
		m.zoomTarget = m.camera.ZoomTarget(true)
	case "[":
		m.zoomTarget = m.camera.ZoomTarget(false)
	case "g":
		m.toggleRecording()
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	cw := w - statsWidth - 4
	if cw < 20 {
		cw = 20
	}
	ch := h - 1
	if ch < 10 {
		ch = 10
	}
	m.canvas = NewCanvas(cw, ch)
}

func (m *Model) adjustPointSize(delta float64) {
	a := m.drv.Appearance()
	a.PointSize += delta
	m.drv.SetAppearance(a)
}

// advance runs one driver frame. Animation time only accumulates while
// running; the clock keeps being read so the overlay stays current.
func (m *Model) advance(now time.Time) {
	interval := 0.0
	if !m.last.IsZero() {
		interval = now.Sub(m.last).Seconds()
	}
	m.last = now

	if m.running {
		m.elapsed += interval
		m.frame = m.drv.Tick(m.elapsed, interval, clock.FromTime(m.src.Now()))
		for i, l := range m.frame.Layers {
			m.ampHistory[i] = appendCapped(m.ampHistory[i], l.Amplitude, historyCapacity)
		}
		m.peakHistory = appendCapped(m.peakHistory, framePeak(m.frame.Heights), historyCapacity)
	}

	m.camera.Zoom, m.zoomVel = m.zoom.Update(m.camera.Zoom, m.zoomVel, m.zoomTarget)
	if tint := m.drv.Appearance().Tint; tint != m.tint {
		m.tint = tint
		m.shader = NewShader(tint, m.theme)
	}
}

func framePeak(heights []float64) float64 {
	peak := 0.0
	for i, h := range heights {
		if i == 0 || h > peak {
			peak = h
		}
	}
	return peak
}

// Retune swaps the tuning and clock format of the running field in place.
func (m *Model) Retune(t wave.Tuning, f clock.Format) {
	m.drv.Mapper().SetTuning(t)
	m.drv.Mapper().SetFormat(f)
	m.maxAmp = t.MaxAmplitude()
}

func appendCapped(h []float64, v float64, capacity int) []float64 {
	h = append(h, v)
	if len(h) > capacity {
		h = h[1:]
	}
	return h
}

// draw projects the thinned grid onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()
	if m.showOutline {
		m.drawOutline()
	}
	if m.frame.Heights == nil {
		return
	}
	verts := m.drv.Plane().Vertices
	for i, idx := range m.indices {
		h := m.frame.Heights[idx]
		level := 0.0
		if m.maxAmp > 0 {
			level = h / m.maxAmp
		}
		m.points[i] = Point{Pos: Vec3{X: verts[idx].X, Y: h * m.scale, Z: verts[idx].Z}, Level: level}
	}
	RenderPoints(m.canvas, m.points, m.camera, m.frame.Appearance.PointSize)
}

// drawOutline traces the edge of the plane at rest height.
func (m *Model) drawOutline() {
	half := m.drv.Plane().Size / 2
	corners := [4]Vec3{{-half, 0, -half}, {half, 0, -half}, {half, 0, half}, {-half, 0, half}}
	cw, ch := m.canvas.Dots()
	for i, a := range corners {
		b := corners[(i+1)%len(corners)]
		x0, y0, _, ok0 := m.camera.Project(a, cw, ch)
		x1, y1, _, ok1 := m.camera.Project(b, cw, ch)
		if ok0 && ok1 {
			m.canvas.DrawLine(x0, y0, x1, y1)
		}
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.Render(m.shader.Style))

	var s strings.Builder
	s.WriteString(GradientText("WAVEFIELD", m.theme.Primary, m.theme.Secondary) + "\n")
	s.WriteString(m.statusLine() + "\n\n")

	if m.showClock && m.frame.Display != "" {
		s.WriteString(clockStyle.Foreground(m.theme.Accent).Render(m.frame.Display) + "\n\n")
	}

	tuning := m.drv.Mapper().Tuning()
	for i, l := range m.frame.Layers {
		lt := tuning.Layer(i)
		s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Secondary).Render(fmt.Sprintf("layer %d (%s)", i+1, wave.Policies[i].Name)) + "\n")
		s.WriteString(paramRow("amplitude", l.Amplitude, lt.Amplitude))
		s.WriteString(paramRow("frequency", l.Frequency, lt.Frequency))
		s.WriteString(paramRow("speed", l.Speed, lt.Speed))
	}

	if len(m.ampHistory[0]) > 1 {
		chart := asciigraph.PlotMany(
			[][]float64{m.ampHistory[0], m.ampHistory[1]},
			asciigraph.Height(4),
			asciigraph.Width(statsWidth-12),
			asciigraph.Precision(2),
			asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Magenta),
			asciigraph.Caption("amplitude"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString(Separator(statsWidth-4) + "\n")

	fps, _ := m.metrics.Get("fps")
	peak, _ := m.metrics.Get("peak_height")
	s.WriteString(MetricLabel.Render("fps") + MetricValue.Render(fmt.Sprintf("%.0f", fps)) + "\n")
	s.WriteString(MetricLabel.Render("peak") + MetricValue.Render(fmt.Sprintf("%.3f", peak)) + "\n")
	s.WriteString(SparklineChart(m.peakHistory, statsWidth-6) + "\n")
	s.WriteString(MetricLabel.Render("elapsed") + MetricValue.Render(fmt.Sprintf("%.1fs", m.frame.Elapsed)) + "\n")
	s.WriteString(MetricLabel.Render("points") + MetricValue.Render(fmt.Sprintf("%d/%d", len(m.indices), m.drv.Plane().Len())) + "\n")
	s.WriteString(MetricLabel.Render("size") + MetricValue.Render(fmt.Sprintf("%.1f", m.frame.Appearance.PointSize)) + "\n")
	s.WriteString(MetricLabel.Render("theme") + MetricValue.Render(m.theme.Name) + "\n")
	s.WriteString(MetricLabel.Render("backend") + MetricValue.Render(m.drv.Backend().Name()) + "\n")
	if m.status != "" {
		s.WriteString("\n" + Subtle.Render(m.status) + "\n")
	}
	s.WriteString("\n" + KeyHint.Render("space pause  c clock  a about\n? help  t theme  g record  q quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	switch {
	case m.showHelp:
		return helpView + "\n" + mainView
	case m.showAbout:
		return GlassPanel.Render(aboutText) + "\n" + mainView
	}
	return mainView
}

func (m Model) statusLine() string {
	switch {
	case m.recording:
		return StatusRecording.Render(fmt.Sprintf("● REC %d", len(m.frames)))
	case !m.running:
		return StatusPaused.Render("PAUSED")
	}
	return StatusRunning.Render("LIVE")
}

func paramRow(name string, v float64, r wave.Range) string {
	frac := 0.0
	if r.Span != 0 {
		frac = (v - r.Base) / r.Span
	}
	return fmt.Sprintf("  %-9s %s %6.3f\n", name, ProgressBar(frac, 10), v)
}

const helpView = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  C        - Toggle clock overlay     ║
║  A        - Toggle about panel       ║
║  O        - Toggle plane outline     ║
║  M        - Toggle AM/PM suffix      ║
║  + / -    - Point size               ║
║  T        - Cycle themes             ║
║  x y z    - Orbit (shift reverses)   ║
║  [ / ]    - Zoom out / in            ║
║  G        - Toggle GIF recording     ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

const aboutText = `The surface is two layers of value noise.
The second hand sets amplitude, the minute
hand frequency and the hour hand speed.
Layer 2 mirrors layer 1 a quarter turn
behind and drifts the other way.`

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.frames = make([]*image.Paletted, 0)
		m.status = ""
		return
	}
	m.recording = false
	if err := m.saveGIF(); err != nil {
		m.status = "gif: " + err.Error()
		logging.Error("save gif: %v", err)
	} else if len(m.frames) > 0 {
		m.status = fmt.Sprintf("saved %d frames to %s", len(m.frames), m.gifPath)
		logging.Info("saved %d frames to %s", len(m.frames), m.gifPath)
	}
	m.frames = nil
}

// captureFrame rasterises the canvas, one palette entry per shade step.
func (m *Model) captureFrame() {
	const charW, charH = 8, 16
	palette := color.Palette{color.Black}
	for i := 0; i < shadeSteps; i++ {
		r, g, b := ParseHex(m.shader.colors[i])
		palette = append(palette, color.RGBA{uint8(r), uint8(g), uint8(b), 255})
	}

	imgW, imgH := m.canvas.Width*charW, m.canvas.Height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), palette)
	dotW, dotH := charW/2, charH/4

	for row := 0; row < m.canvas.Height; row++ {
		for col := 0; col < m.canvas.Width; col++ {
			if !m.canvas.Lit(row, col) {
				continue
			}
			pattern := int(m.canvas.Grid[row][col] - blank)
			idx := uint8(1 + m.shader.step(m.canvas.Levels[row][col]))
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, idx)
						}
					}
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) saveGIF() error {
	if len(m.frames) == 0 {
		return nil
	}
	delay := int(math.Max(1, math.Round(100/float64(m.fps))))
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	f, err := os.Create(m.gifPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}

// Run starts the live TUI on the alternate screen.
func Run(opts Options) error {
	_, err := tea.NewProgram(NewModel(opts), tea.WithAltScreen()).Run()
	return err
}
