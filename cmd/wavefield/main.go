package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/wavefield/internal/analysis"
	"github.com/san-kum/wavefield/internal/automation"
	"github.com/san-kum/wavefield/internal/clock"
	"github.com/san-kum/wavefield/internal/compute"
	"github.com/san-kum/wavefield/internal/config"
	"github.com/san-kum/wavefield/internal/driver"
	"github.com/san-kum/wavefield/internal/export"
	"github.com/san-kum/wavefield/internal/grid"
	"github.com/san-kum/wavefield/internal/gui"
	"github.com/san-kum/wavefield/internal/logging"
	"github.com/san-kum/wavefield/internal/metrics"
	"github.com/san-kum/wavefield/internal/storage"
	"github.com/san-kum/wavefield/internal/tui"
	"github.com/san-kum/wavefield/internal/viz"
	"github.com/san-kum/wavefield/internal/wave"
)

var (
	dataDir    string
	configFile string
	preset     string
	logFile    string
	logLevel   string

	// Overrides, applied only when set on the command line.
	frameRate int
	backend   string
	theme     string
	tint      string
	pointSize float64
	at        string
	speed     float64
	meridiem  bool
	segments  int

	gifPath  string
	duration time.Duration

	sweepStart string
	sweepSpan  time.Duration
	sweepStep  time.Duration

	row, col int
	dt       float64
	hann     bool

	profileRow int
	stride     int
	showClock  bool
)

// main registers the wavefield commands and runs the live view when no
// subcommand is given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "wavefield",
		Short:         "clock-driven wave field",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".wavefield", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logFile, "log", "", "log file path")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, error)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "live terminal view",
		RunE:  runLive,
	}
	addViewFlags(rootCmd)
	addViewFlags(liveCmd)
	rootCmd.Flags().StringVar(&gifPath, "gif", "wavefield.gif", "GIF capture path")
	liveCmd.Flags().StringVar(&gifPath, "gif", "wavefield.gif", "GIF capture path")

	menuCmd := &cobra.Command{
		Use:   "menu",
		Short: "pick and tune a preset, then go live",
		RunE:  runMenu,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "raylib window",
		RunE:  runGUI,
	}
	addViewFlags(guiCmd)

	asciiCmd := &cobra.Command{
		Use:   "ascii",
		Short: "plain ANSI heightmap",
		RunE:  runASCII,
	}
	addViewFlags(asciiCmd)
	asciiCmd.Flags().DurationVar(&duration, "duration", 0, "stop after this long (0 runs until interrupted)")
	asciiCmd.Flags().Int("width", tui.DefaultWidth, "columns")
	asciiCmd.Flags().Int("height", tui.DefaultHeight, "rows")

	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "print the wave parameters for a clock reading",
		RunE:  printParams,
	}
	addClockFlags(paramsCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep the clock and report parameter statistics",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepStart, "start", "00:00:00", "start time of day")
	sweepCmd.Flags().DurationVar(&sweepSpan, "span", analysis.DefaultSweepSpan, "sweep length")
	sweepCmd.Flags().DurationVar(&sweepStep, "step", analysis.DefaultSweepStep, "sample spacing")
	sweepCmd.Flags().Int("width", 80, "plot width")
	sweepCmd.Flags().Int("height", 8, "plot height")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum",
		Short: "temporal spectrum of one vertex",
		RunE:  runSpectrum,
	}
	addClockFlags(spectrumCmd)
	spectrumCmd.Flags().IntVar(&row, "row", -1, "vertex row (default centre)")
	spectrumCmd.Flags().IntVar(&col, "col", -1, "vertex column (default centre)")
	spectrumCmd.Flags().Float64Var(&dt, "dt", 1.0/30, "seconds between samples")
	spectrumCmd.Flags().Int("frames", 1024, "number of samples")
	spectrumCmd.Flags().BoolVar(&hann, "hann", true, "apply a Hann window")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "save one frame to the data directory",
		RunE:  runSnapshot,
	}
	addClockFlags(snapshotCmd)
	snapshotCmd.Flags().IntVar(&segments, "segments", config.DefaultSegments, "grid segments per side")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list snapshots",
		RunE:  listSnapshots,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [snapshot_id]",
		Short: "export a frame as SVG (a saved snapshot, or now)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	addExportFlags(exportSVGCmd, "frame.svg")
	exportSVGCmd.Flags().IntVar(&profileRow, "profile", -1, "draw the heights along this grid row instead")

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [snapshot_id]",
		Short: "export a frame as PNG (a saved snapshot, or now)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportPNG,
	}
	addExportFlags(exportPNGCmd, "frame.png")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tL1 AMP\tL2 AMP\tCLOCK SPEED\tTINT")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.2f..%.2f\t%.2f..%.2f\t%gx\t%s\n",
					name,
					p.Tuning.Layer1.Amplitude.Base, p.Tuning.Layer1.Amplitude.Base+p.Tuning.Layer1.Amplitude.Span,
					p.Tuning.Layer2.Amplitude.Base, p.Tuning.Layer2.Amplitude.Base+p.Tuning.Layer2.Amplitude.Span,
					p.Clock.Speed,
					p.Appearance.Tint,
				)
			}
			return w.Flush()
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the vertex pass per backend",
		RunE:  runBench,
	}
	benchCmd.Flags().Int("frames", 240, "frames per backend")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "render a scripted sequence of clock times",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().StringP("out", "o", ".", "output directory")

	rootCmd.AddCommand(liveCmd, menuCmd, guiCmd, asciiCmd, paramsCmd, sweepCmd, spectrumCmd,
		snapshotCmd, listCmd, exportSVGCmd, exportPNGCmd, presetsCmd, benchCmd, scenarioCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addClockFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&at, "at", "", "time of day to show (hh:mm[:ss]); default now")
	cmd.Flags().Float64Var(&speed, "speed", 1, "clock speed multiplier")
	cmd.Flags().BoolVar(&meridiem, "meridiem", false, "append AM/PM to the clock")
}

func addViewFlags(cmd *cobra.Command) {
	addClockFlags(cmd)
	cmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().StringVar(&backend, "backend", config.DefaultBackend, "vertex backend ("+strings.Join(config.Backends(), ", ")+")")
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	cmd.Flags().StringVar(&tint, "tint", config.DefaultTint, "point tint (#rrggbb)")
	cmd.Flags().Float64Var(&pointSize, "point-size", config.DefaultPointSize, "point size")
	cmd.Flags().IntVar(&segments, "segments", config.DefaultSegments, "grid segments per side")
}

func addExportFlags(cmd *cobra.Command, def string) {
	addClockFlags(cmd)
	cmd.Flags().StringP("out", "o", def, "output file")
	cmd.Flags().Int("width", 1024, "image width")
	cmd.Flags().Int("height", 768, "image height")
	cmd.Flags().IntVar(&stride, "stride", 1, "draw every n-th vertex")
	cmd.Flags().BoolVar(&showClock, "clock", true, "draw the clock text")
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "colour theme")
	cmd.Flags().StringVar(&tint, "tint", config.DefaultTint, "point tint (#rrggbb)")
	cmd.Flags().Float64Var(&pointSize, "point-size", config.DefaultPointSize, "point size")
}

// loadConfig layers preset, config file and changed flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.LoadPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Render.FPS = frameRate
	}
	if flags.Changed("backend") {
		cfg.Render.Backend = backend
	}
	if flags.Changed("theme") {
		cfg.Appearance.Theme = theme
	}
	if flags.Changed("tint") {
		cfg.Appearance.Tint = tint
	}
	if flags.Changed("point-size") {
		cfg.Appearance.PointSize = pointSize
	}
	if flags.Changed("segments") {
		cfg.Grid.Segments = segments
	}
	if flags.Changed("at") {
		cfg.Clock.Offset = at
	}
	if flags.Changed("speed") {
		cfg.Clock.Speed = speed
	}
	if flags.Changed("meridiem") {
		cfg.Clock.Meridiem = meridiem
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging points the package logger at --log. TUI commands also route
// the standard logger there so nothing is written over the screen.
func setupLogging(screen bool) (func(), error) {
	if logFile == "" {
		return func() {}, nil
	}
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	l, err := logging.Open(logFile, level)
	if err != nil {
		return nil, err
	}
	logging.SetDefault(l.Logger)

	var teaLog *os.File
	if screen {
		if teaLog, err = tea.LogToFile(logFile, "wavefield"); err != nil {
			l.Close()
			return nil, err
		}
	}
	return func() {
		if teaLog != nil {
			teaLog.Close()
		}
		l.Close()
	}, nil
}

// headlessBackend resolves a backend name when no GL context will exist.
func headlessBackend(name string) (compute.Backend, error) {
	if name == "opengl" {
		return nil, errors.New("the opengl backend needs a window; use the gui command or --backend cpu")
	}
	return compute.New(name, nil)
}

func newDriver(cfg *config.Config, b compute.Backend) (*driver.Driver, error) {
	plane, err := grid.NewPlane(cfg.Grid.Segments, cfg.Grid.Size)
	if err != nil {
		return nil, err
	}
	return driver.New(driver.Options{
		Plane:   plane,
		Tuning:  &cfg.Tuning,
		Format:  cfg.Format(),
		Backend: b,
		Appearance: driver.Appearance{
			PointSize: cfg.Appearance.PointSize,
			Tint:      cfg.Appearance.Tint,
		},
	})
}

// liveOptions builds the terminal view for cfg; it doubles as the menu's
// builder.
func liveOptions(cfg *config.Config) (viz.Options, error) {
	b, err := headlessBackend(cfg.Render.Backend)
	if err != nil {
		return viz.Options{}, err
	}
	drv, err := newDriver(cfg, b)
	if err != nil {
		return viz.Options{}, err
	}
	src, err := cfg.Source()
	if err != nil {
		return viz.Options{}, err
	}
	logging.Info("live: %d vertices, backend %s, %d fps", drv.Plane().Len(), b.Name(), cfg.Render.FPS)
	return viz.Options{
		Driver:  drv,
		Source:  src,
		FPS:     cfg.Render.FPS,
		Theme:   cfg.Appearance.Theme,
		GIFPath: gifPath,
	}, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cleanup, err := setupLogging(true)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := liveOptions(cfg)
	if err != nil {
		return err
	}
	defer opts.Driver.Close()
	return viz.Run(opts)
}

func runMenu(cmd *cobra.Command, args []string) error {
	cleanup, err := setupLogging(true)
	if err != nil {
		return err
	}
	defer cleanup()
	return viz.RunInteractive(liveOptions)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cleanup, err := setupLogging(false)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// The window picks the configured backend once its GL context exists.
	drv, err := newDriver(cfg, compute.NewCPUBackend(0))
	if err != nil {
		return err
	}
	defer drv.Close()
	src, err := cfg.Source()
	if err != nil {
		return err
	}
	return gui.Run(gui.Options{
		Driver:  drv,
		Source:  src,
		FPS:     cfg.Render.FPS,
		Backend: cfg.Render.Backend,
	})
}

func runASCII(cmd *cobra.Command, args []string) error {
	cleanup, err := setupLogging(false)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	b, err := headlessBackend(cfg.Render.Backend)
	if err != nil {
		return err
	}
	drv, err := newDriver(cfg, b)
	if err != nil {
		return err
	}
	defer drv.Close()
	src, err := cfg.Source()
	if err != nil {
		return err
	}

	w, _ := cmd.Flags().GetInt("width")
	h, _ := cmd.Flags().GetInt("height")
	r := tui.NewLiveRenderer(os.Stdout, drv.Plane(), w, h, cfg.Tuning.MaxAmplitude(), cfg.Render.FPS)
	drv.AddObserver(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	r.Start()
	defer r.Stop()
	err = drv.Run(ctx, src, cfg.Render.FPS, nil)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		logging.Info("ascii: stopped after %d frames", drv.Frames())
		return nil
	}
	return err
}

func printParams(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	src, err := cfg.Source()
	if err != nil {
		return err
	}

	p := wave.NewMapper(cfg.Tuning, cfg.Format()).Update(clock.FromTime(src.Now()))
	fmt.Printf("clock: %s\n", p.Display)
	fmt.Printf("angles: second %.4f  minute %.4f  hour %.4f rad\n\n", p.Angles.Second, p.Angles.Minute, p.Angles.Hour)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LAYER\tAMPLITUDE\tFREQUENCY\tSPEED\tROTATION")
	for i, l := range p.Layers {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.4f\t%.4f\n", i+1, l.Amplitude, l.Frequency, l.Speed, l.Rotation)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	offset, err := clock.ParseTimeOfDay(sweepStart)
	if err != nil {
		return err
	}

	res, err := analysis.Sweep(analysis.SweepOptions{
		Tuning: &cfg.Tuning,
		Start:  clock.OnDay(time.Now(), offset),
		Span:   sweepSpan,
		Step:   sweepStep,
	})
	if err != nil {
		return err
	}
	w, _ := cmd.Flags().GetInt("width")
	h, _ := cmd.Flags().GetInt("height")
	fmt.Println(res.Plot(w, h))
	fmt.Print(res.Report())
	fmt.Printf("\nlargest step-to-step jump: %.4f\n", res.MaxJump())
	return nil
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	b, err := headlessBackend(cfg.Render.Backend)
	if err != nil {
		return err
	}
	drv, err := newDriver(cfg, b)
	if err != nil {
		return err
	}
	defer drv.Close()

	plane := drv.Plane()
	centre := plane.Side() / 2
	if row < 0 {
		row = centre
	}
	if col < 0 {
		col = centre
	}
	if row >= plane.Side() || col >= plane.Side() {
		return fmt.Errorf("vertex (%d, %d) outside a %dx%d grid", row, col, plane.Side(), plane.Side())
	}

	src, err := cfg.Source()
	if err != nil {
		return err
	}
	frameCount, _ := cmd.Flags().GetInt("frames")
	res, err := analysis.Spectrum(context.Background(), drv, analysis.SpectrumOptions{
		Steps: driver.Steps{
			Start:      src.Now(),
			Dt:         dt,
			Count:      frameCount,
			ClockSpeed: cfg.Clock.Speed,
		},
		Vertex: plane.Index(row, col),
		Hann:   hann,
	})
	if err != nil {
		return err
	}
	if len(res.Power) == 0 {
		return errors.New("not enough samples for a spectrum")
	}

	fmt.Printf("vertex (%d, %d), %d samples at %.4fs\n\n", row, col, len(res.Samples), dt)
	plot := res.Power
	if len(plot) > 4 {
		plot = plot[:len(plot)/4]
	}
	fmt.Println(asciigraph.Plot(plot,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (height)"),
	))
	fmt.Println()
	freq := res.PeakHz()
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	return nil
}

// currentFrame ticks a fresh driver once at the configured clock.
func currentFrame(cfg *config.Config) (driver.Frame, *driver.Driver, *metrics.Set, error) {
	b, err := headlessBackend(cfg.Render.Backend)
	if err != nil {
		return driver.Frame{}, nil, nil, err
	}
	drv, err := newDriver(cfg, b)
	if err != nil {
		return driver.Frame{}, nil, nil, err
	}
	set := metrics.Default()
	drv.AddObserver(set)

	src, err := cfg.Source()
	if err != nil {
		drv.Close()
		return driver.Frame{}, nil, nil, err
	}
	now := src.Now()
	elapsed := float64(now.Hour()*3600+now.Minute()*60+now.Second()) + float64(now.Nanosecond())/1e9
	f := drv.Tick(elapsed, 0, clock.FromTime(now))
	return f, drv, set, nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	f, drv, set, err := currentFrame(cfg)
	if err != nil {
		return err
	}
	defer drv.Close()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(f, drv.Plane(), drv.Backend().Name(), set.Values())
	if err != nil {
		return err
	}
	logging.Info("snapshot: saved %s", id)
	fmt.Printf("snapshot id: %s\n", id)
	fmt.Printf("clock: %s\n", f.Display)
	fmt.Printf("vertices: %d\n", len(f.Heights))
	return nil
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	snaps, err := st.List()
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Println("no snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSAVED\tCLOCK\tGRID\tL1 AMP\tL2 AMP\tBACKEND")
	for _, s := range snaps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.3f\t%.3f\t%s\n",
			s.ID,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.Clock,
			s.Segments,
			s.Layers[0].Amplitude,
			s.Layers[1].Amplitude,
			s.Backend,
		)
	}
	return w.Flush()
}

// exportFrame returns the snapshot named in args, or a fresh frame, with
// the options shared by both exporters.
func exportFrame(cmd *cobra.Command, args []string) (driver.Frame, *grid.Plane, export.Options, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return driver.Frame{}, nil, export.Options{}, err
	}
	w, _ := cmd.Flags().GetInt("width")
	h, _ := cmd.Flags().GetInt("height")
	opts := export.Options{
		Width:        w,
		Height:       h,
		Theme:        cfg.Appearance.Theme,
		Stride:       stride,
		MaxAmplitude: cfg.Tuning.MaxAmplitude(),
		Clock:        showClock,
	}

	if len(args) == 1 {
		f, plane, err := storage.New(dataDir).LoadFrame(args[0])
		return f, plane, opts, err
	}
	f, drv, _, err := currentFrame(cfg)
	if err != nil {
		return driver.Frame{}, nil, export.Options{}, err
	}
	defer drv.Close()
	return f, drv.Plane(), opts, nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	f, plane, opts, err := exportFrame(cmd, args)
	if err != nil {
		return err
	}

	var svg string
	if profileRow >= 0 {
		svg = export.ProfileSVG(f, plane, profileRow, opts.Width, opts.Height, f.Appearance.Tint)
		if svg == "" {
			return fmt.Errorf("row %d outside the grid", profileRow)
		}
	} else {
		svg = export.HeightmapSVG(f, plane, opts)
	}

	out, _ := cmd.Flags().GetString("out")
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func exportPNG(cmd *cobra.Command, args []string) error {
	f, plane, opts, err := exportFrame(cmd, args)
	if err != nil {
		return err
	}
	opts.PointScale = 2

	out, _ := cmd.Flags().GetString("out")
	if err := export.SavePNG(out, f, plane, opts); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	frameCount, _ := cmd.Flags().GetInt("frames")
	backends := []compute.Backend{compute.NewCPUBackend(1), compute.NewCPUBackend(0)}
	fmt.Printf("benchmarking %d frames on a %d-segment grid\n\n", frameCount, cfg.Grid.Segments)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BACKEND\tVERTICES\tFRAMES\tTIME\tFRAMES/SEC\tVERTICES/SEC")

	for _, b := range backends {
		drv, err := newDriver(cfg, b)
		if err != nil {
			return err
		}
		start := time.Now()
		err = drv.RunSteps(context.Background(), driver.Steps{
			Start: time.Now(),
			Dt:    1.0 / float64(cfg.Render.FPS),
			Count: frameCount,
		}, nil)
		elapsed := time.Since(start)
		drv.Close()
		if err != nil {
			return err
		}

		n := drv.Plane().Len()
		fps := float64(frameCount) / elapsed.Seconds()
		fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.1f\t%.0f\n",
			b.Name(), n, frameCount, elapsed.Round(time.Microsecond), fps, fps*float64(n))
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	cleanup, err := setupLogging(false)
	if err != nil {
		return err
	}
	defer cleanup()

	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")
	if err := os.MkdirAll(out, 0755); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := &automation.Runner{OutDir: out, Store: storage.New(dataDir)}
	results, err := r.RunScenario(ctx, sc)
	for _, res := range results {
		fmt.Printf("step %d  %s  %s  (%v)\n", res.Step, res.Clock, res.Path, res.Elapsed.Round(time.Millisecond))
	}
	return err
}
