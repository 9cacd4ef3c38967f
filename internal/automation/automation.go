package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/wavefield/internal/clock"
	"github.com/san-kum/wavefield/internal/compute"
	"github.com/san-kum/wavefield/internal/config"
	"github.com/san-kum/wavefield/internal/driver"
	"github.com/san-kum/wavefield/internal/export"
	"github.com/san-kum/wavefield/internal/grid"
	"github.com/san-kum/wavefield/internal/logging"
	"github.com/san-kum/wavefield/internal/storage"
)

var ErrUnknownOutput = errors.New("automation: unknown output")

// Scenario defines a scripted sequence of renders
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep runs the field from a time of day and writes the last frame.
type ScenarioStep struct {
	Preset string `yaml:"preset"`
	// At is the wall clock of the first frame ("03:15:00").
	At string `yaml:"at"`
	// Speed is the clock multiplier; zero keeps the preset's.
	Speed  float64 `yaml:"speed"`
	Frames int     `yaml:"frames"`
	Dt     float64 `yaml:"dt"`
	// Output is png, svg or snapshot.
	Output string `yaml:"output"`
	SaveAs string `yaml:"save_as"`
	Tint   string `yaml:"tint"`
}

type StepResult struct {
	Step    int
	Clock   string
	Path    string // file written, or snapshot id
	Elapsed time.Duration
}

// Runner holds where scenario output goes.
type Runner struct {
	OutDir string
	Store  *storage.Store
	// Day anchors step times; zero means today.
	Day time.Time
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

func (s ScenarioStep) withDefaults() ScenarioStep {
	if s.Frames <= 0 {
		s.Frames = 1
	}
	if s.Dt <= 0 {
		s.Dt = 1.0 / config.DefaultFPS
	}
	if s.Output == "" {
		s.Output = "png"
	}
	return s
}

// RunScenario executes all steps in a scenario
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))
	day := r.Day
	if day.IsZero() {
		day = time.Now()
	}

	for i, step := range scenario.Steps {
		logging.Info("scenario %s: step %d/%d at %s", scenario.Name, i+1, len(scenario.Steps), step.At)
		res, err := r.runStep(ctx, i, step.withDefaults(), day)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) runStep(ctx context.Context, i int, step ScenarioStep, day time.Time) (StepResult, error) {
	start := time.Now()

	cfg := config.DefaultConfig()
	if step.Preset != "" {
		p, err := config.LoadPreset(step.Preset)
		if err != nil {
			return StepResult{}, err
		}
		cfg = p
	}
	if step.Tint != "" {
		cfg.Appearance.Tint = step.Tint
	}
	if err := cfg.Validate(); err != nil {
		return StepResult{}, err
	}

	speed := step.Speed
	if speed == 0 {
		speed = cfg.Clock.Speed
	}

	var offset time.Duration
	if step.At != "" {
		var err error
		if offset, err = clock.ParseTimeOfDay(step.At); err != nil {
			return StepResult{}, err
		}
	}

	plane, err := grid.NewPlane(cfg.Grid.Segments, cfg.Grid.Size)
	if err != nil {
		return StepResult{}, err
	}
	drv, err := driver.New(driver.Options{
		Plane:      plane,
		Tuning:     &cfg.Tuning,
		Format:     cfg.Format(),
		Backend:    compute.NewCPUBackend(0),
		Appearance: driver.Appearance{PointSize: cfg.Appearance.PointSize, Tint: cfg.Appearance.Tint},
	})
	if err != nil {
		return StepResult{}, err
	}
	defer drv.Close()

	err = drv.RunSteps(ctx, driver.Steps{
		Start:      clock.OnDay(day, offset),
		Dt:         step.Dt,
		Count:      step.Frames,
		ClockSpeed: speed,
	}, nil)
	if err != nil {
		return StepResult{}, err
	}
	f := drv.Last()

	name := step.SaveAs
	if name == "" {
		name = fmt.Sprintf("step%02d", i+1)
	}

	var path string
	switch step.Output {
	case "png":
		path = filepath.Join(r.OutDir, name+".png")
		err = export.SavePNG(path, f, plane, export.Options{
			Theme:        cfg.Appearance.Theme,
			MaxAmplitude: cfg.Tuning.MaxAmplitude(),
			PointScale:   2,
			Clock:        true,
		})
	case "svg":
		path = filepath.Join(r.OutDir, name+".svg")
		svg := export.HeightmapSVG(f, plane, export.Options{
			Theme:        cfg.Appearance.Theme,
			MaxAmplitude: cfg.Tuning.MaxAmplitude(),
			Clock:        true,
		})
		err = os.WriteFile(path, []byte(svg), 0644)
	case "snapshot":
		if r.Store == nil {
			return StepResult{}, fmt.Errorf("%w: snapshot needs a store", ErrUnknownOutput)
		}
		path, err = r.Store.Save(f, plane, drv.Backend().Name(), nil)
	default:
		return StepResult{}, fmt.Errorf("%w: %q", ErrUnknownOutput, step.Output)
	}
	if err != nil {
		return StepResult{}, err
	}

	return StepResult{
		Step:    i + 1,
		Clock:   f.Display,
		Path:    path,
		Elapsed: time.Since(start),
	}, nil
}
