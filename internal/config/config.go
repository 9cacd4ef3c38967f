package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/wavefield/internal/clock"
	"github.com/san-kum/wavefield/internal/wave"
)

const (
	DefaultSegments  = 128
	DefaultSize      = 10.0
	DefaultPointSize = 2.0
	DefaultTint      = "#2f8fff"
	DefaultTheme     = "ocean"
	DefaultFPS       = 60
	DefaultBackend   = "auto"

	MaxSegments  = 512
	MaxFPS       = 240
	MinPointSize = 1.0
	MaxPointSize = 10.0
)

var (
	ErrInvalidGrid    = errors.New("config: invalid grid")
	ErrInvalidTint    = errors.New("config: tint must be #rrggbb")
	ErrInvalidFPS     = errors.New("config: fps out of range")
	ErrUnknownBackend = errors.New("config: unknown backend")
	ErrUnknownPreset  = errors.New("config: unknown preset")
)

var tintPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var backends = map[string]bool{"auto": true, "cpu": true, "serial": true, "opengl": true}

type Config struct {
	Grid       GridConfig       `yaml:"grid"`
	Tuning     wave.Tuning      `yaml:"tuning"`
	Appearance AppearanceConfig `yaml:"appearance"`
	Clock      ClockConfig      `yaml:"clock"`
	Render     RenderConfig     `yaml:"render"`
}

type GridConfig struct {
	Segments int     `yaml:"segments"`
	Size     float64 `yaml:"size"`
}

type AppearanceConfig struct {
	PointSize float64 `yaml:"point_size"`
	Tint      string  `yaml:"tint"`
	Theme     string  `yaml:"theme"`
}

type ClockConfig struct {
	Meridiem bool `yaml:"meridiem"`
	// Offset is a start time of day ("03:00:00"); empty means now.
	Offset string  `yaml:"offset"`
	Speed  float64 `yaml:"speed"`
}

type RenderConfig struct {
	FPS     int    `yaml:"fps"`
	Backend string `yaml:"backend"`
}

func DefaultConfig() *Config {
	return &Config{
		Grid: GridConfig{
			Segments: DefaultSegments,
			Size:     DefaultSize,
		},
		Tuning: wave.DefaultTuning(),
		Appearance: AppearanceConfig{
			PointSize: DefaultPointSize,
			Tint:      DefaultTint,
			Theme:     DefaultTheme,
		},
		Clock: ClockConfig{Speed: 1},
		Render: RenderConfig{
			FPS:     DefaultFPS,
			Backend: DefaultBackend,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values no renderer can use and clamps the cosmetic ones:
// point size into [MinPointSize, MaxPointSize] and negative amplitude or
// frequency bases to zero.
func (c *Config) Validate() error {
	if c.Grid.Segments < 1 || c.Grid.Segments > MaxSegments {
		return fmt.Errorf("%w: segments %d not in [1, %d]", ErrInvalidGrid, c.Grid.Segments, MaxSegments)
	}
	if !(c.Grid.Size > 0) || math.IsInf(c.Grid.Size, 0) {
		return fmt.Errorf("%w: size %v must be positive", ErrInvalidGrid, c.Grid.Size)
	}
	if c.Render.FPS < 1 || c.Render.FPS > MaxFPS {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidFPS, c.Render.FPS, MaxFPS)
	}
	if c.Render.Backend == "" {
		c.Render.Backend = DefaultBackend
	}
	if !backends[c.Render.Backend] {
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Render.Backend)
	}
	if c.Appearance.Tint == "" {
		c.Appearance.Tint = DefaultTint
	}
	if !tintPattern.MatchString(c.Appearance.Tint) {
		return fmt.Errorf("%w: got %q", ErrInvalidTint, c.Appearance.Tint)
	}
	if c.Appearance.Theme == "" {
		c.Appearance.Theme = DefaultTheme
	}
	if c.Clock.Offset != "" {
		if _, err := clock.ParseTimeOfDay(c.Clock.Offset); err != nil {
			return fmt.Errorf("config: clock offset: %w", err)
		}
	}

	c.Appearance.PointSize = math.Min(MaxPointSize, math.Max(MinPointSize, c.Appearance.PointSize))
	for _, lt := range []*wave.LayerTuning{&c.Tuning.Layer1, &c.Tuning.Layer2} {
		lt.Amplitude.Base = math.Max(0, lt.Amplitude.Base)
		lt.Frequency.Base = math.Max(0, lt.Frequency.Base)
	}
	return nil
}

// Format is the clock display format for this config.
func (c *Config) Format() clock.Format {
	return clock.Format{Meridiem: c.Clock.Meridiem}
}

// Source builds the clock source described by the Clock section.
func (c *Config) Source() (clock.Source, error) {
	return clock.NewSource(c.Clock.Offset, c.Clock.Speed)
}

// Backends lists the accepted render.backend values.
func Backends() []string {
	return []string{"auto", "cpu", "serial", "opengl"}
}
