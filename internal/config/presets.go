package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/wavefield/internal/wave"
)

// Presets are complete configurations keyed by name.
var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"calm": preset(func(c *Config) {
		c.Tuning.Layer1.Amplitude = wave.Range{Base: 0.05, Span: 0.15}
		c.Tuning.Layer2.Amplitude = wave.Range{Base: 0.05, Span: 0.2}
		c.Tuning.Layer1.Speed = wave.Range{Base: 0.1, Span: 0.4}
		c.Tuning.Layer2.Speed = wave.Range{Base: 0.01, Span: 0.4}
		c.Appearance.Tint = "#7fc8f8"
		c.Appearance.Theme = "mono"
	}),
	"storm": preset(func(c *Config) {
		c.Tuning.Layer1.Amplitude = wave.Range{Base: 0.3, Span: 0.8}
		c.Tuning.Layer2.Amplitude = wave.Range{Base: 0.3, Span: 0.9}
		c.Tuning.Layer1.Frequency = wave.Range{Base: 0.5, Span: 3.5}
		c.Tuning.Layer1.Speed = wave.Range{Base: 0.8, Span: 2.5}
		c.Tuning.Layer2.Speed = wave.Range{Base: 0.5, Span: 2.5}
		c.Appearance.Tint = "#c0c8d0"
		c.Appearance.Theme = "neon"
		c.Appearance.PointSize = 1.5
	}),
	"tide": preset(func(c *Config) {
		c.Tuning.Layer1.Frequency = wave.Range{Base: 0.1, Span: 0.6}
		c.Tuning.Layer2.Frequency = wave.Range{Base: 0.05, Span: 0.7}
		c.Clock.Speed = 720
		c.Appearance.Tint = "#1f6f8b"
	}),
}

func preset(edit func(c *Config)) *Config {
	c := DefaultConfig()
	edit(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

// LoadPreset is GetPreset with an error for unknown names.
func LoadPreset(name string) (*Config, error) {
	cfg := GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
