package viz

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour scheme of the overlays. Points are shaded from the
// appearance tint towards Crest as they rise.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Crest     lipgloss.Color
}

var (
	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"),
		Secondary: lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Crest:     lipgloss.Color("#e8fbff"),
	}

	ThemeNeon = Theme{
		Name:      "neon",
		Primary:   lipgloss.Color("#ff00ff"),
		Secondary: lipgloss.Color("#00ffff"),
		Accent:    lipgloss.Color("#ffff00"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666666"),
		Crest:     lipgloss.Color("#ff00ff"),
	}

	ThemeRetro = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"), // green phosphor
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Crest:     lipgloss.Color("#ccffcc"),
	}

	ThemeMono = Theme{
		Name:      "mono",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Crest:     lipgloss.Color("#ffffff"),
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Primary:   lipgloss.Color("#ff6b6b"),
		Secondary: lipgloss.Color("#feca57"),
		Accent:    lipgloss.Color("#ff9ff3"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Crest:     lipgloss.Color("#feca57"),
	}

	Themes = []Theme{
		ThemeOcean,
		ThemeNeon,
		ThemeRetro,
		ThemeMono,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to ocean.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeOcean
}

// NextTheme returns the theme after current, wrapping around.
func NextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

const shadeSteps = 8

// Shader maps a [0, 1] level to one of shadeSteps styles between a tint and
// the theme crest.
type Shader struct {
	styles [shadeSteps]lipgloss.Style
	colors [shadeSteps]string
}

func NewShader(tint string, theme Theme) *Shader {
	s := &Shader{}
	for i := 0; i < shadeSteps; i++ {
		t := float64(i) / float64(shadeSteps-1)
		s.colors[i] = MixHex(tint, string(theme.Crest), t)
		s.styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(s.colors[i]))
	}
	return s
}

func (s *Shader) step(level float64) int {
	if math.IsNaN(level) {
		return 0
	}
	i := int(level*float64(shadeSteps-1) + 0.5)
	if i < 0 {
		return 0
	}
	if i >= shadeSteps {
		return shadeSteps - 1
	}
	return i
}

func (s *Shader) Style(level float64) lipgloss.Style { return s.styles[s.step(level)] }

// Hex is the #rrggbb colour for level.
func (s *Shader) Hex(level float64) string { return s.colors[s.step(level)] }
