package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/wavefield/internal/config"
	"github.com/san-kum/wavefield/internal/driver"
	"github.com/san-kum/wavefield/internal/wave"
)

var presetInfo = map[string]string{
	"classic": "stock tuning",
	"calm":    "low, slow swell",
	"storm":   "tall fast chop",
	"tide":    "long waves, time-lapse clock",
}

const (
	stateMenu = iota
	stateConfig
	stateLive
)

// Builder turns an edited config into live view options.
type Builder func(cfg *config.Config) (Options, error)

type tuningParam struct {
	name string
	ptr  func(c *config.Config) *float64
}

func rangeParams(layer string, lt func(c *config.Config) *wave.LayerTuning) []tuningParam {
	return []tuningParam{
		{layer + ".amp.base", func(c *config.Config) *float64 { return &lt(c).Amplitude.Base }},
		{layer + ".amp.span", func(c *config.Config) *float64 { return &lt(c).Amplitude.Span }},
		{layer + ".freq.base", func(c *config.Config) *float64 { return &lt(c).Frequency.Base }},
		{layer + ".freq.span", func(c *config.Config) *float64 { return &lt(c).Frequency.Span }},
		{layer + ".speed.base", func(c *config.Config) *float64 { return &lt(c).Speed.Base }},
		{layer + ".speed.span", func(c *config.Config) *float64 { return &lt(c).Speed.Span }},
	}
}

var tuningParams = append(append(
	rangeParams("l1", func(c *config.Config) *wave.LayerTuning { return &c.Tuning.Layer1 }),
	rangeParams("l2", func(c *config.Config) *wave.LayerTuning { return &c.Tuning.Layer2 })...),
	tuningParam{"point_size", func(c *config.Config) *float64 { return &c.Appearance.PointSize }},
	tuningParam{"clock_speed", func(c *config.Config) *float64 { return &c.Clock.Speed }},
)

// menu picks a preset, lets the user nudge its tuning, then hands over to
// the live Model.
type menu struct {
	state, cursor int
	presets       []string
	selected      string
	cfg           *config.Config
	paramCursor   int
	editing       bool
	editBuf       string
	err           error
	build         Builder
	liveModel     Model
	// live is set once a field is running; it keeps ticking behind the
	// config screen and later starts retune it in place.
	live bool
}

func NewInteractiveApp(build Builder) *menu {
	return &menu{
		state:   stateMenu,
		presets: config.ListPresets(),
		build:   build,
	}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		if m.live {
			m.liveModel.resize(msg.Width, msg.Height)
		}
		return m, nil
	default:
		if m.live {
			newLive, cmd := m.liveModel.Update(msg)
			m.liveModel = newLive.(Model)
			return m, cmd
		}
	}
	return m, nil
}

func (m menu) handleKey(msg tea.KeyMsg) (menu, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateLive:
		if msg.String() == "e" {
			m.state, m.err = stateConfig, nil
			return m, nil
		}
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m menu) menuKey(msg tea.KeyMsg) (menu, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		m.cfg = config.GetPreset(m.selected)
		m.state, m.paramCursor, m.err = stateConfig, 0, nil
	}
	return m, nil
}

func (m menu) configKey(msg tea.KeyMsg) (menu, tea.Cmd) {
	p := tuningParams[m.paramCursor].ptr(m.cfg)
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%f", &val); err == nil {
				*p = val
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		if m.live {
			m.state = stateLive
		} else {
			m.state = stateMenu
		}
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(tuningParams)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, fmt.Sprintf("%.2f", *p)
	case "left", "h":
		*p -= 0.05
	case "right", "l":
		*p += 0.05
	case "s":
		return m.start()
	}
	return m, nil
}

// start opens the live view, or retunes the running one.
func (m menu) start() (menu, tea.Cmd) {
	if err := m.cfg.Validate(); err != nil {
		m.err = err
		return m, nil
	}
	if m.live {
		m.liveModel.Retune(m.cfg.Tuning, m.cfg.Format())
		m.liveModel.drv.SetAppearance(driver.Appearance{
			PointSize: m.cfg.Appearance.PointSize,
			Tint:      m.cfg.Appearance.Tint,
		})
		m.state = stateLive
		return m, nil
	}
	opts, err := m.build(m.cfg)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.liveModel = NewModel(opts)
	m.live = true
	m.state = stateLive
	return m, m.liveModel.Init()
}

func (m menu) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateLive:
		return m.liveModel.View()
	}
	return ""
}

var (
	menuTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	menuKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	menuErr    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(menuKey.Render(pairs[i]) + menuIdle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m menu) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("WAVEFIELD") + "\n    " + menuSub.Render("a clock you watch as a sea") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-10s", name)), menuDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-10s", name)), menuDim.Render(desc)))
		}
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m menu) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render(strings.ToUpper(m.selected)) + "\n    " + menuSub.Render(presetInfo[m.selected]) + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, tp := range tuningParams {
		valStr := fmt.Sprintf("%8.3f", *tp.ptr(m.cfg))
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%8s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-12s", tp.name)), menuDesc.Bold(true).Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", menuIdle.Render(fmt.Sprintf("  %-12s", tp.name)), menuDim.Render(valStr)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + menuErr.Render(m.err.Error()) + "\n")
	}
	action := "start"
	if m.live {
		action = "apply"
	}
	b.WriteString("\n    " + hints("j/k", "select", "h/l", "adjust", "s", action, "esc", "back") + "\n")
	return b.String()
}

// RunInteractive opens the preset menu.
func RunInteractive(build Builder) error {
	_, err := tea.NewProgram(NewInteractiveApp(build), tea.WithAltScreen()).Run()
	return err
}
