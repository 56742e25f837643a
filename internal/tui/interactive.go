package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/geo/r3"

	"github.com/san-kum/kinesim/internal/backend"
	"github.com/san-kum/kinesim/internal/config"
	"github.com/san-kum/kinesim/internal/entity"
	"github.com/san-kum/kinesim/internal/motion"
	"github.com/san-kum/kinesim/internal/pose"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

type state int

const (
	stateConfig state = iota
	stateSim
)

type model struct {
	state state

	backendKind string
	params      map[string]float64
	paramNames  []string
	paramCursor int
	editing     bool
	editBuf     string

	running  bool
	paused   bool
	world    backend.World
	ref      entity.Ref
	origin   pose.Pose
	axis     r3.Vector
	simTime  float64
	traveled float64
	velocity float64
	command  float64
	phase    motion.Phase
	history  []float64

	width  int
	height int
}

// NewInteractiveApp builds the interactive scenario editor, seeded
// from the given configuration.
func NewInteractiveApp(cfg *config.Config) *model {
	return &model{
		state:       stateConfig,
		backendKind: cfg.Backend,
		params: map[string]float64{
			"displacement": cfg.Goal.Displacement,
			"cruise_speed": cfg.Goal.CruiseSpeed,
			"dest_speed":   cfg.Goal.DestSpeed,
			"v_max":        cfg.Motion.VMax,
			"a_max":        cfg.Motion.AMax,
			"a_nom":        cfg.Motion.ANom,
			"dx_min":       cfg.Motion.DxMin,
			"dt":           cfg.Dt,
		},
		paramNames: []string{
			"displacement", "cruise_speed", "dest_speed",
			"v_max", "a_max", "a_nom", "dx_min", "dt",
		},
		history: make([]float64, 0, 60),
		width:   80,
		height:  24,
	}
}

// RunInteractive starts the app and blocks until it exits.
func RunInteractive(cfg *config.Config) error {
	p := tea.NewProgram(NewInteractiveApp(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.state != stateSim {
			return m, nil
		}
		if m.running && !m.paused {
			m.step()
		}
		if m.running {
			return m, tick()
		}
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		return m.simKey(msg)
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			fmt.Sscanf(m.editBuf, "%f", &val)
			m.params[m.paramNames[m.paramCursor]] = val
			m.editing = false
			m.editBuf = ""
		case "escape":
			m.editing = false
			m.editBuf = ""
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
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "enter":
		m.editing = true
		m.editBuf = fmt.Sprintf("%.3f", m.params[m.paramNames[m.paramCursor]])
	case "b":
		if m.backendKind == "modern" {
			m.backendKind = "classic"
		} else {
			m.backendKind = "modern"
		}
	case "s":
		if err := m.start(); err == nil {
			m.state = stateSim
			return m, tea.Batch(tea.ClearScreen, tick())
		}
	}
	return m, nil
}

func (m model) simKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "escape":
		m.running = false
		m.state = stateConfig
		return m, tea.ClearScreen
	case " ", "p":
		m.paused = !m.paused
	case "r":
		if err := m.start(); err != nil {
			m.running = false
		}
		return m, tea.ClearScreen
	}
	return m, nil
}

func (m *model) motionParams() motion.Params {
	return motion.Params{
		VMax:  m.params["v_max"],
		AMax:  m.params["a_max"],
		ANom:  m.params["a_nom"],
		DxMin: m.params["dx_min"],
	}
}

func (m *model) start() error {
	if err := m.motionParams().Validate(); err != nil {
		return err
	}
	if m.params["dt"] <= 0 {
		return fmt.Errorf("tui: dt must be positive")
	}

	world, err := backend.Select(m.backendKind, nil)
	if err != nil {
		return err
	}
	ref, err := world.Spawn("cart_1", pose.Identity(), r3.Vector{X: 1})
	if err != nil {
		return err
	}

	m.world = world
	m.ref = ref
	m.origin, _, _ = world.State(ref)
	m.axis, _ = world.Axis(ref)
	m.simTime = 0
	m.traveled = 0
	m.velocity = 0
	m.command = 0
	m.history = make([]float64, 0, 60)
	m.running = true
	m.paused = false
	return nil
}

func (m *model) step() {
	dt := m.params["dt"]
	p, v, err := m.world.State(m.ref)
	if err != nil {
		m.running = false
		return
	}

	m.traveled = p.Translation.Sub(m.origin.Translation).Dot(m.axis)
	remaining := m.params["displacement"] - m.traveled
	m.velocity = v

	cmd, err := motion.DesiredVelocity(remaining, v,
		m.params["cruise_speed"], m.params["dest_speed"], m.motionParams(), dt)
	if err != nil {
		m.running = false
		return
	}
	m.command = cmd
	m.phase = motion.DesiredPhase(remaining, v, m.params["dest_speed"], m.motionParams())

	if err := m.world.Command(m.ref, cmd); err != nil {
		m.running = false
		return
	}
	m.world.Step(dt)
	m.simTime += dt

	m.history = append(m.history, cmd)
	if len(m.history) > 60 {
		m.history = m.history[1:]
	}
}

func (m model) View() string {
	switch m.state {
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.viewSim()
	}
	return ""
}

func (m model) viewConfig() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("k i n e s i m") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	b.WriteString("      " + dim.Render("backend   ") + magenta.Render(m.backendKind) + "\n\n")

	for i, name := range m.paramNames {
		val := fmt.Sprintf("%8.3f", m.params[name])
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%8s", m.editBuf+"▋")
		}
		if i == m.paramCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-14s", name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-14s", name)) + dim.Render(val) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  enter edit  b backend  s start  q quit") + "\n")

	return b.String()
}

func (m model) viewSim() string {
	var b strings.Builder

	statusIcon := green.Render("●")
	statusText := green.Render("running")
	if m.paused {
		statusIcon = yellow.Render("○")
		statusText = yellow.Render("paused")
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s\n\n",
		statusIcon, cyan.Render(m.backendKind), statusText, dim.Render(m.phase.String())))

	goal := m.params["displacement"]
	progress := 0.0
	if goal != 0 {
		progress = m.traveled / goal
	}
	if progress > 1 {
		progress = 1
	}
	if progress < 0 {
		progress = 0
	}
	barWidth := 40
	filled := int(progress * float64(barWidth))
	bar := cyan.Render(strings.Repeat("━", filled)) + dimmer.Render(strings.Repeat("─", barWidth-filled))
	b.WriteString(fmt.Sprintf("   %s %s\n\n", bar,
		dim.Render(fmt.Sprintf("%.3f / %.3f", m.traveled, goal))))

	b.WriteString(m.sparkline())

	b.WriteString(fmt.Sprintf("\n   %s %8.2fs\n", dim.Render("time"), m.simTime))
	b.WriteString(fmt.Sprintf("   %s %8.3f\n", dim.Render("velocity"), m.velocity))
	b.WriteString(fmt.Sprintf("   %s %8.3f\n", dim.Render("command"), m.command))

	b.WriteString("\n" + dim.Render("   space pause   r restart   q back") + "\n")

	return b.String()
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

func (m model) sparkline() string {
	if len(m.history) == 0 {
		return ""
	}

	vMax := m.params["v_max"]
	if vMax <= 0 {
		vMax = 1
	}

	var b strings.Builder
	b.WriteString("   ")
	for _, v := range m.history {
		frac := math.Abs(v) / vMax
		idx := int(frac * float64(len(sparkRunes)-1))
		if idx >= len(sparkRunes) {
			idx = len(sparkRunes) - 1
		}
		b.WriteRune(sparkRunes[idx])
	}
	return cyan.Render(b.String()) + "\n"
}
