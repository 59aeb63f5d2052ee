package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/odelab/internal/dynamo"
)

const (
	liveWidth       = 60
	liveHeight      = 16
	historyCapacity = 600
	frameRate       = 30
)

type TickMsg time.Time

// LiveModel steps a simulation in real time inside a bubbletea program.
type LiveModel struct {
	sys        dynamo.System
	stepper    dynamo.Stepper
	state      dynamo.State
	initial    dynamo.State
	t          float64
	dt         float64
	duration   float64
	systemName string
	history    []float64
	canvas     *Canvas
	running    bool
	done       bool
	showHelp   bool
}

func NewLiveModel(sys dynamo.System, stepper dynamo.Stepper, x0 dynamo.State, dt, duration float64, systemName string) LiveModel {
	return LiveModel{
		sys:        sys,
		stepper:    stepper,
		state:      x0.Clone(),
		initial:    x0.Clone(),
		dt:         dt,
		duration:   duration,
		systemName: systemName,
		history:    make([]float64, 0, historyCapacity),
		canvas:     NewCanvas(liveWidth, liveHeight),
		running:    true,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m LiveModel) Init() tea.Cmd {
	return tick()
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.state = m.initial.Clone()
			m.t = 0
			m.done = false
			m.history = m.history[:0]
		case "?":
			m.showHelp = !m.showHelp
		}
		return m, nil

	case TickMsg:
		if m.running && !m.done {
			m.advance()
		}
		return m, tick()
	}

	return m, nil
}

// advance takes enough fixed steps to cover one display frame, clamping
// the final step so the run ends exactly at the configured duration.
func (m *LiveModel) advance() {
	frame := 1.0 / frameRate
	steps := int(frame / m.dt)
	if steps < 1 {
		steps = 1
	}

	for i := 0; i < steps && !m.done; i++ {
		remaining := m.duration - m.t
		dtStep := m.dt
		if remaining <= m.dt {
			dtStep = remaining
			m.done = true
		}

		m.state = m.stepper.Step(m.sys, m.state, m.t, dtStep)
		if m.done {
			m.t = m.duration
		} else {
			m.t += dtStep
		}

		if !m.state.IsValid() {
			m.done = true
		}
	}

	m.history = append(m.history, m.state[0])
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m LiveModel) View() string {
	m.drawSystem()

	left := CanvasStyle.Render(m.canvas.String())
	right := StatsStyle.Render(m.stats())

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	header := HeaderStyle.Render(fmt.Sprintf("odelab live: %s", m.systemName))
	graph := GraphStyle.Render(Sparkline(m.history, liveWidth))

	var help string
	if m.showHelp {
		help = HelpStyle.Render("space pause/resume  r reset  ? toggle help  q quit")
	} else {
		help = HelpStyle.Render("? for help")
	}

	return strings.Join([]string{header, body, graph, help}, "\n")
}

func (m LiveModel) drawSystem() {
	m.canvas.Clear()

	if m.systemName == "pendulum" && len(m.state) >= 2 {
		theta := m.state[0]
		px, py := liveWidth, 8 // pivot, sub-pixel coordinates
		length := 44.0
		bx := px + int(length*math.Sin(theta))
		by := py + int(length*math.Cos(theta))
		m.canvas.DrawLine(px, py, bx, by)
		m.canvas.Set(px, py)
		m.canvas.Set(bx, by)
		return
	}

	// generic: trace component 0 against time within the frame
	if len(m.history) >= 2 {
		lo, hi := m.history[0], m.history[0]
		for _, v := range m.history {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		span := hi - lo
		if span == 0 {
			span = 1
		}
		for i, v := range m.history {
			x := i * liveWidth * 2 / historyCapacity
			y := int((hi - v) / span * float64(liveHeight*4-1))
			m.canvas.Set(x, y)
		}
	}
}

func (m LiveModel) stats() string {
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(LabelStyle.Render(label) + ValueStyle.Render(value) + "\n")
	}

	status := "running"
	if m.done {
		status = "done"
	} else if !m.running {
		status = "paused"
	}

	row("status", status)
	row("t", fmt.Sprintf("%.2f / %.2f", m.t, m.duration))
	row("dt", fmt.Sprintf("%.4f", m.dt))
	for i, v := range m.state {
		row(fmt.Sprintf("x%d", i), fmt.Sprintf("%+.4f", v))
	}
	if h, ok := m.sys.(dynamo.Hamiltonian); ok {
		row("energy", fmt.Sprintf("%.6f", h.Energy(m.state)))
	}

	return b.String()
}

// Sparkline renders a compact single-row history of values.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / span
		idx := int(norm * float64(len(chars)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		b.WriteRune(chars[idx])
	}

	return b.String()
}

// RunLive starts the interactive live view and blocks until quit.
func RunLive(sys dynamo.System, stepper dynamo.Stepper, x0 dynamo.State, dt, duration float64, systemName string) error {
	p := tea.NewProgram(NewLiveModel(sys, stepper, x0, dt, duration, systemName))
	_, err := p.Run()
	return err
}
