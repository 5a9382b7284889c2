// Package viz renders a run live in the terminal: the engine is stepped
// between frames and the magnetization history is drawn as a sparkline.
package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/spinlab/internal/analysis"
	"github.com/san-kum/spinlab/internal/engine"
	"github.com/san-kum/spinlab/internal/spin"
	"github.com/san-kum/spinlab/internal/units"
)

const (
	graphWidth      = 70
	graphHeight     = 12
	historyCapacity = 600
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps the engine between frames and keeps bounded histories of
// the magnetization norm and spin temperature for the sparkline.
type Model struct {
	eng           *engine.Engine
	method        spin.Method
	params        engine.SweepParams
	consts        units.Constants
	dt            float64
	stepsPerFrame int
	fps           int
	running       bool
	magHistory    []float64
	tempHistory   []float64
	showTemp      bool
	err           error
}

// NewModel wraps an engine for live viewing. stepsPerFrame controls how
// much simulated time passes per rendered frame.
func NewModel(eng *engine.Engine, method spin.Method, params engine.SweepParams,
	consts units.Constants, dt float64, stepsPerFrame, fps int) Model {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	if fps < 1 {
		fps = 30
	}
	return Model{
		eng:           eng,
		method:        method,
		params:        params,
		consts:        consts,
		dt:            dt,
		stepsPerFrame: stepsPerFrame,
		fps:           fps,
		running:       true,
		magHistory:    make([]float64, 0, historyCapacity),
		tempHistory:   make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "t":
			m.showTemp = !m.showTemp
		case "up", "k":
			m.params.Temperature *= 1.05
		case "down", "j":
			m.params.Temperature *= 0.95
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances the engine by one frame worth of sweeps.
func (m *Model) step() {
	var err error
	switch m.method {
	case spin.MethodEuler:
		err = m.eng.EvolveEuler(context.Background(), m.stepsPerFrame, m.dt, m.params)
	case spin.MethodSymplectic:
		err = m.eng.EvolveSplit(context.Background(), m.stepsPerFrame, m.dt, m.params)
	default:
		err = m.eng.EvolveRK4(context.Background(), m.stepsPerFrame, m.dt, m.params)
	}
	if err != nil {
		m.err = err
		m.running = false
		return
	}

	sites := m.eng.Sites()
	m.magHistory = append(m.magHistory, analysis.MagnetizationLength(sites))
	if len(m.magHistory) > historyCapacity {
		m.magHistory = m.magHistory[1:]
	}
	m.tempHistory = append(m.tempHistory,
		analysis.SpinTemperature(m.consts, sites, analysis.SpinTemperatureCoefficient))
	if len(m.tempHistory) > historyCapacity {
		m.tempHistory = m.tempHistory[1:]
	}
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render("spinlab live"))
	sb.WriteByte('\n')

	history := m.magHistory
	caption := "|m|"
	if m.showTemp {
		history = m.tempHistory
		caption = "T_spin [K]"
	}
	if len(history) > 1 {
		window := history
		if len(window) > graphWidth {
			window = window[len(window)-graphWidth:]
		}
		graph := asciigraph.Plot(window,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption(caption))
		sb.WriteString(graphStyle.Render(graph))
		sb.WriteByte('\n')
	}

	sites := m.eng.Sites()
	mag := analysis.Magnetization(sites)
	rows := []struct {
		label string
		value string
	}{
		{"time", fmt.Sprintf("%.4g s", m.eng.Time())},
		{"sites", fmt.Sprintf("%d", len(sites))},
		{"temperature", fmt.Sprintf("%.1f K", m.params.Temperature)},
		{"alpha", fmt.Sprintf("%.3g", m.params.Alpha)},
		{"|m|", fmt.Sprintf("%.6f", mag.Norm())},
		{"m", fmt.Sprintf("(%.4f, %.4f, %.4f)", mag.X, mag.Y, mag.Z)},
	}
	for _, r := range rows {
		sb.WriteString(labelStyle.Render(r.label))
		sb.WriteString(valueStyle.Render(r.value))
		sb.WriteByte('\n')
	}

	if m.err != nil {
		sb.WriteString(valueStyle.Render("error: " + m.err.Error()))
		sb.WriteByte('\n')
	}
	if !m.running {
		sb.WriteString(valueStyle.Render("[paused]"))
		sb.WriteByte('\n')
	}

	sb.WriteString(helpStyle.Render("space: pause | t: toggle graph | up/down: temperature | q: quit"))
	sb.WriteByte('\n')
	return sb.String()
}
