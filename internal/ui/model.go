// Package ui provides the Bubbletea terminal front panel: a gain-reduction
// meter driven by the engine's telemetry and a list of editable controls.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/omega76/dsp/omega"
	"github.com/cwbudde/omega76/dsp/param"
)

// RefreshRate is the meter update rate in Hz.
const RefreshRate = 30

// knobStep is the normalized change of one left/right key press.
const knobStep = 0.02

// TickMsg advances the meter by one display frame.
type TickMsg time.Time

// Model is the Bubbletea model for the front panel.
type Model struct {
	Store *param.Store
	Meter *omega.Meter

	// Title is shown in the header.
	Title string

	Selected int
	Err      error

	Width  int
	Height int
}

// NewModel creates a panel editing store and displaying telemetry t.
func NewModel(store *param.Store, t *omega.Telemetry, title string) Model {
	return Model{
		Store: store,
		Meter: omega.NewMeter(t),
		Title: title,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/RefreshRate, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Init starts the display timer.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles key presses, resizes and timer ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.Err = nil

		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Selected > 0 {
				m.Selected--
			}
		case "down", "j":
			if m.Selected < m.Store.Layout().Len()-1 {
				m.Selected++
			}
		case "left", "h":
			m.Err = m.nudge(-1)
		case "right", "l":
			m.Err = m.nudge(1)
		case " ", "enter":
			m.Err = m.toggle(m.selectedSpec())
		case "p":
			if s, ok := m.Store.Layout().Lookup(param.IDPower); ok {
				m.Err = m.toggle(s)
			}
		case "r":
			m.Store.Reset()
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case TickMsg:
		m.Meter.Tick(RefreshRate)
		return m, tick()
	}

	return m, nil
}

// View renders the panel.
func (m Model) View() string {
	return renderPanel(m)
}

func (m Model) selectedSpec() param.Spec {
	return m.Store.Layout().Specs()[m.Selected]
}

// nudge moves the selected control one step in dir. Continuous controls
// move in normalized steps, discrete ones by one position.
func (m Model) nudge(dir float64) error {
	s := m.selectedSpec()

	if s.Kind == param.KindFloat {
		n, _ := m.Store.LoadNormalized(s.ID)
		return m.Store.SetNormalized(s.ID, n+dir*knobStep)
	}

	v, _ := m.Store.Load(s.ID)

	return m.Store.Set(s.ID, v+dir)
}

// toggle flips a switch or advances a selector, wrapping at the end.
// Continuous controls return to their default.
func (m Model) toggle(s param.Spec) error {
	v, _ := m.Store.Load(s.ID)

	switch s.Kind {
	case param.KindBool:
		return m.Store.Set(s.ID, 1-v)
	case param.KindChoice:
		next := int(v) + 1
		if next >= len(s.Choices) {
			next = 0
		}

		return m.Store.Set(s.ID, float64(next))
	default:
		return m.Store.Set(s.ID, s.Default)
	}
}
