package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/omega76/dsp/omega"
	"github.com/cwbudde/omega76/dsp/param"
)

const meterWidth = 40

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A40000"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFA500"))
	nameStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC")).Width(10)
	offStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	boxStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

func renderPanel(m Model) string {
	var b strings.Builder

	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")
	b.WriteString(boxStyle.Render(renderMeter(m)))
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(renderControls(m)))
	b.WriteString("\n")

	if m.Err != nil {
		b.WriteString(errorStyle.Render(m.Err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(subtitleStyle.Render("↑/↓ select  ←/→ adjust  space toggle  p power  r reset  q quit"))

	return b.String()
}

func renderHeader(m Model) string {
	title := titleStyle.Render("Ω76 Dynamics")

	if m.Title == "" {
		return title
	}

	return title + "\n" + subtitleStyle.Render(m.Title)
}

func renderMeter(m Model) string {
	gr := m.Meter.Value()
	label := fmt.Sprintf("GR %5.1f dB", gr)

	if on, _ := m.Store.Load(param.IDPower); on < 0.5 {
		label = offStyle.Render(label + "  (bypassed)")
	}

	return label + "\n" + renderBar(gr/omega.MaxGainReductionDB, meterWidth)
}

// renderBar draws a horizontal bar filled to fraction in [0, 1].
func renderBar(fraction float64, width int) string {
	fraction = max(0, min(fraction, 1))
	filled := int(fraction * float64(width))

	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func renderControls(m Model) string {
	var b strings.Builder

	for i, s := range m.Store.Layout().Specs() {
		cursor := "  "
		value := m.Store.Format(s.ID)

		if s.Kind == param.KindFloat {
			n, _ := m.Store.LoadNormalized(s.ID)
			value = renderBar(n, 12) + " " + value
		}

		line := nameStyle.Render(s.Name) + " " + value
		if i == m.Selected {
			cursor = selectedStyle.Render("▶ ")
			line = selectedStyle.Render(s.Name) + strings.Repeat(" ", max(0, 11-lipgloss.Width(s.Name))) + value
		}

		b.WriteString(cursor + line)

		if i < m.Store.Layout().Len()-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}
