package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	heart     lipgloss.Style
	trace     lipgloss.Style
	chart     lipgloss.Style
	legend    lipgloss.Style
	checked   lipgloss.Style
	unchecked lipgloss.Style
	cursor    lipgloss.Style
	status    lipgloss.Style
	errStatus lipgloss.Style
	muted     lipgloss.Style
	box       lipgloss.Style
	barFull   lipgloss.Style
	barEmpty  lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		header:    lipgloss.NewStyle().Bold(true).Foreground(t.Secondary).MarginBottom(1),
		label:     lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:     lipgloss.NewStyle().Foreground(t.Text),
		heart:     lipgloss.NewStyle().Foreground(t.Heart),
		trace:     lipgloss.NewStyle().Foreground(t.Trace),
		chart:     lipgloss.NewStyle().Foreground(t.Trace).Padding(0, 1),
		legend:    lipgloss.NewStyle().Foreground(t.Text).Italic(true),
		checked:   lipgloss.NewStyle().Foreground(t.Success),
		unchecked: lipgloss.NewStyle().Foreground(t.Text),
		cursor:    lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		status:    lipgloss.NewStyle().Foreground(t.Secondary),
		errStatus: lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		muted:     lipgloss.NewStyle().Foreground(t.Muted),
		box:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Muted).Padding(0, 1),
		barFull:   lipgloss.NewStyle().Foreground(t.Success),
		barEmpty:  lipgloss.NewStyle().Foreground(t.Muted),
	}
}

// progressBar renders percent in [0, 1] as a bar of width cells.
func (s styles) progressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return s.barFull.Render(strings.Repeat("█", filled)) + s.barEmpty.Render(strings.Repeat("░", width-filled))
}
