package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/cardiosim/internal/catalog"
)

const (
	heartCols   = 20
	heartRows   = 10
	traceRows   = 2
	chartRows   = 12
	cellWidth   = 26
	minChartCol = 30
)

func (m Model) View() string {
	top := lipgloss.JoinHorizontal(lipgloss.Top, m.heartView(), m.chartView())

	var b strings.Builder
	b.WriteString(m.st.title.Render("cardiosim") + m.st.muted.Render("  simulador de efeito de drogas") + "\n\n")
	b.WriteString(top + "\n")
	b.WriteString(m.legendView() + "\n\n")
	b.WriteString(m.panelView() + "\n\n")
	if m.saving {
		b.WriteString(m.input.View())
	} else if m.failed {
		b.WriteString(m.st.errStatus.Render(m.status))
	} else {
		b.WriteString(m.st.status.Render(m.status))
	}
	b.WriteString("\n\n" + m.help.View(m.keys))
	return b.String()
}

func (m Model) heartView() string {
	c := NewCanvas(heartCols, heartRows)
	drawHeart(c, m.scale)
	trace := NewCanvas(heartCols, traceRows)
	drawTrace(trace, m.heart.Phase())

	var b strings.Builder
	b.WriteString(m.st.heart.Render(c.String()) + "\n")
	b.WriteString(m.st.trace.Render(trace.String()) + "\n\n")
	b.WriteString(m.st.label.Render("Frequência") + m.st.value.Render(fmt.Sprintf("%.0f bpm", m.heart.BPM())) + "\n")
	b.WriteString(m.st.label.Render("Fase") + m.st.value.Render(m.heart.Phase().String()) + "\n")
	b.WriteString(m.st.label.Render("Batimentos") + m.st.value.Render(fmt.Sprintf("%d", m.heart.Beats())))
	return m.st.box.Render(b.String())
}

func (m Model) chartWidth() int {
	if m.width == 0 {
		return 60
	}
	return max(minChartCol, m.width-heartCols-24)
}

func (m Model) chartView() string {
	width := m.chartWidth()
	headline := catalog.NoDrug
	if m.app != nil {
		headline = m.app.Headline
	}

	var b strings.Builder
	b.WriteString(m.st.header.Render(headline) + "\n")
	if m.playback == nil {
		b.WriteString(m.st.muted.Render(DefaultCaption))
		return m.st.box.Render(b.String())
	}

	_, ys := m.playback.Visible()
	b.WriteString(m.st.chart.Render(renderChart(ys, m.playback.Len(), width, chartRows, m.playback.Drug())) + "\n")
	t, p := m.playback.Current()
	b.WriteString(m.st.progressBar(m.playback.Progress(), width/2))
	b.WriteString(m.st.muted.Render(fmt.Sprintf("  t=%.1f  PA=%.0f", t, p)))
	return m.st.box.Render(b.String())
}

func (m Model) legendView() string {
	legend := "Legenda: " + catalog.NoDrug + "."
	if m.app != nil {
		legend = m.app.Plotted.Legend
	}
	w := heartCols + m.chartWidth() + 12
	return m.st.legend.Width(w).Render(legend)
}

func (m Model) panelView() string {
	items := m.panel.Items()
	rows := make([]string, 0, (len(items)+2)/3)
	for start := 0; start < len(items); start += 3 {
		cells := make([]string, 0, 3)
		for i := start; i < start+3 && i < len(items); i++ {
			cells = append(cells, m.cell(i, items[i]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func (m Model) cell(i int, name string) string {
	box, style := "[ ]", m.st.unchecked
	if m.panel.Checked(name) {
		box, style = "[x]", m.st.checked
	}
	pointer := "  "
	if i == m.cursor {
		pointer = "> "
		style = m.st.cursor
	}
	return style.Width(cellWidth).Render(pointer + box + " " + name)
}
