package viz

import (
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cardiosim/internal/export"
)

// DefaultCaption heads the chart before anything is applied.
const DefaultCaption = "Efeito da Droga na Pressão Arterial"

// renderChart plots the revealed prefix ys of a series of total samples.
// The plot grows to the right as samples are revealed, so a partial series
// takes a proportional share of width. The y axis is fixed to the exported
// chart's range.
func renderChart(ys []float64, total, width, height int, caption string) string {
	if len(ys) == 0 || total <= 0 {
		return ""
	}
	series := ys
	if len(series) == 1 {
		series = []float64{ys[0], ys[0]}
	}

	w := width * len(ys) / total
	if w < 2 {
		w = 2
	}
	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(w),
		asciigraph.LowerBound(export.MinPressure),
		asciigraph.UpperBound(export.MaxPressure),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
	)
}
