package export

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	ChartWidth  = 1024
	ChartHeight = 640

	// Axis limits of the on-screen chart.
	MinPressure = 0.0
	MaxPressure = 200.0
	MaxTime     = 10.0
)

// Title is the heading an exported chart carries.
func Title(headline string) string {
	return "Efeito da Droga: " + headline
}

// Chart builds the go-chart description of s.
func Chart(s Series) (*chart.Chart, error) {
	if len(s.Times) < 2 || len(s.Times) != len(s.Pressures) {
		return nil, fmt.Errorf("chart needs at least two paired samples, got %d/%d", len(s.Times), len(s.Pressures))
	}

	maxTime := MaxTime
	if last := s.Times[len(s.Times)-1]; last > maxTime {
		maxTime = last
	}

	ch := &chart.Chart{
		Title:      Title(s.Headline),
		Width:      ChartWidth,
		Height:     ChartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "Tempo",
			Range: &chart.ContinuousRange{Min: 0, Max: maxTime},
		},
		YAxis: chart.YAxis{
			Name:  "Pressão Arterial",
			Range: &chart.ContinuousRange{Min: MinPressure, Max: MaxPressure},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    s.Plotted,
				XValues: s.Times,
				YValues: s.Pressures,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("d62728"),
					StrokeWidth: 3,
				},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(ch)}
	return ch, nil
}

// RenderChart draws s as a PNG or SVG document.
func RenderChart(w io.Writer, f Format, s Series) error {
	var provider chart.RendererProvider
	switch f {
	case PNG:
		provider = chart.PNG
	case SVG:
		provider = chart.SVG
	default:
		return fmt.Errorf("%w: %q is not a chart format", ErrUnknownFormat, f)
	}

	ch, err := Chart(s)
	if err != nil {
		return err
	}
	return ch.Render(provider, w)
}
