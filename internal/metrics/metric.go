// Package metrics summarises a pressure series. Metrics are fed one sample
// at a time, so they work the same on a finished run and on a playback that
// is still revealing points.
package metrics

import "github.com/san-kum/cardiosim/internal/curves"

type Metric interface {
	Name() string
	Observe(t, pressure float64)
	Value() float64
	Reset()
}

// Default returns a fresh set of the metrics recorded with every run.
func Default() []Metric {
	return []Metric{
		NewPeak(),
		NewTrough(),
		NewTimeToPeak(curves.Baseline),
		NewMeanDeviation(curves.Baseline),
		NewRecoveryTime(curves.Baseline, 0.5),
		NewStability(curves.Baseline, 10),
	}
}

// Evaluate resets ms, feeds them every (xs[i], ys[i]) pair and collects
// their values by name.
func Evaluate(xs, ys []float64, ms ...Metric) map[string]float64 {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for i := 0; i < n; i++ {
			m.Observe(xs[i], ys[i])
		}
		out[m.Name()] = m.Value()
	}
	return out
}
