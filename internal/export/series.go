package export

import (
	"github.com/san-kum/cardiosim/internal/experiment"
	"github.com/san-kum/cardiosim/internal/pacer"
	"github.com/san-kum/cardiosim/internal/storage"
)

// Series is the data behind one exported chart.
type Series struct {
	Headline  string             `json:"headline"`
	Drugs     []string           `json:"drugs"`
	Plotted   string             `json:"plotted"`
	Legend    string             `json:"legend,omitempty"`
	Times     []float64          `json:"times"`
	Pressures []float64          `json:"pressures"`
	Schedule  pacer.Schedule     `json:"schedule,omitempty"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

func FromResult(r *experiment.Result) Series {
	return Series{
		Headline:  r.Headline,
		Drugs:     r.Applied,
		Plotted:   r.Plotted,
		Legend:    r.Legend,
		Times:     r.Times,
		Pressures: r.Pressures,
		Schedule:  r.Schedule,
		Metrics:   r.Metrics,
	}
}

func FromRun(meta *storage.RunMetadata, times, pressures []float64) Series {
	return Series{
		Headline:  meta.Headline,
		Drugs:     meta.Drugs,
		Plotted:   meta.Plotted,
		Legend:    meta.Legend,
		Times:     times,
		Pressures: pressures,
		Schedule:  meta.Schedule,
		Metrics:   meta.Metrics,
	}
}
