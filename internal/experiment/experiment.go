package experiment

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/cardiosim/internal/catalog"
	"github.com/san-kum/cardiosim/internal/metrics"
	"github.com/san-kum/cardiosim/internal/pacer"
	"github.com/san-kum/cardiosim/internal/playback"
)

// Config describes one headless apply.
type Config struct {
	Drugs   []string
	Samples int
	Domain  float64
}

// Result is everything a finished apply produced.
type Result struct {
	Headline  string
	Applied   []string
	Plotted   string
	Legend    string
	Times     []float64
	Pressures []float64
	Schedule  pacer.Schedule
	Metrics   map[string]float64
}

type Experiment struct {
	cfg     Config
	app     *catalog.Application
	metrics []metrics.Metric
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup resolves the drug selection against reg. The selection is used as
// given; callers that want dependents pulled in pass it through a panel
// first.
func (e *Experiment) Setup(reg *catalog.Registry, ms []metrics.Metric) error {
	app, err := reg.Apply(e.cfg.Drugs)
	if err != nil {
		return err
	}
	e.app = app
	e.metrics = ms
	return nil
}

// Application returns the resolved selection, or nil before Setup.
func (e *Experiment) Application() *catalog.Application { return e.app }

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.app == nil {
		return nil, errors.New("experiment not setup")
	}

	plotted := e.app.Plotted
	pb, err := playback.New(plotted.Name, plotted.Curve, e.cfg.Samples, e.cfg.Domain)
	if err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}

	for _, m := range e.metrics {
		m.Reset()
	}
	observe := func() {
		t, p := pb.Current()
		for _, m := range e.metrics {
			m.Observe(t, p)
		}
	}

	observe()
	for !pb.Done() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		pb.Step()
		observe()
	}

	times, pressures := pb.Series()
	result := &Result{
		Headline:  e.app.Headline,
		Applied:   e.app.Names(),
		Plotted:   plotted.Name,
		Legend:    plotted.Legend,
		Times:     times,
		Pressures: pressures,
		Schedule:  e.app.Schedule,
		Metrics:   make(map[string]float64, len(e.metrics)),
	}
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
