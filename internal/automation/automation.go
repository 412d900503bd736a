package automation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/cardiosim/internal/catalog"
	"github.com/san-kum/cardiosim/internal/experiment"
	"github.com/san-kum/cardiosim/internal/export"
	"github.com/san-kum/cardiosim/internal/metrics"
	"github.com/san-kum/cardiosim/internal/pacer"
	"github.com/san-kum/cardiosim/internal/selection"
	"github.com/san-kum/cardiosim/internal/storage"
	"gopkg.in/yaml.v3"
)

// Protocol is a scripted classroom sequence of applies.
type Protocol struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Speed       float64 `yaml:"speed"`
	Steps       []Step  `yaml:"steps"`
}

// Step applies a selection and holds it before the next step. Drugs are
// checked on a fresh panel, so dependents come along as they do in the UI.
type Step struct {
	Drugs  []string      `yaml:"drugs"`
	Preset string        `yaml:"preset"`
	Hold   time.Duration `yaml:"hold"`
	SaveAs string        `yaml:"save_as"`
	Export string        `yaml:"export"`
}

// Options carries what a protocol run needs from its caller.
type Options struct {
	Samples int
	Domain  float64
	Base    time.Duration
	// Speed overrides the protocol's own speed when positive.
	Speed float64
	// Store receives steps with save_as set; nil skips saving.
	Store *storage.Store
	// ExportDir is where relative export paths are resolved.
	ExportDir string
	// Presets resolves step presets.
	Presets func(name string) ([]string, bool)
	// OnChange observes every heartbeat interval change.
	OnChange func(step int, c pacer.Change)
}

// StepResult is the outcome of one protocol step.
type StepResult struct {
	Step     int
	Result   *experiment.Result
	RunID    string
	Exported string
	Changes  []pacer.Change
}

func LoadProtocol(path string) (*Protocol, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p Protocol
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(p.Steps) == 0 {
		return nil, fmt.Errorf("%s: protocol has no steps", path)
	}
	return &p, nil
}

// RunProtocol executes every step in order, pacing each one in real time
// scaled by speed. It stops at the first failing step and returns the steps
// completed so far.
func RunProtocol(ctx context.Context, p *Protocol, reg *catalog.Registry, opts Options) ([]StepResult, error) {
	speed := p.Speed
	if opts.Speed > 0 {
		speed = opts.Speed
	}
	if speed <= 0 {
		speed = 1
	}
	base := opts.Base
	if base <= 0 {
		base = pacer.DefaultInterval
	}

	results := make([]StepResult, 0, len(p.Steps))
	for i, step := range p.Steps {
		n := i + 1
		sr, err := runStep(ctx, n, step, reg, opts, speed, base)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", n, err)
		}
		results = append(results, sr)
	}
	return results, nil
}

func runStep(ctx context.Context, n int, step Step, reg *catalog.Registry, opts Options, speed float64, base time.Duration) (StepResult, error) {
	names := step.Drugs
	if step.Preset != "" {
		if opts.Presets == nil {
			return StepResult{}, fmt.Errorf("unknown preset %q", step.Preset)
		}
		drugs, ok := opts.Presets(step.Preset)
		if !ok {
			return StepResult{}, fmt.Errorf("unknown preset %q", step.Preset)
		}
		names = append(append([]string(nil), drugs...), names...)
	}
	resolved, err := reg.Resolve(names)
	if err != nil {
		return StepResult{}, err
	}

	panel := selection.NewPanel(catalog.GridOrder, catalog.Dependencies)
	if err := panel.Load(resolved); err != nil {
		return StepResult{}, err
	}

	exp := experiment.New(experiment.Config{
		Drugs:   panel.Selected(),
		Samples: opts.Samples,
		Domain:  opts.Domain,
	})
	if err := exp.Setup(reg, metrics.Default()); err != nil {
		return StepResult{}, err
	}
	result, err := exp.Run(ctx)
	if err != nil {
		return StepResult{}, err
	}

	log.Info("applying", "step", n, "headline", result.Headline, "drugs", result.Applied)
	sr := StepResult{Step: n, Result: result}

	if step.SaveAs != "" && opts.Store != nil {
		id, err := opts.Store.SaveAs(step.SaveAs, result)
		if err != nil {
			return sr, fmt.Errorf("save %s: %w", step.SaveAs, err)
		}
		sr.RunID = id
		log.Info("saved run", "step", n, "name", step.SaveAs, "id", id)
	}

	if step.Export != "" {
		path := step.Export
		if !filepath.IsAbs(path) && opts.ExportDir != "" {
			path = filepath.Join(opts.ExportDir, path)
		}
		f, err := export.FormatFromPath(path, export.PNG)
		if err != nil {
			return sr, err
		}
		path = export.WithExt(path, f)
		if err := export.SaveFile(path, f, export.FromResult(result)); err != nil {
			return sr, fmt.Errorf("export %s: %w", path, err)
		}
		sr.Exported = path
		log.Info("exported chart", "step", n, "path", path)
	}

	changes, err := pace(ctx, n, result.Schedule, step.Hold, speed, base, opts.OnChange)
	sr.Changes = changes
	return sr, err
}

// pace plays a schedule on a headless heart and waits until every event has
// fired and the hold time has passed.
func pace(ctx context.Context, n int, s pacer.Schedule, hold time.Duration, speed float64, base time.Duration, onChange func(int, pacer.Change)) ([]pacer.Change, error) {
	var changes []pacer.Change
	record := func(c pacer.Change) {
		changes = append(changes, c)
		log.Debug("heart rate", "step", n, "interval", c.Interval, "bpm", c.BPM)
		if onChange != nil {
			onChange(n, c)
		}
	}

	changed := make(chan pacer.Change, len(s))
	heart := pacer.NewHeart(base)
	runner := pacer.NewRunner(pacer.New(heart, base), func(c pacer.Change) {
		changed <- c
	})
	defer runner.Cancel()

	runner.Start(s.Scaled(speed))
	wait := time.NewTimer(time.Duration(float64(hold) / speed))
	defer wait.Stop()

	done := runner.Done()
	holding := true
	for done != nil || holding {
		select {
		case <-ctx.Done():
			return changes, ctx.Err()
		case c := <-changed:
			record(c)
		case <-done:
			done = nil
		case <-wait.C:
			holding = false
		}
	}

	// Changes are queued before done closes.
	for {
		select {
		case c := <-changed:
			record(c)
		default:
			return changes, nil
		}
	}
}
