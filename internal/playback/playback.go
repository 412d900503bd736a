// Package playback reveals a sampled pressure curve one point per frame.
//
// A Playback is created for each apply and is never rewound; applying again
// replaces it with a new one.
package playback

import (
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/cardiosim/internal/curves"
)

// DefaultFrame is the delay between two revealed samples.
const DefaultFrame = 100 * time.Millisecond

var ErrEmptySeries = errors.New("playback: series needs at least two samples")

type Playback struct {
	drug  string
	x, y  []float64
	index int
}

// New samples c at n evenly spaced points over [0, domain]. The first
// sample is visible immediately.
func New(drug string, c curves.Curve, n int, domain float64) (*Playback, error) {
	if n < 2 {
		return nil, fmt.Errorf("%s: %d samples: %w", drug, n, ErrEmptySeries)
	}
	if !(domain > 0) {
		return nil, fmt.Errorf("%s: domain %g must be positive", drug, domain)
	}
	x, y := c.Sample(n, domain)
	return &Playback{drug: drug, x: x, y: y, index: 1}, nil
}

func (p *Playback) Drug() string { return p.drug }

// Step reveals one more sample and reports whether any remain hidden.
// Once done it does nothing.
func (p *Playback) Step() bool {
	if p.index < len(p.x) {
		p.index++
	}
	return p.index < len(p.x)
}

// Visible returns the revealed prefix. The slices alias the playback's
// series and must not be modified.
func (p *Playback) Visible() (x, y []float64) {
	return p.x[:p.index], p.y[:p.index]
}

// Series returns copies of the full sampled series.
func (p *Playback) Series() (x, y []float64) {
	x = append([]float64(nil), p.x...)
	y = append([]float64(nil), p.y...)
	return x, y
}

func (p *Playback) Index() int { return p.index }
func (p *Playback) Len() int   { return len(p.x) }
func (p *Playback) Done() bool { return p.index >= len(p.x) }

// Progress is the revealed fraction in [0, 1].
func (p *Playback) Progress() float64 {
	return float64(p.index) / float64(len(p.x))
}

// Current returns the most recently revealed sample.
func (p *Playback) Current() (t, pressure float64) {
	return p.x[p.index-1], p.y[p.index-1]
}

// Duration is how long the whole reveal takes at the given frame interval.
func (p *Playback) Duration(frame time.Duration) time.Duration {
	return time.Duration(len(p.x)-1) * frame
}
