package pacer

import (
	"sync/atomic"
	"time"
)

// Pending is an event scheduled under a given apply generation.
type Pending struct {
	Generation uint64
	Event      Event
}

// Pacer owns the heart rate choreography. Every Apply starts a new
// generation; events from older generations are dropped when they fire, so
// re-applying a drug cancels whatever the previous apply left pending.
//
// Apply and Fire are meant to be called from a single event loop. The
// generation counter is atomic so Cancel may be called from elsewhere.
type Pacer struct {
	heart      *Heart
	base       time.Duration
	generation atomic.Uint64
}

func New(heart *Heart, base time.Duration) *Pacer {
	if base <= 0 {
		base = DefaultInterval
	}
	return &Pacer{heart: heart, base: base}
}

func (p *Pacer) Heart() *Heart { return p.heart }

func (p *Pacer) Generation() uint64 { return p.generation.Load() }

// Apply resets the heart to the base interval and returns the schedule's
// events tagged with a fresh generation.
func (p *Pacer) Apply(s Schedule) []Pending {
	gen := p.generation.Add(1)
	p.heart.SetInterval(p.base)
	pending := make([]Pending, len(s))
	for i, e := range s {
		pending[i] = Pending{Generation: gen, Event: e}
	}
	return pending
}

// Fire applies a pending event if it belongs to the current generation and
// reports whether it did.
func (p *Pacer) Fire(pd Pending) bool {
	if pd.Generation != p.generation.Load() {
		return false
	}
	p.heart.SetInterval(pd.Event.Interval)
	return true
}

// Cancel invalidates every pending event without touching the heart.
func (p *Pacer) Cancel() {
	p.generation.Add(1)
}
