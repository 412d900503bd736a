package pacer

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Change reports an interval change applied by a Runner.
type Change struct {
	Elapsed  time.Duration
	Interval time.Duration
	BPM      float64
}

// Runner drives a Pacer from wall-clock timers for headless use. The Pacer
// is only touched under the runner's lock. Changes are delivered in firing
// order, one at a time, outside the lock.
type Runner struct {
	mu         sync.Mutex
	pacer      *Pacer
	timers     []*time.Timer
	started    time.Time
	left       int
	done       chan struct{}
	queue      []Change
	delivering bool
	onChange   func(Change)
}

// NewRunner returns an idle runner. onChange may call back into the runner,
// for instance to Cancel or Start a new schedule.
func NewRunner(p *Pacer, onChange func(Change)) *Runner {
	done := make(chan struct{})
	close(done)
	return &Runner{pacer: p, onChange: onChange, done: done}
}

// Start cancels whatever is pending and schedules s from now.
func (r *Runner) Start(s Schedule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked()
	pending := r.pacer.Apply(s)
	r.started = time.Now()
	r.left = len(pending)
	r.done = make(chan struct{})
	if r.left == 0 {
		close(r.done)
		return
	}

	log.Debug("pacer schedule started", "generation", r.pacer.Generation(), "events", len(pending))
	for _, pd := range pending {
		pd := pd
		r.timers = append(r.timers, time.AfterFunc(pd.Event.Delay, func() { r.fire(pd) }))
	}
}

func (r *Runner) fire(pd Pending) {
	r.mu.Lock()
	if !r.pacer.Fire(pd) {
		r.mu.Unlock()
		log.Debug("dropped stale pacer event", "generation", pd.Generation, "event", pd.Event)
		return
	}
	r.queue = append(r.queue, Change{
		Elapsed:  time.Since(r.started),
		Interval: pd.Event.Interval,
		BPM:      BPM(pd.Event.Interval),
	})
	r.left--
	if r.delivering {
		r.mu.Unlock()
		return
	}

	r.delivering = true
	for len(r.queue) > 0 {
		c := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		if r.onChange != nil {
			r.onChange(c)
		}
		r.mu.Lock()
	}
	r.delivering = false
	if r.left == 0 {
		r.closeDoneLocked()
	}
	r.mu.Unlock()
}

// Cancel stops every pending timer. Events already past their timer but
// waiting on the lock are dropped by the generation check.
func (r *Runner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

func (r *Runner) stopLocked() {
	for _, t := range r.timers {
		t.Stop()
	}
	r.timers = r.timers[:0]
	r.pacer.Cancel()
	r.queue = nil
	r.left = 0
	r.closeDoneLocked()
}

func (r *Runner) closeDoneLocked() {
	select {
	case <-r.done:
	default:
		close(r.done)
	}
}

// Done is closed once every event of the current schedule has fired or the
// schedule was canceled.
func (r *Runner) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}
