package pacer

import "time"

// Phase is the heartbeat image currently shown.
type Phase int

const (
	Systole Phase = iota
	Diastole
)

func (p Phase) String() string {
	if p == Systole {
		return "sístole"
	}
	return "diástole"
}

// Heart alternates between systole and diastole every interval.
type Heart struct {
	phase    Phase
	interval time.Duration
	toggles  int
}

func NewHeart(interval time.Duration) *Heart {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Heart{phase: Systole, interval: interval}
}

// Toggle swaps the phase and returns the new one.
func (h *Heart) Toggle() Phase {
	if h.phase == Systole {
		h.phase = Diastole
	} else {
		h.phase = Systole
	}
	h.toggles++
	return h.phase
}

// SetInterval changes the toggle rate. Non-positive intervals are ignored.
func (h *Heart) SetInterval(d time.Duration) {
	if d > 0 {
		h.interval = d
	}
}

func (h *Heart) Phase() Phase            { return h.phase }
func (h *Heart) Interval() time.Duration { return h.interval }
func (h *Heart) BPM() float64            { return BPM(h.interval) }

// Beats counts completed systole/diastole cycles.
func (h *Heart) Beats() int { return h.toggles / 2 }
