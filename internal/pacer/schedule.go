package pacer

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DefaultInterval is the resting heartbeat toggle interval.
const DefaultInterval = 700 * time.Millisecond

// Event changes the heartbeat interval Delay after a drug is applied.
type Event struct {
	Delay    time.Duration `json:"delay" yaml:"delay"`
	Interval time.Duration `json:"interval" yaml:"interval"`
}

func (e Event) String() string {
	return fmt.Sprintf("+%v -> %v", e.Delay, e.Interval)
}

// Schedule is an ordered list of pacing events for one apply action.
type Schedule []Event

// At builds a schedule from alternating delay/interval pairs in milliseconds.
func At(pairs ...int) Schedule {
	if len(pairs)%2 != 0 {
		panic("pacer: At needs delay/interval pairs")
	}
	s := make(Schedule, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		s = append(s, Event{
			Delay:    time.Duration(pairs[i]) * time.Millisecond,
			Interval: time.Duration(pairs[i+1]) * time.Millisecond,
		})
	}
	return s
}

// Merge combines schedules into one ordered by delay. Events sharing a delay
// keep their argument order, so the later schedule wins when both fire.
func Merge(schedules ...Schedule) Schedule {
	n := 0
	for _, s := range schedules {
		n += len(s)
	}
	merged := make(Schedule, 0, n)
	for _, s := range schedules {
		merged = append(merged, s...)
	}
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Delay < merged[j].Delay })
	return merged
}

// Scaled divides every delay by speed. Intervals are left untouched so the
// heart keeps its authored rhythm. A non-positive speed returns a copy.
func (s Schedule) Scaled(speed float64) Schedule {
	out := make(Schedule, len(s))
	copy(out, s)
	if speed <= 0 || speed == 1 {
		return out
	}
	for i := range out {
		out[i].Delay = time.Duration(float64(out[i].Delay) / speed)
	}
	return out
}

// Duration is the delay of the last event.
func (s Schedule) Duration() time.Duration {
	var d time.Duration
	for _, e := range s {
		if e.Delay > d {
			d = e.Delay
		}
	}
	return d
}

// IntervalAt returns the interval in effect after elapsed time, starting
// from base.
func (s Schedule) IntervalAt(base, elapsed time.Duration) time.Duration {
	current := base
	for _, e := range s {
		if e.Delay > elapsed {
			break
		}
		current = e.Interval
	}
	return current
}

func (s Schedule) String() string {
	parts := make([]string, len(s))
	for i, e := range s {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// BPM converts a toggle interval to beats per minute. One beat is a full
// systole/diastole cycle, i.e. two toggles.
func BPM(interval time.Duration) float64 {
	if interval <= 0 {
		return 0
	}
	return float64(time.Minute) / float64(2*interval)
}
