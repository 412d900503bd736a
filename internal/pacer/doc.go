// Package pacer schedules heartbeat rate changes.
//
// Each drug carries a hand-authored [Schedule] of (delay, interval) events
// that runs independently of its pressure curve. A [Pacer] tags the events
// of every apply with a generation so that a newer apply cancels the older
// one's pending changes:
//
//	p := pacer.New(pacer.NewHeart(pacer.DefaultInterval), pacer.DefaultInterval)
//	for _, pd := range p.Apply(schedule) {
//	    // deliver pd after pd.Event.Delay, then:
//	    p.Fire(pd)
//	}
//
// [Runner] does the delivery with wall-clock timers for headless use; the
// terminal UI delivers through its own event loop instead.
package pacer
