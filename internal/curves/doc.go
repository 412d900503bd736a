// Package curves provides the pressure response curves of the simulator.
//
// A [Curve] is a piecewise function of elapsed time (0..10 arbitrary units)
// to arterial pressure (mmHg-like scale, baseline 120). Segments are either
// flat or linear ramps between two (time, pressure) anchors:
//
//	c := curves.Hexametonio()
//	xs := curves.Linspace(0, curves.Domain, curves.Samples)
//	ys := c.EvalAll(xs)
//
// Curves are immutable values; evaluation has no hidden state and is safe
// for concurrent use.
package curves
