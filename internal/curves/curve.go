package curves

import (
	"fmt"
	"math"
)

const (
	// Baseline is the resting arterial pressure every curve starts from.
	Baseline = 120.0
	// Domain is the length of the simulated time axis.
	Domain = 10.0
	// Samples is the number of evenly spaced points a curve is drawn with.
	Samples = 100
)

// Segment covers [From, To) and moves linearly from Start to End.
// A segment with Start == End is flat.
type Segment struct {
	From, To   float64
	Start, End float64
}

// Flat reports whether the segment holds a constant value.
func (s Segment) Flat() bool { return s.Start == s.End }

func (s Segment) at(t float64) float64 {
	if s.Flat() || math.IsInf(s.To, 1) {
		return s.Start
	}
	return s.Start + (s.End-s.Start)*(t-s.From)/(s.To-s.From)
}

// Hold returns a flat segment at pressure p.
func Hold(from, to, p float64) Segment {
	return Segment{From: from, To: to, Start: p, End: p}
}

// Ramp returns a linear segment from p0 at from to p1 at to.
func Ramp(from, to, p0, p1 float64) Segment {
	return Segment{From: from, To: to, Start: p0, End: p1}
}

// Rest returns the open-ended flat segment that closes a curve.
func Rest(from, p float64) Segment {
	return Hold(from, math.Inf(1), p)
}

// Curve is a named piecewise pressure response.
type Curve struct {
	name     string
	segments []Segment
}

// New validates the segments and builds a curve. Segments must be ordered,
// contiguous, and end with an open flat segment. Joins may be discontinuous.
func New(name string, segments ...Segment) (Curve, error) {
	if len(segments) == 0 {
		return Curve{}, fmt.Errorf("%s: %w", name, ErrEmptyCurve)
	}
	for i, s := range segments {
		if !(s.To > s.From) {
			return Curve{}, fmt.Errorf("%s: segment %d [%g, %g): %w", name, i, s.From, s.To, ErrUnordered)
		}
		if i > 0 && segments[i-1].To != s.From {
			return Curve{}, fmt.Errorf("%s: gap between %g and %g: %w", name, segments[i-1].To, s.From, ErrUnordered)
		}
	}
	last := segments[len(segments)-1]
	if !math.IsInf(last.To, 1) || !last.Flat() {
		return Curve{}, fmt.Errorf("%s: %w", name, ErrOpenRamp)
	}

	segs := make([]Segment, len(segments))
	copy(segs, segments)
	return Curve{name: name, segments: segs}, nil
}

// MustNew is New for package-level tables.
func MustNew(name string, segments ...Segment) Curve {
	c, err := New(name, segments...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Curve) Name() string { return c.name }

// Segments returns a copy of the curve's segments.
func (c Curve) Segments() []Segment {
	out := make([]Segment, len(c.segments))
	copy(out, c.segments)
	return out
}

// Eval returns the pressure at time t.
func (c Curve) Eval(t float64) float64 {
	if len(c.segments) == 0 {
		return Baseline
	}
	if t < c.segments[0].From {
		return c.segments[0].Start
	}
	for _, s := range c.segments {
		if t < s.To {
			return s.at(t)
		}
	}
	return c.segments[len(c.segments)-1].End
}

// EvalAll evaluates the curve at every point of xs into a fresh slice.
func (c Curve) EvalAll(xs []float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = c.Eval(x)
	}
	return ys
}

// Sample draws the curve at n evenly spaced points over [0, domain].
func (c Curve) Sample(n int, domain float64) (xs, ys []float64) {
	xs = Linspace(0, domain, n)
	return xs, c.EvalAll(xs)
}

// Final is the pressure the curve settles at.
func (c Curve) Final() float64 {
	if len(c.segments) == 0 {
		return Baseline
	}
	return c.segments[len(c.segments)-1].End
}

// ReturnsToBaseline reports whether the curve settles back at Baseline.
func (c Curve) ReturnsToBaseline() bool { return c.Final() == Baseline }

// Extremes returns the lowest and highest pressure the curve reaches.
// Piecewise-linear curves attain their extremes at segment anchors.
func (c Curve) Extremes() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range c.segments {
		lo = math.Min(lo, math.Min(s.Start, s.End))
		hi = math.Max(hi, math.Max(s.Start, s.End))
	}
	if len(c.segments) == 0 {
		return Baseline, Baseline
	}
	return lo, hi
}

// Breakpoints lists the times where a new segment begins, excluding zero.
func (c Curve) Breakpoints() []float64 {
	pts := make([]float64, 0, len(c.segments))
	for _, s := range c.segments {
		if s.From > 0 {
			pts = append(pts, s.From)
		}
	}
	return pts
}

// Linspace returns n evenly spaced values over [start, stop]. The last value
// is exactly stop.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if n == 1 {
		return []float64{start}
	}
	step := (stop - start) / float64(n-1)
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = start + float64(i)*step
	}
	xs[n-1] = stop
	return xs
}
