package curves

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func allCurves() []Curve {
	return []Curve{
		Noradrenalina(), Adrenalina(), Isoprenalina(), Efedrina(),
		Acetilcolina(), Pilocarpina(), Alfabloqueador(), Neostigmina(),
		Nicotina(), Propanolol(), Atropina(), Hexametonio(), Flat(),
	}
}

func TestLinspace(t *testing.T) {
	xs := Linspace(0, Domain, Samples)
	if len(xs) != Samples {
		t.Fatalf("expected %d samples, got %d", Samples, len(xs))
	}
	if xs[0] != 0 {
		t.Errorf("expected first sample 0, got %f", xs[0])
	}
	if xs[len(xs)-1] != Domain {
		t.Errorf("expected last sample exactly %f, got %.17f", Domain, xs[len(xs)-1])
	}
	step := Domain / float64(Samples-1)
	if math.Abs(xs[1]-step) > eps {
		t.Errorf("expected step %f, got %f", step, xs[1])
	}

	if got := Linspace(0, 1, 0); len(got) != 0 {
		t.Errorf("expected empty slice, got %v", got)
	}
	if got := Linspace(3, 5, 1); len(got) != 1 || got[0] != 3 {
		t.Errorf("expected [3], got %v", got)
	}
}

func TestBaselineAtEnds(t *testing.T) {
	for _, c := range allCurves() {
		if got := c.Eval(0); got != Baseline {
			t.Errorf("%s: expected %v at t=0, got %v", c.Name(), Baseline, got)
		}
		if !c.ReturnsToBaseline() {
			continue
		}
		if got := c.Eval(Domain); got != Baseline {
			t.Errorf("%s: expected %v at t=%v, got %v", c.Name(), Baseline, Domain, got)
		}
	}
}

func TestOnlyHexametonioStaysLow(t *testing.T) {
	for _, c := range allCurves() {
		want := c.Name() != "hexametonio"
		if c.ReturnsToBaseline() != want {
			t.Errorf("%s: ReturnsToBaseline = %v", c.Name(), c.ReturnsToBaseline())
		}
	}
}

func TestEvalIdempotent(t *testing.T) {
	xs := Linspace(0, Domain, Samples)
	for _, c := range allCurves() {
		a := c.EvalAll(xs)
		b := c.EvalAll(xs)
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("%s: sample %d differs: %v vs %v", c.Name(), i, a[i], b[i])
			}
		}
	}
}

func TestHexametonioScenario(t *testing.T) {
	xs, ys := Hexametonio().Sample(Samples, Domain)

	for i, x := range xs {
		var want float64
		switch {
		case x < 3:
			want = 120
		case x < 3.5:
			want = 120 - 10*(x-3)/0.5
		default:
			want = 110
		}
		if math.Abs(ys[i]-want) > eps {
			t.Errorf("t=%.4f: expected %.4f, got %.4f", x, want, ys[i])
		}
	}

	if ys[0] != 120 {
		t.Errorf("expected series to start at 120, got %v", ys[0])
	}
	if ys[len(ys)-1] != 110 {
		t.Errorf("expected series to end at 110, got %v", ys[len(ys)-1])
	}
}

func TestSegmentShapes(t *testing.T) {
	tests := []struct {
		name  string
		curve Curve
		t     float64
		want  float64
	}{
		{"noradrenalina peak", Noradrenalina(), 5, 150},
		{"noradrenalina rising", Noradrenalina(), 4, 135},
		{"adrenalina dip", Adrenalina(), 7, 110},
		{"adrenalina recovery", Adrenalina(), 8, 115},
		{"isoprenalina trough", Isoprenalina(), 3.5, 60},
		{"efedrina plateau", Efedrina(), 6.5, 140},
		{"efedrina decline", Efedrina(), 9, 130},
		{"acetilcolina trough", Acetilcolina(), 3, 90},
		{"pilocarpina plateau", Pilocarpina(), 3, 80},
		{"pilocarpina recovery", Pilocarpina(), 4.5, 100},
		{"alfabloqueador low", Alfabloqueador(), 3.5, 100},
		{"alfabloqueador high", Alfabloqueador(), 4.75, 130},
		{"alfabloqueador fall", Alfabloqueador(), 5.5, 105},
		{"alfabloqueador snap", Alfabloqueador(), 6, 120},
		{"neostigmina trough", Neostigmina(), 3.6, 60},
		{"neostigmina recovery", Neostigmina(), 4.8, 90},
		{"nicotina first peak", Nicotina(), 3.4, 140},
		{"nicotina plateau", Nicotina(), 4.6, 130},
		{"nicotina second peak", Nicotina(), 5.8, 140},
		{"propanolol first peak", Propanolol(), 4, 140},
		{"propanolol rest", Propanolol(), 5.5, 120},
		{"propanolol second peak", Propanolol(), 7, 140},
		{"atropina notch", Atropina(), 4.5, 140},
		{"atropina second peak", Atropina(), 5, 150},
		{"flat", Flat(), 4.2, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.curve.Eval(tt.t); math.Abs(got-tt.want) > eps {
				t.Errorf("Eval(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestEvalOutsideDomain(t *testing.T) {
	c := Isoprenalina()
	if got := c.Eval(-1); got != Baseline {
		t.Errorf("expected baseline before zero, got %v", got)
	}
	if got := Hexametonio().Eval(1e6); got != 110 {
		t.Errorf("expected final value far past the domain, got %v", got)
	}
}

func TestExtremes(t *testing.T) {
	lo, hi := Alfabloqueador().Extremes()
	if lo != 80 || hi != 130 {
		t.Errorf("expected [80, 130], got [%v, %v]", lo, hi)
	}
	lo, hi = Flat().Extremes()
	if lo != Baseline || hi != Baseline {
		t.Errorf("expected flat extremes at baseline, got [%v, %v]", lo, hi)
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		segs []Segment
		want error
	}{
		{"empty", nil, ErrEmptyCurve},
		{"gap", []Segment{Hold(0, 1, 120), Rest(2, 120)}, ErrUnordered},
		{"reversed", []Segment{Hold(2, 1, 120), Rest(1, 120)}, ErrUnordered},
		{"closed", []Segment{Hold(0, 1, 120)}, ErrOpenRamp},
		{"open ramp", []Segment{Hold(0, 1, 120), Ramp(1, math.Inf(1), 120, 130)}, ErrOpenRamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.name, tt.segs...)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSegmentsAreCopied(t *testing.T) {
	c := Hexametonio()
	segs := c.Segments()
	segs[0].Start = 0
	if c.Eval(0) != Baseline {
		t.Error("mutating Segments() result changed the curve")
	}
}

func TestBreakpoints(t *testing.T) {
	got := Hexametonio().Breakpoints()
	want := []float64{3, 3.5}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("breakpoint %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}
