package metrics

import "math"

// Stability is the fraction of samples within threshold of baseline.
type Stability struct {
	baseline   float64
	threshold  float64
	violations int
	samples    int
}

func NewStability(baseline, threshold float64) *Stability {
	return &Stability{
		baseline:  baseline,
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return "stability"
}

func (s *Stability) Observe(t, pressure float64) {
	s.samples++
	if math.Abs(pressure-s.baseline) > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
