package metrics

import "math"

type Peak struct {
	max  float64
	seen bool
}

func NewPeak() *Peak { return &Peak{} }

func (p *Peak) Name() string { return "peak" }

func (p *Peak) Observe(t, pressure float64) {
	if !p.seen || pressure > p.max {
		p.max = pressure
		p.seen = true
	}
}

func (p *Peak) Value() float64 { return p.max }
func (p *Peak) Reset()         { *p = Peak{} }

type Trough struct {
	min  float64
	seen bool
}

func NewTrough() *Trough { return &Trough{} }

func (tr *Trough) Name() string { return "trough" }

func (tr *Trough) Observe(t, pressure float64) {
	if !tr.seen || pressure < tr.min {
		tr.min = pressure
		tr.seen = true
	}
}

func (tr *Trough) Value() float64 { return tr.min }
func (tr *Trough) Reset()         { *tr = Trough{} }

// TimeToPeak is the time of the largest excursion from baseline, in either
// direction. The first occurrence wins on ties; a flat series reports 0.
type TimeToPeak struct {
	baseline float64
	best     float64
	at       float64
}

func NewTimeToPeak(baseline float64) *TimeToPeak {
	return &TimeToPeak{baseline: baseline}
}

func (m *TimeToPeak) Name() string { return "time_to_peak" }

func (m *TimeToPeak) Observe(t, pressure float64) {
	if d := math.Abs(pressure - m.baseline); d > m.best {
		m.best = d
		m.at = t
	}
}

func (m *TimeToPeak) Value() float64 { return m.at }

func (m *TimeToPeak) Reset() {
	m.best = 0
	m.at = 0
}

// MeanDeviation is the mean absolute distance from baseline.
type MeanDeviation struct {
	baseline float64
	sum      float64
	samples  int
}

func NewMeanDeviation(baseline float64) *MeanDeviation {
	return &MeanDeviation{baseline: baseline}
}

func (m *MeanDeviation) Name() string { return "mean_deviation" }

func (m *MeanDeviation) Observe(t, pressure float64) {
	m.sum += math.Abs(pressure - m.baseline)
	m.samples++
}

func (m *MeanDeviation) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanDeviation) Reset() {
	m.sum = 0
	m.samples = 0
}

// RecoveryTime is the time from which the series stays within tolerance of
// baseline after its last excursion. It is 0 for a series that never left
// baseline and -1 for one that has not come back by its last sample.
type RecoveryTime struct {
	baseline  float64
	tolerance float64
	deviated  bool
	recovered float64
}

func NewRecoveryTime(baseline, tolerance float64) *RecoveryTime {
	return &RecoveryTime{baseline: baseline, tolerance: tolerance}
}

func (m *RecoveryTime) Name() string { return "recovery_time" }

func (m *RecoveryTime) Observe(t, pressure float64) {
	if math.Abs(pressure-m.baseline) > m.tolerance {
		m.deviated = true
		m.recovered = -1
		return
	}
	if m.deviated && m.recovered < 0 {
		m.recovered = t
	}
}

func (m *RecoveryTime) Value() float64 {
	if !m.deviated {
		return 0
	}
	return m.recovered
}

func (m *RecoveryTime) Reset() {
	m.deviated = false
	m.recovered = 0
}
