package curves

// Response curves for a 10kg dog. Times are in simulation units, pressures
// on the baseline-120 scale.
var (
	noradrenalina = MustNew("noradrenalina",
		Hold(0, 3, Baseline),
		Ramp(3, 5, Baseline, 150),
		Ramp(5, 7, 150, Baseline),
		Rest(7, Baseline),
	)

	adrenalina = MustNew("adrenalina",
		Hold(0, 3, Baseline),
		Ramp(3, 5, Baseline, 150),
		Ramp(5, 7, 150, 110),
		Ramp(7, 9, 110, Baseline),
		Rest(9, Baseline),
	)

	isoprenalina = MustNew("isoprenalina",
		Hold(0, 3, Baseline),
		Ramp(3, 3.5, Baseline, 60),
		Ramp(3.5, 4, 60, Baseline),
		Rest(4, Baseline),
	)

	efedrina = MustNew("efedrina",
		Hold(0, 3, Baseline),
		Ramp(3, 5, Baseline, 140),
		Hold(5, 8, 140),
		Ramp(8, 10, 140, Baseline),
		Rest(10, Baseline),
	)

	acetilcolina = MustNew("acetilcolina",
		Hold(0, 2, Baseline),
		Ramp(2, 3, Baseline, 90),
		Ramp(3, 4, 90, Baseline),
		Rest(4, Baseline),
	)

	pilocarpina = MustNew("pilocarpina",
		Hold(0, 2, Baseline),
		Ramp(2, 2.5, Baseline, 80),
		Hold(2.5, 3.5, 80),
		Ramp(3.5, 5.5, 80, Baseline),
		Rest(5.5, Baseline),
	)

	// The fall towards 80 is cut short at t=6, where pressure snaps back.
	alfabloqueador = MustNew("alfabloqueador",
		Hold(0, 2, Baseline),
		Ramp(2, 3, Baseline, 100),
		Hold(3, 4, 100),
		Ramp(4, 4.5, 100, 130),
		Hold(4.5, 5, 130),
		Ramp(5, 6, 130, 80),
		Rest(6, Baseline),
	)

	neostigmina = MustNew("neostigmina",
		Hold(0, 1, Baseline),
		Ramp(1, 1.4, Baseline, 110),
		Hold(1.4, 2.4, 110),
		Ramp(2.4, 3.4, 110, 60),
		Hold(3.4, 3.8, 60),
		Ramp(3.8, 5.8, 60, Baseline),
		Rest(5.8, Baseline),
	)

	nicotina = MustNew("nicotina",
		Hold(0, 1, Baseline),
		Ramp(1, 1.8, Baseline, 110),
		Hold(1.8, 2.6, 110),
		Ramp(2.6, 3.4, 110, 140),
		Ramp(3.4, 4.2, 140, 130),
		Hold(4.2, 5, 130),
		Ramp(5, 5.8, 130, 140),
		Ramp(5.8, 6.6, 140, Baseline),
		Rest(6.6, Baseline),
	)

	propanolol = MustNew("propanolol",
		Hold(0, 3, Baseline),
		Ramp(3, 4, Baseline, 140),
		Ramp(4, 5, 140, Baseline),
		Hold(5, 6, Baseline),
		Ramp(6, 7, Baseline, 140),
		Ramp(7, 8, 140, Baseline),
		Rest(8, Baseline),
	)

	atropina = MustNew("atropina",
		Hold(0, 3, Baseline),
		Ramp(3, 4, Baseline, 150),
		Ramp(4, 4.5, 150, 140),
		Ramp(4.5, 5, 140, 150),
		Ramp(5, 6, 150, Baseline),
		Rest(6, Baseline),
	)

	hexametonio = MustNew("hexametonio",
		Hold(0, 3, Baseline),
		Ramp(3, 3.5, Baseline, 110),
		Rest(3.5, 110),
	)

	flat = MustNew("baseline", Rest(0, Baseline))
)

func Noradrenalina() Curve  { return noradrenalina }
func Adrenalina() Curve     { return adrenalina }
func Isoprenalina() Curve   { return isoprenalina }
func Efedrina() Curve       { return efedrina }
func Acetilcolina() Curve   { return acetilcolina }
func Pilocarpina() Curve    { return pilocarpina }
func Alfabloqueador() Curve { return alfabloqueador }
func Neostigmina() Curve    { return neostigmina }
func Nicotina() Curve       { return nicotina }
func Propanolol() Curve     { return propanolol }
func Atropina() Curve       { return atropina }
func Hexametonio() Curve    { return hexametonio }

// Flat is the no-drug response: baseline everywhere.
func Flat() Curve { return flat }
