// Package viz is the terminal front end of the simulator.
//
// The screen is a Bubble Tea program:
//
//   - a Braille heart that contracts and relaxes at the current heart rate,
//     with a one-beat ECG strip beneath it
//   - an asciigraph chart of arterial pressure revealed one sample per frame
//   - the legend of the drug on the chart
//   - the drug panel, three checkboxes per row
//
// # Key Bindings
//
//	Arrows/hjkl - Move on the panel
//	Space/X     - Check or uncheck (dependents follow)
//	Enter/A     - Apply the checked drugs
//	C           - Uncheck everything
//	P           - Load the next preset
//	S           - Save the chart (png, svg, csv or json by extension)
//	R           - Record the run in the data directory
//	T           - Cycle colour themes
//	?           - Full help
//	Q           - Quit
package viz
