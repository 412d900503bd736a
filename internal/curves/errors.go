package curves

import "errors"

var (
	// ErrEmptyCurve indicates a curve built without segments.
	ErrEmptyCurve = errors.New("curves: curve has no segments")

	// ErrUnordered indicates segments that are not contiguous in time.
	ErrUnordered = errors.New("curves: segments must be contiguous and increasing")

	// ErrOpenRamp indicates a last segment that ramps forever.
	ErrOpenRamp = errors.New("curves: last segment must be flat and open-ended")
)
