package strike

import "errors"

// Error kinds reported by this package. Call sites wrap these with context
// using fmt.Errorf and %w, so callers can match on the kind with errors.Is.
var (
	// ErrUnsupportedDepth means a level count outside {2, 4, 16, 256}, or a
	// request to pack a raster at fewer bits per pixel than it needs.
	ErrUnsupportedDepth = errors.New("strike: unsupported bit depth")

	// ErrShapeMismatch means rows of unequal width at construction, or
	// rasters of unequal size passed to Overlay, Concat or Stack.
	ErrShapeMismatch = errors.New("strike: shape mismatch")

	// ErrInsufficientData means a decode source shorter than the declared
	// geometry requires.
	ErrInsufficientData = errors.New("strike: insufficient data")

	// ErrInvalidArgument means a negative count, an out-of-range ordinal, or
	// an unrecognized direction or layout token.
	ErrInvalidArgument = errors.New("strike: invalid argument")
)
