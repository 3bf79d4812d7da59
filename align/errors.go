package align

import "errors"

// Sentinel errors returned by Align and its supplemented post-processors.
var (
	// ErrEmptyTrack indicates that the reference or incorrect track has no lines.
	ErrEmptyTrack = errors.New("align: track is empty")

	// ErrNonMonotone indicates that the incorrect track is not sorted by start time.
	ErrNonMonotone = errors.New("align: incorrect track is not sorted by start time")

	// ErrInvalidSplitPenalty indicates a negative or non-finite split penalty.
	ErrInvalidSplitPenalty = errors.New("align: split penalty must be a non-negative finite number")

	// ErrInvalidTimeHorizon indicates a negative WithTimeHorizon override.
	ErrInvalidTimeHorizon = errors.New("align: time horizon must be non-negative")

	// ErrInternalInvariant signals a bug in the solver: a normalization,
	// monotonicity, or domain-coverage check failed that user input can
	// never trigger by construction. GroupByDelta also returns it when the
	// original and corrected tracks it is given differ in length.
	ErrInternalInvariant = errors.New("align: internal invariant violated")
)
