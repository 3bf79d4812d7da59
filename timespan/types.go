package timespan

import "math"

// MaxTimestamp is the default time horizon: the largest millisecond value
// this module will produce or accept without an explicit override, matching
// the range a 32-bit millisecond counter can hold.
//
// Individual algorithms (see the align package) accept a T_MAX override, but
// nothing in this module ever manufactures a Timestamp above MaxTimestamp
// unless the caller explicitly raised the horizon.
const MaxTimestamp Timestamp = math.MaxInt32

// Timestamp is a non-negative integer millisecond instant.
//
// Zero value is the origin (t=0). Timestamp arithmetic saturates at zero on
// underflow (see SaturatingSub) and reports ErrTimeOverflow rather than
// wrapping when a result would exceed the configured horizon.
type Timestamp int64

// Duration is a non-negative integer millisecond length.
type Duration int64

// Span is the half-open interval [Start, End). Lines are expressed as Spans;
// RatingBuffer and PositionBuffer domains are closed [lo, hi] Timestamp
// ranges.
//
// Invariant: 0 <= Start < End. Spans are immutable after construction;
// NewSpan is the only constructor and enforces the invariant.
type Span struct {
	Start Timestamp
	End   Timestamp
}
