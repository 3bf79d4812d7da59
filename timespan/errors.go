package timespan

import "errors"

// Sentinel errors returned by the timespan package.
//
// Callers MUST branch with errors.Is; sentinels are never wrapped with a
// dynamically formatted string at the point of definition. Where context is
// useful it is attached with fmt.Errorf("%w: ...", ErrX, ...) at the call
// site that detects the condition.
var (
	// ErrTimeOverflow indicates a computed Timestamp or Duration would exceed
	// the configured time horizon (MaxTimestamp), or that a raw millisecond
	// value passed to a constructor is negative or already out of range.
	ErrTimeOverflow = errors.New("timespan: time value exceeds configured horizon")

	// ErrInvalidSpan indicates a Span was constructed with Start >= End,
	// violating the half-open-interval invariant 0 <= Start < End.
	ErrInvalidSpan = errors.New("timespan: span requires 0 <= start < end")
)
