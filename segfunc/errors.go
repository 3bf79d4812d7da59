package segfunc

import "errors"

// Sentinel errors returned by the segfunc package. Callers branch with
// errors.Is; context is attached at the call site with fmt.Errorf("%w: ...").
var (
	// ErrDomainMismatch indicates that two buffers were combined by an
	// operation that requires them to share a time horizon, but they do not,
	// or that Clip was given a range outside the buffer's domain.
	ErrDomainMismatch = errors.New("segfunc: buffers do not share a time horizon")

	// ErrEmptyDomain indicates a buffer was requested over a domain with
	// hi < lo, which cannot contain any segment.
	ErrEmptyDomain = errors.New("segfunc: domain requires lo <= hi")

	// ErrInvalidSlope indicates a PositionBuffer segment was constructed with
	// a slope outside the closed set {0, +1}.
	ErrInvalidSlope = errors.New("segfunc: position slope must be 0 or 1")

	// ErrInternalInvariant marks a bug in this package: normalization,
	// coverage, or monotonicity was violated by code that must never let
	// user input trigger it. It is fatal and never retried.
	ErrInternalInvariant = errors.New("segfunc: internal invariant violated")
)
