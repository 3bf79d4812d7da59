// Package timespan provides the fixed-point millisecond time model shared by
// every other package in this module: non-negative integer timestamps,
// non-negative integer durations, and half-open intervals ("spans") with
// total order, saturating arithmetic, and intersection-length computation.
//
// # Why fixed-point milliseconds
//
// Subtitle timing is conventionally expressed to millisecond precision and
// stored as 32-bit integers in most subtitle formats. This package pins that
// choice down explicitly: Timestamp and Duration are both int64 internally
// (to give arithmetic headroom before saturation), but every value produced
// by this module is guaranteed to fit inside [0, MaxTimestamp], where
// MaxTimestamp defaults to the largest value a 32-bit millisecond counter can
// hold. Values that would exceed the configured horizon are rejected with
// ErrTimeOverflow rather than silently wrapping.
//
// # Half-open intervals
//
// A Span is the half-open interval [Start, End). Two spans intersect over
// [max(a.Start,b.Start), min(a.End,b.End)); Overlap returns the length of
// that intersection, or zero if the spans are disjoint or merely touch at a
// boundary.
//
// # Complexity
//
//   - All operations in this package are O(1).
//
// See example_test.go for runnable usage and timespan_test.go for the
// boundary and overflow cases exercised against the package invariants.
package timespan
