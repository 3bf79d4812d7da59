// Package segfunc implements the compressed piecewise-linear function
// representations that let the alignment engine avoid ever materializing a
// dense millisecond-by-line table.
//
// # The dense-table problem
//
// A naive formulation of subtitle alignment builds a table of size
// T x N (milliseconds x incorrect lines) - on the order of 10^9 cells for a
// feature film. This package collapses that table into two compressed
// representations of a function over integer time:
//
//   - RatingBuffer - a piecewise-linear function with exact rational values,
//     used for the dynamic program's value function G_n(t) and for the
//     per-line overlap contribution O_I(t).
//   - PositionBuffer - a piecewise-arithmetic function with integer values
//     and slopes restricted to {0, +1}, used to record which of the three DP
//     choices (KEEP / REPOSITION / NOSPLIT) was optimal at each t, replacing
//     a dense per-t back-pointer array.
//
// Both share the same segment shape: an ordered, non-overlapping run of
// (start, start_value, slope, length) tuples that together cover a
// contiguous domain [lo, hi] exactly once. A RatingBuffer reads as zero
// outside that domain; PositionBuffer.Lookup returns an error there.
//
// # Exact rational values
//
// Per-pair overlap ratings are rationals whose denominators are bounded by
// max(length(reference line), length(incorrect line)). RatingBuffer keeps
// values as math/big.Rat so that pointwise_max's tie-breaking is exact and
// deterministic regardless of the magnitude of the line lengths involved -
// no ecosystem library in this module's dependency graph provides exact
// rational arithmetic, so this is the one place the package reaches for the
// standard library over a third-party dependency (see DESIGN.md).
//
// # Normalization
//
// The producing operations Add, PointwiseMax, CumulativeMax and Clip end by
// merging adjacent segments that share a slope and meet continuously in
// value, and by dropping any zero-length segment; Shift and AddConstant
// translate or offset an already normalized buffer, which keeps it
// normalized. Two RatingBuffers or
// PositionBuffers built from equal inputs are therefore guaranteed to have
// bit-identical segment lists, which is what makes the DP's tie-breaking
// rule (§ align package) reproducible.
package segfunc
