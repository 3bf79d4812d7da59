// Package alass corrects the timing of a subtitle track against a
// trusted reference track without touching either track's text.
//
// Given a reference track (correct timing, arbitrary or unknown text) and
// an incorrect track (correct text, drifted or spliced timing), align
// computes, for every line of the incorrect track, the start time that
// maximizes total overlap with the reference track plus a configurable
// bonus for every pair of consecutive lines that keeps the input's own
// spacing.
//
// The engine is organized as four layers, each its own package:
//
//	timespan/ — the fixed-point millisecond time model: Timestamp,
//	            Duration, and half-open Span intervals.
//	segfunc/  — compressed segmented functions: RatingBuffer (piecewise-
//	            linear, exact rational values) and PositionBuffer
//	            (piecewise-arithmetic, integer positions), the
//	            representation that lets the solver work in O(segments)
//	            instead of O(milliseconds).
//	overlap/  — builds a single incorrect line's overlap-rating function
//	            against an entire reference track.
//	align/    — the N-phase dynamic program that combines per-line
//	            ratings into corrected start times, plus the delta-
//	            grouping and progress-reporting helpers built on top of it.
//
// # Usage
//
//	corrected, err := align.Align(reference, incorrect, align.WithSplitPenalty(10))
//
// See align's package doc and example_test.go for the full recurrence and
// runnable usage.
//
// # Scope
//
// This module is a pure timing engine: it does not parse or write any
// subtitle file format, does not compare line text, and does not resize or
// reorder lines. Those concerns belong to a caller built on top of it.
package alass
