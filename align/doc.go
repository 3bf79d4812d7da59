// Package align computes corrected start times for an incorrect subtitle
// track against a reference track by running an N-phase dynamic program over
// segfunc.RatingBuffer and segfunc.PositionBuffer values built from
// overlap.BuildLineRating.
//
// # The recurrence
//
// For incorrect lines I_1..I_N and gap_n = start(I_n+1) - start(I_n) taken
// from the original (uncorrected) track, phase n computes
//
//	G_n(t) = max(
//	    G_n(t-1),                                          KEEP
//	    G_n-1(t) + O_n(t),                                 REPOSITION
//	    G_n-1(t-gap_n-1) + O_n(t) + split_penalty/100,      NOSPLIT (n>=2, t>=gap_n-1)
//	)
//
// with G_0 == 0 and tie-break order KEEP > NOSPLIT > REPOSITION. The
// caller's split_penalty (WithSplitPenalty) is divided by splitPenaltyScale
// (100) before it is added. Rather than
// iterate t, Align builds three segmented candidates per phase with
// segfunc's Add/Shift, then combines them using dp.go's own tagged variants
// of PointwiseMax and CumulativeMax, carrying a segfunc.Choice tag alongside
// every emitted rating segment so the phase's PositionBuffer is assembled in
// lockstep.
//
// # Complexity
//
// Each phase rebuilds the current line's overlap function with |R|
// successive segfunc Adds over a buffer of up to O(|R|) segments, then
// combines it with G_n-1 through sort-based merges costing O(S log S) in the
// segment count S, so a phase costs O(|R|^2 log |R| + S log S) time. Align
// drops phase n-1's RatingBuffer once phase n is built; the PositionBuffer
// of every phase is kept until the back-trace.
//
// # Errors
//
// Align never panics on caller input; it returns one of the sentinel errors
// in errors.go. ErrInternalInvariant from Align indicates a solver bug, never
// a caller mistake, and callers should treat it as fatal. GroupByDelta also
// returns ErrInternalInvariant when its two tracks differ in length.
package align
