// Package overlap builds the per-incorrect-line RatingBuffer that the
// alignment solver needs at every DP phase: the total overlap rating an
// incorrect line of a given length would earn against a reference track, as
// a function of where that line's start time is placed.
//
// # The single-pair "hat"
//
// For one reference line r and an incorrect line of length lI placed at
// offset t, overlap(r, I@t) as a function of t is a piecewise-linear "hat"
// with exactly five pieces (the two external zero tails included): flat
// zero, a linear rise of width min(lr,lI) to a peak of min(lr,lI)/max(lr,lI),
// a flat plateau of width |lr-lI| at that peak, a linear fall back to zero
// over min(lr,lI), then flat zero again. BuildLineRating sums this hat over
// every reference line via segfunc.RatingBuffer.Add, which is exact and
// preserves the compressed segment representation - no per-millisecond
// evaluation ever happens.
//
// # Exactness
//
// Every hat's rise/fall slope and plateau height is an exact rational with
// denominator max(lr,lI), carried through segfunc's math/big.Rat values so
// that the sum across every reference line, and the pointwise_max the
// solver later performs against it, never depend on floating-point
// tie-breaking.
package overlap
