package overlap

import (
	"math/big"

	"github.com/alassgo/alass/segfunc"
	"github.com/alassgo/alass/timespan"
)

// BuildLineRating returns O_I(t), the RatingBuffer giving the total overlap
// rating an incorrect line of length incorrectLength would earn against ref
// if placed with its start at t, for t in [0, horizon].
//
// Complexity: O(|ref|) segfunc.Add calls, each O(S log S) in the current
// buffer size S, which grows to O(|ref|), so one line costs
// O(|ref|^2 log |ref|) and all N incorrect lines' RatingBuffers cost
// O(N * |ref|^2 log |ref|).
func BuildLineRating(ref []timespan.Span, incorrectLength timespan.Duration, horizon timespan.Timestamp) (*segfunc.RatingBuffer, error) {
	acc, err := segfunc.BuildZero(0, horizon, horizon)
	if err != nil {
		return nil, err
	}

	for _, r := range ref {
		hat, err := buildHat(r, incorrectLength, horizon)
		if err != nil {
			return nil, err
		}
		acc, err = acc.Add(hat)
		if err != nil {
			return nil, err
		}
	}

	return acc, nil
}

// buildHat returns the five-segment overlap-ratio function for a single
// reference line r against an incorrect line of length lI, clipped to
// [0, horizon].
func buildHat(r timespan.Span, lI timespan.Duration, horizon timespan.Timestamp) (*segfunc.RatingBuffer, error) {
	lr := int64(r.Length())
	li := int64(lI)
	lo, hi := li, lr
	if lr < li {
		lo, hi = lr, li
	}

	// Window is [t1, t4) where t1 = r.Start - lI and t4 = r.End; see doc.go.
	t1 := int64(r.Start) - li
	t2 := t1 + lo
	t3 := t2 + (hi - lo)
	t4 := t3 + lo

	slopeUp := big.NewRat(1, hi)
	slopeDown := big.NewRat(-1, hi)
	peak := big.NewRat(lo, hi)

	type piece struct {
		start, end int64
		value      *big.Rat
		slope      *big.Rat
	}
	pieces := []piece{
		{t1, t2, big.NewRat(0, 1), slopeUp},
		{t2, t3, new(big.Rat).Set(peak), big.NewRat(0, 1)},
		{t3, t4, new(big.Rat).Set(peak), slopeDown},
	}

	segs := make([]segfunc.RatingSegment, 0, 5)
	cursor := int64(0)
	for _, p := range pieces {
		start, end := p.start, p.end
		if end <= start {
			continue // degenerate plateau when lr == li
		}
		if start > int64(horizon) || end <= 0 {
			continue // entirely outside the horizon
		}
		clippedStart := start
		value := p.value
		if clippedStart < cursor {
			// advance the value to the clipped start point (t=0 leading zero
			// gap is filled separately below; this only triggers when start<0)
			steps := big.NewRat(cursor-clippedStart, 1)
			value = new(big.Rat).Add(p.value, new(big.Rat).Mul(p.slope, steps))
			clippedStart = cursor
		}
		clippedEnd := end
		if clippedEnd > int64(horizon)+1 {
			clippedEnd = int64(horizon) + 1
		}
		if clippedEnd <= clippedStart {
			continue
		}
		if clippedStart > cursor {
			segs = append(segs, segfunc.RatingSegment{
				Start:  timespan.Timestamp(cursor),
				Value:  big.NewRat(0, 1),
				Slope:  big.NewRat(0, 1),
				Length: clippedStart - cursor,
			})
		}
		segs = append(segs, segfunc.RatingSegment{
			Start:  timespan.Timestamp(clippedStart),
			Value:  value,
			Slope:  new(big.Rat).Set(p.slope),
			Length: clippedEnd - clippedStart,
		})
		cursor = clippedEnd
	}
	if cursor <= int64(horizon) {
		segs = append(segs, segfunc.RatingSegment{
			Start:  timespan.Timestamp(cursor),
			Value:  big.NewRat(0, 1),
			Slope:  big.NewRat(0, 1),
			Length: int64(horizon) - cursor + 1,
		})
	}

	return segfunc.BuildFromSegments(0, horizon, horizon, segs)
}
