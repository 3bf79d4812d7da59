package segfunc

import (
	"math/big"

	"github.com/alassgo/alass/timespan"
)

// RatingSegment is one piece of a RatingBuffer: for k in [0, Length), the
// function value at Start+k equals Value.Add(Value, k*Slope) - computed
// exactly via math/big.Rat, never rounded.
type RatingSegment struct {
	Start  timespan.Timestamp
	Value  *big.Rat
	Slope  *big.Rat
	Length int64
}

// end returns the exclusive end timestamp of the segment.
func (s RatingSegment) end() timespan.Timestamp {
	return s.Start + timespan.Timestamp(s.Length)
}

// valueAt returns the exact value at t, which must lie in [s.Start, s.end()).
func (s RatingSegment) valueAt(t timespan.Timestamp) *big.Rat {
	steps := big.NewRat(int64(t-s.Start), 1)
	delta := new(big.Rat).Mul(s.Slope, steps)

	return new(big.Rat).Add(s.Value, delta)
}

// Choice identifies which of the three DP alternatives of the alignment
// solver produced a given PositionBuffer segment.
type Choice int

const (
	// ChoiceKeep reuses the position chosen for t-1 (slope 0).
	ChoiceKeep Choice = iota
	// ChoiceReposition places the line directly at t (slope +1, offset 0).
	ChoiceReposition
	// ChoiceNoSplit places the line at t with its predecessor at or before t
	// minus the original gap; the position recorded is that lookup point,
	// t - gap (slope +1, a negative constant offset).
	ChoiceNoSplit
)

func (c Choice) String() string {
	switch c {
	case ChoiceKeep:
		return "keep"
	case ChoiceReposition:
		return "reposition"
	case ChoiceNoSplit:
		return "nosplit"
	default:
		return "unknown"
	}
}

// PositionSegment is one piece of a PositionBuffer: for k in [0, Length), the
// recorded position at Start+k equals Value + k*Slope, with Slope in {0, 1}.
type PositionSegment struct {
	Start  timespan.Timestamp
	Value  int64
	Slope  int64
	Length int64
	Origin Choice
}

func (s PositionSegment) end() timespan.Timestamp {
	return s.Start + timespan.Timestamp(s.Length)
}

func (s PositionSegment) valueAt(t timespan.Timestamp) int64 {
	return s.Value + int64(t-s.Start)*s.Slope
}

// ratZero, ratFromInt and ratFromFrac return a freshly allocated big.Rat on
// every call, so callers may mutate the result.
func ratZero() *big.Rat { return new(big.Rat) }

func ratFromInt(n int64) *big.Rat { return new(big.Rat).SetInt64(n) }

func ratFromFrac(num, den int64) *big.Rat { return new(big.Rat).SetFrac64(num, den) }
