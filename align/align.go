package align

import (
	"fmt"
	"math/big"

	"github.com/alassgo/alass/overlap"
	"github.com/alassgo/alass/segfunc"
	"github.com/alassgo/alass/timespan"
)

// splitPenaltyScale converts the caller-facing split_penalty (documented in
// [0,100]) into the internal additive bonus, on the same order of magnitude
// as a single line's overlap rating (bounded [0,1]). Pinned empirically
// against a set of worked scenarios; see DESIGN.md.
const splitPenaltyScale = 100.0

// Align computes corrected start times for incorrect against reference,
// implementing the N-phase dynamic program described in doc.go.
func Align(reference, incorrect Track, opts ...Option) (Track, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.invalidSplitPenalty {
		return nil, ErrInvalidSplitPenalty
	}
	if cfg.invalidTimeHorizon {
		return nil, ErrInvalidTimeHorizon
	}
	if len(reference) == 0 || len(incorrect) == 0 {
		return nil, ErrEmptyTrack
	}
	for i := 1; i < len(incorrect); i++ {
		if incorrect[i-1].Start > incorrect[i].Start {
			return nil, fmt.Errorf("%w: line %d starts at %d, line %d at %d", ErrNonMonotone, i-1, incorrect[i-1].Start, i, incorrect[i].Start)
		}
	}

	horizon := cfg.TimeHorizon
	if horizon == 0 {
		horizon = deriveHorizon(reference, incorrect)
	}
	if err := timespan.CheckHorizon(horizon, timespan.MaxTimestamp); err != nil {
		return nil, err
	}

	penalty := new(big.Rat).Quo(new(big.Rat).SetFloat64(cfg.SplitPenalty), big.NewRat(splitPenaltyScale, 1))

	prev, err := segfunc.BuildZero(0, horizon, horizon)
	if err != nil {
		return nil, err
	}

	positions := make([]*segfunc.PositionBuffer, len(incorrect))
	for n := 1; n <= len(incorrect); n++ {
		gN, pN, err := solvePhase(prev, incorrect, n, reference, horizon, penalty)
		if err != nil {
			return nil, fmt.Errorf("phase %d: %w", n, err)
		}
		prev = gN
		positions[n-1] = pN

		if cfg.Progress != nil {
			cfg.Progress(n, len(incorrect))
		}
	}

	starts, err := backtrace(positions, incorrect, horizon)
	if err != nil {
		return nil, err
	}

	outHorizon := horizon
	for i, s := range starts {
		if s < 0 {
			if !cfg.ClampNegative {
				return nil, fmt.Errorf("%w: line %d corrected start %d is negative", timespan.ErrTimeOverflow, i, s)
			}
			starts[i] = 0
		}
		if end := starts[i] + int64(incorrect[i].Length()); timespan.Timestamp(end) > outHorizon {
			outHorizon = timespan.Timestamp(end)
		}
	}

	corrected := make(Track, len(incorrect))
	for i, s := range starts {
		length := int64(incorrect[i].Length())
		span, err := timespan.NewSpan(timespan.Timestamp(s), timespan.Timestamp(s+length), outHorizon)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternalInvariant, err)
		}
		corrected[i] = span
	}

	return corrected, nil
}

// deriveHorizon computes T_MAX = max(ref_end) + max(inc_length).
func deriveHorizon(reference, incorrect Track) timespan.Timestamp {
	var maxRefEnd timespan.Timestamp
	for _, r := range reference {
		if r.End > maxRefEnd {
			maxRefEnd = r.End
		}
	}
	var maxIncLen timespan.Duration
	for _, l := range incorrect {
		if l.Length() > maxIncLen {
			maxIncLen = l.Length()
		}
	}

	return maxRefEnd + timespan.Timestamp(maxIncLen)
}

// solvePhase computes G_n and P_n from G_n-1, the incorrect track, and the
// reference track, following the representation-level recurrence described
// in doc.go: a cumulative max of the REPOSITION candidate, pointwise-maxed
// against the NOSPLIT candidate (when admissible), then cumulative-maxed
// once more so KEEP can carry the running optimum forward.
func solvePhase(prev *segfunc.RatingBuffer, incorrect Track, n int, reference Track, horizon timespan.Timestamp, penalty *big.Rat) (*segfunc.RatingBuffer, *segfunc.PositionBuffer, error) {
	line := incorrect[n-1]
	o, err := overlap.BuildLineRating(reference, line.Length(), horizon)
	if err != nil {
		return nil, nil, err
	}

	rawReposition, err := prev.Add(o)
	if err != nil {
		return nil, nil, err
	}
	repositionTagged := cumulativeMaxTagged(segsFromRating(rawReposition, segfunc.ChoiceReposition))

	combined := repositionTagged
	var gap int64
	if n >= 2 {
		gap = int64(incorrect[n-1].Start) - int64(incorrect[n-2].Start)
		if gap <= int64(horizon) {
			shifted := prev.Shift(gap)
			rawNosplit, err := shifted.Add(o)
			if err != nil {
				return nil, nil, err
			}
			rawNosplit = rawNosplit.AddConstant(penalty)
			rawNosplit, err = rawNosplit.Clip(timespan.Timestamp(gap), horizon)
			if err != nil {
				return nil, nil, err
			}
			nosplitTagged := segsFromRating(rawNosplit, segfunc.ChoiceNoSplit)
			combined = mergeTaggedMax(0, horizon, repositionTagged, timespan.Timestamp(gap), horizon, nosplitTagged)
		}
	}

	final := cumulativeMaxTagged(combined)

	gN, err := segfunc.BuildFromSegments(0, horizon, horizon, toRatingSegments(final))
	if err != nil {
		return nil, nil, err
	}

	pN, err := buildPositionBuffer(final, 0, horizon, gap)
	if err != nil {
		return nil, nil, err
	}

	return gN, pN, nil
}
