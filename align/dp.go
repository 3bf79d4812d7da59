package align

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/alassgo/alass/segfunc"
	"github.com/alassgo/alass/timespan"
)

// taggedSegment mirrors segfunc.RatingSegment but additionally records which
// DP choice produced it, so a phase's PositionBuffer can be built alongside
// its RatingBuffer instead of being reconstructed from scratch afterward.
// segfunc itself stays choice-agnostic; this file is where the DP-specific
// three-way algebra lives.
type taggedSegment struct {
	start  timespan.Timestamp
	value  *big.Rat
	slope  *big.Rat
	length int64
	origin segfunc.Choice
}

func (s taggedSegment) end() timespan.Timestamp { return s.start + timespan.Timestamp(s.length) }

func (s taggedSegment) valueAt(t timespan.Timestamp) *big.Rat {
	steps := big.NewRat(int64(t-s.start), 1)

	return new(big.Rat).Add(s.value, new(big.Rat).Mul(s.slope, steps))
}

func cloneTagged(s taggedSegment) taggedSegment {
	return taggedSegment{
		start:  s.start,
		value:  new(big.Rat).Set(s.value),
		slope:  new(big.Rat).Set(s.slope),
		length: s.length,
		origin: s.origin,
	}
}

func segsFromRating(rb *segfunc.RatingBuffer, origin segfunc.Choice) []taggedSegment {
	segs := rb.Segments()
	out := make([]taggedSegment, len(segs))
	for i, s := range segs {
		out[i] = taggedSegment{start: s.Start, value: s.Value, slope: s.Slope, length: s.Length, origin: origin}
	}

	return out
}

func toRatingSegments(tagged []taggedSegment) []segfunc.RatingSegment {
	out := make([]segfunc.RatingSegment, len(tagged))
	for i, s := range tagged {
		out[i] = segfunc.RatingSegment{Start: s.start, Value: s.value, Slope: s.slope, Length: s.length}
	}

	return out
}

// rankOf orders the three choices for tie-breaking: KEEP beats NOSPLIT beats
// REPOSITION.
func rankOf(c segfunc.Choice) int {
	switch c {
	case segfunc.ChoiceKeep:
		return 2
	case segfunc.ChoiceNoSplit:
		return 1
	default:
		return 0
	}
}

func higherRank(a, b segfunc.Choice) segfunc.Choice {
	if rankOf(b) > rankOf(a) {
		return b
	}

	return a
}

// cumulativeMaxTagged runs the same left-to-right running-max scan as
// segfunc.RatingBuffer.CumulativeMax, but on tagged input, so every emitted
// segment keeps a record of whether it is a fresh contribution from its
// source candidate or a flat carry-forward of an earlier maximum (KEEP).
// The very first tick overall can never be KEEP - there is no predecessor
// to keep - and always retains its own origin, matching the left-edge base
// case of the recurrence. A flat or falling segment that starts at a new
// maximum (the first segment, or one that jumps above running) keeps its
// own origin for its first tick only; the rest of it ties or trails that
// value and becomes KEEP.
//
// running tracks the best value seen so far, but that value is not always
// backed by an actually-emitted output point: a rising segment that wins
// outright hands running forward as the raw value at its own *end*, one
// tick past everything it actually emitted. materialized records whether
// running currently corresponds to a real, already-emitted point (true
// right after a KEEP/flat run) or is still a forward-looking bound (true
// right after a rising win). Whenever a new segment's own value exactly
// ties running, that tie is genuine (KEEP legitimately wins it) only if
// running is materialized; otherwise this segment's own first point is the
// one that actually first reaches the tied value, so it keeps its own
// origin and only the remainder (if any) becomes KEEP. Without this
// distinction, a peak reached at the very last tick of a rising segment
// would be mislabeled as carried forward from the tick before it.
//
// The scan is idempotent on an already non-decreasing tagged sequence, so
// callers may apply it a second time (as the final combining step does)
// without corrupting tags already assigned by an earlier pass.
func cumulativeMaxTagged(in []taggedSegment) []taggedSegment {
	if len(in) == 0 {
		return nil
	}

	out := make([]taggedSegment, 0, len(in))
	emit := func(start timespan.Timestamp, value *big.Rat, slope *big.Rat, length int64, origin segfunc.Choice) {
		if length <= 0 {
			return
		}
		out = append(out, taggedSegment{start: start, value: value, slope: slope, length: length, origin: origin})
	}

	running := new(big.Rat).Set(in[0].value)
	materialized := false
	for i, s := range in {
		first := i == 0
		switch s.slope.Sign() {
		case -1, 0:
			switch {
			case first || s.value.Cmp(running) > 0 || (!materialized && s.value.Cmp(running) == 0):
				running.Set(s.value)
				emit(s.start, new(big.Rat).Set(running), new(big.Rat), 1, s.origin)
				emit(s.start+1, new(big.Rat).Set(running), new(big.Rat), s.length-1, segfunc.ChoiceKeep)
			default:
				emit(s.start, new(big.Rat).Set(running), new(big.Rat), s.length, segfunc.ChoiceKeep)
			}
			materialized = true
		default:
			endVal := s.valueAt(s.end())
			switch {
			case first || s.value.Cmp(running) > 0:
				out = append(out, cloneTagged(s))
				running.Set(endVal)
				materialized = false
			case s.value.Cmp(running) == 0:
				if materialized {
					emit(s.start, new(big.Rat).Set(running), new(big.Rat), 1, segfunc.ChoiceKeep)
					if s.length > 1 {
						emit(s.start+1, s.valueAt(s.start+1), new(big.Rat).Set(s.slope), s.length-1, s.origin)
					}
				} else {
					out = append(out, cloneTagged(s))
				}
				running.Set(endVal)
				materialized = false
			case endVal.Cmp(running) <= 0:
				emit(s.start, new(big.Rat).Set(running), new(big.Rat), s.length, segfunc.ChoiceKeep)
				materialized = true
			default:
				k := new(big.Rat).Quo(new(big.Rat).Sub(running, s.value), s.slope)
				flatLen := ceilRat(k)
				exactTie := k.Sign() > 0 && k.IsInt()
				if exactTie {
					flatLen++
				}
				c := s.start + timespan.Timestamp(flatLen)
				emit(s.start, new(big.Rat).Set(running), new(big.Rat), flatLen, segfunc.ChoiceKeep)
				riseLen := s.length - flatLen
				emit(c, s.valueAt(c), new(big.Rat).Set(s.slope), riseLen, s.origin)
				running.Set(endVal)
				materialized = riseLen <= 0
			}
		}
	}

	return out
}

// mergeTaggedMax combines two tagged candidates over the union of their
// domains, treating any point outside a candidate's own [lo,hi] as absent
// (never winning), which is how an inadmissible NOSPLIT range before its
// gap is represented.
func mergeTaggedMax(aLo, aHi timespan.Timestamp, a []taggedSegment, bLo, bHi timespan.Timestamp, b []taggedSegment) []taggedSegment {
	lo, hi := aLo, aHi
	if bLo < lo {
		lo = bLo
	}
	if bHi > hi {
		hi = bHi
	}

	set := map[timespan.Timestamp]struct{}{lo: {}, hi + 1: {}}
	for _, s := range a {
		set[s.start] = struct{}{}
		set[s.end()] = struct{}{}
	}
	for _, s := range b {
		set[s.start] = struct{}{}
		set[s.end()] = struct{}{}
	}
	bounds := make([]timespan.Timestamp, 0, len(set))
	for t := range set {
		if t >= lo && t <= hi+1 {
			bounds = append(bounds, t)
		}
	}
	sort.Slice(bounds, func(i, j int) bool { return bounds[i] < bounds[j] })

	var out []taggedSegment
	for i := 0; i+1 < len(bounds); i++ {
		start, end := bounds[i], bounds[i+1]
		av, as, ao, aPresent := lookupTagged(a, aLo, aHi, start)
		bv, bs, bo, bPresent := lookupTagged(b, bLo, bHi, start)
		out = append(out, maxTaggedPieces(start, end, av, as, ao, aPresent, bv, bs, bo, bPresent)...)
	}

	return out
}

func lookupTagged(segs []taggedSegment, lo, hi, t timespan.Timestamp) (value, slope *big.Rat, origin segfunc.Choice, present bool) {
	if t < lo || t > hi {
		return nil, nil, 0, false
	}
	idx := sort.Search(len(segs), func(i int) bool { return segs[i].end() > t })
	if idx >= len(segs) || segs[idx].start > t {
		return nil, nil, 0, false
	}
	s := segs[idx]

	return s.value, s.slope, s.origin, true
}

func maxTaggedPieces(start, end timespan.Timestamp, av, as *big.Rat, ao segfunc.Choice, aPresent bool, bv, bs *big.Rat, bo segfunc.Choice, bPresent bool) []taggedSegment {
	length := int64(end - start)
	if !bPresent {
		return []taggedSegment{{start: start, value: new(big.Rat).Set(av), slope: new(big.Rat).Set(as), length: length, origin: ao}}
	}
	if !aPresent {
		return []taggedSegment{{start: start, value: new(big.Rat).Set(bv), slope: new(big.Rat).Set(bs), length: length, origin: bo}}
	}

	d0 := new(big.Rat).Sub(av, bv)
	ds := new(big.Rat).Sub(as, bs)

	if ds.Sign() == 0 {
		return pickTaggedWinner(start, length, d0, av, as, ao, bv, bs, bo)
	}

	if d0.Sign() == 0 {
		// Equal at start with different slopes: the start tick is a tie
		// broken by rank, and the steeper side wins every later tick.
		segs := []taggedSegment{{start: start, value: new(big.Rat).Set(av), slope: new(big.Rat), length: 1, origin: higherRank(ao, bo)}}
		if length > 1 && ds.Sign() > 0 {
			segs = append(segs, taggedSegment{start: start + 1, value: new(big.Rat).Add(av, as), slope: new(big.Rat).Set(as), length: length - 1, origin: ao})
		} else if length > 1 {
			segs = append(segs, taggedSegment{start: start + 1, value: new(big.Rat).Add(bv, bs), slope: new(big.Rat).Set(bs), length: length - 1, origin: bo})
		}

		return segs
	}

	k := new(big.Rat).Quo(new(big.Rat).Neg(d0), ds)
	if k.Sign() <= 0 || ceilRat(k) >= length {
		return pickTaggedWinner(start, length, d0, av, as, ao, bv, bs, bo)
	}

	c := start + timespan.Timestamp(ceilRat(k))
	leftLen := int64(c - start)
	leftIsA := d0.Sign() >= 0

	segs := make([]taggedSegment, 0, 3)
	if leftLen > 0 {
		if leftIsA {
			segs = append(segs, taggedSegment{start: start, value: new(big.Rat).Set(av), slope: new(big.Rat).Set(as), length: leftLen, origin: ao})
		} else {
			segs = append(segs, taggedSegment{start: start, value: new(big.Rat).Set(bv), slope: new(big.Rat).Set(bs), length: leftLen, origin: bo})
		}
	}

	rightStart, rightLen := c, length-leftLen
	steps := big.NewRat(int64(c-start), 1)
	aAtC := new(big.Rat).Add(av, new(big.Rat).Mul(as, steps))
	if k.IsInt() && rightLen > 0 {
		// The crossing lands exactly on an integer point: that single tick
		// is a genuine tie between both candidates, broken by rank rather
		// than by whichever side the surrounding linear pieces favor.
		segs = append(segs, taggedSegment{start: c, value: new(big.Rat).Set(aAtC), slope: new(big.Rat), length: 1, origin: higherRank(ao, bo)})
		rightStart, rightLen = c+1, rightLen-1
	}
	if rightLen > 0 {
		stepsR := big.NewRat(int64(rightStart-start), 1)
		aAtR := new(big.Rat).Add(av, new(big.Rat).Mul(as, stepsR))
		bAtR := new(big.Rat).Add(bv, new(big.Rat).Mul(bs, stepsR))
		if leftIsA {
			segs = append(segs, taggedSegment{start: rightStart, value: bAtR, slope: new(big.Rat).Set(bs), length: rightLen, origin: bo})
		} else {
			segs = append(segs, taggedSegment{start: rightStart, value: aAtR, slope: new(big.Rat).Set(as), length: rightLen, origin: ao})
		}
	}

	return segs
}

func pickTaggedWinner(start timespan.Timestamp, length int64, d0 *big.Rat, av, as *big.Rat, ao segfunc.Choice, bv, bs *big.Rat, bo segfunc.Choice) []taggedSegment {
	switch {
	case d0.Sign() > 0:
		return []taggedSegment{{start: start, value: new(big.Rat).Set(av), slope: new(big.Rat).Set(as), length: length, origin: ao}}
	case d0.Sign() < 0:
		return []taggedSegment{{start: start, value: new(big.Rat).Set(bv), slope: new(big.Rat).Set(bs), length: length, origin: bo}}
	default:
		return []taggedSegment{{start: start, value: new(big.Rat).Set(av), slope: new(big.Rat).Set(as), length: length, origin: higherRank(ao, bo)}}
	}
}

// ceilRat returns the smallest int64 n such that n >= r, for r >= 0. Mirrors
// segfunc's own crossing-point rounding so the two packages' notions of
// "where a rising segment catches up" never disagree.
func ceilRat(r *big.Rat) int64 {
	num, den := r.Num(), r.Denom()
	q, m := new(big.Int), new(big.Int)
	q.DivMod(num, den, m)
	if m.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}

	return q.Int64()
}

// buildPositionBuffer replays a phase's final tagged segments into a
// PositionBuffer, choosing AppendConstant for KEEP and AppendIdentity (with
// the phase's own offset) for REPOSITION/NOSPLIT.
func buildPositionBuffer(tagged []taggedSegment, lo, hi timespan.Timestamp, gap int64) (*segfunc.PositionBuffer, error) {
	p, err := segfunc.NewPositionBuffer(lo, hi)
	if err != nil {
		return nil, err
	}

	var lastPos int64
	for _, s := range tagged {
		switch s.origin {
		case segfunc.ChoiceKeep:
			if err := p.AppendConstant(s.length, lastPos, segfunc.ChoiceKeep); err != nil {
				return nil, err
			}
		case segfunc.ChoiceReposition:
			if err := p.AppendIdentity(s.length, 0, segfunc.ChoiceReposition); err != nil {
				return nil, err
			}
			lastPos = int64(s.end()) - 1
		case segfunc.ChoiceNoSplit:
			if err := p.AppendIdentity(s.length, -gap, segfunc.ChoiceNoSplit); err != nil {
				return nil, err
			}
			lastPos = int64(s.end()) - 1 - gap
		default:
			return nil, fmt.Errorf("%w: unrecognized choice %v", ErrInternalInvariant, s.origin)
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}
