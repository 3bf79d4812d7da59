package segfunc

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/alassgo/alass/timespan"
)

// RatingBuffer is a piecewise-linear function of integer time over a closed
// domain [lo, hi], extending as the exact zero rational outside it.
//
// A RatingBuffer's Horizon records the time horizon (T_MAX) it was built
// against; Add and PointwiseMax require both operands to share a Horizon so
// that combining buffers from unrelated alignment runs fails loudly instead
// of silently producing a buffer with no coherent domain.
type RatingBuffer struct {
	Horizon timespan.Timestamp
	lo, hi  timespan.Timestamp
	segs    []RatingSegment
}

// BuildZero returns the constant-zero RatingBuffer over [lo, hi].
func BuildZero(lo, hi, horizon timespan.Timestamp) (*RatingBuffer, error) {
	if hi < lo {
		return nil, fmt.Errorf("%w: lo=%d hi=%d", ErrEmptyDomain, lo, hi)
	}

	return &RatingBuffer{
		Horizon: horizon,
		lo:      lo,
		hi:      hi,
		segs: []RatingSegment{{
			Start:  lo,
			Value:  ratZero(),
			Slope:  ratZero(),
			Length: int64(hi-lo) + 1,
		}},
	}, nil
}

// BuildFromSegments constructs a RatingBuffer from an explicit segment list
// that must cover [lo, hi] exactly once with positive lengths, in order. It
// is how callers outside this package (the overlap builder, most notably)
// assemble a hand-derived piecewise-linear function such as the five-segment
// "hat" of a single reference/incorrect line pair.
func BuildFromSegments(lo, hi, horizon timespan.Timestamp, segs []RatingSegment) (*RatingBuffer, error) {
	if hi < lo {
		return nil, fmt.Errorf("%w: lo=%d hi=%d", ErrEmptyDomain, lo, hi)
	}
	want := lo
	for _, s := range segs {
		if s.Length <= 0 {
			return nil, fmt.Errorf("%w: non-positive segment length at %d", ErrInternalInvariant, s.Start)
		}
		if s.Start != want {
			return nil, fmt.Errorf("%w: gap or overlap at %d, expected %d", ErrInternalInvariant, s.Start, want)
		}
		want = s.end()
	}
	if want != hi+1 {
		return nil, fmt.Errorf("%w: coverage ends at %d, want %d", ErrInternalInvariant, want, hi+1)
	}

	b := &RatingBuffer{Horizon: horizon, lo: lo, hi: hi, segs: append([]RatingSegment(nil), segs...)}
	b.normalize()

	return b, nil
}

// Domain returns the closed range [lo, hi] the buffer is defined over.
func (b *RatingBuffer) Domain() (lo, hi timespan.Timestamp) {
	return b.lo, b.hi
}

// Segments returns the buffer's normalized segment list in time order.
// Callers must not mutate the returned slice or its Value/Slope pointers.
func (b *RatingBuffer) Segments() []RatingSegment {
	return b.segs
}

// Evaluate returns the value at t in O(log S) via binary search over segment
// starts, or the exact zero rational if t falls outside [lo, hi].
func (b *RatingBuffer) Evaluate(t timespan.Timestamp) *big.Rat {
	if t < b.lo || t > b.hi {
		return ratZero()
	}
	idx := b.findSegment(t)
	if idx < 0 {
		return ratZero()
	}

	return b.segs[idx].valueAt(t)
}

// findSegment returns the index of the segment covering t, or -1.
func (b *RatingBuffer) findSegment(t timespan.Timestamp) int {
	i := sort.Search(len(b.segs), func(i int) bool { return b.segs[i].end() > t })
	if i < len(b.segs) && b.segs[i].Start <= t {
		return i
	}

	return -1
}

// Shift translates the buffer's domain by delta.
func (b *RatingBuffer) Shift(delta int64) *RatingBuffer {
	out := make([]RatingSegment, len(b.segs))
	for i, s := range b.segs {
		out[i] = RatingSegment{
			Start:  timespan.Timestamp(int64(s.Start) + delta),
			Value:  new(big.Rat).Set(s.Value),
			Slope:  new(big.Rat).Set(s.Slope),
			Length: s.Length,
		}
	}

	return &RatingBuffer{
		Horizon: b.Horizon,
		lo:      timespan.Timestamp(int64(b.lo) + delta),
		hi:      timespan.Timestamp(int64(b.hi) + delta),
		segs:    out,
	}
}

// Add returns the pointwise sum of b and other over the union of their
// domains, with at most len(b.Segments())+len(other.Segments()) segments.
func (b *RatingBuffer) Add(other *RatingBuffer) (*RatingBuffer, error) {
	if b.Horizon != other.Horizon {
		return nil, fmt.Errorf("%w: %d vs %d", ErrDomainMismatch, b.Horizon, other.Horizon)
	}

	lo, hi, bounds := unionBounds(b, other)
	out := &RatingBuffer{Horizon: b.Horizon, lo: lo, hi: hi}
	for i := 0; i+1 < len(bounds); i++ {
		start, end := bounds[i], bounds[i+1]
		av, as := lookupLinear(b, start)
		bv, bs := lookupLinear(other, start)
		out.segs = append(out.segs, RatingSegment{
			Start:  start,
			Value:  new(big.Rat).Add(av, bv),
			Slope:  new(big.Rat).Add(as, bs),
			Length: int64(end - start),
		})
	}
	out.normalize()

	return out, nil
}

// PointwiseMax returns the piecewise-linear maximum of b and other,
// introducing at most one new breakpoint per pair of overlapping segments.
func (b *RatingBuffer) PointwiseMax(other *RatingBuffer) (*RatingBuffer, error) {
	if b.Horizon != other.Horizon {
		return nil, fmt.Errorf("%w: %d vs %d", ErrDomainMismatch, b.Horizon, other.Horizon)
	}

	lo, hi, bounds := unionBounds(b, other)
	out := &RatingBuffer{Horizon: b.Horizon, lo: lo, hi: hi}
	for i := 0; i+1 < len(bounds); i++ {
		start, end := bounds[i], bounds[i+1]
		av, as := lookupLinear(b, start)
		bv, bs := lookupLinear(other, start)
		out.segs = append(out.segs, maxLinearPieces(start, end, av, as, bv, bs)...)
	}
	out.normalize()

	return out, nil
}

// CumulativeMax returns the running maximum of b: CM(t) = max_{s<=lo(b)..t} b(s).
// This is the operation that turns a REPOSITION candidate G_{n-1}(t)+O_{I_n}(t),
// which need not be monotone, into a valid non-decreasing phase value; the
// align package's solver keeps its own tagged variant of this exact scan
// (see cumulativeMaxTagged in dp.go) so it can carry a per-segment choice
// origin alongside the value, rather than calling this method directly. It
// runs in a single left-to-right scan; every segment where b is
// non-increasing becomes a constant segment at the running maximum, and
// every rising segment that starts below the running maximum is split at
// the exact rational point where it catches up.
func (b *RatingBuffer) CumulativeMax() *RatingBuffer {
	out := &RatingBuffer{Horizon: b.Horizon, lo: b.lo, hi: b.hi}
	if len(b.segs) == 0 {
		return out
	}

	running := new(big.Rat).Set(b.segs[0].Value)
	for _, s := range b.segs {
		switch s.Slope.Sign() {
		case -1, 0:
			out.segs = append(out.segs, RatingSegment{
				Start:  s.Start,
				Value:  new(big.Rat).Set(running),
				Slope:  ratZero(),
				Length: s.Length,
			})
		default: // rising
			endVal := s.valueAt(s.end())
			switch {
			case s.Value.Cmp(running) >= 0:
				out.segs = append(out.segs, cloneSeg(s))
				running.Set(endVal)
			case endVal.Cmp(running) <= 0:
				out.segs = append(out.segs, RatingSegment{
					Start:  s.Start,
					Value:  new(big.Rat).Set(running),
					Slope:  ratZero(),
					Length: s.Length,
				})
			default:
				// crossing: running - s.Value = k * s.Slope, k = steps from s.Start
				k := new(big.Rat).Quo(new(big.Rat).Sub(running, s.Value), s.Slope)
				c := s.Start + timespan.Timestamp(ceilRat(k))
				flatLen := int64(c - s.Start)
				if flatLen > 0 {
					out.segs = append(out.segs, RatingSegment{
						Start:  s.Start,
						Value:  new(big.Rat).Set(running),
						Slope:  ratZero(),
						Length: flatLen,
					})
				}
				riseLen := s.Length - flatLen
				out.segs = append(out.segs, RatingSegment{
					Start:  c,
					Value:  s.valueAt(c),
					Slope:  new(big.Rat).Set(s.Slope),
					Length: riseLen,
				})
				running.Set(endVal)
			}
		}
	}
	out.normalize()

	return out
}

// AddConstant returns b with c added to every value, leaving slopes and
// domain unchanged.
func (b *RatingBuffer) AddConstant(c *big.Rat) *RatingBuffer {
	out := &RatingBuffer{Horizon: b.Horizon, lo: b.lo, hi: b.hi, segs: make([]RatingSegment, len(b.segs))}
	for i, s := range b.segs {
		out.segs[i] = RatingSegment{
			Start:  s.Start,
			Value:  new(big.Rat).Add(s.Value, c),
			Slope:  new(big.Rat).Set(s.Slope),
			Length: s.Length,
		}
	}

	return out
}

// Clip restricts b to the closed sub-range [lo, hi], splitting boundary
// segments as needed. Both bounds must fall within b's existing domain.
func (b *RatingBuffer) Clip(lo, hi timespan.Timestamp) (*RatingBuffer, error) {
	if lo < b.lo || hi > b.hi || hi < lo {
		return nil, fmt.Errorf("%w: clip [%d,%d] outside [%d,%d]", ErrDomainMismatch, lo, hi, b.lo, b.hi)
	}

	out := &RatingBuffer{Horizon: b.Horizon, lo: lo, hi: hi}
	for _, s := range b.segs {
		start, end := s.Start, s.end()
		if end <= lo || start > hi {
			continue
		}
		clippedStart := start
		value := s.Value
		if clippedStart < lo {
			steps := big.NewRat(int64(lo-clippedStart), 1)
			value = new(big.Rat).Add(s.Value, new(big.Rat).Mul(s.Slope, steps))
			clippedStart = lo
		}
		clippedEnd := end
		if clippedEnd > hi+1 {
			clippedEnd = hi + 1
		}
		if clippedEnd <= clippedStart {
			continue
		}
		out.segs = append(out.segs, RatingSegment{
			Start:  clippedStart,
			Value:  value,
			Slope:  new(big.Rat).Set(s.Slope),
			Length: int64(clippedEnd - clippedStart),
		})
	}
	out.normalize()

	return out, nil
}

// normalize merges adjacent segments that share a slope and meet
// continuously in value, and drops zero-length segments. It is applied by
// every producing operation in this file except Shift and AddConstant, which
// translate or offset an already normalized buffer and so keep it normalized.
func (b *RatingBuffer) normalize() {
	if len(b.segs) == 0 {
		return
	}
	merged := b.segs[:0:0]
	for _, s := range b.segs {
		if s.Length <= 0 {
			continue
		}
		if n := len(merged); n > 0 {
			last := merged[n-1]
			if last.end() == s.Start && last.Slope.Cmp(s.Slope) == 0 && last.valueAt(last.end()).Cmp(s.Value) == 0 {
				merged[n-1].Length += s.Length
				continue
			}
		}
		merged = append(merged, s)
	}
	b.segs = merged
}

func cloneSeg(s RatingSegment) RatingSegment {
	return RatingSegment{
		Start:  s.Start,
		Value:  new(big.Rat).Set(s.Value),
		Slope:  new(big.Rat).Set(s.Slope),
		Length: s.Length,
	}
}

// unionBounds returns the union domain of a and b plus the sorted, deduped
// list of breakpoints (segment starts of both, plus both ends and both
// domain edges) needed to align them for a pointwise operation.
func unionBounds(a, b *RatingBuffer) (lo, hi timespan.Timestamp, bounds []timespan.Timestamp) {
	lo, hi = a.lo, a.hi
	if b.lo < lo {
		lo = b.lo
	}
	if b.hi > hi {
		hi = b.hi
	}

	set := map[timespan.Timestamp]struct{}{lo: {}, hi + 1: {}}
	for _, s := range a.segs {
		set[s.Start] = struct{}{}
		set[s.end()] = struct{}{}
	}
	for _, s := range b.segs {
		set[s.Start] = struct{}{}
		set[s.end()] = struct{}{}
	}
	for t := range set {
		if t >= lo && t <= hi+1 {
			bounds = append(bounds, t)
		}
	}
	sort.Slice(bounds, func(i, j int) bool { return bounds[i] < bounds[j] })

	return lo, hi, bounds
}

// lookupLinear returns the (value, slope) of buf's segment covering t, or
// (0, 0) if t is outside buf's domain.
func lookupLinear(buf *RatingBuffer, t timespan.Timestamp) (*big.Rat, *big.Rat) {
	idx := buf.findSegment(t)
	if idx < 0 {
		return ratZero(), ratZero()
	}
	s := buf.segs[idx]

	return s.valueAt(t), s.Slope
}

// maxLinearPieces returns the segments of max(f, g) over [start, end), where
// f(t)=fv+fs*(t-start) and g(t)=gv+gs*(t-start), splitting at the single
// exact rational crossing point when the two lines cross inside the range.
func maxLinearPieces(start, end timespan.Timestamp, fv, fs, gv, gs *big.Rat) []RatingSegment {
	length := int64(end - start)
	d0 := new(big.Rat).Sub(fv, gv)
	ds := new(big.Rat).Sub(fs, gs)

	if ds.Sign() == 0 {
		if d0.Sign() >= 0 {
			return []RatingSegment{{Start: start, Value: new(big.Rat).Set(fv), Slope: new(big.Rat).Set(fs), Length: length}}
		}

		return []RatingSegment{{Start: start, Value: new(big.Rat).Set(gv), Slope: new(big.Rat).Set(gs), Length: length}}
	}

	// crossing at t = start + k, where d0 + k*ds = 0
	k := new(big.Rat).Quo(new(big.Rat).Neg(d0), ds)
	if k.Sign() <= 0 {
		// the lines meet at or before start: whichever leads at start wins
		// throughout, and on a tie at start the steeper one does
		return pickWinner(start, length, d0.Sign() > 0 || (d0.Sign() == 0 && ds.Sign() > 0), fv, fs, gv, gs)
	}
	kCeil := ceilRat(k)
	if kCeil >= length {
		return pickWinner(start, length, d0.Sign() >= 0, fv, fs, gv, gs)
	}

	c := start + timespan.Timestamp(kCeil)
	leftLen := int64(c - start)
	rightLen := length - leftLen
	leftIsF := d0.Sign() >= 0

	segs := make([]RatingSegment, 0, 2)
	if leftLen > 0 {
		if leftIsF {
			segs = append(segs, RatingSegment{Start: start, Value: new(big.Rat).Set(fv), Slope: new(big.Rat).Set(fs), Length: leftLen})
		} else {
			segs = append(segs, RatingSegment{Start: start, Value: new(big.Rat).Set(gv), Slope: new(big.Rat).Set(gs), Length: leftLen})
		}
	}
	if rightLen > 0 {
		fAtC := new(big.Rat).Add(fv, new(big.Rat).Mul(fs, big.NewRat(int64(c-start), 1)))
		gAtC := new(big.Rat).Add(gv, new(big.Rat).Mul(gs, big.NewRat(int64(c-start), 1)))
		if !leftIsF {
			segs = append(segs, RatingSegment{Start: c, Value: fAtC, Slope: new(big.Rat).Set(fs), Length: rightLen})
		} else {
			segs = append(segs, RatingSegment{Start: c, Value: gAtC, Slope: new(big.Rat).Set(gs), Length: rightLen})
		}
	}

	return segs
}

func pickWinner(start timespan.Timestamp, length int64, fWins bool, fv, fs, gv, gs *big.Rat) []RatingSegment {
	if fWins {
		return []RatingSegment{{Start: start, Value: new(big.Rat).Set(fv), Slope: new(big.Rat).Set(fs), Length: length}}
	}

	return []RatingSegment{{Start: start, Value: new(big.Rat).Set(gv), Slope: new(big.Rat).Set(gs), Length: length}}
}

// ceilRat returns the smallest int64 n such that n >= r, for r >= 0.
func ceilRat(r *big.Rat) int64 {
	num := r.Num()
	den := r.Denom()
	q := new(big.Int)
	m := new(big.Int)
	q.DivMod(num, den, m)
	if m.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}

	return q.Int64()
}
