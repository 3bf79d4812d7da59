package segfunc

import (
	"fmt"
	"sort"

	"github.com/alassgo/alass/timespan"
)

// PositionBuffer is a piecewise-arithmetic integer function over a closed
// domain [lo, hi], with slopes restricted to {0, +1}. It is how the
// alignment solver records, for a single phase, which of the three DP
// choices was optimal at every t without materializing a dense
// per-millisecond back-pointer array: one segment per choice transition.
type PositionBuffer struct {
	lo, hi timespan.Timestamp
	segs   []PositionSegment
}

// NewPositionBuffer returns an empty PositionBuffer over [lo, hi], ready to
// be filled by AppendConstant/AppendIdentity in increasing time order.
func NewPositionBuffer(lo, hi timespan.Timestamp) (*PositionBuffer, error) {
	if hi < lo {
		return nil, fmt.Errorf("%w: lo=%d hi=%d", ErrEmptyDomain, lo, hi)
	}

	return &PositionBuffer{lo: lo, hi: hi}, nil
}

// Domain returns the closed range [lo, hi] the buffer is defined over.
func (p *PositionBuffer) Domain() (lo, hi timespan.Timestamp) {
	return p.lo, p.hi
}

// Segments returns the buffer's segment list in time order.
func (p *PositionBuffer) Segments() []PositionSegment {
	return p.segs
}

// AppendConstant appends a "keep previous choice" segment of the given
// length starting at the buffer's current frontier, recording value at every
// point in the segment.
func (p *PositionBuffer) AppendConstant(length int64, value int64, origin Choice) error {
	return p.append(0, value, length, origin)
}

// AppendIdentity appends an "advance with time" segment of the given length,
// recording value = t + offset at every point t in the segment.
func (p *PositionBuffer) AppendIdentity(length int64, offset int64, origin Choice) error {
	start := p.frontier()

	return p.append(1, int64(start)+offset, length, origin)
}

func (p *PositionBuffer) frontier() timespan.Timestamp {
	if len(p.segs) == 0 {
		return p.lo
	}

	return p.segs[len(p.segs)-1].end()
}

func (p *PositionBuffer) append(slope, value, length int64, origin Choice) error {
	if slope != 0 && slope != 1 {
		return fmt.Errorf("%w: slope=%d", ErrInvalidSlope, slope)
	}
	if length <= 0 {
		return nil
	}
	start := p.frontier()
	if start+timespan.Timestamp(length) > p.hi+1 {
		return fmt.Errorf("%w: segment [%d,%d) exceeds domain hi=%d", ErrInternalInvariant, start, int64(start)+length, p.hi)
	}
	p.segs = append(p.segs, PositionSegment{Start: start, Value: value, Slope: slope, Length: length, Origin: origin})
	p.normalize()

	return nil
}

// Lookup returns the recorded value at t in O(log S).
func (p *PositionBuffer) Lookup(t timespan.Timestamp) (int64, error) {
	if t < p.lo || t > p.hi {
		return 0, fmt.Errorf("%w: t=%d outside [%d,%d]", ErrInternalInvariant, t, p.lo, p.hi)
	}
	i := sort.Search(len(p.segs), func(i int) bool { return p.segs[i].end() > t })
	if i < len(p.segs) && p.segs[i].Start <= t {
		return p.segs[i].valueAt(t), nil
	}

	return 0, fmt.Errorf("%w: t=%d not covered by any segment", ErrInternalInvariant, t)
}

// normalize merges the two most recently appended segments if they share a
// slope and meet continuously in value, and is invoked after every append.
func (p *PositionBuffer) normalize() {
	n := len(p.segs)
	if n < 2 {
		return
	}
	prev, last := p.segs[n-2], p.segs[n-1]
	if prev.end() == last.Start && prev.Slope == last.Slope && prev.valueAt(prev.end()) == last.Value {
		p.segs[n-2].Length += last.Length
		p.segs = p.segs[:n-1]
	}
}

// Validate checks that the buffer's segments cover [lo, hi] exactly once
// with positive lengths, failing ErrInternalInvariant otherwise. Callers use
// it as a post-condition check after assembling a phase's PositionBuffer.
func (p *PositionBuffer) Validate() error {
	want := p.lo
	for _, s := range p.segs {
		if s.Length <= 0 {
			return fmt.Errorf("%w: non-positive segment length at %d", ErrInternalInvariant, s.Start)
		}
		if s.Start != want {
			return fmt.Errorf("%w: gap or overlap at %d, expected %d", ErrInternalInvariant, s.Start, want)
		}
		want = s.end()
	}
	if want != p.hi+1 {
		return fmt.Errorf("%w: coverage ends at %d, want %d", ErrInternalInvariant, want, p.hi+1)
	}

	return nil
}
