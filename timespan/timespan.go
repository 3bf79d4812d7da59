package timespan

import "fmt"

// NewSpan constructs a Span from raw millisecond bounds, validating both the
// half-open-interval invariant and the configured time horizon.
//
// Complexity: O(1).
func NewSpan(start, end Timestamp, horizon Timestamp) (Span, error) {
	if start < 0 || end < 0 {
		return Span{}, fmt.Errorf("%w: negative bound start=%d end=%d", ErrTimeOverflow, start, end)
	}
	if start >= end {
		return Span{}, fmt.Errorf("%w: start=%d end=%d", ErrInvalidSpan, start, end)
	}
	if end > horizon {
		return Span{}, fmt.Errorf("%w: end=%d horizon=%d", ErrTimeOverflow, end, horizon)
	}

	return Span{Start: start, End: end}, nil
}

// Length returns End - Start, always positive by the Span invariant.
func (s Span) Length() Duration {
	return Duration(s.End - s.Start)
}

// Shift translates the span by delta, which may be negative. It saturates at
// zero: a span whose Start would go negative is clamped so Start=0, keeping
// Length constant (End is shifted the same clamped amount).
func (s Span) Shift(delta int64) Span {
	newStart := int64(s.Start) + delta
	newEnd := int64(s.End) + delta
	if newStart < 0 {
		clamp := -newStart
		newStart += clamp
		newEnd += clamp
	}

	return Span{Start: Timestamp(newStart), End: Timestamp(newEnd)}
}

// Overlap returns the length of the intersection of two half-open intervals,
// or zero if they are disjoint or only touch at a boundary.
//
// overlap(a, b) = max(0, min(a.End,b.End) - max(a.Start,b.Start))
func Overlap(a, b Span) Duration {
	lo := a.Start
	if b.Start > lo {
		lo = b.Start
	}
	hi := a.End
	if b.End < hi {
		hi = b.End
	}
	if hi <= lo {
		return 0
	}

	return Duration(hi - lo)
}

// SaturatingSub returns a-b, clamped to zero instead of going negative.
func SaturatingSub(a, b Timestamp) Timestamp {
	if b >= a {
		return 0
	}

	return a - b
}

// CheckHorizon returns ErrTimeOverflow if t exceeds horizon.
func CheckHorizon(t, horizon Timestamp) error {
	if t > horizon {
		return fmt.Errorf("%w: t=%d horizon=%d", ErrTimeOverflow, t, horizon)
	}

	return nil
}
