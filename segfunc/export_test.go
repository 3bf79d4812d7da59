package segfunc

import "github.com/alassgo/alass/timespan"

// NewRatingBufferForTest builds a RatingBuffer from an explicit segment list
// covering [lo, hi] exactly, through BuildFromSegments, so tests can
// exercise CumulativeMax and PointwiseMax against hand-crafted inputs. It
// panics on a malformed segment list since test fixtures are expected to be
// correct by construction; production code should use BuildFromSegments and
// handle the error. Only compiled into test binaries.
func NewRatingBufferForTest(lo, hi, horizon timespan.Timestamp, segs []RatingSegment) *RatingBuffer {
	b, err := BuildFromSegments(lo, hi, horizon, segs)
	if err != nil {
		panic(err)
	}

	return b
}
