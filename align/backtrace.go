package align

import (
	"fmt"
	"sort"

	"github.com/alassgo/alass/segfunc"
	"github.com/alassgo/alass/timespan"
)

// backtrace reconstructs the corrected start of every incorrect line from
// the per-phase PositionBuffers, in reverse. t* coincides with horizon
// because G_N is monotone non-decreasing; the walk starts with v_N = P_N(t*)
// and continues with v_n-1 = P_n-1(v_n) for n = N..2. Where v_n traces back
// to a REPOSITION segment of P_n, it is the line's start (s_n = v_n); where
// it traces back to a NOSPLIT segment, it is the predecessor's lookup point
// t - gap_n-1, so s_n = v_n + gap_n-1. KEEP segments carry the value of the
// nearest non-KEEP segment before them and are traced through to it.
func backtrace(positions []*segfunc.PositionBuffer, incorrect Track, horizon timespan.Timestamp) ([]int64, error) {
	n := len(positions)
	starts := make([]int64, n)

	t := horizon
	for i := n - 1; i >= 0; i-- {
		v, err := positions[i].Lookup(t)
		if err != nil {
			return nil, fmt.Errorf("phase %d back-trace: %w", i+1, err)
		}
		segs := positions[i].Segments()
		j := sort.Search(len(segs), func(k int) bool { return segs[k].Start+timespan.Timestamp(segs[k].Length) > t })
		for j > 0 && segs[j].Origin == segfunc.ChoiceKeep {
			j--
		}
		starts[i] = v
		if i > 0 && segs[j].Origin == segfunc.ChoiceNoSplit {
			starts[i] = v + int64(incorrect[i].Start) - int64(incorrect[i-1].Start)
		}
		t = timespan.Timestamp(v)
	}

	for i := 1; i < n; i++ {
		if starts[i-1] > starts[i] {
			return nil, fmt.Errorf("%w: reconstructed starts not monotone: s[%d]=%d > s[%d]=%d", ErrInternalInvariant, i-1, starts[i-1], i, starts[i])
		}
	}

	return starts, nil
}
