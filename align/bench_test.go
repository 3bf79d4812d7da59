package align_test

import (
	"strconv"
	"testing"

	"github.com/alassgo/alass/align"
	"github.com/alassgo/alass/timespan"
)

// BenchmarkAlign measures the cost of the N-phase solve as the track length
// grows, since each phase's cost is dominated by the reference track's own
// segment count rather than by N.
func BenchmarkAlign(b *testing.B) {
	for _, n := range []int{8, 64, 256} {
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			reference, incorrect := driftedTracks(b, n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := align.Align(reference, incorrect, align.WithSplitPenalty(10)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func driftedTracks(b *testing.B, n int) (align.Track, align.Track) {
	b.Helper()
	reference := make(align.Track, n)
	incorrect := make(align.Track, n)
	for i := 0; i < n; i++ {
		start := timespan.Timestamp(i * 2000)
		r, err := timespan.NewSpan(start, start+1000, timespan.MaxTimestamp)
		if err != nil {
			b.Fatal(err)
		}
		reference[i] = r

		inc, err := timespan.NewSpan(start+300, start+1300, timespan.MaxTimestamp)
		if err != nil {
			b.Fatal(err)
		}
		incorrect[i] = inc
	}

	return reference, incorrect
}
