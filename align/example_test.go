package align_test

import (
	"fmt"

	"github.com/alassgo/alass/align"
	"github.com/alassgo/alass/timespan"
)

// ExampleAlign corrects a track that has drifted by a constant 500ms offset
// from its reference.
func ExampleAlign() {
	span := func(start, end timespan.Timestamp) timespan.Span {
		s, err := timespan.NewSpan(start, end, timespan.MaxTimestamp)
		if err != nil {
			panic(err)
		}
		return s
	}

	reference := align.Track{
		span(1000, 2000),
		span(3000, 4000),
		span(5000, 6000),
	}
	incorrect := align.Track{
		span(1500, 2500),
		span(3500, 4500),
		span(5500, 6500),
	}

	corrected, err := align.Align(reference, incorrect, align.WithSplitPenalty(10))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, line := range corrected {
		fmt.Println(line.Start, line.End)
	}
	// Output:
	// 1000 2000
	// 3000 4000
	// 5000 6000
}
