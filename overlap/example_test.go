package overlap_test

import (
	"fmt"

	"github.com/alassgo/alass/overlap"
	"github.com/alassgo/alass/timespan"
)

// ExampleBuildLineRating shows the rating earned by a 1000ms incorrect line
// as it slides across a single 1000ms reference line at [1000, 2000).
func ExampleBuildLineRating() {
	h := timespan.Timestamp(3000)
	r, err := timespan.NewSpan(1000, 2000, h)
	if err != nil {
		panic(err)
	}

	o, err := overlap.BuildLineRating([]timespan.Span{r}, 1000, h)
	if err != nil {
		panic(err)
	}

	for _, t := range []timespan.Timestamp{0, 500, 1000, 1500, 2000} {
		fmt.Println(o.Evaluate(t).FloatString(2))
	}
	// Output:
	// 0.00
	// 0.50
	// 1.00
	// 0.50
	// 0.00
}
