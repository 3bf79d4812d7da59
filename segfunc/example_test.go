package segfunc_test

import (
	"fmt"
	"math/big"

	"github.com/alassgo/alass/timespan"
)

// ExampleRatingBuffer_PointwiseMax shows how two overlapping linear pieces
// combine into a function that always takes the larger of the two.
func ExampleRatingBuffer_PointwiseMax() {
	rising := rampBuffer(0, 100, big.NewRat(0, 1), big.NewRat(1, 1))
	flat := rampBuffer(0, 100, big.NewRat(40, 1), big.NewRat(0, 1))

	m, err := rising.PointwiseMax(flat)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, t := range []timespan.Timestamp{0, 20, 40, 80} {
		fmt.Println(m.Evaluate(t).RatString())
	}
	// Output:
	// 40
	// 40
	// 40
	// 80
}
