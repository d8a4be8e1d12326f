package population_test

import (
	"fmt"

	"github.com/cwbudde/algo-abc/stats/population"
	"gonum.org/v1/gonum/mat"
)

func ExampleSummarize() {
	pop := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	s, err := population.Summarize(pop)
	if err != nil {
		panic(err)
	}
	for _, cs := range s {
		fmt.Printf("%.4f(%.4f)\n", cs.Mean, cs.StdDev)
	}

	// Output:
	// 3.0000(1.6330)
	// 4.0000(1.6330)
}
