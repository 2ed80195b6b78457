package spectrum_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-grain/dsp/spectrum"
)

func ExampleAnalyze() {
	x := make([]float64, 2048)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * 440 * float64(i) / 2048)
	}

	s, err := spectrum.Analyze(x, 2048)
	if err != nil {
		panic(err)
	}

	fmt.Println(s.FFTSize, s.PeakHz)
	// Output: 2048 440
}
