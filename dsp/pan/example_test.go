package pan_test

import (
	"fmt"

	"github.com/cwbudde/algo-grain/dsp/pan"
)

func ExampleGains() {
	for _, p := range []float64{-1, 0, 1} {
		l, r := pan.Gains(p, pan.ConstantPower)
		fmt.Printf("pan=%+.0f left=%.4f right=%.4f\n", p, l, r)
	}

	// Output:
	// pan=-1 left=1.0000 right=0.0000
	// pan=+0 left=0.7071 right=0.7071
	// pan=+1 left=0.0000 right=1.0000
}
