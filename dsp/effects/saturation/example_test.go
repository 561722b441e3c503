package saturation_test

import (
	"fmt"

	"github.com/cwbudde/omega76/dsp/effects/saturation"
)

func ExampleSaturator() {
	s, err := saturation.New(1, 2.6)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, x := range []float64{-1, -0.25, 0, 0.25, 1} {
		fmt.Printf("%+.2f -> %+.4f\n", x, s.ProcessSample(x))
	}

	fmt.Printf("bound %.4f\n", s.Bound())
	// Output:
	// -1.00 -> -1.0000
	// -0.25 -> -0.4789
	// +0.00 -> +0.0000
	// +0.25 -> +0.4789
	// +1.00 -> +1.0000
	// bound 1.3051
}
