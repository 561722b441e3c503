package window_test

import (
	"fmt"

	"github.com/cwbudde/omega76/dsp/window"
)

func ExampleGenerate() {
	w := window.Generate(window.TypeHann, 4, window.WithPeriodic())
	fmt.Printf("%.2f %.2f %.2f %.2f\n", w[0], w[1], w[2], w[3])
	fmt.Printf("ENBW %.2f bins\n", window.ENBW(w))
	// Output:
	// 0.00 0.50 1.00 0.50
	// ENBW 1.50 bins
}
