package biquad

import (
	"math"

	"github.com/cwbudde/omega76/dsp/core"
)

// Coefficients holds the transfer function of one section with a0
// normalized to 1:
//
//	y  = B0*x + s0
//	s0 = B1*x - A1*y + s1
//	s1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// State is the two-element delay line of one section.
type State [2]float64

// Step filters x through c, advancing s. Denormal state is flushed to zero
// so long silent tails do not slow the audio thread.
func (c Coefficients) Step(x float64, s *State) float64 {
	y := c.B0*x + s[0]
	s[0] = core.FlushDenormals(c.B1*x - c.A1*y + s[1])
	s[1] = core.FlushDenormals(c.B2*x - c.A2*y)

	return y
}

// FirstOrder reports whether the section has no second-order terms.
func (c Coefficients) FirstOrder() bool {
	return c.B2 == 0 && c.A2 == 0
}

// Stable reports whether both poles lie strictly inside the unit circle.
func (c Coefficients) Stable() bool {
	return math.Abs(c.A2) < 1 && math.Abs(c.A1) < 1+c.A2
}
