package window

import (
	"fmt"
	"math"
	"strings"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function. The zero value is Hann.
type Type int

const (
	TypeHann Type = iota
	TypeHamming
	TypeBlackman
	TypeRectangular
)

// cosine-sum terms: w(x) = sum c[k]*cos(2*pi*k*x), x in [0, 1].
var cosineTerms = map[Type][]float64{
	TypeHann:        {0.5, -0.5},
	TypeHamming:     {0.54, -0.46},
	TypeBlackman:    {0.42, -0.5, 0.08},
	TypeRectangular: {1},
}

var typeNames = map[Type]string{
	TypeHann:        "Hann",
	TypeHamming:     "Hamming",
	TypeBlackman:    "Blackman",
	TypeRectangular: "Rectangular",
}

// String returns the window name.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

// Parse resolves a case-insensitive window name.
func Parse(name string) (Type, error) {
	for t, n := range typeNames {
		if strings.EqualFold(n, name) {
			return t, nil
		}
	}

	return 0, fmt.Errorf("window: unknown window: %q", name)
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic selects the periodic form used for FFT framing: the
// window spans length+1 points with the last one dropped.
func WithPeriodic() Option {
	return func(c *config) { c.periodic = true }
}

// Generate returns length coefficients of window t, or nil for a
// non-positive length or unknown type.
func Generate(t Type, length int, opts ...Option) []float64 {
	terms, ok := cosineTerms[t]
	if length <= 0 || !ok {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	den := float64(length - 1)
	if cfg.periodic || length == 1 {
		den = float64(length)
	}

	out := make([]float64, length)
	for i := range out {
		phase := 2 * math.Pi * float64(i) / den

		sum := 0.0
		for k, c := range terms {
			sum += c * math.Cos(float64(k)*phase)
		}

		out[i] = sum
	}

	return out
}

// Apply multiplies buf in place by coeffs. The lengths must match.
func Apply(buf, coeffs []float64) error {
	if len(buf) != len(coeffs) {
		return fmt.Errorf("window: length mismatch: %d samples, %d coefficients", len(buf), len(coeffs))
	}

	vecmath.MulBlockInPlace(buf, coeffs)

	return nil
}

// CoherentGain returns the mean coefficient, the amplitude gain the window
// applies to a bin-centered tone.
func CoherentGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	return sum / float64(len(coeffs))
}

// PowerGain returns the mean squared coefficient, the factor by which the
// window scales the total energy of a frame.
func PowerGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}

	return vecmath.DotProduct(coeffs, coeffs) / float64(len(coeffs))
}

// ENBW returns the equivalent noise bandwidth in bins.
func ENBW(coeffs []float64) float64 {
	cg := CoherentGain(coeffs)
	if cg == 0 {
		return math.Inf(1)
	}

	return PowerGain(coeffs) / (cg * cg)
}
