package thd

import (
	"fmt"
	"math"
)

// Shaper is a memoryless or stateful in-place signal processor, such as a
// saturator or a mono engine.
type Shaper interface {
	ProcessInPlace(buf []float64)
}

// ShaperFunc adapts a function to Shaper.
type ShaperFunc func(buf []float64)

// ProcessInPlace calls f(buf).
func (f ShaperFunc) ProcessInPlace(buf []float64) { f(buf) }

// MeasureShaper drives s with a sine of the given peak amplitude at the
// bin-centered frequency nearest freqHz and analyzes its output. The
// first frame is discarded so stateful shapers can settle.
func (a *Analyzer) MeasureShaper(s Shaper, freqHz, amplitude float64) (Result, error) {
	if !(freqHz > 0) || freqHz >= a.cfg.SampleRate/2 {
		return Result{}, fmt.Errorf("thd: test frequency out of range: %f", freqHz)
	}

	f := a.CoherentFrequency(freqHz)
	n := 2 * a.cfg.FFTSize
	step := 2 * math.Pi * f / a.cfg.SampleRate

	signal := make([]float64, n)
	for i := range signal {
		signal[i] = amplitude * math.Sin(step*float64(i))
	}

	s.ProcessInPlace(signal)

	return a.analyze(signal, f)
}
