package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a sine wave starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates uniform white noise in [-amplitude, amplitude)
// from a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Step is silent before index at and holds level from there on.
func Step(level float64, at, length int) []float64 {
	out := make([]float64, length)
	for i := max(at, 0); i < length; i++ {
		out[i] = level
	}
	return out
}

// DBFS converts a level in dBFS to a linear amplitude.
func DBFS(db float64) float64 {
	return math.Pow(10, db/20)
}

// Stereo builds a two-channel block from copies of l and r.
func Stereo(l, r []float64) [][]float64 {
	return [][]float64{append([]float64(nil), l...), append([]float64(nil), r...)}
}

// CloneBlock deep-copies a multichannel block.
func CloneBlock(block [][]float64) [][]float64 {
	out := make([][]float64, len(block))
	for ch := range block {
		out[ch] = append([]float64(nil), block[ch]...)
	}
	return out
}
