package dynamics

import (
	"math"

	"github.com/cwbudde/omega76/dsp/core"
)

const (
	// DefaultThresholdDB is the fixed compression threshold.
	DefaultThresholdDB = -18.0

	// LevelFloor is the smallest envelope value fed to the logarithm.
	LevelFloor = 1e-8

	minRatio = 1.0
)

// GainComputer is the static hard-knee transfer curve. It holds no state;
// the zero value is unusable, build one with NewGainComputer.
type GainComputer struct {
	thresholdDB float64
	ratio       float64
	invRatio    float64
}

// NewGainComputer returns a gain computer for the given threshold and ratio.
//
// A non-finite threshold falls back to DefaultThresholdDB. Ratios below 1
// or NaN are treated as 1:1 (no compression); +Inf is accepted and behaves
// as a brick-wall limiter.
func NewGainComputer(thresholdDB, ratio float64) GainComputer {
	if !core.IsFinite(thresholdDB) {
		thresholdDB = DefaultThresholdDB
	}

	if !(ratio >= minRatio) {
		ratio = minRatio
	}

	return GainComputer{
		thresholdDB: thresholdDB,
		ratio:       ratio,
		invRatio:    1 / ratio,
	}
}

// Threshold returns the threshold in dB.
func (g GainComputer) Threshold() float64 { return g.thresholdDB }

// Ratio returns the compression ratio.
func (g GainComputer) Ratio() float64 { return g.ratio }

// TargetGainDB maps a detected level in dB to a target gain in dB (<= 0).
func (g GainComputer) TargetGainDB(levelDB float64) float64 {
	if !(levelDB > g.thresholdDB) || g.invRatio == 1 {
		return 0
	}

	if math.IsInf(levelDB, 1) {
		levelDB = math.MaxFloat64
	}

	over := levelDB - g.thresholdDB
	compressedOver := over * g.invRatio

	return math.Min((g.thresholdDB+compressedOver)-levelDB, 0)
}

// TargetGain maps a linear envelope to a linear target gain in (0, 1].
func (g GainComputer) TargetGain(envelope float64) float64 {
	if !(envelope > LevelFloor) {
		envelope = LevelFloor
	}

	gainDB := g.TargetGainDB(20 * mathLog10(envelope))
	if gainDB == 0 {
		return 1
	}

	gain := mathPower10(gainDB / 20)
	if gain > 1 {
		return 1
	}

	if !(gain > 0) {
		return math.SmallestNonzeroFloat64
	}

	return gain
}
