package omega

import (
	"github.com/cwbudde/omega76/dsp/core"
	"github.com/cwbudde/omega76/dsp/effects/dynamics"
)

const (
	// AttackTime is the fixed attack time constant in seconds.
	AttackTime = 0.010

	// ThresholdDB is the fixed compression threshold.
	ThresholdDB = dynamics.DefaultThresholdDB

	minDriveBase    = 1.0
	maxDriveBase    = 12.0
	minHardness     = 1.0
	maxHardness     = 2.6
	defaultRelease  = 0.150
	defaultMode     = 0.5
	defaultMixLevel = 1.0
)

// ControlParameters is the per-block snapshot of everything the sample
// loop needs. It is a plain value and never changes during a block.
type ControlParameters struct {
	InputGain    float64
	Ratio        float64
	AttackCoeff  float64
	ReleaseCoeff float64
	Drive        float64
	Hardness     float64
	Mix          float64
	SubMix       float64
	Routing      RoutingMode
	SidechainHPF bool
	PoweredOn    bool
	ThresholdDB  float64
}

// DefaultControlParameters returns the parameters of a freshly loaded
// processor at sampleRate.
func DefaultControlParameters(sampleRate float64) ControlParameters {
	return ControlParameters{
		InputGain:    1,
		Ratio:        Clean.Ratio(),
		AttackCoeff:  dynamics.TimeConstantCoeff(AttackTime, sampleRate),
		ReleaseCoeff: dynamics.TimeConstantCoeff(defaultRelease, sampleRate),
		Drive:        Drive(defaultMode, Clean),
		Hardness:     Hardness(0),
		Mix:          defaultMixLevel,
		SubMix:       defaultMixLevel,
		Routing:      CompressorOnly,
		PoweredOn:    true,
		ThresholdDB:  ThresholdDB,
	}
}

// Drive maps the MODE control (0..1) and character to saturation drive.
func Drive(mode float64, character CharacterMode) float64 {
	return core.Lerp(core.Clamp(mode, 0, 1), minDriveBase, maxDriveBase) * character.DriveBoost()
}

// Hardness maps the EDGE control (0..1) to saturation hardness.
func Hardness(edge float64) float64 {
	return core.Lerp(core.Clamp(edge, 0, 1), minHardness, maxHardness)
}

// ballistics returns the coefficient pair shared by the envelope follower
// and the gain smoother.
func (cp ControlParameters) ballistics() dynamics.Ballistics {
	return dynamics.Ballistics{Attack: cp.AttackCoeff, Release: cp.ReleaseCoeff}
}

// sanitized replaces values the sample loop cannot work with.
func (cp ControlParameters) sanitized() ControlParameters {
	if !core.IsFinite(cp.InputGain) || cp.InputGain < 0 {
		cp.InputGain = 1
	}

	if !core.IsFinite(cp.ThresholdDB) {
		cp.ThresholdDB = ThresholdDB
	}

	cp.AttackCoeff = sanitizeCoeff(cp.AttackCoeff)
	cp.ReleaseCoeff = sanitizeCoeff(cp.ReleaseCoeff)
	cp.Mix = sanitizeUnit(cp.Mix, defaultMixLevel)
	cp.SubMix = sanitizeUnit(cp.SubMix, defaultMixLevel)

	if !cp.Routing.valid() {
		cp.Routing = CompressorOnly
	}

	return cp
}

func sanitizeCoeff(c float64) float64 {
	if !(c >= 0 && c < 1) {
		return 0
	}

	return c
}

func sanitizeUnit(v, def float64) float64 {
	if !core.IsFinite(v) {
		return def
	}

	return core.Clamp(v, 0, 1)
}
