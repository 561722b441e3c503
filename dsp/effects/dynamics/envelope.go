package dynamics

import (
	"math"

	"github.com/cwbudde/omega76/dsp/core"
)

const (
	// MinTimeConstant is the floor applied to attack and release times
	// before a coefficient is derived from them.
	MinTimeConstant = 1e-4

	// maxCoeff keeps coefficients strictly below one for very long times.
	maxCoeff = 1 - 1e-12
)

// TimeConstantCoeff returns the one-pole coefficient exp(-1/(seconds*fs)).
//
// seconds is raised to MinTimeConstant first, so the result lies in (0, 1)
// for any positive finite sample rate. An invalid sample rate yields 0,
// which makes the follower track its input instantly.
func TimeConstantCoeff(seconds, sampleRate float64) float64 {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return 0
	}

	if !(seconds >= MinTimeConstant) || math.IsInf(seconds, 1) {
		if math.IsInf(seconds, 1) {
			return maxCoeff
		}

		seconds = MinTimeConstant
	}

	return math.Min(math.Exp(-1/(seconds*sampleRate)), maxCoeff)
}

// Ballistics is an attack/release coefficient pair.
//
// Attack applies while the tracked quantity moves towards more gain
// reduction, release while it recovers.
type Ballistics struct {
	Attack  float64
	Release float64
}

// NewBallistics derives a coefficient pair from time constants in seconds.
func NewBallistics(attackSeconds, releaseSeconds, sampleRate float64) Ballistics {
	return Ballistics{
		Attack:  TimeConstantCoeff(attackSeconds, sampleRate),
		Release: TimeConstantCoeff(releaseSeconds, sampleRate),
	}
}

// EnvelopeFollower tracks a running estimate of detector magnitude.
//
//	envelope = detector + coeff*(envelope - detector)
//
// coeff is the attack coefficient while the detector is above the envelope
// and the release coefficient otherwise. The envelope is never negative.
type EnvelopeFollower struct {
	envelope float64
}

// Process advances the follower by one detector sample and returns the
// new envelope. Negative and non-finite detector values count as silence.
func (e *EnvelopeFollower) Process(detector float64, b Ballistics) float64 {
	if !(detector > 0) || math.IsInf(detector, 1) {
		detector = 0
	}

	coeff := b.Release
	if detector > e.envelope {
		coeff = b.Attack
	}

	e.envelope = core.FlushDenormals(detector + coeff*(e.envelope-detector))

	return e.envelope
}

// Value returns the current envelope.
func (e *EnvelopeFollower) Value() float64 { return e.envelope }

// Reset returns the follower to silence.
func (e *EnvelopeFollower) Reset() { e.envelope = 0 }
