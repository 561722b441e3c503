package omega

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/omega76/dsp/core"
	"github.com/cwbudde/omega76/dsp/effects/dynamics"
)

// MaxGainReductionDB caps the published gain reduction.
const MaxGainReductionDB = 30.0

// Telemetry carries the latest per-block peak gain reduction from the
// audio goroutine to any number of readers. The latest store wins.
type Telemetry struct {
	bits atomic.Uint64
}

// GainReductionDB returns the most recent peak gain reduction in dB,
// in [0, MaxGainReductionDB].
func (t *Telemetry) GainReductionDB() float64 {
	return math.Float64frombits(t.bits.Load())
}

func (t *Telemetry) publish(db float64) {
	if !(db > 0) {
		db = 0
	}

	t.bits.Store(math.Float64bits(math.Min(db, MaxGainReductionDB)))
}

// Meter ballistics defaults, in milliseconds.
const (
	DefaultMeterAttackMs  = 22.0
	DefaultMeterReleaseMs = 140.0

	minMeterMs  = 0.1
	minMeterTau = 0.001
)

// Meter smooths Telemetry for display. It is driven by a display timer and
// is not safe for concurrent use; the Telemetry it reads is.
type Meter struct {
	src       *Telemetry
	attackMs  float64
	releaseMs float64
	current   float64
}

// NewMeter creates a meter reading t with the default ballistics.
func NewMeter(t *Telemetry) *Meter {
	return &Meter{
		src:       t,
		attackMs:  DefaultMeterAttackMs,
		releaseMs: DefaultMeterReleaseMs,
	}
}

// SetBallistics sets the attack and release times in milliseconds.
// Both are raised to at least 0.1 ms.
func (m *Meter) SetBallistics(attackMs, releaseMs float64) {
	m.attackMs = math.Max(core.Sanitize(attackMs), minMeterMs)
	m.releaseMs = math.Max(core.Sanitize(releaseMs), minMeterMs)
}

// Tick advances the needle by one display frame at rateHz and returns its
// position in dB. Rates of 1 Hz or less snap straight to the target.
func (m *Meter) Tick(rateHz float64) float64 {
	target := m.src.GainReductionDB()

	if !(rateHz > 1) {
		m.current = target
		return m.current
	}

	ms := m.releaseMs
	if target > m.current {
		ms = m.attackMs
	}

	tau := math.Max(ms/1000, minMeterTau)
	a := dynamics.TimeConstantCoeff(tau, rateHz)
	m.current = target + (m.current-target)*a

	return m.current
}

// Value returns the current needle position in dB.
func (m *Meter) Value() float64 { return m.current }

// Reset parks the needle at 0 dB.
func (m *Meter) Reset() { m.current = 0 }
