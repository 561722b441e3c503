package dynamics

// GainSmoother applies the envelope ballistics to the linear gain
// trajectory: attack while the target asks for more reduction than the
// current gain, release while the gain recovers. Every step lands between
// the previous gain and the target, so there is no overshoot.
type GainSmoother struct {
	gain float64
}

// NewGainSmoother returns a smoother resting at unity gain.
func NewGainSmoother() GainSmoother {
	return GainSmoother{gain: 1}
}

// Process moves the smoothed gain towards target and returns it.
func (s *GainSmoother) Process(target float64, b Ballistics) float64 {
	coeff := b.Release
	if target < s.gain {
		coeff = b.Attack
	}

	s.gain = target + coeff*(s.gain-target)

	return s.gain
}

// Value returns the current smoothed gain.
func (s *GainSmoother) Value() float64 { return s.gain }

// Reset returns the smoother to unity gain.
func (s *GainSmoother) Reset() { s.gain = 1 }
