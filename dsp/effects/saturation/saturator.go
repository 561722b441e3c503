package saturation

import (
	"fmt"
	"math"

	"github.com/cwbudde/omega76/dsp/core"
)

const (
	defaultDrive    = 1.0
	defaultHardness = 1.0

	minDrive    = 0.0
	maxDrive    = 100.0
	minHardness = 0.01
	maxHardness = 10.0
)

// Saturator is a stateless arctangent waveshaper. Both channels of a stereo
// signal can share one instance.
type Saturator struct {
	drive    float64
	hardness float64
	gain     float64
	norm     float64
}

// New creates a saturator with drive in [0, 100] and hardness in [0.01, 10].
func New(drive, hardness float64) (*Saturator, error) {
	s := &Saturator{}
	s.Configure(defaultDrive, defaultHardness)

	if err := s.SetDrive(drive); err != nil {
		return nil, err
	}

	if err := s.SetHardness(hardness); err != nil {
		return nil, err
	}

	return s, nil
}

// SetDrive sets the input drive.
func (s *Saturator) SetDrive(drive float64) error {
	if drive < minDrive || drive > maxDrive || !core.IsFinite(drive) {
		return fmt.Errorf("saturation drive must be in [%g, %g]: %f", minDrive, maxDrive, drive)
	}

	s.Configure(drive, s.hardness)

	return nil
}

// SetHardness sets the knee hardness.
func (s *Saturator) SetHardness(hardness float64) error {
	if hardness < minHardness || hardness > maxHardness || !core.IsFinite(hardness) {
		return fmt.Errorf("saturation hardness must be in [%g, %g]: %f", minHardness, maxHardness, hardness)
	}

	s.Configure(s.drive, hardness)

	return nil
}

// Configure sets drive and hardness without reporting errors. Values are
// clamped to their valid ranges and non-finite values fall back to the
// defaults, which makes it safe to call once per audio block.
func (s *Saturator) Configure(drive, hardness float64) {
	if !core.IsFinite(drive) {
		drive = defaultDrive
	}

	if !core.IsFinite(hardness) {
		hardness = defaultHardness
	}

	s.drive = core.Clamp(drive, minDrive, maxDrive)
	s.hardness = core.Clamp(hardness, minHardness, maxHardness)
	s.gain = s.drive * s.hardness
	s.norm = 1 / math.Atan(s.hardness)
}

// Drive returns the current drive.
func (s *Saturator) Drive() float64 { return s.drive }

// Hardness returns the current hardness.
func (s *Saturator) Hardness() float64 { return s.hardness }

// Bound returns the largest output magnitude the current curve can reach.
func (s *Saturator) Bound() float64 { return math.Pi / 2 * s.norm }

// ProcessSample shapes one sample.
func (s *Saturator) ProcessSample(x float64) float64 {
	return math.Atan(x*s.gain) * s.norm
}

// ProcessInPlace shapes buf in place.
func (s *Saturator) ProcessInPlace(buf []float64) {
	gain, norm := s.gain, s.norm
	for i, x := range buf {
		buf[i] = math.Atan(x*gain) * norm
	}
}

// Process shapes src into dst. It processes min(len(dst), len(src)) samples.
func (s *Saturator) Process(dst, src []float64) {
	n := min(len(dst), len(src))

	gain, norm := s.gain, s.norm
	for i := range n {
		dst[i] = math.Atan(src[i]*gain) * norm
	}
}
