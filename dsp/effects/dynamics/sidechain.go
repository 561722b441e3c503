package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/omega76/dsp/filter/biquad"
	"github.com/cwbudde/omega76/dsp/filter/design"
)

const (
	// DefaultSidechainCutoffHz is the detector high-pass corner.
	DefaultSidechainCutoffHz = 120.0

	// DefaultSidechainOrder selects the single-pole response.
	DefaultSidechainOrder = 1

	sidechainChannels = 2
)

type sidechainConfig struct {
	cutoff float64
	order  int
}

// SidechainOption configures a SidechainFilter.
type SidechainOption func(*sidechainConfig) error

// WithSidechainOrder selects a first-order (1) or second-order (2)
// Butterworth high-pass for the detector path.
func WithSidechainOrder(order int) SidechainOption {
	return func(cfg *sidechainConfig) error {
		if order != 1 && order != 2 {
			return fmt.Errorf("sidechain order must be 1 or 2: %d", order)
		}

		cfg.order = order

		return nil
	}
}

// WithSidechainCutoff sets the high-pass corner frequency in Hz.
func WithSidechainCutoff(freq float64) SidechainOption {
	return func(cfg *sidechainConfig) error {
		if !(freq > 0) || math.IsInf(freq, 0) {
			return fmt.Errorf("sidechain cutoff must be positive and finite: %f", freq)
		}

		cfg.cutoff = freq

		return nil
	}
}

// SidechainFilter is a per-channel high-pass applied to the detector
// signal only. The audio path never passes through it.
type SidechainFilter struct {
	sampleRate float64
	cutoff     float64
	order      int
	cascade    *biquad.Cascade
}

// NewSidechainFilter creates a two-channel detector filter.
func NewSidechainFilter(sampleRate float64, opts ...SidechainOption) (*SidechainFilter, error) {
	cfg := sidechainConfig{
		cutoff: DefaultSidechainCutoffHz,
		order:  DefaultSidechainOrder,
	}

	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	f := &SidechainFilter{
		cutoff: cfg.cutoff,
		order:  cfg.order,
	}

	if err := f.Configure(sampleRate); err != nil {
		return nil, err
	}

	return f, nil
}

// Configure redesigns the filter for sampleRate and clears its history.
func (f *SidechainFilter) Configure(sampleRate float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("sidechain sample rate must be positive and finite: %f", sampleRate)
	}

	if f.cutoff >= sampleRate/2 {
		return fmt.Errorf("sidechain cutoff %f Hz must be below Nyquist (%f Hz)", f.cutoff, sampleRate/2)
	}

	coeffs := design.ButterworthHP(f.cutoff, f.order, sampleRate)

	if f.cascade == nil {
		f.cascade = biquad.NewCascade(sidechainChannels, coeffs)
	} else {
		f.cascade.SetCoefficients(coeffs)
		f.cascade.Reset()
	}

	f.sampleRate = sampleRate

	return nil
}

// Process filters one detector sample for channel ch (0 or 1).
//
// When enabled is false the input is returned unchanged and the filter
// state does not advance, so toggling never causes a reset.
func (f *SidechainFilter) Process(ch int, x float64, enabled bool) float64 {
	if !enabled || ch < 0 || ch >= sidechainChannels {
		return x
	}

	return f.cascade.ProcessSample(ch, x)
}

// Reset clears the filter history of both channels.
func (f *SidechainFilter) Reset() {
	if f.cascade != nil {
		f.cascade.Reset()
	}
}

// SampleRate returns the rate the filter was designed for.
func (f *SidechainFilter) SampleRate() float64 { return f.sampleRate }

// Cutoff returns the corner frequency in Hz.
func (f *SidechainFilter) Cutoff() float64 { return f.cutoff }

// Order returns the filter order.
func (f *SidechainFilter) Order() int { return f.order }

// MagnitudeDB returns the filter magnitude response at freqHz.
func (f *SidechainFilter) MagnitudeDB(freqHz float64) float64 {
	return f.cascade.MagnitudeDB(freqHz, f.sampleRate)
}
