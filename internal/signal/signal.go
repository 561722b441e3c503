// Package signal generates the synthetic test material used by the
// command-line tools: tones, level steps, noise and tone bursts.
package signal

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Generator fills dst with the next len(dst) samples of a signal.
type Generator interface {
	Fill(dst []float64)
}

// Kind names a generator.
type Kind string

const (
	KindSine  Kind = "sine"
	KindStep  Kind = "step"
	KindNoise Kind = "noise"
	KindBurst Kind = "burst"
)

// Kinds lists every generator name.
var Kinds = []Kind{KindSine, KindStep, KindNoise, KindBurst}

// Config describes a generator.
type Config struct {
	Kind       Kind
	SampleRate float64
	// FreqHz is the tone frequency of sine, step and burst signals.
	FreqHz float64
	// LevelDB is the peak level in dBFS.
	LevelDB float64
	// Period is the step onset or burst period in seconds.
	Period float64
	Seed   int64
}

// New builds the generator described by cfg.
func New(cfg Config) (Generator, error) {
	if !(cfg.SampleRate > 0) {
		return nil, fmt.Errorf("signal: sample rate must be positive: %f", cfg.SampleRate)
	}

	amp := math.Pow(10, cfg.LevelDB/20)
	if math.IsNaN(amp) || math.IsInf(amp, 0) {
		return nil, fmt.Errorf("signal: invalid level: %f dBFS", cfg.LevelDB)
	}

	kind := Kind(strings.ToLower(string(cfg.Kind)))
	if kind != KindNoise && (!(cfg.FreqHz > 0) || cfg.FreqHz >= cfg.SampleRate/2) {
		return nil, fmt.Errorf("signal: frequency must be in (0, %f): %f", cfg.SampleRate/2, cfg.FreqHz)
	}

	period := int(math.Round(cfg.Period * cfg.SampleRate))

	switch kind {
	case KindSine:
		return NewSine(cfg.FreqHz, amp, cfg.SampleRate), nil
	case KindStep:
		return &Step{tone: NewSine(cfg.FreqHz, amp, cfg.SampleRate), onset: period}, nil
	case KindNoise:
		return &Noise{rng: rand.New(rand.NewSource(cfg.Seed)), amp: amp}, nil
	case KindBurst:
		if period < 2 {
			return nil, fmt.Errorf("signal: burst period too short: %f s", cfg.Period)
		}

		return &Burst{tone: NewSine(cfg.FreqHz, amp, cfg.SampleRate), period: period, quiet: math.Pow(10, -24.0/20)}, nil
	default:
		return nil, fmt.Errorf("signal: unknown kind %q", cfg.Kind)
	}
}

// Sine is a phase-continuous sine oscillator.
type Sine struct {
	phase float64
	step  float64
	amp   float64
}

// NewSine returns an oscillator starting at phase 0.
func NewSine(freqHz, amp, sampleRate float64) *Sine {
	return &Sine{step: 2 * math.Pi * freqHz / sampleRate, amp: amp}
}

// Fill implements Generator.
func (s *Sine) Fill(dst []float64) {
	for i := range dst {
		dst[i] = s.amp * math.Sin(s.phase)

		s.phase += s.step
		if s.phase >= 2*math.Pi {
			s.phase -= 2 * math.Pi
		}
	}
}

// Step is silent for onset samples and then plays its tone.
type Step struct {
	tone  *Sine
	onset int
	pos   int
}

// Fill implements Generator.
func (s *Step) Fill(dst []float64) {
	for i := range dst {
		if s.pos < s.onset {
			dst[i] = 0
			s.pos++

			continue
		}

		s.tone.Fill(dst[i : i+1])
	}
}

// Noise is uniform white noise.
type Noise struct {
	rng *rand.Rand
	amp float64
}

// Fill implements Generator.
func (n *Noise) Fill(dst []float64) {
	for i := range dst {
		dst[i] = (n.rng.Float64()*2 - 1) * n.amp
	}
}

// Burst alternates its tone between full level and 24 dB down every half
// period, which exercises attack and release in turn.
type Burst struct {
	tone   *Sine
	period int
	quiet  float64
	pos    int
}

// Fill implements Generator.
func (b *Burst) Fill(dst []float64) {
	b.tone.Fill(dst)

	for i := range dst {
		if b.pos >= b.period/2 {
			dst[i] *= b.quiet
		}

		b.pos++
		if b.pos == b.period {
			b.pos = 0
		}
	}
}
