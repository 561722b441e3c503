package omega

import (
	"math"

	"github.com/cwbudde/omega76/dsp/core"
	"github.com/cwbudde/omega76/dsp/effects/dynamics"
	"github.com/cwbudde/omega76/dsp/param"
)

// Resolver turns control values into ControlParameters, once per block.
//
// Missing or non-finite values fall back to the layout default and every
// value is clamped to its declared range. The attack and release
// coefficients are cached and only recomputed when the release time or
// the sample rate changes.
type Resolver struct {
	input     param.Spec
	release   param.Spec
	edge      param.Spec
	mode      param.Spec
	mix       param.Spec
	omegaMix  param.Spec
	sidechain param.Spec
	power     param.Spec
	character param.Spec
	routing   param.Spec

	sampleRate   float64
	releaseMs    float64
	attackCoeff  float64
	releaseCoeff float64
}

// NewResolver creates a resolver for layout. Controls the layout does not
// declare are taken from DefaultLayout.
func NewResolver(layout *param.Layout) *Resolver {
	defaults := param.DefaultLayout()
	if layout == nil {
		layout = defaults
	}

	lookup := func(id string) param.Spec {
		if s, ok := layout.Lookup(id); ok {
			return s
		}

		s, _ := defaults.Lookup(id)

		return s
	}

	return &Resolver{
		input:     lookup(param.IDInput),
		release:   lookup(param.IDRelease),
		edge:      lookup(param.IDEdge),
		mode:      lookup(param.IDMode),
		mix:       lookup(param.IDMix),
		omegaMix:  lookup(param.IDOmegaMix),
		sidechain: lookup(param.IDSidechain),
		power:     lookup(param.IDPower),
		character: lookup(param.IDCharacter),
		routing:   lookup(param.IDRouting),
		releaseMs: math.NaN(),
	}
}

// SetSampleRate sets the rate coefficients are derived for and drops the
// coefficient cache.
func (r *Resolver) SetSampleRate(sampleRate float64) {
	r.sampleRate = sampleRate
	r.releaseMs = math.NaN()
	r.attackCoeff = dynamics.TimeConstantCoeff(AttackTime, sampleRate)
}

// SampleRate returns the rate set by SetSampleRate.
func (r *Resolver) SampleRate() float64 { return r.sampleRate }

// Resolve reads src and returns the snapshot for the next block.
// A nil src resolves every control to its default.
func (r *Resolver) Resolve(src param.Source) ControlParameters {
	inputDB := r.value(src, r.input)
	releaseMs := r.value(src, r.release)
	character := CharacterMode(r.value(src, r.character))

	if releaseMs != r.releaseMs {
		r.releaseMs = releaseMs
		r.releaseCoeff = dynamics.TimeConstantCoeff(releaseMs/1000, r.sampleRate)
	}

	return ControlParameters{
		InputGain:    core.DBToLinear(inputDB),
		Ratio:        character.Ratio(),
		AttackCoeff:  r.attackCoeff,
		ReleaseCoeff: r.releaseCoeff,
		Drive:        Drive(r.value(src, r.mode), character),
		Hardness:     Hardness(r.value(src, r.edge)),
		Mix:          r.value(src, r.mix),
		SubMix:       r.value(src, r.omegaMix),
		Routing:      RoutingMode(r.value(src, r.routing)),
		SidechainHPF: r.value(src, r.sidechain) >= 0.5,
		PoweredOn:    r.value(src, r.power) >= 0.5,
		ThresholdDB:  ThresholdDB,
	}
}

func (r *Resolver) value(src param.Source, spec param.Spec) float64 {
	if src == nil {
		return spec.Default
	}

	v, ok := src.Load(spec.ID)
	if !ok || !core.IsFinite(v) {
		return spec.Default
	}

	return spec.Clamp(v)
}
