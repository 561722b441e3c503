package omega

import (
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/omega76/dsp/core"
	"github.com/cwbudde/omega76/dsp/effects/dynamics"
	"github.com/cwbudde/omega76/dsp/effects/saturation"
	"github.com/cwbudde/omega76/dsp/param"
)

type config struct {
	layout    *param.Layout
	logger    logrus.FieldLogger
	sidechain []dynamics.SidechainOption
}

// Option configures an Engine.
type Option func(*config)

// WithLayout sets the layout used for defaults and ranges. Without it the
// layout of a *param.Store source is used, or DefaultLayout.
func WithLayout(l *param.Layout) Option {
	return func(cfg *config) { cfg.layout = l }
}

// WithLogger sets the logger used for lifecycle events. Processing never logs.
func WithLogger(l logrus.FieldLogger) Option {
	return func(cfg *config) { cfg.logger = l }
}

// WithSidechainOrder selects a first- (default) or second-order detector
// high-pass. Invalid orders are reported by Prepare.
func WithSidechainOrder(order int) Option {
	return func(cfg *config) {
		cfg.sidechain = append(cfg.sidechain, dynamics.WithSidechainOrder(order))
	}
}

// WithSidechainCutoff moves the detector high-pass corner.
// Invalid frequencies are reported by Prepare.
func WithSidechainCutoff(freq float64) Option {
	return func(cfg *config) {
		cfg.sidechain = append(cfg.sidechain, dynamics.WithSidechainCutoff(freq))
	}
}

// Engine is the stateful block processor.
//
// Prepare must be called before audio is processed and must not run
// concurrently with Process. Process and ProcessWith are meant for a single
// audio goroutine; Telemetry may be read from anywhere.
type Engine struct {
	src      param.Source
	resolver *Resolver
	cfg      config

	sidechain *dynamics.SidechainFilter
	envelope  dynamics.EnvelopeFollower
	smoother  dynamics.GainSmoother
	saturator saturation.Saturator
	telemetry Telemetry

	sampleRate float64
	prepared   bool
}

// New creates an engine reading its controls from src. A nil src runs the
// engine on default control values.
func New(src param.Source, opts ...Option) *Engine {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.layout == nil {
		if store, ok := src.(*param.Store); ok {
			cfg.layout = store.Layout()
		} else {
			cfg.layout = param.DefaultLayout()
		}
	}

	if cfg.logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		cfg.logger = l
	}

	return &Engine{
		src:      src,
		resolver: NewResolver(cfg.layout),
		cfg:      cfg,
		smoother: dynamics.NewGainSmoother(),
	}
}

// Prepare sets the sample rate and resets all processing state: envelope
// to 0, gain to unity, filter history cleared, telemetry to 0 dB. On error
// the engine keeps its previous configuration.
func (e *Engine) Prepare(sampleRate float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("omega: sample rate must be positive and finite: %f", sampleRate)
	}

	if e.sidechain == nil {
		sc, err := dynamics.NewSidechainFilter(sampleRate, e.cfg.sidechain...)
		if err != nil {
			return fmt.Errorf("omega: sidechain: %w", err)
		}

		e.sidechain = sc
	} else if err := e.sidechain.Configure(sampleRate); err != nil {
		return fmt.Errorf("omega: sidechain: %w", err)
	}

	e.sampleRate = sampleRate
	e.resolver.SetSampleRate(sampleRate)
	e.reset()
	e.prepared = true

	e.cfg.logger.WithFields(logrus.Fields{
		"sample_rate":     sampleRate,
		"sidechain_order": e.sidechain.Order(),
		"sidechain_hz":    e.sidechain.Cutoff(),
	}).Debug("omega engine prepared")

	return nil
}

// Reset clears processing state without changing the sample rate.
func (e *Engine) Reset() {
	e.reset()
}

func (e *Engine) reset() {
	e.envelope.Reset()
	e.smoother.Reset()

	if e.sidechain != nil {
		e.sidechain.Reset()
	}

	e.telemetry.publish(0)
}

// SampleRate returns the rate set by the last successful Prepare.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// Prepared reports whether Prepare has succeeded at least once.
func (e *Engine) Prepared() bool { return e.prepared }

// Telemetry returns the engine's gain-reduction cell.
func (e *Engine) Telemetry() *Telemetry { return &e.telemetry }

// Resolver returns the resolver that builds each block's parameters.
func (e *Engine) Resolver() *Resolver { return e.resolver }

// Process resolves the current controls and processes block in place.
func (e *Engine) Process(block [][]float64) {
	if !e.prepared {
		return
	}

	e.ProcessWith(block, e.resolver.Resolve(e.src))
}

// ProcessWith processes block in place under an explicit parameter snapshot.
//
// Channel 0 is left and channel 1, when present, is right; a mono block
// feeds the left channel to both detector inputs. Channels beyond the
// second are not touched. len(block[0]) samples are processed: where the
// right channel is shorter, the left sample stands in for the missing right
// input and only the left output is written; right samples past the left
// length are left unchanged. Nothing happens before the first successful
// Prepare.
func (e *Engine) ProcessWith(block [][]float64, cp ControlParameters) {
	if !e.prepared || len(block) == 0 {
		return
	}

	if !cp.PoweredOn {
		e.telemetry.publish(0)
		return
	}

	cp = cp.sanitized()

	left := block[0]
	stereo := len(block) > 1

	var right []float64
	if stereo {
		right = block[1][:min(len(left), len(block[1]))]
	}

	if cp.InputGain != 1 {
		vecmath.ScaleBlock(left, left, cp.InputGain)

		if stereo {
			vecmath.ScaleBlock(right, right, cp.InputGain)
		}
	}

	e.saturator.Configure(cp.Drive, cp.Hardness)

	gc := dynamics.NewGainComputer(cp.ThresholdDB, cp.Ratio)
	b := cp.ballistics()
	m := mixer{routing: cp.Routing, mix: cp.Mix, subMix: cp.SubMix, sat: &e.saturator}
	minGain := 1.0

	for i := range left {
		xL := core.Sanitize(left[i])
		xR := xL

		if i < len(right) {
			xR = core.Sanitize(right[i])
		}

		dL := e.sidechain.Process(0, xL, cp.SidechainHPF)
		dR := dL

		if stereo {
			dR = e.sidechain.Process(1, xR, cp.SidechainHPF)
		}

		env := e.envelope.Process(0.5*(math.Abs(dL)+math.Abs(dR)), b)
		g := e.smoother.Process(gc.TargetGain(env), b)
		minGain = math.Min(minGain, g)

		left[i] = m.process(xL, g)

		if i < len(right) {
			right[i] = m.process(xR, g)
		}
	}

	e.telemetry.publish(-core.LinearToDB(minGain))
}
