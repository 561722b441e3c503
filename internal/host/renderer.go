package host

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/omega76/dsp/core"
	"github.com/cwbudde/omega76/dsp/omega"
	"github.com/cwbudde/omega76/internal/signal"
)

// Renderer drives an engine from a generator. Lifecycle calls and
// rendering are serialized by one mutex, so Prepare never overlaps a block.
type Renderer struct {
	mu      sync.Mutex
	engine  *omega.Engine
	source  signal.Generator
	cfg     core.ProcessorConfig
	block   [][]float64
	pos     int
	blocks  uint64
	logger  logrus.FieldLogger
	onBlock func(index uint64, grDB float64)
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithBlockObserver registers fn to be called after every processed block
// with the block index and the published gain reduction. fn runs on the
// rendering goroutine and must not block.
func WithBlockObserver(fn func(index uint64, grDB float64)) RendererOption {
	return func(r *Renderer) { r.onBlock = fn }
}

// WithRendererLogger sets the logger for lifecycle events.
func WithRendererLogger(l logrus.FieldLogger) RendererOption {
	return func(r *Renderer) { r.logger = l }
}

// NewRenderer prepares engine for cfg and returns a renderer feeding it
// from source. The engine always sees cfg.Channels channels; mono output
// is duplicated to both sides of the interleaved stream.
func NewRenderer(engine *omega.Engine, source signal.Generator, cfg core.ProcessorConfig, opts ...RendererOption) (*Renderer, error) {
	if cfg.BlockSize <= 0 {
		return nil, fmt.Errorf("host: block size must be positive: %d", cfg.BlockSize)
	}

	if cfg.Channels != 1 && cfg.Channels != 2 {
		return nil, fmt.Errorf("host: channels must be 1 or 2: %d", cfg.Channels)
	}

	r := &Renderer{
		engine: engine,
		source: source,
		cfg:    cfg,
		logger: logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.block = core.EnsureChannels(nil, cfg.Channels, cfg.BlockSize)
	r.pos = cfg.BlockSize

	if err := r.engine.Prepare(cfg.SampleRate); err != nil {
		return nil, fmt.Errorf("host: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"sample_rate": cfg.SampleRate,
		"block_size":  cfg.BlockSize,
		"channels":    cfg.Channels,
	}).Info("renderer ready")

	return r, nil
}

// Config returns the processing configuration.
func (r *Renderer) Config() core.ProcessorConfig { return r.cfg }

// Prepare changes the sample rate. It waits for any block in flight.
func (r *Renderer) Prepare(sampleRate float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.engine.Prepare(sampleRate); err != nil {
		return fmt.Errorf("host: %w", err)
	}

	r.cfg.SampleRate = sampleRate
	r.pos = r.cfg.BlockSize

	r.logger.WithFields(logrus.Fields{"sample_rate": sampleRate}).Info("renderer re-prepared")

	return nil
}

// Blocks returns the number of blocks processed so far.
func (r *Renderer) Blocks() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.blocks
}

// Process fills dst with interleaved stereo float32 frames. len(dst)
// should be even; a trailing odd sample is left untouched.
func (r *Renderer) Process(dst []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(dst) / 2
	for f := range frames {
		if r.pos == r.cfg.BlockSize {
			r.next()
		}

		left := r.block[0][r.pos]
		right := left

		if r.cfg.Channels == 2 {
			right = r.block[1][r.pos]
		}

		dst[2*f] = float32(left)
		dst[2*f+1] = float32(right)
		r.pos++
	}
}

// RenderBlock processes one block and returns it. The returned slices are
// reused by the next call.
func (r *Renderer) RenderBlock() [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next()
	r.pos = r.cfg.BlockSize

	return r.block
}

func (r *Renderer) next() {
	r.source.Fill(r.block[0])

	if r.cfg.Channels == 2 {
		copy(r.block[1], r.block[0])
	}

	r.engine.Process(r.block)

	if r.onBlock != nil {
		r.onBlock(r.blocks, r.engine.Telemetry().GainReductionDB())
	}

	r.blocks++
	r.pos = 0
}
