package thd

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/omega76/dsp/window"
)

const (
	defaultFFTSize     = 8192
	defaultCaptureBins = 2
	defaultUpperHz     = 20000.0
)

// Config holds analysis parameters.
type Config struct {
	SampleRate float64
	// FFTSize must be a power of two. Zero selects 8192.
	FFTSize int
	// FundamentalHz pins the fundamental. Zero picks the strongest bin.
	FundamentalHz float64
	// RangeUpperHz limits the harmonics considered. Zero selects 20 kHz
	// or Nyquist, whichever is lower.
	RangeUpperHz float64
	// MaxHarmonics limits the number of harmonics. Zero means no limit.
	MaxHarmonics int
	// CaptureBins is the number of bins either side of a peak that count
	// towards it. Zero selects 2, the main-lobe half width of Hann.
	CaptureBins int
	// Window is the analysis window, applied in its periodic form. The
	// zero value is Hann.
	Window window.Type
}

// Result holds the measured distortion figures. Ratios are relative to the
// fundamental amplitude.
type Result struct {
	FundamentalHz    float64
	FundamentalLevel float64
	// Harmonics[k-2] is the level of harmonic k.
	Harmonics []float64
	THD       float64
	THDdB     float64
	OddHD     float64
	EvenHD    float64
	THDN      float64
	SINAD     float64
}

// Analyzer measures harmonic distortion with a fixed FFT size.
// It is not safe for concurrent use.
type Analyzer struct {
	cfg    Config
	plan   *algofft.Plan[complex128]
	window []float64
	// levelScale converts captured one-sided power back to squared peak
	// amplitude, times N^2.
	levelScale float64
	frame      []float64
	in         []complex128
	out        []complex128
	re         []float64
	im         []float64
	power      []float64
}

// NewAnalyzer validates cfg and allocates the analysis buffers.
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	if !(cfg.SampleRate > 0) || math.IsInf(cfg.SampleRate, 0) {
		return nil, fmt.Errorf("thd: sample rate must be positive and finite: %f", cfg.SampleRate)
	}

	if cfg.FFTSize == 0 {
		cfg.FFTSize = defaultFFTSize
	}

	if cfg.FFTSize < 16 || cfg.FFTSize&(cfg.FFTSize-1) != 0 {
		return nil, fmt.Errorf("thd: FFT size must be a power of two >= 16: %d", cfg.FFTSize)
	}

	nyquist := cfg.SampleRate / 2
	if cfg.RangeUpperHz <= 0 {
		cfg.RangeUpperHz = math.Min(defaultUpperHz, nyquist)
	}

	if cfg.FundamentalHz < 0 || cfg.FundamentalHz >= nyquist {
		return nil, fmt.Errorf("thd: fundamental must be in [0, %f): %f", nyquist, cfg.FundamentalHz)
	}

	if cfg.CaptureBins <= 0 {
		cfg.CaptureBins = defaultCaptureBins
	}

	if cfg.MaxHarmonics < 0 {
		cfg.MaxHarmonics = 0
	}

	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("thd: %w", err)
	}

	n := cfg.FFTSize
	bins := n/2 + 1

	w := window.Generate(cfg.Window, n, window.WithPeriodic())
	if w == nil {
		return nil, fmt.Errorf("thd: unsupported window: %v", cfg.Window)
	}

	a := &Analyzer{
		cfg:        cfg,
		plan:       plan,
		window:     w,
		levelScale: 4 / window.PowerGain(w),
		frame:      make([]float64, n),
		in:         make([]complex128, n),
		out:        make([]complex128, n),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
		power:      make([]float64, bins),
	}

	return a, nil
}

// Config returns the effective configuration.
func (a *Analyzer) Config() Config { return a.cfg }

// BinHz returns the frequency resolution.
func (a *Analyzer) BinHz() float64 {
	return a.cfg.SampleRate / float64(a.cfg.FFTSize)
}

// CoherentFrequency snaps hz to the nearest bin center (at least bin 1),
// so a test tone completes a whole number of cycles per frame.
func (a *Analyzer) CoherentFrequency(hz float64) float64 {
	bin := max(math.Round(hz/a.BinHz()), 1)
	return bin * a.BinHz()
}

// Analyze measures the last FFTSize samples of signal, so a leading
// transient can be excluded by passing a longer signal.
func (a *Analyzer) Analyze(signal []float64) (Result, error) {
	return a.analyze(signal, a.cfg.FundamentalHz)
}

func (a *Analyzer) analyze(signal []float64, fundamentalHz float64) (Result, error) {
	n := a.cfg.FFTSize
	if len(signal) < n {
		return Result{}, fmt.Errorf("thd: need %d samples, got %d", n, len(signal))
	}

	copy(a.frame, signal[len(signal)-n:])
	vecmath.MulBlockInPlace(a.frame, a.window)

	for i, x := range a.frame {
		a.in[i] = complex(x, 0)
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return Result{}, fmt.Errorf("thd: %w", err)
	}

	for i := range a.re {
		a.re[i] = real(a.out[i])
		a.im[i] = imag(a.out[i])
	}

	vecmath.Power(a.power, a.re, a.im)

	return a.analyzePower(a.power, fundamentalHz), nil
}

// AnalyzePower evaluates a one-sided power spectrum (bins 0..N/2) of a
// frame windowed with the configured window.
func (a *Analyzer) AnalyzePower(power []float64) Result {
	return a.analyzePower(power, a.cfg.FundamentalHz)
}

//nolint:cyclop
func (a *Analyzer) analyzePower(power []float64, fundamentalHz float64) Result {
	maxBin := len(power) - 1
	if maxBin < 2 {
		return Result{}
	}

	binHz := a.BinHz()
	capture := a.cfg.CaptureBins
	lower := min(capture+1, maxBin)
	upper := clampInt(int(math.Floor(a.cfg.RangeUpperHz/binHz)), lower, maxBin)

	fundamental := a.fundamentalBin(power, fundamentalHz, lower, upper)
	fundEnergy := captured(power, fundamental, capture)

	res := Result{FundamentalHz: float64(fundamental) * binHz}
	if fundEnergy <= 0 {
		return res
	}

	n := float64(a.cfg.FFTSize)
	res.FundamentalLevel = math.Sqrt(fundEnergy*a.levelScale) / n

	var harmEnergy, oddEnergy, evenEnergy float64

	for k := 2; k*fundamental <= upper; k++ {
		if a.cfg.MaxHarmonics > 0 && k-1 > a.cfg.MaxHarmonics {
			break
		}

		e := captured(power, k*fundamental, capture)
		harmEnergy += e

		if k%2 == 0 {
			evenEnergy += e
		} else {
			oddEnergy += e
		}

		res.Harmonics = append(res.Harmonics, math.Sqrt(e/fundEnergy))
	}

	total := 0.0
	for i := lower; i <= upper; i++ {
		total += power[i]
	}

	residual := math.Max(total-fundEnergy, 0)

	res.THD = math.Sqrt(harmEnergy / fundEnergy)
	res.THDdB = ratioToDB(res.THD)
	res.OddHD = math.Sqrt(oddEnergy / fundEnergy)
	res.EvenHD = math.Sqrt(evenEnergy / fundEnergy)
	res.THDN = math.Sqrt(residual / fundEnergy)
	res.SINAD = -ratioToDB(res.THDN)

	return res
}

func (a *Analyzer) fundamentalBin(power []float64, fundamentalHz float64, lower, upper int) int {
	if fundamentalHz > 0 {
		return clampInt(int(math.Round(fundamentalHz/a.BinHz())), lower, upper)
	}

	best := lower
	for i := lower; i <= upper; i++ {
		if power[i] > power[best] {
			best = i
		}
	}

	return best
}

func captured(power []float64, bin, capture int) float64 {
	if bin < 0 || bin >= len(power) {
		return 0
	}

	lo := max(bin-capture, 0)
	hi := min(bin+capture, len(power)-1)

	sum := 0.0
	for i := lo; i <= hi; i++ {
		sum += power[i]
	}

	return sum
}

func ratioToDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(v)
}

func clampInt(val, lo, hi int) int {
	if val < lo {
		return lo
	}

	if val > hi {
		return hi
	}

	return val
}
