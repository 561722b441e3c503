package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/omega76/dsp/core"
	"github.com/cwbudde/omega76/dsp/param"
	"github.com/cwbudde/omega76/internal/cli"
	"github.com/cwbudde/omega76/internal/host"
	"github.com/cwbudde/omega76/internal/signal"
)

// SignalFlags describe the generated test signal.
type SignalFlags struct {
	Signal string  `help:"Test signal." enum:"sine,step,noise,burst" default:"step" placeholder:"KIND"`
	Freq   float64 `help:"Tone frequency in Hz." default:"1000" placeholder:"HZ"`
	Level  float64 `help:"Peak level in dBFS." default:"-6" placeholder:"DB"`
	Period float64 `help:"Step onset or burst period in seconds." default:"0.5" placeholder:"SEC"`
	Seed   int64   `help:"Noise seed." default:"1"`
}

func (f SignalFlags) generator(sampleRate float64) (signal.Generator, error) {
	return signal.New(signal.Config{
		Kind:       signal.Kind(f.Signal),
		SampleRate: sampleRate,
		FreqHz:     f.Freq,
		LevelDB:    f.Level,
		Period:     f.Period,
		Seed:       f.Seed,
	})
}

// RenderCmd processes a test signal offline.
type RenderCmd struct {
	EngineFlags
	SignalFlags

	Duration time.Duration `short:"d" help:"Length of the rendering." default:"2s" placeholder:"DURATION"`
	Out      string        `short:"o" help:"Write the output as a 32-bit float WAV file." type:"path" placeholder:"PATH"`
	Trace    bool          `help:"Print the gain reduction of every block."`
}

// Run renders the signal and prints a summary.
func (c *RenderCmd) Run(g *Globals) error {
	store, engine, err := c.build(g.logger)
	if err != nil {
		return err
	}

	cfg := c.processorConfig()

	gen, err := c.generator(cfg.SampleRate)
	if err != nil {
		return err
	}

	var (
		maxGR  float64
		lastGR float64
		trace  *bufio.Writer
	)

	if c.Trace {
		trace = bufio.NewWriter(os.Stdout)
		defer trace.Flush()
	}

	observer := func(index uint64, grDB float64) {
		maxGR = math.Max(maxGR, grDB)
		lastGR = grDB

		if trace != nil {
			t := float64(index) * float64(cfg.BlockSize) / cfg.SampleRate
			fmt.Fprintf(trace, "%8d %9.4f s %7.3f dB\n", index, t, grDB)
		}
	}

	r, err := host.NewRenderer(engine, gen, cfg,
		host.WithRendererLogger(g.logger),
		host.WithBlockObserver(observer))
	if err != nil {
		return err
	}

	frames := int(math.Round(c.Duration.Seconds() * cfg.SampleRate))
	if frames <= 0 {
		return fmt.Errorf("duration must be positive: %s", c.Duration)
	}

	out := make([]float32, 2*frames)
	r.Process(out)

	peak := 0.0
	for _, v := range out {
		peak = math.Max(peak, math.Abs(float64(v)))
	}

	if c.Out != "" {
		if err := writeWAV(c.Out, int(cfg.SampleRate), out); err != nil {
			return err
		}

		g.logger.WithFields(logrus.Fields{"path": c.Out, "frames": frames}).Info("wrote WAV file")
	}

	if trace != nil {
		trace.Flush()
		fmt.Println()
	}

	cli.PrintSection(os.Stdout, "Render")
	cli.PrintKeyValue(os.Stdout, "signal", fmt.Sprintf("%s %.0f Hz %.1f dBFS", c.Signal, c.Freq, c.Level))
	cli.PrintKeyValue(os.Stdout, "routing", store.Format(param.IDRouting))
	cli.PrintKeyValue(os.Stdout, "character", store.Format(param.IDCharacter))
	cli.PrintKeyValue(os.Stdout, "blocks", r.Blocks())
	cli.PrintKeyValue(os.Stdout, "max gain reduction", fmt.Sprintf("%.2f dB", maxGR))
	cli.PrintKeyValue(os.Stdout, "final gain reduction", fmt.Sprintf("%.2f dB", lastGR))
	cli.PrintKeyValue(os.Stdout, "output peak", fmt.Sprintf("%.2f dBFS", core.LinearToDB(peak)))

	return nil
}

func writeWAV(path string, sampleRate int, samples []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := host.WriteWAV(f, sampleRate, 2, samples); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
