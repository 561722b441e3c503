package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/omega76/dsp/core"
	"github.com/cwbudde/omega76/dsp/effects/saturation"
	"github.com/cwbudde/omega76/dsp/omega"
	"github.com/cwbudde/omega76/dsp/param"
	"github.com/cwbudde/omega76/dsp/window"
	"github.com/cwbudde/omega76/internal/cli"
	"github.com/cwbudde/omega76/measure/thd"
)

// THDCmd measures the harmonic content the engine adds to a sine.
type THDCmd struct {
	EngineFlags

	Freq       float64 `help:"Test frequency in Hz, moved to the nearest bin center." default:"1000" placeholder:"HZ"`
	Level      float64 `help:"Test level in dBFS." default:"-12" placeholder:"DB"`
	FFTSize    int     `name:"fft-size" help:"FFT size (power of two)." default:"8192" placeholder:"N"`
	Harmonics  int     `help:"Number of harmonics to list." default:"7" placeholder:"N"`
	Window     string  `help:"Analysis window." enum:"hann,hamming,blackman,rectangular" default:"hann"`
	Saturation bool    `help:"Measure the saturation stage alone with the current EDGE, MODE and Ω MODE."`
}

// Run measures and prints the distortion figures.
func (c *THDCmd) Run(g *Globals) error {
	store, engine, err := c.build(g.logger)
	if err != nil {
		return err
	}

	win, err := window.Parse(c.Window)
	if err != nil {
		return err
	}

	a, err := thd.NewAnalyzer(thd.Config{SampleRate: c.Rate, FFTSize: c.FFTSize, Window: win})
	if err != nil {
		return err
	}

	var shaper thd.Shaper

	if c.Saturation {
		resolver := omega.NewResolver(store.Layout())
		resolver.SetSampleRate(c.Rate)
		cp := resolver.Resolve(store)

		sat, err := saturation.New(cp.Drive, cp.Hardness)
		if err != nil {
			return err
		}

		shaper = sat
	} else {
		if err := engine.Prepare(c.Rate); err != nil {
			return err
		}

		block := c.Block
		shaper = thd.ShaperFunc(func(buf []float64) {
			for start := 0; start < len(buf); start += block {
				end := min(start+block, len(buf))
				engine.Process([][]float64{buf[start:end]})
			}
		})
	}

	res, err := a.MeasureShaper(shaper, c.Freq, core.DBToLinear(c.Level))
	if err != nil {
		return err
	}

	stage := "engine"
	if c.Saturation {
		stage = "saturator"
	}

	cli.PrintSection(os.Stdout, "Harmonic distortion")
	cli.PrintKeyValue(os.Stdout, "stage", stage)
	cli.PrintKeyValue(os.Stdout, "character", store.Format(param.IDCharacter))
	cli.PrintKeyValue(os.Stdout, "window", win.String())
	cli.PrintKeyValue(os.Stdout, "fundamental", fmt.Sprintf("%.2f Hz @ %.2f dBFS", res.FundamentalHz, core.LinearToDB(res.FundamentalLevel)))
	cli.PrintKeyValue(os.Stdout, "THD", fmt.Sprintf("%.3f %% (%.1f dB)", 100*res.THD, res.THDdB))
	cli.PrintKeyValue(os.Stdout, "odd / even", fmt.Sprintf("%.3f %% / %.3f %%", 100*res.OddHD, 100*res.EvenHD))
	cli.PrintKeyValue(os.Stdout, "THD+N", fmt.Sprintf("%.3f %%", 100*res.THDN))
	cli.PrintKeyValue(os.Stdout, "SINAD", fmt.Sprintf("%.1f dB", res.SINAD))

	for i, h := range res.Harmonics {
		if i >= c.Harmonics {
			break
		}

		cli.PrintKeyValue(os.Stdout, fmt.Sprintf("H%d", i+2), fmt.Sprintf("%.1f dB", core.LinearToDBFloor(h, 1e-12)))
	}

	return nil
}
