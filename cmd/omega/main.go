// Command omega renders, measures and plays audio through the Ω76
// dynamics engine.
//
// Usage:
//
//	omega <command> [flags]
//
// Examples:
//
//	omega params
//	omega render --signal step --level -6 --trace
//	omega render -s omega_mode=IRON -s routing=Ω -o out.wav
//	omega thd --saturation -s mode=1 -s omega_mode=GRIT
//	omega play --signal burst -s release=60
package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/omega76/dsp/core"
	"github.com/cwbudde/omega76/dsp/omega"
	"github.com/cwbudde/omega76/dsp/param"
	"github.com/cwbudde/omega76/internal/cli"
)

var version = "0.1.0"

// Globals are the flags shared by every command.
type Globals struct {
	LogLevel  string `help:"Log level (trace, debug, info, warn, error)." default:"warn" placeholder:"LEVEL"`
	LogFormat string `help:"Log format." enum:"text,json" default:"text" placeholder:"FORMAT"`

	logger *logrus.Logger
}

// EngineFlags configure the engine a command runs.
type EngineFlags struct {
	Set            []string `short:"s" help:"Set a control, e.g. --set omega_mode=IRON. Repeatable." placeholder:"ID=VALUE"`
	Rate           float64  `short:"r" help:"Sample rate in Hz." default:"48000" placeholder:"HZ"`
	Block          int      `short:"b" help:"Block size in samples." default:"512" placeholder:"N"`
	SidechainOrder int      `help:"Sidechain high-pass order (1 or 2)." default:"1" placeholder:"N"`
}

// build returns a store with the overrides applied and an engine reading it.
func (f EngineFlags) build(logger logrus.FieldLogger) (*param.Store, *omega.Engine, error) {
	store := param.NewStore(param.DefaultLayout())
	if err := store.Apply(f.Set...); err != nil {
		return nil, nil, err
	}

	engine := omega.New(store,
		omega.WithLogger(logger),
		omega.WithSidechainOrder(f.SidechainOrder),
	)

	return store, engine, nil
}

func (f EngineFlags) processorConfig() core.ProcessorConfig {
	return core.ApplyProcessorOptions(core.WithSampleRate(f.Rate), core.WithBlockSize(f.Block))
}

// CLI defines the command-line interface.
type CLI struct {
	Globals

	Version bool `short:"v" help:"Show version information."`

	Render RenderCmd `cmd:"" help:"Process a test signal offline and report gain reduction."`
	THD    THDCmd    `cmd:"" name:"thd" help:"Measure harmonic distortion of the engine or the saturator."`
	Play   PlayCmd   `cmd:"" help:"Play a test signal through the engine with a live meter."`
	Params ParamsCmd `cmd:"" help:"List the controls and their current values."`
}

func main() {
	var c CLI

	parser, err := kong.New(&c,
		kong.Name("omega"),
		kong.Description("Ω76 dynamics and saturation engine"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.Help(cli.StyledHelpPrinter("Ω76", "Dynamics and saturation engine")),
	)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	args := os.Args[1:]
	if len(args) == 1 && (args[0] == "-v" || args[0] == "--version") {
		cli.PrintVersion(os.Stdout, version)
		return
	}

	ctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	if c.Version {
		cli.PrintVersion(os.Stdout, version)
		return
	}

	logger, err := cli.NewLogger(os.Stderr, c.LogLevel, c.LogFormat)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	c.logger = logger

	if err := ctx.Run(&c.Globals); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}
