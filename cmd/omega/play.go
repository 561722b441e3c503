package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/omega76/internal/host"
	"github.com/cwbudde/omega76/internal/ui"
)

// PlayCmd streams a test signal through the engine to the audio device.
type PlayCmd struct {
	EngineFlags
	SignalFlags

	NoUI bool `name:"no-ui" help:"Play without the interactive panel; stop with Ctrl+C."`
}

// Run plays until the panel or the process is told to quit.
func (c *PlayCmd) Run(g *Globals) error {
	store, engine, err := c.build(g.logger)
	if err != nil {
		return err
	}

	cfg := c.processorConfig()

	gen, err := c.generator(cfg.SampleRate)
	if err != nil {
		return err
	}

	r, err := host.NewRenderer(engine, gen, cfg, host.WithRendererLogger(g.logger))
	if err != nil {
		return err
	}

	player, err := host.NewPlayer(int(cfg.SampleRate), host.NewStreamReader(r), g.logger)
	if err != nil {
		return err
	}
	defer player.Close()

	player.Play()

	g.logger.WithFields(logrus.Fields{
		"signal": c.Signal,
		"freq":   c.Freq,
		"level":  c.Level,
	}).Info("playback started")

	if c.NoUI {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		return player.Err()
	}

	title := fmt.Sprintf("%s %.0f Hz @ %.1f dBFS, %.0f Hz", c.Signal, c.Freq, c.Level, cfg.SampleRate)

	p := tea.NewProgram(ui.NewModel(store, engine.Telemetry(), title), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	return player.Err()
}
