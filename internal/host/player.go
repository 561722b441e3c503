package host

import (
	"fmt"
	"io"

	"github.com/hajimehoshi/oto/v2"
	"github.com/sirupsen/logrus"
)

// Player plays a float32 stereo stream on the default audio device.
type Player struct {
	ctx    *oto.Context
	player oto.Player
	reader io.Reader
	logger logrus.FieldLogger
}

// NewPlayer opens the audio device at sampleRate and attaches r. It blocks
// until the device is ready.
func NewPlayer(sampleRate int, r io.Reader, logger logrus.FieldLogger) (*Player, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	ctx, ready, err := oto.NewContext(sampleRate, channels, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("host: open audio device: %w", err)
	}

	<-ready

	logger.WithFields(logrus.Fields{
		"sample_rate": sampleRate,
		"channels":    channels,
	}).Info("audio device ready")

	return &Player{
		ctx:    ctx,
		player: ctx.NewPlayer(r),
		reader: r,
		logger: logger,
	}, nil
}

// Play starts or resumes playback.
func (p *Player) Play() { p.player.Play() }

// Pause pauses playback.
func (p *Player) Pause() { p.player.Pause() }

// IsPlaying reports whether the device is consuming the stream.
func (p *Player) IsPlaying() bool { return p.player.IsPlaying() }

// Err returns the first playback error, if any.
func (p *Player) Err() error {
	if err := p.player.Err(); err != nil {
		return err
	}

	return p.ctx.Err()
}

// Close stops playback and releases the player.
func (p *Player) Close() error {
	p.player.Pause()

	if err := p.player.Close(); err != nil {
		return fmt.Errorf("host: close player: %w", err)
	}

	if c, ok := p.reader.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return err
		}
	}

	p.logger.Debug("audio player closed")

	return nil
}
