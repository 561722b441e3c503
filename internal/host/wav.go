package host

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavFormatPCM = 1
	// WAVBitDepth is the PCM resolution of rendered files.
	WAVBitDepth = 24

	wavFullScale = 1<<(WAVBitDepth-1) - 1
)

// WriteWAV encodes interleaved float32 samples as 24-bit PCM. Samples outside
// [-1, 1] are clipped. The encoder seeks back to finalize the header, so w
// must be seekable; it is not closed.
func WriteWAV(w io.WriteSeeker, sampleRate, numChannels int, samples []float32) error {
	if sampleRate <= 0 || numChannels <= 0 {
		return fmt.Errorf("host: invalid WAV format: %d Hz, %d channels", sampleRate, numChannels)
	}

	if len(samples)%numChannels != 0 {
		return fmt.Errorf("host: %d samples do not divide into %d channels", len(samples), numChannels)
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChannels, SampleRate: sampleRate},
		Data:           make([]int, len(samples)),
		SourceBitDepth: WAVBitDepth,
	}
	for i, v := range samples {
		buf.Data[i] = pcm24(v)
	}

	enc := wav.NewEncoder(w, sampleRate, WAVBitDepth, numChannels, wavFormatPCM)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("host: encode WAV: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("host: finalize WAV: %w", err)
	}

	return nil
}

func pcm24(v float32) int {
	x := float64(v)
	if math.IsNaN(x) {
		return 0
	}

	x = max(-1, min(1, x))

	return int(math.Round(x * wavFullScale))
}
