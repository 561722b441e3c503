package host

import (
	"encoding/binary"
	"math"
	"sync"
)

// FrameSource produces interleaved stereo float32 frames.
type FrameSource interface {
	Process(dst []float32)
}

// StreamReader adapts a FrameSource to the io.Reader an audio device
// pulls from, encoding float32 little-endian stereo frames.
type StreamReader struct {
	mu     sync.Mutex
	source FrameSource
	buf    []float32
}

// NewStreamReader returns a reader over source.
func NewStreamReader(source FrameSource) *StreamReader {
	return &StreamReader{source: source}
}

// Read fills p with whole frames. It never returns an error; partial
// frames at the end of p are left for the next call.
func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}

	need := frames * channels
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}

	r.buf = r.buf[:need]
	r.source.Process(r.buf)

	for i, v := range r.buf {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v))
	}

	return frames * bytesPerFrame, nil
}

// Close implements io.Closer.
func (r *StreamReader) Close() error { return nil }

const (
	channels      = 2
	bytesPerFrame = channels * 4
)
