// Package host runs an omega.Engine outside a plugin host: it pulls a
// test signal through the engine in fixed-size blocks and delivers the
// result as interleaved float32 frames to a real-time audio device or a
// WAV file.
package host
