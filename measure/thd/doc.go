// Package thd measures harmonic distortion of a signal or of a waveshaping
// stage.
//
// An Analyzer owns an analysis window (Hann unless configured) and an FFT
// plan of fixed size, so repeated measurements (for example a drive sweep of
// a saturator) reuse all of their buffers. Harmonic levels are estimated from
// the power captured around each harmonic bin and reported relative to the
// fundamental.
package thd
