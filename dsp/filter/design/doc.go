// Package design provides digital IIR filter coefficient designers.
//
// The functions in this package produce biquad coefficients consumable by
// dsp/filter/biquad for runtime processing: an RBJ-style [Highpass] and the
// Butterworth highpass cascade [ButterworthHP].
package design
