// Package biquad runs cascades of second-order IIR sections over one or
// more channels that share coefficients.
//
// [Coefficients] describe one Direct Form II Transposed section. A
// [Cascade] owns independent delay lines per channel, so a stereo detector
// needs a single Cascade rather than one filter per side. Coefficient
// design lives in dsp/filter/design.
package biquad
