// Package saturation provides a normalized arctangent waveshaper.
//
// The transfer curve is
//
//	y = atan(x * drive * hardness) / atan(hardness)
//
// Drive pushes the signal further into the curve; hardness sharpens the
// knee while the atan(hardness) normalization keeps a full-scale input at
// drive 1 mapped to full-scale output. The curve is odd-symmetric and its
// magnitude never exceeds (pi/2) / atan(hardness).
package saturation
