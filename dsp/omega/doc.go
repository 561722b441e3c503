// Package omega is the block-processing engine of the Omega-76 dynamics
// and saturation processor.
//
// Each block, the Resolver turns the current control values into one
// immutable ControlParameters snapshot. The per-sample loop then runs the
// detector (optional sidechain high-pass, envelope follower), the gain
// computer and smoother, routes the signal through compression,
// saturation or both, and blends the result with the dry input. The
// deepest gain reduction of the block is published through Telemetry for
// display goroutines.
//
// Engine.Process never allocates, locks or logs, so it is safe to call
// from an audio callback.
package omega
