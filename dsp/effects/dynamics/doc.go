// Package dynamics provides the building blocks of a feed-forward
// compressor detector path.
//
// Included primitives:
//   - SidechainFilter: per-channel high-pass applied to the detector signal only.
//   - EnvelopeFollower: asymmetric one-pole magnitude follower.
//   - GainComputer: hard-knee static curve mapping level to target gain.
//   - GainSmoother: asymmetric one-pole smoother on the linear gain trajectory.
//
// Envelope follower and gain smoother share one [Ballistics] coefficient set
// so that a single attack/release pair governs both stages. All processing
// methods are allocation-free and safe to call from an audio callback.
// None of the types are safe for concurrent use.
package dynamics
