// Package param holds the automatable controls of the engine.
//
// A Layout declares each control once: identifier, range, default, skew
// and, for switched controls, its choice labels. A Store keeps the current
// plain value of every control in an atomic cell so a UI or automation
// goroutine can write while the audio goroutine reads at block start,
// without locks on either side.
package param
