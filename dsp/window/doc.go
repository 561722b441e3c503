// Package window generates the cosine-sum analysis windows used by the
// harmonic analyzer and reports their amplitude and power gains.
package window
