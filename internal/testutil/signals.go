// Package testutil provides deterministic signal generators and numeric
// assertions shared by the spectral tests.
package testutil

import (
	"math"
	"testing"
)

// Sine returns a sine tone of the given frequency and amplitude.
func Sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Mix sums signals of equal length sample by sample.
func Mix(signals ...[]float64) []float64 {
	if len(signals) == 0 {
		return nil
	}
	out := make([]float64, len(signals[0]))
	for _, s := range signals {
		for i, v := range s {
			out[i] += v
		}
	}
	return out
}

// Scale returns a copy of the signal multiplied by k.
func Scale(signal []float64, k float64) []float64 {
	out := make([]float64, len(signal))
	for i, v := range signal {
		out[i] = k * v
	}
	return out
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}
