package testutil

import (
	"math/rand"
)

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// ImpulseTrain convolves x with a sparse kernel of amplitudes placed at
// integer offsets, truncated to len(x):
//
//	y[n] = sum_i amps[i] * x[n - offsets[i]]
func ImpulseTrain(x, amps []float64, offsets []int) []float64 {
	y := make([]float64, len(x))
	for n := range y {
		for i, a := range amps {
			k := n - offsets[i]
			if k >= 0 {
				y[n] += a * x[k]
			}
		}
	}
	return y
}
