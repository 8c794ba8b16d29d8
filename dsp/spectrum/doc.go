// Package spectrum holds frequency-domain helpers for shaper analysis:
// magnitude and power of complex FFT bins and a single-bin Goertzel
// evaluator. It does not implement the FFT itself.
package spectrum
