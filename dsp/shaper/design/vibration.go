package design

import (
	"math"

	"github.com/cwbudde/algo-shaper/dsp/shaper"
)

// ResidualVibration returns the vibration left in a second-order mode of
// natural frequency freq (Hz) and damping ratio damping after the shaper
// has finished, relative to an unshaped step. 1 means no reduction and 0
// means the mode is cancelled.
func ResidualVibration(spec shaper.Spec, freq, damping float64) float64 {
	return residual(spec.Amplitudes(), spec.Delays(), freq, damping)
}

// SampledResidualVibration is like ResidualVibration but uses the delays
// rounded to whole samples, as a Runtime applies them.
func SampledResidualVibration(spec shaper.Spec, freq, damping float64) float64 {
	offsets := spec.Offsets()
	delays := make([]float64, len(offsets))
	for i, off := range offsets {
		delays[i] = float64(off) / spec.SampleRate()
	}
	return residual(spec.Amplitudes(), delays, freq, damping)
}

// Sensitivity evaluates ResidualVibration for each frequency in freqs.
func Sensitivity(spec shaper.Spec, damping float64, freqs []float64) []float64 {
	amps := spec.Amplitudes()
	delays := spec.Delays()
	out := make([]float64, len(freqs))
	for i, f := range freqs {
		out[i] = residual(amps, delays, f, damping)
	}
	return out
}

func residual(amps, delays []float64, freq, damping float64) float64 {
	if len(amps) == 0 {
		return 1
	}
	wn := 2 * math.Pi * freq
	wd := wn * math.Sqrt(1-damping*damping)
	last := delays[len(delays)-1]

	// Weights are taken relative to the last impulse so that the decay
	// factor stays bounded for long shapers.
	var c, s float64
	for i, a := range amps {
		w := a * math.Exp(-damping*wn*(last-delays[i]))
		c += w * math.Cos(wd*delays[i])
		s += w * math.Sin(wd*delays[i])
	}
	return math.Hypot(c, s)
}
