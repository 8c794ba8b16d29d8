package design

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-shaper/dsp/shaper"
)

// mergeTolerance is the delay difference (seconds) below which convolved
// impulses are merged into one.
const mergeTolerance = 1e-9

// Convolve combines shapers bound to the same sample rate into a single
// shaper that cancels every mode the inputs cancel. The result has one
// impulse per pair of input impulses, with coincident delays merged.
func Convolve(specs ...shaper.Spec) (shaper.Spec, error) {
	if len(specs) == 0 {
		return shaper.Spec{}, fmt.Errorf("%w: nothing to convolve", shaper.ErrInvalidParameter)
	}
	for i, s := range specs {
		if err := s.Validate(); err != nil {
			return shaper.Spec{}, fmt.Errorf("spec %d: %w", i, err)
		}
		if s.SampleRate() != specs[0].SampleRate() {
			return shaper.Spec{}, fmt.Errorf("%w: spec %d runs at %g Hz, spec 0 at %g Hz",
				shaper.ErrInvalidParameter, i, s.SampleRate(), specs[0].SampleRate())
		}
	}

	amps := specs[0].Amplitudes()
	delays := specs[0].Delays()
	for _, s := range specs[1:] {
		amps, delays = convolvePair(amps, delays, s.Amplitudes(), s.Delays())
	}
	return shaper.NewSpec(amps, delays, specs[0].SampleRate())
}

func convolvePair(aAmps, aDelays, bAmps, bDelays []float64) ([]float64, []float64) {
	n := len(aAmps) * len(bAmps)
	amps := make([]float64, 0, n)
	delays := make([]float64, 0, n)
	for i := range aAmps {
		for j := range bAmps {
			amps = append(amps, aAmps[i]*bAmps[j])
			delays = append(delays, aDelays[i]+bDelays[j])
		}
	}

	order := make([]int, n)
	floats.Argsort(delays, order)

	outAmps := make([]float64, 0, n)
	outDelays := make([]float64, 0, n)
	for k, idx := range order {
		d := delays[k]
		if m := len(outDelays); m > 0 && d-outDelays[m-1] <= mergeTolerance {
			outAmps[m-1] += amps[idx]
			continue
		}
		outAmps = append(outAmps, amps[idx])
		outDelays = append(outDelays, d)
	}
	return outAmps, outDelays
}
