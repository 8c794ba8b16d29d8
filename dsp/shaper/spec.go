package shaper

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-shaper/dsp/core"
)

const (
	// AmplitudeTolerance is the allowed deviation of the amplitude sum from 1.
	AmplitudeTolerance = 1e-6

	// MaxOffsetSamples is the longest shaper, in samples, a Spec may describe.
	// The default delay line of such a shaper still fits in an int32.
	MaxOffsetSamples = 1<<30 - 1

	// MaxBufferLen is the longest delay line a Runtime accepts.
	MaxBufferLen = 2*MaxOffsetSamples + 1
)

// Impulse is one weighted, delayed impulse of a shaper.
type Impulse struct {
	Amplitude float64
	Delay     float64 // seconds
}

// Spec is an immutable impulse sequence bound to a control-loop rate.
//
// Amplitudes sum to one, so the shaper preserves the steady-state value of
// the command. The first delay is zero and delays never decrease.
type Spec struct {
	amps       []float64
	delays     []float64
	sampleRate float64
}

// NewSpec validates and copies an impulse sequence.
func NewSpec(amplitudes, delays []float64, sampleRate float64) (Spec, error) {
	s := Spec{
		amps:       append([]float64(nil), amplitudes...),
		delays:     append([]float64(nil), delays...),
		sampleRate: sampleRate,
	}
	if err := s.Validate(); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// MustSpec is like NewSpec but panics on error.
func MustSpec(amplitudes, delays []float64, sampleRate float64) Spec {
	s, err := NewSpec(amplitudes, delays, sampleRate)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks the spec invariants. The zero Spec is invalid.
func (s Spec) Validate() error {
	if len(s.amps) == 0 {
		return fmt.Errorf("%w: no impulses", ErrInvalidParameter)
	}
	if len(s.amps) != len(s.delays) {
		return fmt.Errorf("%w: %d amplitudes but %d delays", ErrInvalidParameter, len(s.amps), len(s.delays))
	}
	if !(s.sampleRate > 0) || math.IsInf(s.sampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be > 0: %g", ErrInvalidParameter, s.sampleRate)
	}
	for i := range s.amps {
		if !core.IsFinite(s.amps[i]) || !core.IsFinite(s.delays[i]) {
			return fmt.Errorf("%w: impulse %d is not finite", ErrInvalidParameter, i)
		}
	}
	if s.delays[0] != 0 {
		return fmt.Errorf("%w: first delay must be 0: %g", ErrInvalidParameter, s.delays[0])
	}
	for i := 1; i < len(s.delays); i++ {
		if s.delays[i] < s.delays[i-1] {
			return fmt.Errorf("%w: delay %d (%g s) precedes delay %d (%g s)",
				ErrInvalidParameter, i, s.delays[i], i-1, s.delays[i-1])
		}
	}
	if n := math.Round(s.Duration() * s.sampleRate); !(n <= MaxOffsetSamples) {
		return fmt.Errorf("%w: shaper spans %g samples, limit is %d",
			ErrInvalidParameter, n, MaxOffsetSamples)
	}
	if sum := floats.Sum(s.amps); !core.NearlyEqual(sum, 1, AmplitudeTolerance) {
		return fmt.Errorf("%w: amplitudes sum to %g, want 1", ErrInvalidParameter, sum)
	}
	return nil
}

// Len returns the number of impulses.
func (s Spec) Len() int {
	return len(s.amps)
}

// SampleRate returns the loop update rate in Hz the spec is bound to.
func (s Spec) SampleRate() float64 {
	return s.sampleRate
}

// Amplitudes returns a copy of the impulse amplitudes.
func (s Spec) Amplitudes() []float64 {
	return append([]float64(nil), s.amps...)
}

// Delays returns a copy of the impulse delays in seconds.
func (s Spec) Delays() []float64 {
	return append([]float64(nil), s.delays...)
}

// Impulses returns the impulse sequence in delay order.
func (s Spec) Impulses() []Impulse {
	out := make([]Impulse, len(s.amps))
	for i := range s.amps {
		out[i] = Impulse{Amplitude: s.amps[i], Delay: s.delays[i]}
	}
	return out
}

// Duration returns the delay of the last impulse in seconds.
func (s Spec) Duration() float64 {
	if len(s.delays) == 0 {
		return 0
	}
	return s.delays[len(s.delays)-1]
}

// Offsets returns the impulse delays rounded to whole samples.
func (s Spec) Offsets() []int {
	out := make([]int, len(s.delays))
	for i, d := range s.delays {
		out[i] = int(math.Round(d * s.sampleRate))
	}
	return out
}

// MaxOffset returns the offset of the last impulse in samples.
func (s Spec) MaxOffset() int {
	if len(s.delays) == 0 {
		return 0
	}
	return int(math.Round(s.Duration() * s.sampleRate))
}

// MinBufferLen is the shortest delay line that can hold the shaper.
func (s Spec) MinBufferLen() int {
	return s.MaxOffset() + 1
}

// DefaultBufferLen is the delay-line length used when none is configured:
// twice the shaper length plus one sample.
func (s Spec) DefaultBufferLen() int {
	return 2*s.MaxOffset() + 1
}

// WithSampleRate binds the same impulses to another loop rate.
func (s Spec) WithSampleRate(sampleRate float64) (Spec, error) {
	return NewSpec(s.amps, s.delays, sampleRate)
}
