package shaping

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-shaper/dsp/core"
	"github.com/cwbudde/algo-shaper/dsp/shaper"
	"github.com/cwbudde/algo-shaper/dsp/spectrum"
)

// ErrInvalidSize is returned when the FFT size cannot hold the shaper.
var ErrInvalidSize = errors.New("shaping: FFT size must be a power of two covering the shaper")

// Spectrum is the magnitude response of a shaper from DC to Nyquist.
type Spectrum struct {
	Frequencies []float64 // bin centre frequencies in Hz
	Magnitude   []float64 // |H| per bin; 1 at DC
	SampleRate  float64
	Size        int // FFT length
}

// Resolution returns the bin spacing in Hz.
func (s Spectrum) Resolution() float64 {
	return s.SampleRate / float64(s.Size)
}

// Bin returns the index of the bin nearest to freq, clamped to the
// available range.
func (s Spectrum) Bin(freq float64) int {
	if len(s.Magnitude) == 0 {
		return 0
	}
	k := core.Clamp(math.Round(freq/s.Resolution()), 0, float64(len(s.Magnitude)-1))
	return int(k)
}

// At returns the magnitude of the bin nearest to freq.
func (s Spectrum) At(freq float64) float64 {
	if len(s.Magnitude) == 0 {
		return 0
	}
	return s.Magnitude[s.Bin(freq)]
}

// MinSize returns the smallest power-of-two FFT length that holds the
// sampled impulse train of spec.
func MinSize(spec shaper.Spec) int {
	n := spec.MaxOffset() + 1
	if n <= 1 {
		return 2
	}
	return 1 << bits.Len(uint(n-1))
}

// Response returns the sampled frequency response of spec, using the
// integer offsets a Runtime applies. size is the FFT length; 0 selects
// MinSize. Larger sizes give finer bin spacing.
func Response(spec shaper.Spec, size int) (Spectrum, error) {
	if err := spec.Validate(); err != nil {
		return Spectrum{}, err
	}
	if size == 0 {
		size = MinSize(spec)
	}
	if size < 2 || size&(size-1) != 0 || size < spec.MaxOffset()+1 {
		return Spectrum{}, fmt.Errorf("%w: size %d, shaper spans %d samples",
			ErrInvalidSize, size, spec.MaxOffset()+1)
	}

	in := make([]complex128, size)
	amps := spec.Amplitudes()
	for i, off := range spec.Offsets() {
		in[off] += complex(amps[i], 0)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return Spectrum{}, fmt.Errorf("shaping: fft plan: %w", err)
	}
	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return Spectrum{}, fmt.Errorf("shaping: fft: %w", err)
	}

	half := size/2 + 1
	freqs := make([]float64, half)
	df := spec.SampleRate() / float64(size)
	for k := range freqs {
		freqs[k] = float64(k) * df
	}
	return Spectrum{
		Frequencies: freqs,
		Magnitude:   spectrum.Magnitude(out[:half]),
		SampleRate:  spec.SampleRate(),
		Size:        size,
	}, nil
}

// Gain returns |H(f)| of the sampled impulse train at exactly freq, which
// need not fall on an FFT bin. freq must lie in [0, SampleRate/2].
func Gain(spec shaper.Spec, freq float64) (float64, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}
	g, err := spectrum.NewGoertzel(freq, spec.SampleRate())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", shaper.ErrInvalidParameter, err)
	}

	h := make([]float64, spec.MaxOffset()+1)
	amps := spec.Amplitudes()
	for i, off := range spec.Offsets() {
		h[off] += amps[i]
	}
	g.ProcessBlock(h)
	return g.Magnitude(), nil
}
