package spectrum

import (
	"fmt"
	"math"
)

// Goertzel evaluates one DFT term of everything fed to it since the last
// Reset. The frequency need not fall on an FFT bin, which makes it suited
// to probing a shaper at exactly its design frequency.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
}

// NewGoertzel returns an evaluator for frequency in [0, sampleRate/2].
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("goertzel: sample rate must be > 0: %v", sampleRate)
	}
	if !(frequency >= 0 && frequency <= sampleRate/2) {
		return nil, fmt.Errorf("goertzel: frequency must be in [0, %v]: %v", sampleRate/2, frequency)
	}
	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s0, g.s1 = 0, 0
}

// ProcessSample feeds one sample.
func (g *Goertzel) ProcessSample(x float64) {
	g.s0, g.s1 = x+g.coeff*g.s0-g.s1, g.s0
}

// ProcessBlock feeds a block of samples.
func (g *Goertzel) ProcessBlock(in []float64) {
	s0, s1, c := g.s0, g.s1, g.coeff
	for _, x := range in {
		s0, s1 = x+c*s0-s1, s0
	}
	g.s0, g.s1 = s0, s1
}

// Power returns |X(f)|^2 over the samples processed so far.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns |X(f)|.
func (g *Goertzel) Magnitude() float64 {
	if p := g.Power(); p > 0 {
		return math.Sqrt(p)
	}
	return 0
}

// Frequency returns the evaluated frequency in Hz.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// SampleRate returns the sample rate in Hz.
func (g *Goertzel) SampleRate() float64 { return g.sampleRate }
