package signal

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-shaper/dsp/core"
)

// ErrInvalidArgument is returned for out-of-range generator arguments.
var ErrInvalidArgument = errors.New("signal: invalid argument")

// Generator creates position commands sampled at a fixed loop rate.
type Generator struct {
	cfg core.ProcessorConfig
}

// NewGenerator creates a configured command generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{cfg: core.ApplyProcessorOptions(opts...)}
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// SampleRate returns the loop update rate in Hz.
func (g *Generator) SampleRate() float64 {
	return g.cfg.SampleRate
}

func checkSamples(kind string, samples int) error {
	if samples <= 0 {
		return fmt.Errorf("%w: %s samples must be > 0: %d", ErrInvalidArgument, kind, samples)
	}
	return nil
}

// Step returns samples copies of amplitude: a command that jumps at sample 0
// and holds.
func (g *Generator) Step(amplitude float64, samples int) ([]float64, error) {
	if err := checkSamples("step", samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	core.Fill(out, amplitude)
	return out, nil
}

// Impulse returns a single sample of amplitude at index 0 followed by zeros.
func (g *Generator) Impulse(amplitude float64, samples int) ([]float64, error) {
	if err := checkSamples("impulse", samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	out[0] = amplitude
	return out, nil
}

// Sine returns a sine of freqHz used to excite a single mode.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if err := checkSamples("sine", samples); err != nil {
		return nil, err
	}
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	out := make([]float64, samples)
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// Trapezoid returns the position command of a point-to-point move of the
// given distance under a trapezoidal velocity profile. The move accelerates
// at accel up to maxVel, cruises, and decelerates to rest; short moves never
// reach maxVel and get a triangular profile. The last sample equals
// distance. A zero distance yields a single zero sample.
func (g *Generator) Trapezoid(distance, maxVel, accel float64) ([]float64, error) {
	switch {
	case math.IsNaN(distance) || math.IsInf(distance, 0):
		return nil, fmt.Errorf("%w: trapezoid distance must be finite: %g", ErrInvalidArgument, distance)
	case !(maxVel > 0) || math.IsInf(maxVel, 0):
		return nil, fmt.Errorf("%w: trapezoid velocity must be > 0: %g", ErrInvalidArgument, maxVel)
	case !(accel > 0) || math.IsInf(accel, 0):
		return nil, fmt.Errorf("%w: trapezoid acceleration must be > 0: %g", ErrInvalidArgument, accel)
	}
	if distance == 0 {
		return []float64{0}, nil
	}

	dir := math.Copysign(1, distance)
	d := math.Abs(distance)

	ta := maxVel / accel
	v := maxVel
	if accel*ta*ta > d {
		ta = math.Sqrt(d / accel)
		v = accel * ta
	}
	tc := math.Max(0, (d-accel*ta*ta)/v)
	total := 2*ta + tc

	rate := g.cfg.SampleRate
	// The tolerance keeps an exact whole-sample move from gaining a sample.
	n := int(math.Ceil(total*rate-1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / rate
		var p float64
		switch {
		case t < ta:
			p = 0.5 * accel * t * t
		case t < ta+tc:
			p = 0.5*accel*ta*ta + v*(t-ta)
		case t < total:
			r := total - t
			p = d - 0.5*accel*r*r
		default:
			p = d
		}
		out[i] = dir * p
	}
	out[n-1] = distance
	return out, nil
}
