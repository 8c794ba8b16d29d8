package shaper

import "github.com/cwbudde/algo-shaper/dsp/delay"

// Direct computes the shaped command from a history of past inputs:
//
//	y[n] = sum_i A_i * x[n - d_i]
//
// It produces the same sequence as Runtime but reads the impulses back from
// the input history instead of scattering them ahead of time.
type Direct struct {
	spec    Spec
	amps    []float64
	offsets []int
	history *delay.Line
}

// NewDirect creates a direct-form shaper for spec.
func NewDirect(spec Spec) (*Direct, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	history, err := delay.New(spec.MinBufferLen())
	if err != nil {
		return nil, err
	}
	return &Direct{
		spec:    spec,
		amps:    spec.Amplitudes(),
		offsets: spec.Offsets(),
		history: history,
	}, nil
}

// Tick consumes the current command and returns the shaped command.
func (d *Direct) Tick(x float64) float64 {
	d.history.Write(x)
	var y float64
	for i, a := range d.amps {
		y += a * d.history.Read(d.offsets[i])
	}
	return y
}

// Reset clears the input history.
func (d *Direct) Reset() {
	d.history.Reset()
}

// ResetTo fills the history with value, as if the command had been held
// there forever.
func (d *Direct) ResetTo(value float64) {
	d.history.Fill(value)
}

// Spec returns the shaper parameters.
func (d *Direct) Spec() Spec {
	return d.spec
}
