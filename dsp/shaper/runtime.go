package shaper

import (
	"fmt"

	"github.com/cwbudde/algo-shaper/dsp/core"
)

// uninitialized marks impulse slots that have not been placed yet.
const uninitialized = -1

// Option configures a Runtime.
type Option func(*runtimeConfig)

type runtimeConfig struct {
	bufferLen    int
	bufferLenSet bool
}

// WithBufferLen sets the delay-line length in samples. It must be at least
// Spec.MinBufferLen and at most MaxBufferLen.
func WithBufferLen(n int) Option {
	return func(cfg *runtimeConfig) {
		cfg.bufferLen = n
		cfg.bufferLenSet = true
	}
}

// Runtime shapes one command stream with a fixed-size delay line.
//
// Each impulse owns a slot index into the line. The slots start out
// uninitialized, are placed on the first Tick and then advance by one
// sample per Tick, wrapping at the end of the line.
type Runtime struct {
	spec    Spec
	amps    []float64
	offsets []int
	line    []float64
	slots   []int
}

// New creates a runtime for spec. The delay line defaults to
// spec.DefaultBufferLen samples.
func New(spec Spec, opts ...Option) (*Runtime, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	cfg := runtimeConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	size := spec.DefaultBufferLen()
	if cfg.bufferLenSet {
		if cfg.bufferLen < spec.MinBufferLen() {
			return nil, fmt.Errorf("%w: %d samples, need at least %d",
				ErrBufferUndersized, cfg.bufferLen, spec.MinBufferLen())
		}
		if cfg.bufferLen > MaxBufferLen {
			return nil, fmt.Errorf("%w: buffer length %d exceeds %d",
				ErrInvalidParameter, cfg.bufferLen, MaxBufferLen)
		}
		size = cfg.bufferLen
	}

	r := &Runtime{line: make([]float64, size)}
	r.bind(spec)
	return r, nil
}

func (r *Runtime) bind(spec Spec) {
	r.spec = spec
	r.amps = spec.Amplitudes()
	r.offsets = spec.Offsets()
	r.slots = make([]int, len(r.offsets))
	r.Reset()
}

// Tick consumes the unshaped command for the current cycle and returns the
// shaped command. It must be called once per control cycle at the spec's
// sample rate.
func (r *Runtime) Tick(x float64) float64 {
	if r.slots[0] == uninitialized {
		// One sample early: the increment below moves every slot onto its
		// offset before the first deposit.
		for i, off := range r.offsets {
			r.slots[i] = off - 1
		}
	}

	n := len(r.line)
	for i, a := range r.amps {
		s := r.slots[i] + 1
		if s >= n {
			s = 0
		}
		r.slots[i] = s
		r.line[s] += a * x
	}

	cur := r.slots[0]
	y := r.line[cur]
	r.line[cur] = 0
	return y
}

// ProcessBlock shapes a block of commands in-place.
func (r *Runtime) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = r.Tick(x)
	}
}

// ProcessBlockTo shapes src into dst. dst must be at least as long as src.
func (r *Runtime) ProcessBlockTo(dst, src []float64) {
	dst = dst[:len(src)]
	for i, x := range src {
		dst[i] = r.Tick(x)
	}
}

// Reset clears the delay line and returns every slot to the
// uninitialized state.
func (r *Runtime) Reset() {
	core.Zero(r.line)
	for i := range r.slots {
		r.slots[i] = uninitialized
	}
}

// ResetTo resets the runtime and preloads the delay line as if the command
// had been held at value forever. A following constant input of value then
// produces value from the first Tick on, so re-homing at a non-zero command
// does not start from zero.
func (r *Runtime) ResetTo(value float64) {
	r.Reset()
	if value == 0 {
		return
	}
	// After Reset, slot 0 reads line[j] on the j-th Tick. Every impulse whose
	// offset lies beyond j would already have delivered its share of the
	// held command by then.
	for i, off := range r.offsets {
		a := r.amps[i] * value
		for j := 0; j < off; j++ {
			r.line[j] += a
		}
	}
}

// SetSpec replaces the shaper parameters and resets the runtime. The
// existing delay line is kept; it fails with ErrBufferUndersized when the
// new spec does not fit, leaving the runtime unchanged.
func (r *Runtime) SetSpec(spec Spec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	if spec.MinBufferLen() > len(r.line) {
		return fmt.Errorf("%w: %d samples, need at least %d",
			ErrBufferUndersized, len(r.line), spec.MinBufferLen())
	}
	r.bind(spec)
	return nil
}

// Spec returns the shaper parameters.
func (r *Runtime) Spec() Spec {
	return r.spec
}

// BufferLen returns the delay-line length in samples.
func (r *Runtime) BufferLen() int {
	return len(r.line)
}

// Offsets returns the impulse offsets in samples.
func (r *Runtime) Offsets() []int {
	return append([]int(nil), r.offsets...)
}

// Latency returns the number of samples between the first and the last
// impulse.
func (r *Runtime) Latency() int {
	return r.offsets[len(r.offsets)-1]
}

// Active reports whether the impulse slots have been placed by a Tick since
// construction or the last reset.
func (r *Runtime) Active() bool {
	return r.slots[0] != uninitialized
}
