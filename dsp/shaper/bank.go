package shaper

import "fmt"

// Bank shapes several axes with the same shaper parameters. Every axis owns
// its own Runtime, so axes never share mutable state.
type Bank struct {
	spec Spec
	axes []*Runtime
}

// NewBank creates one runtime per axis for spec.
func NewBank(spec Spec, axes int, opts ...Option) (*Bank, error) {
	if axes <= 0 {
		return nil, fmt.Errorf("%w: axis count must be > 0: %d", ErrInvalidParameter, axes)
	}

	b := &Bank{spec: spec, axes: make([]*Runtime, axes)}
	for i := range b.axes {
		r, err := New(spec, opts...)
		if err != nil {
			return nil, err
		}
		b.axes[i] = r
	}
	return b, nil
}

// Len returns the number of axes.
func (b *Bank) Len() int {
	return len(b.axes)
}

// Spec returns the shared shaper parameters.
func (b *Bank) Spec() Spec {
	return b.spec
}

// Axis returns the runtime of axis i.
func (b *Bank) Axis(i int) *Runtime {
	return b.axes[i]
}

// Tick shapes one command per axis. src and dst must both hold Len()
// values; dst may alias src.
func (b *Bank) Tick(dst, src []float64) {
	_ = dst[len(b.axes)-1]
	_ = src[len(b.axes)-1]
	for i, r := range b.axes {
		dst[i] = r.Tick(src[i])
	}
}

// Reset resets every axis.
func (b *Bank) Reset() {
	for _, r := range b.axes {
		r.Reset()
	}
}
