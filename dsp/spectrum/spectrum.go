package spectrum

import (
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-shaper/dsp/core"
)

// parts is pooled scratch for splitting complex bins into real and
// imaginary slices.
type parts struct {
	data []float64
}

var partsPool = sync.Pool{
	New: func() any { return &parts{} },
}

func split(in []complex128) (re, im []float64, p *parts) {
	p = partsPool.Get().(*parts)
	n := len(in)
	p.data = core.EnsureLen(p.data, 2*n)
	re, im = p.data[:n], p.data[n:]
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im, p
}

// Magnitude returns |X[k]| for each bin. Only the output slice is allocated
// in steady state.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	re, im, p := split(in)
	vecmath.Magnitude(out, re, im)
	partsPool.Put(p)
	return out
}

// MagnitudeFromParts writes sqrt(re^2 + im^2) into dst. All three slices
// must have the same length.
func MagnitudeFromParts(dst, re, im []float64) {
	vecmath.Magnitude(dst, re, im)
}

// Power returns |X[k]|^2 for each bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	re, im, p := split(in)
	vecmath.Power(out, re, im)
	partsPool.Put(p)
	return out
}

// PowerFromParts writes re^2 + im^2 into dst.
func PowerFromParts(dst, re, im []float64) {
	vecmath.Power(dst, re, im)
}

// Phase returns arg(X[k]) in radians.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}
	return out
}
