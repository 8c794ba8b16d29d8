package design

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-shaper/dsp/shaper"
)

// Type selects a shaper family.
type Type int

const (
	TypeZV Type = iota
	TypeZVD
	TypeEI
	TypeMZV
	TypeTwoHumpEI
	TypeThreeHumpEI
)

var typeNames = [...]string{
	TypeZV:          "zv",
	TypeZVD:         "zvd",
	TypeEI:          "ei",
	TypeMZV:         "mzv",
	TypeTwoHumpEI:   "2hump_ei",
	TypeThreeHumpEI: "3hump_ei",
}

// String returns the lower-case shaper name.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// Types returns every supported shaper family.
func Types() []Type {
	out := make([]Type, len(typeNames))
	for i := range out {
		out[i] = Type(i)
	}
	return out
}

// ParseType returns the shaper family for a case-insensitive name.
func ParseType(name string) (Type, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range typeNames {
		if s == n {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown shaper type %q", shaper.ErrInvalidParameter, name)
}

// usesVibTol reports whether the family takes a vibration tolerance.
func (t Type) usesVibTol() bool {
	return t == TypeEI || t == TypeTwoHumpEI || t == TypeThreeHumpEI
}

// Params describes the mode to cancel and the loop it runs in.
type Params struct {
	Type       Type
	Frequency  float64 // natural frequency, Hz
	Damping    float64 // damping ratio in [0,1)
	VibTol     float64 // EI family only; 0 selects DefaultVibTol
	SampleRate float64 // loop update rate, Hz
}

// Design returns the impulse sequence described by p.
func Design(p Params) (shaper.Spec, error) {
	vibTol := p.VibTol
	if p.Type.usesVibTol() && vibTol == 0 {
		vibTol = DefaultVibTol
	}

	switch p.Type {
	case TypeZV:
		return ZV(p.Frequency, p.Damping, p.SampleRate)
	case TypeZVD:
		return ZVD(p.Frequency, p.Damping, p.SampleRate)
	case TypeEI:
		return EI(p.Frequency, p.Damping, vibTol, p.SampleRate)
	case TypeMZV:
		return MZV(p.Frequency, p.Damping, p.SampleRate)
	case TypeTwoHumpEI, TypeThreeHumpEI:
		if vibTol != DefaultVibTol {
			return shaper.Spec{}, fmt.Errorf("%w: %s is fitted for a vibration tolerance of %g, got %g",
				shaper.ErrInvalidParameter, p.Type, DefaultVibTol, vibTol)
		}
		if p.Type == TypeTwoHumpEI {
			return TwoHumpEI(p.Frequency, p.Damping, p.SampleRate)
		}
		return ThreeHumpEI(p.Frequency, p.Damping, p.SampleRate)
	default:
		return shaper.Spec{}, fmt.Errorf("%w: unknown shaper type %v", shaper.ErrInvalidParameter, p.Type)
	}
}

// NewRuntime designs the shaper described by p and binds it to a runtime.
func NewRuntime(p Params, opts ...shaper.Option) (*shaper.Runtime, error) {
	spec, err := Design(p)
	if err != nil {
		return nil, err
	}
	return shaper.New(spec, opts...)
}
