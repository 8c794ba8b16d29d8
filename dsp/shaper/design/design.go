package design

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-shaper/dsp/shaper"
)

// DefaultVibTol is the tolerated residual vibration of the EI-family
// shapers when none is given (5 %).
const DefaultVibTol = 0.05

// Upper damping limits of the multi-hump curve fits.
const (
	maxDampingTwoHumpEI   = 0.3
	maxDampingThreeHumpEI = 0.2
)

func validateMode(freq, damping, sampleRate float64) error {
	if !(freq > 0) || math.IsInf(freq, 0) {
		return fmt.Errorf("%w: natural frequency must be > 0 Hz: %g", shaper.ErrInvalidParameter, freq)
	}
	if !(damping >= 0 && damping < 1) {
		return fmt.Errorf("%w: damping ratio must be in [0,1): %g", shaper.ErrInvalidParameter, damping)
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be > 0 Hz: %g", shaper.ErrInvalidParameter, sampleRate)
	}
	return nil
}

func validateVibTol(vibTol float64) error {
	if !(vibTol > 0 && vibTol < 1) {
		return fmt.Errorf("%w: vibration tolerance must be in (0,1): %g", shaper.ErrInvalidParameter, vibTol)
	}
	return nil
}

// zvFactor returns K = exp(-zeta*pi/sqrt(1-zeta^2)) and the half damped
// period pi/wd in seconds.
func zvFactor(freq, damping float64) (k, halfPeriod float64) {
	df := math.Sqrt(1 - damping*damping)
	wn := 2 * math.Pi * freq
	k = math.Exp(-damping * math.Pi / df)
	halfPeriod = math.Pi / (wn * df)
	return k, halfPeriod
}

// normalized scales amps in place so they sum to one.
func normalized(amps []float64) []float64 {
	floats.Scale(1/floats.Sum(amps), amps)
	return amps
}

// ZV designs the two-impulse zero-vibration shaper.
func ZV(freq, damping, sampleRate float64) (shaper.Spec, error) {
	if err := validateMode(freq, damping, sampleRate); err != nil {
		return shaper.Spec{}, err
	}
	k, dt := zvFactor(freq, damping)
	return shaper.NewSpec(
		normalized([]float64{1, k}),
		[]float64{0, dt},
		sampleRate,
	)
}

// ZVD designs the three-impulse zero-vibration-and-derivative shaper.
func ZVD(freq, damping, sampleRate float64) (shaper.Spec, error) {
	if err := validateMode(freq, damping, sampleRate); err != nil {
		return shaper.Spec{}, err
	}
	k, dt := zvFactor(freq, damping)
	return shaper.NewSpec(
		normalized([]float64{1, 2 * k, k * k}),
		[]float64{0, dt, 2 * dt},
		sampleRate,
	)
}

// EI designs the three-impulse extra-insensitive shaper that leaves at most
// vibTol residual vibration at the design frequency. Amplitudes and the
// middle delay come from curve fits in damping and vibTol; the middle
// amplitude closes the sum to one.
func EI(freq, damping, vibTol, sampleRate float64) (shaper.Spec, error) {
	if err := validateMode(freq, damping, sampleRate); err != nil {
		return shaper.Spec{}, err
	}
	if err := validateVibTol(vibTol); err != nil {
		return shaper.Spec{}, err
	}

	v, z := vibTol, damping
	wd := 2 * math.Pi * freq * math.Sqrt(1-z*z)

	a1 := 0.249684 + 0.249623*v + 0.800081*z + 1.23328*v*z + 0.495987*z*z + 3.17316*v*z*z
	a3 := 0.251489 + 0.21474*v - 0.832493*z + 1.41498*v*z + 0.851806*z*z - 4.90094*v*z*z
	a2 := 1 - (a1 + a3)

	t2 := 2 * math.Pi * (0.499899 +
		0.461586*v*z + 4.26169*v*z*z + 1.75601*v*z*z*z +
		8.57843*v*v*z - 108.644*v*v*z*z + 336.989*v*v*z*z*z) / wd
	t3 := 2 * math.Pi / wd

	return shaper.NewSpec([]float64{a1, a2, a3}, []float64{0, t2, t3}, sampleRate)
}

// MZV designs the modified zero-vibration shaper: three impulses spread
// over three quarters of a damped period.
func MZV(freq, damping, sampleRate float64) (shaper.Spec, error) {
	if err := validateMode(freq, damping, sampleRate); err != nil {
		return shaper.Spec{}, err
	}
	df := math.Sqrt(1 - damping*damping)
	k := math.Exp(-0.75 * damping * math.Pi / df)
	td := 1 / (freq * df)

	a1 := 1 - 1/math.Sqrt2
	a2 := (math.Sqrt2 - 1) * k
	a3 := a1 * k * k
	return shaper.NewSpec(
		normalized([]float64{a1, a2, a3}),
		[]float64{0, 0.375 * td, 0.75 * td},
		sampleRate,
	)
}

// Expansion coefficients of the multi-hump EI shapers at a 5 % vibration
// tolerance. Row i holds the cubic in damping for impulse i; times are in
// undamped periods.
var (
	twoHumpTimes = [][4]float64{
		{0, 0, 0, 0},
		{0.49890, 0.16270, -0.54262, 6.16180},
		{0.99748, 0.18382, -1.58270, 8.17120},
		{1.49920, -0.09297, -0.28338, 1.85710},
	}
	twoHumpAmps = [][4]float64{
		{0.16054, 0.76699, 2.26560, -1.22750},
		{0.33911, 0.45081, -2.58080, 1.73650},
		{0.34089, -0.61533, -0.68765, 0.42261},
		{0.15997, -0.60246, 1.00280, -0.93145},
	}
	threeHumpTimes = [][4]float64{
		{0, 0, 0, 0},
		{0.49974, 0.23834, 0.44559, 12.4720},
		{0.99849, 0.29808, -2.36460, 23.3990},
		{1.49870, 0.10306, -2.01390, 17.0320},
		{1.99960, -0.28231, 0.61536, 5.40450},
	}
	threeHumpAmps = [][4]float64{
		{0.11275, 0.76632, 3.29160, -1.44380},
		{0.23698, 0.61164, -2.57850, 4.85220},
		{0.30008, -0.19062, -2.14560, 0.13744},
		{0.23775, -0.73297, 0.46885, -2.08650},
		{0.11244, -0.45439, 0.96382, -1.46000},
	}
)

// cubic evaluates c[0] + c[1]*x + c[2]*x^2 + c[3]*x^3.
func cubic(c [4]float64, x float64) float64 {
	return c[0] + x*(c[1]+x*(c[2]+x*c[3]))
}

func fromExpansion(freq, damping, sampleRate float64, times, amps [][4]float64) (shaper.Spec, error) {
	tau := 1 / freq
	a := make([]float64, len(amps))
	t := make([]float64, len(times))
	for i := range amps {
		a[i] = cubic(amps[i], damping)
		t[i] = cubic(times[i], damping) * tau
	}
	return shaper.NewSpec(normalized(a), t, sampleRate)
}

// TwoHumpEI designs the four-impulse two-hump extra-insensitive shaper.
// The fit covers damping ratios up to 0.3.
func TwoHumpEI(freq, damping, sampleRate float64) (shaper.Spec, error) {
	if err := validateMode(freq, damping, sampleRate); err != nil {
		return shaper.Spec{}, err
	}
	if damping > maxDampingTwoHumpEI {
		return shaper.Spec{}, fmt.Errorf("%w: 2-hump EI damping ratio must be <= %g: %g",
			shaper.ErrInvalidParameter, maxDampingTwoHumpEI, damping)
	}
	return fromExpansion(freq, damping, sampleRate, twoHumpTimes, twoHumpAmps)
}

// ThreeHumpEI designs the five-impulse three-hump extra-insensitive shaper.
// The fit covers damping ratios up to 0.2.
func ThreeHumpEI(freq, damping, sampleRate float64) (shaper.Spec, error) {
	if err := validateMode(freq, damping, sampleRate); err != nil {
		return shaper.Spec{}, err
	}
	if damping > maxDampingThreeHumpEI {
		return shaper.Spec{}, fmt.Errorf("%w: 3-hump EI damping ratio must be <= %g: %g",
			shaper.ErrInvalidParameter, maxDampingThreeHumpEI, damping)
	}
	return fromExpansion(freq, damping, sampleRate, threeHumpTimes, threeHumpAmps)
}
