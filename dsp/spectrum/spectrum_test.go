package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-shaper/internal/testutil"
)

func TestMagnitudePowerPhase(t *testing.T) {
	bins := []complex128{3 + 4i, -1 - 1i, 0}

	testutil.RequireSliceNearlyEqual(t, Magnitude(bins), []float64{5, math.Sqrt2, 0}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, Power(bins), []float64{25, 2, 0}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, Phase(bins), []float64{math.Atan2(4, 3), -3 * math.Pi / 4, 0}, 1e-12)
}

func TestEmptyInput(t *testing.T) {
	if Magnitude(nil) != nil || Power(nil) != nil || Phase(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
}

func TestFromParts(t *testing.T) {
	re := []float64{3, -1, 0}
	im := []float64{4, -1, 0}
	dst := make([]float64, 3)

	MagnitudeFromParts(dst, re, im)
	testutil.RequireSliceNearlyEqual(t, dst, []float64{5, math.Sqrt2, 0}, 1e-12)

	PowerFromParts(dst, re, im)
	testutil.RequireSliceNearlyEqual(t, dst, []float64{25, 2, 0}, 1e-12)
}

func TestMagnitudeReusesScratchAcrossSizes(t *testing.T) {
	small := Magnitude([]complex128{1i})
	large := Magnitude([]complex128{1, 2i, -3, 4i, 5})
	again := Magnitude([]complex128{-2})

	testutil.RequireSliceNearlyEqual(t, small, []float64{1}, 0)
	testutil.RequireSliceNearlyEqual(t, large, []float64{1, 2, 3, 4, 5}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, again, []float64{2}, 0)
}
