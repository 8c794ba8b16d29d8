package testutil

import "testing"

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic at index %d", i)
		}
		if a[i] < -1 || a[i] > 1 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}
}

func TestImpulse(t *testing.T) {
	x := Impulse(8, 3)
	for i, v := range x {
		want := 0.0
		if i == 3 {
			want = 1
		}
		if v != want {
			t.Fatalf("x[%d] = %v, want %v", i, v, want)
		}
	}

	if x := Impulse(4, 9); x[0] != 0 || x[3] != 0 {
		t.Fatalf("out-of-range position should give zeros: %v", x)
	}
}

func TestDC(t *testing.T) {
	for i, v := range DC(2.5, 5) {
		if v != 2.5 {
			t.Fatalf("x[%d] = %v, want 2.5", i, v)
		}
	}
}

func TestImpulseTrain(t *testing.T) {
	y := ImpulseTrain(Impulse(6, 0), []float64{0.25, 0.5, 0.25}, []int{0, 2, 4})
	RequireSliceNearlyEqual(t, y, []float64{0.25, 0, 0.5, 0, 0.25, 0}, 0)

	y = ImpulseTrain(DC(1, 5), []float64{0.5, 0.5}, []int{0, 2})
	RequireSliceNearlyEqual(t, y, []float64{0.5, 0.5, 1, 1, 1}, 1e-15)
}
