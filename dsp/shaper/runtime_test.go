package shaper

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-shaper/internal/testutil"
)

// zv1Hz is the undamped ZV shaper for a 1 Hz mode at a 100 Hz loop.
func zv1Hz() Spec {
	return MustSpec([]float64{0.5, 0.5}, []float64{0, 0.5}, 100)
}

// zvd1Hz is the undamped ZVD shaper for a 1 Hz mode at a 100 Hz loop.
func zvd1Hz() Spec {
	return MustSpec([]float64{0.25, 0.5, 0.25}, []float64{0, 0.5, 1.0}, 100)
}

func mustRuntime(t testing.TB, spec Spec, opts ...Option) *Runtime {
	t.Helper()
	r, err := New(spec, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func run(r *Runtime, x []float64) []float64 {
	y := make([]float64, len(x))
	r.ProcessBlockTo(y, x)
	return y
}

// --- construction ---

func TestNewValidation(t *testing.T) {
	if _, err := New(Spec{}); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("zero spec: err = %v, want ErrInvalidParameter", err)
	}

	for _, n := range []int{-1, 0, 1, 50} {
		if _, err := New(zv1Hz(), WithBufferLen(n)); !errors.Is(err, ErrBufferUndersized) {
			t.Fatalf("WithBufferLen(%d): err = %v, want ErrBufferUndersized", n, err)
		}
	}

	n := MaxBufferLen
	n++
	_, err := New(zv1Hz(), WithBufferLen(n))
	if !errors.Is(err, ErrInvalidParameter) && !errors.Is(err, ErrBufferUndersized) {
		t.Fatalf("WithBufferLen(%d): err = %v, want a construction error", n, err)
	}
}

func TestNewRejectsOverlongSpec(t *testing.T) {
	s := Spec{amps: []float64{0.5, 0.5}, delays: []float64{0, 1e300}, sampleRate: 1e300}
	if _, err := New(s); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("New: err = %v, want ErrInvalidParameter", err)
	}
	r := mustRuntime(t, zv1Hz())
	if err := r.SetSpec(s); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("SetSpec: err = %v, want ErrInvalidParameter", err)
	}
	if got := r.Tick(1); got != 0.5 {
		t.Fatalf("Tick after rejected SetSpec = %g, want 0.5", got)
	}
}

func TestNewBufferLen(t *testing.T) {
	if got := mustRuntime(t, zv1Hz()).BufferLen(); got != 101 {
		t.Fatalf("default BufferLen = %d, want 101", got)
	}
	if got := mustRuntime(t, zv1Hz(), WithBufferLen(51)).BufferLen(); got != 51 {
		t.Fatalf("BufferLen = %d, want 51", got)
	}
	if got := mustRuntime(t, zv1Hz(), nil, WithBufferLen(400)).BufferLen(); got != 400 {
		t.Fatalf("BufferLen = %d, want 400", got)
	}
}

func TestRuntimeAccessors(t *testing.T) {
	r := mustRuntime(t, zvd1Hz())
	if r.Latency() != 100 {
		t.Fatalf("Latency = %d, want 100", r.Latency())
	}
	off := r.Offsets()
	if off[0] != 0 || off[1] != 50 || off[2] != 100 {
		t.Fatalf("Offsets = %v", off)
	}
	if r.Spec().Len() != 3 {
		t.Fatalf("Spec().Len() = %d", r.Spec().Len())
	}
}

// --- tick contract ---

func TestConstantCommandZV(t *testing.T) {
	r := mustRuntime(t, zv1Hz())
	y := run(r, testutil.DC(100, 200))

	for i, v := range y {
		want := 100.0
		if i < 50 {
			want = 50
		}
		if v != want {
			t.Fatalf("tick %d: got %v want %v", i, v, want)
		}
	}
}

func TestImpulseResponseShape(t *testing.T) {
	spec := zv1Hz()
	r := mustRuntime(t, spec)
	y := run(r, testutil.Impulse(300, 0))

	amps := spec.Amplitudes()
	for i, v := range y {
		switch i {
		case 0:
			if v != amps[0] {
				t.Fatalf("tick 0: got %v want %v", v, amps[0])
			}
		case 50:
			if v != amps[1] {
				t.Fatalf("tick 50: got %v want %v", v, amps[1])
			}
		default:
			if v != 0 {
				t.Fatalf("tick %d: got %v want 0", i, v)
			}
		}
	}
}

func TestSecondImpulseLandsExactlyOnOffset(t *testing.T) {
	for _, n := range []int{51, 52, 101, 1000} {
		r := mustRuntime(t, zv1Hz(), WithBufferLen(n))

		// Two separated impulses exercise the first placement and a wrapped pass.
		x := testutil.Impulse(3*n, 0)
		x[n+7] = 1
		y := run(r, x)

		for _, start := range []int{0, n + 7} {
			if y[start+49] != 0 || y[start+51] != 0 {
				t.Fatalf("len %d: energy next to tick %d: %v %v", n, start+50, y[start+49], y[start+51])
			}
			if y[start+50] != 0.5 {
				t.Fatalf("len %d: tick %d = %v, want 0.5", n, start+50, y[start+50])
			}
		}
	}
}

func TestCoincidentOffsetsAccumulate(t *testing.T) {
	// 1 ms rounds to offset 0 at 100 Hz, so both leading impulses share slot 0.
	spec := MustSpec([]float64{0.25, 0.25, 0.5}, []float64{0, 0.001, 0.2}, 100)
	r := mustRuntime(t, spec)
	y := run(r, testutil.Impulse(40, 0))

	if y[0] != 0.5 {
		t.Fatalf("tick 0 = %v, want 0.5", y[0])
	}
	if y[20] != 0.5 {
		t.Fatalf("tick 20 = %v, want 0.5", y[20])
	}
}

func TestSingleImpulseIsIdentity(t *testing.T) {
	r := mustRuntime(t, MustSpec([]float64{1}, []float64{0}, 1000))
	if r.BufferLen() != 1 {
		t.Fatalf("BufferLen = %d, want 1", r.BufferLen())
	}
	x := testutil.DeterministicNoise(3, 1, 64)
	testutil.RequireSliceNearlyEqual(t, run(r, x), x, 0)
}

func TestSteadyStatePreservation(t *testing.T) {
	specs := map[string]Spec{
		"zv":  zv1Hz(),
		"zvd": zvd1Hz(),
		"ei":  MustSpec([]float64{0.2622, 0.4756, 0.2622}, []float64{0, 0.4999, 1.0}, 250),
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			r := mustRuntime(t, spec)
			n := 4*spec.MaxOffset() + 10
			y := run(r, testutil.DC(-3.5, n))

			var sum float64
			tail := y[2*spec.MaxOffset():]
			for _, v := range tail {
				sum += v
			}
			testutil.RequireNearlyEqual(t, "mean", sum/float64(len(tail)), -3.5, 1e-9)
			testutil.RequireNearlyEqual(t, "last", y[n-1], -3.5, 1e-9)
		})
	}
}

func TestRuntimeMatchesConvolution(t *testing.T) {
	specs := []Spec{
		zv1Hz(),
		zvd1Hz(),
		MustSpec([]float64{0.1, 0.2, 0.3, 0.4}, []float64{0, 0.013, 0.02, 0.071}, 1000),
	}
	for _, spec := range specs {
		for _, n := range []int{spec.MinBufferLen(), spec.DefaultBufferLen(), 3*spec.MaxOffset() + 5} {
			r := mustRuntime(t, spec, WithBufferLen(n))
			x := testutil.DeterministicNoise(int64(n), 2, 7*n)

			got := run(r, x)
			want := testutil.ImpulseTrain(x, spec.Amplitudes(), spec.Offsets())
			testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
		}
	}
}

func TestBoundedBufferSafety(t *testing.T) {
	spec := MustSpec([]float64{0.1, 0.2, 0.3, 0.4}, []float64{0, 0.013, 0.02, 0.071}, 1000)
	for _, n := range []int{72, 73, 100, 143} {
		r := mustRuntime(t, spec, WithBufferLen(n))
		x := testutil.DeterministicNoise(11, 1, 10*n)
		for i, v := range x {
			r.Tick(v)
			for k, s := range r.slots {
				if s < 0 || s >= n {
					t.Fatalf("len %d tick %d: slot %d = %d outside [0,%d)", n, i, k, s, n)
				}
			}
		}
	}
}

func TestTickDoesNotAllocate(t *testing.T) {
	r := mustRuntime(t, zvd1Hz())
	allocs := testing.AllocsPerRun(1000, func() {
		r.Tick(1)
	})
	if allocs != 0 {
		t.Fatalf("Tick allocates %v times per call", allocs)
	}
}

// --- lifecycle ---

func TestActiveLifecycle(t *testing.T) {
	r := mustRuntime(t, zv1Hz())
	if r.Active() {
		t.Fatal("new runtime should be uninitialized")
	}
	r.Tick(1)
	if !r.Active() {
		t.Fatal("runtime should be active after Tick")
	}
	r.Reset()
	if r.Active() {
		t.Fatal("Reset should return slots to uninitialized")
	}
}

func TestResetIdempotence(t *testing.T) {
	r := mustRuntime(t, zvd1Hz())
	x := testutil.DeterministicNoise(5, 1, 333)

	r.Tick(42)
	r.Reset()
	first := run(r, x)
	r.Reset()
	second := run(r, x)

	testutil.RequireSliceNearlyEqual(t, second, first, 0)
}

func TestResetTo(t *testing.T) {
	for _, spec := range []Spec{zv1Hz(), zvd1Hz()} {
		r := mustRuntime(t, spec)
		r.Tick(9)
		r.ResetTo(40)

		y := run(r, testutil.DC(40, 3*spec.MaxOffset()))
		for _, v := range y {
			testutil.RequireNearlyEqual(t, "held command", v, 40, 1e-12)
		}
	}
}

func TestResetToThenStep(t *testing.T) {
	r := mustRuntime(t, zv1Hz())
	r.ResetTo(10)

	// Stepping from the held 10 to 20 shapes only the 10-unit difference.
	y := run(r, testutil.DC(20, 120))
	if y[0] != 15 || y[49] != 15 || y[50] != 20 || y[119] != 20 {
		t.Fatalf("unexpected response: y[0]=%v y[49]=%v y[50]=%v y[119]=%v", y[0], y[49], y[50], y[119])
	}
}

func TestResetToZeroIsReset(t *testing.T) {
	r := mustRuntime(t, zv1Hz())
	r.Tick(5)
	r.ResetTo(0)
	for i, v := range r.line {
		if v != 0 {
			t.Fatalf("line[%d] = %v after ResetTo(0)", i, v)
		}
	}
}

func TestSetSpec(t *testing.T) {
	r := mustRuntime(t, zv1Hz())
	r.Tick(1)

	// The ZVD shaper needs 101 samples; the default ZV line holds 101.
	if err := r.SetSpec(zvd1Hz()); err != nil {
		t.Fatal(err)
	}
	if r.Active() {
		t.Fatal("SetSpec must reset the runtime")
	}
	y := run(r, testutil.Impulse(101, 0))
	if y[0] != 0.25 || y[50] != 0.5 || y[100] != 0.25 {
		t.Fatalf("ZVD impulse response wrong: %v %v %v", y[0], y[50], y[100])
	}
}

func TestSetSpecRejectsUndersizedLine(t *testing.T) {
	r := mustRuntime(t, zv1Hz(), WithBufferLen(51))
	r.Tick(1)

	if err := r.SetSpec(zvd1Hz()); !errors.Is(err, ErrBufferUndersized) {
		t.Fatalf("err = %v, want ErrBufferUndersized", err)
	}
	if err := r.SetSpec(Spec{}); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
	if r.Spec().Len() != 2 || !r.Active() {
		t.Fatal("failed SetSpec changed the runtime")
	}
}

func TestProcessBlockInPlace(t *testing.T) {
	a := mustRuntime(t, zvd1Hz())
	b := mustRuntime(t, zvd1Hz())
	x := testutil.DeterministicNoise(8, 1, 256)

	want := run(a, x)
	buf := append([]float64(nil), x...)
	b.ProcessBlock(buf)
	testutil.RequireSliceNearlyEqual(t, buf, want, 0)
}

func BenchmarkTick(b *testing.B) {
	r := mustRuntime(b, zvd1Hz())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Tick(1)
	}
}
