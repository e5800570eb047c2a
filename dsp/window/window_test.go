package window

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestGenerate_Rectangular(t *testing.T) {
	w := Generate(TypeRectangular, 16)
	if len(w) != 16 {
		t.Fatalf("length: got %d, want 16", len(w))
	}
	for i, v := range w {
		if v != 1 {
			t.Errorf("coefficient %d: got %v, want 1", i, v)
		}
	}
}

func TestGenerate_EdgeLengths(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Errorf("length 0: got %v, want nil", w)
	}
	if w := Generate(TypeHann, -4); w != nil {
		t.Errorf("negative length: got %v, want nil", w)
	}

	w := Generate(TypeHann, 1)
	if len(w) != 1 || w[0] != 1 {
		t.Errorf("length 1: got %v, want [1]", w)
	}
}

func TestGenerate_HannSymmetric(t *testing.T) {
	const n = 64
	w := Generate(TypeHann, n)

	if !almostEqual(w[0], 0, 1e-12) || !almostEqual(w[n-1], 0, 1e-12) {
		t.Errorf("endpoints: got %v and %v, want 0", w[0], w[n-1])
	}

	for i := 0; i < n/2; i++ {
		if !almostEqual(w[i], w[n-1-i], 1e-12) {
			t.Errorf("symmetry at %d: %v vs %v", i, w[i], w[n-1-i])
		}
	}

	// Even-length symmetric Hann peaks just below 1 on both middle samples.
	mid := 0.5 - 0.5*math.Cos(2*math.Pi*31/63)
	if !almostEqual(w[31], mid, 1e-12) {
		t.Errorf("midpoint: got %v, want %v", w[31], mid)
	}
	if w[31] >= 1 || w[31] < 0.99 {
		t.Errorf("midpoint out of expected range: %v", w[31])
	}
}

func TestGenerate_PeriodicHann(t *testing.T) {
	const n = 64
	w := Generate(TypeHann, n, WithPeriodic())

	// Periodic form: w[i] = 0.5 - 0.5*cos(2*pi*i/n); peak of exactly 1 at n/2.
	if !almostEqual(w[n/2], 1, 1e-12) {
		t.Errorf("periodic peak: got %v, want 1", w[n/2])
	}
	if !almostEqual(w[0], 0, 1e-12) {
		t.Errorf("periodic start: got %v, want 0", w[0])
	}

	// Periodic coherent gain of a cosine-sum window equals its DC term.
	if cg := CoherentGain(w); !almostEqual(cg, 0.5, 1e-12) {
		t.Errorf("coherent gain: got %v, want 0.5", cg)
	}
}

func TestGenerate_BlackmanHarris(t *testing.T) {
	const n = 128
	w := Generate(TypeBlackmanHarris4Term, n, WithPeriodic())

	// DC term of the 4-term Blackman-Harris coefficient set.
	if cg := CoherentGain(w); !almostEqual(cg, 0.35875, 1e-12) {
		t.Errorf("coherent gain: got %v, want 0.35875", cg)
	}

	// First sample is the alternating coefficient sum, the window's deep
	// edge value.
	edge := 0.35875 - 0.48829 + 0.14128 - 0.01168
	if !almostEqual(w[0], edge, 1e-12) {
		t.Errorf("edge: got %v, want %v", w[0], edge)
	}

	for i, v := range w {
		if v < -1e-12 || v > 1+1e-12 {
			t.Errorf("coefficient %d out of range: %v", i, v)
		}
	}
}

func TestApply(t *testing.T) {
	samples := []float32{1, -1, 0.5, 2}
	coeffs := []float64{0.25, 0.5, 1, 0}
	dst := make([]float64, len(samples))

	Apply(dst, samples, coeffs)

	want := []float64{0.25, -0.5, 0.5, 0}
	for i := range want {
		if !almostEqual(dst[i], want[i], 1e-7) {
			t.Errorf("sample %d: got %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestCoherentGain_Empty(t *testing.T) {
	if cg := CoherentGain(nil); cg != 0 {
		t.Errorf("got %v, want 0", cg)
	}
}
