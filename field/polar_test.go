package field

import "testing"

func TestConstIsUniform(t *testing.T) {
	f := Const(0.5)
	for a := 0; a < GridSize; a++ {
		for b := 0; b < GridSize; b++ {
			if f[a][b] != 0.5 {
				t.Fatalf("Const(0.5)[%d][%d] = %v, want 0.5", a, b, f[a][b])
			}
		}
	}
}

func TestMeanOfConst(t *testing.T) {
	f := Const(0.25)
	if got := f.Mean(); got != 0.25 {
		t.Errorf("Mean() = %v, want 0.25", got)
	}
}

func TestLerpEndpoints(t *testing.T) {
	f := Const(0.0)
	g := Const(1.0)

	if got := Lerp(f, g, 0); got.Mean() != 0 {
		t.Errorf("Lerp t=0 mean = %v, want 0", got.Mean())
	}
	if got := Lerp(f, g, 1); got.Mean() != 1 {
		t.Errorf("Lerp t=1 mean = %v, want 1", got.Mean())
	}
	mid := Lerp(f, g, 0.5)
	if got := mid.Mean(); got != 0.5 {
		t.Errorf("Lerp t=0.5 mean = %v, want 0.5", got)
	}
}

func TestIsFiniteRejectsNaN(t *testing.T) {
	f := Const(0.0)
	f[3][4] = nan()
	if f.IsFinite() {
		t.Error("IsFinite() = true for field containing NaN")
	}
}

func TestInRange(t *testing.T) {
	f := Const(0.5)
	if !f.InRange(0, 1) {
		t.Error("InRange(0,1) = false for const(0.5)")
	}
	f[0][0] = 1.5
	if f.InRange(0, 1) {
		t.Error("InRange(0,1) = true for field with out-of-range entry")
	}
}

func nan() Scalar {
	var zero Scalar
	return zero / zero
}
