package vecmat

import (
	"math"
	"math/rand"
	"testing"
)

func TestCrossAntisymmetry(t *testing.T) {
	pairs := []struct{ a, b Vector3 }{
		{New(1, 2, 3), New(4, 5, 6)},
		{New(-1, 0, 2), New(0.5, -3, 1)},
		{New(0, 0, 1), New(1, 0, 0)},
	}
	for _, p := range pairs {
		ab := p.a.Cross(p.b)
		ba := p.b.Cross(p.a)
		if ab != ba.Scale(-1) {
			t.Errorf("a x b = %v, -(b x a) = %v", ab, ba.Scale(-1))
		}
	}
}

func TestDotSymmetry(t *testing.T) {
	a := New(1.5, -2, 0.25)
	b := New(-3, 7, 2)
	if a.Dot(b) != b.Dot(a) {
		t.Errorf("dot not symmetric: %v vs %v", a.Dot(b), b.Dot(a))
	}
	if got := a.Dot(b); got != 1.5*-3+-2*7+0.25*2 {
		t.Errorf("dot = %v", got)
	}
}

func TestNormNonNegative(t *testing.T) {
	vs := []Vector3{New(0, 0, 0), New(-1, -1, -1), New(3, -4, 0)}
	for _, v := range vs {
		if v.Norm() < 0 {
			t.Errorf("norm(%v) = %v < 0", v, v.Norm())
		}
	}
	if got := New(3, -4, 0).Norm(); got != 5 {
		t.Errorf("norm = %v, want 5", got)
	}
}

func TestNormalized(t *testing.T) {
	v := New(2, -3, 6).Normalized()
	if math.Abs(v.Norm()-1) > 1e-12 {
		t.Errorf("normalized norm = %v", v.Norm())
	}

	// zero vector stays zero
	z := New(0, 0, 0).Normalized()
	if z != (Vector3{}) {
		t.Errorf("normalize(0) = %v", z)
	}
}

func TestUnitPresets(t *testing.T) {
	cases := []struct {
		dir  string
		want Vector3
	}{
		{"+x", New(1, 0, 0)},
		{"-x", New(-1, 0, 0)},
		{"+y", New(0, 1, 0)},
		{"-y", New(0, -1, 0)},
		{"+z", New(0, 0, 1)},
		{"-z", New(0, 0, -1)},
	}
	for _, c := range cases {
		got, err := Unit(c.dir)
		if err != nil {
			t.Fatalf("Unit(%q): %v", c.dir, err)
		}
		if got != c.want {
			t.Errorf("Unit(%q) = %v, want %v", c.dir, got, c.want)
		}
	}

	if _, err := Unit("up"); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestRandomUnit(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		v := RandomUnit(rng)
		if math.Abs(v.Norm()-1) > 1e-12 {
			t.Fatalf("sample %d: norm = %v", i, v.Norm())
		}
	}
}

func TestAddAssign(t *testing.T) {
	v := New(1, 1, 1)
	v.AddAssign(New(0, 2, -1))
	if v != New(1, 3, 0) {
		t.Errorf("got %v", v)
	}
}
