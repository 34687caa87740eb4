package types

import (
	"math"
	"testing"
)

func TestComposeAndInvert(t *testing.T) {
	type spec struct {
		pos   Vec3
		rot   Quat
		scale Vec3
	}
	specs := []spec{
		{XYZ(0, 0, 0), QuatIdent(), XYZ(1, 1, 1)},
		{XYZ(5, 0, 0), QuatIdent(), XYZ(1, 1, 1)},
		{XYZ(1, -2, 3), QuatFromAxisAngle(XYZ(0, 1, 0), math.Pi/4), XYZ(2, 1, 0.5)},
	}

	for index, s := range specs {
		m := Compose4(s.pos, s.rot, s.scale)
		if got := m.Mul4(m.Inv()); !got.ApproxEqual(Ident4(), 1e-5) {
			t.Fatalf("[spec %d] expected M * M^-1 to be identity; got %v", index, got)
		}
		if got := m.Translation(); got != s.pos {
			t.Fatalf("[spec %d] expected translation %v; got %v", index, s.pos, got)
		}
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate4(XYZ(5, 0, 0))
	got := m.TransformPoint(XYZ(1, 2, 3))
	if exp := XYZ(6, 2, 3); got != exp {
		t.Fatalf("expected %v; got %v", exp, got)
	}

	got = m.Inv().TransformPoint(XYZ(6, 2, 3))
	if exp := XYZ(1, 2, 3); !got.ApproxEqual(exp, 1e-6) {
		t.Fatalf("expected inverse to map back to %v; got %v", exp, got)
	}
}

func TestSingularInverse(t *testing.T) {
	m := Scale4(XYZ(0, 1, 1))
	if got := m.Inv(); got != (Mat4{}) {
		t.Fatalf("expected singular matrix to invert to the zero matrix; got %v", got)
	}
}

func TestQuatRotate(t *testing.T) {
	q := QuatFromAxisAngle(XYZ(0, 0, 1), math.Pi/2)
	got := q.Rotate(XYZ(1, 0, 0))
	if exp := XYZ(0, 1, 0); !got.ApproxEqual(exp, 1e-6) {
		t.Fatalf("expected %v; got %v", exp, got)
	}

	if got := q.Mat4().TransformPoint(XYZ(1, 0, 0)); !got.ApproxEqual(XYZ(0, 1, 0), 1e-6) {
		t.Fatalf("expected matrix rotation to match quaternion rotation; got %v", got)
	}
}

func TestVectorMinMax(t *testing.T) {
	a := XYZ(1, -2, 3)
	b := XYZ(-1, 2, 0)
	if got, exp := MinVec3(a, b), XYZ(-1, -2, 0); got != exp {
		t.Fatalf("expected min %v; got %v", exp, got)
	}
	if got, exp := MaxVec3(a, b), XYZ(1, 2, 3); got != exp {
		t.Fatalf("expected max %v; got %v", exp, got)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Fatalf("expected zero vector to normalize to zero; got %v", got)
	}
}
