package pose

import (
	"testing"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

func TestIdentity(t *testing.T) {
	p := Identity()
	if p.Translation != (r3.Vector{}) {
		t.Errorf("identity translation = %v, want zero", p.Translation)
	}
	if p.Rotation != (quat.Number{Real: 1}) {
		t.Errorf("identity rotation = %v, want unit real", p.Rotation)
	}
}

func TestSameRotation(t *testing.T) {
	q := quat.Number{Real: 0.5, Imag: 0.5, Jmag: 0.5, Kmag: 0.5}
	neg := quat.Number{Real: -0.5, Imag: -0.5, Jmag: -0.5, Kmag: -0.5}
	other := quat.Number{Real: 1}

	if !SameRotation(q, q, 1e-12) {
		t.Error("quaternion should match itself")
	}
	if !SameRotation(q, neg, 1e-12) {
		t.Error("negated quaternion is the same physical rotation")
	}
	if SameRotation(q, other, 1e-9) {
		t.Error("distinct rotations should not match")
	}
}
