// Package pose defines the back-end-neutral rigid transform used by the
// drive loop. Control code works only in this representation; the
// backend packages convert to and from their native pose types.
package pose

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose is a rigid transform: a translation plus a rotation quaternion.
// Poses are ephemeral values, produced and consumed per conversion call.
type Pose struct {
	Translation r3.Vector
	Rotation    quat.Number
}

// Identity returns the identity transform.
func Identity() Pose {
	return Pose{Rotation: quat.Number{Real: 1}}
}

// New builds a pose from a translation and a rotation.
func New(t r3.Vector, q quat.Number) Pose {
	return Pose{Translation: t, Rotation: q}
}

// SameRotation reports whether two quaternions represent the same
// physical rotation within tol, ignoring the sign ambiguity of the
// double cover (q and -q rotate identically).
func SameRotation(a, b quat.Number, tol float64) bool {
	dot := a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
	return math.Abs(math.Abs(dot)-1) <= tol
}
