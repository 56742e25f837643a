// Package classic simulates the name-addressed back-end. Objects are
// referred to by string name and poses use fixed-size arrays with the
// quaternion scalar last, a deliberately different layout from the
// modern back-end.
package classic

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/san-kum/kinesim/internal/pose"
)

// Vec is the back-end's native 3-vector, ordered x, y, z.
type Vec [3]float64

// Quat is the back-end's native rotation, ordered x, y, z, w.
type Quat [4]float64

// Pose is the back-end's native rigid transform.
type Pose struct {
	Pos Vec
	Rot Quat
}

// FromVector copies a neutral translation into the native vector.
func FromVector(v r3.Vector) Vec {
	return Vec{v.X, v.Y, v.Z}
}

// ToVector copies a native vector back into the neutral representation.
func ToVector(v Vec) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// FromQuaternion copies a neutral rotation into the native x,y,z,w
// layout. Components are reinterpreted as-is; no normalization.
func FromQuaternion(q quat.Number) Quat {
	return Quat{q.Imag, q.Jmag, q.Kmag, q.Real}
}

// ToQuaternion copies a native quaternion back into the neutral
// representation.
func ToQuaternion(q Quat) quat.Number {
	return quat.Number{Real: q[3], Imag: q[0], Jmag: q[1], Kmag: q[2]}
}

// FromPose converts a neutral rigid transform to a native pose.
func FromPose(p pose.Pose) Pose {
	return Pose{
		Pos: FromVector(p.Translation),
		Rot: FromQuaternion(p.Rotation),
	}
}

// ToPose reconstructs the neutral rigid transform from a native pose.
func ToPose(p Pose) pose.Pose {
	return pose.Pose{
		Translation: ToVector(p.Pos),
		Rotation:    ToQuaternion(p.Rot),
	}
}
