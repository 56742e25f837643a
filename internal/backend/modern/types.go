// Package modern simulates the handle-addressed back-end. Objects are
// referred to by uint64 entity ids and poses use field-per-component
// structs with the quaternion scalar first.
package modern

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/san-kum/kinesim/internal/pose"
)

// Vector3 is the back-end's native 3-vector.
type Vector3 struct {
	X, Y, Z float64
}

// Quaternion is the back-end's native rotation, scalar component first.
type Quaternion struct {
	W, X, Y, Z float64
}

// Pose is the back-end's native rigid transform.
type Pose struct {
	Position    Vector3
	Orientation Quaternion
}

// FromVector copies a neutral translation into the native vector.
func FromVector(v r3.Vector) Vector3 {
	return Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

// ToVector copies a native vector back into the neutral representation.
func ToVector(v Vector3) r3.Vector {
	return r3.Vector{X: v.X, Y: v.Y, Z: v.Z}
}

// FromQuaternion copies a neutral rotation into the native quaternion.
// Components are reinterpreted as-is; no normalization is applied.
func FromQuaternion(q quat.Number) Quaternion {
	return Quaternion{W: q.Real, X: q.Imag, Y: q.Jmag, Z: q.Kmag}
}

// ToQuaternion copies a native quaternion back into the neutral
// representation.
func ToQuaternion(q Quaternion) quat.Number {
	return quat.Number{Real: q.W, Imag: q.X, Jmag: q.Y, Kmag: q.Z}
}

// FromPose converts a neutral rigid transform to a native pose.
func FromPose(p pose.Pose) Pose {
	return Pose{
		Position:    FromVector(p.Translation),
		Orientation: FromQuaternion(p.Rotation),
	}
}

// ToPose reconstructs the neutral rigid transform from a native pose.
func ToPose(p Pose) pose.Pose {
	return pose.Pose{
		Translation: ToVector(p.Position),
		Rotation:    ToQuaternion(p.Orientation),
	}
}
