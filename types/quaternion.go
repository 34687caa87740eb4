package types

import "github.com/go-gl/mathgl/mgl32"

// Quat is a rotation quaternion. All operations delegate to mgl32.
type Quat struct {
	V Vec3
	W float32
}

func quatFromMgl(q mgl32.Quat) Quat {
	return Quat{V: Vec3(q.V), W: q.W}
}

func (q Quat) mgl() mgl32.Quat {
	return mgl32.Quat{W: q.W, V: mgl32.Vec3(q.V)}
}

// Create identity quaternion.
func QuatIdent() Quat {
	return quatFromMgl(mgl32.QuatIdent())
}

// Create a quaternion from an axis vector and an angle in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	return quatFromMgl(mgl32.QuatRotate(angle, mgl32.Vec3(axis.Normalize())))
}

// Rotates a vector by the rotation this quaternion represents.
func (q Quat) Rotate(v Vec3) Vec3 {
	return Vec3(q.mgl().Rotate(mgl32.Vec3(v)))
}

// Multiplies two quaternions. Multiplication is not commutative.
func (q Quat) Mul(q2 Quat) Quat {
	return quatFromMgl(q.mgl().Mul(q2.mgl()))
}

// Returns the quaternion norm.
func (q Quat) Len() float32 {
	return q.mgl().Len()
}

// Normalizes the quaternion. The zero quaternion normalizes to the identity.
func (q Quat) Normalize() Quat {
	if q.Len() == 0 {
		return QuatIdent()
	}
	return quatFromMgl(q.mgl().Normalize())
}

// The inverse of a quaternion.
func (q Quat) Inverse() Quat {
	return quatFromMgl(q.mgl().Inverse())
}

// Returns the homogeneous 3D rotation matrix corresponding to the quaternion.
func (q Quat) Mat4() Mat4 {
	return Mat4(q.mgl().Mat4())
}
