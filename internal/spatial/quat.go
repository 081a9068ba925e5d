package spatial

import (
	"math"
	"math/rand"
)

// Quat is a unit quaternion (W scalar part first) representing a rotation.
type Quat struct {
	W, X, Y, Z float64
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat { return Quat{W: 1} }

// QuatFromAxisAngle returns the rotation of angle radians about the unit axis.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	s, c := math.Sincos(angle / 2)
	return Quat{W: c, X: s * axis.X, Y: s * axis.Y, Z: s * axis.Z}
}

// Mul returns the Hamilton product q*o (apply o first, then q).
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

func (q Quat) Conj() Quat { return Quat{q.W, -q.X, -q.Y, -q.Z} }

func (q Quat) Norm() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalize returns q scaled to unit norm. The identity is returned for a
// degenerate zero quaternion.
func (q Quat) Normalize() Quat {
	n := q.Norm()
	if n == 0 {
		return QuatIdentity()
	}
	inv := 1 / n
	return Quat{q.W * inv, q.X * inv, q.Y * inv, q.Z * inv}
}

// Rotate applies the rotation to a vector.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + 2 q_v × (q_v × v + w v)
	qv := Vec3{q.X, q.Y, q.Z}
	t := qv.Cross(v).Add(v.Scale(q.W))
	return v.Add(qv.Cross(t).Scale(2))
}

// Mat returns the equivalent rotation matrix.
func (q Quat) Mat() Mat33 {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	return Mat33{
		{1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y)},
		{2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x)},
		{2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y)},
	}
}

// QuatExp maps a rotation vector φ to the unit quaternion exp(φ/2).
// Uses a series expansion near zero to stay exact as φ → 0.
func QuatExp(phi Vec3) Quat {
	theta := phi.Norm()
	var s float64
	if theta < 1e-8 {
		// sin(θ/2)/θ ≈ 1/2 - θ²/48
		s = 0.5 - theta*theta/48
	} else {
		s = math.Sin(theta/2) / theta
	}
	return Quat{W: math.Cos(theta / 2), X: s * phi.X, Y: s * phi.Y, Z: s * phi.Z}
}

// Log maps the quaternion to its rotation vector (inverse of QuatExp up to
// the 2π ambiguity). The shortest representative is returned: Log always
// treats q and -q as the same rotation.
func (q Quat) Log() Vec3 {
	if q.W < 0 {
		q = Quat{-q.W, -q.X, -q.Y, -q.Z}
	}
	qv := Vec3{q.X, q.Y, q.Z}
	vn := qv.Norm()
	if vn < 1e-12 {
		return qv.Scale(2)
	}
	theta := 2 * math.Atan2(vn, q.W)
	return qv.Scale(theta / vn)
}

// TimeDerivative returns q̇ for a body-frame angular velocity ω:
// q̇ = ½ q ⊗ (0, ω).
func (q Quat) TimeDerivative(omega Vec3) Quat {
	h := q.Mul(Quat{W: 0, X: omega.X, Y: omega.Y, Z: omega.Z})
	return Quat{h.W / 2, h.X / 2, h.Y / 2, h.Z / 2}
}

// RandQuat draws a rotation uniformly at random.
func RandQuat(rng *rand.Rand) Quat {
	q := Quat{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
	return q.Normalize()
}
