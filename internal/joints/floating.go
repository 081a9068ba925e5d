package joints

import (
	"math"
	"math/rand"

	"github.com/san-kum/mechdyn/internal/spatial"
)

// QuaternionFloating allows free motion in all six degrees of freedom. The
// configuration is a unit quaternion (w, x, y, z) giving the orientation of
// the frame after the joint in the frame before it, followed by the
// position of the after frame's origin expressed in the before frame. The
// velocity is the angular and then linear velocity, both expressed in the
// after frame.
type QuaternionFloating struct{}

func (QuaternionFloating) NQ() int { return 7 }

func (QuaternionFloating) NV() int { return 6 }

func (QuaternionFloating) String() string { return "floating" }

func quatOf(q []float64) spatial.Quat {
	return spatial.Quat{W: q[0], X: q[1], Y: q[2], Z: q[3]}
}

func transOf(q []float64) spatial.Vec3 {
	return spatial.Vec3{X: q[4], Y: q[5], Z: q[6]}
}

func (QuaternionFloating) Transform(after, before spatial.Frame, q []float64) spatial.Transform {
	return spatial.NewTransform(after, before, quatOf(q).Mat(), transOf(q))
}

func (QuaternionFloating) Twist(after, before spatial.Frame, q, v []float64) spatial.Twist {
	return spatial.Twist{
		Body: after, Base: before, Frame: after,
		Angular: spatial.Vec3{X: v[0], Y: v[1], Z: v[2]},
		Linear:  spatial.Vec3{X: v[3], Y: v[4], Z: v[5]},
	}
}

func (QuaternionFloating) BiasAcceleration(after, before spatial.Frame, q, v []float64) spatial.SpatialAcceleration {
	return spatial.ZeroAcceleration(after, before, after)
}

func (QuaternionFloating) MotionSubspace(after, before spatial.Frame, q []float64) spatial.MotionSubspace {
	ex := spatial.Vec3{X: 1}
	ey := spatial.Vec3{Y: 1}
	ez := spatial.Vec3{Z: 1}
	return spatial.NewMotionSubspace(after, before, after,
		[]spatial.Vec3{ex, ey, ez, {}, {}, {}},
		[]spatial.Vec3{{}, {}, {}, ex, ey, ez})
}

func (QuaternionFloating) ConstraintWrenchSubspace(tf spatial.Transform) spatial.WrenchSubspace {
	return spatial.NewWrenchSubspace(tf.From, nil, nil)
}

func (QuaternionFloating) VelocityToConfigurationDerivative(qdot, q, v []float64) {
	quat := quatOf(q)
	omega := spatial.Vec3{X: v[0], Y: v[1], Z: v[2]}
	dq := quat.TimeDerivative(omega)
	qdot[0], qdot[1], qdot[2], qdot[3] = dq.W, dq.X, dq.Y, dq.Z

	// Linear velocity is body-fixed; the translation rate lives in the
	// frame before the joint.
	dp := quat.Rotate(spatial.Vec3{X: v[3], Y: v[4], Z: v[5]})
	qdot[4], qdot[5], qdot[6] = dp.X, dp.Y, dp.Z
}

func (QuaternionFloating) ConfigurationDerivativeToVelocity(v, q, qdot []float64) {
	quat := quatOf(q)
	dq := spatial.Quat{W: qdot[0], X: qdot[1], Y: qdot[2], Z: qdot[3]}
	w := quat.Conj().Mul(dq)
	v[0], v[1], v[2] = 2*w.X, 2*w.Y, 2*w.Z

	dp := quat.Conj().Rotate(spatial.Vec3{X: qdot[4], Y: qdot[5], Z: qdot[6]})
	v[3], v[4], v[5] = dp.X, dp.Y, dp.Z
}

func (QuaternionFloating) ZeroConfiguration(q []float64) {
	q[0] = 1
	for i := 1; i < 7; i++ {
		q[i] = 0
	}
}

func (QuaternionFloating) RandConfiguration(q []float64, rng *rand.Rand) {
	quat := spatial.RandQuat(rng)
	q[0], q[1], q[2], q[3] = quat.W, quat.X, quat.Y, quat.Z
	q[4], q[5], q[6] = rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()
}

func (QuaternionFloating) LocalCoordinates(phi, phid, q0, q, v []float64) {
	quat0 := quatOf(q0)
	rot := quat0.Conj().Mul(quatOf(q)).Log()
	phi[0], phi[1], phi[2] = rot.X, rot.Y, rot.Z

	trans := quat0.Conj().Rotate(transOf(q).Sub(transOf(q0)))
	phi[3], phi[4], phi[5] = trans.X, trans.Y, trans.Z

	// Rotation vector rate: the inverse right Jacobian of the exponential
	// map applied to the body angular velocity.
	omega := spatial.Vec3{X: v[0], Y: v[1], Z: v[2]}
	drot := invRightJacobian(rot, omega)
	phid[0], phid[1], phid[2] = drot.X, drot.Y, drot.Z

	dtrans := spatial.QuatExp(rot).Rotate(spatial.Vec3{X: v[3], Y: v[4], Z: v[5]})
	phid[3], phid[4], phid[5] = dtrans.X, dtrans.Y, dtrans.Z
}

// invRightJacobian computes Jr(phi)^-1 * omega, the rate of the rotation
// vector phi under body angular velocity omega.
func invRightJacobian(phi, omega spatial.Vec3) spatial.Vec3 {
	theta := phi.Norm()
	var beta float64
	if theta < 1e-4 {
		beta = 1.0/12 + theta*theta/720
	} else {
		beta = 1/(theta*theta) - (1+math.Cos(theta))/(2*theta*math.Sin(theta))
	}
	out := omega.Add(phi.Cross(omega).Scale(0.5))
	return out.Add(phi.Cross(phi.Cross(omega)).Scale(beta))
}

func (QuaternionFloating) GlobalCoordinates(q, q0, phi []float64) {
	quat0 := quatOf(q0)
	quat := quat0.Mul(spatial.QuatExp(spatial.Vec3{X: phi[0], Y: phi[1], Z: phi[2]}))
	q[0], q[1], q[2], q[3] = quat.W, quat.X, quat.Y, quat.Z

	trans := transOf(q0).Add(quat0.Rotate(spatial.Vec3{X: phi[3], Y: phi[4], Z: phi[5]}))
	q[4], q[5], q[6] = trans.X, trans.Y, trans.Z
}
