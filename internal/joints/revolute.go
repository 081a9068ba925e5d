package joints

import (
	"math/rand"

	"github.com/san-kum/mechdyn/internal/spatial"
)

// Revolute rotates about a fixed axis through the joint origin. Axis is a
// unit vector expressed identically in the frames before and after the
// joint at zero configuration.
type Revolute struct {
	Axis spatial.Vec3
}

// NewRevolute returns a revolute joint about the given axis. The axis is
// normalized.
func NewRevolute(axis spatial.Vec3) Revolute {
	return Revolute{Axis: axis.Scale(1 / axis.Norm())}
}

func (Revolute) NQ() int { return 1 }

func (Revolute) NV() int { return 1 }

func (Revolute) String() string { return "revolute" }

func (j Revolute) Transform(after, before spatial.Frame, q []float64) spatial.Transform {
	return spatial.NewTransform(after, before, spatial.AxisAngle(j.Axis, q[0]), spatial.Vec3{})
}

func (j Revolute) Twist(after, before spatial.Frame, q, v []float64) spatial.Twist {
	return spatial.Twist{Body: after, Base: before, Frame: after, Angular: j.Axis.Scale(v[0])}
}

func (j Revolute) BiasAcceleration(after, before spatial.Frame, q, v []float64) spatial.SpatialAcceleration {
	return spatial.ZeroAcceleration(after, before, after)
}

func (j Revolute) MotionSubspace(after, before spatial.Frame, q []float64) spatial.MotionSubspace {
	return spatial.NewMotionSubspace(after, before, after,
		[]spatial.Vec3{j.Axis},
		[]spatial.Vec3{{}})
}

func (j Revolute) ConstraintWrenchSubspace(tf spatial.Transform) spatial.WrenchSubspace {
	u, w := perpBasis(j.Axis)
	return spatial.NewWrenchSubspace(tf.From,
		[]spatial.Vec3{u, w, {}, {}, {}},
		[]spatial.Vec3{{}, {}, u, w, j.Axis})
}

func (Revolute) VelocityToConfigurationDerivative(qdot, q, v []float64) { qdot[0] = v[0] }

func (Revolute) ConfigurationDerivativeToVelocity(v, q, qdot []float64) { v[0] = qdot[0] }

func (Revolute) ZeroConfiguration(q []float64) { q[0] = 0 }

func (Revolute) RandConfiguration(q []float64, rng *rand.Rand) { q[0] = rng.NormFloat64() }

func (Revolute) LocalCoordinates(phi, phid, q0, q, v []float64) {
	phi[0] = q[0] - q0[0]
	phid[0] = v[0]
}

func (Revolute) GlobalCoordinates(q, q0, phi []float64) { q[0] = q0[0] + phi[0] }
