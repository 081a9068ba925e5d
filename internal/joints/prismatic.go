package joints

import (
	"math/rand"

	"github.com/san-kum/mechdyn/internal/spatial"
)

// Prismatic slides along a fixed axis without rotating.
type Prismatic struct {
	Axis spatial.Vec3
}

// NewPrismatic returns a prismatic joint along the given axis. The axis is
// normalized.
func NewPrismatic(axis spatial.Vec3) Prismatic {
	return Prismatic{Axis: axis.Scale(1 / axis.Norm())}
}

func (Prismatic) NQ() int { return 1 }

func (Prismatic) NV() int { return 1 }

func (Prismatic) String() string { return "prismatic" }

func (j Prismatic) Transform(after, before spatial.Frame, q []float64) spatial.Transform {
	return spatial.NewTransform(after, before, spatial.Identity3(), j.Axis.Scale(q[0]))
}

func (j Prismatic) Twist(after, before spatial.Frame, q, v []float64) spatial.Twist {
	return spatial.Twist{Body: after, Base: before, Frame: after, Linear: j.Axis.Scale(v[0])}
}

func (j Prismatic) BiasAcceleration(after, before spatial.Frame, q, v []float64) spatial.SpatialAcceleration {
	return spatial.ZeroAcceleration(after, before, after)
}

func (j Prismatic) MotionSubspace(after, before spatial.Frame, q []float64) spatial.MotionSubspace {
	return spatial.NewMotionSubspace(after, before, after,
		[]spatial.Vec3{{}},
		[]spatial.Vec3{j.Axis})
}

func (j Prismatic) ConstraintWrenchSubspace(tf spatial.Transform) spatial.WrenchSubspace {
	u, w := perpBasis(j.Axis)
	return spatial.NewWrenchSubspace(tf.From,
		[]spatial.Vec3{u, w, j.Axis, {}, {}},
		[]spatial.Vec3{{}, {}, {}, u, w})
}

func (Prismatic) VelocityToConfigurationDerivative(qdot, q, v []float64) { qdot[0] = v[0] }

func (Prismatic) ConfigurationDerivativeToVelocity(v, q, qdot []float64) { v[0] = qdot[0] }

func (Prismatic) ZeroConfiguration(q []float64) { q[0] = 0 }

func (Prismatic) RandConfiguration(q []float64, rng *rand.Rand) { q[0] = rng.NormFloat64() }

func (Prismatic) LocalCoordinates(phi, phid, q0, q, v []float64) {
	phi[0] = q[0] - q0[0]
	phid[0] = v[0]
}

func (Prismatic) GlobalCoordinates(q, q0, phi []float64) { q[0] = q0[0] + phi[0] }
