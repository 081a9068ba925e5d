package joints

import (
	"math"
	"math/rand"

	"github.com/san-kum/mechdyn/internal/spatial"
)

// Planar allows translation in a plane and rotation about its normal. The
// configuration is (x, y, theta): coordinates along XAxis and YAxis in the
// frame before the joint, plus the rotation angle about RotAxis. The
// linear velocity coordinates are expressed along the axes of the frame
// after the joint.
type Planar struct {
	XAxis, YAxis, RotAxis spatial.Vec3
}

// NewPlanar returns a planar joint in the plane spanned by x and y. x is
// normalized and y is orthogonalized against it.
func NewPlanar(x, y spatial.Vec3) Planar {
	x = x.Scale(1 / x.Norm())
	y = y.Sub(x.Scale(y.Dot(x)))
	y = y.Scale(1 / y.Norm())
	return Planar{XAxis: x, YAxis: y, RotAxis: x.Cross(y)}
}

func (Planar) NQ() int { return 3 }

func (Planar) NV() int { return 3 }

func (Planar) String() string { return "planar" }

func (j Planar) Transform(after, before spatial.Frame, q []float64) spatial.Transform {
	trans := j.XAxis.Scale(q[0]).Add(j.YAxis.Scale(q[1]))
	return spatial.NewTransform(after, before, spatial.AxisAngle(j.RotAxis, q[2]), trans)
}

func (j Planar) Twist(after, before spatial.Frame, q, v []float64) spatial.Twist {
	return spatial.Twist{
		Body: after, Base: before, Frame: after,
		Angular: j.RotAxis.Scale(v[2]),
		Linear:  j.XAxis.Scale(v[0]).Add(j.YAxis.Scale(v[1])),
	}
}

func (j Planar) BiasAcceleration(after, before spatial.Frame, q, v []float64) spatial.SpatialAcceleration {
	return spatial.ZeroAcceleration(after, before, after)
}

func (j Planar) MotionSubspace(after, before spatial.Frame, q []float64) spatial.MotionSubspace {
	return spatial.NewMotionSubspace(after, before, after,
		[]spatial.Vec3{{}, {}, j.RotAxis},
		[]spatial.Vec3{j.XAxis, j.YAxis, {}})
}

func (j Planar) ConstraintWrenchSubspace(tf spatial.Transform) spatial.WrenchSubspace {
	return spatial.NewWrenchSubspace(tf.From,
		[]spatial.Vec3{j.XAxis, j.YAxis, {}},
		[]spatial.Vec3{{}, {}, j.RotAxis})
}

func (j Planar) VelocityToConfigurationDerivative(qdot, q, v []float64) {
	s, c := math.Sincos(q[2])
	qdot[0] = c*v[0] - s*v[1]
	qdot[1] = s*v[0] + c*v[1]
	qdot[2] = v[2]
}

func (j Planar) ConfigurationDerivativeToVelocity(v, q, qdot []float64) {
	s, c := math.Sincos(q[2])
	v[0] = c*qdot[0] + s*qdot[1]
	v[1] = -s*qdot[0] + c*qdot[1]
	v[2] = qdot[2]
}

func (Planar) ZeroConfiguration(q []float64) {
	q[0], q[1], q[2] = 0, 0, 0
}

func (Planar) RandConfiguration(q []float64, rng *rand.Rand) {
	q[0], q[1], q[2] = rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()
}

func (j Planar) LocalCoordinates(phi, phid, q0, q, v []float64) {
	phi[0] = q[0] - q0[0]
	phi[1] = q[1] - q0[1]
	phi[2] = q[2] - q0[2]
	j.VelocityToConfigurationDerivative(phid, q, v)
}

func (Planar) GlobalCoordinates(q, q0, phi []float64) {
	q[0] = q0[0] + phi[0]
	q[1] = q0[1] + phi[1]
	q[2] = q0[2] + phi[2]
}
