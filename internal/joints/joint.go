package joints

import (
	"math"
	"math/rand"

	"github.com/san-kum/mechdyn/internal/spatial"
)

// Type is the behavior of a joint kind. Implementations are stateless;
// configuration q and velocity v segments are passed in by the caller and
// have length NQ and NV respectively.
type Type interface {
	// NQ is the number of configuration coordinates.
	NQ() int
	// NV is the number of velocity coordinates.
	NV() int

	String() string

	// Transform returns the transform from after to before at q.
	Transform(after, before spatial.Frame, q []float64) spatial.Transform

	// Twist returns the twist of after w.r.t. before, expressed in after.
	Twist(after, before spatial.Frame, q, v []float64) spatial.Twist

	// BiasAcceleration returns the acceleration of after w.r.t. before at
	// zero joint acceleration, expressed in after.
	BiasAcceleration(after, before spatial.Frame, q, v []float64) spatial.SpatialAcceleration

	// MotionSubspace returns the basis S with Twist = S*v, expressed in
	// after.
	MotionSubspace(after, before spatial.Frame, q []float64) spatial.MotionSubspace

	// ConstraintWrenchSubspace returns the directions in which the joint
	// transmits force, expressed in tf.From, where tf is the joint
	// transform returned by Transform.
	ConstraintWrenchSubspace(tf spatial.Transform) spatial.WrenchSubspace

	// VelocityToConfigurationDerivative writes the time derivative of q
	// for velocity v into qdot.
	VelocityToConfigurationDerivative(qdot, q, v []float64)

	// ConfigurationDerivativeToVelocity inverts
	// VelocityToConfigurationDerivative.
	ConfigurationDerivativeToVelocity(v, q, qdot []float64)

	// ZeroConfiguration writes the reference configuration into q.
	ZeroConfiguration(q []float64)

	// RandConfiguration writes a random configuration into q.
	RandConfiguration(q []float64, rng *rand.Rand)

	// LocalCoordinates writes into phi the coordinates of q in the chart
	// centered at q0, and into phid their rate of change at velocity v.
	// Both have length NV; phi is zero when q equals q0.
	LocalCoordinates(phi, phid, q0, q, v []float64)

	// GlobalCoordinates writes into q the configuration at chart
	// coordinates phi around q0, inverting LocalCoordinates.
	GlobalCoordinates(q, q0, phi []float64)
}

// perpBasis returns two unit vectors completing axis to a right-handed
// orthonormal basis. axis must be a unit vector.
func perpBasis(axis spatial.Vec3) (spatial.Vec3, spatial.Vec3) {
	seed := spatial.Vec3{X: 1}
	if math.Abs(axis.X) > math.Abs(axis.Y) || math.Abs(axis.X) > math.Abs(axis.Z) {
		if math.Abs(axis.Y) <= math.Abs(axis.Z) {
			seed = spatial.Vec3{Y: 1}
		} else {
			seed = spatial.Vec3{Z: 1}
		}
	}
	u := axis.Cross(seed)
	u = u.Scale(1 / u.Norm())
	return u, axis.Cross(u)
}
