package joints

import (
	"math/rand"

	"github.com/san-kum/mechdyn/internal/spatial"
)

// Fixed allows no relative motion. Useful for welding bodies together and
// for closing kinematic loops rigidly.
type Fixed struct{}

func (Fixed) NQ() int { return 0 }

func (Fixed) NV() int { return 0 }

func (Fixed) String() string { return "fixed" }

func (Fixed) Transform(after, before spatial.Frame, q []float64) spatial.Transform {
	return spatial.Identity(after, before)
}

func (Fixed) Twist(after, before spatial.Frame, q, v []float64) spatial.Twist {
	return spatial.ZeroTwist(after, before, after)
}

func (Fixed) BiasAcceleration(after, before spatial.Frame, q, v []float64) spatial.SpatialAcceleration {
	return spatial.ZeroAcceleration(after, before, after)
}

func (Fixed) MotionSubspace(after, before spatial.Frame, q []float64) spatial.MotionSubspace {
	return spatial.NewMotionSubspace(after, before, after, nil, nil)
}

func (Fixed) ConstraintWrenchSubspace(tf spatial.Transform) spatial.WrenchSubspace {
	ex := spatial.Vec3{X: 1}
	ey := spatial.Vec3{Y: 1}
	ez := spatial.Vec3{Z: 1}
	return spatial.NewWrenchSubspace(tf.From,
		[]spatial.Vec3{ex, ey, ez, {}, {}, {}},
		[]spatial.Vec3{{}, {}, {}, ex, ey, ez})
}

func (Fixed) VelocityToConfigurationDerivative(qdot, q, v []float64) {}

func (Fixed) ConfigurationDerivativeToVelocity(v, q, qdot []float64) {}

func (Fixed) ZeroConfiguration(q []float64) {}

func (Fixed) RandConfiguration(q []float64, rng *rand.Rand) {}

func (Fixed) LocalCoordinates(phi, phid, q0, q, v []float64) {}

func (Fixed) GlobalCoordinates(q, q0, phi []float64) {}
