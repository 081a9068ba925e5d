package models

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/mechdyn/internal/joints"
	"github.com/san-kum/mechdyn/internal/mechanism"
	"github.com/san-kum/mechdyn/internal/spatial"
)

// RandomTree builds a mechanism of n bodies, each attached to a uniformly
// random predecessor through a random joint, with randomized inertias and
// mounting poses. The same rng sequence always yields the same mechanism,
// which makes it a convenient fuzzing source for sweep tooling.
func RandomTree(rng *rand.Rand, n int) *mechanism.Mechanism {
	m := mechanism.New("world")
	bodies := []*mechanism.RigidBody{m.Root()}
	for i := 0; i < n; i++ {
		mass := 0.2 + 1.5*rng.Float64()
		com := spatial.Vec3{
			X: 0.2 * (rng.Float64() - 0.5),
			Y: 0.2 * (rng.Float64() - 0.5),
			Z: 0.2 * (rng.Float64() - 0.5),
		}
		moment := spatial.Mat33{
			{0.002 + 0.05*rng.Float64(), 0, 0},
			{0, 0.002 + 0.05*rng.Float64(), 0},
			{0, 0, 0.002 + 0.05*rng.Float64()},
		}
		b := mechanism.NewBody(fmt.Sprintf("body%d", i+1), mass, com, moment)
		pred := bodies[rng.Intn(len(bodies))]
		j := mechanism.NewJoint(fmt.Sprintf("joint%d", i+1), randomJointType(rng))
		pose := spatial.NewTransform(j.FrameBefore(), pred.Frame(),
			spatial.AxisAngle(randAxis(rng), 2*(rng.Float64()-0.5)),
			spatial.Vec3{
				X: 0.5 * (rng.Float64() - 0.5),
				Y: 0.5 * (rng.Float64() - 0.5),
				Z: 0.5 * (rng.Float64() - 0.5),
			})
		attach(m, pred, b, j, pose)
		bodies = append(bodies, b)
	}
	return m
}

func randomJointType(rng *rand.Rand) joints.Type {
	switch rng.Intn(6) {
	case 0, 1:
		return joints.NewRevolute(randAxis(rng))
	case 2:
		return joints.NewPrismatic(randAxis(rng))
	case 3:
		return joints.NewPlanar(spatial.Vec3{X: 1}, spatial.Vec3{Y: 1})
	case 4:
		return joints.Fixed{}
	default:
		return joints.QuaternionFloating{}
	}
}

func randAxis(rng *rand.Rand) spatial.Vec3 {
	return spatial.RandQuat(rng).Rotate(spatial.Vec3{Z: 1})
}
