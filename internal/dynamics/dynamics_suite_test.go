package dynamics_test

import (
	"math/rand"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mechdyn/internal/joints"
	"github.com/san-kum/mechdyn/internal/mechanism"
	"github.com/san-kum/mechdyn/internal/spatial"
	"github.com/san-kum/mechdyn/internal/state"
)

func TestDynamics(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dynamics Suite")
}

const (
	rodMass = 1.2
	rodLen  = 0.6
)

func rodInertia(mass, length float64) spatial.Mat33 {
	i := mass * length * length / 12
	return spatial.Mat33{{i, 0, 0}, {0, i, 0}, {0, 0, 2e-3}}
}

func mustAttach(m *mechanism.Mechanism, pred, succ *mechanism.RigidBody, j *mechanism.Joint, pose spatial.Transform) {
	if err := m.Attach(pred, succ, j, pose); err != nil {
		panic(err)
	}
}

// pendulum hangs a single uniform rod from the world, swinging about y.
func pendulum() *mechanism.Mechanism {
	m := mechanism.New("world")
	rod := mechanism.NewBody("rod", rodMass, spatial.Vec3{Z: -rodLen / 2}, rodInertia(rodMass, rodLen))
	pivot := mechanism.NewJoint("pivot", joints.NewRevolute(spatial.Vec3{Y: 1}))
	mustAttach(m, m.Root(), rod, pivot, spatial.Identity(pivot.FrameBefore(), m.RootFrame()))
	return m
}

// doublePendulum chains two identical rods, both swinging about y.
func doublePendulum() *mechanism.Mechanism {
	m := mechanism.New("world")
	upper := mechanism.NewBody("upper", rodMass, spatial.Vec3{Z: -rodLen / 2}, rodInertia(rodMass, rodLen))
	lower := mechanism.NewBody("lower", rodMass, spatial.Vec3{Z: -rodLen / 2}, rodInertia(rodMass, rodLen))
	shoulder := mechanism.NewJoint("shoulder", joints.NewRevolute(spatial.Vec3{Y: 1}))
	elbow := mechanism.NewJoint("elbow", joints.NewRevolute(spatial.Vec3{Y: 1}))
	mustAttach(m, m.Root(), upper, shoulder, spatial.Identity(shoulder.FrameBefore(), m.RootFrame()))
	mustAttach(m, upper, lower, elbow,
		spatial.NewTransform(elbow.FrameBefore(), upper.Frame(), spatial.Identity3(), spatial.Vec3{Z: -rodLen}))
	return m
}

// rig chains one joint of every kind behind a floating base, with rotated
// and offset mounts. Every body carries inertia so the mass matrix stays
// positive definite.
func rig() *mechanism.Mechanism {
	m := mechanism.New("world")
	torso := mechanism.NewBody("torso", 3.2, spatial.Vec3{X: 0.03, Z: 0.12},
		spatial.Mat33{{0.24, 0, 0}, {0, 0.21, 0}, {0, 0, 0.17}})
	arm := mechanism.NewBody("arm", 0.9, spatial.Vec3{Z: -0.18}, rodInertia(0.9, 0.36))
	hand := mechanism.NewBody("hand", 0.4, spatial.Vec3{X: 0.02},
		spatial.Mat33{{0.008, 0, 0}, {0, 0.009, 0}, {0, 0, 0.007}})
	pad := mechanism.NewBody("pad", 0.25, spatial.Vec3{Y: 0.01},
		spatial.Mat33{{0.003, 0, 0}, {0, 0.003, 0}, {0, 0, 0.005}})
	tip := mechanism.NewBody("tip", 0.08, spatial.Vec3{},
		spatial.Mat33{{0.0012, 0, 0}, {0, 0.0012, 0}, {0, 0, 0.0009}})

	free := mechanism.NewJoint("free", joints.QuaternionFloating{})
	shoulder := mechanism.NewJoint("shoulder", joints.NewRevolute(spatial.Vec3{X: 2, Y: 1, Z: 2}))
	slide := mechanism.NewJoint("slide", joints.NewPrismatic(spatial.Vec3{Z: 1}))
	glide := mechanism.NewJoint("glide", joints.NewPlanar(spatial.Vec3{X: 1}, spatial.Vec3{Y: 1}))
	weld := mechanism.NewJoint("weld", joints.Fixed{})

	mustAttach(m, m.Root(), torso, free, spatial.Identity(free.FrameBefore(), m.RootFrame()))
	mustAttach(m, torso, arm, shoulder,
		spatial.NewTransform(shoulder.FrameBefore(), torso.Frame(),
			spatial.AxisAngle(spatial.Vec3{X: 1}, 0.4), spatial.Vec3{X: 0.08, Z: 0.2}))
	mustAttach(m, arm, hand, slide,
		spatial.NewTransform(slide.FrameBefore(), arm.Frame(),
			spatial.AxisAngle(spatial.Vec3{Y: 1}, -0.25), spatial.Vec3{Z: -0.36}))
	mustAttach(m, hand, pad, glide,
		spatial.NewTransform(glide.FrameBefore(), hand.Frame(), spatial.Identity3(), spatial.Vec3{X: 0.04}))
	mustAttach(m, pad, tip, weld,
		spatial.NewTransform(weld.FrameBefore(), pad.Frame(),
			spatial.AxisAngle(spatial.Vec3{Z: 1}, 0.6), spatial.Vec3{Y: 0.02, Z: -0.05}))
	return m
}

// fourBar closes a planar loop: two pivots on the world coupled through a
// third revolute joint.
func fourBar() *mechanism.Mechanism {
	m := mechanism.New("world")
	crank := mechanism.NewBody("crank", 0.8, spatial.Vec3{Z: -0.15}, rodInertia(0.8, 0.3))
	rocker := mechanism.NewBody("rocker", 0.9, spatial.Vec3{Z: -0.2}, rodInertia(0.9, 0.4))
	crankPivot := mechanism.NewJoint("crank_pivot", joints.NewRevolute(spatial.Vec3{Y: 1}))
	rockerPivot := mechanism.NewJoint("rocker_pivot", joints.NewRevolute(spatial.Vec3{Y: 1}))
	coupler := mechanism.NewJoint("coupler", joints.NewRevolute(spatial.Vec3{Y: 1}))
	mustAttach(m, m.Root(), crank, crankPivot, spatial.Identity(crankPivot.FrameBefore(), m.RootFrame()))
	mustAttach(m, m.Root(), rocker, rockerPivot,
		spatial.NewTransform(rockerPivot.FrameBefore(), m.RootFrame(), spatial.Identity3(), spatial.Vec3{X: 0.4}))
	if err := m.AttachLoop(crank, rocker, coupler,
		spatial.NewTransform(coupler.FrameBefore(), crank.Frame(), spatial.Identity3(), spatial.Vec3{Z: -0.3}),
		spatial.NewTransform(coupler.FrameAfter(), rocker.Frame(), spatial.Identity3(), spatial.Vec3{Z: -0.4})); err != nil {
		panic(err)
	}
	return m
}

// randomState puts a fresh state at a deterministic random configuration
// and velocity.
func randomState(m *mechanism.Mechanism, seed int64) *state.MechanismState {
	rng := rand.New(rand.NewSource(seed))
	st := state.New(m)
	st.RandConfiguration(rng)
	st.RandVelocity(rng)
	return st
}
