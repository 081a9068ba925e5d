package state

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/mechdyn/internal/spatial"
)

func TestForwardKinematicsDoublePendulum(t *testing.T) {
	m, _, _ := doublePendulum(t)
	st := New(m)
	q := []float64{0.6, -0.35}
	setConfig(t, st, q)

	s1, c1 := math.Sincos(q[0])
	s12, c12 := math.Sincos(q[0] + q[1])

	lower := m.FindBody("lower")
	got := st.TransformToRoot(lower)
	if got.From != lower.Frame() || got.To != m.RootFrame() {
		t.Fatalf("transform connects %v->%v", got.From, got.To)
	}
	wantElbow := spatial.Vec3{X: -linkLength * s1, Z: -linkLength * c1}
	if !vecClose(got.Trans, wantElbow, 1e-12) {
		t.Errorf("elbow at %+v, want %+v", got.Trans, wantElbow)
	}
	if !matClose(got.Rot, spatial.AxisAngle(spatial.Vec3{Y: 1}, q[0]+q[1]), 1e-12) {
		t.Errorf("lower link orientation is wrong")
	}

	tip := got.Apply(spatial.Vec3{Z: -linkLength})
	wantTip := spatial.Vec3{X: -linkLength * (s1 + s12), Z: -linkLength * (c1 + c12)}
	if !vecClose(tip, wantTip, 1e-12) {
		t.Errorf("tip at %+v, want %+v", tip, wantTip)
	}
}

func TestTwistClosedFormDoublePendulum(t *testing.T) {
	m, _, _ := doublePendulum(t)
	st := New(m)
	q := []float64{0.8, -0.5}
	v := []float64{1.3, 0.7}
	setConfig(t, st, q)
	setVel(t, st, v)

	s1, c1 := math.Sincos(q[0])

	upper := m.FindBody("upper")
	tw := st.TwistWrtWorld(upper)
	if tw.Body != upper.Frame() || tw.Base != m.RootFrame() || tw.Frame != m.RootFrame() {
		t.Fatalf("upper twist frames are wrong: %+v", tw)
	}
	if !vecClose(tw.Angular, spatial.Vec3{Y: v[0]}, 1e-12) || !vecClose(tw.Linear, spatial.Vec3{}, 1e-12) {
		t.Errorf("upper twist (%+v; %+v)", tw.Angular, tw.Linear)
	}

	// the linear part is the velocity of the body point passing through
	// the world origin: -elbowRate x elbowPosition
	lower := m.FindBody("lower")
	tw = st.TwistWrtWorld(lower)
	wantAng := spatial.Vec3{Y: v[0] + v[1]}
	wantLin := spatial.Vec3{X: v[1] * linkLength * c1, Z: -v[1] * linkLength * s1}
	if !vecClose(tw.Angular, wantAng, 1e-12) {
		t.Errorf("lower angular %+v, want %+v", tw.Angular, wantAng)
	}
	if !vecClose(tw.Linear, wantLin, 1e-12) {
		t.Errorf("lower linear %+v, want %+v", tw.Linear, wantLin)
	}
}

// numericWorldTwist differences two poses a step dt apart around the center
// pose and extracts the world-frame twist.
func numericWorldTwist(plus, minus, center spatial.Transform, dt float64) (ang, lin spatial.Vec3) {
	rdot := plus.Rot.Sub(minus.Rot).Scale(1 / dt)
	pdot := plus.Trans.Sub(minus.Trans).Scale(1 / dt)
	what := rdot.Mul(center.Rot.Transpose())
	ang = spatial.Vec3{X: what[2][1], Y: what[0][2], Z: what[1][0]}
	lin = pdot.Sub(ang.Cross(center.Trans))
	return ang, lin
}

func TestTwistMatchesTransformDerivative(t *testing.T) {
	m := zoo(t)
	rng := rand.New(rand.NewSource(7))
	st := New(m)
	st.RandConfiguration(rng)
	st.RandVelocity(rng)

	qdot := make([]float64, st.NQ())
	st.ConfigurationDerivative(qdot)

	const dt = 1e-6
	qp := make([]float64, st.NQ())
	qm := make([]float64, st.NQ())
	for i, qi := range st.Configuration() {
		qp[i] = qi + qdot[i]*dt/2
		qm[i] = qi - qdot[i]*dt/2
	}
	plus, minus := New(m), New(m)
	setConfig(t, plus, qp)
	setConfig(t, minus, qm)

	for _, b := range m.Bodies()[1:] {
		tw := st.TwistWrtWorld(b)
		ang, lin := numericWorldTwist(plus.TransformToRoot(b), minus.TransformToRoot(b), st.TransformToRoot(b), dt)
		if !vecClose(tw.Angular, ang, 1e-5) {
			t.Errorf("body %v: angular %+v vs finite difference %+v", b, tw.Angular, ang)
		}
		if !vecClose(tw.Linear, lin, 1e-5) {
			t.Errorf("body %v: linear %+v vs finite difference %+v", b, tw.Linear, lin)
		}
	}
}

func TestBiasAccelerationMatchesTwistDerivative(t *testing.T) {
	m := zoo(t)
	m.SetGravity(spatial.Vec3{})
	rng := rand.New(rand.NewSource(8))
	st := New(m)
	st.RandConfiguration(rng)
	st.RandVelocity(rng)

	qdot := make([]float64, st.NQ())
	st.ConfigurationDerivative(qdot)

	// step the configuration while holding every joint velocity fixed;
	// the twist rate is then exactly the bias acceleration
	const dt = 1e-6
	qp := make([]float64, st.NQ())
	qm := make([]float64, st.NQ())
	for i, qi := range st.Configuration() {
		qp[i] = qi + qdot[i]*dt/2
		qm[i] = qi - qdot[i]*dt/2
	}
	plus, minus := New(m), New(m)
	setConfig(t, plus, qp)
	setVel(t, plus, st.Velocity())
	setConfig(t, minus, qm)
	setVel(t, minus, st.Velocity())

	for _, b := range m.Bodies()[1:] {
		ba := st.BiasAcceleration(b)
		twp := plus.TwistWrtWorld(b)
		twm := minus.TwistWrtWorld(b)
		ang := twp.Angular.Sub(twm.Angular).Scale(1 / dt)
		lin := twp.Linear.Sub(twm.Linear).Scale(1 / dt)
		if !vecClose(ba.Angular, ang, 1e-5) {
			t.Errorf("body %v: bias angular %+v vs finite difference %+v", b, ba.Angular, ang)
		}
		if !vecClose(ba.Linear, lin, 1e-5) {
			t.Errorf("body %v: bias linear %+v vs finite difference %+v", b, ba.Linear, lin)
		}
	}
}

func TestBiasAccelerationCarriesGravityOffset(t *testing.T) {
	m, _, _ := doublePendulum(t)
	st := New(m)

	// at rest every velocity product vanishes and only the gravity offset
	// remains, transported unchanged down the tree
	want := m.Gravity().Neg()
	for _, b := range m.Bodies() {
		ba := st.BiasAcceleration(b)
		if !vecClose(ba.Angular, spatial.Vec3{}, 1e-12) {
			t.Errorf("body %v: angular bias %+v at rest", b, ba.Angular)
		}
		if !vecClose(ba.Linear, want, 1e-12) {
			t.Errorf("body %v: linear bias %+v, want %+v", b, ba.Linear, want)
		}
	}
}

func TestWorldMotionSubspaceMatchesRelativeTwist(t *testing.T) {
	m := zoo(t)
	rng := rand.New(rand.NewSource(9))
	st := New(m)
	st.RandConfiguration(rng)
	st.RandVelocity(rng)

	for _, j := range m.TreeJoints() {
		got := st.MotionSubspace(j).Mul(st.JointVelocity(j))
		want := st.RelativeTwist(j.Successor(), j.Predecessor())
		if got.Body != want.Body || got.Base != want.Base || got.Frame != want.Frame {
			t.Fatalf("joint %v: twist frames (%v,%v,%v) vs (%v,%v,%v)", j,
				got.Body, got.Base, got.Frame, want.Body, want.Base, want.Frame)
		}
		if !vecClose(got.Angular, want.Angular, 1e-10) || !vecClose(got.Linear, want.Linear, 1e-10) {
			t.Errorf("joint %v: subspace twist (%+v; %+v), relative twist (%+v; %+v)",
				j, got.Angular, got.Linear, want.Angular, want.Linear)
		}
	}
}

func TestLocalMotionSubspaceMatchesJointTwist(t *testing.T) {
	m := zoo(t)
	rng := rand.New(rand.NewSource(10))
	st := New(m)
	st.RandConfiguration(rng)
	st.RandVelocity(rng)

	for _, j := range m.TreeJoints() {
		got := st.JointMotionSubspace(j).Mul(st.JointVelocity(j))
		want := st.JointTwist(j)
		if !vecClose(got.Angular, want.Angular, 1e-12) || !vecClose(got.Linear, want.Linear, 1e-12) {
			t.Errorf("joint %v: S*v (%+v; %+v), joint twist (%+v; %+v)",
				j, got.Angular, got.Linear, want.Angular, want.Linear)
		}
	}
}

func TestLoopJointTransform(t *testing.T) {
	m, coupler := fourBar(t)
	st := New(m)
	if err := st.SetJointConfiguration(m.FindJoint("crank_pivot"), []float64{0.5}); err != nil {
		t.Fatalf("set crank: %v", err)
	}
	if err := st.SetJointConfiguration(m.FindJoint("rocker_pivot"), []float64{-0.3}); err != nil {
		t.Fatalf("set rocker: %v", err)
	}

	got := st.JointTransform(coupler)
	want, err := st.RelativeTransform(coupler.FrameAfter(), coupler.FrameBefore())
	if err != nil {
		t.Fatalf("relative transform: %v", err)
	}
	if !tfClose(got, want, 1e-12) {
		t.Errorf("loop joint transform disagrees with the relative frame transform")
	}

	ws := st.ConstraintWrenchSubspace(coupler)
	if ws.Frame != m.RootFrame() {
		t.Errorf("constraint subspace expressed in %v, want the root frame", ws.Frame)
	}
	if ws.NCols() != 5 {
		t.Errorf("revolute loop joint constrains %d directions, want 5", ws.NCols())
	}
}

func TestInertiasInRootFrame(t *testing.T) {
	m, _, _ := doublePendulum(t)
	st := New(m)
	q := []float64{1.1, 0.4}
	setConfig(t, st, q)

	upper := m.FindBody("upper")
	lower := m.FindBody("lower")

	// the world-frame inertia is the body inertia pushed through the pose
	for _, b := range m.Bodies()[1:] {
		got := st.Inertia(b)
		want := b.Inertia().Transform(st.TransformToRoot(b))
		if got.Frame != m.RootFrame() {
			t.Fatalf("body %v: inertia expressed in %v", b, got.Frame)
		}
		if math.Abs(got.Mass-want.Mass) > 1e-12 ||
			!vecClose(got.CrossPart, want.CrossPart, 1e-12) ||
			!matClose(got.Moment, want.Moment, 1e-12) {
			t.Errorf("body %v: world inertia disagrees with the transformed body inertia", b)
		}
	}

	// the root's composite inertia is the whole mechanism's
	total := st.CompositeInertia(m.Root())
	if math.Abs(total.Mass-2*linkMass) > 1e-12 {
		t.Errorf("total mass %f, want %f", total.Mass, 2*linkMass)
	}
	sum := st.Inertia(upper).Add(st.Inertia(lower))
	if !vecClose(total.CrossPart, sum.CrossPart, 1e-12) || !matClose(total.Moment, sum.Moment, 1e-12) {
		t.Errorf("root composite inertia is not the sum over all bodies")
	}

	// a leaf's composite inertia is its own
	leaf := st.CompositeInertia(lower)
	own := st.Inertia(lower)
	if !vecClose(leaf.CrossPart, own.CrossPart, 1e-12) || !matClose(leaf.Moment, own.Moment, 1e-12) {
		t.Errorf("leaf composite inertia is not the body inertia")
	}
}
