package spatial

import (
	"math"
	"math/rand"
	"testing"
)

func randInertia(rng *rand.Rand, frame Frame) SpatialInertia {
	// Random positive definite moment about the center of mass
	a := Mat33{}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			a[i][j] = rng.NormFloat64()
		}
	}
	moment := a.Mul(a.Transpose())
	moment[0][0] += 1
	moment[1][1] += 1
	moment[2][2] += 1
	com := Vec3{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
	return NewSpatialInertia(frame, 0.5+rng.Float64(), com, moment)
}

func TestPointMassMomentum(t *testing.T) {
	f := NewFrame("pm-f")
	body := NewFrame("pm-body")
	base := NewFrame("pm-base")
	m := 2.0
	c := Vec3{X: 1.5}
	in := PointMass(f, m, c)

	tw := Twist{Body: body, Base: base, Frame: f, Linear: Vec3{Y: 3}}
	h := in.Mul(tw)

	if !vecClose(h.Linear, Vec3{Y: m * 3}, 1e-12) {
		t.Errorf("expected linear momentum m*v, got %v", h.Linear)
	}
	// Angular momentum about the origin is c x m*v
	if !vecClose(h.Angular, c.Cross(Vec3{Y: m * 3}), 1e-12) {
		t.Errorf("expected angular momentum c x mv, got %v", h.Angular)
	}
}

func TestInertiaTransformPointMass(t *testing.T) {
	a := NewFrame("it-a")
	b := NewFrame("it-b")
	p := Vec3{0.7, -0.2, 1.1}

	got := PointMass(a, 3, Vec3{}).Transform(NewTransform(a, b, Identity3(), p))
	want := PointMass(b, 3, p)

	if math.Abs(got.Mass-want.Mass) > 1e-12 || !vecClose(got.CrossPart, want.CrossPart, 1e-12) {
		t.Fatalf("mass properties moved wrong: %+v", got)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(got.Moment[i][j]-want.Moment[i][j]) > 1e-12 {
				t.Errorf("moment mismatch at (%d,%d): %f vs %f", i, j, got.Moment[i][j], want.Moment[i][j])
			}
		}
	}
}

func TestInertiaTransformRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	a := NewFrame("ir-a")
	b := NewFrame("ir-b")
	in := randInertia(rng, a)
	tf := randTransform(rng, a, b)

	back := in.Transform(tf).Transform(tf.Inverse())
	if math.Abs(back.Mass-in.Mass) > 1e-10 || !vecClose(back.CrossPart, in.CrossPart, 1e-10) {
		t.Fatalf("mass properties did not survive round trip")
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(back.Moment[i][j]-in.Moment[i][j]) > 1e-9 {
				t.Errorf("moment mismatch at (%d,%d): %f vs %f", i, j, back.Moment[i][j], in.Moment[i][j])
			}
		}
	}
}

func TestKineticEnergyMatchesMomentum(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	f := NewFrame("ke-f")
	body := NewFrame("ke-body")
	base := NewFrame("ke-base")
	in := randInertia(rng, f)
	tw := randTwist(rng, body, base, f)

	ke := in.KineticEnergy(tw)
	want := tw.DotMomentum(in.Mul(tw)) / 2
	if math.Abs(ke-want) > 1e-10 {
		t.Errorf("kinetic energy %f disagrees with v.h/2 = %f", ke, want)
	}
	if ke <= 0 {
		t.Errorf("kinetic energy should be positive for nonzero twist, got %f", ke)
	}
}

func TestKineticEnergyFrameInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	a := NewFrame("ki-a")
	b := NewFrame("ki-b")
	body := NewFrame("ki-body")
	base := NewFrame("ki-base")
	in := randInertia(rng, a)
	tw := randTwist(rng, body, base, a)
	tf := randTransform(rng, a, b)

	ke1 := in.KineticEnergy(tw)
	ke2 := in.Transform(tf).KineticEnergy(tw.Transform(tf))
	if math.Abs(ke1-ke2) > 1e-9 {
		t.Errorf("kinetic energy changed across frames: %f vs %f", ke1, ke2)
	}
}

func TestNewtonEulerCentripetal(t *testing.T) {
	f := NewFrame("ne-f")
	body := NewFrame("ne-body")
	m, r, omega := 2.0, 1.5, 3.0
	in := PointMass(f, m, Vec3{X: r})

	// Steady rotation about z: the required wrench is the centripetal force
	tw := Twist{Body: body, Base: f, Frame: f, Angular: Vec3{Z: omega}}
	w := in.NewtonEuler(ZeroAcceleration(body, f, f), tw)

	want := Vec3{X: -m * omega * omega * r}
	if !vecClose(w.Linear, want, 1e-12) {
		t.Errorf("expected centripetal force %v, got %v", want, w.Linear)
	}
	if !vecClose(w.Angular, Vec3{}, 1e-12) {
		t.Errorf("expected zero torque, got %v", w.Angular)
	}
}

func TestInertiaAddTwoParticles(t *testing.T) {
	f := NewFrame("ia-f")
	sum := PointMass(f, 1, Vec3{X: 1}).Add(PointMass(f, 3, Vec3{X: -1}))

	if math.Abs(sum.Mass-4) > 1e-12 {
		t.Errorf("expected total mass 4, got %f", sum.Mass)
	}
	// Center of mass at (1*1 + 3*(-1))/4
	if !vecClose(sum.CenterOfMass(), Vec3{X: -0.5}, 1e-12) {
		t.Errorf("expected com at -0.5, got %v", sum.CenterOfMass())
	}
}

func TestCenterOfMassMassless(t *testing.T) {
	f := NewFrame("cm-f")
	if !vecClose(ZeroInertia(f).CenterOfMass(), Vec3{}, 0) {
		t.Errorf("massless inertia should report zero center of mass")
	}
}
