package state

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/mechdyn/internal/mechanism"
	"github.com/san-kum/mechdyn/internal/spatial"
)

func TestConfigurationDerivativeRoundTrip(t *testing.T) {
	m := zoo(t)
	rng := rand.New(rand.NewSource(21))
	st := New(m)
	st.RandConfiguration(rng)
	st.RandVelocity(rng)

	qdot := make([]float64, st.NQ())
	st.ConfigurationDerivative(qdot)
	back := make([]float64, st.NV())
	st.ConfigurationDerivativeToVelocity(back, qdot)

	for i, vi := range st.Velocity() {
		if math.Abs(back[i]-vi) > 1e-12 {
			t.Errorf("v[%d]: %f after round trip, want %f", i, back[i], vi)
		}
	}
}

func TestChartRoundTrip(t *testing.T) {
	m := zoo(t)
	rng := rand.New(rand.NewSource(22))
	st := New(m)
	st.RandConfiguration(rng)
	q0 := append([]float64(nil), st.Configuration()...)

	// displace by modest chart coordinates to stay well inside the
	// rotation chart
	phi := make([]float64, st.NV())
	for i := range phi {
		phi[i] = 0.4 * rng.NormFloat64()
	}
	if err := st.GlobalCoordinates(q0, phi); err != nil {
		t.Fatalf("global coordinates: %v", err)
	}

	back := make([]float64, st.NV())
	rate := make([]float64, st.NV())
	st.LocalCoordinates(back, rate, q0)
	for i := range phi {
		if math.Abs(back[i]-phi[i]) > 1e-9 {
			t.Errorf("phi[%d]: %f after round trip, want %f", i, back[i], phi[i])
		}
	}

	// the chart is centered at its own configuration
	center := append([]float64(nil), st.Configuration()...)
	st.LocalCoordinates(back, rate, center)
	for i, p := range back {
		if math.Abs(p) > 1e-12 {
			t.Errorf("phi[%d] = %f around the current configuration", i, p)
		}
	}
}

func TestRelativeTransform(t *testing.T) {
	m := zoo(t)
	rng := rand.New(rand.NewSource(23))
	st := New(m)
	st.RandConfiguration(rng)

	arm := m.FindBody("arm")
	pad := m.FindBody("pad")

	rel, err := st.RelativeTransform(arm.Frame(), pad.Frame())
	if err != nil {
		t.Fatalf("relative transform: %v", err)
	}
	if rel.From != arm.Frame() || rel.To != pad.Frame() {
		t.Fatalf("transform connects %v->%v", rel.From, rel.To)
	}
	want := st.TransformToRoot(pad).Inverse().Compose(st.TransformToRoot(arm))
	if !tfClose(rel, want, 1e-12) {
		t.Errorf("relative transform disagrees with the root-frame composition")
	}

	self, err := st.RelativeTransform(arm.Frame(), arm.Frame())
	if err != nil {
		t.Fatalf("self transform: %v", err)
	}
	if !matClose(self.Rot, spatial.Identity3(), 1e-12) || !vecClose(self.Trans, spatial.Vec3{}, 1e-12) {
		t.Errorf("transform of a frame to itself is not the identity")
	}

	// joint frames are fixed to their bodies too
	wrist := m.FindJoint("wrist")
	across, err := st.RelativeTransform(wrist.FrameAfter(), wrist.FrameBefore())
	if err != nil {
		t.Fatalf("joint frame transform: %v", err)
	}
	if !tfClose(across, st.JointTransform(wrist), 1e-12) {
		t.Errorf("frame-resolved joint transform disagrees with the cached one")
	}

	if _, err := st.RelativeTransform(spatial.NewFrame("orphan"), arm.Frame()); !errors.Is(err, mechanism.ErrUnknownFrame) {
		t.Errorf("expected ErrUnknownFrame, got %v", err)
	}
}

func TestRelativeTwist(t *testing.T) {
	m := zoo(t)
	rng := rand.New(rand.NewSource(24))
	st := New(m)
	st.RandConfiguration(rng)
	st.RandVelocity(rng)

	arm := m.FindBody("arm")
	pad := m.FindBody("pad")

	ab := st.RelativeTwist(arm, pad)
	ba := st.RelativeTwist(pad, arm)
	neg := ba.Neg()
	if ab.Body != neg.Body || ab.Base != neg.Base {
		t.Fatalf("twist labels do not flip: %+v vs %+v", ab, neg)
	}
	if !vecClose(ab.Angular, neg.Angular, 1e-12) || !vecClose(ab.Linear, neg.Linear, 1e-12) {
		t.Errorf("relative twist is not antisymmetric")
	}

	wrt := st.RelativeTwist(pad, m.Root())
	world := st.TwistWrtWorld(pad)
	if wrt != world {
		t.Errorf("twist relative to the root differs from the world twist")
	}

	byFrame, err := st.RelativeTwistOfFrames(arm.Frame(), pad.Frame())
	if err != nil {
		t.Fatalf("relative twist of frames: %v", err)
	}
	if byFrame != ab {
		t.Errorf("frame-resolved relative twist differs")
	}

	if _, err := st.RelativeTwistOfFrames(spatial.NewFrame("stray"), arm.Frame()); !errors.Is(err, mechanism.ErrUnknownFrame) {
		t.Errorf("expected ErrUnknownFrame, got %v", err)
	}
}
