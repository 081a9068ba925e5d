package models

import (
	"math"
	"testing"

	"github.com/san-kum/mechdyn/internal/dynamics"
	"github.com/san-kum/mechdyn/internal/state"
)

func TestPendulumDimensions(t *testing.T) {
	m := NewPendulum().Build()
	if m.NQ() != 1 || m.NV() != 1 {
		t.Errorf("expected nq=1 nv=1, got nq=%d nv=%d", m.NQ(), m.NV())
	}
	if m.NBodies() != 2 {
		t.Errorf("expected 2 bodies, got %d", m.NBodies())
	}
	if m.FindBody("rod") == nil || m.FindJoint("pivot") == nil {
		t.Error("rod and pivot should be findable by name")
	}
}

func TestPendulumGravityTorque(t *testing.T) {
	p := NewPendulum()
	m := p.Build()
	st := state.New(m)

	theta := 0.6
	if err := st.SetConfiguration([]float64{theta}); err != nil {
		t.Fatalf("set configuration: %v", err)
	}
	tau := dynamics.DynamicsBias(st, nil)
	want := p.Mass * 9.81 * (p.Length / 2) * math.Sin(theta)
	if math.Abs(tau[0]-want) > 1e-9 {
		t.Errorf("holding torque at theta=%.1f: got %g, want %g", theta, tau[0], want)
	}
}

func TestDoublePendulumGeometry(t *testing.T) {
	d := NewDoublePendulum()
	d.L1 = 0.8
	m := d.Build()
	st := state.New(m)

	// The elbow hangs one upper-link length below the shoulder.
	tf := st.TransformToRoot(m.FindBody("lower"))
	if math.Abs(tf.Trans.Z+d.L1) > 1e-12 {
		t.Errorf("lower link frame at z=%g, want %g", tf.Trans.Z, -d.L1)
	}
	if math.Abs(tf.Trans.X) > 1e-12 || math.Abs(tf.Trans.Y) > 1e-12 {
		t.Errorf("lower link frame should stay on the vertical axis, got %v", tf.Trans)
	}
}

func TestDoublePendulumMass(t *testing.T) {
	d := NewDoublePendulum()
	d.M1 = 1.4
	d.M2 = 0.9
	st := state.New(d.Build())
	if got := dynamics.TotalMass(st); math.Abs(got-2.3) > 1e-12 {
		t.Errorf("total mass %g, want 2.3", got)
	}
}
