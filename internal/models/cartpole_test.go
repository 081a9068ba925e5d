package models

import (
	"math"
	"testing"

	"github.com/san-kum/mechdyn/internal/dynamics"
	"github.com/san-kum/mechdyn/internal/state"
)

func TestCartPoleUprightEquilibrium(t *testing.T) {
	st := state.New(NewCartPole().Build())
	tau := dynamics.DynamicsBias(st, nil)
	for i, v := range tau {
		if math.Abs(v) > 1e-12 {
			t.Errorf("bias[%d] should vanish with the pole upright, got %g", i, v)
		}
	}
}

func TestCartPoleMassMatrix(t *testing.T) {
	c := NewCartPole()
	m := c.Build()
	st := state.New(m)
	if err := st.SetConfiguration([]float64{0.2, 0.4}); err != nil {
		t.Fatalf("set configuration: %v", err)
	}

	h := dynamics.MassMatrix(st)
	l := c.PoleLength / 2
	if got, want := h.At(0, 0), c.CartMass+c.PoleMass; math.Abs(got-want) > 1e-12 {
		t.Errorf("translational inertia %g, want %g", got, want)
	}
	if got, want := h.At(0, 1), c.PoleMass*l*math.Cos(0.4); math.Abs(got-want) > 1e-12 {
		t.Errorf("cart/pole coupling %g, want %g", got, want)
	}
	if got, want := h.At(1, 1), c.PoleMass*c.PoleLength*c.PoleLength/3; math.Abs(got-want) > 1e-9 {
		t.Errorf("pole rotational inertia %g, want %g", got, want)
	}
}
