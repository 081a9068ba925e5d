package dynamics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/mechdyn/internal/spatial"
	"github.com/san-kum/mechdyn/internal/state"
)

// KineticEnergy returns the total kinetic energy of the mechanism.
func KineticEnergy(st *state.MechanismState) float64 {
	var e float64
	for _, b := range st.Mechanism().Bodies()[1:] {
		e += st.Inertia(b).KineticEnergy(st.TwistWrtWorld(b))
	}
	return e
}

// GravitationalPotentialEnergy returns the potential energy relative to
// the root frame origin. It decreases as mass moves along the gravity
// vector.
func GravitationalPotentialEnergy(st *state.MechanismState) float64 {
	crb := st.CompositeInertia(st.Mechanism().Root())
	return -st.Mechanism().Gravity().Dot(crb.CrossPart)
}

// TotalMass returns the summed mass of all bodies.
func TotalMass(st *state.MechanismState) float64 {
	return st.CompositeInertia(st.Mechanism().Root()).Mass
}

// CenterOfMass returns the mechanism's center of mass in the root frame,
// or the origin if the mechanism is massless.
func CenterOfMass(st *state.MechanismState) spatial.Vec3 {
	return st.CompositeInertia(st.Mechanism().Root()).CenterOfMass()
}

// Momentum returns the total spatial momentum about the root frame origin.
func Momentum(st *state.MechanismState) spatial.Momentum {
	m := st.Mechanism()
	h := spatial.Momentum{Frame: m.RootFrame()}
	for _, b := range m.Bodies()[1:] {
		h = h.Add(st.Inertia(b).Mul(st.TwistWrtWorld(b)))
	}
	return h
}

// MomentumRateBias returns the rate of change of the total momentum when
// every joint acceleration is zero. The gravity offset carried by the bias
// accelerations is included, so at rest this is minus the total gravity
// wrench.
func MomentumRateBias(st *state.MechanismState) spatial.Wrench {
	m := st.Mechanism()
	w := spatial.ZeroWrench(m.RootFrame())
	for _, b := range m.Bodies()[1:] {
		w = w.Add(st.Inertia(b).NewtonEuler(st.BiasAcceleration(b), st.TwistWrtWorld(b)))
	}
	return w
}

// MomentumMatrix returns the 6-by-NV matrix mapping the velocity vector to
// the total spatial momentum, angular rows first.
func MomentumMatrix(st *state.MechanismState) *mat.Dense {
	a := mat.NewDense(6, st.NV(), nil)
	MomentumMatrixInto(st, a)
	return a
}

// MomentumMatrixInto writes the momentum matrix into dst, which must be
// 6-by-NV. Each tree joint's block is the composite inertia of its subtree
// applied to its motion subspace, so A*v equals Momentum for any velocity.
func MomentumMatrixInto(st *state.MechanismState, dst *mat.Dense) {
	nv := st.NV()
	if r, c := dst.Dims(); r != 6 || c != nv {
		panic(fmt.Sprintf("dynamics: %dx%d destination for a 6x%d momentum matrix", r, c, nv))
	}
	dst.Zero()
	m := st.Mechanism()
	for _, j := range m.TreeJoints() {
		if j.NV() == 0 {
			continue
		}
		ci, _ := st.VelocityRange(j)
		a := st.CompositeInertia(j.Successor()).MulSubspace(st.MotionSubspace(j))
		for col := 0; col < a.NCols(); col++ {
			ang, lin := a.Col(col)
			dst.Set(0, ci+col, ang.X)
			dst.Set(1, ci+col, ang.Y)
			dst.Set(2, ci+col, ang.Z)
			dst.Set(3, ci+col, lin.X)
			dst.Set(4, ci+col, lin.Y)
			dst.Set(5, ci+col, lin.Z)
		}
	}
}
