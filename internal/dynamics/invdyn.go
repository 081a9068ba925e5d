package dynamics

import (
	"fmt"

	"github.com/san-kum/mechdyn/internal/mechanism"
	"github.com/san-kum/mechdyn/internal/spatial"
	"github.com/san-kum/mechdyn/internal/state"
)

// InverseDynamics returns the joint forces that produce the joint
// accelerations vdot, given the state's configuration and velocity.
// External wrenches act on the keyed bodies and must be expressed in the
// root frame; entries for the root body are ignored. A nil map applies no
// external forces.
func InverseDynamics(st *state.MechanismState, vdot []float64, ext map[mechanism.BodyID]spatial.Wrench) []float64 {
	dst := make([]float64, st.NV())
	InverseDynamicsInto(st, vdot, ext, dst)
	return dst
}

// InverseDynamicsInto is InverseDynamics writing into dst.
func InverseDynamicsInto(st *state.MechanismState, vdot []float64, ext map[mechanism.BodyID]spatial.Wrench, dst []float64) {
	nv := st.NV()
	if len(vdot) != nv {
		panic(fmt.Sprintf("dynamics: %d accelerations for %d velocity coordinates", len(vdot), nv))
	}
	if len(dst) != nv {
		panic(fmt.Sprintf("dynamics: %d outputs for %d velocity coordinates", len(dst), nv))
	}
	wrench := newtonEulerWrenches(st, jointAccelerations(st, vdot), ext)
	projectWrenches(st, wrench, dst)
}

// DynamicsBias returns the joint forces balancing the velocity and gravity
// terms: the inverse dynamics at zero joint acceleration.
func DynamicsBias(st *state.MechanismState, ext map[mechanism.BodyID]spatial.Wrench) []float64 {
	dst := make([]float64, st.NV())
	DynamicsBiasInto(st, ext, dst)
	return dst
}

// DynamicsBiasInto is DynamicsBias writing into dst.
func DynamicsBiasInto(st *state.MechanismState, ext map[mechanism.BodyID]spatial.Wrench, dst []float64) {
	if len(dst) != st.NV() {
		panic(fmt.Sprintf("dynamics: %d outputs for %d velocity coordinates", len(dst), st.NV()))
	}
	wrench := newtonEulerWrenches(st, nil, ext)
	projectWrenches(st, wrench, dst)
}

// jointAccelerations propagates the acceleration each body picks up from
// the joint accelerations alone, root to leaves. The velocity-dependent
// terms live in the state's bias accelerations and are added later, so a
// plain chaining sum over the world motion subspaces suffices here.
func jointAccelerations(st *state.MechanismState, vdot []float64) []spatial.SpatialAcceleration {
	m := st.Mechanism()
	root := m.RootFrame()
	accel := make([]spatial.SpatialAcceleration, m.NBodies())
	accel[0] = spatial.ZeroAcceleration(root, root, root)
	for _, j := range m.TreeJoints() {
		lo, hi := st.VelocityRange(j)
		jt := st.MotionSubspace(j).Mul(vdot[lo:hi])
		across := spatial.SpatialAcceleration{Body: jt.Body, Base: jt.Base, Frame: jt.Frame, Angular: jt.Angular, Linear: jt.Linear}
		accel[j.Successor().ID()] = accel[j.Predecessor().ID()].Add(across)
	}
	return accel
}

// newtonEulerWrenches computes, for every non-root body, the wrench that
// produces its net acceleration, minus any external wrench acting on it.
// A nil accel means zero joint accelerations.
func newtonEulerWrenches(st *state.MechanismState, accel []spatial.SpatialAcceleration, ext map[mechanism.BodyID]spatial.Wrench) []spatial.Wrench {
	m := st.Mechanism()
	wrench := make([]spatial.Wrench, m.NBodies())
	wrench[0] = spatial.ZeroWrench(m.RootFrame())
	for _, b := range m.Bodies()[1:] {
		id := b.ID()
		net := st.BiasAcceleration(b)
		if accel != nil {
			net = net.Add(accel[id])
		}
		w := st.Inertia(b).NewtonEuler(net, st.TwistWrtWorld(b))
		if e, ok := ext[id]; ok {
			w = w.Sub(e)
		}
		wrench[id] = w
	}
	return wrench
}

// projectWrenches sweeps leaves to root, projecting each body's
// accumulated wrench onto its parent joint and passing the rest up.
func projectWrenches(st *state.MechanismState, wrench []spatial.Wrench, dst []float64) {
	m := st.Mechanism()
	tree := m.TreeJoints()
	for i := len(tree) - 1; i >= 0; i-- {
		j := tree[i]
		succ := j.Successor().ID()
		if j.NV() > 0 {
			lo, hi := st.VelocityRange(j)
			st.MotionSubspace(j).TransposeMulWrench(wrench[succ], dst[lo:hi])
		}
		pred := j.Predecessor().ID()
		wrench[pred] = wrench[pred].Add(wrench[succ])
	}
}
