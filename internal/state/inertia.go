package state

import (
	"github.com/san-kum/mechdyn/internal/mechanism"
	"github.com/san-kum/mechdyn/internal/spatial"
)

// updateInertias re-expresses every body's spatial inertia in the root
// frame. The root body is massless and gets a zero inertia.
func (st *MechanismState) updateInertias() {
	st.noteUpdate("inertias")
	toRoot := st.toRoot.get(st.updateTransforms)
	root := st.mech.RootFrame()
	for _, b := range st.mech.Bodies() {
		if !b.HasInertia() {
			st.inertias.data[b.ID()] = spatial.ZeroInertia(root)
			continue
		}
		st.inertias.data[b.ID()] = b.Inertia().Transform(toRoot[b.ID()])
	}
	st.inertias.dirty = false
}

// updateCrbInertias accumulates, for every body, the inertia of the
// subtree it roots, by sweeping the tree in reverse topological order.
func (st *MechanismState) updateCrbInertias() {
	st.noteUpdate("composite inertias")
	in := st.inertias.get(st.updateInertias)
	crb := st.crbInertias.data
	copy(crb, in)
	bodies := st.mech.Bodies()
	for i := len(bodies) - 1; i >= 1; i-- {
		id := bodies[i].ID()
		p := st.mech.Parent(id)
		crb[p] = crb[p].Add(crb[id])
	}
	st.crbInertias.dirty = false
}

// Inertia returns b's spatial inertia expressed in the root frame.
func (st *MechanismState) Inertia(b *mechanism.RigidBody) spatial.SpatialInertia {
	return st.inertias.get(st.updateInertias)[b.ID()]
}

// InertiaUnsafe is Inertia without the staleness check.
func (st *MechanismState) InertiaUnsafe(b *mechanism.RigidBody) spatial.SpatialInertia {
	return st.inertias.data[b.ID()]
}

// CompositeInertia returns the combined spatial inertia of b and all its
// descendants, expressed in the root frame.
func (st *MechanismState) CompositeInertia(b *mechanism.RigidBody) spatial.SpatialInertia {
	return st.crbInertias.get(st.updateCrbInertias)[b.ID()]
}

// CompositeInertiaUnsafe is CompositeInertia without the staleness check.
func (st *MechanismState) CompositeInertiaUnsafe(b *mechanism.RigidBody) spatial.SpatialInertia {
	return st.crbInertias.data[b.ID()]
}
