package dynamics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/mechdyn/internal/state"
)

// MassMatrix returns the joint-space mass matrix H(q): the symmetric
// positive definite matrix with kinetic energy v'*H*v/2.
func MassMatrix(st *state.MechanismState) *mat.SymDense {
	h := mat.NewSymDense(st.NV(), nil)
	MassMatrixInto(st, h)
	return h
}

// MassMatrixInto writes the mass matrix into dst, which must be
// NV-by-NV. Rows and columns follow the velocity vector layout; fixed
// joints occupy no rows.
//
// Each tree joint pairs its motion subspace with the composite inertia of
// the subtree it supports. The block between two joints is nonzero only
// when one is an ancestor of the other, so the inner sweep climbs from the
// joint's predecessor to the root.
func MassMatrixInto(st *state.MechanismState, dst *mat.SymDense) {
	nv := st.NV()
	if r, c := dst.Dims(); r != nv || c != nv {
		panic(fmt.Sprintf("dynamics: %dx%d destination for %d velocity coordinates", r, c, nv))
	}
	dst.Zero()
	m := st.Mechanism()
	for _, ji := range m.TreeJoints() {
		if ji.NV() == 0 {
			continue
		}
		ci, _ := st.VelocityRange(ji)
		si := st.MotionSubspace(ji)
		f := st.CompositeInertia(ji.Successor()).MulSubspace(si)
		for a := 0; a < si.NCols(); a++ {
			sa, sl := si.Col(a)
			for b := a; b < f.NCols(); b++ {
				fa, fl := f.Col(b)
				dst.SetSym(ci+a, ci+b, sa.Dot(fa)+sl.Dot(fl))
			}
		}
		for bid := ji.Predecessor().ID(); bid != 0; bid = m.Parent(bid) {
			jj := m.ParentJoint(bid)
			if jj.NV() == 0 {
				continue
			}
			cj, _ := st.VelocityRange(jj)
			sj := st.MotionSubspace(jj)
			for a := 0; a < sj.NCols(); a++ {
				sa, sl := sj.Col(a)
				for b := 0; b < f.NCols(); b++ {
					fa, fl := f.Col(b)
					dst.SetSym(cj+a, ci+b, sa.Dot(fa)+sl.Dot(fl))
				}
			}
		}
	}
}
