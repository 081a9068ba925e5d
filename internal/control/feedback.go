package control

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/mechdyn/internal/mechanism"
	"github.com/san-kum/mechdyn/internal/state"
)

// LinearFeedback applies u = -K*e about a target configuration, where e
// stacks the chart displacement from the target over its rate. K has NV
// rows and 2*NV columns; an LQR gain for the linearized mechanism fits
// here directly.
//
// A LinearFeedback is not safe for concurrent use.
type LinearFeedback struct {
	K      *mat.Dense
	Target []float64

	e []float64
	u *mat.VecDense
}

func NewLinearFeedback(m *mechanism.Mechanism, k *mat.Dense, target []float64) *LinearFeedback {
	nv := m.NV()
	if r, c := k.Dims(); r != nv || c != 2*nv {
		panic(fmt.Sprintf("control: %dx%d gain matrix for %d velocity coordinates", r, c, nv))
	}
	if len(target) != m.NQ() {
		panic(fmt.Sprintf("control: %d target coordinates for %d configuration coordinates", len(target), m.NQ()))
	}
	return &LinearFeedback{
		K:      k,
		Target: append([]float64(nil), target...),
		e:      make([]float64, 2*nv),
		u:      mat.NewVecDense(nv, nil),
	}
}

func (c *LinearFeedback) Torques(st *state.MechanismState, dst []float64) {
	nv := len(dst)
	st.LocalCoordinates(c.e[:nv], c.e[nv:], c.Target)
	c.u.MulVec(c.K, mat.NewVecDense(2*nv, c.e))
	for i := range dst {
		dst[i] = -c.u.AtVec(i)
	}
}
