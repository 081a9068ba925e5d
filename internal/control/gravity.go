package control

import (
	"github.com/san-kum/mechdyn/internal/dynamics"
	"github.com/san-kum/mechdyn/internal/mechanism"
	"github.com/san-kum/mechdyn/internal/state"
)

// GravityCompensation outputs the torques that hold the mechanism still at
// its current configuration: the inverse dynamics bias at zero velocity.
// The state's actual velocity is ignored.
//
// The controller keeps a scratch state for the mechanism it was built for;
// it is not safe for concurrent use, and st must belong to the same
// mechanism.
type GravityCompensation struct {
	scratch *state.MechanismState
}

func NewGravityCompensation(m *mechanism.Mechanism) *GravityCompensation {
	return &GravityCompensation{scratch: state.New(m)}
}

func (g *GravityCompensation) Torques(st *state.MechanismState, dst []float64) {
	if err := g.scratch.SetConfiguration(st.Configuration()); err != nil {
		panic(err)
	}
	dynamics.DynamicsBiasInto(g.scratch, nil, dst)
}
