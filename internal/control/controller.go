package control

import (
	"fmt"

	"github.com/san-kum/mechdyn/internal/state"
)

// A Controller computes joint torques from a mechanism state, one entry
// per velocity coordinate. dst has length NV.
type Controller interface {
	Torques(st *state.MechanismState, dst []float64)
}

// Configurable controllers expose named scalar parameters for live
// adjustment.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// None outputs zero torques.
type None struct{}

func (None) Torques(st *state.MechanismState, dst []float64) {
	for i := range dst {
		dst[i] = 0
	}
}

// Constant outputs a fixed torque vector, for direct user input or
// open-loop experiments.
type Constant struct {
	U []float64
}

func NewConstant(u []float64) *Constant {
	return &Constant{U: append([]float64(nil), u...)}
}

// SetTorques replaces the stored vector.
func (c *Constant) SetTorques(u []float64) {
	copy(c.U, u)
}

func (c *Constant) Torques(st *state.MechanismState, dst []float64) {
	if len(c.U) != len(dst) {
		panic(fmt.Sprintf("control: %d stored torques for %d velocity coordinates", len(c.U), len(dst)))
	}
	copy(dst, c.U)
}

// Sum adds the torques of its elements.
type Sum []Controller

func (s Sum) Torques(st *state.MechanismState, dst []float64) {
	for i := range dst {
		dst[i] = 0
	}
	tmp := make([]float64, len(dst))
	for _, c := range s {
		c.Torques(st, tmp)
		for i, ti := range tmp {
			dst[i] += ti
		}
	}
}
