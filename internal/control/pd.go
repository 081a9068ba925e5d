package control

import (
	"fmt"

	"github.com/san-kum/mechdyn/internal/mechanism"
	"github.com/san-kum/mechdyn/internal/state"
)

// JointPD drives the mechanism toward a target configuration with uniform
// proportional and derivative gains. The proportional term acts on the
// chart displacement from the target, the derivative term on its rate, so
// the torque vanishes exactly at the target at rest.
//
// A JointPD is not safe for concurrent use.
type JointPD struct {
	Kp, Kd float64
	Target []float64

	phi, phid []float64
}

func NewJointPD(m *mechanism.Mechanism, target []float64, kp, kd float64) *JointPD {
	if len(target) != m.NQ() {
		panic(fmt.Sprintf("control: %d target coordinates for %d configuration coordinates", len(target), m.NQ()))
	}
	return &JointPD{
		Kp:     kp,
		Kd:     kd,
		Target: append([]float64(nil), target...),
		phi:    make([]float64, m.NV()),
		phid:   make([]float64, m.NV()),
	}
}

func (c *JointPD) Torques(st *state.MechanismState, dst []float64) {
	st.LocalCoordinates(c.phi, c.phid, c.Target)
	for i := range dst {
		dst[i] = -c.Kp*c.phi[i] - c.Kd*c.phid[i]
	}
}

// GetParams returns the tunable gains.
func (c *JointPD) GetParams() map[string]float64 {
	return map[string]float64{"kp": c.Kp, "kd": c.Kd}
}

// SetParam adjusts a gain by name.
func (c *JointPD) SetParam(name string, value float64) error {
	switch name {
	case "kp":
		c.Kp = value
	case "kd":
		c.Kd = value
	default:
		return fmt.Errorf("control: unknown parameter %q", name)
	}
	return nil
}
