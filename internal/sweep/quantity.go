package sweep

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/mechdyn/internal/dynamics"
	"github.com/san-kum/mechdyn/internal/state"
)

// Quantity evaluates one scalar on a posed state. Implementations must be
// safe for concurrent use; worker goroutines share them across states.
type Quantity interface {
	Name() string
	Evaluate(st *state.MechanismState) float64
}

type quantityFunc struct {
	name string
	fn   func(st *state.MechanismState) float64
}

func (q quantityFunc) Name() string                            { return q.name }
func (q quantityFunc) Evaluate(st *state.MechanismState) float64 { return q.fn(st) }

// QuantityFunc wraps a plain function as a Quantity.
func QuantityFunc(name string, fn func(st *state.MechanismState) float64) Quantity {
	return quantityFunc{name: name, fn: fn}
}

// PotentialEnergy is the gravitational potential energy of the mechanism.
func PotentialEnergy() Quantity {
	return QuantityFunc("potential_energy", dynamics.GravitationalPotentialEnergy)
}

// BiasTorqueNorm is the 2-norm of the torque holding the pose against
// gravity and velocity effects.
func BiasTorqueNorm() Quantity {
	return QuantityFunc("bias_torque", func(st *state.MechanismState) float64 {
		return floats.Norm(dynamics.DynamicsBias(st, nil), 2)
	})
}

// JointBiasTorque is the 2-norm of the bias torque on one named joint.
// Unknown joint names panic.
func JointBiasTorque(joint string) Quantity {
	return QuantityFunc("bias_"+joint, func(st *state.MechanismState) float64 {
		j := st.Mechanism().FindJoint(joint)
		if j == nil {
			panic(fmt.Sprintf("sweep: unknown joint %q", joint))
		}
		lo, hi := st.VelocityRange(j)
		return floats.Norm(dynamics.DynamicsBias(st, nil)[lo:hi], 2)
	})
}

// MassMatrixCondition is the 2-norm condition number of the joint-space
// mass matrix. It needs at least one velocity coordinate.
func MassMatrixCondition() Quantity {
	return QuantityFunc("mass_condition", func(st *state.MechanismState) float64 {
		return mat.Cond(dynamics.MassMatrix(st), 2)
	})
}

// CenterOfMassHeight is the vertical coordinate of the mechanism's center
// of mass in the root frame.
func CenterOfMassHeight() Quantity {
	return QuantityFunc("com_height", func(st *state.MechanismState) float64 {
		return dynamics.CenterOfMass(st).Z
	})
}

// DefaultQuantities is the set the CLI records when none are named.
func DefaultQuantities() []Quantity {
	return []Quantity{PotentialEnergy(), BiasTorqueNorm(), MassMatrixCondition(), CenterOfMassHeight()}
}
