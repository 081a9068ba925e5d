// Package dynamics computes generalized forces and momentum quantities for
// a mechanism in a given state.
//
// The mass matrix comes from the composite-rigid-body algorithm, inverse
// dynamics from a recursive Newton-Euler sweep over the spanning tree.
// Gravity enters through the bias accelerations of the state, so every
// result already accounts for the weight of the bodies. Non-tree joints
// carry no velocity coordinates and contribute no forces here; the
// directions in which they constrain the tree are available from
// [state.MechanismState.ConstraintWrenchSubspace].
package dynamics
