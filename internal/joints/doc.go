// Package joints defines the joint types a mechanism can be built from.
//
// A joint type describes the relative motion it allows between the frame
// before the joint (fixed to the predecessor body) and the frame after the
// joint (fixed to the successor body): the transform across the joint as a
// function of its configuration, the motion subspace mapping velocity
// coordinates to a twist, and the wrench subspace in which the joint
// transmits constraint forces.
//
// Configuration and velocity coordinates need not have the same dimension.
// [QuaternionFloating] uses a seven dimensional configuration for a six
// dimensional velocity; [Type.VelocityToConfigurationDerivative] and the
// local/global coordinate pair handle the conversion.
package joints
