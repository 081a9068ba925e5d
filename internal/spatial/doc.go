// Package spatial provides the screw-theoretic value types used by the
// kinematics and dynamics algorithms.
//
// All quantities are tagged with the [Frame] they are expressed in, and
// motion/force quantities additionally carry the frames they relate:
//
//   - [Transform]: rigid transform taking points from one frame to another
//   - [Twist]: spatial velocity (angular + linear) of a body w.r.t. a base
//   - [SpatialAcceleration]: time derivative of a twist
//   - [Wrench], [Momentum]: spatial force and spatial momentum
//   - [SpatialInertia]: mass, first moment, and rotational inertia packaged
//     as one operator mapping twists to momenta
//   - [MotionSubspace]: basis of the spatial velocities a joint can produce
//
// Composition operators check frame compatibility and panic on mismatch;
// a wrong frame is a programming error that would otherwise surface as
// silently wrong physics.
//
// # Conventions
//
// A [Transform] with rotation R and translation p maps coordinates as
// x_to = R*x_from + p. Twists, accelerations, wrenches and inertias follow
// the spatial-vector conventions of screw theory, with the angular
// component first.
package spatial
