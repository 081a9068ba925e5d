// Package mechanism describes the kinematic structure of a rigid body
// system: bodies connected by joints into a spanning tree rooted at a fixed
// world body, plus optional loop joints that close kinematic cycles.
//
// A mechanism is built incrementally. [New] creates the world body,
// [NewBody] and [NewJoint] create parts, and [Mechanism.Attach] grows the
// tree one body at a time. [Mechanism.AttachLoop] connects two bodies that
// are already part of the tree.
//
// The mechanism itself is purely structural. Configuration, velocity and
// everything derived from them live in the state package.
package mechanism
