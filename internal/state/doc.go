// Package state holds the time-varying part of a mechanism: the
// configuration vector q, the velocity vector v and any additional contact
// state, together with lazily cached kinematic and inertial quantities
// derived from them.
//
// Reading an accessor such as [MechanismState.TransformToRoot] runs the
// update pass for its cache if a setter invalidated it since the last
// read; repeated reads return the cached value. Every accessor has an
// Unsafe variant that skips the check and must only be called after the
// safe one has run for the current configuration.
//
// A MechanismState is not safe for concurrent use. Share the Mechanism,
// never the state: give each goroutine its own state via [New],
// [MechanismState.Clone] or [Pool], or use [ForEachConfiguration].
package state
