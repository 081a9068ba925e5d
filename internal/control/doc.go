// Package control provides torque sources for mechanisms.
//
// Controllers implement the [Controller] interface, computing one torque
// per velocity coordinate from a mechanism state:
//
//   - [JointPD]: proportional-derivative regulation toward a target configuration
//   - [GravityCompensation]: the torques that hold the mechanism still
//   - [LinearFeedback]: gain-matrix feedback about a target configuration
//   - [Sum]: adds the torques of several controllers
//   - [Constant]: a fixed torque vector
//   - [None]: zero torques
//
// Proportional terms act on chart displacements, so regulation behaves
// sensibly for quaternion joints too.
//
// Controllers implementing [Configurable] support live gain tuning.
package control
