package state

import (
	"fmt"

	"github.com/san-kum/mechdyn/internal/mechanism"
	"github.com/san-kum/mechdyn/internal/spatial"
)

// ConfigurationDerivative writes the time derivative of the configuration
// vector at the current velocity into dst, which must have length NQ.
func (st *MechanismState) ConfigurationDerivative(dst []float64) {
	if len(dst) != len(st.q) {
		panic(fmt.Sprintf("state: configuration derivative buffer has length %d, want %d", len(dst), len(st.q)))
	}
	for i, j := range st.mech.TreeJoints() {
		j.Type().VelocityToConfigurationDerivative(
			st.qRanges[i].of(dst), st.qRanges[i].of(st.q), st.vRanges[i].of(st.v))
	}
}

// ConfigurationDerivativeToVelocity writes the velocity vector matching
// the configuration derivative qdot into dst. dst must have length NV and
// qdot length NQ.
func (st *MechanismState) ConfigurationDerivativeToVelocity(dst, qdot []float64) {
	if len(dst) != len(st.v) || len(qdot) != len(st.q) {
		panic(fmt.Sprintf("state: velocity buffer has length %d (want %d), derivative length %d (want %d)",
			len(dst), len(st.v), len(qdot), len(st.q)))
	}
	for i, j := range st.mech.TreeJoints() {
		j.Type().ConfigurationDerivativeToVelocity(
			st.vRanges[i].of(dst), st.qRanges[i].of(st.q), st.qRanges[i].of(qdot))
	}
}

// LocalCoordinates writes the chart coordinates of the current
// configuration around q0 into phi, and their time derivative at the
// current velocity into phid. phi and phid have length NV, q0 length NQ.
func (st *MechanismState) LocalCoordinates(phi, phid, q0 []float64) {
	if len(phi) != len(st.v) || len(phid) != len(st.v) || len(q0) != len(st.q) {
		panic(fmt.Sprintf("state: local coordinate buffers have lengths %d/%d/%d, want %d/%d/%d",
			len(phi), len(phid), len(q0), len(st.v), len(st.v), len(st.q)))
	}
	for i, j := range st.mech.TreeJoints() {
		j.Type().LocalCoordinates(
			st.vRanges[i].of(phi), st.vRanges[i].of(phid),
			st.qRanges[i].of(q0), st.qRanges[i].of(st.q), st.vRanges[i].of(st.v))
	}
}

// GlobalCoordinates sets the configuration to the point at chart
// coordinates phi around q0, inverting LocalCoordinates. Like any
// configuration setter it invalidates all caches and resets the contact
// state.
func (st *MechanismState) GlobalCoordinates(q0, phi []float64) error {
	if len(q0) != len(st.q) || len(phi) != len(st.v) {
		return fmt.Errorf("%w: chart center has length %d (want %d), coordinates length %d (want %d)",
			ErrSizeMismatch, len(q0), len(st.q), len(phi), len(st.v))
	}
	for i, j := range st.mech.TreeJoints() {
		j.Type().GlobalCoordinates(
			st.qRanges[i].of(st.q), st.qRanges[i].of(q0), st.vRanges[i].of(phi))
	}
	st.invalidateAll()
	st.resetContacts()
	return nil
}

// RelativeTransform returns the transform from one frame to another at
// the current configuration. Both frames must be fixed to a body of the
// mechanism.
func (st *MechanismState) RelativeTransform(from, to spatial.Frame) (spatial.Transform, error) {
	fromToWorld, err := st.frameToRoot(from)
	if err != nil {
		return spatial.Transform{}, err
	}
	toToWorld, err := st.frameToRoot(to)
	if err != nil {
		return spatial.Transform{}, err
	}
	return toToWorld.Inverse().Compose(fromToWorld), nil
}

func (st *MechanismState) frameToRoot(f spatial.Frame) (spatial.Transform, error) {
	b, err := st.mech.BodyFixingFrame(f)
	if err != nil {
		return spatial.Transform{}, err
	}
	fixed, err := b.FixedTransform(f)
	if err != nil {
		return spatial.Transform{}, err
	}
	return st.TransformToRoot(b).Compose(fixed), nil
}

// RelativeTwist returns the twist of body with respect to base, expressed
// in the root frame.
func (st *MechanismState) RelativeTwist(body, base *mechanism.RigidBody) spatial.Twist {
	tw := st.twists.get(st.updateTwists)
	return tw[body.ID()].Add(tw[base.ID()].Neg())
}

// RelativeTwistOfFrames returns the twist of the body fixing bodyFrame
// with respect to the body fixing baseFrame, relabeled to the two frames
// and expressed in the root frame.
func (st *MechanismState) RelativeTwistOfFrames(bodyFrame, baseFrame spatial.Frame) (spatial.Twist, error) {
	body, err := st.mech.BodyFixingFrame(bodyFrame)
	if err != nil {
		return spatial.Twist{}, err
	}
	base, err := st.mech.BodyFixingFrame(baseFrame)
	if err != nil {
		return spatial.Twist{}, err
	}
	return st.RelativeTwist(body, base).ChangeBody(bodyFrame).ChangeBase(baseFrame), nil
}
