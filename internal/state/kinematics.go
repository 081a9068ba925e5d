package state

import (
	"fmt"

	"github.com/san-kum/mechdyn/internal/mechanism"
	"github.com/san-kum/mechdyn/internal/spatial"
)

func treeIndex(j *mechanism.Joint) int {
	if !j.IsTree() {
		panic(fmt.Sprintf("state: joint %q is not part of the kinematic tree", j.Name()))
	}
	return int(j.ID())
}

func (st *MechanismState) loopIndex(j *mechanism.Joint) int {
	if j.IsTree() {
		panic(fmt.Sprintf("state: joint %q is a tree joint, not a loop joint", j.Name()))
	}
	return int(j.ID()) - len(st.mech.TreeJoints())
}

// toRootAfter is the transform from j's frame-after to the root frame.
func toRootAfter(toRoot []spatial.Transform, j *mechanism.Joint) spatial.Transform {
	return toRoot[j.Successor().ID()].Compose(j.AfterToSuccessor())
}

// updateTransforms fills the joint transforms and the transforms to root
// in one pass. Loop joint transforms are derived from the transforms to
// root of their predecessor and successor, so the two caches always move
// together.
func (st *MechanismState) updateTransforms() {
	st.noteUpdate("transforms")
	m := st.mech
	tfs := st.jointTransforms.data
	toRoot := st.toRoot.data

	root := m.RootFrame()
	toRoot[0] = spatial.Identity(root, root)
	for i, j := range m.TreeJoints() {
		tfs[j.ID()] = j.Type().Transform(j.FrameAfter(), j.FrameBefore(), st.qRanges[i].of(st.q))
		toRoot[j.Successor().ID()] = toRoot[j.Predecessor().ID()].
			Compose(j.BeforeToPredecessor()).
			Compose(tfs[j.ID()]).
			Compose(j.AfterToSuccessor().Inverse())
	}
	for _, j := range m.NonTreeJoints() {
		beforeToRoot := toRoot[j.Predecessor().ID()].Compose(j.BeforeToPredecessor())
		afterToRoot := toRoot[j.Successor().ID()].Compose(j.AfterToSuccessor())
		tfs[j.ID()] = beforeToRoot.Inverse().Compose(afterToRoot)
	}

	st.jointTransforms.dirty = false
	st.toRoot.dirty = false
}

func (st *MechanismState) updateJointTwists() {
	st.noteUpdate("joint twists")
	for i, j := range st.mech.TreeJoints() {
		st.jointTwists.data[i] = j.Type().Twist(j.FrameAfter(), j.FrameBefore(),
			st.qRanges[i].of(st.q), st.vRanges[i].of(st.v))
	}
	st.jointTwists.dirty = false
}

func (st *MechanismState) updateJointBias() {
	st.noteUpdate("joint bias accelerations")
	for i, j := range st.mech.TreeJoints() {
		st.jointBias.data[i] = j.Type().BiasAcceleration(j.FrameAfter(), j.FrameBefore(),
			st.qRanges[i].of(st.q), st.vRanges[i].of(st.v))
	}
	st.jointBias.dirty = false
}

func (st *MechanismState) updateJointSubspaces() {
	st.noteUpdate("joint motion subspaces")
	for i, j := range st.mech.TreeJoints() {
		st.jointSubspaces.data[i] = j.Type().MotionSubspace(j.FrameAfter(), j.FrameBefore(),
			st.qRanges[i].of(st.q))
	}
	st.jointSubspaces.dirty = false
}

// updateWorldSubspaces re-expresses every tree joint's motion subspace in
// the root frame, relabeled to relate the successor and predecessor body
// frames.
func (st *MechanismState) updateWorldSubspaces() {
	st.noteUpdate("world motion subspaces")
	local := st.jointSubspaces.get(st.updateJointSubspaces)
	toRoot := st.toRoot.get(st.updateTransforms)
	for i, j := range st.mech.TreeJoints() {
		st.worldSubspaces.data[i] = local[i].
			Transform(toRootAfter(toRoot, j)).
			ChangeBody(j.Successor().Frame()).
			ChangeBase(j.Predecessor().Frame())
	}
	st.worldSubspaces.dirty = false
}

// updateConstraintSubspaces re-expresses every loop joint's constraint
// wrench subspace in the root frame.
func (st *MechanismState) updateConstraintSubspaces() {
	st.noteUpdate("constraint wrench subspaces")
	tfs := st.jointTransforms.get(st.updateTransforms)
	toRoot := st.toRoot.get(st.updateTransforms)
	nt := len(st.mech.TreeJoints())
	for _, j := range st.mech.NonTreeJoints() {
		raw := j.Type().ConstraintWrenchSubspace(tfs[j.ID()])
		st.constraintSubspaces.data[int(j.ID())-nt] = raw.Transform(toRootAfter(toRoot, j))
	}
	st.constraintSubspaces.dirty = false
}

// updateTwists propagates body twists with respect to the root outward
// through the tree, all expressed in the root frame.
func (st *MechanismState) updateTwists() {
	st.noteUpdate("twists")
	m := st.mech
	jt := st.jointTwists.get(st.updateJointTwists)
	toRoot := st.toRoot.get(st.updateTransforms)
	tw := st.twists.data

	root := m.RootFrame()
	tw[0] = spatial.ZeroTwist(root, root, root)
	for i, j := range m.TreeJoints() {
		succ, pred := j.Successor(), j.Predecessor()
		across := jt[i].
			Transform(toRootAfter(toRoot, j)).
			ChangeBody(succ.Frame()).
			ChangeBase(pred.Frame())
		tw[succ.ID()] = tw[pred.ID()].Add(across)
	}
	st.twists.dirty = false
}

// updateBiasAccels propagates the body accelerations present at zero
// joint acceleration. The root carries the gravity offset: treating the
// root as accelerating at -g makes every downstream wrench include the
// weight of the bodies it supports.
func (st *MechanismState) updateBiasAccels() {
	st.noteUpdate("bias accelerations")
	m := st.mech
	jb := st.jointBias.get(st.updateJointBias)
	jt := st.jointTwists.get(st.updateJointTwists)
	toRoot := st.toRoot.get(st.updateTransforms)
	tw := st.twists.get(st.updateTwists)
	ba := st.biasAccels.data

	root := m.RootFrame()
	ba[0] = spatial.SpatialAcceleration{Body: root, Base: root, Frame: root, Linear: m.Gravity().Neg()}
	for i, j := range m.TreeJoints() {
		succ, pred := j.Successor(), j.Predecessor()
		tfAfter := toRootAfter(toRoot, j)
		afterWrtRoot := tw[succ.ID()].Transform(tfAfter.Inverse()).ChangeBody(j.FrameAfter())
		across := jb[i].
			Transform(tfAfter, afterWrtRoot, jt[i]).
			ChangeBody(succ.Frame()).
			ChangeBase(pred.Frame())
		ba[succ.ID()] = ba[pred.ID()].Add(across)
	}
	st.biasAccels.dirty = false
}

// JointTransform returns the transform across joint j, from its frame
// after to its frame before. Valid for tree and loop joints.
func (st *MechanismState) JointTransform(j *mechanism.Joint) spatial.Transform {
	return st.jointTransforms.get(st.updateTransforms)[j.ID()]
}

// JointTransformUnsafe is JointTransform without the staleness check.
func (st *MechanismState) JointTransformUnsafe(j *mechanism.Joint) spatial.Transform {
	return st.jointTransforms.data[j.ID()]
}

// JointTwist returns the twist of tree joint j's frame after with respect
// to its frame before, expressed in the frame after.
func (st *MechanismState) JointTwist(j *mechanism.Joint) spatial.Twist {
	return st.jointTwists.get(st.updateJointTwists)[treeIndex(j)]
}

// JointTwistUnsafe is JointTwist without the staleness check.
func (st *MechanismState) JointTwistUnsafe(j *mechanism.Joint) spatial.Twist {
	return st.jointTwists.data[treeIndex(j)]
}

// JointBiasAcceleration returns the acceleration across tree joint j at
// zero joint acceleration, expressed in the frame after.
func (st *MechanismState) JointBiasAcceleration(j *mechanism.Joint) spatial.SpatialAcceleration {
	return st.jointBias.get(st.updateJointBias)[treeIndex(j)]
}

// JointBiasAccelerationUnsafe is JointBiasAcceleration without the
// staleness check.
func (st *MechanismState) JointBiasAccelerationUnsafe(j *mechanism.Joint) spatial.SpatialAcceleration {
	return st.jointBias.data[treeIndex(j)]
}

// JointMotionSubspace returns tree joint j's motion subspace expressed in
// its frame after.
func (st *MechanismState) JointMotionSubspace(j *mechanism.Joint) spatial.MotionSubspace {
	return st.jointSubspaces.get(st.updateJointSubspaces)[treeIndex(j)]
}

// JointMotionSubspaceUnsafe is JointMotionSubspace without the staleness
// check.
func (st *MechanismState) JointMotionSubspaceUnsafe(j *mechanism.Joint) spatial.MotionSubspace {
	return st.jointSubspaces.data[treeIndex(j)]
}

// MotionSubspace returns tree joint j's motion subspace expressed in the
// root frame, relating the successor body to the predecessor body.
func (st *MechanismState) MotionSubspace(j *mechanism.Joint) spatial.MotionSubspace {
	return st.worldSubspaces.get(st.updateWorldSubspaces)[treeIndex(j)]
}

// MotionSubspaceUnsafe is MotionSubspace without the staleness check.
func (st *MechanismState) MotionSubspaceUnsafe(j *mechanism.Joint) spatial.MotionSubspace {
	return st.worldSubspaces.data[treeIndex(j)]
}

// ConstraintWrenchSubspace returns loop joint j's constraint wrench
// subspace expressed in the root frame.
func (st *MechanismState) ConstraintWrenchSubspace(j *mechanism.Joint) spatial.WrenchSubspace {
	return st.constraintSubspaces.get(st.updateConstraintSubspaces)[st.loopIndex(j)]
}

// ConstraintWrenchSubspaceUnsafe is ConstraintWrenchSubspace without the
// staleness check.
func (st *MechanismState) ConstraintWrenchSubspaceUnsafe(j *mechanism.Joint) spatial.WrenchSubspace {
	return st.constraintSubspaces.data[st.loopIndex(j)]
}

// TransformToRoot returns the transform from b's default frame to the
// root frame.
func (st *MechanismState) TransformToRoot(b *mechanism.RigidBody) spatial.Transform {
	return st.toRoot.get(st.updateTransforms)[b.ID()]
}

// TransformToRootUnsafe is TransformToRoot without the staleness check.
func (st *MechanismState) TransformToRootUnsafe(b *mechanism.RigidBody) spatial.Transform {
	return st.toRoot.data[b.ID()]
}

// TwistWrtWorld returns the twist of b with respect to the root body,
// expressed in the root frame.
func (st *MechanismState) TwistWrtWorld(b *mechanism.RigidBody) spatial.Twist {
	return st.twists.get(st.updateTwists)[b.ID()]
}

// TwistWrtWorldUnsafe is TwistWrtWorld without the staleness check.
func (st *MechanismState) TwistWrtWorldUnsafe(b *mechanism.RigidBody) spatial.Twist {
	return st.twists.data[b.ID()]
}

// BiasAcceleration returns the acceleration of b with respect to the root
// at zero joint accelerations, gravity offset included, expressed in the
// root frame.
func (st *MechanismState) BiasAcceleration(b *mechanism.RigidBody) spatial.SpatialAcceleration {
	return st.biasAccels.get(st.updateBiasAccels)[b.ID()]
}

// BiasAccelerationUnsafe is BiasAcceleration without the staleness check.
func (st *MechanismState) BiasAccelerationUnsafe(b *mechanism.RigidBody) spatial.SpatialAcceleration {
	return st.biasAccels.data[b.ID()]
}
