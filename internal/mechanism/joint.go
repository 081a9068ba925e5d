package mechanism

import (
	"github.com/san-kum/mechdyn/internal/joints"
	"github.com/san-kum/mechdyn/internal/spatial"
)

// Joint connects a predecessor body to a successor body. Its motion is the
// relative motion of the frame after the joint with respect to the frame
// before it, as described by the joint type.
type Joint struct {
	name        string
	typ         joints.Type
	frameBefore spatial.Frame
	frameAfter  spatial.Frame

	predecessor *RigidBody
	successor   *RigidBody

	// fixed mounting transforms, set on attach
	beforeToPredecessor spatial.Transform
	afterToSuccessor    spatial.Transform

	id   JointID
	tree bool
}

// NewJoint creates a joint of the given type together with its two frames.
// The joint carries no topology until it is attached to a mechanism.
func NewJoint(name string, typ joints.Type) *Joint {
	return &Joint{
		name:        name,
		typ:         typ,
		frameBefore: spatial.NewFrame("before_" + name),
		frameAfter:  spatial.NewFrame("after_" + name),
	}
}

func (j *Joint) Name() string { return j.name }

func (j *Joint) String() string { return j.name }

// Type returns the joint's kinematic behavior.
func (j *Joint) Type() joints.Type { return j.typ }

// ID returns the joint's index within its mechanism. It is meaningful only
// after the joint has been attached.
func (j *Joint) ID() JointID { return j.id }

// IsTree reports whether the joint is part of the spanning tree.
func (j *Joint) IsTree() bool { return j.tree }

// FrameBefore returns the frame fixed to the predecessor side of the joint.
func (j *Joint) FrameBefore() spatial.Frame { return j.frameBefore }

// FrameAfter returns the frame fixed to the successor side of the joint.
func (j *Joint) FrameAfter() spatial.Frame { return j.frameAfter }

func (j *Joint) Predecessor() *RigidBody { return j.predecessor }

func (j *Joint) Successor() *RigidBody { return j.successor }

// BeforeToPredecessor returns the fixed transform from the joint's before
// frame to the predecessor's default frame.
func (j *Joint) BeforeToPredecessor() spatial.Transform { return j.beforeToPredecessor }

// AfterToSuccessor returns the fixed transform from the joint's after
// frame to the successor's default frame.
func (j *Joint) AfterToSuccessor() spatial.Transform { return j.afterToSuccessor }

// NQ is the number of configuration coordinates of the joint.
func (j *Joint) NQ() int { return j.typ.NQ() }

// NV is the number of velocity coordinates of the joint.
func (j *Joint) NV() int { return j.typ.NV() }
