package mechanism

import (
	"errors"
	"fmt"

	"github.com/san-kum/mechdyn/internal/spatial"
)

var (
	// ErrAttached is returned when a body or joint is attached twice.
	ErrAttached = errors.New("mechanism: already attached")
	// ErrNotAttached is returned when an operation needs a body that is
	// not part of the mechanism yet.
	ErrNotAttached = errors.New("mechanism: body not part of the mechanism")
	// ErrUnknownFrame is returned when a frame is not fixed to any body.
	ErrUnknownFrame = errors.New("mechanism: frame not fixed to any body")
	// ErrBadPose is returned when a mounting transform connects the wrong
	// frames.
	ErrBadPose = errors.New("mechanism: mounting transform connects wrong frames")
)

// Mechanism is a collection of rigid bodies connected by joints. The tree
// joints form a spanning tree rooted at the world body; loop joints close
// kinematic cycles between bodies already in the tree.
type Mechanism struct {
	bodies        []*RigidBody
	treeJoints    []*Joint
	nonTreeJoints []*Joint

	// indexed by BodyID; parent[0] is 0 and parentJoint[0] is unused
	parent      []BodyID
	parentJoint []JointID

	gravity     spatial.Vec3
	environment []HalfSpace
}

// HalfSpace is a flat piece of environment geometry given in the root
// frame, with the normal pointing out of the solid half.
type HalfSpace struct {
	Point  spatial.Vec3
	Normal spatial.Vec3
}

// New creates a mechanism containing only the world body, with gravity
// pointing down the z axis at standard strength.
func New(rootName string) *Mechanism {
	root := newWorldBody(rootName)
	return &Mechanism{
		bodies:      []*RigidBody{root},
		parent:      []BodyID{0},
		parentJoint: []JointID{0},
		gravity:     spatial.Vec3{Z: -9.81},
	}
}

// Attach grows the spanning tree: succ becomes a child of pred through the
// given joint. pose is the fixed transform from the joint's before frame to
// pred's default frame; the joint's after frame is welded to succ's default
// frame.
func (m *Mechanism) Attach(pred, succ *RigidBody, j *Joint, pose spatial.Transform) error {
	if !m.contains(pred) {
		return fmt.Errorf("%w: %q", ErrNotAttached, pred.name)
	}
	if succ.attached {
		return fmt.Errorf("%w: body %q", ErrAttached, succ.name)
	}
	if j.predecessor != nil {
		return fmt.Errorf("%w: joint %q", ErrAttached, j.name)
	}
	if pose.From != j.frameBefore || pose.To != pred.frame {
		return fmt.Errorf("%w: want %v->%v, got %v->%v", ErrBadPose, j.frameBefore, pred.frame, pose.From, pose.To)
	}

	j.predecessor = pred
	j.successor = succ
	j.beforeToPredecessor = pose
	j.afterToSuccessor = spatial.Identity(j.frameAfter, succ.frame)
	j.tree = true
	pred.frameDefs = append(pred.frameDefs, pose)
	succ.frameDefs = append(succ.frameDefs, j.afterToSuccessor)

	succ.id = BodyID(len(m.bodies))
	succ.attached = true
	m.bodies = append(m.bodies, succ)
	m.parent = append(m.parent, pred.id)
	m.treeJoints = append(m.treeJoints, j)
	m.parentJoint = append(m.parentJoint, 0)
	m.renumber()
	return nil
}

// AttachLoop closes a kinematic cycle between two bodies that are already
// part of the tree. poseBefore mounts the joint's before frame on pred;
// poseAfter mounts the after frame on succ.
func (m *Mechanism) AttachLoop(pred, succ *RigidBody, j *Joint, poseBefore, poseAfter spatial.Transform) error {
	if !m.contains(pred) {
		return fmt.Errorf("%w: %q", ErrNotAttached, pred.name)
	}
	if !m.contains(succ) {
		return fmt.Errorf("%w: %q", ErrNotAttached, succ.name)
	}
	if j.predecessor != nil {
		return fmt.Errorf("%w: joint %q", ErrAttached, j.name)
	}
	if poseBefore.From != j.frameBefore || poseBefore.To != pred.frame {
		return fmt.Errorf("%w: want %v->%v, got %v->%v", ErrBadPose, j.frameBefore, pred.frame, poseBefore.From, poseBefore.To)
	}
	if poseAfter.From != j.frameAfter || poseAfter.To != succ.frame {
		return fmt.Errorf("%w: want %v->%v, got %v->%v", ErrBadPose, j.frameAfter, succ.frame, poseAfter.From, poseAfter.To)
	}

	j.predecessor = pred
	j.successor = succ
	j.beforeToPredecessor = poseBefore
	j.afterToSuccessor = poseAfter
	j.tree = false
	pred.frameDefs = append(pred.frameDefs, poseBefore)
	succ.frameDefs = append(succ.frameDefs, poseAfter)

	m.nonTreeJoints = append(m.nonTreeJoints, j)
	m.renumber()
	return nil
}

// renumber keeps joint ids dense with tree joints first.
func (m *Mechanism) renumber() {
	id := JointID(0)
	for _, j := range m.treeJoints {
		j.id = id
		id++
	}
	for _, j := range m.nonTreeJoints {
		j.id = id
		id++
	}
	for i, j := range m.treeJoints {
		m.parentJoint[i+1] = j.id
	}
}

func (m *Mechanism) contains(b *RigidBody) bool {
	return b.attached && int(b.id) < len(m.bodies) && m.bodies[b.id] == b
}

// Root returns the world body.
func (m *Mechanism) Root() *RigidBody { return m.bodies[0] }

// RootFrame returns the world body's frame.
func (m *Mechanism) RootFrame() spatial.Frame { return m.bodies[0].frame }

// Bodies returns all bodies in topological order, world body first.
func (m *Mechanism) Bodies() []*RigidBody { return m.bodies }

// NBodies returns the number of bodies including the world body.
func (m *Mechanism) NBodies() int { return len(m.bodies) }

// Body returns the body with the given id.
func (m *Mechanism) Body(id BodyID) *RigidBody { return m.bodies[id] }

// TreeJoints returns the spanning tree joints ordered so that a joint's
// predecessor always appears as the successor of an earlier joint.
func (m *Mechanism) TreeJoints() []*Joint { return m.treeJoints }

// NonTreeJoints returns the loop joints.
func (m *Mechanism) NonTreeJoints() []*Joint { return m.nonTreeJoints }

// Joints returns all joints, tree joints first, indexed by JointID.
func (m *Mechanism) Joints() []*Joint {
	all := make([]*Joint, 0, len(m.treeJoints)+len(m.nonTreeJoints))
	all = append(all, m.treeJoints...)
	return append(all, m.nonTreeJoints...)
}

// NJoints returns the total number of joints.
func (m *Mechanism) NJoints() int { return len(m.treeJoints) + len(m.nonTreeJoints) }

// Joint returns the joint with the given id.
func (m *Mechanism) Joint(id JointID) *Joint {
	if int(id) < len(m.treeJoints) {
		return m.treeJoints[id]
	}
	return m.nonTreeJoints[int(id)-len(m.treeJoints)]
}

// Parent returns the id of the body's parent in the tree. The world body
// is its own parent.
func (m *Mechanism) Parent(id BodyID) BodyID { return m.parent[id] }

// ParentJoint returns the tree joint whose successor is the given body, or
// nil for the world body.
func (m *Mechanism) ParentJoint(id BodyID) *Joint {
	if id == 0 {
		return nil
	}
	return m.Joint(m.parentJoint[id])
}

// NQ returns the total number of configuration coordinates.
func (m *Mechanism) NQ() int {
	n := 0
	for _, j := range m.treeJoints {
		n += j.NQ()
	}
	return n
}

// NV returns the total number of velocity coordinates.
func (m *Mechanism) NV() int {
	n := 0
	for _, j := range m.treeJoints {
		n += j.NV()
	}
	return n
}

// Gravity returns the gravitational acceleration in the root frame.
func (m *Mechanism) Gravity() spatial.Vec3 { return m.gravity }

// SetGravity sets the gravitational acceleration in the root frame.
func (m *Mechanism) SetGravity(g spatial.Vec3) { m.gravity = g }

// AddHalfSpace adds a piece of environment geometry.
func (m *Mechanism) AddHalfSpace(hs HalfSpace) { m.environment = append(m.environment, hs) }

// Environment returns the environment geometry in the root frame.
func (m *Mechanism) Environment() []HalfSpace { return m.environment }

// BodyFixingFrame returns the body the frame is rigidly attached to.
func (m *Mechanism) BodyFixingFrame(f spatial.Frame) (*RigidBody, error) {
	for _, b := range m.bodies {
		if b.IsFixedToBody(f) {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownFrame, f)
}

// FindBody returns the body with the given name, or nil.
func (m *Mechanism) FindBody(name string) *RigidBody {
	for _, b := range m.bodies {
		if b.name == name {
			return b
		}
	}
	return nil
}

// FindJoint returns the joint with the given name, or nil.
func (m *Mechanism) FindJoint(name string) *Joint {
	for _, j := range m.treeJoints {
		if j.name == name {
			return j
		}
	}
	for _, j := range m.nonTreeJoints {
		if j.name == name {
			return j
		}
	}
	return nil
}

func (m *Mechanism) String() string {
	return fmt.Sprintf("mechanism: %d bodies, %d tree joints, %d loop joints",
		len(m.bodies), len(m.treeJoints), len(m.nonTreeJoints))
}
