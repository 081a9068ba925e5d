package mechanism

import (
	"fmt"

	"github.com/san-kum/mechdyn/internal/spatial"
)

// BodyID indexes a body within its mechanism. The world body is always 0
// and ids follow a topological order: a body's parent has a smaller id.
type BodyID int

// JointID indexes a joint within its mechanism. Tree joints come first, in
// the order bodies were attached, followed by loop joints.
type JointID int

// RigidBody is a single rigid body. Every body owns a default frame;
// additional frames can be fixed to it with AddFrameDefinition.
type RigidBody struct {
	name    string
	frame   spatial.Frame
	inertia *spatial.SpatialInertia

	// transforms from other body-fixed frames to the default frame
	frameDefs []spatial.Transform
	contacts  []ContactPoint

	id       BodyID
	attached bool
}

// NewBody creates a body with the given mass, center of mass position and
// rotational inertia about the center of mass, all expressed in the body's
// default frame, which is created here.
func NewBody(name string, mass float64, com spatial.Vec3, momentAboutCOM spatial.Mat33) *RigidBody {
	b := &RigidBody{name: name, frame: spatial.NewFrame(name)}
	in := spatial.NewSpatialInertia(b.frame, mass, com, momentAboutCOM)
	b.inertia = &in
	return b
}

// newWorldBody creates the massless fixed body at the root of a mechanism.
func newWorldBody(name string) *RigidBody {
	return &RigidBody{name: name, frame: spatial.NewFrame(name), attached: true}
}

func (b *RigidBody) Name() string { return b.name }

func (b *RigidBody) String() string { return b.name }

// Frame returns the body's default frame.
func (b *RigidBody) Frame() spatial.Frame { return b.frame }

// ID returns the body's index within its mechanism. It is meaningful only
// after the body has been attached.
func (b *RigidBody) ID() BodyID { return b.id }

// Inertia returns the body's spatial inertia expressed in its default
// frame, or nil for the world body.
func (b *RigidBody) Inertia() *spatial.SpatialInertia { return b.inertia }

// HasInertia reports whether the body carries mass properties. The world
// body does not.
func (b *RigidBody) HasInertia() bool { return b.inertia != nil }

// AddFrameDefinition fixes an additional frame to the body. tf must map
// into the body's default frame.
func (b *RigidBody) AddFrameDefinition(tf spatial.Transform) error {
	if tf.To != b.frame {
		return fmt.Errorf("mechanism: frame definition for %q must map to %v, got %v", b.name, b.frame, tf.To)
	}
	b.frameDefs = append(b.frameDefs, tf)
	return nil
}

// FixedTransform returns the transform from a body-fixed frame to the
// body's default frame.
func (b *RigidBody) FixedTransform(from spatial.Frame) (spatial.Transform, error) {
	if from == b.frame {
		return spatial.Identity(from, from), nil
	}
	for _, tf := range b.frameDefs {
		if tf.From == from {
			return tf, nil
		}
	}
	return spatial.Transform{}, fmt.Errorf("mechanism: frame %v is not fixed to body %q", from, b.name)
}

// IsFixedToBody reports whether the frame is the body's default frame or
// one of its definitions.
func (b *RigidBody) IsFixedToBody(f spatial.Frame) bool {
	if f == b.frame {
		return true
	}
	for _, tf := range b.frameDefs {
		if tf.From == f {
			return true
		}
	}
	return false
}

// AddContactPoint attaches a contact point to the body. The point's frame
// must already be fixed to the body.
func (b *RigidBody) AddContactPoint(cp ContactPoint) error {
	if !b.IsFixedToBody(cp.Frame) {
		return fmt.Errorf("mechanism: contact point frame %v is not fixed to body %q", cp.Frame, b.name)
	}
	b.contacts = append(b.contacts, cp)
	return nil
}

// ContactPoints returns the body's contact points.
func (b *RigidBody) ContactPoints() []ContactPoint { return b.contacts }

// ContactPoint marks a location on a body at which contact forces may act.
// The force law itself is outside the scope of this package; the model
// only declares how much state the contact carries and how to reset it.
type ContactPoint struct {
	Frame    spatial.Frame
	Location spatial.Vec3
	Model    ContactModel
}

// ContactModel describes the internal state of a contact point.
type ContactModel interface {
	// StateDim is the number of state variables the contact carries.
	StateDim() int
	// Reset writes the initial contact state into s, which has length
	// StateDim.
	Reset(s []float64)
}

// ViscoelasticContact is a spring-damper normal model with a regularized
// friction spring. Its state is the tangential deformation of the friction
// spring.
type ViscoelasticContact struct {
	Stiffness float64
	Damping   float64
	Friction  float64
}

func (ViscoelasticContact) StateDim() int { return 3 }

func (ViscoelasticContact) Reset(s []float64) {
	s[0], s[1], s[2] = 0, 0, 0
}
