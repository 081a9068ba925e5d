package models

import (
	"github.com/san-kum/mechdyn/internal/joints"
	"github.com/san-kum/mechdyn/internal/mechanism"
	"github.com/san-kum/mechdyn/internal/spatial"
)

// FloatingAcrobot is a two-link arm hanging from a torso that floats
// freely on a quaternion joint: nine configuration coordinates, eight
// velocity coordinates.
type FloatingAcrobot struct {
	TorsoMass float64
	LinkMass  float64
	LinkLen   float64
}

func NewFloatingAcrobot() *FloatingAcrobot {
	return &FloatingAcrobot{
		TorsoMass: 4.0,
		LinkMass:  DefaultMass,
		LinkLen:   DefaultLength / 2,
	}
}

func (a *FloatingAcrobot) Build() *mechanism.Mechanism {
	m := mechanism.New("world")
	torso := mechanism.NewBody("torso", a.TorsoMass, spatial.Vec3{},
		spatial.Mat33{{0.25, 0, 0}, {0, 0.2, 0}, {0, 0, 0.15}})
	upper := mechanism.NewBody("upper", a.LinkMass, spatial.Vec3{Z: -a.LinkLen / 2}, rodMoment(a.LinkMass, a.LinkLen))
	lower := mechanism.NewBody("lower", a.LinkMass, spatial.Vec3{Z: -a.LinkLen / 2}, rodMoment(a.LinkMass, a.LinkLen))

	free := mechanism.NewJoint("free", joints.QuaternionFloating{})
	shoulder := mechanism.NewJoint("shoulder", joints.NewRevolute(spatial.Vec3{Y: 1}))
	elbow := mechanism.NewJoint("elbow", joints.NewRevolute(spatial.Vec3{Y: 1}))

	attach(m, m.Root(), torso, free, spatial.Identity(free.FrameBefore(), m.RootFrame()))
	attach(m, torso, upper, shoulder,
		spatial.NewTransform(shoulder.FrameBefore(), torso.Frame(), spatial.Identity3(), spatial.Vec3{Z: -0.1}))
	attach(m, upper, lower, elbow,
		spatial.NewTransform(elbow.FrameBefore(), upper.Frame(), spatial.Identity3(), spatial.Vec3{Z: -a.LinkLen}))
	return m
}
