package models

import (
	"github.com/san-kum/mechdyn/internal/joints"
	"github.com/san-kum/mechdyn/internal/mechanism"
	"github.com/san-kum/mechdyn/internal/spatial"
)

// DoublePendulum chains two uniform rods below the world, both swinging
// about the y axis. The second coordinate is the elbow angle relative to
// the first link.
type DoublePendulum struct {
	M1, M2 float64
	L1, L2 float64
}

func NewDoublePendulum() *DoublePendulum {
	return &DoublePendulum{
		M1: DefaultMass, M2: DefaultMass,
		L1: DefaultLength, L2: DefaultLength,
	}
}

func (d *DoublePendulum) Build() *mechanism.Mechanism {
	m := mechanism.New("world")
	upper := mechanism.NewBody("upper", d.M1, spatial.Vec3{Z: -d.L1 / 2}, rodMoment(d.M1, d.L1))
	lower := mechanism.NewBody("lower", d.M2, spatial.Vec3{Z: -d.L2 / 2}, rodMoment(d.M2, d.L2))
	shoulder := mechanism.NewJoint("shoulder", joints.NewRevolute(spatial.Vec3{Y: 1}))
	elbow := mechanism.NewJoint("elbow", joints.NewRevolute(spatial.Vec3{Y: 1}))
	attach(m, m.Root(), upper, shoulder, spatial.Identity(shoulder.FrameBefore(), m.RootFrame()))
	attach(m, upper, lower, elbow,
		spatial.NewTransform(elbow.FrameBefore(), upper.Frame(), spatial.Identity3(), spatial.Vec3{Z: -d.L1}))
	return m
}
