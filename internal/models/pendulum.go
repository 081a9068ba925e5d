package models

import (
	"github.com/san-kum/mechdyn/internal/joints"
	"github.com/san-kum/mechdyn/internal/mechanism"
	"github.com/san-kum/mechdyn/internal/spatial"
)

const (
	DefaultMass   = 1.0
	DefaultLength = 1.0
)

// Pendulum is a single uniform rod hanging from the world, swinging about
// the y axis. The coordinate is the angle from straight down.
type Pendulum struct {
	Mass   float64
	Length float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Mass:   DefaultMass,
		Length: DefaultLength,
	}
}

func (p *Pendulum) Build() *mechanism.Mechanism {
	m := mechanism.New("world")
	rod := mechanism.NewBody("rod", p.Mass, spatial.Vec3{Z: -p.Length / 2}, rodMoment(p.Mass, p.Length))
	pivot := mechanism.NewJoint("pivot", joints.NewRevolute(spatial.Vec3{Y: 1}))
	attach(m, m.Root(), rod, pivot, spatial.Identity(pivot.FrameBefore(), m.RootFrame()))
	return m
}

// rodMoment is the moment of a thin uniform rod along z about its center,
// with a small residual moment about the long axis.
func rodMoment(mass, length float64) spatial.Mat33 {
	i := mass * length * length / 12
	return spatial.Mat33{{i, 0, 0}, {0, i, 0}, {0, 0, mass * 1e-4}}
}

func attach(m *mechanism.Mechanism, pred, succ *mechanism.RigidBody, j *mechanism.Joint, pose spatial.Transform) {
	if err := m.Attach(pred, succ, j, pose); err != nil {
		panic(err)
	}
}
