package models

import (
	"github.com/san-kum/mechdyn/internal/joints"
	"github.com/san-kum/mechdyn/internal/mechanism"
	"github.com/san-kum/mechdyn/internal/spatial"
)

// CartPole is a cart sliding along the x axis carrying an inverted rod.
// At the reference configuration the rod points straight up, so the bias
// torque vanishes there and the equilibrium is unstable.
type CartPole struct {
	CartMass   float64
	PoleMass   float64
	PoleLength float64
}

func NewCartPole() *CartPole {
	return &CartPole{
		CartMass:   1.0,
		PoleMass:   0.3,
		PoleLength: 0.6,
	}
}

func (c *CartPole) Build() *mechanism.Mechanism {
	m := mechanism.New("world")
	cart := mechanism.NewBody("cart", c.CartMass, spatial.Vec3{},
		spatial.Mat33{{0.01, 0, 0}, {0, 0.01, 0}, {0, 0, 0.01}})
	pole := mechanism.NewBody("pole", c.PoleMass, spatial.Vec3{Z: c.PoleLength / 2}, rodMoment(c.PoleMass, c.PoleLength))
	track := mechanism.NewJoint("track", joints.NewPrismatic(spatial.Vec3{X: 1}))
	hinge := mechanism.NewJoint("hinge", joints.NewRevolute(spatial.Vec3{Y: 1}))
	attach(m, m.Root(), cart, track, spatial.Identity(track.FrameBefore(), m.RootFrame()))
	attach(m, cart, pole, hinge, spatial.Identity(hinge.FrameBefore(), cart.Frame()))
	return m
}
