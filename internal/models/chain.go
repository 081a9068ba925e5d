package models

import (
	"fmt"

	"github.com/san-kum/mechdyn/internal/joints"
	"github.com/san-kum/mechdyn/internal/mechanism"
	"github.com/san-kum/mechdyn/internal/spatial"
)

// Chain is a serial arm of identical links with revolute joints
// alternating between the y and x axes, so long chains leave the plane.
type Chain struct {
	Links    int
	LinkMass float64
	LinkLen  float64
}

func NewChain(links int) *Chain {
	return &Chain{
		Links:    links,
		LinkMass: DefaultMass / 2,
		LinkLen:  DefaultLength / 2,
	}
}

func (c *Chain) Build() *mechanism.Mechanism {
	m := mechanism.New("world")
	pred := m.Root()
	for i := 0; i < c.Links; i++ {
		link := mechanism.NewBody(fmt.Sprintf("link%d", i+1), c.LinkMass,
			spatial.Vec3{Z: -c.LinkLen / 2}, rodMoment(c.LinkMass, c.LinkLen))
		axis := spatial.Vec3{Y: 1}
		if i%2 == 1 {
			axis = spatial.Vec3{X: 1}
		}
		j := mechanism.NewJoint(fmt.Sprintf("joint%d", i+1), joints.NewRevolute(axis))
		pose := spatial.Identity(j.FrameBefore(), pred.Frame())
		if i > 0 {
			pose = spatial.NewTransform(j.FrameBefore(), pred.Frame(), spatial.Identity3(), spatial.Vec3{Z: -c.LinkLen})
		}
		attach(m, pred, link, j, pose)
		pred = link
	}
	return m
}
