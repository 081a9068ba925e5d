package viz

import (
	"math"

	"github.com/san-kum/mechdyn/internal/spatial"
	"github.com/san-kum/mechdyn/internal/state"
)

// PoseRenderer draws a mechanism pose onto a braille canvas. The pose is
// projected onto the root frame's x-z plane (x right, z up) and scaled
// uniformly to fit the canvas. Links are lines between joint anchors,
// mass centers get blobs, contact points single dots.
type PoseRenderer struct {
	canvas *Canvas

	// Margin is the padding fraction around the fitted bounds.
	Margin float64
}

func NewPoseRenderer(width, height int) *PoseRenderer {
	return &PoseRenderer{canvas: NewCanvas(width, height), Margin: 0.15}
}

func (r *PoseRenderer) Resize(width, height int) {
	if width == r.canvas.width && height == r.canvas.height {
		return
	}
	r.canvas = NewCanvas(width, height)
}

func (r *PoseRenderer) Canvas() *Canvas { return r.canvas }

type segment struct {
	a, b spatial.Vec3
}

// Render draws the pose and returns the canvas text.
func (r *PoseRenderer) Render(st *state.MechanismState) string {
	r.RenderCanvas(st)
	return r.canvas.String()
}

// RenderCanvas draws the pose and returns the canvas itself, for callers
// that post-process cells (SVG export).
func (r *PoseRenderer) RenderCanvas(st *state.MechanismState) *Canvas {
	m := st.Mechanism()

	segs := make([]segment, 0, 2*m.NBodies())
	var blobs, points []spatial.Vec3
	bounds := []spatial.Vec3{{}}

	for _, j := range m.TreeJoints() {
		a := st.TransformToRoot(j.Predecessor()).Trans
		b := st.TransformToRoot(j.Successor()).Trans
		segs = append(segs, segment{a, b})
		bounds = append(bounds, a, b)
	}
	for _, b := range m.Bodies()[1:] {
		tf := st.TransformToRoot(b)
		if b.HasInertia() {
			com := tf.Apply(b.Inertia().CenterOfMass())
			segs = append(segs, segment{tf.Trans, com})
			blobs = append(blobs, com)
			bounds = append(bounds, com)
		}
		for _, cp := range b.ContactPoints() {
			p := tf.Apply(cp.Location)
			points = append(points, p)
			bounds = append(bounds, p)
		}
	}

	minX, maxX := bounds[0].X, bounds[0].X
	minZ, maxZ := bounds[0].Z, bounds[0].Z
	for _, p := range bounds {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minZ = math.Min(minZ, p.Z)
		maxZ = math.Max(maxZ, p.Z)
	}
	span := math.Max(maxX-minX, maxZ-minZ)
	if span < 1e-9 {
		span = 1
	}
	span *= 1 + 2*r.Margin
	cx, cz := (minX+maxX)/2, (minZ+maxZ)/2

	c := r.canvas
	c.Clear()
	scale := math.Min(float64(c.DotWidth()), float64(c.DotHeight())) / span
	px := func(p spatial.Vec3) int { return c.DotWidth()/2 + int(math.Round((p.X-cx)*scale)) }
	py := func(p spatial.Vec3) int { return c.DotHeight()/2 - int(math.Round((p.Z-cz)*scale)) }

	for _, s := range segs {
		c.Line(px(s.a), py(s.a), px(s.b), py(s.b))
	}
	for _, p := range blobs {
		c.Mark(px(p), py(p))
	}
	for _, p := range points {
		c.Set(px(p), py(p))
	}
	return c
}
