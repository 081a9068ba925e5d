package spatial

import "fmt"

// Transform is a rigid transform taking coordinates expressed in frame From
// to coordinates expressed in frame To: x_to = Rot*x_from + Trans.
type Transform struct {
	From, To Frame
	Rot      Mat33
	Trans    Vec3
}

// Identity returns the identity transform between two (possibly distinct,
// coincident) frames.
func Identity(from, to Frame) Transform {
	return Transform{From: from, To: to, Rot: Identity3()}
}

// NewTransform builds a transform from a rotation and a translation.
func NewTransform(from, to Frame, rot Mat33, trans Vec3) Transform {
	return Transform{From: from, To: to, Rot: rot, Trans: trans}
}

// Compose returns t ∘ u, the transform taking u.From to t.To.
// Panics unless u.To == t.From.
func (t Transform) Compose(u Transform) Transform {
	checkFrame(u.To, t.From)
	return Transform{
		From: u.From,
		To:   t.To,
		Rot:  t.Rot.Mul(u.Rot),
		Trans: Vec3{
			t.Trans.X + t.Rot[0][0]*u.Trans.X + t.Rot[0][1]*u.Trans.Y + t.Rot[0][2]*u.Trans.Z,
			t.Trans.Y + t.Rot[1][0]*u.Trans.X + t.Rot[1][1]*u.Trans.Y + t.Rot[1][2]*u.Trans.Z,
			t.Trans.Z + t.Rot[2][0]*u.Trans.X + t.Rot[2][1]*u.Trans.Y + t.Rot[2][2]*u.Trans.Z,
		},
	}
}

// Inverse returns the transform taking To back to From.
func (t Transform) Inverse() Transform {
	rt := t.Rot.Transpose()
	return Transform{From: t.To, To: t.From, Rot: rt, Trans: rt.MulVec(t.Trans).Neg()}
}

// Apply maps a point expressed in From to its coordinates in To.
func (t Transform) Apply(p Vec3) Vec3 {
	return t.Rot.MulVec(p).Add(t.Trans)
}

// ApplyVec rotates a free vector (no translation applied).
func (t Transform) ApplyVec(v Vec3) Vec3 {
	return t.Rot.MulVec(v)
}

func (t Transform) String() string {
	return fmt.Sprintf("Transform(%s -> %s)", t.From.Name(), t.To.Name())
}
