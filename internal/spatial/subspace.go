package spatial

import "fmt"

// MotionSubspace is a basis of motion space: a set of twist columns mapping
// velocity coordinates to the twist of Body w.r.t. Base, expressed in Frame.
type MotionSubspace struct {
	Body, Base, Frame Frame
	Angular, Linear   []Vec3
}

// NewMotionSubspace builds a motion subspace from parallel angular and
// linear column slices.
func NewMotionSubspace(body, base, frame Frame, angular, linear []Vec3) MotionSubspace {
	if len(angular) != len(linear) {
		panic(fmt.Sprintf("spatial: column count mismatch: %d angular vs %d linear", len(angular), len(linear)))
	}
	return MotionSubspace{Body: body, Base: base, Frame: frame, Angular: angular, Linear: linear}
}

// NCols returns the number of columns.
func (s MotionSubspace) NCols() int { return len(s.Angular) }

// Col returns the i-th column.
func (s MotionSubspace) Col(i int) (ang, lin Vec3) { return s.Angular[i], s.Linear[i] }

// ChangeBody declares a different body frame without changing the columns.
// Only valid when the new body frame is rigidly attached to the old one.
func (s MotionSubspace) ChangeBody(body Frame) MotionSubspace {
	s.Body = body
	return s
}

// ChangeBase declares a different base frame without changing the columns.
// Only valid when the new base is rigidly attached to the old one.
func (s MotionSubspace) ChangeBase(base Frame) MotionSubspace {
	s.Base = base
	return s
}

// Transform re-expresses every column in tf.To.
func (s MotionSubspace) Transform(tf Transform) MotionSubspace {
	checkFrame(s.Frame, tf.From)
	angular := make([]Vec3, len(s.Angular))
	linear := make([]Vec3, len(s.Linear))
	for i := range s.Angular {
		angular[i], linear[i] = rotateMotion(tf, s.Angular[i], s.Linear[i])
	}
	return MotionSubspace{Body: s.Body, Base: s.Base, Frame: tf.To, Angular: angular, Linear: linear}
}

// Mul maps velocity coordinates through the subspace to a twist.
func (s MotionSubspace) Mul(v []float64) Twist {
	if len(v) != s.NCols() {
		panic(fmt.Sprintf("spatial: %d velocity coordinates for %d columns", len(v), s.NCols()))
	}
	var ang, lin Vec3
	for i, vi := range v {
		ang = ang.Add(s.Angular[i].Scale(vi))
		lin = lin.Add(s.Linear[i].Scale(vi))
	}
	return Twist{Body: s.Body, Base: s.Base, Frame: s.Frame, Angular: ang, Linear: lin}
}

// TransposeMulWrench projects a wrench onto the subspace, writing one
// generalized force per column into dst.
func (s MotionSubspace) TransposeMulWrench(w Wrench, dst []float64) {
	checkFrame(w.Frame, s.Frame)
	if len(dst) != s.NCols() {
		panic(fmt.Sprintf("spatial: %d outputs for %d columns", len(dst), s.NCols()))
	}
	for i := range dst {
		dst[i] = s.Angular[i].Dot(w.Angular) + s.Linear[i].Dot(w.Linear)
	}
}

// WrenchSubspace is a basis of force space: a set of wrench columns
// expressed in Frame. Joints use it to describe the directions in which
// they transmit constraint forces.
type WrenchSubspace struct {
	Frame           Frame
	Angular, Linear []Vec3
}

// NewWrenchSubspace builds a wrench subspace from parallel angular and
// linear column slices.
func NewWrenchSubspace(frame Frame, angular, linear []Vec3) WrenchSubspace {
	if len(angular) != len(linear) {
		panic(fmt.Sprintf("spatial: column count mismatch: %d angular vs %d linear", len(angular), len(linear)))
	}
	return WrenchSubspace{Frame: frame, Angular: angular, Linear: linear}
}

// NCols returns the number of columns.
func (ws WrenchSubspace) NCols() int { return len(ws.Angular) }

// Col returns the i-th column.
func (ws WrenchSubspace) Col(i int) (ang, lin Vec3) { return ws.Angular[i], ws.Linear[i] }

// Transform re-expresses every column in tf.To.
func (ws WrenchSubspace) Transform(tf Transform) WrenchSubspace {
	checkFrame(ws.Frame, tf.From)
	angular := make([]Vec3, len(ws.Angular))
	linear := make([]Vec3, len(ws.Linear))
	for i := range ws.Angular {
		angular[i], linear[i] = rotateForce(tf, ws.Angular[i], ws.Linear[i])
	}
	return WrenchSubspace{Frame: tf.To, Angular: angular, Linear: linear}
}

// Mul maps force coordinates through the subspace to a wrench.
func (ws WrenchSubspace) Mul(lambda []float64) Wrench {
	if len(lambda) != ws.NCols() {
		panic(fmt.Sprintf("spatial: %d force coordinates for %d columns", len(lambda), ws.NCols()))
	}
	var ang, lin Vec3
	for i, li := range lambda {
		ang = ang.Add(ws.Angular[i].Scale(li))
		lin = lin.Add(ws.Linear[i].Scale(li))
	}
	return Wrench{Frame: ws.Frame, Angular: ang, Linear: lin}
}

// TransposeMulTwist projects a twist onto the subspace, one entry per
// column. The result is zero for any twist the constraints permit.
func (ws WrenchSubspace) TransposeMulTwist(t Twist, dst []float64) {
	checkFrame(t.Frame, ws.Frame)
	if len(dst) != ws.NCols() {
		panic(fmt.Sprintf("spatial: %d outputs for %d columns", len(dst), ws.NCols()))
	}
	for i := range dst {
		dst[i] = ws.Angular[i].Dot(t.Angular) + ws.Linear[i].Dot(t.Linear)
	}
}

// MomentumMatrix maps velocity coordinates to momentum: the columns are the
// momenta produced by unit velocity along each motion subspace column.
type MomentumMatrix struct {
	Frame           Frame
	Angular, Linear []Vec3
}

// MulSubspace applies the inertia to every column of a motion subspace.
func (in SpatialInertia) MulSubspace(s MotionSubspace) MomentumMatrix {
	checkFrame(s.Frame, in.Frame)
	angular := make([]Vec3, s.NCols())
	linear := make([]Vec3, s.NCols())
	for i := range angular {
		angular[i], linear[i] = mulInertia(in, s.Angular[i], s.Linear[i])
	}
	return MomentumMatrix{Frame: in.Frame, Angular: angular, Linear: linear}
}

// NCols returns the number of columns.
func (mm MomentumMatrix) NCols() int { return len(mm.Angular) }

// Col returns the i-th column.
func (mm MomentumMatrix) Col(i int) (ang, lin Vec3) { return mm.Angular[i], mm.Linear[i] }

// Mul maps velocity coordinates through the matrix to a momentum.
func (mm MomentumMatrix) Mul(v []float64) Momentum {
	if len(v) != mm.NCols() {
		panic(fmt.Sprintf("spatial: %d velocity coordinates for %d columns", len(v), mm.NCols()))
	}
	var ang, lin Vec3
	for i, vi := range v {
		ang = ang.Add(mm.Angular[i].Scale(vi))
		lin = lin.Add(mm.Linear[i].Scale(vi))
	}
	return Momentum{Frame: mm.Frame, Angular: ang, Linear: lin}
}
