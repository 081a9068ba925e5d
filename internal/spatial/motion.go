package spatial

import "fmt"

// Twist is the spatial velocity of frame Body with respect to frame Base,
// expressed in frame Frame.
type Twist struct {
	Body, Base, Frame Frame
	Angular, Linear   Vec3
}

// ZeroTwist returns the zero twist of body w.r.t. base expressed in frame.
func ZeroTwist(body, base, frame Frame) Twist {
	return Twist{Body: body, Base: base, Frame: frame}
}

// Add composes two twists: the twist of C w.r.t. B plus the twist of B
// w.r.t. A yields the twist of C w.r.t. A. Both operands must be expressed
// in the same frame and must chain through a common body/base frame.
func (t Twist) Add(o Twist) Twist {
	checkFrame(o.Frame, t.Frame)
	ang := t.Angular.Add(o.Angular)
	lin := t.Linear.Add(o.Linear)
	switch {
	case t.Base == o.Body:
		return Twist{Body: t.Body, Base: o.Base, Frame: t.Frame, Angular: ang, Linear: lin}
	case o.Base == t.Body:
		return Twist{Body: o.Body, Base: t.Base, Frame: t.Frame, Angular: ang, Linear: lin}
	}
	panic(fmt.Sprintf("spatial: cannot compose twist of %v wrt %v with twist of %v wrt %v",
		t.Body.Name(), t.Base.Name(), o.Body.Name(), o.Base.Name()))
}

// Neg returns the twist of Base w.r.t. Body.
func (t Twist) Neg() Twist {
	return Twist{Body: t.Base, Base: t.Body, Frame: t.Frame, Angular: t.Angular.Neg(), Linear: t.Linear.Neg()}
}

// Transform re-expresses the twist in tf.To.
func (t Twist) Transform(tf Transform) Twist {
	checkFrame(t.Frame, tf.From)
	ang, lin := rotateMotion(tf, t.Angular, t.Linear)
	return Twist{Body: t.Body, Base: t.Base, Frame: tf.To, Angular: ang, Linear: lin}
}

// ChangeBase declares a different base frame without changing the numbers.
// Only valid when the new base is rigidly attached to the old one.
func (t Twist) ChangeBase(base Frame) Twist {
	t.Base = base
	return t
}

// ChangeBody declares a different body frame without changing the numbers.
// Only valid when the new body frame is rigidly attached to the old one.
func (t Twist) ChangeBody(body Frame) Twist {
	t.Body = body
	return t
}

// Cross is the spatial motion cross product (se(3) commutator) of two
// twists expressed in the same frame. The result is the acceleration
// correction term that appears when differentiating o in a moving frame.
func (t Twist) Cross(o Twist) SpatialAcceleration {
	checkFrame(o.Frame, t.Frame)
	ang, lin := motionCross(t.Angular, t.Linear, o.Angular, o.Linear)
	return SpatialAcceleration{Body: o.Body, Base: o.Base, Frame: o.Frame, Angular: ang, Linear: lin}
}

// SpatialAcceleration is the time derivative of the twist of Body w.r.t.
// Base, expressed in Frame.
type SpatialAcceleration struct {
	Body, Base, Frame Frame
	Angular, Linear   Vec3
}

// ZeroAcceleration returns the zero acceleration of body w.r.t. base.
func ZeroAcceleration(body, base, frame Frame) SpatialAcceleration {
	return SpatialAcceleration{Body: body, Base: base, Frame: frame}
}

// Add combines two spatial accelerations expressed in the same frame:
// superposition when both describe the same body/base pair, otherwise the
// chaining rule of Twist.Add.
func (a SpatialAcceleration) Add(o SpatialAcceleration) SpatialAcceleration {
	checkFrame(o.Frame, a.Frame)
	ang := a.Angular.Add(o.Angular)
	lin := a.Linear.Add(o.Linear)
	switch {
	case a.Body == o.Body && a.Base == o.Base:
		return SpatialAcceleration{Body: a.Body, Base: a.Base, Frame: a.Frame, Angular: ang, Linear: lin}
	case a.Base == o.Body:
		return SpatialAcceleration{Body: a.Body, Base: o.Base, Frame: a.Frame, Angular: ang, Linear: lin}
	case o.Base == a.Body:
		return SpatialAcceleration{Body: o.Body, Base: a.Base, Frame: a.Frame, Angular: ang, Linear: lin}
	}
	panic(fmt.Sprintf("spatial: cannot compose acceleration of %v wrt %v with acceleration of %v wrt %v",
		a.Body.Name(), a.Base.Name(), o.Body.Name(), o.Base.Name()))
}

func (a SpatialAcceleration) Neg() SpatialAcceleration {
	return SpatialAcceleration{Body: a.Base, Base: a.Body, Frame: a.Frame, Angular: a.Angular.Neg(), Linear: a.Linear.Neg()}
}

// ChangeBase declares a different base frame; valid only for frames rigidly
// attached to the old base.
func (a SpatialAcceleration) ChangeBase(base Frame) SpatialAcceleration {
	a.Base = base
	return a
}

// ChangeBody declares a different body frame; valid only for frames rigidly
// attached to the old body.
func (a SpatialAcceleration) ChangeBody(body Frame) SpatialAcceleration {
	a.Body = body
	return a
}

// Transform re-expresses the acceleration in tf.To. Spatial acceleration is
// not invariant under a change of moving frame, so two correction twists are
// required: the twist of the current (old) frame w.r.t. the new frame, and
// the twist of the acceleration's body w.r.t. its base, both expressed in
// the old frame.
func (a SpatialAcceleration) Transform(tf Transform, currentWrtNew, bodyWrtBase Twist) SpatialAcceleration {
	if a.Frame == tf.To {
		return a
	}
	checkFrame(a.Frame, tf.From)
	checkFrame(currentWrtNew.Frame, a.Frame)
	checkFrame(currentWrtNew.Body, a.Frame)
	checkFrame(currentWrtNew.Base, tf.To)
	checkFrame(bodyWrtBase.Frame, a.Frame)
	checkFrame(bodyWrtBase.Body, a.Body)
	checkFrame(bodyWrtBase.Base, a.Base)

	ang, lin := motionCross(currentWrtNew.Angular, currentWrtNew.Linear, bodyWrtBase.Angular, bodyWrtBase.Linear)
	ang = ang.Add(a.Angular)
	lin = lin.Add(a.Linear)
	ang, lin = rotateMotion(tf, ang, lin)
	return SpatialAcceleration{Body: a.Body, Base: a.Base, Frame: tf.To, Angular: ang, Linear: lin}
}

// rotateMotion applies a transform to a motion-space (angular, linear) pair.
func rotateMotion(tf Transform, ang, lin Vec3) (Vec3, Vec3) {
	angNew := tf.Rot.MulVec(ang)
	linNew := tf.Trans.Cross(angNew).Add(tf.Rot.MulVec(lin))
	return angNew, linNew
}

// motionCross is the se(3) commutator of two motion vectors.
func motionCross(xa, xl, ya, yl Vec3) (Vec3, Vec3) {
	return xa.Cross(ya), xa.Cross(yl).Add(xl.Cross(ya))
}
