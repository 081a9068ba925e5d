package spatial

// Wrench is a spatial force (torque about the frame origin plus a linear
// force) expressed in Frame.
type Wrench struct {
	Frame           Frame
	Angular, Linear Vec3
}

// ZeroWrench returns the zero wrench expressed in frame.
func ZeroWrench(frame Frame) Wrench {
	return Wrench{Frame: frame}
}

// Add sums two wrenches expressed in the same frame.
func (w Wrench) Add(o Wrench) Wrench {
	checkFrame(o.Frame, w.Frame)
	return Wrench{Frame: w.Frame, Angular: w.Angular.Add(o.Angular), Linear: w.Linear.Add(o.Linear)}
}

// Sub subtracts a wrench expressed in the same frame.
func (w Wrench) Sub(o Wrench) Wrench {
	checkFrame(o.Frame, w.Frame)
	return Wrench{Frame: w.Frame, Angular: w.Angular.Sub(o.Angular), Linear: w.Linear.Sub(o.Linear)}
}

func (w Wrench) Neg() Wrench {
	return Wrench{Frame: w.Frame, Angular: w.Angular.Neg(), Linear: w.Linear.Neg()}
}

// Transform re-expresses the wrench in tf.To.
func (w Wrench) Transform(tf Transform) Wrench {
	checkFrame(w.Frame, tf.From)
	ang, lin := rotateForce(tf, w.Angular, w.Linear)
	return Wrench{Frame: tf.To, Angular: ang, Linear: lin}
}

// WrenchFromForce builds the wrench of a point force applied at a point
// given in the same frame as the force.
func WrenchFromForce(frame Frame, point, force Vec3) Wrench {
	return Wrench{Frame: frame, Angular: point.Cross(force), Linear: force}
}

// Momentum is the spatial momentum (angular about the frame origin, linear)
// expressed in Frame.
type Momentum struct {
	Frame           Frame
	Angular, Linear Vec3
}

// Add sums two momenta expressed in the same frame.
func (m Momentum) Add(o Momentum) Momentum {
	checkFrame(o.Frame, m.Frame)
	return Momentum{Frame: m.Frame, Angular: m.Angular.Add(o.Angular), Linear: m.Linear.Add(o.Linear)}
}

// Transform re-expresses the momentum in tf.To.
func (m Momentum) Transform(tf Transform) Momentum {
	checkFrame(m.Frame, tf.From)
	ang, lin := rotateForce(tf, m.Angular, m.Linear)
	return Momentum{Frame: tf.To, Angular: ang, Linear: lin}
}

// CrossMomentum is the spatial force cross product of a twist with a
// momentum, the rate of change the momentum picks up from being expressed
// in a frame moving with the twist.
func (t Twist) CrossMomentum(m Momentum) Wrench {
	checkFrame(m.Frame, t.Frame)
	ang, lin := forceCross(t.Angular, t.Linear, m.Angular, m.Linear)
	return Wrench{Frame: m.Frame, Angular: ang, Linear: lin}
}

// Dot is the power delivered by the wrench through the twist. Both must be
// expressed in the same frame.
func (t Twist) Dot(w Wrench) float64 {
	checkFrame(w.Frame, t.Frame)
	return t.Angular.Dot(w.Angular) + t.Linear.Dot(w.Linear)
}

// DotMomentum pairs the twist with a momentum expressed in the same frame.
// Half of this value is the kinetic energy when the momentum belongs to the
// same twist.
func (t Twist) DotMomentum(m Momentum) float64 {
	checkFrame(m.Frame, t.Frame)
	return t.Angular.Dot(m.Angular) + t.Linear.Dot(m.Linear)
}

// rotateForce applies a transform to a force-space (angular, linear) pair.
func rotateForce(tf Transform, ang, lin Vec3) (Vec3, Vec3) {
	linNew := tf.Rot.MulVec(lin)
	angNew := tf.Rot.MulVec(ang).Add(tf.Trans.Cross(linNew))
	return angNew, linNew
}

// forceCross is the dual cross product acting on force-space vectors.
func forceCross(xa, xl, ya, yl Vec3) (Vec3, Vec3) {
	return xa.Cross(ya).Add(xl.Cross(yl)), xa.Cross(yl)
}
