package spatial

// SpatialInertia is the mass distribution of a rigid body expressed in
// Frame. CrossPart is mass times the center of mass position; Moment is the
// rotational inertia about the frame origin, not the center of mass.
type SpatialInertia struct {
	Frame     Frame
	Moment    Mat33
	CrossPart Vec3
	Mass      float64
}

// NewSpatialInertia builds an inertia from the mass, the center of mass
// position in frame, and the rotational inertia about the center of mass.
func NewSpatialInertia(frame Frame, mass float64, com Vec3, momentAboutCOM Mat33) SpatialInertia {
	// Parallel axis: J_origin = J_com + m*(|c|^2 I - c c^T).
	c2 := com.Dot(com)
	j := momentAboutCOM
	shift := Outer(com, com).Scale(-mass)
	shift[0][0] += mass * c2
	shift[1][1] += mass * c2
	shift[2][2] += mass * c2
	return SpatialInertia{
		Frame:     frame,
		Moment:    j.Add(shift),
		CrossPart: com.Scale(mass),
		Mass:      mass,
	}
}

// PointMass builds the inertia of a point mass located at pos in frame.
func PointMass(frame Frame, mass float64, pos Vec3) SpatialInertia {
	return NewSpatialInertia(frame, mass, pos, Mat33{})
}

// ZeroInertia returns a massless inertia expressed in frame.
func ZeroInertia(frame Frame) SpatialInertia {
	return SpatialInertia{Frame: frame}
}

// Add sums two inertias expressed in the same frame.
func (in SpatialInertia) Add(o SpatialInertia) SpatialInertia {
	checkFrame(o.Frame, in.Frame)
	return SpatialInertia{
		Frame:     in.Frame,
		Moment:    in.Moment.Add(o.Moment),
		CrossPart: in.CrossPart.Add(o.CrossPart),
		Mass:      in.Mass + o.Mass,
	}
}

// CenterOfMass returns the center of mass position in Frame. It is the zero
// vector for a massless inertia.
func (in SpatialInertia) CenterOfMass() Vec3 {
	if in.Mass == 0 {
		return Vec3{}
	}
	return in.CrossPart.Scale(1 / in.Mass)
}

// Transform re-expresses the inertia in tf.To.
func (in SpatialInertia) Transform(tf Transform) SpatialInertia {
	checkFrame(in.Frame, tf.From)
	r, p := tf.Rot, tf.Trans
	rmc := r.MulVec(in.CrossPart)
	mp := p.Scale(in.Mass)
	x := Outer(rmc, p)
	y := x.Add(x.Transpose()).Add(Outer(mp, p))
	jnew := r.Mul(in.Moment).Mul(r.Transpose()).Sub(y)
	try := y.Trace()
	jnew[0][0] += try
	jnew[1][1] += try
	jnew[2][2] += try
	return SpatialInertia{Frame: tf.To, Moment: jnew, CrossPart: rmc.Add(mp), Mass: in.Mass}
}

// Mul applies the inertia to a twist, producing the spatial momentum.
func (in SpatialInertia) Mul(t Twist) Momentum {
	checkFrame(t.Frame, in.Frame)
	ang, lin := mulInertia(in, t.Angular, t.Linear)
	return Momentum{Frame: in.Frame, Angular: ang, Linear: lin}
}

// NewtonEuler computes the wrench required to produce the given acceleration
// of a body moving with the given twist: W = I*a + v x* (I*v). The twist's
// base must be an inertial frame for the result to be meaningful.
func (in SpatialInertia) NewtonEuler(accel SpatialAcceleration, twist Twist) Wrench {
	checkFrame(twist.Body, accel.Body)
	checkFrame(twist.Base, accel.Base)
	checkFrame(twist.Frame, accel.Frame)
	checkFrame(in.Frame, accel.Frame)
	ang, lin := mulInertia(in, accel.Angular, accel.Linear)
	mang, mlin := mulInertia(in, twist.Angular, twist.Linear)
	cang, clin := forceCross(twist.Angular, twist.Linear, mang, mlin)
	return Wrench{Frame: in.Frame, Angular: ang.Add(cang), Linear: lin.Add(clin)}
}

// KineticEnergy is the kinetic energy of a body with this inertia moving
// with the given twist.
func (in SpatialInertia) KineticEnergy(t Twist) float64 {
	checkFrame(in.Frame, t.Frame)
	w, v := t.Angular, t.Linear
	return (w.Dot(in.Moment.MulVec(w)) + v.Dot(v.Scale(in.Mass).Add(w.Cross(in.CrossPart).Scale(2)))) / 2
}

func mulInertia(in SpatialInertia, ang, lin Vec3) (Vec3, Vec3) {
	outAng := in.Moment.MulVec(ang).Add(in.CrossPart.Cross(lin))
	outLin := lin.Scale(in.Mass).Sub(in.CrossPart.Cross(ang))
	return outAng, outLin
}
