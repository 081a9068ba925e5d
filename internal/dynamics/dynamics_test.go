package dynamics_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/mechdyn/internal/dynamics"
	"github.com/san-kum/mechdyn/internal/mechanism"
	"github.com/san-kum/mechdyn/internal/spatial"
	"github.com/san-kum/mechdyn/internal/state"
)

var _ = Describe("Mass matrix", func() {
	It("reduces to the classic value for a hanging rod", func() {
		st := state.New(pendulum())
		h := dynamics.MassMatrix(st)
		r, c := h.Dims()
		Expect(r).To(Equal(1))
		Expect(c).To(Equal(1))
		Expect(h.At(0, 0)).To(BeNumerically("~", rodMass*rodLen*rodLen/3, 1e-12))
	})

	It("matches the textbook double pendulum blocks", func() {
		st := state.New(doublePendulum())
		q := []float64{0.3, 0.9}
		Expect(st.SetConfiguration(q)).To(Succeed())
		h := dynamics.MassMatrix(st)

		r := rodLen / 2
		iy := rodMass * rodLen * rodLen / 12
		c2 := math.Cos(q[1])
		h11 := 2*iy + rodMass*r*r + rodMass*(rodLen*rodLen+r*r+2*rodLen*r*c2)
		h12 := iy + rodMass*(r*r+rodLen*r*c2)
		h22 := iy + rodMass*r*r
		Expect(h.At(0, 0)).To(BeNumerically("~", h11, 1e-12))
		Expect(h.At(0, 1)).To(BeNumerically("~", h12, 1e-12))
		Expect(h.At(1, 0)).To(BeNumerically("~", h12, 1e-12))
		Expect(h.At(1, 1)).To(BeNumerically("~", h22, 1e-12))
	})

	It("is positive definite at random configurations", func() {
		m := rig()
		for seed := int64(1); seed <= 4; seed++ {
			st := randomState(m, seed)
			var chol mat.Cholesky
			Expect(chol.Factorize(dynamics.MassMatrix(st))).To(BeTrue(), "seed %d", seed)
		}
	})

	It("matches the kinetic energy quadratic form", func() {
		st := randomState(rig(), 5)
		h := dynamics.MassMatrix(st)
		v := mat.NewVecDense(st.NV(), st.Velocity())
		Expect(dynamics.KineticEnergy(st)).To(BeNumerically("~", mat.Inner(v, h, v)/2, 1e-10))
	})

	It("agrees with inverse dynamics columns", func() {
		st := randomState(rig(), 3)
		h := dynamics.MassMatrix(st)
		bias := dynamics.DynamicsBias(st, nil)
		nv := st.NV()
		for i := 0; i < nv; i++ {
			unit := make([]float64, nv)
			unit[i] = 1
			tau := dynamics.InverseDynamics(st, unit, nil)
			for j := 0; j < nv; j++ {
				Expect(tau[j]-bias[j]).To(BeNumerically("~", h.At(j, i), 1e-9), "column %d row %d", i, j)
			}
		}
	})

	It("spans only the tree coordinates of a closed loop", func() {
		m := fourBar()
		st := state.New(m)
		Expect(st.SetConfiguration([]float64{0.5, -0.4})).To(Succeed())
		h := dynamics.MassMatrix(st)
		r, c := h.Dims()
		Expect(r).To(Equal(m.NV()))
		Expect(c).To(Equal(m.NV()))
		var chol mat.Cholesky
		Expect(chol.Factorize(h)).To(BeTrue())
	})
})

var _ = Describe("Inverse dynamics", func() {
	It("balances gravity for a rod held at an angle", func() {
		m := pendulum()
		st := state.New(m)
		theta := 0.7
		Expect(st.SetConfiguration([]float64{theta})).To(Succeed())
		tau := dynamics.DynamicsBias(st, nil)
		g0 := -m.Gravity().Z
		Expect(tau).To(HaveLen(1))
		Expect(tau[0]).To(BeNumerically("~", rodMass*g0*(rodLen/2)*math.Sin(theta), 1e-12))
	})

	It("reproduces the textbook double pendulum torques", func() {
		m := doublePendulum()
		st := state.New(m)
		q := []float64{0.7, -1.1}
		v := []float64{0.4, 1.9}
		Expect(st.SetConfiguration(q)).To(Succeed())
		Expect(st.SetVelocity(v)).To(Succeed())
		vdot := []float64{-0.8, 0.6}
		tau := dynamics.InverseDynamics(st, vdot, nil)

		g0 := -m.Gravity().Z
		r := rodLen / 2
		iy := rodMass * rodLen * rodLen / 12
		c2, s2 := math.Cos(q[1]), math.Sin(q[1])
		h11 := 2*iy + rodMass*r*r + rodMass*(rodLen*rodLen+r*r+2*rodLen*r*c2)
		h12 := iy + rodMass*(r*r+rodLen*r*c2)
		h22 := iy + rodMass*r*r
		hc := -rodMass * rodLen * r * s2
		g1 := rodMass*(r+rodLen)*g0*math.Sin(q[0]) + rodMass*r*g0*math.Sin(q[0]+q[1])
		g2 := rodMass * r * g0 * math.Sin(q[0]+q[1])

		Expect(tau[0]).To(BeNumerically("~", h11*vdot[0]+h12*vdot[1]+hc*v[1]*(2*v[0]+v[1])+g1, 1e-9))
		Expect(tau[1]).To(BeNumerically("~", h12*vdot[0]+h22*vdot[1]-hc*v[0]*v[0]+g2, 1e-9))
	})

	It("round-trips through a forward solve", func() {
		st := randomState(rig(), 6)
		nv := st.NV()
		rng := rand.New(rand.NewSource(7))
		tau := make([]float64, nv)
		for i := range tau {
			tau[i] = rng.NormFloat64()
		}

		var chol mat.Cholesky
		Expect(chol.Factorize(dynamics.MassMatrix(st))).To(BeTrue())
		bias := dynamics.DynamicsBias(st, nil)
		rhs := mat.NewVecDense(nv, nil)
		for i := 0; i < nv; i++ {
			rhs.SetVec(i, tau[i]-bias[i])
		}
		var accel mat.VecDense
		Expect(chol.SolveVecTo(&accel, rhs)).To(Succeed())

		vdot := make([]float64, nv)
		for i := range vdot {
			vdot[i] = accel.AtVec(i)
		}
		back := dynamics.InverseDynamics(st, vdot, nil)
		for i := range back {
			Expect(back[i]).To(BeNumerically("~", tau[i], 1e-8), "coordinate %d", i)
		}
	})

	It("projects external wrenches through the ancestor joints", func() {
		m := rig()
		st := randomState(m, 8)
		tip := m.FindBody("tip")
		Expect(tip).NotTo(BeNil())
		w := spatial.Wrench{
			Frame:   m.RootFrame(),
			Angular: spatial.Vec3{X: 0.3, Y: -1.2, Z: 0.5},
			Linear:  spatial.Vec3{X: 2, Y: 0.7, Z: -1.4},
		}

		zero := make([]float64, st.NV())
		plain := dynamics.InverseDynamics(st, zero, nil)
		loaded := dynamics.InverseDynamics(st, zero, map[mechanism.BodyID]spatial.Wrench{tip.ID(): w})

		// the wrench should show up as S^T w at every joint between the
		// tip and the root, including across the weld
		want := make([]float64, st.NV())
		for id := tip.ID(); id != 0; id = m.Parent(id) {
			j := m.ParentJoint(id)
			if j.NV() == 0 {
				continue
			}
			lo, hi := st.VelocityRange(j)
			st.MotionSubspace(j).TransposeMulWrench(w, want[lo:hi])
		}
		for i := range want {
			Expect(plain[i]-loaded[i]).To(BeNumerically("~", want[i], 1e-9), "coordinate %d", i)
		}
	})

	It("returns the bias at zero joint acceleration", func() {
		m := rig()
		st := randomState(m, 9)
		arm := m.FindBody("arm")
		Expect(arm).NotTo(BeNil())
		ext := map[mechanism.BodyID]spatial.Wrench{
			arm.ID(): {Frame: m.RootFrame(), Angular: spatial.Vec3{Z: 0.4}, Linear: spatial.Vec3{X: -1}},
		}

		zero := make([]float64, st.NV())
		want := dynamics.InverseDynamics(st, zero, ext)
		got := dynamics.DynamicsBias(st, ext)
		for i := range got {
			Expect(got[i]).To(BeNumerically("~", want[i], 1e-12), "coordinate %d", i)
		}
	})
})

var _ = Describe("Momentum", func() {
	It("factors through the momentum matrix", func() {
		st := randomState(rig(), 10)
		a := dynamics.MomentumMatrix(st)
		var hv mat.VecDense
		hv.MulVec(a, mat.NewVecDense(st.NV(), st.Velocity()))

		h := dynamics.Momentum(st)
		for i, want := range []float64{h.Angular.X, h.Angular.Y, h.Angular.Z, h.Linear.X, h.Linear.Y, h.Linear.Z} {
			Expect(hv.AtVec(i)).To(BeNumerically("~", want, 1e-10), "row %d", i)
		}
	})

	It("balances gravity at rest", func() {
		m := rig()
		st := state.New(m)
		st.RandConfiguration(rand.New(rand.NewSource(11)))

		rate := dynamics.MomentumRateBias(st)
		g := m.Gravity()
		mass := dynamics.TotalMass(st)
		wantAng := g.Cross(dynamics.CenterOfMass(st).Scale(mass))
		wantLin := g.Scale(-mass)
		Expect(rate.Angular.X).To(BeNumerically("~", wantAng.X, 1e-10))
		Expect(rate.Angular.Y).To(BeNumerically("~", wantAng.Y, 1e-10))
		Expect(rate.Angular.Z).To(BeNumerically("~", wantAng.Z, 1e-10))
		Expect(rate.Linear.X).To(BeNumerically("~", wantLin.X, 1e-10))
		Expect(rate.Linear.Y).To(BeNumerically("~", wantLin.Y, 1e-10))
		Expect(rate.Linear.Z).To(BeNumerically("~", wantLin.Z, 1e-10))
	})
})

var _ = Describe("Mass distribution", func() {
	It("averages the link centers at the reference configuration", func() {
		st := state.New(doublePendulum())
		Expect(dynamics.TotalMass(st)).To(BeNumerically("~", 2*rodMass, 1e-12))
		com := dynamics.CenterOfMass(st)
		Expect(com.X).To(BeNumerically("~", 0, 1e-12))
		Expect(com.Y).To(BeNumerically("~", 0, 1e-12))
		Expect(com.Z).To(BeNumerically("~", -rodLen, 1e-12))
	})

	It("tracks the potential energy of a tilted rod", func() {
		m := pendulum()
		st := state.New(m)
		theta := 0.9
		Expect(st.SetConfiguration([]float64{theta})).To(Succeed())
		g0 := -m.Gravity().Z
		want := -rodMass * g0 * (rodLen / 2) * math.Cos(theta)
		Expect(dynamics.GravitationalPotentialEnergy(st)).To(BeNumerically("~", want, 1e-12))
	})
})
