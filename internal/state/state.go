package state

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/san-kum/mechdyn/internal/mechanism"
	"github.com/san-kum/mechdyn/internal/spatial"
)

// ErrSizeMismatch is returned by setters when the supplied vector does not
// match the mechanism's dimensions.
var ErrSizeMismatch = errors.New("state: size mismatch")

// segment is a half-open window into one of the flat state vectors.
type segment struct {
	off, n int
}

func (s segment) of(x []float64) []float64 { return x[s.off : s.off+s.n] }

// contactSlot maps one (body, contact point, environment element) pair to
// its window of the additional state vector.
type contactSlot struct {
	body  mechanism.BodyID
	point int
	env   int
	model mechanism.ContactModel
	seg   segment
}

// MechanismState carries q, v and contact state for one mechanism along
// with every cached quantity derived from them. The cached slices are
// indexed by JointID or BodyID; joint-indexed caches other than the joint
// transforms cover tree joints only.
type MechanismState struct {
	mech *mechanism.Mechanism

	q []float64
	v []float64
	s []float64

	qRanges []segment
	vRanges []segment
	slots   []contactSlot

	jointTransforms     cacheElement[spatial.Transform]
	jointTwists         cacheElement[spatial.Twist]
	jointBias           cacheElement[spatial.SpatialAcceleration]
	jointSubspaces      cacheElement[spatial.MotionSubspace]
	worldSubspaces      cacheElement[spatial.MotionSubspace]
	constraintSubspaces cacheElement[spatial.WrenchSubspace]
	toRoot              cacheElement[spatial.Transform]
	twists              cacheElement[spatial.Twist]
	biasAccels          cacheElement[spatial.SpatialAcceleration]
	inertias            cacheElement[spatial.SpatialInertia]
	crbInertias         cacheElement[spatial.SpatialInertia]

	// onUpdate, when set, observes every cache recomputation by name.
	onUpdate func(string)
}

// New creates a state for m at the reference configuration with zero
// velocity and freshly reset contact state.
func New(m *mechanism.Mechanism) *MechanismState {
	nb := m.NBodies()
	nt := len(m.TreeJoints())
	nl := len(m.NonTreeJoints())

	st := &MechanismState{
		mech:    m,
		q:       make([]float64, m.NQ()),
		v:       make([]float64, m.NV()),
		qRanges: make([]segment, nt),
		vRanges: make([]segment, nt),

		jointTransforms:     newCacheElement[spatial.Transform](nt + nl),
		jointTwists:         newCacheElement[spatial.Twist](nt),
		jointBias:           newCacheElement[spatial.SpatialAcceleration](nt),
		jointSubspaces:      newCacheElement[spatial.MotionSubspace](nt),
		worldSubspaces:      newCacheElement[spatial.MotionSubspace](nt),
		constraintSubspaces: newCacheElement[spatial.WrenchSubspace](nl),
		toRoot:              newCacheElement[spatial.Transform](nb),
		twists:              newCacheElement[spatial.Twist](nb),
		biasAccels:          newCacheElement[spatial.SpatialAcceleration](nb),
		inertias:            newCacheElement[spatial.SpatialInertia](nb),
		crbInertias:         newCacheElement[spatial.SpatialInertia](nb),
	}

	qoff, voff := 0, 0
	for i, j := range m.TreeJoints() {
		st.qRanges[i] = segment{qoff, j.NQ()}
		st.vRanges[i] = segment{voff, j.NV()}
		j.Type().ZeroConfiguration(st.qRanges[i].of(st.q))
		qoff += j.NQ()
		voff += j.NV()
	}

	soff := 0
	for _, b := range m.Bodies() {
		for pi, cp := range b.ContactPoints() {
			for ei := range m.Environment() {
				n := cp.Model.StateDim()
				st.slots = append(st.slots, contactSlot{b.ID(), pi, ei, cp.Model, segment{soff, n}})
				soff += n
			}
		}
	}
	st.s = make([]float64, soff)
	st.resetContacts()
	return st
}

// Clone returns an independent state with the same q, v and contact state.
// Caches are not copied; the clone recomputes on first read.
func (st *MechanismState) Clone() *MechanismState {
	out := New(st.mech)
	copy(out.q, st.q)
	copy(out.v, st.v)
	copy(out.s, st.s)
	return out
}

// Mechanism returns the mechanism this state belongs to.
func (st *MechanismState) Mechanism() *mechanism.Mechanism { return st.mech }

// NQ is the length of the configuration vector.
func (st *MechanismState) NQ() int { return len(st.q) }

// NV is the length of the velocity vector.
func (st *MechanismState) NV() int { return len(st.v) }

// NAdditionalState is the length of the contact state vector.
func (st *MechanismState) NAdditionalState() int { return len(st.s) }

// Configuration returns the backing configuration vector. Callers that
// mutate it must call Invalidate afterwards.
func (st *MechanismState) Configuration() []float64 { return st.q }

// Velocity returns the backing velocity vector. Callers that mutate it
// must call Invalidate afterwards.
func (st *MechanismState) Velocity() []float64 { return st.v }

// AdditionalState returns the backing contact state vector. It feeds no
// cached quantity, so mutating it needs no Invalidate.
func (st *MechanismState) AdditionalState() []float64 { return st.s }

func (st *MechanismState) treeSegment(ranges []segment, j *mechanism.Joint) segment {
	if !j.IsTree() {
		panic(fmt.Sprintf("state: joint %q carries no coordinates (loop joint)", j.Name()))
	}
	return ranges[j.ID()]
}

// JointConfiguration returns the window of the configuration vector owned
// by tree joint j. The slice is live.
func (st *MechanismState) JointConfiguration(j *mechanism.Joint) []float64 {
	return st.treeSegment(st.qRanges, j).of(st.q)
}

// JointVelocity returns the window of the velocity vector owned by tree
// joint j. The slice is live.
func (st *MechanismState) JointVelocity(j *mechanism.Joint) []float64 {
	return st.treeSegment(st.vRanges, j).of(st.v)
}

// ConfigurationRange returns the half-open index range of tree joint j
// within the configuration vector.
func (st *MechanismState) ConfigurationRange(j *mechanism.Joint) (start, end int) {
	seg := st.treeSegment(st.qRanges, j)
	return seg.off, seg.off + seg.n
}

// VelocityRange returns the half-open index range of tree joint j within
// the velocity vector.
func (st *MechanismState) VelocityRange(j *mechanism.Joint) (start, end int) {
	seg := st.treeSegment(st.vRanges, j)
	return seg.off, seg.off + seg.n
}

// ContactState returns the state window of one contact pair: contact
// point index point on body b against environment element env.
func (st *MechanismState) ContactState(b *mechanism.RigidBody, point, env int) []float64 {
	for _, slot := range st.slots {
		if slot.body == b.ID() && slot.point == point && slot.env == env {
			return slot.seg.of(st.s)
		}
	}
	panic(fmt.Sprintf("state: no contact state for body %q point %d against environment element %d",
		b.Name(), point, env))
}

// SetConfiguration copies q into the state, invalidates all caches and
// resets the contact state.
func (st *MechanismState) SetConfiguration(q []float64) error {
	if len(q) != len(st.q) {
		return fmt.Errorf("%w: configuration has length %d, want %d", ErrSizeMismatch, len(q), len(st.q))
	}
	copy(st.q, q)
	st.invalidateAll()
	st.resetContacts()
	return nil
}

// SetVelocity copies v into the state, invalidates all caches and resets
// the contact state.
func (st *MechanismState) SetVelocity(v []float64) error {
	if len(v) != len(st.v) {
		return fmt.Errorf("%w: velocity has length %d, want %d", ErrSizeMismatch, len(v), len(st.v))
	}
	copy(st.v, v)
	st.invalidateAll()
	st.resetContacts()
	return nil
}

// SetJointConfiguration copies q into tree joint j's configuration
// window, invalidates all caches and resets the contact state.
func (st *MechanismState) SetJointConfiguration(j *mechanism.Joint, q []float64) error {
	seg := st.treeSegment(st.qRanges, j)
	if len(q) != seg.n {
		return fmt.Errorf("%w: configuration for joint %q has length %d, want %d", ErrSizeMismatch, j.Name(), len(q), seg.n)
	}
	copy(seg.of(st.q), q)
	st.invalidateAll()
	st.resetContacts()
	return nil
}

// SetJointVelocity copies v into tree joint j's velocity window,
// invalidates all caches and resets the contact state.
func (st *MechanismState) SetJointVelocity(j *mechanism.Joint, v []float64) error {
	seg := st.treeSegment(st.vRanges, j)
	if len(v) != seg.n {
		return fmt.Errorf("%w: velocity for joint %q has length %d, want %d", ErrSizeMismatch, j.Name(), len(v), seg.n)
	}
	copy(seg.of(st.v), v)
	st.invalidateAll()
	st.resetContacts()
	return nil
}

// SetAdditionalState copies s into the contact state vector. No caches
// depend on it, so nothing is invalidated.
func (st *MechanismState) SetAdditionalState(s []float64) error {
	if len(s) != len(st.s) {
		return fmt.Errorf("%w: additional state has length %d, want %d", ErrSizeMismatch, len(s), len(st.s))
	}
	copy(st.s, s)
	return nil
}

// Set copies the stacked vector x = [q; v; s] into the state and
// invalidates all caches. The contact state is taken from x rather than
// reset.
func (st *MechanismState) Set(x []float64) error {
	want := len(st.q) + len(st.v) + len(st.s)
	if len(x) != want {
		return fmt.Errorf("%w: stacked state has length %d, want %d", ErrSizeMismatch, len(x), want)
	}
	copy(st.q, x[:len(st.q)])
	copy(st.v, x[len(st.q):len(st.q)+len(st.v)])
	copy(st.s, x[len(st.q)+len(st.v):])
	st.invalidateAll()
	return nil
}

// ZeroConfiguration moves every tree joint to its reference
// configuration, invalidates all caches and resets the contact state.
func (st *MechanismState) ZeroConfiguration() {
	for i, j := range st.mech.TreeJoints() {
		j.Type().ZeroConfiguration(st.qRanges[i].of(st.q))
	}
	st.invalidateAll()
	st.resetContacts()
}

// ZeroVelocity zeroes the velocity vector, invalidates all caches and
// resets the contact state.
func (st *MechanismState) ZeroVelocity() {
	for i := range st.v {
		st.v[i] = 0
	}
	st.invalidateAll()
	st.resetContacts()
}

// Zero moves the state to the reference configuration at rest.
func (st *MechanismState) Zero() {
	st.ZeroConfiguration()
	st.ZeroVelocity()
}

// RandConfiguration draws a random configuration for every tree joint,
// invalidates all caches and resets the contact state.
func (st *MechanismState) RandConfiguration(rng *rand.Rand) {
	for i, j := range st.mech.TreeJoints() {
		j.Type().RandConfiguration(st.qRanges[i].of(st.q), rng)
	}
	st.invalidateAll()
	st.resetContacts()
}

// RandVelocity draws a standard normal velocity vector, invalidates all
// caches and resets the contact state.
func (st *MechanismState) RandVelocity(rng *rand.Rand) {
	for i := range st.v {
		st.v[i] = rng.NormFloat64()
	}
	st.invalidateAll()
	st.resetContacts()
}

// Invalidate marks every cached quantity stale. Call it after mutating
// the vectors returned by Configuration or Velocity in place.
func (st *MechanismState) Invalidate() { st.invalidateAll() }

func (st *MechanismState) invalidateAll() {
	st.jointTransforms.invalidate()
	st.jointTwists.invalidate()
	st.jointBias.invalidate()
	st.jointSubspaces.invalidate()
	st.worldSubspaces.invalidate()
	st.constraintSubspaces.invalidate()
	st.toRoot.invalidate()
	st.twists.invalidate()
	st.biasAccels.invalidate()
	st.inertias.invalidate()
	st.crbInertias.invalidate()
}

func (st *MechanismState) resetContacts() {
	for _, slot := range st.slots {
		slot.model.Reset(slot.seg.of(st.s))
	}
}

func (st *MechanismState) noteUpdate(what string) {
	if st.onUpdate != nil {
		st.onUpdate(what)
	}
}
