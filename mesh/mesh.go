// Package mesh implements the particle/spring graph (spec §3): a flat
// arena of particles and springs connected through stable handles, so
// that particles and springs can reference each other without Go
// pointer cycles (spec §9 "Back-references without cycles").
package mesh

import (
	"github.com/cpmech/gosl/chk"
	"github.com/google/uuid"

	"github.com/dantrag/pyspringsim/geom"
	"github.com/dantrag/pyspringsim/inp"
)

// ParticleID and SpringID are opaque, generationally-unique handles.
// Iteration order for determinism never depends on their value — the
// Mesh keeps insertion-ordered slices for that.
type ParticleID uuid.UUID
type SpringID uuid.UUID

// Particle is a massless node in the mesh (spec §3).
type Particle struct {
	ID             ParticleID
	X, Y           float64
	Molten         bool
	MeltingTimeout int // -1 when not molten
	Movable        bool
	DX, DY         float64 // pending displacement, set by the relaxation engine

	springs []SpringID // incident springs, insertion order
}

// Point returns the particle's current position.
func (p *Particle) Point() geom.Point { return geom.Point{X: p.X, Y: p.Y} }

// Springs returns the particle's incident springs in insertion order.
// The returned slice must not be mutated by the caller.
func (p *Particle) Springs() []SpringID { return p.springs }

// Spring is an edge between two particles (spec §3).
type Spring struct {
	ID         SpringID
	P1, P2     ParticleID
	RestLength float64
	Force      float64 // cached, set by UpdateForce
}

// OtherEnd returns the endpoint of s that is not id, or the zero ID if
// id is not an endpoint of s.
func (s *Spring) OtherEnd(id ParticleID) ParticleID {
	switch id {
	case s.P1:
		return s.P2
	case s.P2:
		return s.P1
	default:
		return ParticleID{}
	}
}

// Mesh owns all particles and springs. Removing a spring always updates
// both endpoints' incident sets in the same call (spec §3 Mesh
// ownership).
type Mesh struct {
	Settings *inp.Settings

	particles     map[ParticleID]*Particle
	particleOrder []ParticleID

	springs     map[SpringID]*Spring
	springOrder []SpringID

	recentlyAdded        map[SpringID]bool
	recentlyRemoved      map[SpringID]*Spring // snapshot copies; no longer live in the mesh
	recentlyRemovedOrder []SpringID
}

// New returns an empty mesh bound to the given settings.
func New(settings *inp.Settings) *Mesh {
	return &Mesh{
		Settings:        settings,
		particles:       make(map[ParticleID]*Particle),
		springs:         make(map[SpringID]*Spring),
		recentlyAdded:   make(map[SpringID]bool),
		recentlyRemoved: make(map[SpringID]*Spring),
	}
}

// Radius returns a particle's effective radius: the molten radius while
// molten, otherwise the default radius (spec §3).
func (m *Mesh) Radius(p *Particle) float64 {
	if p.Molten {
		return m.Settings.MoltenParticleDefaultRadius
	}
	return m.Settings.ParticleDefaultRadius
}

// Particle looks up a particle by handle.
func (m *Mesh) Particle(id ParticleID) *Particle { return m.particles[id] }

// Spring looks up a spring by handle.
func (m *Mesh) Spring(id SpringID) *Spring { return m.springs[id] }

// Particles returns all particles in insertion (row-major) order. The
// returned slice must not be mutated.
func (m *Mesh) Particles() []*Particle {
	out := make([]*Particle, len(m.particleOrder))
	for i, id := range m.particleOrder {
		out[i] = m.particles[id]
	}
	return out
}

// Springs returns all springs in insertion order.
func (m *Mesh) Springs() []*Spring {
	out := make([]*Spring, len(m.springOrder))
	for i, id := range m.springOrder {
		out[i] = m.springs[id]
	}
	return out
}

// AddParticle creates a new particle at (x,y) and appends it to the
// mesh's particle list.
func (m *Mesh) AddParticle(x, y float64) *Particle {
	p := &Particle{ID: ParticleID(uuid.New()), X: x, Y: y, MeltingTimeout: -1}
	m.particles[p.ID] = p
	m.particleOrder = append(m.particleOrder, p.ID)
	return p
}

// FindSpring returns the spring connecting p1 and p2, if any.
func (m *Mesh) FindSpring(p1, p2 ParticleID) *Spring {
	a := m.particles[p1]
	if a == nil {
		return nil
	}
	for _, sid := range a.springs {
		s := m.springs[sid]
		if s.OtherEnd(p1) == p2 {
			return s
		}
	}
	return nil
}

// AddSpring connects p1 and p2 with a spring of the mesh's default rest
// length, unless one already exists (spec's _add_spring), in which case
// it returns nil. p1 must not equal p2.
func (m *Mesh) AddSpring(p1, p2 ParticleID) *Spring {
	if p1 == p2 {
		return nil
	}
	if m.FindSpring(p1, p2) != nil {
		return nil
	}
	a, b := m.particles[p1], m.particles[p2]
	if a == nil || b == nil {
		return nil
	}
	s := &Spring{ID: SpringID(uuid.New()), P1: p1, P2: p2, RestLength: m.Settings.SpringDefaultLength}
	m.springs[s.ID] = s
	m.springOrder = append(m.springOrder, s.ID)
	a.springs = append(a.springs, s.ID)
	b.springs = append(b.springs, s.ID)
	return s
}

// RemoveSpring detaches a spring from both its endpoints and the mesh.
func (m *Mesh) RemoveSpring(id SpringID) {
	s, ok := m.springs[id]
	if !ok {
		return
	}
	if a := m.particles[s.P1]; a != nil {
		a.springs = removeID(a.springs, id)
	}
	if b := m.particles[s.P2]; b != nil {
		b.springs = removeID(b.springs, id)
	}
	delete(m.springs, id)
	m.springOrder = removeID(m.springOrder, id)
}

func removeID(ids []SpringID, target SpringID) []SpringID {
	for i, id := range ids {
		if id == target {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// MarkAdded records that id was added since the last ClearRecent (spec
// §3). A spring that was added and then removed within the same
// observation window appears in neither diff set.
func (m *Mesh) MarkAdded(id SpringID) {
	m.recentlyAdded[id] = true
}

// DetachSpring removes a spring from the mesh and updates the
// recently_added/recently_removed diff sets in the same transaction
// (spec §4.6(c).4): if the spring was itself added during this
// observation window, it is simply forgotten; otherwise it is recorded
// as removed.
func (m *Mesh) DetachSpring(id SpringID) {
	if m.recentlyAdded[id] {
		delete(m.recentlyAdded, id)
	} else if _, already := m.recentlyRemoved[id]; !already {
		if s := m.springs[id]; s != nil {
			m.recentlyRemoved[id] = s
			m.recentlyRemovedOrder = append(m.recentlyRemovedOrder, id)
		}
	}
	m.RemoveSpring(id)
}

// RecentlyAddedSprings returns the springs added since the last
// ClearRecent, in insertion order.
func (m *Mesh) RecentlyAddedSprings() []*Spring {
	out := make([]*Spring, 0, len(m.recentlyAdded))
	for _, id := range m.springOrder {
		if m.recentlyAdded[id] {
			out = append(out, m.springs[id])
		}
	}
	return out
}

// RecentlyRemovedSprings returns the springs removed since the last
// ClearRecent, in removal order. Because removed springs are no longer
// in the mesh, these are snapshot copies, not live handles.
func (m *Mesh) RecentlyRemovedSprings() []*Spring {
	out := make([]*Spring, 0, len(m.recentlyRemovedOrder))
	for _, id := range m.recentlyRemovedOrder {
		out = append(out, m.recentlyRemoved[id])
	}
	return out
}

// ClearRecent clears both diff sets.
func (m *Mesh) ClearRecent() {
	m.recentlyAdded = make(map[SpringID]bool)
	m.recentlyRemoved = make(map[SpringID]*Spring)
	m.recentlyRemovedOrder = nil
}

// ActualLength is the surface-to-surface distance between a spring's
// endpoints (spec §3 Spring.actual_length).
func (m *Mesh) ActualLength(s *Spring) float64 {
	p1, p2 := m.particles[s.P1], m.particles[s.P2]
	return geom.Distance(p1.Point(), p2.Point()) - m.Radius(p1) - m.Radius(p2)
}

// Elongation is actual_length/rest_length.
func (m *Mesh) Elongation(s *Spring) float64 {
	return m.ActualLength(s) / s.RestLength
}

// UpdateForce recomputes a spring's cached scalar force (spec §4.4).
// Positive force pulls endpoints apart (compression); negative pulls
// them together (stretched).
func (m *Mesh) UpdateForce(s *Spring) {
	actual := m.ActualLength(s)
	stiffness := m.Settings.SpringDefaultStiffness
	if actual < s.RestLength {
		s.Force = (1/actual - 1/s.RestLength) * stiffness * s.RestLength * s.RestLength / 2
	} else {
		s.Force = stiffness * (s.RestLength - actual)
	}
}

// CheckInvariants asserts the mesh's cross-cutting consistency
// invariants (spec §8, invariants 1-3): every spring is present in both
// endpoints' incident sets, no duplicate unordered pairs, no
// self-loops. It panics via chk.Panic on violation since these are
// programmer invariants, never user-triggerable.
func (m *Mesh) CheckInvariants() {
	seenPairs := make(map[[2]ParticleID]bool)
	for _, s := range m.springs {
		if s.P1 == s.P2 {
			chk.Panic("spring %v has equal endpoints", s.ID)
		}
		pair := orderedPair(s.P1, s.P2)
		if seenPairs[pair] {
			chk.Panic("duplicate spring between %v and %v", s.P1, s.P2)
		}
		seenPairs[pair] = true

		a, b := m.particles[s.P1], m.particles[s.P2]
		if !containsID(a.springs, s.ID) || !containsID(b.springs, s.ID) {
			chk.Panic("spring %v missing from an endpoint's incident set", s.ID)
		}
	}
}

func orderedPair(a, b ParticleID) [2]ParticleID {
	if lessID(a, b) {
		return [2]ParticleID{a, b}
	}
	return [2]ParticleID{b, a}
}

func lessID(a, b ParticleID) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func containsID(ids []SpringID, id SpringID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
