package relax

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dantrag/pyspringsim/geom"
	"github.com/dantrag/pyspringsim/inp"
	"github.com/dantrag/pyspringsim/mesh"
)

func newLatticeEngine(t *testing.T, radius float64) (*mesh.Mesh, *Engine) {
	t.Helper()
	settings := inp.Default()
	m := mesh.New(settings)
	require.True(t, m.InitializeCircle(geom.Point{X: 0, Y: 0}, radius))
	return m, New(m)
}

func TestRelaxOnUndisturbedLatticeIsIdempotent(t *testing.T) {
	// spec §8: a lattice already at rest length should not move once
	// relaxed, regardless of which particles are marked movable.
	m, e := newLatticeEngine(t, 30)
	for _, s := range m.Springs() {
		m.UpdateForce(s)
	}
	for _, p := range m.Particles() {
		p.Movable = true
	}

	before := make(map[mesh.ParticleID]geom.Point, len(m.Particles()))
	for _, p := range m.Particles() {
		before[p.ID] = p.Point()
	}

	e.Relax()

	for _, p := range m.Particles() {
		require.InDelta(t, before[p.ID].X, p.X, 1e-6)
		require.InDelta(t, before[p.ID].Y, p.Y, 1e-6)
	}
}

func TestRelaxStretchedSpringPullsParticlesTogether(t *testing.T) {
	settings := inp.Default()
	m := mesh.New(settings)
	a := m.AddParticle(0, 0)
	b := m.AddParticle(settings.SpringDefaultLength+2*settings.ParticleDefaultRadius+5, 0)
	s := m.AddSpring(a.ID, b.ID)
	m.UpdateForce(s)
	// Stretched (actual_length > rest_length): force is negative, i.e.
	// it pulls the endpoints together (spec §4.4 sign convention).
	require.Less(t, s.Force, 0.0)

	a.Movable = true
	b.Movable = true
	e := New(m)
	e.Relax()

	// Hooke relaxation approaches the rest length from above and stops
	// once each endpoint's step (stiffness * excess) drops below the
	// convergence limit, so the excess left is under limit/stiffness.
	require.Less(t, m.ActualLength(s),
		settings.SpringDefaultLength+settings.RelaxationConvergenceLimit/settings.SpringDefaultStiffness)
}

func TestRelaxNonMovableParticlesAreUnaffected(t *testing.T) {
	settings := inp.Default()
	m := mesh.New(settings)
	a := m.AddParticle(0, 0)
	b := m.AddParticle(settings.SpringDefaultLength+2*settings.ParticleDefaultRadius+5, 0)
	s := m.AddSpring(a.ID, b.ID)
	m.UpdateForce(s)

	e := New(m)
	e.Relax()

	require.Equal(t, 0.0, a.X)
	require.Equal(t, settings.SpringDefaultLength+2*settings.ParticleDefaultRadius+5, b.X)
}

func TestRelaxPreservesMeshInvariants(t *testing.T) {
	m, e := newLatticeEngine(t, 40)
	for _, s := range m.Springs() {
		m.UpdateForce(s)
	}
	// mark a central patch movable so the relax runs its topology phase
	// over it.
	for _, p := range m.Particles() {
		if geom.Distance(p.Point(), geom.Point{X: 0, Y: 0}) < 10 {
			p.Movable = true
		}
	}
	e.Relax()
	require.NotPanics(t, m.CheckInvariants)
}
