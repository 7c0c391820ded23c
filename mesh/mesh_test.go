package mesh

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dantrag/pyspringsim/geom"
	"github.com/dantrag/pyspringsim/inp"
)

func TestInitializeCircleDefaultSettingsSizing(t *testing.T) {
	// spec §8 scenario 1: default settings, radius 50 circle.
	m := New(inp.Default())
	ok := m.InitializeCircle(geom.Point{X: 0, Y: 0}, 50)
	require.True(t, ok)
	require.NotEmpty(t, m.Particles())

	for _, p := range m.Particles() {
		d := geom.Distance(p.Point(), geom.Point{X: 0, Y: 0})
		require.LessOrEqual(t, d, 50.00001+1e-9)
	}
}

func TestInitializeCircleDegenerateIsEmpty(t *testing.T) {
	// spec §8 scenario 5.
	m := New(inp.Default())
	ok := m.InitializeCircle(geom.Point{X: 0, Y: 0}, 1)
	require.False(t, ok)
	require.Empty(t, m.Particles())
}

func TestMeshInvariantsAfterLatticeInit(t *testing.T) {
	m := New(inp.Default())
	require.True(t, m.InitializeCircle(geom.Point{X: 0, Y: 0}, 50))
	require.NotPanics(t, m.CheckInvariants)

	for _, s := range m.Springs() {
		require.NotEqual(t, s.P1, s.P2)
	}
}

func TestAddSpringRejectsDuplicateAndSelfLoop(t *testing.T) {
	m := New(inp.Default())
	a := m.AddParticle(0, 0)
	b := m.AddParticle(1, 0)

	s1 := m.AddSpring(a.ID, b.ID)
	require.NotNil(t, s1)

	s2 := m.AddSpring(a.ID, b.ID)
	require.Nil(t, s2)

	s3 := m.AddSpring(a.ID, a.ID)
	require.Nil(t, s3)
}

func TestRemoveSpringUpdatesBothEndpoints(t *testing.T) {
	m := New(inp.Default())
	a := m.AddParticle(0, 0)
	b := m.AddParticle(1, 0)
	s := m.AddSpring(a.ID, b.ID)
	require.NotNil(t, s)

	m.RemoveSpring(s.ID)
	require.Empty(t, a.Springs())
	require.Empty(t, b.Springs())
	require.Nil(t, m.Spring(s.ID))
}

func TestRecentlyAddedAndRemovedAreDisjoint(t *testing.T) {
	m := New(inp.Default())
	a := m.AddParticle(0, 0)
	b := m.AddParticle(1, 0)
	c := m.AddParticle(2, 0)

	s1 := m.AddSpring(a.ID, b.ID)
	m.MarkAdded(s1.ID)
	s2 := m.AddSpring(b.ID, c.ID)
	m.MarkAdded(s2.ID)

	// s1 added then removed within the same window: appears in neither set.
	m.DetachSpring(s1.ID)

	added := m.RecentlyAddedSprings()
	removed := m.RecentlyRemovedSprings()
	for _, s := range added {
		require.NotEqual(t, s1.ID, s.ID)
	}
	for _, s := range removed {
		require.NotEqual(t, s1.ID, s.ID)
	}
	require.Len(t, added, 1)
	require.Equal(t, s2.ID, added[0].ID)
}

func TestForceLawContinuityAtRestLength(t *testing.T) {
	// spec §8 scenario 6.
	s := inp.Default()
	m := New(s)
	a := m.AddParticle(0, 0)
	b := m.AddParticle(s.SpringDefaultLength+2*s.ParticleDefaultRadius, 0)
	spring := m.AddSpring(a.ID, b.ID)
	m.UpdateForce(spring)
	require.InDelta(t, 0.0, spring.Force, 1e-9)
}
