package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dantrag/pyspringsim/geom"
	"github.com/dantrag/pyspringsim/inp"
)

func TestNewSimulatorIsEmpty(t *testing.T) {
	s := New(inp.Default())
	require.Empty(t, s.Particles())
}

func TestInitializeCircleThenRunLinearPasses(t *testing.T) {
	s := New(inp.Default())
	require.True(t, s.InitializeCircle(geom.Point{X: 0, Y: 0}, 40))
	require.NotEmpty(t, s.Particles())

	s.RunLinearPasses([]geom.Point{{X: -40, Y: 0}, {X: 40, Y: 0}})
	require.Greater(t, s.Time(), 0)
	require.NotPanics(t, s.Mesh.CheckInvariants)
}

func TestClearRecentResetsBothDiffSets(t *testing.T) {
	s := New(inp.Default())
	require.True(t, s.InitializeCircle(geom.Point{X: 0, Y: 0}, 40))
	s.RunLinearPasses([]geom.Point{{X: -40, Y: 0}, {X: 40, Y: 0}})
	s.ClearRecent()
	require.Empty(t, s.RecentlyAddedSprings())
	require.Empty(t, s.RecentlyRemovedSprings())
}
