// Package sim wires mesh, relax and heater into the public simulation
// API (spec §6), the same role the teacher's fem.Main plays over
// Domain/Solver.
package sim

import (
	"github.com/cpmech/gosl/io"

	"github.com/dantrag/pyspringsim/geom"
	"github.com/dantrag/pyspringsim/heater"
	"github.com/dantrag/pyspringsim/inp"
	"github.com/dantrag/pyspringsim/mesh"
	"github.com/dantrag/pyspringsim/relax"
)

// Simulator owns a mesh and its relaxation/heating engines. ShowMsg
// gates progress logging, mirroring fem.Main.ShowMsg.
type Simulator struct {
	Settings *inp.Settings
	Mesh     *mesh.Mesh
	ShowMsg  bool

	relax  *relax.Engine
	heater *heater.Engine
}

// New returns a simulator over a fresh, empty mesh bound to settings.
func New(settings *inp.Settings) *Simulator {
	m := mesh.New(settings)
	r := relax.New(m)
	h := heater.New(m, r)
	return &Simulator{Settings: settings, Mesh: m, relax: r, heater: h}
}

func (s *Simulator) syncVerbose() {
	s.relax.Verbose = s.ShowMsg
	s.heater.Verbose = s.ShowMsg
}

// InitializeCircle lays out a lattice filling a disk (spec §4.3
// Circle, §6 "init" with no mask). It returns false, leaving the mesh
// empty, if the circle is too small for the lattice to extend at least
// one step from the centre in both x and y.
func (s *Simulator) InitializeCircle(centre geom.Point, radius float64) bool {
	ok := s.Mesh.InitializeCircle(centre, radius)
	if s.ShowMsg {
		io.Pf("sim: InitializeCircle centre=(%.1f,%.1f) radius=%.1f -> %d particles\n",
			centre.X, centre.Y, radius, len(s.Mesh.Particles()))
	}
	return ok
}

// InitializeFromMask lays out a lattice filling a width x height box,
// keeping only slots where mask accepts (spec §4.3 Image mask, §6
// "init" with a mask file). Decoding the mask itself is the imaging
// package's job (D.3); this call only consumes the resulting predicate.
func (s *Simulator) InitializeFromMask(width, height float64, mask mesh.InclusionFunc) bool {
	ok := s.Mesh.InitializeFromMask(width, height, mask)
	if s.ShowMsg {
		io.Pf("sim: InitializeFromMask %gx%g -> %d particles\n", width, height, len(s.Mesh.Particles()))
	}
	return ok
}

// RunLinearPasses sweeps the heater in a straight line between every
// consecutive pair of points (spec §4.5, §6 "pass"). Recently
// added/removed springs accumulate across the whole call; callers that
// want a diff per pass should call ClearRecent before each call.
func (s *Simulator) RunLinearPasses(points []geom.Point) {
	s.syncVerbose()
	s.heater.RunLinearPasses(points)
}

// Particles returns every particle currently in the mesh, in
// insertion order.
func (s *Simulator) Particles() []*mesh.Particle { return s.Mesh.Particles() }

// Springs returns every spring currently in the mesh, in insertion
// order.
func (s *Simulator) Springs() []*mesh.Spring { return s.Mesh.Springs() }

// RecentlyAddedSprings returns springs created since the last
// ClearRecent (spec §3 recently_added_springs).
func (s *Simulator) RecentlyAddedSprings() []*mesh.Spring { return s.Mesh.RecentlyAddedSprings() }

// RecentlyRemovedSprings returns springs removed since the last
// ClearRecent (spec §3 recently_removed_springs).
func (s *Simulator) RecentlyRemovedSprings() []*mesh.Spring { return s.Mesh.RecentlyRemovedSprings() }

// ClearRecent resets both spring diff sets.
func (s *Simulator) ClearRecent() { s.Mesh.ClearRecent() }

// Time returns the simulator's discrete heater clock (spec §4.5).
func (s *Simulator) Time() int { return s.heater.Time() }
