// Package relax implements the relaxation engine (spec §4.6): the
// iterative equilibrium solver that moves movable particles toward a
// force balance while keeping the mesh's topological invariants (no
// leaves, no long voids, no crossing springs).
package relax

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/dantrag/pyspringsim/geom"
	"github.com/dantrag/pyspringsim/mesh"
)

const (
	minCycleLength        = 4
	maxCycleLength        = 4
	topologyMutationEvery = 50
	deltaLengthEpsilon    = 1e-5
)

// Engine relaxes the movable subset of a mesh toward equilibrium.
type Engine struct {
	Mesh    *mesh.Mesh
	Verbose bool
}

// New returns a relaxation engine bound to m.
func New(m *mesh.Mesh) *Engine {
	return &Engine{Mesh: m}
}

// Relax runs relax_heat (spec §4.6): up to Settings.RelaxationIterationLimit
// iterations over the mesh's currently movable particles, stopping early
// once the largest single-particle move drops below
// Settings.RelaxationConvergenceLimit. On return, every movable
// particle that is not molten becomes non-movable.
func (e *Engine) Relax() {
	m := e.Mesh
	settings := m.Settings

	var movable []*mesh.Particle
	for _, p := range m.Particles() {
		if p.Movable {
			movable = append(movable, p)
		}
	}

	iteration := 0
	for ; iteration < settings.RelaxationIterationLimit; iteration++ {
		maxDisplacement := e.computeDisplacements(movable)
		applyDisplacements(movable)

		if iteration%topologyMutationEvery == 0 {
			e.removeOverstretchedSprings(movable)
			e.createNewSprings(movable)
		}

		e.refreshForces(movable)

		if maxDisplacement < settings.RelaxationConvergenceLimit {
			iteration++
			break
		}
	}

	for _, p := range movable {
		if !p.Molten {
			p.Movable = false
		}
	}

	if e.Verbose {
		io.Pf("relax_heat: %d iterations, %d movable particles\n", iteration, len(movable))
	}
}

// computeDisplacements runs phase (a) of the iteration (spec §4.6(a)):
// for every movable particle, sum spring-force-weighted unit vectors
// toward (or away from) its neighbors, capped so the particle cannot
// cross the line through any two already-connected neighbors in one
// step. All displacements are computed against pre-step positions
// (Jacobi update). It returns the largest move magnitude.
func (e *Engine) computeDisplacements(movable []*mesh.Particle) float64 {
	m := e.Mesh
	defaultLength := m.Settings.SpringDefaultLength
	maxDisplacement := 0.0

	for _, p := range movable {
		acc := make([]float64, 2)
		la.VecFill(acc, 0)
		maxMove := defaultLength / 4

		var neighbours []mesh.ParticleID
		neighbourSet := make(map[mesh.ParticleID]bool)

		for _, sid := range p.Springs() {
			s := m.Spring(sid)
			other := s.OtherEnd(p.ID)
			otherP := m.Particle(other)

			dx := otherP.X - p.X
			dy := otherP.Y - p.Y
			if s.Force > 0 {
				dx, dy = -dx, -dy
			}
			deltaLength := math.Sqrt(dx*dx + dy*dy)
			if deltaLength < deltaLengthEpsilon {
				continue
			}
			scale := math.Abs(s.Force) / deltaLength
			la.VecAdd(acc, 1, []float64{dx * scale, dy * scale})

			maxMove = utl.Min(maxMove, m.ActualLength(s)/4)

			if !neighbourSet[other] {
				neighbourSet[other] = true
				neighbours = append(neighbours, other)
			}
		}

		checked := make(map[mesh.ParticleID]bool)
		for _, n := range neighbours {
			checked[n] = true
			np := m.Particle(n)
			for _, sid := range np.Springs() {
				ns := m.Spring(sid)
				n2 := ns.OtherEnd(n)
				if neighbourSet[n2] && !checked[n2] {
					line := geom.NewLine(np.Point(), m.Particle(n2).Point())
					separation := p.Point().DistanceToLine(line)
					maxMove = utl.Min(maxMove, separation/2)
				}
			}
		}

		move := la.VecNorm(acc)
		if move > maxMove {
			// maxMove can go negative (e.g. two molten particles already
			// overlapping give actual_length/4 < 0 above); the source
			// has no positivity guard here either, so this is rescaled
			// the same way rather than left uncapped.
			scaleFactor := move / maxMove
			acc[0] /= scaleFactor
			acc[1] /= scaleFactor
			move = la.VecNorm(acc)
		}
		maxDisplacement = utl.Max(maxDisplacement, move)
		p.DX, p.DY = acc[0], acc[1]
	}
	return maxDisplacement
}

// applyDisplacements is phase (b): all pending displacements are
// applied to positions at once.
func applyDisplacements(movable []*mesh.Particle) {
	for _, p := range movable {
		p.X += p.DX
		p.Y += p.DY
	}
}

// refreshForces is phase (d): every spring incident to a movable
// particle gets its cached force recomputed.
func (e *Engine) refreshForces(movable []*mesh.Particle) {
	seen := make(map[mesh.SpringID]bool)
	for _, p := range movable {
		for _, sid := range p.Springs() {
			if seen[sid] {
				continue
			}
			seen[sid] = true
			e.Mesh.UpdateForce(e.Mesh.Spring(sid))
		}
	}
}

// removeOverstretchedSprings is the Removal half of phase (c) (spec
// §4.6(c)).
func (e *Engine) removeOverstretchedSprings(movable []*mesh.Particle) {
	m := e.Mesh
	threshold := m.Settings.SpringDisconnectionThreshold

	var candidates []*mesh.Spring
	seen := make(map[mesh.SpringID]bool)
	for _, p := range movable {
		for _, sid := range p.Springs() {
			if seen[sid] {
				continue
			}
			s := m.Spring(sid)
			if m.Elongation(s) > threshold {
				seen[sid] = true
				candidates = append(candidates, s)
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return m.Elongation(candidates[i]) > m.Elongation(candidates[j])
	})

	elongation := func(s *mesh.Spring) float64 { return m.Elongation(s) }

	for _, s := range candidates {
		p1, p2 := m.Particle(s.P1), m.Particle(s.P2)
		if len(p1.Springs()) <= 2 || len(p2.Springs()) <= 2 {
			continue
		}

		canRemove, canFix, cycle := springCanBeRemoved(m, elongation, s, minCycleLength, maxCycleLength)
		if !canRemove && canFix {
			canRemove = e.tryFixWithShorterSpring(s, cycle, elongation)
		}
		if canRemove {
			m.DetachSpring(s.ID)
		}
	}
}

// tryFixWithShorterSpring looks, among the alternative-cycle vertices,
// for a pair (excluding s's own endpoints) that can host a strictly
// shorter replacement spring making s removable (spec §4.6(c).3).
func (e *Engine) tryFixWithShorterSpring(s *mesh.Spring, cycle []mesh.ParticleID, elongation func(*mesh.Spring) float64) bool {
	m := e.Mesh
	for i := 0; i < len(cycle); i++ {
		for j := i + 1; j < len(cycle); j++ {
			a, b := cycle[i], cycle[j]
			if isSameUnorderedPair(a, b, s.P1, s.P2) {
				continue
			}
			candidate := m.AddSpring(a, b)
			if candidate == nil {
				continue
			}
			m.UpdateForce(candidate)
			canRemove, _, _ := springCanBeRemoved(m, elongation, s, minCycleLength, maxCycleLength)
			if elongation(candidate) < elongation(s) && canRemove {
				m.MarkAdded(candidate.ID)
				return true
			}
			m.RemoveSpring(candidate.ID)
		}
	}
	return false
}

func isSameUnorderedPair(a, b, c, d mesh.ParticleID) bool {
	return (a == c && b == d) || (a == d && b == c)
}

// createNewSprings is the Creation half of phase (c) (spec §4.6(c)).
func (e *Engine) createNewSprings(movable []*mesh.Particle) {
	m := e.Mesh
	connectionDistance := m.Settings.SpringDefaultLength * m.Settings.SpringConnectionThreshold

	for _, p := range movable {
		partners := particleBFS(m, p.ID, 2, maxCycleLength)
		neighbourhood := make([]mesh.ParticleID, len(partners))
		copy(neighbourhood, partners)
		inNeighbourhood := make(map[mesh.ParticleID]bool, len(partners))
		for _, id := range partners {
			inNeighbourhood[id] = true
		}
		for _, id := range particleBFS(m, p.ID, 1, 1) {
			if !inNeighbourhood[id] {
				inNeighbourhood[id] = true
				neighbourhood = append(neighbourhood, id)
			}
		}

		for _, partnerID := range partners {
			partner := m.Particle(partnerID)
			gap := geom.Distance(p.Point(), partner.Point()) - m.Radius(p) - m.Radius(partner)
			if gap >= connectionDistance {
				continue
			}
			if e.segmentCrossesNeighbourhood(p.ID, partnerID, neighbourhood) {
				continue
			}
			if s := m.AddSpring(p.ID, partnerID); s != nil {
				m.MarkAdded(s.ID)
			}
		}
	}
}

// segmentCrossesNeighbourhood checks the candidate spring a-b against
// every spring incident to a particle in neighbourhood, excluding
// springs that already touch a or b (spec §4.6(c) Creation).
func (e *Engine) segmentCrossesNeighbourhood(a, b mesh.ParticleID, neighbourhood []mesh.ParticleID) bool {
	m := e.Mesh
	pa, pb := m.Particle(a).Point(), m.Particle(b).Point()

	for _, otherID := range neighbourhood {
		if otherID == b {
			continue
		}
		other := m.Particle(otherID)
		for _, sid := range other.Springs() {
			s := m.Spring(sid)
			far := s.OtherEnd(otherID)
			if far == a || far == b {
				continue
			}
			if geom.SegmentsIntersect(pa, pb, other.Point(), m.Particle(far).Point()) {
				return true
			}
		}
	}
	return false
}
