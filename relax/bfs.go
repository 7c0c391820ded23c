package relax

import "github.com/dantrag/pyspringsim/mesh"

// particleBFS walks the mesh graph from start and returns, in visit
// order, every particle first reached at a depth in [minDepth,maxDepth]
// (spec §4.6(c) creation phase, ported from the source's
// `_particle_bfs`). Expansion stops once a popped node's own depth
// exceeds maxDepth, matching the source exactly (including its slightly
// eager termination: nodes enqueued by the last node within range are
// still visited once).
func particleBFS(m *mesh.Mesh, start mesh.ParticleID, minDepth, maxDepth int) []mesh.ParticleID {
	depth := map[mesh.ParticleID]int{start: 0}
	queue := []mesh.ParticleID{start}
	var result []mesh.ParticleID

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		d := depth[current]
		if d >= minDepth && d <= maxDepth {
			result = append(result, current)
		}
		if d > maxDepth {
			break
		}

		p := m.Particle(current)
		for _, sid := range p.Springs() {
			s := m.Spring(sid)
			following := s.OtherEnd(current)
			if _, seen := depth[following]; !seen {
				queue = append(queue, following)
				depth[following] = d + 1
			}
		}
	}
	return result
}

const longStretchThreshold = 1.6 // spec §9: preserved from the source's undocumented 1.6 literal

// springCanBeRemoved decides whether removing s would disconnect the
// mesh or open a cycle longer than maxCycleLength (spec §4.6(c)
// Removal, ported from `_spring_can_be_removed`). It returns whether
// the removal is directly safe, and — when it is not — whether the
// resulting long cycle could be fixed by adding one short chord; cycle
// holds the vertices of the cycle found around s, in cycle order and
// including s's own endpoints, for the caller to search for that chord.
func springCanBeRemoved(m *mesh.Mesh, elongation func(*mesh.Spring) float64, s *mesh.Spring, minCycleLength, maxCycleLength int) (canRemove, canFix bool, cycle []mesh.ParticleID) {
	forbidden := map[mesh.SpringID]bool{s.ID: true}

	depth := map[mesh.ParticleID]int{s.P1: 0}
	linkTo := map[mesh.ParticleID]mesh.SpringID{}
	queue := []mesh.ParticleID{s.P1}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		stop := false
		p := m.Particle(current)
		for _, sid := range p.Springs() {
			if forbidden[sid] {
				continue
			}
			adj := m.Spring(sid)
			following := adj.OtherEnd(current)
			if _, seen := depth[following]; seen {
				continue
			}
			queue = append(queue, following)
			linkTo[following] = sid
			depth[following] = depth[current] + 1
			if following == s.P2 || float64(depth[following]) > float64(maxCycleLength)/2 {
				stop = true
				break
			}
		}
		if stop {
			break
		}
	}

	if _, ok := depth[s.P2]; !ok {
		return false, false, nil
	}

	var firstHalf []mesh.ParticleID
	current := s.P2
	for current != s.P1 {
		firstHalf = append(firstHalf, current)
		link := linkTo[current]
		forbidden[link] = true
		current = m.Spring(link).OtherEnd(current)
	}
	reverse(firstHalf)
	halfCycleSize := depth[s.P2]

	depth = map[mesh.ParticleID]int{s.P1: 0}
	linkTo = map[mesh.ParticleID]mesh.SpringID{}
	queue = []mesh.ParticleID{s.P1}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		stop := false
		p := m.Particle(current)
		for _, sid := range p.Springs() {
			if forbidden[sid] {
				continue
			}
			adj := m.Spring(sid)
			following := adj.OtherEnd(current)
			if _, seen := depth[following]; seen {
				continue
			}
			queue = append(queue, following)
			linkTo[following] = sid
			depth[following] = depth[current] + 1
			if following == s.P2 || depth[following]+halfCycleSize > maxCycleLength {
				stop = true
				break
			}
		}
		if stop {
			break
		}
	}

	if _, ok := depth[s.P2]; !ok {
		if float64(halfCycleSize) <= float64(maxCycleLength)/2 && elongation(s) > longStretchThreshold {
			return true, false, nil
		}
		return false, false, nil
	}

	cycle = append(cycle, firstHalf...)
	current = s.P2
	for current != s.P1 {
		link := linkTo[current]
		forbidden[link] = true
		current = m.Spring(link).OtherEnd(current)
		cycle = append(cycle, current)
	}

	for i := 0; i < halfCycleSize-1; i++ {
		for j := halfCycleSize; j < len(cycle)-1; j++ {
			ci := m.Particle(cycle[i])
			for _, sid := range ci.Springs() {
				cs := m.Spring(sid)
				if cs.OtherEnd(cycle[i]) == cycle[j] {
					subCycleSize1 := j - i + 1
					subCycleSize2 := len(cycle) - subCycleSize1 + 2
					if subCycleSize1 < minCycleLength && subCycleSize2 < minCycleLength {
						return true, true, cycle
					}
				}
			}
		}
	}

	if depth[s.P2]+halfCycleSize < minCycleLength {
		return true, true, cycle
	}
	return false, true, cycle
}

func reverse(ids []mesh.ParticleID) {
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
}
