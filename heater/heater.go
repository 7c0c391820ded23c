// Package heater implements the moving heat source that drives a
// simulation pass (spec §4.5), ported from the source's
// Simulator.run_pass/run_linear_passes.
package heater

import (
	"github.com/cpmech/gosl/gm"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/dantrag/pyspringsim/geom"
	"github.com/dantrag/pyspringsim/mesh"
	"github.com/dantrag/pyspringsim/relax"
)

// Engine drives the heater across a mesh, relaxing it after every tick.
// It owns the simulation's discrete clock (spec §4.5 self._time), which
// governs molten-particle cooldown.
type Engine struct {
	Mesh  *mesh.Mesh
	Relax *relax.Engine

	Verbose bool

	time int
}

// New returns a heater engine bound to m, relaxing through r.
func New(m *mesh.Mesh, r *relax.Engine) *Engine {
	return &Engine{Mesh: m, Relax: r}
}

// Time returns the engine's current tick count.
func (e *Engine) Time() int { return e.time }

// RunPass moves the heater in a straight line from start to finish at
// Settings.HeaterSpeed, one tick per Settings.HeaterSpeed of travel
// (spec §4.5): every tick cools particles whose timeout has elapsed,
// melts particles within Settings.HeaterSize of the heater, refreshes
// spring forces, relaxes, and then un-marks movability for particles
// that cooled back down before the next melt.
func (e *Engine) RunPass(start, finish geom.Point) {
	m := e.Mesh
	settings := m.Settings
	length := geom.Distance(start, finish)
	speed := settings.HeaterSpeed
	size := settings.HeaterSize
	cooldown := settings.MoltenParticleCooldownTime

	// Coincident pass points (zero length) skip straight to a single
	// tick of heating at the start point (spec §7 degenerate geometry)
	// rather than dividing by a zero length to find a step count.
	ticks := 1
	if length > 0 {
		ticks = int(length/speed) + 1
	}

	for i := 0; i < ticks; i++ {
		heaterPosition := start
		if length > 0 {
			x := start.X + (finish.X-start.X)/length*speed*float64(i)
			y := start.Y + (finish.Y-start.Y)/length*speed*float64(i)
			heaterPosition = geom.Point{X: x, Y: y}
		}

		for _, p := range m.Particles() {
			if p.MeltingTimeout > 0 && p.MeltingTimeout <= e.time {
				p.Molten = false
				p.MeltingTimeout = -1 // source's molten setter resets the timeout as a side effect
				p.Movable = true
			}
		}

		for _, id := range nearbyParticles(m, heaterPosition, size) {
			p := m.Particle(id)
			p.Molten = true
			p.MeltingTimeout = e.time + cooldown
			p.Movable = true
		}

		for _, s := range m.Springs() {
			m.UpdateForce(s)
		}

		e.Relax.Relax()

		for _, p := range m.Particles() {
			if !p.Molten {
				p.Movable = false
			}
		}

		e.time++
	}

	if e.Verbose {
		io.Pf("heater: pass (%.1f,%.1f)->(%.1f,%.1f), %d ticks, t=%d\n",
			start.X, start.Y, finish.X, finish.Y, ticks, e.time)
	}
}

// RunLinearPasses runs a pass between every consecutive pair of points
// (spec §4.5 run_linear_passes) and, once the whole path is traced,
// cools every still-molten particle immediately rather than waiting out
// its timeout, refreshes forces and runs one final relaxation over them
// — this is where the plastic deformation is frozen in.
func (e *Engine) RunLinearPasses(points []geom.Point) {
	m := e.Mesh
	for i := 0; i+1 < len(points); i++ {
		e.RunPass(points[i], points[i+1])
	}
	for _, p := range m.Particles() {
		if p.Molten {
			p.Molten = false
			p.MeltingTimeout = -1
			p.Movable = true
		}
	}
	for _, s := range m.Springs() {
		m.UpdateForce(s)
	}
	e.Relax.Relax()
}

// nearbyParticles returns the particles within radius of centre. It
// uses a gosl/gm spatial bin index rebuilt from the mesh's current
// positions every call, following the indexed-lookup pattern the
// teacher uses for node/integration-point queries (gm.Bins.Init +
// Append, then a bounding search); a point query is expressed as a
// degenerate zero-length segment through gm.Bins.FindAlongLine.
func nearbyParticles(m *mesh.Mesh, centre geom.Point, radius float64) []mesh.ParticleID {
	particles := m.Particles()
	if len(particles) == 0 {
		return nil
	}

	var bins gm.Bins
	xi := []float64{particles[0].X, particles[0].Y}
	xf := []float64{particles[0].X, particles[0].Y}
	for _, p := range particles {
		xi[0], xf[0] = utl.Min(xi[0], p.X), utl.Max(xf[0], p.X)
		xi[1], xf[1] = utl.Min(xi[1], p.Y), utl.Max(xf[1], p.Y)
	}
	xi[0] -= radius
	xi[1] -= radius
	xf[0] += radius
	xf[1] += radius

	const ndiv = 20
	if err := bins.Init(xi, xf, ndiv); err != nil {
		return linearScanNearby(particles, centre, radius)
	}
	index := make([]mesh.ParticleID, len(particles))
	for i, p := range particles {
		index[i] = p.ID
		if err := bins.Append([]float64{p.X, p.Y}, i); err != nil {
			return linearScanNearby(particles, centre, radius)
		}
	}

	pt := []float64{centre.X, centre.Y}
	candidates := bins.FindAlongLine(pt, pt, radius)

	var out []mesh.ParticleID
	for _, i := range candidates {
		p := m.Particle(index[i])
		if geom.Distance(p.Point(), centre) <= radius {
			out = append(out, p.ID)
		}
	}
	return out
}

func linearScanNearby(particles []*mesh.Particle, centre geom.Point, radius float64) []mesh.ParticleID {
	var out []mesh.ParticleID
	for _, p := range particles {
		if geom.Distance(p.Point(), centre) <= radius {
			out = append(out, p.ID)
		}
	}
	return out
}
