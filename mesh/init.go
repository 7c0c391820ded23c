package mesh

import (
	"math"

	"github.com/dantrag/pyspringsim/geom"
	"github.com/dantrag/pyspringsim/inp"
)

// InclusionFunc decides whether a lattice slot at (x,y) is part of the
// mesh (spec §4.3). The only extension point of the mesh initializer.
type InclusionFunc func(x, y float64) bool

// InitializeField builds a triangular (hex-close-packed) lattice inside
// a width x height box centered on centre, keeping only the slots where
// include returns true, and wires up west/upper-neighbor springs (spec
// §4.3). It returns false (an empty mesh) when the derived half-extents
// are non-positive.
func (m *Mesh) InitializeField(centre geom.Point, width, height float64, include InclusionFunc) bool {
	interval := m.Settings.Interval()
	xStep := interval
	yStep := interval * math.Sqrt(3) / 2

	sizeX := int(math.Floor((width/2 - xStep/2) / xStep))
	sizeY := int(math.Floor((height/2 - xStep/2) / yStep))
	if sizeX <= 0 || sizeY <= 0 {
		return false
	}

	rows := 2*sizeY + 1
	cols := 2*sizeX + 1
	grid := make([][]*Particle, rows)
	for i := range grid {
		grid[i] = make([]*Particle, cols)
	}

	for i := -sizeY; i <= sizeY; i++ {
		for j := -sizeX; j <= sizeX; j++ {
			x := centre.X + float64(j)*xStep
			if i%2 != 0 {
				x -= xStep / 2
			}
			y := centre.Y + float64(i)*yStep
			if include(x, y) {
				grid[i+sizeY][j+sizeX] = m.AddParticle(x, y)
			}
		}
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			p := grid[i][j]
			if p == nil {
				continue
			}
			if j > 0 && grid[i][j-1] != nil {
				m.AddSpring(p.ID, grid[i][j-1].ID)
			}
			if i > 0 {
				if grid[i-1][j] != nil {
					m.AddSpring(p.ID, grid[i-1][j].ID)
				}
				if (i-sizeY)%2 != 0 {
					if j > 0 && grid[i-1][j-1] != nil {
						m.AddSpring(p.ID, grid[i-1][j-1].ID)
					}
				} else if j < cols-1 && grid[i-1][j+1] != nil {
					m.AddSpring(p.ID, grid[i-1][j+1].ID)
				}
			}
		}
	}
	return true
}

// CircleInclusion returns the inclusion predicate for a disk of the
// given centre and radius (spec §4.3).
func CircleInclusion(settings *inp.Settings, centre geom.Point, radius float64) InclusionFunc {
	interval := settings.Interval()
	return func(x, y float64) bool {
		return geom.Distance(geom.Point{X: x, Y: y}, centre)+interval/2 <= radius+1e-5
	}
}

// InitializeCircle builds a lattice filling a disk of the given centre
// and radius (spec §4.3 Circle).
func (m *Mesh) InitializeCircle(centre geom.Point, radius float64) bool {
	include := CircleInclusion(m.Settings, centre, radius)
	return m.InitializeField(centre, radius*2, radius*2, include)
}

// InitializeFromMask builds a lattice over a width x height box using an
// externally supplied boolean mask (spec §4.3 Image mask, §6). The mask
// is any (float64,float64) -> bool function; image decoding is not this
// package's concern (spec §1).
func (m *Mesh) InitializeFromMask(width, height float64, mask InclusionFunc) bool {
	centre := geom.Point{X: width / 2, Y: height / 2}
	return m.InitializeField(centre, width, height, mask)
}
