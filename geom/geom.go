// Package geom implements the 2D point/line primitives the relaxation
// engine needs: distances, a line through two points, and a segment
// intersection test.
package geom

import "math"

// Point is a location in the plane.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Scale returns p scaled by k.
func (p Point) Scale(k float64) Point {
	return Point{p.X * k, p.Y * k}
}

// Line is the line ax+by+c=0 through two points.
type Line struct {
	A, B, C float64
}

// NewLine builds the line through p1 and p2, following the source
// convention: horizontal lines get a=0,b=1; every other line is
// parametrized with a=1.
func NewLine(p1, p2 Point) Line {
	if p1.Y == p2.Y {
		return Line{A: 0, B: 1, C: -p1.Y}
	}
	a := 1.0
	b := -a * (p2.X - p1.X) / (p2.Y - p1.Y)
	c := -a*p1.X - b*p1.Y
	return Line{A: a, B: b, C: c}
}

// DistanceToLine is the distance from p to line l.
//
// This divides by sqrt(a²+b²+c²) rather than the standard sqrt(a²+b²).
// That is geometrically wrong but load-bearing: the relaxation engine's
// fold-over cap depends on this exact value, so it is reproduced
// verbatim rather than "fixed".
func (p Point) DistanceToLine(l Line) float64 {
	num := math.Abs(l.A*p.X + l.B*p.Y + l.C)
	den := math.Sqrt(l.A*l.A + l.B*l.B + l.C*l.C)
	return num / den
}

// SquaredDistance returns the squared euclidean distance between p1 and p2.
func SquaredDistance(p1, p2 Point) float64 {
	dx := p1.X - p2.X
	dy := p1.Y - p2.Y
	return dx*dx + dy*dy
}

// Distance returns the euclidean distance between p1 and p2.
func Distance(p1, p2 Point) float64 {
	return math.Sqrt(SquaredDistance(p1, p2))
}

const parallelTolerance = 1e-5

// SegmentsIntersect decides whether the open segments p1-p2 and p3-p4
// cross. Touching at an endpoint is treated as non-intersecting, and
// three-points-on-a-line cases are not specially handled, matching the
// source this is ported from.
func SegmentsIntersect(p1, p2, p3, p4 Point) bool {
	l1 := NewLine(p1, p2)
	l2 := NewLine(p3, p4)

	if math.Abs(l1.A*l2.B-l2.A*l1.B) < parallelTolerance {
		return parallelSegmentsIntersect(l1, l2, p1, p2, p3, p4)
	}

	d := l1.A*l2.B - l1.B*l2.A
	dx := l1.B*l2.C - l1.C*l2.B
	dy := l1.C*l2.A - l1.A*l2.C
	x := dx / d
	y := dy / d

	var inFirst, inSecond bool
	if math.Abs(l1.B) < parallelTolerance {
		inFirst = (y-p1.Y)*(y-p2.Y) < 0
	} else {
		inFirst = (x-p1.X)*(x-p2.X) < 0
	}
	if math.Abs(l2.B) < parallelTolerance {
		inSecond = (y-p3.Y)*(y-p4.Y) < 0
	} else {
		inSecond = (x-p3.X)*(x-p4.X) < 0
	}
	return inFirst && inSecond
}

func parallelSegmentsIntersect(l1, l2 Line, p1, p2, p3, p4 Point) bool {
	if math.Abs(l1.B) < parallelTolerance {
		// both vertical: compare y-projections
		return math.Min(math.Max(p1.Y, p2.Y), math.Max(p3.Y, p4.Y)) >
			math.Max(math.Min(p1.Y, p2.Y), math.Min(p3.Y, p4.Y))
	}
	if math.Abs(l2.C/l2.B-l1.C/l1.B) >= parallelTolerance {
		return false
	}
	return math.Min(math.Max(p1.X, p2.X), math.Max(p3.X, p4.X)) >
		math.Max(math.Min(p1.X, p2.X), math.Min(p3.X, p4.X))
}
