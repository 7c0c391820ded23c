package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	d := Distance(Point{0, 0}, Point{3, 4})
	require.InDelta(t, 5.0, d, 1e-9)
}

func TestNewLineHorizontal(t *testing.T) {
	l := NewLine(Point{0, 2}, Point{5, 2})
	require.Equal(t, 0.0, l.A)
	require.Equal(t, 1.0, l.B)
	require.Equal(t, -2.0, l.C)
}

func TestNewLineGeneral(t *testing.T) {
	l := NewLine(Point{0, 0}, Point{1, 1})
	require.Equal(t, 1.0, l.A)
	require.InDelta(t, -1.0, l.B, 1e-9)
}

func TestDistanceToLineNonStandardFormula(t *testing.T) {
	// Line y=0 => a=0,b=1,c=0. Point (0,3).
	l := NewLine(Point{0, 0}, Point{1, 0})
	d := Point{0, 3}.DistanceToLine(l)
	// standard distance would be 3; the verbatim formula divides by
	// sqrt(a^2+b^2+c^2) = sqrt(1) = 1 here too since c=0, so they agree
	// in this degenerate case — assert the formula used, not "3".
	want := math.Abs(l.A*0+l.B*3+l.C) / math.Sqrt(l.A*l.A+l.B*l.B+l.C*l.C)
	require.InDelta(t, want, d, 1e-12)
}

func TestSegmentsIntersectCross(t *testing.T) {
	require.True(t, SegmentsIntersect(Point{0, 0}, Point{2, 2}, Point{0, 2}, Point{2, 0}))
}

func TestSegmentsIntersectParallelNoOverlap(t *testing.T) {
	require.False(t, SegmentsIntersect(Point{0, 0}, Point{1, 0}, Point{0, 5}, Point{1, 5}))
}

func TestSegmentsIntersectEndpointTouchIsNotIntersecting(t *testing.T) {
	require.False(t, SegmentsIntersect(Point{0, 0}, Point{1, 0}, Point{1, 0}, Point{1, 1}))
}

func TestSegmentsIntersectVerticalParallelOverlap(t *testing.T) {
	require.True(t, SegmentsIntersect(Point{0, 0}, Point{0, 2}, Point{0, 1}, Point{0, 3}))
}
