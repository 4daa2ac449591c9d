package contour

import (
	"image"
	"image/color"
	"testing"

	"cnc-tracer/internal/edge"
	"cnc-tracer/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x, y, side int) []geometry.PointInt {
	return []geometry.PointInt{{x, y}, {x + side, y}, {x + side, y + side}, {x, y + side}}
}

func TestRankOrdersByAreaDescending(t *testing.T) {
	in := []Contour{
		New(square(0, 0, 2), 0),
		New(square(0, 0, 10), 1),
		New(square(0, 0, 5), 2),
	}
	ranked := Rank(in)
	require.Len(t, ranked, 3)
	assert.Equal(t, []int{1, 2, 0}, []int{ranked[0].Index, ranked[1].Index, ranked[2].Index})
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Area, ranked[i].Area)
	}

	// Input untouched.
	assert.Equal(t, 0, in[0].Index)
	assert.Equal(t, 4.0, in[0].Area)
}

func TestRankIsStableOnTies(t *testing.T) {
	in := []Contour{
		New(square(0, 0, 3), 0),
		New(square(5, 5, 3), 1),
		New(square(9, 9, 3), 2),
		New(square(0, 0, 4), 3),
	}
	ranked := Rank(in)
	assert.Equal(t, 3, ranked[0].Index)
	assert.Equal(t, 0, ranked[1].Index)
	assert.Equal(t, 1, ranked[2].Index)
	assert.Equal(t, 2, ranked[3].Index)
}

func TestRankRemapsParents(t *testing.T) {
	hole := New(square(2, 2, 2), 0)
	hole.Kind = KindHole
	hole.Parent = 1
	outer := New(square(0, 0, 10), 1)

	ranked := Rank([]Contour{hole, outer})
	require.Len(t, ranked, 2)
	assert.Equal(t, KindOuter, ranked[0].Kind)
	assert.Equal(t, -1, ranked[0].Parent)
	assert.Equal(t, KindHole, ranked[1].Kind)
	assert.Equal(t, 0, ranked[1].Parent)
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(nil))
}

func TestParseApproximation(t *testing.T) {
	a, ok := ParseApproximation("simple")
	assert.True(t, ok)
	assert.Equal(t, ApproxSimple, a)

	a, ok = ParseApproximation("")
	assert.True(t, ok)
	assert.Equal(t, ApproxNone, a)

	_, ok = ParseApproximation("tc89")
	assert.False(t, ok)
}

// ringMask draws a square outline of the given thickness.
func ringMask(size, x0, side, thickness int) *edge.EdgeMap {
	mask := image.NewGray(image.Rect(0, 0, size, size))
	for y := x0; y < x0+side; y++ {
		for x := x0; x < x0+side; x++ {
			inner := x >= x0+thickness && x < x0+side-thickness &&
				y >= x0+thickness && y < x0+side-thickness
			if !inner {
				mask.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return &edge.EdgeMap{Mask: mask}
}

func TestTraceEmptyMap(t *testing.T) {
	empty := &edge.EdgeMap{Mask: image.NewGray(image.Rect(0, 0, 100, 100))}
	assert.Empty(t, Trace(empty, DefaultOptions()))
	assert.Empty(t, Trace(nil, DefaultOptions()))
}

func TestTraceSquareOutline(t *testing.T) {
	contours := Trace(ringMask(100, 25, 50, 1), DefaultOptions())

	// Flat tracing reports the ring's outer and inner side separately.
	require.Len(t, contours, 2)
	assert.GreaterOrEqual(t, contours[0].Area, contours[1].Area)
	for _, c := range contours {
		assert.InDelta(t, 196, c.Len(), 8, "perimeter of a 50px square")
		assert.InDelta(t, 49*49, c.Area, 100)
		assert.Equal(t, KindOuter, c.Kind)
		assert.Equal(t, -1, c.Parent)
	}
}

func TestTraceSimpleApproximation(t *testing.T) {
	opts := Options{Approximation: ApproxSimple}
	contours := Trace(ringMask(100, 25, 50, 1), opts)
	require.NotEmpty(t, contours)
	assert.Less(t, contours[0].Len(), 10, "straight runs collapse to corners")
}

func TestTraceWithTopology(t *testing.T) {
	contours := Trace(ringMask(100, 20, 60, 4), Options{Topology: true})
	require.Len(t, contours, 2)

	assert.Equal(t, KindOuter, contours[0].Kind)
	assert.Equal(t, -1, contours[0].Parent)
	assert.Equal(t, KindHole, contours[1].Kind)
	assert.Equal(t, 0, contours[1].Parent)
	assert.Greater(t, contours[0].Area, contours[1].Area)
}
