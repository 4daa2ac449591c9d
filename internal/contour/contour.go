// Package contour traces boundary curves out of edge maps and ranks them by
// enclosed area.
package contour

import (
	"sort"

	"cnc-tracer/pkg/geometry"
)

// Kind tells outer boundaries apart from hole boundaries.
type Kind int

const (
	// KindOuter is an outer boundary. Flat tracing reports every contour as outer.
	KindOuter Kind = iota
	// KindHole is the inner boundary of a region, enclosed by its Parent.
	KindHole
)

func (k Kind) String() string {
	switch k {
	case KindOuter:
		return "Outer"
	case KindHole:
		return "Hole"
	default:
		return "Unknown"
	}
}

// Contour is an ordered boundary in pixel coordinates.
// The boundary is implicitly closed from the last point back to the first.
type Contour struct {
	Points []geometry.PointInt `json:"points"`
	Area   float64             `json:"area"`   // Unsigned shoelace area of Points
	Kind   Kind                `json:"kind"`   // Outer unless traced with topology
	Parent int                 `json:"parent"` // Index of the enclosing contour in the same slice, -1 if none
	Index  int                 `json:"index"`  // Discovery order
}

// New builds a contour from pixel points and computes its area.
func New(points []geometry.PointInt, index int) Contour {
	return Contour{
		Points: points,
		Area:   geometry.PolygonArea(points),
		Kind:   KindOuter,
		Parent: -1,
		Index:  index,
	}
}

// Len returns the number of points.
func (c Contour) Len() int {
	return len(c.Points)
}

// Rank returns a new slice ordered by descending area. Equal areas keep
// their input order. Parent references are rewritten to point at the
// parent's position in the ranked slice; the input is left untouched.
func Rank(contours []Contour) []Contour {
	if len(contours) == 0 {
		return nil
	}

	order := make([]int, len(contours))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return contours[order[i]].Area > contours[order[j]].Area
	})

	position := make([]int, len(contours))
	for rank, src := range order {
		position[src] = rank
	}

	ranked := make([]Contour, len(contours))
	for rank, src := range order {
		c := contours[src]
		if c.Parent >= 0 && c.Parent < len(contours) {
			c.Parent = position[c.Parent]
		} else {
			c.Parent = -1
		}
		ranked[rank] = c
	}
	return ranked
}
