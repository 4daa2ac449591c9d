package toolpath

import (
	"iter"

	"cnc-tracer/pkg/geometry"
)

// DefaultMinPoints is the smallest contour kept by Filter.
const DefaultMinPoints = 10

// Polyline is one continuous pen-down stroke in canvas coordinates.
type Polyline struct {
	Points     []geometry.Point2D `json:"points"`
	SourceArea float64            `json:"source_area"`
}

// Len returns the number of points.
func (p Polyline) Len() int {
	return len(p.Points)
}

// Start returns the first point. The polyline must not be empty.
func (p Polyline) Start() geometry.Point2D {
	return p.Points[0]
}

// Bounds returns the extent of the polyline in canvas units.
func (p Polyline) Bounds() geometry.Rect {
	return geometry.BoundingBox(p.Points)
}

// Toolpath is the ordered list of polylines to draw, largest shapes first.
type Toolpath struct {
	Polylines  []Polyline `json:"polylines"`
	Considered int        `json:"considered"` // Contours offered to the filter
	Emitted    int        `json:"emitted"`    // Contours that passed it
}

// Len returns the number of polylines.
func (t Toolpath) Len() int {
	return len(t.Polylines)
}

// Empty reports whether there is nothing to draw.
func (t Toolpath) Empty() bool {
	return len(t.Polylines) == 0
}

// All yields polylines in drawing order. A consumer may stop at any
// polyline boundary by breaking out of the loop.
func (t Toolpath) All() iter.Seq2[int, Polyline] {
	return func(yield func(int, Polyline) bool) {
		for i, p := range t.Polylines {
			if !yield(i, p) {
				return
			}
		}
	}
}

// Filter keeps the contours with at least minPoints points, preserving order.
func Filter(scaled []ScaledContour, minPoints int) Toolpath {
	tp := Toolpath{Considered: len(scaled)}
	for _, s := range scaled {
		if s.Len() == 0 || s.Len() < minPoints {
			continue
		}
		tp.Polylines = append(tp.Polylines, Polyline{Points: s.Points, SourceArea: s.SourceArea})
	}
	tp.Emitted = len(tp.Polylines)
	return tp
}
