package toolpath

import (
	"cnc-tracer/pkg/geometry"
)

// Simplify returns a copy of tp with every polyline reduced by
// Douglas-Peucker at tolerance epsilon (canvas units). End points are always
// kept. A non-positive epsilon returns tp unchanged.
func Simplify(tp Toolpath, epsilon float64) Toolpath {
	if epsilon <= 0 {
		return tp
	}
	out := Toolpath{
		Polylines:  make([]Polyline, len(tp.Polylines)),
		Considered: tp.Considered,
		Emitted:    tp.Emitted,
	}
	for i, p := range tp.Polylines {
		out.Polylines[i] = Polyline{
			Points:     simplifyPath(p.Points, epsilon),
			SourceArea: p.SourceArea,
		}
	}
	return out
}

// simplifyPath reduces the number of vertices using Douglas-Peucker algorithm.
// A path whose ends coincide is measured by distance from that point.
func simplifyPath(path []geometry.Point2D, epsilon float64) []geometry.Point2D {
	if len(path) <= 2 {
		return append([]geometry.Point2D(nil), path...)
	}

	// Find point with maximum distance from line between first and last points
	dmax := 0.0
	index := 0
	end := len(path) - 1

	for i := 1; i < end; i++ {
		d := geometry.PerpendicularDistance(path[i], path[0], path[end])
		if d > dmax {
			dmax = d
			index = i
		}
	}

	if dmax > epsilon {
		left := simplifyPath(path[:index+1], epsilon)
		right := simplifyPath(path[index:], epsilon)
		return join(left, right)
	}

	return []geometry.Point2D{path[0], path[end]}
}

// join concatenates two runs that share their boundary point.
func join(left, right []geometry.Point2D) []geometry.Point2D {
	result := make([]geometry.Point2D, 0, len(left)+len(right)-1)
	result = append(result, left[:len(left)-1]...)
	return append(result, right...)
}
