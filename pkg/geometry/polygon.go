package geometry

import "math"

// SignedArea returns the signed area of a closed pixel polygon using the
// shoelace formula. Counter-clockwise (in a y-up frame) is positive.
// The polygon is implicitly closed from the last point back to the first.
func SignedArea(polygon []PointInt) float64 {
	if len(polygon) < 3 {
		return 0
	}

	// Integer accumulation keeps the result exact for any pixel polygon.
	var twice int64
	n := len(polygon)
	for i := 0; i < n; i++ {
		p, q := polygon[i], polygon[(i+1)%n]
		twice += int64(p.X)*int64(q.Y) - int64(q.X)*int64(p.Y)
	}
	return float64(twice) / 2
}

// PolygonArea returns the unsigned enclosed area of a pixel polygon.
func PolygonArea(polygon []PointInt) float64 {
	return math.Abs(SignedArea(polygon))
}

// PerpendicularDistance calculates the perpendicular distance from point p to line a-b.
func PerpendicularDistance(p, a, b Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y

	if dx == 0 && dy == 0 {
		// a and b are the same point
		return p.Distance(a)
	}

	num := math.Abs(dy*p.X - dx*p.Y + b.X*a.Y - b.Y*a.X)
	den := math.Sqrt(dx*dx + dy*dy)
	return num / den
}
