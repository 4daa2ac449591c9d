package contour

import (
	"cnc-tracer/internal/edge"
	"cnc-tracer/pkg/geometry"

	"gocv.io/x/gocv"
)

// Approximation selects how boundary runs are stored.
type Approximation int

const (
	// ApproxNone keeps every boundary pixel.
	ApproxNone Approximation = iota
	// ApproxSimple compresses horizontal, vertical and diagonal runs to their end points.
	ApproxSimple
)

func (a Approximation) String() string {
	switch a {
	case ApproxNone:
		return "none"
	case ApproxSimple:
		return "simple"
	default:
		return "unknown"
	}
}

// ParseApproximation maps a config name to an Approximation.
func ParseApproximation(name string) (Approximation, bool) {
	switch name {
	case "", "none":
		return ApproxNone, true
	case "simple":
		return ApproxSimple, true
	default:
		return ApproxNone, false
	}
}

func (a Approximation) method() gocv.ContourApproximationMode {
	if a == ApproxSimple {
		return gocv.ChainApproxSimple
	}
	return gocv.ChainApproxNone
}

// Options configures contour tracing.
type Options struct {
	Approximation Approximation
	// Topology tags contours as outer boundaries or holes with a parent
	// back-reference. When false every contour is a parentless outer.
	Topology bool
}

// DefaultOptions returns a flat trace that keeps every boundary pixel.
func DefaultOptions() Options {
	return Options{Approximation: ApproxNone}
}

// Trace extracts every boundary of every connected edge region and returns
// them ranked by descending area. Overlapping or nested boundaries are all
// reported, so a ring of edge pixels yields both its outer and inner outline.
// An empty edge map yields an empty result.
func Trace(edges *edge.EdgeMap, opts Options) []Contour {
	if edges.Count() == 0 {
		return nil
	}

	mask := edge.GrayToMat(edges.Mask)
	defer mask.Close()

	var raw []Contour
	if opts.Topology {
		raw = traceWithTopology(mask, opts.Approximation)
	} else {
		contours := gocv.FindContours(mask, gocv.RetrievalList, opts.Approximation.method())
		defer contours.Close()
		raw = collect(contours)
	}

	return Rank(raw)
}

// traceWithTopology uses two-level retrieval: top level are outer
// boundaries, second level are the holes inside them.
func traceWithTopology(mask gocv.Mat, approx Approximation) []Contour {
	hierarchy := gocv.NewMat()
	defer hierarchy.Close()

	contours := gocv.FindContoursWithParams(mask, &hierarchy, gocv.RetrievalCComp, approx.method())
	defer contours.Close()

	out := collect(contours)
	if hierarchy.Empty() {
		return out
	}
	for i := range out {
		// Each hierarchy entry is [next, previous, first child, parent].
		parent := int(hierarchy.GetVeciAt(0, i)[3])
		if parent >= 0 {
			out[i].Kind = KindHole
			out[i].Parent = parent
		}
	}
	return out
}

func collect(contours gocv.PointsVector) []Contour {
	out := make([]Contour, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		pv := contours.At(i)
		points := make([]geometry.PointInt, pv.Size())
		for j := 0; j < pv.Size(); j++ {
			pt := pv.At(j)
			points[j] = geometry.PointInt{X: pt.X, Y: pt.Y}
		}
		out = append(out, New(points, i))
	}
	return out
}
