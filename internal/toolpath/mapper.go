// Package toolpath maps traced contours into canvas space and selects the
// polylines a tool will draw.
package toolpath

import (
	"context"

	"cnc-tracer/internal/contour"
	"cnc-tracer/pkg/geometry"

	"golang.org/x/sync/errgroup"
)

// DefaultCanvasSize is the linear extent of the output space.
const DefaultCanvasSize = 600.0

// ScaledContour is a contour expressed in canvas coordinates.
type ScaledContour struct {
	Points     []geometry.Point2D `json:"points"`
	SourceArea float64            `json:"source_area"` // Pixel-space area of the originating contour
	Source     int                `json:"source"`      // Position of the originating contour in the mapped slice
}

// Len returns the number of points.
func (s ScaledContour) Len() int {
	return len(s.Points)
}

// NewCanvasTransform returns the pixel-to-canvas transform for an image of
// the given size: origin at the image centre, y pointing up, uniformly scaled
// so the larger image side spans canvasSize.
//
//	tx = (x - w/2) * scale
//	ty = (h/2 - y) * scale
func NewCanvasTransform(source geometry.Size, canvasSize float64) geometry.AffineTransform {
	if source.Empty() {
		return geometry.Identity()
	}
	scale := canvasSize / source.Max()
	center := geometry.Translation(-source.Width/2, -source.Height/2)
	return geometry.Scale(scale, -scale).Compose(center)
}

// Map transforms every contour into canvas space. Order and per-contour
// point count are preserved.
func Map(contours []contour.Contour, source geometry.Size, canvasSize float64) []ScaledContour {
	if len(contours) == 0 {
		return nil
	}
	tr := NewCanvasTransform(source, canvasSize)
	out := make([]ScaledContour, len(contours))
	for i, c := range contours {
		out[i] = mapContour(tr, c, i)
	}
	return out
}

// MapParallel is Map with the per-contour work spread over up to workers
// goroutines. Results are written by index, so the output order matches Map.
func MapParallel(ctx context.Context, contours []contour.Contour, source geometry.Size, canvasSize float64, workers int) ([]ScaledContour, error) {
	if workers <= 1 || len(contours) < 2 {
		return Map(contours, source, canvasSize), nil
	}

	tr := NewCanvasTransform(source, canvasSize)
	out := make([]ScaledContour, len(contours))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range contours {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = mapContour(tr, contours[i], i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func mapContour(tr geometry.AffineTransform, c contour.Contour, index int) ScaledContour {
	points := make([]geometry.Point2D, len(c.Points))
	for j, p := range c.Points {
		points[j] = tr.Apply(p.ToFloat())
	}
	return ScaledContour{Points: points, SourceArea: c.Area, Source: index}
}
