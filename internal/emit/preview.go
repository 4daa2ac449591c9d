package emit

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"cnc-tracer/internal/toolpath"
	"cnc-tracer/pkg/geometry"

	"gocv.io/x/gocv"
)

// PreviewOptions configures toolpath previews.
type PreviewOptions struct {
	Pixels     int        // Width and height of the square preview
	CanvasSize float64    // Canvas extent the toolpath was scaled to
	Thickness  int        // Stroke width in pixels
	Stroke     color.RGBA // Line colour
	Closed     bool       // Join each polyline's end back to its start
}

// DefaultPreviewOptions draws blue closed outlines on an 800px square,
// matching a 600 unit canvas with a margin.
func DefaultPreviewOptions() PreviewOptions {
	return PreviewOptions{
		Pixels:     800,
		CanvasSize: 800,
		Thickness:  1,
		Stroke:     color.RGBA{R: 0, G: 0, B: 255, A: 255},
		Closed:     true,
	}
}

// canvasToPixels maps canvas coordinates (origin centred, y up) to preview
// pixels (origin top-left, y down).
func canvasToPixels(opts PreviewOptions) geometry.AffineTransform {
	s := float64(opts.Pixels) / opts.CanvasSize
	half := float64(opts.Pixels) / 2
	return geometry.Translation(half, half).Compose(geometry.Scale(s, -s))
}

// RenderPreview draws the toolpath on a white BGR image. The caller owns the
// returned Mat.
func RenderPreview(tp toolpath.Toolpath, opts PreviewOptions) gocv.Mat {
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), opts.Pixels, opts.Pixels, gocv.MatTypeCV8UC3)
	if tp.Empty() || opts.CanvasSize <= 0 {
		return mat
	}

	tr := canvasToPixels(opts)
	lines := make([][]image.Point, 0, tp.Len())
	for _, pl := range tp.All() {
		pts := make([]image.Point, pl.Len())
		for i, p := range pl.Points {
			q := tr.Apply(p)
			pts[i] = image.Point{X: int(math.Round(q.X)), Y: int(math.Round(q.Y))}
		}
		lines = append(lines, pts)
	}

	pv := gocv.NewPointsVectorFromPoints(lines)
	defer pv.Close()
	gocv.Polylines(&mat, pv, opts.Closed, opts.Stroke, opts.Thickness)
	return mat
}

// SavePreview renders the toolpath and writes it to path. The format follows
// the file extension.
func SavePreview(path string, tp toolpath.Toolpath, opts PreviewOptions) error {
	mat := RenderPreview(tp, opts)
	defer mat.Close()

	if ok := gocv.IMWrite(path, mat); !ok {
		return fmt.Errorf("failed to write preview %s", path)
	}
	return nil
}
