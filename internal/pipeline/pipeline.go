// Package pipeline runs the image-to-toolpath stages in order.
package pipeline

import (
	"context"
	"fmt"
	"image"

	"cnc-tracer/internal/config"
	"cnc-tracer/internal/contour"
	"cnc-tracer/internal/edge"
	"cnc-tracer/internal/toolpath"
	"cnc-tracer/pkg/geometry"
)

// Stage identifies a pipeline step in progress reports.
type Stage int

const (
	StageEdges Stage = iota
	StageContours
	StageScale
	StageFilter
)

func (s Stage) String() string {
	switch s {
	case StageEdges:
		return "edges"
	case StageContours:
		return "contours"
	case StageScale:
		return "scale"
	case StageFilter:
		return "filter"
	default:
		return "unknown"
	}
}

// Progress is sent to an Observer when a stage finishes.
type Progress struct {
	Stage   Stage
	Count   int // Items the stage produced
	Message string
}

// Observer receives progress reports. It must not retain the pipeline's data.
type Observer func(Progress)

// Result carries the toolpath plus the intermediate counts.
type Result struct {
	Toolpath   toolpath.Toolpath
	Source     geometry.Size
	EdgePixels int
	Contours   []contour.Contour // Ranked, pixel space
}

// RunFile loads an image and runs the pipeline on it.
func RunFile(ctx context.Context, path string, cfg config.Config, observe Observer) (*Result, error) {
	img, err := edge.Load(path)
	if err != nil {
		return nil, err
	}
	return Run(ctx, img, cfg, observe)
}

// Run turns img into a toolpath. The only failure from the stages themselves
// is an invalid image, reported before any stage runs; ctx is honoured only
// by the concurrent mapping step.
func Run(ctx context.Context, img image.Image, cfg config.Config, observe Observer) (*Result, error) {
	if err := edge.Validate(img); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if observe == nil {
		observe = func(Progress) {}
	}

	b := img.Bounds()
	source := geometry.NewSize(float64(b.Dx()), float64(b.Dy()))

	edges, err := edge.Extract(img, cfg.EdgeOptions())
	if err != nil {
		return nil, err
	}
	res := &Result{Source: source, EdgePixels: edges.Count()}
	observe(Progress{Stage: StageEdges, Count: res.EdgePixels,
		Message: fmt.Sprintf("Found %d edge pixels", res.EdgePixels)})

	res.Contours = contour.Trace(edges, cfg.ContourOptions())
	observe(Progress{Stage: StageContours, Count: len(res.Contours),
		Message: fmt.Sprintf("Extracted %d contours", len(res.Contours))})

	scaled, err := toolpath.MapParallel(ctx, res.Contours, source, cfg.CanvasSize, cfg.Workers)
	if err != nil {
		return nil, err
	}
	observe(Progress{Stage: StageScale, Count: len(scaled),
		Message: fmt.Sprintf("Scaled contours to a %g unit canvas", cfg.CanvasSize)})

	tp := toolpath.Filter(scaled, cfg.MinPoints)
	tp = toolpath.Simplify(tp, cfg.Simplify)
	res.Toolpath = tp
	observe(Progress{Stage: StageFilter, Count: tp.Emitted,
		Message: fmt.Sprintf("Kept %d of %d contours", tp.Emitted, tp.Considered)})

	return res, nil
}
