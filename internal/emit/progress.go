package emit

import (
	"log"

	"cnc-tracer/internal/pipeline"
	"cnc-tracer/internal/toolpath"
)

// ProgressReporter logs pipeline stages and drawing progress.
type ProgressReporter struct {
	Logger *log.Logger
	Every  int // Log drawing progress after this many polylines
}

// NewProgressReporter logs through l (log.Default() when nil) every five polylines.
func NewProgressReporter(l *log.Logger) *ProgressReporter {
	if l == nil {
		l = log.Default()
	}
	return &ProgressReporter{Logger: l, Every: 5}
}

// Observe satisfies pipeline.Observer.
func (r *ProgressReporter) Observe(p pipeline.Progress) {
	r.Logger.Printf("Pipeline: %s: %s", p.Stage, p.Message)
}

// Play walks the toolpath in order, calling draw for each polyline and
// logging progress. It stops early if draw returns false and returns the
// number of polylines drawn.
func (r *ProgressReporter) Play(tp toolpath.Toolpath, draw func(i int, pl toolpath.Polyline) bool) int {
	every := r.Every
	if every <= 0 {
		every = 1
	}
	drawn := 0
	for i, pl := range tp.All() {
		if !draw(i, pl) {
			r.Logger.Printf("Toolpath: stopped after %d/%d paths", drawn, tp.Len())
			return drawn
		}
		drawn++
		if drawn%every == 0 {
			r.Logger.Printf("Toolpath: progress %d/%d paths", drawn, tp.Len())
		}
	}
	r.Logger.Printf("Toolpath: complete, drew %d of %d contours", drawn, tp.Considered)
	return drawn
}
