// Package motion turns a toolpath into pen-up / pen-down moves for a
// plotting or cutting device.
package motion

import (
	"cnc-tracer/internal/toolpath"
	"cnc-tracer/pkg/geometry"

	"gonum.org/v1/gonum/floats"
)

// Op is a single tool action.
type Op int

const (
	// OpPenUp lifts the tool.
	OpPenUp Op = iota
	// OpPenDown lowers the tool onto the work.
	OpPenDown
	// OpMove moves the tool in a straight line to Move.To.
	OpMove
)

func (o Op) String() string {
	switch o {
	case OpPenUp:
		return "PenUp"
	case OpPenDown:
		return "PenDown"
	case OpMove:
		return "Move"
	default:
		return "Unknown"
	}
}

// Move is one step of a motion plan.
type Move struct {
	Op       Op
	To       geometry.Point2D // Target for OpMove
	Polyline int              // Index of the polyline being drawn, -1 for travel home
}

// Options configures planning.
type Options struct {
	Close bool             // Draw a closing segment back to each polyline's start
	Home  geometry.Point2D // Where the tool parks after the last polyline
}

// DefaultOptions closes every contour and parks at the origin.
func DefaultOptions() Options {
	return Options{Close: true}
}

// Plan expands a toolpath into moves. The tool starts lifted, visits each
// polyline in order (travel with pen up, trace with pen down) and returns
// home once everything is drawn.
func Plan(tp toolpath.Toolpath, opts Options) []Move {
	var moves []Move
	moves = append(moves, Move{Op: OpPenUp, Polyline: -1})

	for i, pl := range tp.All() {
		if pl.Len() == 0 {
			continue
		}
		moves = append(moves,
			Move{Op: OpMove, To: pl.Start(), Polyline: i},
			Move{Op: OpPenDown, Polyline: i},
		)
		for _, p := range pl.Points[1:] {
			moves = append(moves, Move{Op: OpMove, To: p, Polyline: i})
		}
		if opts.Close && pl.Len() > 2 && pl.Points[pl.Len()-1] != pl.Start() {
			moves = append(moves, Move{Op: OpMove, To: pl.Start(), Polyline: i})
		}
		moves = append(moves, Move{Op: OpPenUp, Polyline: i})
	}

	return append(moves, Move{Op: OpMove, To: opts.Home, Polyline: -1})
}

// Stats summarises a motion plan.
type Stats struct {
	Polylines      int
	CutDistance    float64 // Length travelled with the pen down
	TravelDistance float64 // Length travelled with the pen up
	PenLifts       int
	Bounds         geometry.Rect // Extent of everything the pen touches
}

// Summarize measures a plan, starting from origin with the pen up.
func Summarize(moves []Move, origin geometry.Point2D) Stats {
	var (
		st     Stats
		cut    []float64
		travel []float64
		xs, ys []float64 // Every position the pen touches
	)
	pos, down := origin, false
	last := -1
	for _, m := range moves {
		switch m.Op {
		case OpPenUp:
			if down {
				st.PenLifts++
			}
			down = false
		case OpPenDown:
			down = true
			xs, ys = append(xs, pos.X), append(ys, pos.Y)
			if m.Polyline != last {
				st.Polylines++
				last = m.Polyline
			}
		case OpMove:
			d := floats.Distance([]float64{pos.X, pos.Y}, []float64{m.To.X, m.To.Y}, 2)
			if down {
				cut = append(cut, d)
				xs, ys = append(xs, m.To.X), append(ys, m.To.Y)
			} else {
				travel = append(travel, d)
			}
			pos = m.To
		}
	}
	st.CutDistance = floats.Sum(cut)
	st.TravelDistance = floats.Sum(travel)
	if len(xs) > 0 {
		minX, minY := floats.Min(xs), floats.Min(ys)
		st.Bounds = geometry.Rect{X: minX, Y: minY, Width: floats.Max(xs) - minX, Height: floats.Max(ys) - minY}
	}
	return st
}
