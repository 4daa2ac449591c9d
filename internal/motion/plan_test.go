package motion

import (
	"testing"

	"cnc-tracer/internal/toolpath"
	"cnc-tracer/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x, y, side float64) toolpath.Polyline {
	return toolpath.Polyline{Points: []geometry.Point2D{
		{X: x, Y: y}, {X: x + side, Y: y}, {X: x + side, Y: y + side}, {X: x, Y: y + side},
	}}
}

func TestPlanEmpty(t *testing.T) {
	moves := Plan(toolpath.Toolpath{}, DefaultOptions())
	require.Len(t, moves, 2)
	assert.Equal(t, OpPenUp, moves[0].Op)
	assert.Equal(t, Move{Op: OpMove, Polyline: -1}, moves[1])
}

func TestPlanSequence(t *testing.T) {
	tp := toolpath.Toolpath{Polylines: []toolpath.Polyline{square(10, 10, 5), square(-3, -3, 1)}}
	moves := Plan(tp, DefaultOptions())

	ops := make([]Op, len(moves))
	for i, m := range moves {
		ops[i] = m.Op
	}
	want := []Op{OpPenUp,
		OpMove, OpPenDown, OpMove, OpMove, OpMove, OpMove, OpPenUp,
		OpMove, OpPenDown, OpMove, OpMove, OpMove, OpMove, OpPenUp,
		OpMove}
	assert.Equal(t, want, ops)

	// Closing stroke returns to the start; the plan ends parked at home.
	assert.Equal(t, geometry.Point2D{X: 10, Y: 10}, moves[6].To)
	assert.Equal(t, geometry.Point2D{}, moves[len(moves)-1].To)
	assert.Equal(t, -1, moves[len(moves)-1].Polyline)
}

func TestPlanWithoutClosing(t *testing.T) {
	tp := toolpath.Toolpath{Polylines: []toolpath.Polyline{square(0, 0, 1)}}
	opts := Options{Home: geometry.Point2D{X: 7, Y: 7}}
	moves := Plan(tp, opts)
	// PenUp, travel, PenDown, 3 cuts, PenUp, home.
	assert.Len(t, moves, 8)
	assert.Equal(t, geometry.Point2D{X: 7, Y: 7}, moves[len(moves)-1].To)
}

func TestSummarize(t *testing.T) {
	tp := toolpath.Toolpath{Polylines: []toolpath.Polyline{square(3, 4, 2)}}
	st := Summarize(Plan(tp, DefaultOptions()), geometry.Point2D{})

	assert.Equal(t, 1, st.Polylines)
	assert.Equal(t, 1, st.PenLifts)
	assert.InDelta(t, 8, st.CutDistance, 1e-9)
	// Out to (3,4) and back home from there.
	assert.InDelta(t, 10, st.TravelDistance, 1e-9)
	assert.Equal(t, geometry.Rect{X: 3, Y: 4, Width: 2, Height: 2}, st.Bounds)
}

func TestSummarizeSpansEveryStroke(t *testing.T) {
	tp := toolpath.Toolpath{Polylines: []toolpath.Polyline{square(10, 10, 5), square(-3, -3, 1)}}
	st := Summarize(Plan(tp, DefaultOptions()), geometry.Point2D{})

	assert.Equal(t, 2, st.Polylines)
	assert.Equal(t, 2, st.PenLifts)
	assert.InDelta(t, 24, st.CutDistance, 1e-9)
	assert.Equal(t, geometry.Rect{X: -3, Y: -3, Width: 18, Height: 18}, st.Bounds)
}

func TestSummarizeEmptyPlan(t *testing.T) {
	st := Summarize(Plan(toolpath.Toolpath{}, DefaultOptions()), geometry.Point2D{})
	assert.Zero(t, st.Polylines)
	assert.Zero(t, st.CutDistance)
	assert.Zero(t, st.TravelDistance)
	assert.Equal(t, geometry.Rect{}, st.Bounds)
}
