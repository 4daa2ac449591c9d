package simulator

import (
	"context"
	"testing"

	"cnc-tracer/internal/motion"
	"cnc-tracer/internal/toolpath"
	"cnc-tracer/pkg/geometry"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func squares(n int) toolpath.Toolpath {
	tp := toolpath.Toolpath{Considered: n, Emitted: n}
	for i := 0; i < n; i++ {
		o := float64(i * 10)
		tp.Polylines = append(tp.Polylines, toolpath.Polyline{Points: []geometry.Point2D{
			{X: o, Y: o}, {X: o + 5, Y: o}, {X: o + 5, Y: o + 5}, {X: o, Y: o + 5},
		}})
	}
	return tp
}

func TestToPos(t *testing.T) {
	test.NewApp()

	s := New(800, 800, 0)
	assert.Equal(t, fyne.NewPos(400, 400), s.toPos(geometry.Point2D{}))
	assert.Equal(t, fyne.NewPos(100, 100), s.toPos(geometry.Point2D{X: -300, Y: 300}))
	assert.Equal(t, fyne.NewPos(700, 700), s.toPos(geometry.Point2D{X: 300, Y: -300}))
}

func TestRunDrawsEveryCutSegment(t *testing.T) {
	test.NewApp()

	tp := squares(6)
	moves := motion.Plan(tp, motion.DefaultOptions())
	s := New(400, 600, 0)

	drawn := s.Run(context.Background(), tp, moves)
	assert.Equal(t, 6, drawn)
	// Three edges plus the closing edge per square.
	assert.Equal(t, 24, s.Lines())
	assert.Equal(t, "Design Complete! Drew 6 toolpaths", s.Status())

	s.Clear()
	assert.Zero(t, s.Lines())
}

func TestRunStopsWhenCancelled(t *testing.T) {
	test.NewApp()

	tp := squares(3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(400, 600, 0)
	drawn := s.Run(ctx, tp, motion.Plan(tp, motion.DefaultOptions()))
	assert.Zero(t, drawn)
	assert.Zero(t, s.Lines())
	assert.Equal(t, "Stopped after 0/3 paths", s.Status())
}
