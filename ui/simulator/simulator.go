// Package simulator animates a motion plan in a fyne window: a virtual
// machine whose tool travels the toolpath and leaves cut lines behind.
package simulator

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"cnc-tracer/internal/motion"
	"cnc-tracer/internal/toolpath"
	"cnc-tracer/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	toolRadius    = 3
	progressEvery = 5
)

var (
	idleColor = color.NRGBA{R: 0xE5, G: 0x39, B: 0x35, A: 0xFF}
	cutColor  = color.NRGBA{R: 0x1E, G: 0x56, B: 0xD8, A: 0xFF}
)

// Simulator renders the drawing area, the tool and a status line.
type Simulator struct {
	pixels     float32 // Side of the square drawing area
	canvasSize float64 // Canvas units spanned by the drawing area
	delay      time.Duration

	background *fynecanvas.Rectangle
	paths      *fyne.Container
	tool       *fynecanvas.Circle
	status     *widget.Label
	content    fyne.CanvasObject

	lines int
}

// New creates a simulator showing canvasSize units on a pixels-wide square.
// delay is the pause after each tool move; zero animates as fast as possible.
func New(pixels float32, canvasSize float64, delay time.Duration) *Simulator {
	s := &Simulator{
		pixels:     pixels,
		canvasSize: canvasSize,
		delay:      delay,
	}

	size := fyne.NewSize(pixels, pixels)
	s.background = fynecanvas.NewRectangle(color.White)
	s.background.SetMinSize(size)
	s.background.Resize(size)

	s.paths = container.NewWithoutLayout()
	s.paths.Resize(size)

	s.tool = fynecanvas.NewCircle(idleColor)
	s.tool.Resize(fyne.NewSize(2*toolRadius, 2*toolRadius))
	s.placeTool(geometry.Point2D{})

	s.status = widget.NewLabel("Ready")
	s.status.Alignment = fyne.TextAlignCenter

	drawing := container.NewWithoutLayout(s.background, s.paths, s.tool)
	s.content = container.NewBorder(s.status, nil, nil, nil, drawing)
	return s
}

// Content returns the object to place in a window.
func (s *Simulator) Content() fyne.CanvasObject {
	return s.content
}

// SetStatus replaces the status line.
func (s *Simulator) SetStatus(msg string) {
	s.status.SetText(msg)
}

// Status returns the current status line.
func (s *Simulator) Status() string {
	return s.status.Text
}

// Lines returns the number of cut segments drawn so far.
func (s *Simulator) Lines() int {
	return s.lines
}

// toPos maps canvas coordinates (origin centred, y up) to drawing-area
// coordinates (origin top-left, y down).
func (s *Simulator) toPos(p geometry.Point2D) fyne.Position {
	k := float64(s.pixels) / s.canvasSize
	half := float64(s.pixels) / 2
	return fyne.NewPos(float32(half+p.X*k), float32(half-p.Y*k))
}

func (s *Simulator) placeTool(p geometry.Point2D) {
	pos := s.toPos(p)
	s.tool.Move(fyne.NewPos(pos.X-toolRadius, pos.Y-toolRadius))
}

// Clear removes all cut lines and parks the tool at the origin.
func (s *Simulator) Clear() {
	s.paths.RemoveAll()
	s.lines = 0
	s.tool.FillColor = idleColor
	s.placeTool(geometry.Point2D{})
	s.tool.Refresh()
}

// Run plays moves, the motion plan of tp, until done or ctx is cancelled.
// It returns the number of polylines completed.
func (s *Simulator) Run(ctx context.Context, tp toolpath.Toolpath, moves []motion.Move) int {
	s.SetStatus("CNC Machine Running - Drawing Design...")

	pos := geometry.Point2D{}
	down := false
	drawn := 0
	for _, m := range moves {
		if ctx.Err() != nil {
			s.SetStatus(fmt.Sprintf("Stopped after %d/%d paths", drawn, tp.Len()))
			return drawn
		}

		switch m.Op {
		case motion.OpPenDown:
			down = true
			s.tool.FillColor = cutColor
			s.tool.Refresh()
		case motion.OpPenUp:
			if down {
				drawn++
				if drawn%progressEvery == 0 {
					s.SetStatus(fmt.Sprintf("CNC Machine Running - Progress: %d/%d paths", drawn, tp.Len()))
				}
			}
			down = false
			s.tool.FillColor = idleColor
			s.tool.Refresh()
		case motion.OpMove:
			if down {
				line := fynecanvas.NewLine(cutColor)
				line.StrokeWidth = 1
				line.Position1 = s.toPos(pos)
				line.Position2 = s.toPos(m.To)
				s.paths.Add(line)
				s.lines++
			}
			pos = m.To
			s.placeTool(pos)
			s.wait(ctx)
		}
	}

	s.SetStatus(fmt.Sprintf("Design Complete! Drew %d toolpaths", drawn))
	return drawn
}

func (s *Simulator) wait(ctx context.Context) {
	if s.delay <= 0 {
		return
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
