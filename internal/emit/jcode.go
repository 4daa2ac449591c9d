// Package emit hands finished toolpaths to consumers: JCode files for
// plotters, preview images and progress logs.
package emit

import (
	"fmt"
	"io"
	"os"
	"time"

	"cnc-tracer/internal/motion"

	"github.com/JoshPattman/jcode"
)

// JCodeOptions configures JCode output.
type JCodeOptions struct {
	Speed      float64       // Tool head speed in units/s
	Scale      float64       // Machine units per canvas unit
	MinSegment float64       // Drop pen-down waypoints closer than this to the previous one (machine units)
	StartDelay time.Duration // Pause before lowering the pen
	EndDelay   time.Duration // Pause before lifting the pen
	OffsetX    float64       // Added to every X after scaling
	OffsetY    float64       // Added to every Y after scaling
}

// DefaultJCodeOptions maps canvas units one-to-one at a moderate speed.
func DefaultJCodeOptions() JCodeOptions {
	return JCodeOptions{
		Speed: 5.0,
		Scale: 1.0,
	}
}

// JCode converts a motion plan into JCode instructions.
func JCode(moves []motion.Move, opts JCodeOptions) []jcode.Instruction {
	if opts.Scale == 0 {
		opts.Scale = 1
	}

	code := []jcode.Instruction{jcode.Speed{Speed: opts.Speed}}
	down := false
	var last jcode.Waypoint
	for i, m := range moves {
		switch m.Op {
		case motion.OpPenDown:
			if opts.StartDelay > 0 {
				code = append(code, jcode.Delay{Duration: opts.StartDelay})
			}
			code = append(code, jcode.Pen{Mode: jcode.PenDown})
			down = true
		case motion.OpPenUp:
			if down && opts.EndDelay > 0 {
				code = append(code, jcode.Delay{Duration: opts.EndDelay})
			}
			code = append(code, jcode.Pen{Mode: jcode.PenUp})
			down = false
		case motion.OpMove:
			wp := jcode.Waypoint{
				XPos: m.To.X*opts.Scale + opts.OffsetX,
				YPos: m.To.Y*opts.Scale + opts.OffsetY,
			}
			// Keep the final point of every stroke regardless of spacing.
			lastOfStroke := i+1 >= len(moves) || moves[i+1].Op != motion.OpMove
			if down && !lastOfStroke && opts.MinSegment > 0 && jcode.Dist(last, wp) < opts.MinSegment {
				continue
			}
			code = append(code, wp)
			last = wp
		}
	}
	return code
}

// WriteJCode encodes a motion plan to w.
func WriteJCode(w io.Writer, moves []motion.Move, opts JCodeOptions) error {
	enc := jcode.NewEncoder(w)
	return enc.Write(JCode(moves, opts)...)
}

// SaveJCode writes a motion plan to a JCode file.
func SaveJCode(path string, moves []motion.Move, opts JCodeOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create JCode file: %w", err)
	}
	defer f.Close()

	if err := WriteJCode(f, moves, opts); err != nil {
		return fmt.Errorf("failed to write JCode: %w", err)
	}
	return f.Close()
}
