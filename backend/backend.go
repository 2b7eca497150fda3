// Package backend defines the drawing target contract for display list
// replay, keeping the pipeline device independent: the renderer owns the
// scale factor and the buffer lifecycle.
package backend

import (
	"github.com/inkwellrender/inkwell/css"
	"github.com/inkwellrender/inkwell/layout"
	"github.com/inkwellrender/inkwell/paint"
	"github.com/inkwellrender/inkwell/text"
	"github.com/inkwellrender/inkwell/utils"
)

type Fl = utils.Fl

// Canvas is one drawing target. Coordinates passed to it are device
// pixels: Replay has already applied the scale factor.
type Canvas interface {
	// Clear fills the whole target with one color, discarding previous
	// content. Replay always clears before drawing so a stale frame can
	// never show through after a resize.
	Clear(color css.Color)

	FillRect(rect layout.Rect, color css.Color)

	// StrokeBorder fills the frame between the border box and the padding
	// box, one strip per non-zero edge.
	StrokeBorder(borderBox layout.Rect, widths layout.EdgeSizes, color css.Color)

	// DrawText draws one run with its left edge at x and its baseline at y.
	// The font size is in device pixels.
	DrawText(run string, x, y Fl, font text.FontDescription, color css.Color)
}

// Replay draws a display list onto dst, scaling every coordinate and font
// size by scale. A scale of 0 or less counts as 1.
func Replay(list *paint.DisplayList, scale Fl, dst Canvas) {
	if scale <= 0 {
		scale = 1
	}
	dst.Clear(css.White)
	for _, op := range list.Ops {
		switch op := op.(type) {
		case paint.FillRect:
			dst.FillRect(scaleRect(op.Rect, scale), op.Color)
		case paint.StrokeBorder:
			dst.StrokeBorder(scaleRect(op.BorderBox, scale), scaleEdges(op.Widths, scale), op.Color)
		case paint.DrawText:
			font := op.Font
			font.Size *= scale
			dst.DrawText(op.Text, op.X*scale, op.Y*scale, font, op.Color)
		}
	}
}

func scaleRect(r layout.Rect, s Fl) layout.Rect {
	return layout.Rect{X: r.X * s, Y: r.Y * s, Width: r.Width * s, Height: r.Height * s}
}

func scaleEdges(e layout.EdgeSizes, s Fl) layout.EdgeSizes {
	return layout.EdgeSizes{Top: e.Top * s, Right: e.Right * s, Bottom: e.Bottom * s, Left: e.Left * s}
}
