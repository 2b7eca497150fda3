package backend

import (
	"testing"

	"github.com/inkwellrender/inkwell/css"
	"github.com/inkwellrender/inkwell/layout"
	"github.com/inkwellrender/inkwell/paint"
	"github.com/inkwellrender/inkwell/text"
	tu "github.com/inkwellrender/inkwell/utils/testutils"
)

// recordingCanvas captures replayed operations for inspection.
type recordingCanvas struct {
	cleared []css.Color
	fills   []paint.FillRect
	borders []paint.StrokeBorder
	texts   []paint.DrawText
	order   []string
}

func (c *recordingCanvas) Clear(color css.Color) {
	c.cleared = append(c.cleared, color)
	c.order = append(c.order, "clear")
}

func (c *recordingCanvas) FillRect(rect layout.Rect, color css.Color) {
	c.fills = append(c.fills, paint.FillRect{Rect: rect, Color: color})
	c.order = append(c.order, "fill")
}

func (c *recordingCanvas) StrokeBorder(borderBox layout.Rect, widths layout.EdgeSizes, color css.Color) {
	c.borders = append(c.borders, paint.StrokeBorder{BorderBox: borderBox, Widths: widths, Color: color})
	c.order = append(c.order, "border")
}

func (c *recordingCanvas) DrawText(run string, x, y Fl, font text.FontDescription, color css.Color) {
	c.texts = append(c.texts, paint.DrawText{Text: run, X: x, Y: y, Font: font, Color: color})
	c.order = append(c.order, "text")
}

func sampleList() *paint.DisplayList {
	return &paint.DisplayList{
		Viewport: layout.Viewport{Width: 100, Height: 50},
		Ops: []paint.Op{
			paint.FillRect{Rect: layout.Rect{X: 1, Y: 2, Width: 3, Height: 4}, Color: css.Black},
			paint.StrokeBorder{
				BorderBox: layout.Rect{X: 5, Y: 6, Width: 7, Height: 8},
				Widths:    layout.EdgeSizes{Top: 1, Right: 1, Bottom: 1, Left: 1},
				Color:     css.Black,
			},
			paint.DrawText{
				Text: "hi", X: 10, Y: 20,
				Font:  text.FontDescription{Family: "sans-serif", Size: 16, Weight: 400},
				Color: css.Black,
			},
		},
	}
}

func TestReplayClearsFirst(t *testing.T) {
	dst := &recordingCanvas{}
	Replay(sampleList(), 1, dst)

	tu.AssertEqual(t, dst.order, []string{"clear", "fill", "border", "text"})
	tu.AssertEqual(t, dst.cleared, []css.Color{css.White})
	// scale 1 passes coordinates through untouched
	tu.AssertEqual(t, dst.fills[0].Rect, layout.Rect{X: 1, Y: 2, Width: 3, Height: 4})
}

func TestReplayAppliesScale(t *testing.T) {
	dst := &recordingCanvas{}
	Replay(sampleList(), 2, dst)

	tu.AssertEqual(t, dst.fills[0].Rect, layout.Rect{X: 2, Y: 4, Width: 6, Height: 8})
	tu.AssertEqual(t, dst.borders[0].BorderBox, layout.Rect{X: 10, Y: 12, Width: 14, Height: 16})
	tu.AssertEqual(t, dst.borders[0].Widths, layout.EdgeSizes{Top: 2, Right: 2, Bottom: 2, Left: 2})
	tu.AssertEqual(t, dst.texts[0].X, Fl(20))
	tu.AssertEqual(t, dst.texts[0].Y, Fl(40))
	tu.AssertEqual(t, dst.texts[0].Font.Size, Fl(32))
}

func TestReplayDefaultsBadScale(t *testing.T) {
	dst := &recordingCanvas{}
	Replay(sampleList(), 0, dst)
	tu.AssertEqual(t, dst.fills[0].Rect, layout.Rect{X: 1, Y: 2, Width: 3, Height: 4})
}
