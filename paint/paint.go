// Package paint flattens a layout tree into a display list: an ordered,
// immutable sequence of drawing operations in absolute logical pixels.
// The list is device independent; the renderer applies the scale factor.
package paint

import (
	"sort"

	"github.com/inkwellrender/inkwell/css"
	"github.com/inkwellrender/inkwell/layout"
	"github.com/inkwellrender/inkwell/style"
	"github.com/inkwellrender/inkwell/text"
	"github.com/inkwellrender/inkwell/utils"
)

type Fl = utils.Fl

// Op is one drawing operation.
type Op interface {
	isOp()
}

// FillRect paints a solid rectangle.
type FillRect struct {
	Rect  layout.Rect
	Color css.Color
}

// StrokeBorder paints the border area of a box: the region between the
// border box and the padding box, one strip per non-zero edge.
type StrokeBorder struct {
	BorderBox layout.Rect
	Widths    layout.EdgeSizes
	Color     css.Color
}

// DrawText paints one run of text at a baseline position.
type DrawText struct {
	Text  string
	X     Fl // left edge of the run
	Y     Fl // baseline
	Font  text.FontDescription
	Color css.Color
}

func (FillRect) isOp()     {}
func (StrokeBorder) isOp() {}
func (DrawText) isOp()     {}

// DisplayList is the ordered output of one paint pass. It is regenerated
// wholesale on every invalidation and must be consumed as a snapshot.
type DisplayList struct {
	Ops      []Op
	Viewport layout.Viewport
}

// Paint walks the layout tree in paint order: for each box its background
// fill, then its border, then its text runs, then its children. Children
// are ordered by z-index with document order breaking ties, so stacking
// is always deterministic.
func Paint(root *layout.LayoutBox, viewport layout.Viewport) *DisplayList {
	list := &DisplayList{Viewport: viewport}
	if root != nil {
		paintBox(list, root)
	}
	return list
}

func paintBox(list *DisplayList, box *layout.LayoutBox) {
	if box.Style.Visibility == style.Visible {
		paintBackground(list, box)
		paintBorder(list, box)
		if box.Type == layout.ReplacedBox {
			paintPlaceholder(list, box)
		}
		paintText(list, box)
	}
	for _, child := range stackingOrder(box.Children) {
		paintBox(list, child)
	}
}

func paintBackground(list *DisplayList, box *layout.LayoutBox) {
	c := box.Style.BackgroundColor
	if c.IsTransparent() {
		return
	}
	rect := box.Dimensions.BorderBox()
	// inline boxes carry no fragment geometry, their fill would be empty
	if rect.Width <= 0 || rect.Height <= 0 {
		return
	}
	list.Ops = append(list.Ops, FillRect{Rect: rect, Color: c})
}

// placeholderFill stands in for replaced content the pipeline does not
// decode; hosts wanting real media replace the op during replay.
var placeholderFill = css.Color{R: 192, G: 192, B: 192, A: 255}

func paintPlaceholder(list *DisplayList, box *layout.LayoutBox) {
	rect := box.Dimensions.Content
	if rect.Width <= 0 || rect.Height <= 0 {
		return
	}
	list.Ops = append(list.Ops, FillRect{Rect: rect, Color: placeholderFill})
}

func paintBorder(list *DisplayList, box *layout.LayoutBox) {
	d := box.Dimensions
	if d.Border == (layout.EdgeSizes{}) {
		return
	}
	c := box.Style.BorderColor
	if c.IsTransparent() {
		return
	}
	list.Ops = append(list.Ops, StrokeBorder{
		BorderBox: d.BorderBox(),
		Widths:    d.Border,
		Color:     c,
	})
}

func paintText(list *DisplayList, box *layout.LayoutBox) {
	for _, line := range box.Lines {
		for _, run := range line.Runs {
			if run.Space || run.Text == "" {
				continue
			}
			list.Ops = append(list.Ops, DrawText{
				Text:  run.Text,
				X:     run.X,
				Y:     line.Baseline,
				Font:  run.Style.FontDescription(),
				Color: run.Style.Color,
			})
		}
	}
}

// stackingOrder sorts siblings by explicit z-index; boxes without one
// count as level 0. The sort is stable so document order breaks ties.
func stackingOrder(children []*layout.LayoutBox) []*layout.LayoutBox {
	needsSort := false
	for _, c := range children {
		if c.Style.HasZIndex && c.Style.ZIndex != 0 {
			needsSort = true
			break
		}
	}
	if !needsSort {
		return children
	}
	sorted := make([]*layout.LayoutBox, len(children))
	copy(sorted, children)
	sort.SliceStable(sorted, func(i, j int) bool {
		return zLevel(sorted[i]) < zLevel(sorted[j])
	})
	return sorted
}

func zLevel(b *layout.LayoutBox) int {
	if b.Style.HasZIndex {
		return b.Style.ZIndex
	}
	return 0
}
