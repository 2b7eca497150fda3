package layout

import (
	"strconv"
	"strings"

	"github.com/inkwellrender/inkwell/css"
	"github.com/inkwellrender/inkwell/dom"
	"github.com/inkwellrender/inkwell/style"
	"github.com/inkwellrender/inkwell/utils"
)

// Placeholder size for replaced content carrying no sizing at all.
const (
	replacedDefaultWidth  Fl = 100
	replacedDefaultHeight Fl = 80
)

// replacedTags are the elements whose content comes from outside the
// document text; they lay out as atomic inline boxes.
var replacedTags = utils.NewSet("img", "picture", "video", "canvas", "embed", "object", "iframe")

// layoutReplaced sizes a replaced box: CSS width/height win, then the
// element's width/height attributes, then the placeholder defaults.
// Auto margins never absorb space on an atomic inline box.
func (e *Engine) layoutReplaced(box *LayoutBox, avail Fl) {
	st := box.Style
	d := &box.Dimensions

	d.Padding = EdgeSizes{
		Top:    e.resolveEdge(st.Padding[style.Top], avail, st, box.Node),
		Right:  e.resolveEdge(st.Padding[style.Right], avail, st, box.Node),
		Bottom: e.resolveEdge(st.Padding[style.Bottom], avail, st, box.Node),
		Left:   e.resolveEdge(st.Padding[style.Left], avail, st, box.Node),
	}
	d.Border = EdgeSizes{
		Top:    e.resolveEdge(st.BorderWidth[style.Top], avail, st, box.Node),
		Right:  e.resolveEdge(st.BorderWidth[style.Right], avail, st, box.Node),
		Bottom: e.resolveEdge(st.BorderWidth[style.Bottom], avail, st, box.Node),
		Left:   e.resolveEdge(st.BorderWidth[style.Left], avail, st, box.Node),
	}
	mt, _ := e.resolveMaybeAuto(st.Margin[style.Top], avail, true, st, box.Node)
	mr, _ := e.resolveMaybeAuto(st.Margin[style.Right], avail, true, st, box.Node)
	mb, _ := e.resolveMaybeAuto(st.Margin[style.Bottom], avail, true, st, box.Node)
	ml, _ := e.resolveMaybeAuto(st.Margin[style.Left], avail, true, st, box.Node)
	d.Margin = EdgeSizes{Top: mt, Right: mr, Bottom: mb, Left: ml}

	width, widthAuto := e.resolveMaybeAuto(st.Width, avail, true, st, box.Node)
	if widthAuto {
		width = e.attrLength(box.Node, "width", replacedDefaultWidth)
	}
	height, heightAuto := e.resolveMaybeAuto(st.Height, 0, false, st, box.Node)
	if heightAuto {
		height = e.attrLength(box.Node, "height", replacedDefaultHeight)
	}
	d.Content.Width = utils.ClampPositive(width)
	d.Content.Height = utils.ClampPositive(height)
	d.Content.X = ml + d.Border.Left + d.Padding.Left
	d.Content.Y = mt + d.Border.Top + d.Padding.Top
}

// attrLength reads a presentational width/height attribute as pixels.
func (e *Engine) attrLength(node dom.NodeID, name string, fallback Fl) Fl {
	if node == dom.None {
		return fallback
	}
	v, ok := e.tree.Doc.Attr(node, name)
	if !ok {
		return fallback
	}
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	if n, err := strconv.ParseFloat(v, 64); err == nil && n >= 0 {
		return n
	}
	return fallback
}

// replacedIntrinsicWidth is the margin-box advance of a replaced box for
// intrinsic sizing, before any line is available.
func (e *Engine) replacedIntrinsicWidth(box *LayoutBox, edges Fl) Fl {
	st := box.Style
	if st.Width.Kind == css.ValueDimension && st.Width.Dimension.Unit != css.Perc {
		return utils.ClampPositive(e.resolveLength(st.Width, 0, true, st, box.Node)) + edges
	}
	return e.attrLength(box.Node, "width", replacedDefaultWidth) + edges
}
