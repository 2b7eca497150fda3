package layout

import (
	"github.com/inkwellrender/inkwell/css"
	"github.com/inkwellrender/inkwell/diagnostics"
	"github.com/inkwellrender/inkwell/dom"
	"github.com/inkwellrender/inkwell/style"
	"github.com/inkwellrender/inkwell/utils"
)

// containingBlock is the rectangle a child's relative dimensions resolve
// against. Height is only usable as a percentage base when definite.
type containingBlock struct {
	X, Y           Fl
	Width, Height  Fl
	HeightDefinite bool
}

// flowContext is the vertical cursor of one block formatting run.
// Adjacent vertical margins are not added to y immediately: they
// accumulate in pending as a running maximum and are realized in one go
// when content, border or padding interrupts the collapsing chain. This
// is what makes sibling and parent/first-child collapsing fall out of the
// same mechanism.
type flowContext struct {
	y       Fl // border edge of the next box, pending margins excluded
	pending Fl // largest collapsible margin not yet realized
}

func (f *flowContext) realize() Fl {
	f.y += f.pending
	f.pending = 0
	return f.y
}

// layoutBlock computes the full geometry of one block-level box and
// everything below it, advancing flow past its margin box.
func (e *Engine) layoutBlock(box *LayoutBox, cb containingBlock, flow *flowContext, absContainer *LayoutBox) {
	if box.Type == ReplacedBox {
		// atomic content: no children to flow, margins never collapse
		e.layoutReplaced(box, cb.Width)
		mb := box.Dimensions.MarginBox()
		box.shift(cb.X-mb.X, flow.realize()-mb.Y)
		flow.y += mb.Height
		return
	}

	e.computeBlockWidth(box, cb)
	d := &box.Dimensions

	height, heightDefinite := e.resolveHeight(box, cb)

	flow.pending = utils.MaxF(flow.pending, d.Margin.Top)

	inline := box.hasInlineContent()
	inFlowBlocks := 0
	for _, c := range box.Children {
		if c.IsBlockLevel() && c.InFlow() {
			inFlowBlocks++
		}
	}

	// the top margin chain breaks on border, padding or inline content;
	// otherwise the first child's margin keeps collapsing with ours and
	// the inner flow is the outer flow
	separatedTop := d.Border.Top > 0 || d.Padding.Top > 0
	inner := flow
	if separatedTop || inline || inFlowBlocks == 0 {
		top := flow.realize()
		d.Content.Y = top + d.Border.Top + d.Padding.Top
		inner = &flowContext{y: d.Content.Y}
	}

	nextAbs := absContainer
	if box.Style.IsPositioned() {
		nextAbs = box
	}

	if inline {
		contentHeight := e.layoutInlineContent(box, nextAbs)
		inner.y = d.Content.Y + contentHeight
		inner.pending = 0
	} else {
		childCB := containingBlock{
			X:              d.Content.X,
			Width:          d.Content.Width,
			Height:         height,
			HeightDefinite: heightDefinite,
		}
		for _, child := range box.Children {
			if !child.InFlow() {
				e.absolutes = append(e.absolutes, pendingAbsolute{box: child, container: nextAbs})
				continue
			}
			e.layoutBlock(child, childCB, inner, nextAbs)
		}
		if inner == flow {
			// collapsed through our top edge: our border box starts where
			// the first in-flow child's does
			d.Content.Y = flow.y
			for _, child := range box.Children {
				if child.InFlow() {
					d.Content.Y = child.Dimensions.BorderBox().Y
					break
				}
			}
		}
	}

	// close the bottom edge; a definite height or bottom border/padding
	// keeps the last child's margin inside the box
	separatedBottom := d.Border.Bottom > 0 || d.Padding.Bottom > 0
	switch {
	case heightDefinite:
		d.Content.Height = utils.ClampPositive(height)
		inner.pending = 0
	case separatedBottom || inline:
		d.Content.Height = utils.ClampPositive(inner.y + inner.pending - d.Content.Y)
		inner.pending = 0
	default:
		d.Content.Height = utils.ClampPositive(inner.y - d.Content.Y)
	}

	flow.y = d.Content.Y + d.Content.Height + d.Padding.Bottom + d.Border.Bottom
	if inner != flow {
		// margins still pending at the inner bottom escape and collapse
		// with our own bottom margin
		flow.pending = utils.MaxF(inner.pending, d.Margin.Bottom)
	} else {
		flow.pending = utils.MaxF(flow.pending, d.Margin.Bottom)
	}

	if e.isListItem(box) {
		e.placeListMarker(box)
	}

	if box.Style.Position == style.Relative {
		dx, dy := e.relativeOffset(box.Style, cb, box.Node)
		if dx != 0 || dy != 0 {
			box.shift(dx, dy)
		}
	}
}

// computeBlockWidth resolves the horizontal dimensions against the
// containing width: auto width fills the remaining space, auto margins
// absorb underflow (both auto centers the box), and overflow pushes into
// the right margin so the content width never goes negative.
func (e *Engine) computeBlockWidth(box *LayoutBox, cb containingBlock) {
	st := box.Style
	d := &box.Dimensions
	cw := cb.Width

	width, widthAuto := e.resolveMaybeAuto(st.Width, cw, true, st, box.Node)
	ml, mlAuto := e.resolveMaybeAuto(st.Margin[style.Left], cw, true, st, box.Node)
	mr, mrAuto := e.resolveMaybeAuto(st.Margin[style.Right], cw, true, st, box.Node)

	d.Padding = EdgeSizes{
		Top:    e.resolveEdge(st.Padding[style.Top], cw, st, box.Node),
		Right:  e.resolveEdge(st.Padding[style.Right], cw, st, box.Node),
		Bottom: e.resolveEdge(st.Padding[style.Bottom], cw, st, box.Node),
		Left:   e.resolveEdge(st.Padding[style.Left], cw, st, box.Node),
	}
	d.Border = EdgeSizes{
		Top:    e.resolveEdge(st.BorderWidth[style.Top], cw, st, box.Node),
		Right:  e.resolveEdge(st.BorderWidth[style.Right], cw, st, box.Node),
		Bottom: e.resolveEdge(st.BorderWidth[style.Bottom], cw, st, box.Node),
		Left:   e.resolveEdge(st.BorderWidth[style.Left], cw, st, box.Node),
	}
	mt, _ := e.resolveMaybeAuto(st.Margin[style.Top], cw, true, st, box.Node)
	mb, _ := e.resolveMaybeAuto(st.Margin[style.Bottom], cw, true, st, box.Node)
	d.Margin.Top, d.Margin.Bottom = mt, mb

	if !widthAuto {
		width = utils.ClampPositive(width)
	}
	total := width + ml + mr +
		d.Padding.Left + d.Padding.Right + d.Border.Left + d.Border.Right
	if !widthAuto && total > cw {
		// overconstrained: auto margins get no space to absorb
		if mlAuto {
			ml, mlAuto = 0, false
		}
		if mrAuto {
			mr, mrAuto = 0, false
		}
	}
	underflow := cw - total

	switch {
	case widthAuto:
		if mlAuto {
			ml, mlAuto = 0, false
		}
		if mrAuto {
			mr, mrAuto = 0, false
		}
		if underflow >= 0 {
			width = underflow
		} else {
			width = 0
			mr += underflow
		}
	case mlAuto && mrAuto:
		ml, mr = underflow/2, underflow/2
	case mlAuto:
		ml = underflow
	case mrAuto:
		mr = underflow
	default:
		mr += underflow // overflow escapes to the right
	}

	d.Content.Width = width
	d.Margin.Left, d.Margin.Right = ml, mr
	d.Content.X = cb.X + ml + d.Border.Left + d.Padding.Left
}

// resolveHeight resolves the specified height. Percentages against an
// indefinite base degrade to 0 with a diagnostic.
func (e *Engine) resolveHeight(box *LayoutBox, cb containingBlock) (Fl, bool) {
	st := box.Style
	switch st.Height.Kind {
	case css.ValueAuto, css.ValueInvalid:
		return 0, false
	default:
		h := e.resolveLength(st.Height, cb.Height, cb.HeightDefinite, st, box.Node)
		return utils.ClampPositive(h), true
	}
}

// resolveMaybeAuto resolves a length that admits the auto keyword.
func (e *Engine) resolveMaybeAuto(v css.Value, base Fl, baseDefinite bool, st *style.ComputedStyle, node dom.NodeID) (Fl, bool) {
	switch v.Kind {
	case css.ValueAuto, css.ValueInvalid:
		return 0, true
	default:
		return e.resolveLength(v, base, baseDefinite, st, node), false
	}
}

// resolveEdge resolves a padding or border length, which is never auto
// and never negative.
func (e *Engine) resolveEdge(v css.Value, base Fl, st *style.ComputedStyle, node dom.NodeID) Fl {
	if v.Kind == css.ValueAuto || v.Kind == css.ValueInvalid {
		return 0
	}
	return utils.ClampPositive(e.resolveLength(v, base, true, st, node))
}

// resolveLength turns a parsed value into logical pixels. base is the
// containing block dimension percentages resolve against.
func (e *Engine) resolveLength(v css.Value, base Fl, baseDefinite bool, st *style.ComputedStyle, node dom.NodeID) Fl {
	switch v.Kind {
	case css.ValueNumber:
		return v.Number // only the bare 0 length survives the cascade
	case css.ValueDimension:
		d := v.Dimension
		switch d.Unit {
		case css.Px:
			return d.Value
		case css.Em:
			return d.Value * st.FontSize
		case css.Rem:
			return d.Value * e.rootFontSize()
		case css.Vw:
			return d.Value * e.viewport.Width / 100
		case css.Vh:
			return d.Value * e.viewport.Height / 100
		case css.Perc:
			if !baseDefinite {
				e.rec.Record(diagnostics.UnresolvedDimension, node,
					"percentage %g%% has no definite base, using 0", d.Value)
				return 0
			}
			return d.Value * base / 100
		}
	}
	return 0
}

func (e *Engine) rootFontSize() Fl {
	return e.tree.Style(e.tree.Doc.Root()).FontSize
}

// relativeOffset computes the (dx, dy) of a relatively positioned box.
// Left wins over right and top over bottom when both are set.
func (e *Engine) relativeOffset(st *style.ComputedStyle, cb containingBlock, node dom.NodeID) (Fl, Fl) {
	var dx, dy Fl
	if left, auto := e.resolveMaybeAuto(st.Offset[style.Left], cb.Width, true, st, node); !auto {
		dx = left
	} else if right, auto := e.resolveMaybeAuto(st.Offset[style.Right], cb.Width, true, st, node); !auto {
		dx = -right
	}
	if top, auto := e.resolveMaybeAuto(st.Offset[style.Top], cb.Height, cb.HeightDefinite, st, node); !auto {
		dy = top
	} else if bottom, auto := e.resolveMaybeAuto(st.Offset[style.Bottom], cb.Height, cb.HeightDefinite, st, node); !auto {
		dy = -bottom
	}
	return dx, dy
}
