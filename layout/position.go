package layout

import (
	"github.com/inkwellrender/inkwell/css"
	"github.com/inkwellrender/inkwell/dom"
	"github.com/inkwellrender/inkwell/style"
	"github.com/inkwellrender/inkwell/utils"
)

// layoutAbsolutes lays out the boxes taken out of normal flow, after the
// flow pass so every containing box has final geometry. Absolutes nested
// inside other absolutes are appended while iterating and picked up by
// the same loop.
func (e *Engine) layoutAbsolutes() {
	for i := 0; i < len(e.absolutes); i++ {
		p := e.absolutes[i]
		cb := containingBlock{
			Width:          e.viewport.Width,
			Height:         e.viewport.Height,
			HeightDefinite: true,
		}
		if p.box.Style.Position == style.Absolute && p.container != nil {
			pb := p.container.Dimensions.PaddingBox()
			cb = containingBlock{
				X: pb.X, Y: pb.Y,
				Width: pb.Width, Height: pb.Height,
				HeightDefinite: true,
			}
		}
		e.layoutAbsolute(p.box, cb)
	}
}

func (e *Engine) layoutAbsolute(box *LayoutBox, cb containingBlock) {
	st := box.Style
	left, leftAuto := e.resolveMaybeAuto(st.Offset[style.Left], cb.Width, true, st, box.Node)
	right, rightAuto := e.resolveMaybeAuto(st.Offset[style.Right], cb.Width, true, st, box.Node)
	top, topAuto := e.resolveMaybeAuto(st.Offset[style.Top], cb.Height, cb.HeightDefinite, st, box.Node)
	bottom, bottomAuto := e.resolveMaybeAuto(st.Offset[style.Bottom], cb.Height, cb.HeightDefinite, st, box.Node)

	inner := cb
	switch {
	case !leftAuto && !rightAuto && st.Width.Kind == css.ValueAuto:
		// both insets set and width auto: the insets size the box
		inner.X += left
		inner.Width = utils.ClampPositive(cb.Width - left - right)
	case st.Width.Kind == css.ValueAuto:
		// auto width shrinks to fit instead of filling the container
		inner.Width = utils.MinF(e.intrinsicWidth(box), cb.Width)
	}

	flow := &flowContext{y: inner.Y}
	e.layoutBlock(box, inner, flow, box)

	current := box.Dimensions.BorderBox()
	d := box.Dimensions
	targetX, targetY := current.X, current.Y
	switch {
	case !leftAuto:
		targetX = cb.X + left + d.Margin.Left
	case !rightAuto:
		targetX = cb.X + cb.Width - right - d.Margin.Right - current.Width
	}
	switch {
	case !topAuto:
		targetY = cb.Y + top + d.Margin.Top
	case !bottomAuto:
		targetY = cb.Y + cb.Height - bottom - d.Margin.Bottom - current.Height
	}
	if dx, dy := targetX-current.X, targetY-current.Y; dx != 0 || dy != 0 {
		box.shift(dx, dy)
	}
}

// layoutAtomic lays out an inline-block so line breaking can treat it as
// one opaque token. An auto width shrinks to fit its content, capped by
// the line's available width.
func (e *Engine) layoutAtomic(box *LayoutBox, avail Fl, absContainer *LayoutBox) {
	// size the containing block to the box itself so no underflow leaks
	// into its margins; only an auto width is capped by the line
	width := e.intrinsicWidth(box)
	if box.Style.Width.Kind == css.ValueAuto {
		width = utils.MinF(width, avail)
	}
	cb := containingBlock{Width: width}
	flow := &flowContext{}
	e.layoutBlock(box, cb, flow, absContainer)
	// make sure the margin box is closed even when margins stayed pending
	flow.realize()
}

// intrinsicWidth estimates the no-wrap margin-box width of a subtree:
// inline content contributes the sum of its token advances, block
// children their widest descendant. Percentages have no intrinsic
// contribution.
func (e *Engine) intrinsicWidth(box *LayoutBox) Fl {
	st := box.Style
	edges := e.intrinsicLength(st.Margin[style.Left], st) +
		e.intrinsicLength(st.Margin[style.Right], st) +
		e.intrinsicLength(st.BorderWidth[style.Left], st) +
		e.intrinsicLength(st.BorderWidth[style.Right], st) +
		e.intrinsicLength(st.Padding[style.Left], st) +
		e.intrinsicLength(st.Padding[style.Right], st)

	if box.Type == ReplacedBox {
		return e.replacedIntrinsicWidth(box, edges)
	}
	if st.Width.Kind == css.ValueDimension && st.Width.Dimension.Unit != css.Perc {
		return utils.ClampPositive(e.resolveLength(st.Width, 0, true, st, box.Node)) + edges
	}

	var content Fl
	if box.hasInlineContent() {
		content = e.measureInline(box)
	} else {
		for _, child := range box.Children {
			if child.InFlow() {
				content = utils.MaxF(content, e.intrinsicWidth(child))
			}
		}
	}
	return content + edges
}

// measureInline sums the advances of the inline content as if laid on a
// single unbroken line.
func (e *Engine) measureInline(box *LayoutBox) Fl {
	var total Fl
	for _, child := range box.Children {
		if !child.InFlow() {
			continue
		}
		switch {
		case child.Node != dom.None && !e.tree.Doc.IsElement(child.Node):
			total += e.measureText(child.Style, e.tree.Doc.Node(child.Node).Text, child.Node)
		case child.Type == InlineBlockBox, child.Type == ReplacedBox:
			total += e.intrinsicWidth(child)
		default:
			total += e.measureInline(child)
		}
	}
	return total
}

func (e *Engine) measureText(st *style.ComputedStyle, content string, node dom.NodeID) Fl {
	var total Fl
	for _, t := range e.tokenizeText(st, content, node, nil) {
		if t.kind != breakToken {
			total += t.width
		}
	}
	return total
}

// intrinsicLength resolves an edge length for intrinsic sizing, where no
// containing width exists yet.
func (e *Engine) intrinsicLength(v css.Value, st *style.ComputedStyle) Fl {
	if v.Kind != css.ValueDimension || v.Dimension.Unit == css.Perc {
		return 0
	}
	return utils.ClampPositive(e.resolveLength(v, 0, true, st, -1))
}
