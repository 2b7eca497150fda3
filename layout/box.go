// Package layout turns a styled document into a tree of boxes with
// resolved geometry: block flow with margin collapsing, inline line
// breaking against a measurement provider, and out-of-flow positioning.
package layout

import (
	"github.com/inkwellrender/inkwell/dom"
	"github.com/inkwellrender/inkwell/style"
	"github.com/inkwellrender/inkwell/utils"
)

type Fl = utils.Fl

// Viewport describes the target area. Scale is carried through for the
// renderer; layout and paint math stay in logical pixels.
type Viewport struct {
	Width  Fl
	Height Fl
	Scale  Fl
}

// Rect is an axis-aligned rectangle in logical pixels.
type Rect struct {
	X, Y, Width, Height Fl
}

// ExpandedBy grows the rectangle by an edge on each side.
func (r Rect) ExpandedBy(e EdgeSizes) Rect {
	return Rect{
		X:      r.X - e.Left,
		Y:      r.Y - e.Top,
		Width:  r.Width + e.Left + e.Right,
		Height: r.Height + e.Top + e.Bottom,
	}
}

// EdgeSizes holds one resolved length per side of a box edge.
type EdgeSizes struct {
	Top, Right, Bottom, Left Fl
}

// Dimensions is the box model of one layout box. Content is the innermost
// rectangle; padding, border and margin expand outwards in that order.
type Dimensions struct {
	Content Rect
	Padding EdgeSizes
	Border  EdgeSizes
	Margin  EdgeSizes
}

func (d Dimensions) PaddingBox() Rect { return d.Content.ExpandedBy(d.Padding) }

func (d Dimensions) BorderBox() Rect { return d.PaddingBox().ExpandedBy(d.Border) }

func (d Dimensions) MarginBox() Rect { return d.BorderBox().ExpandedBy(d.Margin) }

// BoxType is the layout role of a box. Kept open so later formatting
// contexts can extend it without restructuring existing boxes.
type BoxType uint8

const (
	BlockBox BoxType = iota
	InlineBox
	InlineBlockBox
	// AnonymousBlock wraps inline runs when block and inline siblings mix
	// under one parent; it has no document node.
	AnonymousBlock
	// ReplacedBox is the atomic inline box of an element whose content
	// comes from outside the document text (img and kin); the pipeline
	// sizes it and paints a placeholder.
	ReplacedBox
)

// TextRun is one positioned word or space on a line, in absolute
// coordinates. Space runs carry geometry only and are not painted.
type TextRun struct {
	Text  string
	X     Fl
	Width Fl
	Space bool
	Style *style.ComputedStyle
	Node  dom.NodeID
}

// LineBox is one row of laid-out inline content.
type LineBox struct {
	Y        Fl // top of the line, absolute
	Height   Fl
	Baseline Fl // absolute y of the text baseline
	Runs     []TextRun
}

// Width is the horizontal extent of the line's committed runs.
func (l LineBox) Width() Fl {
	if len(l.Runs) == 0 {
		return 0
	}
	last := l.Runs[len(l.Runs)-1]
	return last.X + last.Width - l.Runs[0].X
}

// LayoutBox is one node of the layout tree. Anonymous boxes have
// Node == dom.None and a style inherited from their parent.
type LayoutBox struct {
	Type       BoxType
	Node       dom.NodeID
	Style      *style.ComputedStyle
	Dimensions Dimensions
	Children   []*LayoutBox

	// Lines holds the line boxes of the inline formatting context this box
	// establishes; empty for boxes with only block-level content.
	Lines []LineBox
}

// IsBlockLevel reports whether the box stacks vertically in its parent.
func (b *LayoutBox) IsBlockLevel() bool {
	return b.Type == BlockBox || b.Type == AnonymousBlock
}

// InFlow reports whether the box participates in normal flow.
func (b *LayoutBox) InFlow() bool {
	p := b.Style.Position
	return p != style.Absolute && p != style.Fixed
}

// shift moves the box and its whole subtree by (dx, dy). Used for relative
// offsets and horizontal alignment, which apply after normal flow.
func (b *LayoutBox) shift(dx, dy Fl) {
	b.Dimensions.Content.X += dx
	b.Dimensions.Content.Y += dy
	for i := range b.Lines {
		b.Lines[i].Y += dy
		b.Lines[i].Baseline += dy
		for j := range b.Lines[i].Runs {
			b.Lines[i].Runs[j].X += dx
		}
	}
	for _, child := range b.Children {
		child.shift(dx, dy)
	}
}
