package layout

import (
	"strings"

	"github.com/inkwellrender/inkwell/diagnostics"
	"github.com/inkwellrender/inkwell/dom"
	"github.com/inkwellrender/inkwell/style"
	"github.com/inkwellrender/inkwell/text"
)

// Engine lays out one styled document. It is a pure function of its
// inputs: running it twice with the same tree, viewport and provider
// reproduces identical geometry, which is what makes full relayout on
// every invalidation a viable strategy.
type Engine struct {
	tree     *style.StyledTree
	viewport Viewport
	metrics  text.MetricsProvider
	rec      *diagnostics.Recorder

	// out-of-flow boxes found during normal flow, laid out afterwards
	absolutes []pendingAbsolute
}

type pendingAbsolute struct {
	box *LayoutBox
	// container is the nearest positioned ancestor box; nil means the
	// viewport (position: fixed, or no positioned ancestor).
	container *LayoutBox
}

func NewEngine(tree *style.StyledTree, viewport Viewport, metrics text.MetricsProvider, rec *diagnostics.Recorder) *Engine {
	return &Engine{tree: tree, viewport: viewport, metrics: metrics, rec: rec}
}

// Layout builds and lays out the full box tree. The returned root is nil
// when the document root is display: none.
func (e *Engine) Layout() *LayoutBox {
	e.absolutes = e.absolutes[:0]
	root := e.buildBox(e.tree.Doc.Root())
	if root == nil {
		return nil
	}
	icb := containingBlock{
		X:              0,
		Y:              0,
		Width:          e.viewport.Width,
		Height:         e.viewport.Height,
		HeightDefinite: true,
	}
	flow := &flowContext{y: 0}
	e.layoutBlock(root, icb, flow, nil)
	e.layoutAbsolutes()
	return root
}

// buildBox maps a document node to a layout box, pruning display: none
// subtrees and wrapping inline runs in anonymous blocks where block and
// inline siblings mix.
func (e *Engine) buildBox(node dom.NodeID) *LayoutBox {
	st := e.tree.Style(node)
	doc := e.tree.Doc

	if !doc.IsElement(node) {
		if strings.TrimSpace(doc.Node(node).Text) == "" && st.WhiteSpace != style.WhiteSpacePre {
			return nil // inter-element whitespace
		}
		return &LayoutBox{Type: InlineBox, Node: node, Style: st}
	}

	if st.Display != style.None && replacedTags.Has(doc.Node(node).Tag) {
		// children of replaced elements are fallback content, not rendered
		return &LayoutBox{Type: ReplacedBox, Node: node, Style: st}
	}

	var boxType BoxType
	switch st.Display {
	case style.None:
		return nil
	case style.Block:
		boxType = BlockBox
	case style.InlineBlock:
		boxType = InlineBlockBox
	default:
		boxType = InlineBox
	}
	box := &LayoutBox{Type: boxType, Node: node, Style: st}

	var children []*LayoutBox
	for _, childID := range doc.Node(node).Children {
		if child := e.buildBox(childID); child != nil {
			children = append(children, child)
		}
	}
	box.Children = e.wrapAnonymous(box, children)
	return box
}

// wrapAnonymous groups consecutive inline-level children under anonymous
// block boxes when they share the parent with block-level children, so
// block containers only ever stack block-level boxes.
func (e *Engine) wrapAnonymous(parent *LayoutBox, children []*LayoutBox) []*LayoutBox {
	if !parent.IsBlockLevel() {
		return children
	}
	hasBlock := false
	hasInline := false
	for _, c := range children {
		if c.IsBlockLevel() && c.InFlow() {
			hasBlock = true
		} else if !c.IsBlockLevel() {
			hasInline = true
		}
	}
	if !hasBlock || !hasInline {
		return children
	}

	var out []*LayoutBox
	var run []*LayoutBox
	flush := func() {
		if len(run) == 0 {
			return
		}
		// anonymous boxes inherit text properties but own no box styling
		out = append(out, &LayoutBox{
			Type:     AnonymousBlock,
			Node:     dom.None,
			Style:    style.Inherit(parent.Style),
			Children: run,
		})
		run = nil
	}
	for _, c := range children {
		if c.IsBlockLevel() {
			flush()
			out = append(out, c)
		} else {
			run = append(run, c)
		}
	}
	flush()
	return out
}

// hasInlineContent reports whether the box establishes an inline
// formatting context, i.e. lays its children out on line boxes.
func (b *LayoutBox) hasInlineContent() bool {
	for _, c := range b.Children {
		if !c.IsBlockLevel() {
			return true
		}
	}
	return false
}
