package layout

import (
	"strconv"

	"github.com/inkwellrender/inkwell/css"
	"github.com/inkwellrender/inkwell/dom"
)

const bulletMarker = "•"

func (e *Engine) isListItem(box *LayoutBox) bool {
	return box.Node != dom.None &&
		e.tree.Doc.IsElement(box.Node) &&
		e.tree.Doc.Node(box.Node).Tag == "li"
}

// placeListMarker prepends the item marker to the first line box of a
// list item, hanging in the padding of the enclosing list. Items inside
// an ol are numbered, every other container gets a bullet. An item
// without any line keeps no marker.
func (e *Engine) placeListMarker(box *LayoutBox) {
	if v, in := box.Style.Extra["list-style-type"]; in &&
		v.Kind == css.ValueKeyword && v.Keyword == "none" {
		return
	}
	line := firstLine(box)
	if line == nil {
		return
	}

	st := box.Style
	marker := e.markerText(box.Node)
	width := e.measureWord(st, marker, box.Node)
	gap := e.measureSpace(st, box.Node)
	line.Runs = append([]TextRun{{
		Text:  marker,
		X:     box.Dimensions.Content.X - width - gap,
		Width: width,
		Style: st,
		Node:  box.Node,
	}}, line.Runs...)
}

// firstLine finds the first line box of the subtree in document order.
func firstLine(b *LayoutBox) *LineBox {
	if len(b.Lines) > 0 {
		return &b.Lines[0]
	}
	for _, c := range b.Children {
		if !c.InFlow() {
			continue
		}
		if l := firstLine(c); l != nil {
			return l
		}
	}
	return nil
}

// markerText numbers the item among the li children of its ol parent.
func (e *Engine) markerText(node dom.NodeID) string {
	doc := e.tree.Doc
	parent := doc.Node(node).Parent
	if parent == dom.None || doc.Node(parent).Tag != "ol" {
		return bulletMarker
	}
	n := 0
	for _, sib := range doc.Node(parent).Children {
		if doc.IsElement(sib) && doc.Node(sib).Tag == "li" {
			n++
		}
		if sib == node {
			break
		}
	}
	return strconv.Itoa(n) + "."
}
