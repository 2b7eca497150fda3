package layout

import (
	"testing"

	"github.com/inkwellrender/inkwell/dom"
	tu "github.com/inkwellrender/inkwell/utils/testutils"
)

func firstRuns(t *testing.T, root *LayoutBox, node dom.NodeID) []TextRun {
	t.Helper()
	box := mustFind(t, root, node)
	if len(box.Lines) == 0 {
		t.Fatalf("no line boxes for node %d", node)
	}
	return box.Lines[0].Runs
}

func TestUnorderedListMarkers(t *testing.T) {
	doc := dom.NewDocument("html")
	ul := doc.CreateElement("ul", nil, doc.Root())
	first := doc.CreateElement("li", nil, ul)
	doc.CreateText("one", first)
	second := doc.CreateElement("li", nil, ul)
	doc.CreateText("two", second)
	empty := doc.CreateElement("li", nil, ul)

	root := layoutSource(t, doc, `
		html,ul,li{display:block} ul{padding-left:40px}
	`, Viewport{Width: 400, Height: 300}, nil)

	runs := firstRuns(t, root, first)
	tu.AssertEqual(t, runs[0].Text, "•")
	// the marker hangs in the list padding: content edge 40, bullet 8, gap 4
	tu.AssertEqual(t, runs[0].X, Fl(28))
	tu.AssertEqual(t, runs[1].Text, "one")
	tu.AssertEqual(t, runs[1].X, Fl(40))

	tu.AssertEqual(t, firstRuns(t, root, second)[0].Text, "•")

	// an item without content gets no marker
	tu.AssertEqual(t, len(mustFind(t, root, empty).Lines), 0)
}

func TestOrderedListNumbering(t *testing.T) {
	doc := dom.NewDocument("html")
	ol := doc.CreateElement("ol", nil, doc.Root())
	var items []dom.NodeID
	for _, text := range []string{"aa", "bb", "cc"} {
		li := doc.CreateElement("li", nil, ol)
		doc.CreateText(text, li)
		items = append(items, li)
	}

	root := layoutSource(t, doc, `
		html,ol,li{display:block} ol{padding-left:40px}
	`, Viewport{Width: 400, Height: 300}, nil)

	for i, li := range items {
		runs := firstRuns(t, root, li)
		tu.AssertEqual(t, runs[0].Text, []string{"1.", "2.", "3."}[i])
	}
	// "1." is two glyphs wide at the default size
	tu.AssertEqual(t, firstRuns(t, root, items[0])[0].Width, Fl(16))
}

func TestListMarkerSuppressed(t *testing.T) {
	doc := dom.NewDocument("html")
	ul := doc.CreateElement("ul", nil, doc.Root())
	li := doc.CreateElement("li", nil, ul)
	doc.CreateText("one", li)

	root := layoutSource(t, doc, `
		html,ul,li{display:block}
		li{list-style-type:none}
	`, Viewport{Width: 400, Height: 300}, nil)

	runs := firstRuns(t, root, li)
	tu.AssertEqual(t, runs[0].Text, "one")
}
