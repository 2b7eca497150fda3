package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/inkwellrender/inkwell/css"
	"github.com/inkwellrender/inkwell/diagnostics"
	"github.com/inkwellrender/inkwell/dom"
	"github.com/inkwellrender/inkwell/style"
	"github.com/inkwellrender/inkwell/text"
	tu "github.com/inkwellrender/inkwell/utils/testutils"
)

// layoutSource resolves and lays out a document against an author sheet,
// with deterministic fixed metrics.
func layoutSource(t *testing.T, doc *dom.Document, cssSrc string, viewport Viewport, rec *diagnostics.Recorder) *LayoutBox {
	t.Helper()
	sheet := css.ParseStylesheet(cssSrc, css.Author, rec)
	styled := style.NewResolver(doc, sheet, viewport.Width, viewport.Height, rec).ResolveAll()
	root := NewEngine(styled, viewport, text.FixedMetrics{}, rec).Layout()
	if root == nil {
		t.Fatal("no layout root")
	}
	return root
}

func findBox(root *LayoutBox, node dom.NodeID) *LayoutBox {
	if root.Node == node {
		return root
	}
	for _, child := range root.Children {
		if found := findBox(child, node); found != nil {
			return found
		}
	}
	return nil
}

func mustFind(t *testing.T, root *LayoutBox, node dom.NodeID) *LayoutBox {
	t.Helper()
	box := findBox(root, node)
	if box == nil {
		t.Fatalf("no layout box for node %d", node)
	}
	return box
}

func TestSiblingMarginsCollapse(t *testing.T) {
	doc := dom.NewDocument("html")
	a := doc.CreateElement("div", []dom.Attr{{Name: "id", Value: "a"}}, doc.Root())
	b := doc.CreateElement("div", []dom.Attr{{Name: "id", Value: "b"}}, doc.Root())

	root := layoutSource(t, doc, `
		html,div{display:block} div{height:10px}
		#a{margin-bottom:10px} #b{margin-top:20px}
	`, Viewport{Width: 800, Height: 600}, nil)

	boxA := mustFind(t, root, a).Dimensions.BorderBox()
	boxB := mustFind(t, root, b).Dimensions.BorderBox()
	// the gap is the larger margin, not the sum
	tu.AssertEqual(t, boxB.Y-(boxA.Y+boxA.Height), Fl(20))
}

func TestParentFirstChildMarginsCollapse(t *testing.T) {
	doc := dom.NewDocument("html")
	outer := doc.CreateElement("div", []dom.Attr{{Name: "id", Value: "outer"}}, doc.Root())
	inner := doc.CreateElement("div", []dom.Attr{{Name: "id", Value: "inner"}}, outer)

	root := layoutSource(t, doc, `
		html,div{display:block}
		#outer{margin-top:10px}
		#inner{margin-top:30px;height:5px}
	`, Viewport{Width: 800, Height: 600}, nil)

	// nothing separates the two top edges, so the margins merge to 30
	tu.AssertEqual(t, mustFind(t, root, inner).Dimensions.BorderBox().Y, Fl(30))
	tu.AssertEqual(t, mustFind(t, root, outer).Dimensions.BorderBox().Y, Fl(30))

	// a top border on the parent keeps both margins apart: 10 + 1 + 30
	root = layoutSource(t, doc, `
		html,div{display:block}
		#outer{margin-top:10px;border-top-width:1px;border-color:black}
		#inner{margin-top:30px;height:5px}
	`, Viewport{Width: 800, Height: 600}, nil)
	tu.AssertEqual(t, mustFind(t, root, outer).Dimensions.BorderBox().Y, Fl(10))
	tu.AssertEqual(t, mustFind(t, root, inner).Dimensions.BorderBox().Y, Fl(41))
}

func TestViewportWidthUnits(t *testing.T) {
	doc := dom.NewDocument("html")
	body := doc.CreateElement("body", nil, doc.Root())

	root := layoutSource(t, doc, `
		html,body{display:block} body{width:60vw}
	`, Viewport{Width: 1200, Height: 800}, nil)

	tu.AssertEqual(t, mustFind(t, root, body).Dimensions.Content.Width, Fl(720))
}

func TestPercentageWidth(t *testing.T) {
	doc := dom.NewDocument("html")
	outer := doc.CreateElement("div", nil, doc.Root())
	inner := doc.CreateElement("p", nil, outer)

	root := layoutSource(t, doc, `
		html,div,p{display:block}
		div{width:600px} p{width:50%}
	`, Viewport{Width: 1200, Height: 800}, nil)

	tu.AssertEqual(t, mustFind(t, root, inner).Dimensions.Content.Width, Fl(300))
}

func TestAutoMarginsCenter(t *testing.T) {
	doc := dom.NewDocument("html")
	div := doc.CreateElement("div", nil, doc.Root())

	root := layoutSource(t, doc, `
		html,div{display:block}
		div{width:100px;height:10px;margin:0 auto}
	`, Viewport{Width: 500, Height: 600}, nil)

	box := mustFind(t, root, div)
	tu.AssertEqual(t, box.Dimensions.Margin.Left, Fl(200))
	tu.AssertEqual(t, box.Dimensions.Margin.Right, Fl(200))
	tu.AssertEqual(t, box.Dimensions.Content.X, Fl(200))
}

func TestAutoWidthFillsContainer(t *testing.T) {
	doc := dom.NewDocument("html")
	div := doc.CreateElement("div", nil, doc.Root())

	root := layoutSource(t, doc, `
		html,div{display:block}
		div{margin-left:10px;padding:0 5px;height:10px}
	`, Viewport{Width: 400, Height: 600}, nil)

	box := mustFind(t, root, div)
	// 400 - 10 margin - 2*5 padding
	tu.AssertEqual(t, box.Dimensions.Content.Width, Fl(380))
	tu.AssertEqual(t, box.Dimensions.Content.X, Fl(15))
}

func TestDimensionsNeverNegative(t *testing.T) {
	doc := dom.NewDocument("html")
	div := doc.CreateElement("div", nil, doc.Root())

	root := layoutSource(t, doc, `
		html,div{display:block}
		div{width:-40px;height:-10px}
	`, Viewport{Width: 400, Height: 600}, nil)

	box := mustFind(t, root, div)
	tu.AssertEqual(t, box.Dimensions.Content.Width, Fl(0))
	tu.AssertEqual(t, box.Dimensions.Content.Height, Fl(0))
}

func TestUnresolvedPercentageHeight(t *testing.T) {
	capt := tu.CaptureLogs()
	defer capt.Restore()

	doc := dom.NewDocument("html")
	div := doc.CreateElement("div", nil, doc.Root())

	rec := &diagnostics.Recorder{}
	root := layoutSource(t, doc, `
		html,div{display:block} div{height:50%}
	`, Viewport{Width: 400, Height: 600}, rec)

	// html's height is auto, so the percentage has no base
	tu.AssertEqual(t, mustFind(t, root, div).Dimensions.Content.Height, Fl(0))
	found := false
	for _, d := range rec.Diagnostics() {
		if d.Kind == diagnostics.UnresolvedDimension {
			found = true
		}
	}
	if !found {
		t.Fatal("expected an UnresolvedDimension diagnostic")
	}
}

func TestDisplayNonePruned(t *testing.T) {
	doc := dom.NewDocument("html")
	hidden := doc.CreateElement("div", []dom.Attr{{Name: "id", Value: "h"}}, doc.Root())
	doc.CreateElement("span", nil, hidden)
	shown := doc.CreateElement("div", nil, doc.Root())

	root := layoutSource(t, doc, `
		html,div{display:block} #h{display:none} div{height:10px}
	`, Viewport{Width: 400, Height: 600}, nil)

	if findBox(root, hidden) != nil {
		t.Fatal("display:none subtree must not produce boxes")
	}
	tu.AssertEqual(t, mustFind(t, root, shown).Dimensions.BorderBox().Y, Fl(0))
}

func TestAnonymousBlockWrapping(t *testing.T) {
	doc := dom.NewDocument("html")
	body := doc.CreateElement("body", nil, doc.Root())
	doc.CreateText("leading words", body)
	div := doc.CreateElement("div", nil, body)
	doc.CreateText("trailing words", body)

	root := layoutSource(t, doc, `
		html,body,div{display:block} div{height:10px}
	`, Viewport{Width: 400, Height: 600}, nil)

	bodyBox := mustFind(t, root, body)
	var types []BoxType
	for _, c := range bodyBox.Children {
		types = append(types, c.Type)
	}
	tu.AssertEqual(t, types, []BoxType{AnonymousBlock, BlockBox, AnonymousBlock})
	tu.AssertEqual(t, findBox(root, div), bodyBox.Children[1])

	first := bodyBox.Children[0]
	if len(first.Lines) != 1 || len(first.Lines[0].Runs) != 3 {
		t.Fatalf("anonymous block should hold one line of word-space-word, got %+v", first.Lines)
	}
}

func TestRelativeOffsets(t *testing.T) {
	doc := dom.NewDocument("html")
	div := doc.CreateElement("div", nil, doc.Root())

	root := layoutSource(t, doc, `
		html,div{display:block}
		div{position:relative;left:5px;top:7px;width:10px;height:10px}
	`, Viewport{Width: 400, Height: 600}, nil)

	box := mustFind(t, root, div)
	tu.AssertEqual(t, box.Dimensions.Content.X, Fl(5))
	tu.AssertEqual(t, box.Dimensions.Content.Y, Fl(7))
}

func TestAbsolutePositioning(t *testing.T) {
	doc := dom.NewDocument("html")
	container := doc.CreateElement("div", []dom.Attr{{Name: "id", Value: "c"}}, doc.Root())
	child := doc.CreateElement("div", []dom.Attr{{Name: "id", Value: "abs"}}, container)

	root := layoutSource(t, doc, `
		html,div{display:block}
		#c{position:relative;margin-left:50px;width:200px;height:100px}
		#abs{position:absolute;left:10px;top:20px;width:30px;height:40px}
	`, Viewport{Width: 800, Height: 600}, nil)

	// offsets are relative to the positioned ancestor, not the viewport
	box := mustFind(t, root, child).Dimensions.BorderBox()
	tu.AssertEqual(t, box.X, Fl(60))
	tu.AssertEqual(t, box.Y, Fl(20))
	tu.AssertEqual(t, box.Width, Fl(30))

	// the absolute child takes no room in normal flow
	tu.AssertEqual(t, mustFind(t, root, container).Dimensions.Content.Height, Fl(100))
}

func TestFixedPositioning(t *testing.T) {
	doc := dom.NewDocument("html")
	container := doc.CreateElement("div", []dom.Attr{{Name: "id", Value: "c"}}, doc.Root())
	child := doc.CreateElement("div", []dom.Attr{{Name: "id", Value: "f"}}, container)

	root := layoutSource(t, doc, `
		html,div{display:block}
		#c{position:relative;margin-left:50px;width:200px;height:100px}
		#f{position:fixed;right:10px;bottom:10px;width:50px;height:20px}
	`, Viewport{Width: 800, Height: 600}, nil)

	// fixed boxes anchor to the viewport even inside a positioned ancestor
	box := mustFind(t, root, child).Dimensions.BorderBox()
	tu.AssertEqual(t, box.X, Fl(740))
	tu.AssertEqual(t, box.Y, Fl(570))
}

func TestRelayoutIdempotence(t *testing.T) {
	doc := dom.NewDocument("html")
	body := doc.CreateElement("body", nil, doc.Root())
	p := doc.CreateElement("p", nil, body)
	doc.CreateText("the quick brown fox jumps over the lazy dog again and again", p)
	doc.CreateElement("div", nil, body)

	src := `
		html,body,p,div{display:block}
		body{width:80%} p{margin:10px;font-size:20px} div{height:30px;margin-top:15px}
	`
	sheet := css.ParseStylesheet(src, css.Author, nil)
	styled := style.NewResolver(doc, sheet, 1200, 800, nil).ResolveAll()

	at := func(width Fl) *LayoutBox {
		vp := Viewport{Width: width, Height: 800}
		return NewEngine(styled, vp, text.FixedMetrics{}, nil).Layout()
	}

	first := at(1200)
	at(800) // intermediate layout must leave no residue
	third := at(1200)

	if diff := cmp.Diff(first, third); diff != "" {
		t.Fatalf("relayout at the same width changed geometry:\n%s", diff)
	}
}
